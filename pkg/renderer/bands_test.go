package renderer

import "testing"

func TestSplitBands(t *testing.T) {
	tests := []struct {
		name     string
		vres     int
		workers  int
		wantRows []int
	}{
		{"even split", 12, 4, []int{3, 3, 3, 3}},
		{"remainder to leading bands", 10, 3, []int{4, 3, 3}},
		{"single worker", 7, 1, []int{7}},
		{"more workers than rows", 2, 8, []int{1, 1}},
		{"zero workers", 5, 0, []int{5}},
		{"one row per worker", 3, 3, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := SplitBands(tt.vres, tt.workers)
			if len(bands) != len(tt.wantRows) {
				t.Fatalf("Got %d bands, want %d", len(bands), len(tt.wantRows))
			}
			for i, band := range bands {
				if band.ID != i {
					t.Errorf("Band %d has ID %d", i, band.ID)
				}
				if band.Rows() != tt.wantRows[i] {
					t.Errorf("Band %d has %d rows, want %d", i, band.Rows(), tt.wantRows[i])
				}
			}
		})
	}
}

func TestSplitBandsCoverEveryRowOnce(t *testing.T) {
	for vres := 1; vres <= 40; vres++ {
		for workers := 1; workers <= 12; workers++ {
			covered := make([]int, vres)
			for _, band := range SplitBands(vres, workers) {
				if band.Rows() <= 0 {
					t.Fatalf("vres=%d workers=%d: empty band %+v", vres, workers, band)
				}
				for y := band.StartRow; y < band.EndRow; y++ {
					covered[y]++
				}
			}
			for y, count := range covered {
				if count != 1 {
					t.Fatalf("vres=%d workers=%d: row %d covered %d times", vres, workers, y, count)
				}
			}
		}
	}
}

func TestSplitBandsEmptyImage(t *testing.T) {
	if bands := SplitBands(0, 4); len(bands) != 0 {
		t.Errorf("Expected no bands for zero rows, got %v", bands)
	}
}
