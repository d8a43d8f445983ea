package renderer

// Band is a contiguous range of image rows owned by one worker
type Band struct {
	ID       int
	StartRow int // First row, inclusive
	EndRow   int // Last row, exclusive
}

// Rows returns the number of rows in the band
func (b Band) Rows() int {
	return b.EndRow - b.StartRow
}

// SplitBands partitions vres rows into contiguous bands, one per worker.
// The worker count is capped at vres so no band is empty. When vres does not
// divide evenly the leading bands take one extra row each, so every row is
// covered exactly once.
func SplitBands(vres, workers int) []Band {
	if vres <= 0 {
		return nil
	}
	workers = max(1, min(workers, vres))

	base := vres / workers
	remainder := vres % workers

	bands := make([]Band, workers)
	start := 0
	for i := range bands {
		rows := base
		if i < remainder {
			rows++
		}
		bands[i] = Band{ID: i, StartRow: start, EndRow: start + rows}
		start += rows
	}

	return bands
}
