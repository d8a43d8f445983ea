package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestAccumulatorRunningAverage(t *testing.T) {
	bands := SplitBands(1, 1)
	acc := NewAccumulator(2, 1, 4, bands)

	samples := []float64{0.2, 0.4, 0.6, 0.8}
	for i, v := range samples {
		acc.Handle(Message{Kind: PixelKind, X: 0, Y: 0, Color: core.NewRGBColor(v, v, v), Sample: i + 1})
	}

	// (0.2+0.4+0.6+0.8)/4 = 0.5 -> round(127.5) = 128
	got := acc.Image().RGBAAt(0, 0)
	if got.R != 128 || got.G != 128 || got.B != 128 || got.A != 255 {
		t.Errorf("Pixel = %v, want gray 128", got)
	}

	ps := acc.PixelStats(0, 0)
	if ps.SampleCount != 4 {
		t.Errorf("SampleCount = %d, want 4", ps.SampleCount)
	}
	if math.Abs(ps.GetColor().R-0.5) > 1e-12 {
		t.Errorf("Average = %f, want 0.5", ps.GetColor().R)
	}

	// Untouched pixel stays black
	if other := acc.Image().RGBAAt(1, 0); other.R != 0 || other.G != 0 || other.B != 0 {
		t.Errorf("Untouched pixel = %v, want black", other)
	}
}

func TestAccumulatorDisplayUsesSampleIndex(t *testing.T) {
	acc := NewAccumulator(1, 1, 4, SplitBands(1, 1))
	acc.Handle(Message{Kind: PixelKind, Color: core.White(), Sample: 1})
	if got := acc.Image().RGBAAt(0, 0); got.R != 255 {
		t.Errorf("After one white sample pixel = %v, want 255", got)
	}
	acc.Handle(Message{Kind: PixelKind, Color: core.Black(), Sample: 2})
	if got := acc.Image().RGBAAt(0, 0); got.R != 128 {
		t.Errorf("After white then black pixel = %v, want 128", got)
	}
}

func TestAccumulatorProgressAndDone(t *testing.T) {
	// Bands of 3 and 1 rows, 4 samples each
	bands := []Band{{ID: 0, StartRow: 0, EndRow: 3}, {ID: 1, StartRow: 3, EndRow: 4}}
	acc := NewAccumulator(2, 4, 4, bands)

	if acc.Progress() != 0 {
		t.Errorf("Initial progress = %f, want 0", acc.Progress())
	}

	acc.Handle(Message{Kind: SampleCompleteKind, Band: 0, Sample: 1})
	if math.Abs(acc.Progress()-3.0/16.0) > 1e-12 {
		t.Errorf("Progress = %f, want %f", acc.Progress(), 3.0/16.0)
	}

	acc.Handle(Message{Kind: SampleCompleteKind, Band: 1, Sample: 1})
	if math.Abs(acc.Progress()-0.25) > 1e-12 {
		t.Errorf("Progress = %f, want 0.25", acc.Progress())
	}

	for s := 2; s <= 4; s++ {
		acc.Handle(Message{Kind: SampleCompleteKind, Band: 0, Sample: s})
		acc.Handle(Message{Kind: SampleCompleteKind, Band: 1, Sample: s})
	}
	if math.Abs(acc.Progress()-1) > 1e-12 {
		t.Errorf("Final progress = %f, want 1", acc.Progress())
	}

	if acc.Handle(Message{Kind: EndKind, Band: 1}) {
		t.Error("Accumulator should not be done after the first End")
	}
	if !acc.Handle(Message{Kind: EndKind, Band: 0}) {
		t.Error("Accumulator should be done after every worker sent End")
	}
}

func TestAccumulatorSnapshotIsCopy(t *testing.T) {
	acc := NewAccumulator(1, 1, 2, SplitBands(1, 1))
	acc.Handle(Message{Kind: PixelKind, Color: core.White(), Sample: 1})

	snapshot := acc.Snapshot()
	acc.Handle(Message{Kind: PixelKind, Color: core.Black(), Sample: 2})

	if snapshot.RGBAAt(0, 0).R != 255 {
		t.Error("Snapshot should not change when the accumulator does")
	}
}

func TestAccumulatorStats(t *testing.T) {
	acc := NewAccumulator(2, 1, 2, SplitBands(1, 1))
	acc.Handle(Message{Kind: PixelKind, X: 0, Color: core.White(), Sample: 1})
	acc.Handle(Message{Kind: PixelKind, X: 1, Color: core.White(), Sample: 1})
	acc.Handle(Message{Kind: PixelKind, X: 0, Color: core.White(), Sample: 2})

	stats := acc.Stats()
	if stats.TotalPixels != 2 || stats.TotalSamples != 3 {
		t.Errorf("Stats = %+v, want 2 pixels and 3 samples", stats)
	}
	if stats.MinSamples != 1 || stats.MaxSamplesUsed != 2 || stats.MaxSamples != 2 {
		t.Errorf("Stats = %+v, want min 1, max used 2, max 2", stats)
	}
	if math.Abs(stats.AverageSamples-1.5) > 1e-12 {
		t.Errorf("AverageSamples = %f, want 1.5", stats.AverageSamples)
	}
	if stats.Workers != 1 {
		t.Errorf("Workers = %d, want 1", stats.Workers)
	}
}

func TestAccumulatorProtocolViolations(t *testing.T) {
	newAcc := func() *Accumulator { return NewAccumulator(2, 2, 4, SplitBands(2, 1)) }

	expectPanic(t, "pixel out of bounds", func() {
		newAcc().Handle(Message{Kind: PixelKind, X: 2, Y: 0, Sample: 1})
	})
	expectPanic(t, "sample index zero", func() {
		newAcc().Handle(Message{Kind: PixelKind, Sample: 0})
	})
	expectPanic(t, "sample index past configured count", func() {
		newAcc().Handle(Message{Kind: PixelKind, Sample: 5})
	})
	expectPanic(t, "unknown band", func() {
		newAcc().Handle(Message{Kind: EndKind, Band: 3})
	})
	expectPanic(t, "pass skipped", func() {
		newAcc().Handle(Message{Kind: SampleCompleteKind, Sample: 2})
	})
	expectPanic(t, "extra End", func() {
		acc := newAcc()
		acc.Handle(Message{Kind: EndKind})
		acc.Handle(Message{Kind: EndKind})
	})
	expectPanic(t, "unknown kind", func() {
		newAcc().Handle(Message{Kind: MessageKind(99)})
	})
}

func TestMessageKindString(t *testing.T) {
	tests := map[MessageKind]string{
		PixelKind:          "Pixel",
		SampleCompleteKind: "SampleComplete",
		EndKind:            "End",
		MessageKind(7):     "MessageKind(7)",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
