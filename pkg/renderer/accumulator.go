package renderer

import (
	"fmt"
	"image"
	"math"
)

// Accumulator is the single consumer of band worker messages. It owns the
// output image and the per-pixel running sums; nothing else touches them,
// so it needs no locking as long as Handle is called from one goroutine.
type Accumulator struct {
	width, height int
	samples       int // Configured samples per pixel
	img           *image.RGBA
	pixels        []PixelStats
	bands         []Band
	passesDone    []int // Completed sample passes per band
	workersDone   int
	totalSamples  int
}

// NewAccumulator creates an accumulator for a width×height image rendered
// with the given samples per pixel by one worker per band
func NewAccumulator(width, height, samples int, bands []Band) *Accumulator {
	return &Accumulator{
		width:      width,
		height:     height,
		samples:    samples,
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		pixels:     make([]PixelStats, width*height),
		bands:      bands,
		passesDone: make([]int, len(bands)),
	}
}

// Handle folds one message into the image. It returns true once every
// worker has sent End. Messages that break the worker protocol panic.
func (a *Accumulator) Handle(msg Message) bool {
	if msg.Band < 0 || msg.Band >= len(a.bands) {
		panic(fmt.Sprintf("accumulator: message from unknown band %d", msg.Band))
	}

	switch msg.Kind {
	case PixelKind:
		a.handlePixel(msg)
	case SampleCompleteKind:
		if msg.Sample != a.passesDone[msg.Band]+1 {
			panic(fmt.Sprintf("accumulator: band %d completed pass %d after pass %d",
				msg.Band, msg.Sample, a.passesDone[msg.Band]))
		}
		a.passesDone[msg.Band] = msg.Sample
	case EndKind:
		a.workersDone++
		if a.workersDone > len(a.bands) {
			panic(fmt.Sprintf("accumulator: received %d End messages for %d workers", a.workersDone, len(a.bands)))
		}
	default:
		panic(fmt.Sprintf("accumulator: unknown message kind %v", msg.Kind))
	}

	return a.Done()
}

func (a *Accumulator) handlePixel(msg Message) {
	if msg.X < 0 || msg.X >= a.width || msg.Y < 0 || msg.Y >= a.height {
		panic(fmt.Sprintf("accumulator: pixel (%d,%d) outside %dx%d image", msg.X, msg.Y, a.width, a.height))
	}
	if msg.Sample < 1 || msg.Sample > a.samples {
		panic(fmt.Sprintf("accumulator: sample index %d outside [1,%d]", msg.Sample, a.samples))
	}

	ps := &a.pixels[msg.Y*a.width+msg.X]
	ps.AddSample(msg.Color)
	a.totalSamples++

	// Displayed value is the running sum over the samples rendered so far
	display := ps.ColorAccum.Multiply(1.0 / float64(msg.Sample))
	a.img.SetRGBA(msg.X, msg.Y, display.RGBA())
}

// Done reports whether every worker has sent End
func (a *Accumulator) Done() bool {
	return a.workersDone == len(a.bands)
}

// Progress returns the fraction of band rows × sample passes completed, in [0, 1]
func (a *Accumulator) Progress() float64 {
	if a.height == 0 || a.samples == 0 {
		return 1
	}
	completedRows := 0
	for i, band := range a.bands {
		completedRows += a.passesDone[i] * band.Rows()
	}
	return float64(completedRows) / float64(a.height*a.samples)
}

// Snapshot returns a copy of the current image
func (a *Accumulator) Snapshot() *image.RGBA {
	snapshot := image.NewRGBA(a.img.Rect)
	copy(snapshot.Pix, a.img.Pix)
	return snapshot
}

// Image returns the accumulator's own image; callers must not modify it
// while messages are still being handled
func (a *Accumulator) Image() *image.RGBA {
	return a.img
}

// PixelStats returns the statistics for pixel (x, y)
func (a *Accumulator) PixelStats(x, y int) PixelStats {
	return a.pixels[y*a.width+x]
}

// Stats summarizes the samples received so far
func (a *Accumulator) Stats() RenderStats {
	stats := RenderStats{
		TotalPixels:  a.width * a.height,
		TotalSamples: a.totalSamples,
		MaxSamples:   a.samples,
		MinSamples:   math.MaxInt,
		Workers:      len(a.bands),
	}

	for i := range a.pixels {
		count := a.pixels[i].SampleCount
		stats.MinSamples = min(stats.MinSamples, count)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
	}
	if stats.TotalPixels == 0 {
		stats.MinSamples = 0
		return stats
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}
