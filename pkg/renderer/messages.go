package renderer

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// MessageKind identifies the messages a band worker sends the accumulator
type MessageKind int

const (
	// PixelKind carries one gamma-encoded sample for one pixel
	PixelKind MessageKind = iota
	// SampleCompleteKind marks the end of a full sample pass over a band
	SampleCompleteKind
	// EndKind is the last message a worker sends
	EndKind
)

func (k MessageKind) String() string {
	switch k {
	case PixelKind:
		return "Pixel"
	case SampleCompleteKind:
		return "SampleComplete"
	case EndKind:
		return "End"
	default:
		return fmt.Sprintf("MessageKind(%d)", int(k))
	}
}

// Message is sent from a band worker to the accumulator. A worker's messages
// arrive in the order it sent them; messages from different workers interleave.
type Message struct {
	Kind   MessageKind
	Band   int           // ID of the sending band
	X, Y   int           // Pixel coordinates (PixelKind only)
	Color  core.RGBColor // Gamma-encoded sample (PixelKind only)
	Sample int           // 1-based sample index (PixelKind and SampleCompleteKind)
}
