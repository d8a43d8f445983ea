package renderer

import (
	"fmt"
	"image"

	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// RenderSequence renders frames of an animated scene at t = i/frames for
// i in [0, frames), so a looping scene does not repeat its first frame.
// onFrame, if not nil, is called after each frame completes.
func (t *Tracer) RenderSequence(factory scene.WorldFactory, frames int, onFrame func(frame int, img *image.RGBA, stats RenderStats)) ([]*image.RGBA, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("invalid frame count %d: must be positive", frames)
	}

	images := make([]*image.RGBA, 0, frames)
	for i := 0; i < frames; i++ {
		tm := float64(i) / float64(frames)
		t.logger.Printf("Frame %d/%d (t=%.3f)\n", i+1, frames, tm)

		img, stats, err := t.Render(factory, tm, nil)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		images = append(images, img)

		if onFrame != nil {
			onFrame(i, img, stats)
		}
	}

	return images, nil
}
