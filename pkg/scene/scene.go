package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// ViewPlane describes the image plane the camera samples
type ViewPlane struct {
	HRes      int     // Horizontal resolution in pixels
	VRes      int     // Vertical resolution in pixels
	PixelSize float64 // Number of world units covered by one pixel
	Samples   int     // Samples per pixel; must be a perfect square
}

// NewViewPlane creates a validated view plane
func NewViewPlane(hres, vres int, pixelSize float64, samples int) (ViewPlane, error) {
	vp := ViewPlane{HRes: hres, VRes: vres, PixelSize: pixelSize, Samples: samples}
	if err := vp.Validate(); err != nil {
		return ViewPlane{}, err
	}
	return vp, nil
}

// MustViewPlane is NewViewPlane for hard-coded configurations; it panics on error
func MustViewPlane(hres, vres int, pixelSize float64, samples int) ViewPlane {
	vp, err := NewViewPlane(hres, vres, pixelSize, samples)
	if err != nil {
		panic(err)
	}
	return vp
}

// Validate checks resolution, pixel size and the stratified sample count.
// Non-square sample counts are rejected rather than truncated.
func (vp ViewPlane) Validate() error {
	if vp.HRes <= 0 || vp.VRes <= 0 {
		return fmt.Errorf("invalid resolution %dx%d: both dimensions must be positive", vp.HRes, vp.VRes)
	}
	if vp.PixelSize <= 0 || math.IsNaN(vp.PixelSize) || math.IsInf(vp.PixelSize, 0) {
		return fmt.Errorf("invalid pixel size %g: must be a positive finite number", vp.PixelSize)
	}
	if vp.Samples <= 0 {
		return fmt.Errorf("invalid sample count %d: must be positive", vp.Samples)
	}
	if n := isqrt(vp.Samples); n*n != vp.Samples {
		return fmt.Errorf("invalid sample count %d: must be a perfect square (nearest are %d and %d)",
			vp.Samples, n*n, (n+1)*(n+1))
	}
	return nil
}

// GridSize returns n for the n×n stratified sub-pixel grid
func (vp ViewPlane) GridSize() int {
	return isqrt(vp.Samples)
}

func isqrt(v int) int {
	n := int(math.Sqrt(float64(v)))
	// Correct floating point error in either direction
	for n*n > v {
		n--
	}
	for (n+1)*(n+1) <= v {
		n++
	}
	return n
}

// Background is the vertical sky gradient seen by rays that escape the scene
type Background struct {
	Bottom core.RGBColor // Color looking straight down
	Top    core.RGBColor // Color looking straight up
}

// DefaultBackground blends white into sky blue (0.4, 0.4, 1.0)
func DefaultBackground() Background {
	return Background{
		Bottom: core.White(),
		Top:    core.NewRGBColor(0.4, 0.4, 1.0),
	}
}

// At returns the gradient color for a unit direction
func (b Background) At(direction core.Vector3D) core.RGBColor {
	// Map y from [-1,1] to [0,1]
	t := 0.5 * (direction.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

// World contains all the elements needed for rendering.
// It is built once and must not be modified while a render is running.
type World struct {
	ViewPlane  ViewPlane
	Background Background
	Objects    []geometry.GeometricObject // Scanned in order; earlier objects win exact ties
}

// NewWorld creates an empty world
func NewWorld(viewPlane ViewPlane, background Background) *World {
	return &World{
		ViewPlane:  viewPlane,
		Background: background,
		Objects:    make([]geometry.GeometricObject, 0),
	}
}

// Add appends objects to the world
func (w *World) Add(objects ...geometry.GeometricObject) {
	w.Objects = append(w.Objects, objects...)
}

// WorldFactory builds the world at time t. Animated scenes vary with t;
// static scenes ignore it. Factories must be deterministic because each
// render worker calls its own.
type WorldFactory func(t float64) *World

// Static wraps an existing world in a factory that always returns it
func Static(w *World) WorldFactory {
	return func(float64) *World { return w }
}

// WithViewPlane overrides the view plane of every world the factory builds
func WithViewPlane(factory WorldFactory, viewPlane ViewPlane) WorldFactory {
	return func(t float64) *World {
		w := factory(t)
		overridden := *w
		overridden.ViewPlane = viewPlane
		return &overridden
	}
}
