package renderer

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// Camera is a fixed pinhole camera looking down -Z. Rays start on the image
// plane z = ImagePlaneZ and point away from the eye.
type Camera struct {
	eye         core.Point3D
	imagePlaneZ float64
	viewPlane   scene.ViewPlane
	gridSize    int     // n for the n×n sub-pixel grid
	subPixel    float64 // World size of one sub-pixel cell
}

// NewCamera creates a camera for the given view plane
func NewCamera(eye core.Point3D, imagePlaneZ float64, viewPlane scene.ViewPlane) (*Camera, error) {
	if err := viewPlane.Validate(); err != nil {
		return nil, fmt.Errorf("invalid view plane: %w", err)
	}
	if eye.Z == imagePlaneZ {
		return nil, fmt.Errorf("eye z=%g lies on the image plane", eye.Z)
	}

	n := viewPlane.GridSize()
	return &Camera{
		eye:         eye,
		imagePlaneZ: imagePlaneZ,
		viewPlane:   viewPlane,
		gridSize:    n,
		subPixel:    viewPlane.PixelSize / float64(n),
	}, nil
}

// GridSize returns n for the n×n stratified sub-pixel grid
func (c *Camera) GridSize() int {
	return c.gridSize
}

// SamplePoint returns a jittered point inside sub-pixel cell (subX, subY) of
// image pixel (x, y). Row 0 is the top of the image.
func (c *Camera) SamplePoint(x, y, subX, subY int, sampler core.Sampler) core.Point3D {
	vp := c.viewPlane

	// Flip rows so world y grows upward
	row := float64(vp.VRes)/2 - float64(y) - 1
	col := float64(x) - float64(vp.HRes)/2

	px := col*vp.PixelSize + c.subPixel*float64(subX) + sampler.Uniform(0, c.subPixel)
	py := row*vp.PixelSize + c.subPixel*float64(subY) + sampler.Uniform(0, c.subPixel)

	return core.NewPoint3D(px, py, c.imagePlaneZ)
}

// GetRay generates a primary ray through a jittered sample of pixel (x, y)
func (c *Camera) GetRay(x, y, subX, subY int, sampler core.Sampler) core.Ray {
	p := c.SamplePoint(x, y, subX, subY, sampler)
	return core.NewRay(p, p.Subtract(c.eye).Normalize())
}

// GetCenterRay generates the ray through the exact center of pixel (x, y)
func (c *Camera) GetCenterRay(x, y int) core.Ray {
	vp := c.viewPlane
	row := float64(vp.VRes)/2 - float64(y) - 0.5
	col := float64(x) - float64(vp.HRes)/2 + 0.5

	p := core.NewPoint3D(col*vp.PixelSize, row*vp.PixelSize, c.imagePlaneZ)
	return core.NewRay(p, p.Subtract(c.eye).Normalize())
}
