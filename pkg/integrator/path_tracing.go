package integrator

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// DefaultMaxDepth is the recursion budget used when none is configured
const DefaultMaxDepth = 20

// PathTracer implements recursive unidirectional path tracing with a fixed
// depth budget and no Russian roulette
type PathTracer struct {
	MaxDepth int
}

// NewPathTracer creates a path tracer with the given recursion budget
func NewPathTracer(maxDepth int) *PathTracer {
	return &PathTracer{MaxDepth: maxDepth}
}

// RayColor traces a camera ray with the full depth budget
func (pt *PathTracer) RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) core.RGBColor {
	return pt.Trace(ray, world, pt.MaxDepth, sampler)
}

// Trace returns the color carried back along ray with depth bounces left.
// Escaping rays and paths that run out of depth both see the sky gradient,
// trading physical correctness for less noise in early previews.
func (pt *PathTracer) Trace(ray core.Ray, world *scene.World, depth int, sampler core.Sampler) core.RGBColor {
	hit, object, isHit := NearestHit(ray, world)
	if !isHit || depth <= 0 {
		return pt.backgroundGradient(ray, world)
	}

	mat := object.Material()
	emitted := mat.Emission()

	scatter, didScatter := mat.Process(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return emitted
	}

	incoming := pt.Trace(scatter.Scattered, world, depth-1, sampler)
	return scatter.Attenuation.MultiplyColor(incoming).Add(emitted)
}

// backgroundGradient returns the sky color for the ray's direction
func (pt *PathTracer) backgroundGradient(r core.Ray, world *scene.World) core.RGBColor {
	return world.Background.At(r.Direction.Normalize())
}
