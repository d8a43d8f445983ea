package integrator

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear (not gamma encoded) color seen along a ray
	RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) core.RGBColor
}

// NearestHit scans every object in the world and returns the hit with the
// smallest tmin together with the object that produced it. On an exact tie
// the object added to the world first wins.
func NearestHit(ray core.Ray, world *scene.World) (core.HitInfo, geometry.GeometricObject, bool) {
	var (
		nearest core.HitInfo
		object  geometry.GeometricObject
		found   bool
	)

	for _, obj := range world.Objects {
		hit, ok := obj.CheckHit(ray)
		if !ok {
			continue
		}
		if !found || hit.TMin() < nearest.TMin() {
			nearest = hit
			object = obj
			found = true
		}
	}

	return nearest, object, found
}
