package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Material describes how a surface scatters and emits light.
// Implementations hold only immutable parameters so one instance can be
// shared by many objects and read from many workers at once.
type Material interface {
	// Process scatters rayIn at hit. It returns false when the surface
	// absorbs the ray; the integrator then reports only Emission.
	Process(rayIn core.Ray, hit core.HitInfo, sampler core.Sampler) (ScatterResult, bool)

	// Emission returns the light emitted by the surface (black for non-emitters)
	Emission() core.RGBColor
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray      // The scattered ray, starting at the hit point
	Attenuation core.RGBColor // Fraction of incoming light retained by the bounce
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v core.Vector3D, n core.Normal3D) core.Vector3D {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.ToVector().Multiply(2 * n.Dot(v)))
}

// facingNormal returns the hit normal flipped, if needed, to face against
// the incoming direction
func facingNormal(direction core.Vector3D, hit core.HitInfo) core.Normal3D {
	normal := hit.Normal()
	if normal.Dot(direction) > 0 {
		return normal.Negate()
	}
	return normal
}
