package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.RGBColor // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.RGBColor) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Process scatters around the normal by adding a random unit vector to it,
// which approximates cosine-weighted sampling. It never absorbs.
func (l *Lambertian) Process(rayIn core.Ray, hit core.HitInfo, sampler core.Sampler) (ScatterResult, bool) {
	normal := facingNormal(rayIn.Direction, hit).ToVector()
	direction := normal.Add(core.RandomUnitVector(sampler))

	// The random vector can cancel the normal almost exactly
	if direction.LengthSquared() < 1e-12 {
		direction = normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point(), direction.Normalize()),
		Attenuation: l.Albedo,
	}, true
}

// Emission returns black: diffuse surfaces do not emit
func (l *Lambertian) Emission() core.RGBColor {
	return core.Black()
}
