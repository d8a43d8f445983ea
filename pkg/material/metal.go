package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.RGBColor // Metal color
	Fuzzness float64       // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.RGBColor, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Process mirrors the incoming direction about the normal and perturbs it by
// Fuzzness. A perturbed direction that points back into the surface the ray
// arrived from is absorbed.
func (m *Metal) Process(rayIn core.Ray, hit core.HitInfo, sampler core.Sampler) (ScatterResult, bool) {
	unitDirection := rayIn.Direction.Normalize()
	normal := facingNormal(unitDirection, hit)
	reflected := reflect(unitDirection, normal)

	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzzness))
		if reflected.LengthSquared() < 1e-12 {
			return ScatterResult{}, false
		}
	}

	direction := reflected.Normalize()
	if normal.Dot(direction) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point(), direction),
		Attenuation: m.Albedo,
	}, true
}

// Emission returns black: metals do not emit
func (m *Metal) Emission() core.RGBColor {
	return core.Black()
}
