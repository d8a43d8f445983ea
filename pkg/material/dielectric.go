package material

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Process refracts or reflects the ray. Reflection is chosen on total
// internal reflection or with the Schlick reflectance probability.
// Glass never absorbs, so the attenuation is always white.
func (d *Dielectric) Process(rayIn core.Ray, hit core.HitInfo, sampler core.Sampler) (ScatterResult, bool) {
	unitDirection := rayIn.Direction.Normalize()

	// Primitives do not orient normals toward the ray, so entering versus
	// exiting is decided here from the sign of d·n
	normal := facingNormal(unitDirection, hit)
	refractionRatio := 1.0 / d.RefractiveIndex // Entering (air to glass)
	if normal != hit.Normal() {
		refractionRatio = d.RefractiveIndex // Exiting (glass to air)
	}

	cosTheta := math.Min(-normal.Dot(unitDirection), 1.0)

	var direction core.Vector3D
	refracted, canRefract := refractVector(unitDirection, normal, cosTheta, refractionRatio)
	if !canRefract || Reflectance(cosTheta, refractionRatio) > sampler.Float64() {
		direction = reflect(unitDirection, normal)
	} else {
		direction = refracted
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point(), direction.Normalize()),
		Attenuation: core.White(),
	}, true
}

// Emission returns black: glass does not emit
func (d *Dielectric) Emission() core.RGBColor {
	return core.Black()
}

// refractVector applies Snell's law in vector form. The normal must face
// against uv. It reports false on total internal reflection.
func refractVector(uv core.Vector3D, n core.Normal3D, cosTheta, etaiOverEtat float64) (core.Vector3D, bool) {
	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*(1.0-cosTheta*cosTheta)
	if discriminant < 0 {
		return core.Vector3D{}, false
	}
	normal := n.ToVector()
	rOutPerp := uv.Add(normal.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := normal.Multiply(-math.Sqrt(discriminant))
	return rOutPerp.Add(rOutParallel), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
