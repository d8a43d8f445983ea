package geometry

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Point3D
	Radius   float64
	material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3D, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: mat,
	}
}

// CheckHit tests if a ray intersects with the sphere
func (s *Sphere) CheckHit(ray core.Ray) (core.HitInfo, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return core.HitInfo{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first, then the farther one
	t := (-b - sqrtD) / (2 * a)
	if t <= Epsilon {
		t = (-b + sqrtD) / (2 * a)
		if t <= Epsilon {
			return core.HitInfo{}, false
		}
	}

	hitPoint := ray.At(t)
	normal := hitPoint.Subtract(s.Center).ToNormal().Normalize()
	return core.NewHitInfo(t, normal, hitPoint), true
}

// Material returns the sphere's material
func (s *Sphere) Material() material.Material {
	return s.material
}
