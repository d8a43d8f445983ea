package geometry

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Point3D      // A point on the plane
	Normal   core.Normal3D     // Unit normal; reported as-is, never flipped toward the ray
	material material.Material // Material of the plane
}

// NewPlane creates a new plane. The normal must be non-zero.
func NewPlane(point core.Point3D, normal core.Normal3D, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		material: mat,
	}
}

// CheckHit tests if a ray intersects with the plane
func (p *Plane) CheckHit(ray core.Ray) (core.HitInfo, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if denominator == 0 {
		return core.HitInfo{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Normal.Dot(p.Point.Subtract(ray.Origin)) / denominator
	if t <= Epsilon {
		return core.HitInfo{}, false
	}

	return core.NewHitInfo(t, p.Normal, ray.At(t)), true
}

// Material returns the plane's material
func (p *Plane) Material() material.Material {
	return p.material
}
