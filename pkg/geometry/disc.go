package geometry

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// ThinDisc is a plane bounded to a radius around its center.
// Intersection is delegated to the supporting plane and then clipped.
type ThinDisc struct {
	Center core.Point3D
	Normal core.Normal3D
	Radius float64
	plane  *Plane
}

// NewThinDisc creates a new disc. The normal must be non-zero.
func NewThinDisc(center core.Point3D, radius float64, normal core.Normal3D, mat material.Material) *ThinDisc {
	plane := NewPlane(center, normal, mat)
	return &ThinDisc{
		Center: center,
		Normal: plane.Normal,
		Radius: radius,
		plane:  plane,
	}
}

// CheckHit returns the supporting plane's hit when it lies within Radius of the center
func (d *ThinDisc) CheckHit(ray core.Ray) (core.HitInfo, bool) {
	hit, isHit := d.plane.CheckHit(ray)
	if !isHit {
		return core.HitInfo{}, false
	}

	centerToHit := hit.Point().Subtract(d.Center)
	if centerToHit.LengthSquared() > d.Radius*d.Radius {
		return core.HitInfo{}, false
	}
	return hit, true
}

// Material returns the disc's material
func (d *ThinDisc) Material() material.Material {
	return d.plane.Material()
}
