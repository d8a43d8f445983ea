package geometry

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// Epsilon is the smallest ray parameter accepted as a hit. It keeps a
// scattered ray from re-hitting the surface it just left through roundoff.
const Epsilon = 1e-5

// GeometricObject interface for objects that can be hit by rays.
// Objects are immutable after construction and safe to share across workers.
type GeometricObject interface {
	// CheckHit returns the nearest intersection with t > Epsilon, if any
	CheckHit(ray core.Ray) (core.HitInfo, bool)
	// Material returns the material decorating this object
	Material() material.Material
}
