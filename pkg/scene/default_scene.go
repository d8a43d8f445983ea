package scene

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// DefaultViewPlane is the 400x300 view plane used by the built-in scenes.
// With the camera eye at z=10 and the image plane at z=5 it covers roughly
// a 33 degree vertical field of view.
func DefaultViewPlane() ViewPlane {
	return MustViewPlane(400, 300, 0.01, 16)
}

// NewDefaultScene creates a scene with diffuse, metal and glass spheres,
// a ground plane, a thin disc and a glowing sphere
func NewDefaultScene(t float64) *World {
	w := NewWorld(DefaultViewPlane(), DefaultBackground())

	// Create materials
	ground := material.NewLambertian(NamedColor("darkkhaki"))
	red := material.NewLambertian(NamedColor("indianred"))
	blue := material.NewLambertian(NamedColor("steelblue"))
	silver := material.NewMetal(NamedColor("silver"), 0.0)
	gold := material.NewMetal(NamedColor("goldenrod"), 0.3)
	glass := material.NewDielectric(1.5)
	lamp := material.NewEmissive(core.NewRGBColor(4.0, 4.0, 3.6))

	up := core.NewNormal3D(0, 1, 0)

	w.Add(
		geometry.NewPlane(core.NewPoint3D(0, -1, 0), up, ground),
		geometry.NewSphere(core.NewPoint3D(0, 0, -2), 1.0, red),
		geometry.NewSphere(core.NewPoint3D(-2.2, 0, -2.6), 1.0, silver),
		geometry.NewSphere(core.NewPoint3D(2.2, 0, -2.6), 1.0, glass),
		geometry.NewSphere(core.NewPoint3D(0.9, -0.6, 0.2), 0.4, gold),
		// Slightly above the ground so the two surfaces never tie
		geometry.NewThinDisc(core.NewPoint3D(-1.1, -0.99, 0.4), 0.5, up, blue),
		geometry.NewSphere(core.NewPoint3D(0, 3.2, -5), 0.8, lamp),
	)

	return w
}

// NewPlaneSphereScene creates a white sphere above a plane tilted slightly
// toward the camera, lit only by the sky
func NewPlaneSphereScene(t float64) *World {
	w := NewWorld(DefaultViewPlane(), DefaultBackground())

	white := material.NewLambertian(core.NewRGBColor(0.8, 0.8, 0.8))

	w.Add(
		geometry.NewSphere(core.NewPoint3D(0, 0.2, -3), 1.2, white),
		geometry.NewPlane(core.NewPoint3D(0, -1, 0), core.NewNormal3D(0, 1, -0.1), white),
	)

	return w
}

// NewGlassScene creates three glass spheres (water, glass, diamond) in front
// of a large mirror disc
func NewGlassScene(t float64) *World {
	w := NewWorld(DefaultViewPlane(), DefaultBackground())

	ground := material.NewLambertian(NamedColor("lightslategray"))
	mirror := material.NewMetal(NamedColor("whitesmoke"), 0.02)

	w.Add(
		geometry.NewPlane(core.NewPoint3D(0, -1, 0), core.NewNormal3D(0, 1, 0), ground),
		geometry.NewSphere(core.NewPoint3D(-2.2, 0, -2), 1.0, material.NewDielectric(1.33)),
		geometry.NewSphere(core.NewPoint3D(0, 0, -2), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewPoint3D(2.2, 0, -2), 1.0, material.NewDielectric(2.4)),
		geometry.NewThinDisc(core.NewPoint3D(0, 1, -6), 3.0, core.NewNormal3D(0, 0, 1), mirror),
	)

	return w
}

// Orbit scene layout
const (
	orbitRadius  = 2.0
	orbitCenterZ = -3.0
)

// NewOrbitScene creates a gold sphere orbiting a glass sphere. t in [0,1)
// is the fraction of one revolution, so t=0 and t=1 produce the same world.
func NewOrbitScene(t float64) *World {
	w := NewWorld(DefaultViewPlane(), DefaultBackground())

	ground := material.NewLambertian(NamedColor("gainsboro"))
	gold := material.NewMetal(NamedColor("gold"), 0.1)
	glass := material.NewDielectric(1.5)

	angle := 2 * math.Pi * t
	orbiter := core.NewPoint3D(orbitRadius*math.Cos(angle), -0.5, orbitCenterZ+orbitRadius*math.Sin(angle))

	w.Add(
		geometry.NewPlane(core.NewPoint3D(0, -1, 0), core.NewNormal3D(0, 1, 0), ground),
		geometry.NewSphere(core.NewPoint3D(0, 0, orbitCenterZ), 0.8, glass),
		geometry.NewSphere(orbiter, 0.5, gold),
	)

	return w
}

// NewEmptyScene creates a world with no objects: every ray sees the sky
func NewEmptyScene(t float64) *World {
	return NewWorld(DefaultViewPlane(), DefaultBackground())
}
