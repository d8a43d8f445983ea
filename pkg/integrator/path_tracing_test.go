package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// createTestWorld creates a world holding the given objects
func createTestWorld(objects ...geometry.GeometricObject) *scene.World {
	w := scene.NewWorld(scene.MustViewPlane(4, 4, 1.0, 1), scene.DefaultBackground())
	w.Add(objects...)
	return w
}

func colorsNear(a, b core.RGBColor, tolerance float64) bool {
	return math.Abs(a.R-b.R) <= tolerance &&
		math.Abs(a.G-b.G) <= tolerance &&
		math.Abs(a.B-b.B) <= tolerance
}

func TestNearestHitSingleSphere(t *testing.T) {
	sphere := geometry.NewSphere(core.Origin(), 1.0, material.NewLambertian(core.White()))
	world := createTestWorld(sphere)

	ray := core.NewRay(core.NewPoint3D(0, 0, 5), core.NewVector3D(0, 0, -1))
	hit, object, ok := NearestHit(ray, world)
	if !ok {
		t.Fatal("Expected ray to hit the sphere")
	}
	if object != sphere {
		t.Error("Expected the sphere to be reported as the hit object")
	}
	if math.Abs(hit.TMin()-4.0) > 1e-6 {
		t.Errorf("TMin() = %f, want 4.0", hit.TMin())
	}
	p := hit.Point()
	if math.Abs(p.X) > 1e-6 || math.Abs(p.Y) > 1e-6 || math.Abs(p.Z-1.0) > 1e-6 {
		t.Errorf("Point() = %v, want (0, 0, 1)", p)
	}
}

func TestNearestHitOrdering(t *testing.T) {
	mat := material.NewLambertian(core.White())
	near := geometry.NewSphere(core.NewPoint3D(0, 0, 0), 1.0, mat)
	far := geometry.NewSphere(core.NewPoint3D(0, 0, -5), 1.0, mat)
	ray := core.NewRay(core.NewPoint3D(0, 0, 5), core.NewVector3D(0, 0, -1))

	tests := []struct {
		name    string
		objects []geometry.GeometricObject
	}{
		{"near first", []geometry.GeometricObject{near, far}},
		{"far first", []geometry.GeometricObject{far, near}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, object, ok := NearestHit(ray, createTestWorld(tt.objects...))
			if !ok {
				t.Fatal("Expected a hit")
			}
			if object != near {
				t.Error("Expected the nearer sphere to win regardless of insertion order")
			}
		})
	}
}

func TestNearestHitTieKeepsFirst(t *testing.T) {
	first := geometry.NewSphere(core.Origin(), 1.0, material.NewLambertian(core.White()))
	second := geometry.NewSphere(core.Origin(), 1.0, material.NewEmissive(core.White()))
	ray := core.NewRay(core.NewPoint3D(0, 0, 5), core.NewVector3D(0, 0, -1))

	_, object, ok := NearestHit(ray, createTestWorld(first, second))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if object != first {
		t.Error("Expected the first object to win an exact tie")
	}
}

func TestEmptyWorldReturnsGradient(t *testing.T) {
	world := createTestWorld()
	pt := NewPathTracer(DefaultMaxDepth)
	sampler := core.NewSeededSampler(42)

	up := pt.RayColor(core.NewRay(core.Origin(), core.NewVector3D(0, 1, 0)), world, sampler)
	down := pt.RayColor(core.NewRay(core.Origin(), core.NewVector3D(0, -1, 0)), world, sampler)
	// Not normalized: the gradient uses the unit direction
	level := pt.RayColor(core.NewRay(core.Origin(), core.NewVector3D(0, 0, -7)), world, sampler)

	if !colorsNear(up, core.NewRGBColor(0.4, 0.4, 1.0), 1e-9) {
		t.Errorf("Looking up got %v, want sky blue", up)
	}
	if !colorsNear(down, core.White(), 1e-9) {
		t.Errorf("Looking down got %v, want white", down)
	}
	if !colorsNear(level, core.NewRGBColor(0.7, 0.7, 1.0), 1e-9) {
		t.Errorf("Looking level got %v, want (0.7, 0.7, 1.0)", level)
	}
	if up == down {
		t.Error("Rays with different vertical directions must see different colors")
	}
}

func TestDepthExhaustedReturnsGradient(t *testing.T) {
	// An emitter would return its emission if the hit were processed
	sphere := geometry.NewSphere(core.Origin(), 1.0, material.NewEmissive(core.NewRGBColor(5, 5, 5)))
	world := createTestWorld(sphere)
	ray := core.NewRay(core.NewPoint3D(0, 0, 5), core.NewVector3D(0, 0, -1))

	pt := NewPathTracer(0)
	got := pt.RayColor(ray, world, core.NewSeededSampler(1))
	want := world.Background.At(core.NewVector3D(0, 0, -1))
	if !colorsNear(got, want, 1e-9) {
		t.Errorf("Depth 0 got %v, want background %v", got, want)
	}
}

func TestEmitterReturnsEmission(t *testing.T) {
	emission := core.NewRGBColor(4, 3, 2)
	world := createTestWorld(geometry.NewSphere(core.Origin(), 1.0, material.NewEmissive(emission)))
	ray := core.NewRay(core.NewPoint3D(0, 0, 5), core.NewVector3D(0, 0, -1))

	got := NewPathTracer(DefaultMaxDepth).RayColor(ray, world, core.NewSeededSampler(1))
	if !colorsNear(got, emission, 1e-9) {
		t.Errorf("Got %v, want emission %v", got, emission)
	}
}

func TestMirrorAttenuatesSky(t *testing.T) {
	// A perfect mirror floor reflects a straight-down ray straight up
	mirror := material.NewMetal(core.NewRGBColor(0.5, 0.5, 0.5), 0.0)
	floor := geometry.NewPlane(core.Origin(), core.NewNormal3D(0, 1, 0), mirror)
	world := createTestWorld(floor)
	ray := core.NewRay(core.NewPoint3D(0, 1, 0), core.NewVector3D(0, -1, 0))

	pt := NewPathTracer(DefaultMaxDepth)
	got := pt.RayColor(ray, world, core.NewSeededSampler(1))
	want := core.NewRGBColor(0.2, 0.2, 0.5)
	if !colorsNear(got, want, 1e-9) {
		t.Errorf("Got %v, want %v", got, want)
	}

	// With one bounce left the reflected ray still escapes to the sky
	got = pt.Trace(ray, world, 1, core.NewSeededSampler(1))
	if !colorsNear(got, want, 1e-9) {
		t.Errorf("Depth 1 got %v, want %v", got, want)
	}
}

func TestDiffuseStaysWithinSkyBounds(t *testing.T) {
	// A white diffuse floor under a sky whose channels never exceed 1
	floor := geometry.NewPlane(core.Origin(), core.NewNormal3D(0, 1, 0), material.NewLambertian(core.NewRGBColor(0.5, 0.5, 0.5)))
	world := createTestWorld(floor)
	ray := core.NewRay(core.NewPoint3D(0, 1, 0), core.NewVector3D(0.3, -1, 0.2))

	pt := NewPathTracer(DefaultMaxDepth)
	sampler := core.NewSeededSampler(7)
	for i := 0; i < 200; i++ {
		c := pt.RayColor(ray, world, sampler)
		if c.R < 0 || c.R > 0.5+1e-9 || c.B < 0 || c.B > 0.5+1e-9 {
			t.Fatalf("Sample %d out of range: %v", i, c)
		}
	}
}
