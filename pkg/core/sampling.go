package core

import (
	"math/rand"
)

// Sampler provides uniform random numbers for rendering algorithms.
// One instance is owned per worker; implementations need not be safe for
// concurrent use.
type Sampler interface {
	// Uniform returns a value in [low, high)
	Uniform(low, high float64) float64
	// Float64 returns a value in [0, 1)
	Float64() float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic source
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Uniform returns a random float64 in [low, high)
func (r *RandomSampler) Uniform(low, high float64) float64 {
	return low + (high-low)*r.random.Float64()
}

// Float64 returns a random float64 in [0, 1)
func (r *RandomSampler) Float64() float64 {
	return r.random.Float64()
}

// RandomInUnitCube returns a uniformly distributed vector in [-1,1]³
func RandomInUnitCube(sampler Sampler) Vector3D {
	return Vector3D{
		X: sampler.Uniform(-1, 1),
		Y: sampler.Uniform(-1, 1),
		Z: sampler.Uniform(-1, 1),
	}
}

// RandomUnitVector normalizes a [-1,1]³ sample to unit length.
// Samples too close to the origin are redrawn so Normalize never sees a null vector.
func RandomUnitVector(sampler Sampler) Vector3D {
	for {
		p := RandomInUnitCube(sampler)
		if p.LengthSquared() > 1e-12 {
			return p.Normalize()
		}
	}
}
