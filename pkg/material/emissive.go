package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Color core.RGBColor // Emitted light color/intensity
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.RGBColor) *Emissive {
	return &Emissive{Color: emission}
}

// Process never scatters: emitters terminate the path
func (e *Emissive) Process(rayIn core.Ray, hit core.HitInfo, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emission returns the emitted light for this material
func (e *Emissive) Emission() core.RGBColor {
	return e.Color
}
