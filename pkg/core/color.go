package core

import (
	"image/color"
	"math"
)

// RGBColor is a linear radiance or reflectance triple
type RGBColor struct {
	R, G, B float64
}

// NewRGBColor creates a new RGBColor
func NewRGBColor(r, g, b float64) RGBColor {
	return RGBColor{R: r, G: g, B: b}
}

// Black returns the zero color
func Black() RGBColor {
	return RGBColor{}
}

// White returns opaque white
func White() RGBColor {
	return RGBColor{1, 1, 1}
}

// ColorFromVector reuses vector components as color channels (x->r, y->g, z->b)
func ColorFromVector(v Vector3D) RGBColor {
	return RGBColor{v.X, v.Y, v.Z}
}

// Add returns the component-wise sum
func (c RGBColor) Add(other RGBColor) RGBColor {
	return RGBColor{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel
func (c RGBColor) Multiply(scalar float64) RGBColor {
	return RGBColor{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise product, used for attenuation
func (c RGBColor) MultiplyColor(other RGBColor) RGBColor {
	return RGBColor{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Sqrt applies gamma 2.0 encoding to each channel
func (c RGBColor) Sqrt() RGBColor {
	return RGBColor{math.Sqrt(c.R), math.Sqrt(c.G), math.Sqrt(c.B)}
}

// Luminance returns the perceptual luminance
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c RGBColor) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// To8Bit quantizes each channel with round(channel*255), clamped to [0, 255].
// Over-bright channels saturate to 255 instead of wrapping.
func (c RGBColor) To8Bit() (r, g, b uint8) {
	return quantize(c.R), quantize(c.G), quantize(c.B)
}

// RGBA converts the color to an opaque 8-bit color.RGBA
func (c RGBColor) RGBA() color.RGBA {
	r, g, b := c.To8Bit()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func quantize(channel float64) uint8 {
	if math.IsNaN(channel) {
		return 0
	}
	v := math.Round(channel * 255)
	return uint8(max(0, min(255, v)))
}
