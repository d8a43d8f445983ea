package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"golang.org/x/image/colornames"
)

// LookupColor resolves an SVG 1.1 color name (e.g. "indianred") to a linear
// albedo. Names are sRGB values, so each channel is squared to undo the
// gamma-2 encoding applied to the final image.
func LookupColor(name string) (core.RGBColor, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return core.RGBColor{}, false
	}
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0
	return core.NewRGBColor(r*r, g*g, b*b), true
}

// NamedColor is LookupColor for hard-coded scene colors; it panics on unknown names
func NamedColor(name string) core.RGBColor {
	c, ok := LookupColor(name)
	if !ok {
		panic(fmt.Sprintf("unknown color name %q", name))
	}
	return c
}
