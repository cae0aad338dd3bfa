package recording

import (
	"fmt"
	"math"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
// sketch.RGBA converts to Color directly.
type Color struct {
	R, G, B, A float64
}

// RGBA8 returns the color as 8-bit straight-alpha components.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// Hex returns the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Over composites c over an opaque background and returns an opaque color.
func (c Color) Over(bg Color) Color {
	a := clamp01(c.A)
	return Color{
		R: c.R*a + bg.R*(1-a),
		G: c.G*a + bg.G*(1-a),
		B: c.B*a + bg.B*(1-a),
		A: 1,
	}
}

// Lerp interpolates between c and o.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
