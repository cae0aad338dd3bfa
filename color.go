package sketch

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/sketch/recording"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1] and is not premultiplied.
// RGBA implements color.Color.
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements color.Color, returning alpha-premultiplied 16-bit values.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A)*0xffff + 0.5)
	r = uint32(clamp01(c.R)*clamp01(c.A)*0xffff + 0.5)
	g = uint32(clamp01(c.G)*clamp01(c.A)*0xffff + 0.5)
	b = uint32(clamp01(c.B)*clamp01(c.A)*0xffff + 0.5)
	return r, g, b, a
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	if rgba, ok := c.(RGBA); ok {
		return rgba
	}
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float64(nc.R) / 0xffff,
		G: float64(nc.G) / 0xffff,
		B: float64(nc.B) / 0xffff,
		A: float64(nc.A) / 0xffff,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Hex creates a color from a hex string, with or without a leading '#'.
// Supports "RGB", "RGBA", "RRGGBB" and "RRGGBBAA". Invalid input yields
// opaque black; use ParseColor to detect errors.
func Hex(hex string) RGBA {
	c, err := parseHexColor(hex)
	if err != nil {
		return Black
	}
	return c
}

// ParseColor parses a color name or hex string. Names are the SVG 1.1
// color keywords ("cornflowerblue", "darkred", ...), matched without
// regard to case, plus "transparent". Hex strings must start with '#'.
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	name := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if name == "transparent" {
		return Transparent, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return FromColor(c), nil
	}
	return RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHexColor(hex string) (RGBA, error) {
	h := strings.TrimPrefix(hex, "#")
	digits := make([]uint32, len(h))
	for i := 0; i < len(h); i++ {
		ch := h[i]
		switch {
		case '0' <= ch && ch <= '9':
			digits[i] = uint32(ch - '0')
		case 'a' <= ch && ch <= 'f':
			digits[i] = uint32(ch - 'a' + 10)
		case 'A' <= ch && ch <= 'F':
			digits[i] = uint32(ch - 'A' + 10)
		default:
			return RGBA{}, fmt.Errorf("%w: bad hex digit in %q", ErrUnknownColor, hex)
		}
	}

	var r, g, b, a uint32 = 0, 0, 0, 255
	switch len(h) {
	case 3, 4:
		r, g, b = digits[0]*17, digits[1]*17, digits[2]*17
		if len(h) == 4 {
			a = digits[3] * 17
		}
	case 6, 8:
		r, g, b = digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5]
		if len(h) == 8 {
			a = digits[6]<<4 | digits[7]
		}
	default:
		return RGBA{}, fmt.Errorf("%w: bad hex length in %q", ErrUnknownColor, hex)
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Orange      = RGB(1, 0.647, 0)
	Purple      = RGB(0.5, 0, 0.5)
	Grey        = RGB(0.5, 0.5, 0.5)
	Transparent = RGBA2(0, 0, 0, 0)
)

// HSL creates a color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	return hueChroma(h, c, l-c/2)
}

// HSV creates a color from HSV values.
// h is hue [0, 360), s is saturation [0, 1], v is value [0, 1].
func HSV(h, s, v float64) RGBA {
	c := v * s
	return hueChroma(h, c, v-c)
}

func hueChroma(h, c, m float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB(r+m, g+m, b+m)
}

// RandomHue returns a random, fairly saturated opaque color.
func RandomHue(rng *rand.Rand) RGBA {
	return HSV(rng.Float64()*360, 0.5+rng.Float64()*0.5, 0.6+rng.Float64()*0.4)
}

func (c RGBA) device() recording.Color {
	return recording.Color(c)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
