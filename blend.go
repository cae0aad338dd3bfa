package sketch

import (
	"slices"

	"github.com/gogpu/sketch/recording"
)

// BlendKind distinguishes linear from radial blends.
type BlendKind int

const (
	// BlendLinear varies color along the line from P0 to P1.
	BlendLinear BlendKind = iota
	// BlendRadial varies color between the circles (P0, R0) and (P1, R1).
	BlendRadial
)

// Stop is a color at an offset in [0, 1] along a blend.
type Stop struct {
	Offset float64
	Color  RGBA
}

// Blend is a color gradient used as paint. Its geometry is in the user
// space that is current when it is passed to SetBlend.
type Blend struct {
	Kind   BlendKind
	P0, P1 Point
	R0, R1 float64
	Stops  []Stop
}

// NewLinearBlend creates a linear gradient from p0 to p1.
func NewLinearBlend(p0, p1 Point) *Blend {
	return &Blend{Kind: BlendLinear, P0: p0, P1: p1}
}

// NewRadialBlend creates a radial gradient from the circle (c0, r0) to the
// circle (c1, r1).
func NewRadialBlend(c0 Point, r0 float64, c1 Point, r1 float64) *Blend {
	return &Blend{Kind: BlendRadial, P0: c0, R0: r0, P1: c1, R1: r1}
}

// AddStop adds a color stop and returns the blend for chaining.
// Stops are kept sorted by offset.
func (b *Blend) AddStop(offset float64, c RGBA) *Blend {
	b.Stops = append(b.Stops, Stop{Offset: clamp01(offset), Color: c})
	slices.SortStableFunc(b.Stops, func(x, y Stop) int {
		switch {
		case x.Offset < y.Offset:
			return -1
		case x.Offset > y.Offset:
			return 1
		}
		return 0
	})
	return b
}

// brush converts the blend to a device-space brush under m, with every
// stop's alpha multiplied by opacity.
func (b *Blend) brush(m Matrix, opacity float64) recording.Brush {
	stops := make([]recording.GradientStop, len(b.Stops))
	for i, s := range b.Stops {
		c := s.Color
		c.A *= opacity
		stops[i] = recording.GradientStop{Offset: s.Offset, Color: c.device()}
	}

	p0 := m.TransformPoint(b.P0)
	p1 := m.TransformPoint(b.P1)
	if b.Kind == BlendRadial {
		k := m.ScaleFactor()
		g := recording.NewRadialGradientBrush(p1.X, p1.Y, b.R0*k, b.R1*k)
		g.Focus = p0.device()
		g.Stops = stops
		return g
	}
	g := recording.NewLinearGradientBrush(p0.X, p0.Y, p1.X, p1.Y)
	g.Stops = stops
	return g
}
