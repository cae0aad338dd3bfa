package recording

// Brush is the paint used by fill and stroke commands.
// It is one of SolidBrush, *LinearGradientBrush or *RadialGradientBrush.
type Brush interface {
	brushMarker()
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color Color
}

func (SolidBrush) brushMarker() {}

// NewSolidBrush creates a solid color brush.
func NewSolidBrush(c Color) SolidBrush {
	return SolidBrush{Color: c}
}

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  Color
}

// LinearGradientBrush paints a linear gradient between two device points.
type LinearGradientBrush struct {
	Start Point
	End   Point
	Stops []GradientStop
}

func (*LinearGradientBrush) brushMarker() {}

// NewLinearGradientBrush creates a linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradientBrush(x0, y0, x1, y1 float64) *LinearGradientBrush {
	return &LinearGradientBrush{
		Start: Point{X: x0, Y: y0},
		End:   Point{X: x1, Y: y1},
	}
}

// AddColorStop adds a color stop and returns the brush for chaining.
func (g *LinearGradientBrush) AddColorStop(offset float64, c Color) *LinearGradientBrush {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// RadialGradientBrush paints a radial gradient between two circles
// sharing a center: StartRadius maps to offset 0, EndRadius to offset 1.
type RadialGradientBrush struct {
	Center      Point
	Focus       Point
	StartRadius float64
	EndRadius   float64
	Stops       []GradientStop
}

func (*RadialGradientBrush) brushMarker() {}

// NewRadialGradientBrush creates a radial gradient centered at (cx, cy).
func NewRadialGradientBrush(cx, cy, startRadius, endRadius float64) *RadialGradientBrush {
	center := Point{X: cx, Y: cy}
	return &RadialGradientBrush{
		Center:      center,
		Focus:       center,
		StartRadius: startRadius,
		EndRadius:   endRadius,
	}
}

// AddColorStop adds a color stop and returns the brush for chaining.
func (g *RadialGradientBrush) AddColorStop(offset float64, c Color) *RadialGradientBrush {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// ColorAt samples a stop list at offset t, clamping outside the stops.
func ColorAt(stops []GradientStop, t float64) Color {
	if len(stops) == 0 {
		return Color{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// RepresentativeColor returns a single color standing in for the brush,
// used by backends that cannot express gradients.
func RepresentativeColor(b Brush) Color {
	switch br := b.(type) {
	case SolidBrush:
		return br.Color
	case *LinearGradientBrush:
		return ColorAt(br.Stops, 0.5)
	case *RadialGradientBrush:
		return ColorAt(br.Stops, 0.5)
	default:
		return Color{A: 1}
	}
}
