package sketch

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/sketch/recording"
)

// FillRule selects how path interiors are computed.
type FillRule = recording.FillRule

// LineCap is the shape at the ends of open stroked paths.
type LineCap = recording.LineCap

// LineJoin is the shape where stroked segments meet.
type LineJoin = recording.LineJoin

// Fill rules, line caps and line joins.
const (
	FillRuleNonZero = recording.FillRuleNonZero
	FillRuleEvenOdd = recording.FillRuleEvenOdd

	LineCapButt   = recording.LineCapButt
	LineCapRound  = recording.LineCapRound
	LineCapSquare = recording.LineCapSquare

	LineJoinMiter = recording.LineJoinMiter
	LineJoinRound = recording.LineJoinRound
	LineJoinBevel = recording.LineJoinBevel
)

// DashStyle is a named dash pattern for SetDash.
type DashStyle int

// Dash styles. Patterns scale with the line width.
const (
	DashSolid DashStyle = iota
	DashDashed
	DashDotted
	DashDotDashed
	DashLongDashed
	DashShortDashed
)

// dashPatterns are in multiples of the line width.
var dashPatterns = map[DashStyle][]float64{
	DashDashed:      {4, 2},
	DashDotted:      {1, 2},
	DashDotDashed:   {4, 2, 1, 2},
	DashLongDashed:  {8, 3},
	DashShortDashed: {2, 2},
}

// Save pushes a copy of the graphics state: transform, paint, line style,
// fill rule, font, and clip. It is the equivalent of PostScript gsave.
func (d *Drawing) Save() {
	d.stack = append(d.stack, d.st)
	d.rec.Save()
}

// Restore pops the graphics state pushed by the matching Save. Restore
// without a matching Save records ErrStackUnderflow and changes nothing.
func (d *Drawing) Restore() {
	n := len(d.stack)
	if n == 0 {
		d.setErr(ErrStackUnderflow)
		return
	}
	d.st = d.stack[n-1]
	d.stack = d.stack[:n-1]
	d.rec.Restore()
}

// Gsave is an alias for Save.
func (d *Drawing) Gsave() { d.Save() }

// Grestore is an alias for Restore.
func (d *Drawing) Grestore() { d.Restore() }

// Depth returns the number of unmatched Save calls.
func (d *Drawing) Depth() int { return len(d.stack) }

// Layer runs fn between Save and Restore, so state changes made by fn do
// not leak out of it.
func (d *Drawing) Layer(fn func()) {
	d.Save()
	defer d.Restore()
	fn()
}

// Origin resets the transform and moves the origin to the center of the
// drawing.
func (d *Drawing) Origin() {
	d.st.matrix = Translate(float64(d.width)/2, float64(d.height)/2)
}

// OriginAt resets the transform and moves the origin to the device point p.
func (d *Drawing) OriginAt(p Point) {
	d.st.matrix = Translate(p.X, p.Y)
}

// Translate moves the user-space origin by (dx, dy).
func (d *Drawing) Translate(dx, dy float64) {
	d.st.matrix = d.st.matrix.Multiply(Translate(dx, dy))
}

// Rotate rotates user space by angle radians, clockwise on screen.
func (d *Drawing) Rotate(angle float64) {
	d.st.matrix = d.st.matrix.Multiply(Rotate(angle))
}

// Scale scales user space by (sx, sy).
func (d *Drawing) Scale(sx, sy float64) {
	d.st.matrix = d.st.matrix.Multiply(Scale(sx, sy))
}

// ScaleUniform scales user space by s in both directions.
func (d *Drawing) ScaleUniform(s float64) {
	d.Scale(s, s)
}

// Transform applies m on top of the current transform.
func (d *Drawing) Transform(m Matrix) {
	d.st.matrix = d.st.matrix.Multiply(m)
}

// SetMatrix replaces the current transform.
func (d *Drawing) SetMatrix(m Matrix) {
	d.st.matrix = m
}

// Matrix returns the current transform (user to device).
func (d *Drawing) Matrix() Matrix {
	return d.st.matrix
}

// ResetTransform sets the current transform to the identity.
func (d *Drawing) ResetTransform() {
	d.st.matrix = Identity()
}

// UserToDevice converts a user-space point to device space.
func (d *Drawing) UserToDevice(p Point) Point {
	return d.st.matrix.TransformPoint(p)
}

// DeviceToUser converts a device-space point to user space.
func (d *Drawing) DeviceToUser(p Point) Point {
	return d.st.matrix.Invert().TransformPoint(p)
}

// SetHue sets the paint color, keeping the current opacity.
// It replaces any blend set with SetBlend.
func (d *Drawing) SetHue(c color.Color) {
	rgba := FromColor(c)
	d.st.color = RGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: d.st.color.A}
	d.st.blend = nil
}

// SetHueName sets the paint color by name or hex string, keeping the
// current opacity. An unknown name records ErrUnknownColor.
func (d *Drawing) SetHueName(name string) {
	c, err := ParseColor(name)
	if err != nil {
		d.setErr(err)
		return
	}
	d.SetHue(c)
}

// SetHueRGB sets the paint color from components in [0, 1], keeping the
// current opacity.
func (d *Drawing) SetHueRGB(r, g, b float64) {
	d.SetHue(RGB(r, g, b))
}

// SetColor sets the paint color and opacity together.
func (d *Drawing) SetColor(c color.Color) {
	d.st.color = FromColor(c)
	d.st.blend = nil
}

// SetOpacity sets the paint opacity in [0, 1].
func (d *Drawing) SetOpacity(a float64) {
	d.st.color.A = clamp01(a)
}

// Hue returns the current paint color with the current opacity.
func (d *Drawing) Hue() RGBA {
	return d.st.color
}

// SetBlend makes b the paint for fills and strokes. The blend geometry is
// fixed in the current user space. SetHue or SetColor replace it.
func (d *Drawing) SetBlend(b *Blend) {
	d.st.blend = b
	d.st.blendMatrix = d.st.matrix
}

// SetLine sets the line width in user units.
func (d *Drawing) SetLine(width float64) {
	d.st.lineWidth = math.Max(0, width)
}

// LineWidth returns the line width in user units.
func (d *Drawing) LineWidth() float64 {
	return d.st.lineWidth
}

// SetLineCap sets the line cap style.
func (d *Drawing) SetLineCap(c LineCap) {
	d.st.lineCap = c
}

// SetLineJoin sets the line join style.
func (d *Drawing) SetLineJoin(j LineJoin) {
	d.st.lineJoin = j
}

// SetMiterLimit sets the miter limit for mitered joins.
func (d *Drawing) SetMiterLimit(limit float64) {
	d.st.miterLimit = limit
}

// SetDash selects a named dash pattern. DashSolid removes dashing.
func (d *Drawing) SetDash(style DashStyle) {
	pattern, ok := dashPatterns[style]
	if !ok {
		d.st.dash = nil
		d.st.dashOffset = 0
		if style != DashSolid {
			d.setErr(fmt.Errorf("sketch: unknown dash style %d", style))
		}
		return
	}
	dash := make([]float64, len(pattern))
	for i, v := range pattern {
		dash[i] = v * math.Max(d.st.lineWidth, 1)
	}
	d.st.dash = dash
	d.st.dashOffset = 0
}

// SetDashPattern sets explicit dash lengths in user units. An empty
// pattern, or one with no positive length, removes dashing.
func (d *Drawing) SetDashPattern(pattern []float64, offset float64) {
	positive := false
	for _, v := range pattern {
		if v < 0 {
			d.setErr(fmt.Errorf("sketch: negative dash length %v", v))
			return
		}
		positive = positive || v > 0
	}
	if !positive {
		d.st.dash = nil
		d.st.dashOffset = 0
		return
	}
	d.st.dash = append([]float64(nil), pattern...)
	d.st.dashOffset = offset
}

// SetFillRule sets the fill rule used by fills and clips.
func (d *Drawing) SetFillRule(rule FillRule) {
	d.st.fillRule = rule
}

// brush returns the device-space paint for the current state.
func (d *Drawing) brush() recording.Brush {
	if d.st.blend != nil {
		return d.st.blend.brush(d.st.blendMatrix, d.st.color.A)
	}
	return recording.NewSolidBrush(d.st.color.device())
}

// stroke returns the device-space stroke style for the current state.
func (d *Drawing) stroke() recording.Stroke {
	k := d.st.matrix.ScaleFactor()
	s := recording.Stroke{
		Width:      d.st.lineWidth * k,
		Cap:        d.st.lineCap,
		Join:       d.st.lineJoin,
		MiterLimit: d.st.miterLimit,
	}
	if len(d.st.dash) > 0 {
		s.Dash = make([]float64, len(d.st.dash))
		for i, v := range d.st.dash {
			s.Dash[i] = v * k
		}
		s.DashOffset = d.st.dashOffset * k
	}
	return s
}
