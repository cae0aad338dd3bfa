package chart

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/text"
)

// GoChart is a go-chart Renderer that draws into a Drawing. Coordinates
// are user units with y growing downwards, as in go-chart.
type GoChart struct {
	d   *sketch.Drawing
	own bool

	dpi          float64
	strokeColor  drawing.Color
	fillColor    drawing.Color
	fontColor    drawing.Color
	strokeWidth  float64
	dash         []float64
	fontName     string
	fontSize     float64
	textRotation float64
}

var _ gochart.Renderer = (*GoChart)(nil)

// NewGoChart returns a go-chart RendererProvider that draws each chart
// into a new Drawing of the given output format. Save encodes it.
func NewGoChart(format string) gochart.RendererProvider {
	return func(w, h int) (gochart.Renderer, error) {
		if !slices.Contains(sketch.Formats(), format) {
			return nil, fmt.Errorf("%w: %q", sketch.ErrUnknownFormat, format)
		}
		r := newGoChart(sketch.NewDrawingFormat(w, h, format))
		r.own = true
		f, err := gochart.GetDefaultFont()
		if err != nil {
			return nil, err
		}
		r.SetFont(f)
		return r, nil
	}
}

// DrawingRenderer returns a go-chart RendererProvider that draws into
// d. The requested size is ignored and Save writes nothing, so a chart
// rendered with it becomes part of d.
func DrawingRenderer(d *sketch.Drawing) gochart.RendererProvider {
	return func(int, int) (gochart.Renderer, error) {
		return newGoChart(d), nil
	}
}

func newGoChart(d *sketch.Drawing) *GoChart {
	return &GoChart{
		d:           d,
		dpi:         gochart.DefaultDPI,
		strokeWidth: gochart.DefaultStrokeWidth,
		fontSize:    gochart.DefaultFontSize,
	}
}

// Drawing returns the drawing the renderer paints into.
func (r *GoChart) Drawing() *sketch.Drawing { return r.d }

// ResetStyle resets colours, stroke and text rotation.
func (r *GoChart) ResetStyle() {
	r.strokeColor = drawing.Color{}
	r.fillColor = drawing.Color{}
	r.fontColor = drawing.Color{}
	r.strokeWidth = gochart.DefaultStrokeWidth
	r.dash = nil
	r.textRotation = 0
}

// GetDPI returns the DPI used to convert font points to user units.
func (r *GoChart) GetDPI() float64 { return r.dpi }

// SetDPI sets the DPI.
func (r *GoChart) SetDPI(dpi float64) { r.dpi = dpi }

// SetClassName is a no-op; class names only apply to SVG renderers.
func (r *GoChart) SetClassName(string) {}

// SetStrokeColor sets the stroke colour.
func (r *GoChart) SetStrokeColor(c drawing.Color) { r.strokeColor = c }

// SetFillColor sets the fill colour.
func (r *GoChart) SetFillColor(c drawing.Color) { r.fillColor = c }

// SetStrokeWidth sets the stroke width.
func (r *GoChart) SetStrokeWidth(width float64) { r.strokeWidth = width }

// SetStrokeDashArray sets the dash pattern.
func (r *GoChart) SetStrokeDashArray(dashArray []float64) {
	r.dash = append([]float64(nil), dashArray...)
}

// MoveTo starts a new subpath.
func (r *GoChart) MoveTo(x, y int) {
	r.d.MoveTo(sketch.Pt(float64(x), float64(y)))
}

// LineTo adds a line.
func (r *GoChart) LineTo(x, y int) {
	r.d.LineTo(sketch.Pt(float64(x), float64(y)))
}

// QuadCurveTo adds a quadratic Bézier curve.
func (r *GoChart) QuadCurveTo(cx, cy, x, y int) {
	r.d.QuadTo(sketch.Pt(float64(cx), float64(cy)), sketch.Pt(float64(x), float64(y)))
}

// ArcTo adds an elliptical arc around (cx, cy) from startAngle sweeping
// delta radians, clockwise on screen for positive delta. A line joins
// the current point to the start of the arc.
func (r *GoChart) ArcTo(cx, cy int, rx, ry, startAngle, delta float64) {
	c := sketch.Pt(float64(cx), float64(cy))
	arc := r.d.Arc
	if delta < 0 {
		arc = r.d.Carc
	}
	if rx == ry {
		arc(c, rx, startAngle, startAngle+delta, sketch.ActionPath)
		return
	}
	if rx <= 0 || ry <= 0 {
		return
	}
	r.d.Layer(func() {
		r.d.Translate(c.X, c.Y)
		r.d.Scale(rx, ry)
		arc(sketch.O, 1, startAngle, startAngle+delta, sketch.ActionPath)
	})
}

// Close closes the current subpath.
func (r *GoChart) Close() {
	r.d.ClosePath()
}

// Stroke strokes and discards the path.
func (r *GoChart) Stroke() {
	r.paint(false, true)
}

// Fill fills and discards the path.
func (r *GoChart) Fill() {
	r.paint(true, false)
}

// FillStroke fills, then strokes, and discards the path.
func (r *GoChart) FillStroke() {
	r.paint(true, true)
}

// Circle adds a circle to the path without painting it.
func (r *GoChart) Circle(radius float64, x, y int) {
	r.d.Circle(sketch.Pt(float64(x), float64(y)), radius, sketch.ActionPath)
}

// SetFont selects a registered font with the family name of f. Fonts
// that are not registered leave the drawing's current font in use.
func (r *GoChart) SetFont(f *truetype.Font) {
	if f == nil {
		r.fontName = ""
		return
	}
	name := f.Name(truetype.NameIDFontFamily)
	if _, err := text.Lookup(name); err != nil {
		sketch.Logger().Debug("chart: font not registered, using drawing font", "font", name)
		r.fontName = ""
		return
	}
	r.fontName = name
}

// SetFontColor sets the text colour.
func (r *GoChart) SetFontColor(c drawing.Color) { r.fontColor = c }

// SetFontSize sets the font size in points.
func (r *GoChart) SetFontSize(size float64) { r.fontSize = size }

// Text draws body with its baseline starting at (x, y), rotated by the
// current text rotation.
func (r *GoChart) Text(body string, x, y int) {
	if body == "" || r.fontColor.A == 0 {
		return
	}
	r.d.Layer(func() {
		r.d.SetColor(r.fontColor)
		r.setFace()
		r.d.Translate(float64(x), float64(y))
		r.d.Rotate(r.textRotation)
		r.d.Text(body, sketch.O)
	})
}

// MeasureText returns the advance width and em height of body.
func (r *GoChart) MeasureText(body string) gochart.Box {
	var w float64
	r.d.Layer(func() {
		r.setFace()
		w = r.d.TextWidth(body)
	})
	return gochart.Box{
		Right:  int(math.Ceil(w)),
		Bottom: int(math.Ceil(r.pixelSize())),
	}
}

// SetTextRotation sets the rotation in radians for following Text calls.
func (r *GoChart) SetTextRotation(radians float64) { r.textRotation = radians }

// ClearTextRotation clears the text rotation.
func (r *GoChart) ClearTextRotation() { r.textRotation = 0 }

// Save encodes the drawing to w when the renderer owns it.
func (r *GoChart) Save(w io.Writer) error {
	if !r.own {
		return nil
	}
	return r.d.Encode(w)
}

func (r *GoChart) pixelSize() float64 {
	return r.fontSize * r.dpi / 72
}

func (r *GoChart) setFace() {
	size := r.pixelSize()
	if r.fontName != "" && r.d.SetFont(r.fontName, size) == nil {
		return
	}
	r.d.SetFontSize(size)
}

func (r *GoChart) paint(fill, stroke bool) {
	fill = fill && r.fillColor.A > 0
	stroke = stroke && r.strokeColor.A > 0 && r.strokeWidth > 0
	if !fill && !stroke {
		r.d.NewPath()
		return
	}
	r.d.Layer(func() {
		if fill {
			r.d.SetColor(r.fillColor)
			r.d.FillPreserve()
		}
		if stroke {
			r.d.SetColor(r.strokeColor)
			r.d.SetLine(r.strokeWidth)
			r.d.SetDashPattern(r.dash, 0)
			r.d.StrokePreserve()
		}
	})
	r.d.NewPath()
}
