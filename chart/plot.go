package chart

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/text"
)

// PlotCanvas is a gonum vg.CanvasSizer that draws into a Drawing. One
// vg unit is one user unit of the drawing. The canvas covers the w by h
// box whose top left corner is the user-space origin at creation, with
// y growing upwards as gonum expects.
//
// Every call restores the drawing state it changes, so the canvas keeps
// its own colour, line and transform state.
type PlotCanvas struct {
	d     *sketch.Drawing
	w, h  float64
	base  sketch.Matrix
	st    plotState
	stack []plotState
}

type plotState struct {
	m      sketch.Matrix
	color  color.Color
	width  float64
	dash   []float64
	offset float64
}

var _ vg.CanvasSizer = (*PlotCanvas)(nil)

// NewPlotCanvas returns a canvas of w by h user units on d.
func NewPlotCanvas(d *sketch.Drawing, w, h float64) *PlotCanvas {
	c := &PlotCanvas{
		d:    d,
		w:    w,
		h:    h,
		base: d.Matrix().Multiply(sketch.Translate(0, h)).Multiply(sketch.Scale(1, -1)),
		st:   plotState{m: sketch.Identity()},
	}
	vg.Initialize(c)
	return c
}

// DrawPlot draws p into the rectangle r of d's user space.
func DrawPlot(d *sketch.Drawing, p *plot.Plot, r sketch.Rect) {
	d.Layer(func() {
		d.Translate(r.Min.X, r.Min.Y)
		p.Draw(draw.New(NewPlotCanvas(d, r.Width(), r.Height())))
	})
}

// Size returns the width and height of the canvas.
func (c *PlotCanvas) Size() (x, y vg.Length) {
	return vg.Length(c.w), vg.Length(c.h)
}

// SetLineWidth sets the width of stroked paths.
func (c *PlotCanvas) SetLineWidth(w vg.Length) {
	c.st.width = float64(w)
}

// SetLineDash sets the dash pattern for lines.
func (c *PlotCanvas) SetLineDash(pattern []vg.Length, offset vg.Length) {
	c.st.dash = make([]float64, len(pattern))
	for i, v := range pattern {
		c.st.dash[i] = float64(v)
	}
	c.st.offset = float64(offset)
}

// SetColor sets the fill and stroke colour. Nil is black.
func (c *PlotCanvas) SetColor(col color.Color) {
	if col == nil {
		col = color.Black
	}
	c.st.color = col
}

// Rotate applies a counterclockwise rotation in radians.
func (c *PlotCanvas) Rotate(rad float64) {
	c.st.m = c.st.m.Multiply(sketch.Rotate(rad))
}

// Translate applies a translation.
func (c *PlotCanvas) Translate(pt vg.Point) {
	c.st.m = c.st.m.Multiply(sketch.Translate(float64(pt.X), float64(pt.Y)))
}

// Scale applies a scaling.
func (c *PlotCanvas) Scale(x, y float64) {
	c.st.m = c.st.m.Multiply(sketch.Scale(x, y))
}

// Push saves the canvas state.
func (c *PlotCanvas) Push() {
	s := c.st
	s.dash = append([]float64(nil), c.st.dash...)
	c.stack = append(c.stack, s)
}

// Pop restores the state saved by the matching Push. Extra calls are
// ignored.
func (c *PlotCanvas) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Stroke strokes path. Nothing is drawn for a non-positive line width.
func (c *PlotCanvas) Stroke(path vg.Path) {
	if c.st.width <= 0 {
		return
	}
	c.paint(func() {
		c.addPath(path)
		c.d.Stroke()
	})
}

// Fill fills path.
func (c *PlotCanvas) Fill(path vg.Path) {
	c.paint(func() {
		c.addPath(path)
		c.d.Fill()
	})
}

// FillString draws s with its baseline starting at pt. Faces are mapped
// onto registered fonts by typeface name, falling back to the Go family
// with the matching weight and style.
func (c *PlotCanvas) FillString(f font.Face, pt vg.Point, s string) {
	if f.Font.Size <= 0 || s == "" {
		return
	}
	c.paint(func() {
		if err := c.d.SetFont(plotFontName(f.Font), float64(f.Font.Size)); err != nil {
			c.d.SetFontSize(float64(f.Font.Size))
		}
		c.d.Translate(float64(pt.X), float64(pt.Y))
		c.d.Scale(1, -1)
		c.d.Text(s, sketch.O)
	})
}

// DrawImage draws img scaled to fill rect.
func (c *PlotCanvas) DrawImage(rect vg.Rectangle, img image.Image) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	w, h := float64(rect.Max.X-rect.Min.X), float64(rect.Max.Y-rect.Min.Y)
	c.paint(func() {
		c.d.Translate(float64(rect.Min.X), float64(rect.Max.Y))
		c.d.Scale(1, -1)
		c.d.PlaceImageScaled(img, sketch.Rect{Max: sketch.Pt(w, h)})
	})
}

// paint runs fn with the canvas state applied to the drawing and the
// previous drawing state restored afterwards.
func (c *PlotCanvas) paint(fn func()) {
	c.d.Layer(func() {
		c.d.SetMatrix(c.base.Multiply(c.st.m))
		col := c.st.color
		if col == nil {
			col = color.Black
		}
		c.d.SetColor(col)
		c.d.SetLine(c.st.width)
		c.d.SetDashPattern(c.st.dash, c.st.offset)
		c.d.NewPath()
		fn()
	})
}

func (c *PlotCanvas) addPath(path vg.Path) {
	for _, comp := range path {
		p := sketch.Pt(float64(comp.Pos.X), float64(comp.Pos.Y))
		switch comp.Type {
		case vg.MoveComp:
			c.d.MoveTo(p)
		case vg.LineComp:
			c.d.LineTo(p)
		case vg.ArcComp:
			r := float64(comp.Radius)
			if comp.Angle >= 0 {
				c.d.Arc(p, r, comp.Start, comp.Start+comp.Angle, sketch.ActionPath)
			} else {
				c.d.Carc(p, r, comp.Start, comp.Start+comp.Angle, sketch.ActionPath)
			}
		case vg.CurveComp:
			switch len(comp.Control) {
			case 1:
				c.d.QuadTo(vgPoint(comp.Control[0]), p)
			case 2:
				c.d.CurveTo(vgPoint(comp.Control[0]), vgPoint(comp.Control[1]), p)
			}
		case vg.CloseComp:
			c.d.ClosePath()
		}
	}
}

func vgPoint(p vg.Point) sketch.Point {
	return sketch.Pt(float64(p.X), float64(p.Y))
}

// plotFontName picks a registered font for a gonum font descriptor.
func plotFontName(f font.Font) string {
	if _, err := text.Lookup(string(f.Typeface)); err == nil && f.Typeface != "" {
		return string(f.Typeface)
	}
	name := text.DefaultFont
	if strings.EqualFold(string(f.Variant), "Mono") {
		name = "Go-Mono"
	}
	bold := f.Weight >= xfont.WeightSemiBold
	italic := f.Style == xfont.StyleItalic || f.Style == xfont.StyleOblique
	switch {
	case bold && italic:
		name += "-Bold-Italic"
	case bold:
		name += "-Bold"
	case italic:
		name += "-Italic"
	}
	return name
}

// BenchmarkBars returns a gonum bar chart of lang's results in t, one
// bar per benchmark.
func BenchmarkBars(t *Table, lang string) (*plot.Plot, error) {
	if !containsLang(t, lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	values := t.Values(lang)
	vs := make(plotter.Values, len(values))
	names := make([]string, len(values))
	for i, v := range values {
		vs[i] = v.V
		names[i] = v.Label
	}

	p := plot.New()
	p.Title.Text = lang
	p.Y.Label.Text = "time"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(vs, vg.Points(16))
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	bars.Color = Color(0, 1)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

func containsLang(t *Table, lang string) bool {
	if t == nil {
		return false
	}
	_, ok := t.cells[lang]
	return ok
}
