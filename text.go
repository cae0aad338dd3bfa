package sketch

import (
	"fmt"
	"math"

	"github.com/gogpu/sketch/recording"
	"github.com/gogpu/sketch/text"
)

// HAlign is horizontal text alignment relative to the anchor point.
type HAlign int

// Horizontal alignments.
const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical text alignment relative to the anchor point.
type VAlign int

// Vertical alignments.
const (
	AlignBaseline VAlign = iota
	AlignTop
	AlignMiddle
	AlignBottom
)

// TextExtents describes the ink box and advance of a string in user
// units. See text.Extents.
type TextExtents = text.Extents

// FontMetrics holds the metrics of the current font. See text.Metrics.
type FontMetrics = text.Metrics

// SetFont selects a registered font by name at size user units.
// The Go font family ("Go", "Go-Bold", "Go-Mono", ...) is always
// available. An unknown name returns an error wrapping ErrUnknownFont and
// leaves the font unchanged.
func (d *Drawing) SetFont(name string, size float64) error {
	src, err := text.Lookup(name)
	if err != nil {
		return err
	}
	d.st.fontName = name
	d.st.face = src.Face(size)
	return nil
}

// SetFontSize changes the size of the current font.
func (d *Drawing) SetFontSize(size float64) {
	d.st.face = d.st.face.Source().Face(size)
}

// SetFontFace sets the current face directly.
func (d *Drawing) SetFontFace(face *text.Face) {
	if face == nil {
		return
	}
	d.st.fontName = face.Source().Name()
	d.st.face = face
}

// FontFace returns the current face.
func (d *Drawing) FontFace() *text.Face {
	return d.st.face
}

// FontSize returns the current font size.
func (d *Drawing) FontSize() float64 {
	return d.st.face.Size()
}

// LoadFont reads a TTF or OTF file and registers it as name.
func LoadFont(name, path string) error {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return err
	}
	text.Register(name, src)
	return nil
}

// RegisterFont registers TTF or OTF data as name.
func RegisterFont(name string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("sketch: register font %q: %w", name, err)
	}
	text.Register(name, src)
	return nil
}

// Text fills s with its baseline starting at p. The current path is left
// untouched.
func (d *Drawing) Text(s string, p Point) {
	d.TextAligned(s, p, AlignLeft, AlignBaseline)
}

// TextCentered fills s centered horizontally on p, baseline at p.
func (d *Drawing) TextCentered(s string, p Point) {
	d.TextAligned(s, p, AlignCenter, AlignBaseline)
}

// TextAligned fills s aligned to p. Vertical alignment uses the font
// ascent and descent, so strings share a baseline whatever their ink.
func (d *Drawing) TextAligned(s string, p Point, h HAlign, v VAlign) {
	saved := d.path
	d.path = recording.NewPath()
	d.textPath(s, p, h, v)
	d.Fill()
	d.path = saved
}

// TextRotated fills s aligned to p and rotated by angle around p.
func (d *Drawing) TextRotated(s string, p Point, angle float64, h HAlign, v VAlign) {
	d.Layer(func() {
		d.Translate(p.X, p.Y)
		d.Rotate(angle)
		d.TextAligned(s, O, h, v)
	})
}

// TextPath adds the glyph outlines of s, baseline starting at p, to the
// current path so they can be clipped, stroked or filled.
func (d *Drawing) TextPath(s string, p Point) {
	d.textPath(s, p, AlignLeft, AlignBaseline)
}

func (d *Drawing) textPath(s string, p Point, h HAlign, v VAlign) {
	face := d.st.face
	origin := p.Add(d.alignOffset(s, h, v))

	d.NewSubPath()
	open := false
	for _, seg := range face.Outline(s) {
		switch seg.Op {
		case text.OpMoveTo:
			if open {
				d.ClosePath()
			}
			open = true
			d.MoveTo(origin.Add(Point(seg.Pts[0])))
		case text.OpLineTo:
			d.LineTo(origin.Add(Point(seg.Pts[0])))
		case text.OpQuadTo:
			d.QuadTo(origin.Add(Point(seg.Pts[0])), origin.Add(Point(seg.Pts[1])))
		case text.OpCubeTo:
			d.CurveTo(origin.Add(Point(seg.Pts[0])), origin.Add(Point(seg.Pts[1])), origin.Add(Point(seg.Pts[2])))
		}
	}
	if open {
		d.ClosePath()
	}
	d.NewSubPath()
}

// alignOffset returns the baseline origin offset for the alignment.
func (d *Drawing) alignOffset(s string, h HAlign, v VAlign) Point {
	var off Point
	switch h {
	case AlignCenter:
		off.X = -d.st.face.Advance(s) / 2
	case AlignRight:
		off.X = -d.st.face.Advance(s)
	}

	m := d.st.face.Metrics()
	switch v {
	case AlignTop:
		off.Y = m.Ascent
	case AlignMiddle:
		off.Y = (m.Ascent - m.Descent) / 2
	case AlignBottom:
		off.Y = -m.Descent
	}
	return off
}

// TextExtents measures s with the current font, in user units.
func (d *Drawing) TextExtents(s string) TextExtents {
	return d.st.face.Extents(s)
}

// TextWidth returns the advance width of s with the current font.
func (d *Drawing) TextWidth(s string) float64 {
	return d.st.face.Advance(s)
}

// FontMetrics returns the metrics of the current font.
func (d *Drawing) FontMetrics() FontMetrics {
	return d.st.face.Metrics()
}

// TextBox returns the user-space box around s placed like TextAligned,
// spanning the font ascent to descent.
func (d *Drawing) TextBox(s string, p Point, h HAlign, v VAlign) Rect {
	origin := p.Add(d.alignOffset(s, h, v))
	m := d.st.face.Metrics()
	w := d.st.face.Advance(s)
	return Rect{
		Min: Pt(origin.X, origin.Y-m.Ascent),
		Max: Pt(origin.X+w, origin.Y+math.Abs(m.Descent)),
	}
}
