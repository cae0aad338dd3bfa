package text

import (
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face represents a font face at a specific size.
// This is a lightweight object created by FontSource.Face.
// Face is safe for concurrent use.
type Face struct {
	source *FontSource
	size   float64
}

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource { return f.source }

// Size returns the size of this face in user units.
func (f *Face) Size() float64 { return f.size }

// Metrics returns the font metrics at this face's size.
func (f *Face) Metrics() Metrics {
	var buf sfnt.Buffer
	m, err := f.source.outline.Metrics(&buf, floatToFixed(f.size), xfont.HintingNone)
	if err != nil {
		return Metrics{}
	}

	ascent := fixedToFloat(m.Ascent)
	descent := math.Abs(fixedToFloat(m.Descent))
	return Metrics{
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   math.Max(0, fixedToFloat(m.Height)-ascent-descent),
		XHeight:   fixedToFloat(m.XHeight),
		CapHeight: fixedToFloat(m.CapHeight),
	}
}

// Advance returns the total advance width of the shaped text.
func (f *Face) Advance(s string) float64 {
	total := 0.0
	for _, g := range f.Shape(s) {
		total += g.XAdvance
	}
	return total
}

// Outline returns the glyph outlines of s positioned from a baseline origin
// at (0, 0), with y growing downwards.
func (f *Face) Outline(s string) []Segment {
	glyphs := f.Shape(s)
	if len(glyphs) == 0 {
		return nil
	}

	var (
		buf  sfnt.Buffer
		segs []Segment
	)
	ppem := floatToFixed(f.size)
	for _, g := range glyphs {
		gs, err := f.source.outline.LoadGlyph(&buf, sfnt.GlyphIndex(g.GID), ppem, nil)
		if err != nil {
			Logger().Debug("text: glyph outline unavailable", "gid", g.GID, "err", err)
			continue
		}
		segs = appendSegments(segs, gs, g.X, g.Y)
	}
	return segs
}

// Extents measures the ink bounds and advance of s.
// The ink box is the union of the glyph bounding boxes.
func (f *Face) Extents(s string) Extents {
	glyphs := f.Shape(s)
	if len(glyphs) == 0 {
		return Extents{}
	}

	var (
		buf     sfnt.Buffer
		advance float64
		ink     bool
	)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	ppem := floatToFixed(f.size)
	for _, g := range glyphs {
		advance += g.XAdvance
		b, _, err := f.source.outline.GlyphBounds(&buf, sfnt.GlyphIndex(g.GID), ppem, xfont.HintingNone)
		if err != nil || b.Empty() {
			continue
		}
		ink = true
		minX = math.Min(minX, g.X+fixedToFloat(b.Min.X))
		minY = math.Min(minY, g.Y+fixedToFloat(b.Min.Y))
		maxX = math.Max(maxX, g.X+fixedToFloat(b.Max.X))
		maxY = math.Max(maxY, g.Y+fixedToFloat(b.Max.Y))
	}

	if !ink {
		return Extents{XAdvance: advance}
	}
	return Extents{
		XBearing: minX,
		YBearing: minY,
		Width:    maxX - minX,
		Height:   maxY - minY,
		XAdvance: advance,
	}
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
