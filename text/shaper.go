package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// Glyph is a shaped glyph positioned relative to the start of the run.
// Positions use y-down coordinates in user units.
type Glyph struct {
	// GID is the glyph index in the font.
	GID uint16

	// Cluster is the rune index of the first character this glyph covers.
	Cluster int

	// X, Y is the glyph origin.
	X, Y float64

	// XAdvance is the horizontal pen advance after this glyph.
	XAdvance float64
}

// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper keeps an
// internal buffer and is not safe for concurrent use.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Shape converts s into positioned glyphs using HarfBuzz shaping, so
// kerning and ligatures are applied. Text is shaped left to right in the
// script of its first non-space character.
func (f *Face) Shape(s string) []Glyph {
	if s == "" {
		return nil
	}
	runes := []rune(s)

	// font.Face is not safe for concurrent use; NewFace is cheap.
	face := font.NewFace(f.source.shaping)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      floatToFixed(f.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	glyphs := make([]Glyph, len(output.Glyphs))
	x := 0.0
	for i, g := range output.Glyphs {
		adv := fixedToFloat(g.Advance)
		// go-text offsets are y-up.
		glyphs[i] = Glyph{
			GID:      uint16(g.GlyphID), //nolint:gosec // glyph IDs fit in 16 bits for TrueType/OpenType
			Cluster:  g.TextIndex(),
			X:        x + fixedToFloat(g.XOffset),
			Y:        -fixedToFloat(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return glyphs
}

// detectScript returns the script of the first non-space character.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
