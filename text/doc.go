// Package text provides font loading, shaping and glyph outlines for sketch.
//
// Text is never rasterized here. A Face shapes a string with the go-text
// HarfBuzz shaper and returns its glyph outlines as path segments, which
// the drawing layer transforms and fills like any other path. Every output
// format therefore renders text identically, without embedded fonts.
//
// # Architecture
//
//	FontSource (heavyweight, shared)
//	    ├── sfnt.Font       outlines, metrics, bounds
//	    └── typesetting Font shaping (kerning, ligatures)
//	Face (FontSource + size, lightweight)
//	    ├── Shape    positioned glyphs
//	    ├── Outline  y-down segments from the baseline origin
//	    └── Extents  ink box and advance
//
// # Font registry
//
// Fonts are selected by name. The Go font family is built in:
//
//	src, err := text.Lookup("Go-Bold")
//	face := src.Face(24)
//
// Other fonts are added with Register:
//
//	src, err := text.NewFontSourceFromFile("DejaVuSans.ttf")
//	text.Register("DejaVu", src)
package text
