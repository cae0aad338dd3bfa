package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
// FontSource is heavyweight and should be shared across the application.
//
// The font data is parsed twice: by x/image/font/sfnt for outlines and
// metrics, and by go-text/typesetting for shaping. Both parsed forms are
// read-only, so FontSource is safe for concurrent use.
type FontSource struct {
	name    string
	outline *sfnt.Font
	shaping *font.Font
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is retained and must not be modified afterwards.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	outline, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}

	return &FontSource{
		name:    fontName(outline),
		outline: outline,
		shaping: face.Font,
	}, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name, or "Unknown Font".
func (s *FontSource) Name() string {
	return s.name
}

// SFNT returns the parsed outline font.
func (s *FontSource) SFNT() *sfnt.Font {
	return s.outline
}

// Face creates a Face at the specified size in user units.
// Panics if s is nil (e.g. when the error from NewFontSource was ignored).
func (s *FontSource) Face(size float64) *Face {
	if s == nil {
		panic("text: FontSource is nil; did you check the error from NewFontSource?")
	}
	return &Face{source: s, size: size}
}

func fontName(f *sfnt.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
