package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownFont is returned by Lookup for an unregistered font name.
	ErrUnknownFont = errors.New("text: unknown font")
)
