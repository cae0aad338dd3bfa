package sketch

import (
	"errors"

	"github.com/gogpu/sketch/recording"
	"github.com/gogpu/sketch/text"
)

// Sentinel errors returned by Drawing operations.
var (
	// ErrUnknownFormat is returned for an output format or file extension
	// with no registered backend.
	ErrUnknownFormat = errors.New("sketch: unknown output format")

	// ErrStackUnderflow is recorded when Restore is called without a
	// matching Save.
	ErrStackUnderflow = errors.New("sketch: restore without matching save")

	// ErrUnbalancedStack is returned by Finish and Encode when Save calls
	// outnumber Restore calls.
	ErrUnbalancedStack = errors.New("sketch: unbalanced save/restore")

	// ErrUnknownColor is returned for an unrecognized color name or hex string.
	ErrUnknownColor = errors.New("sketch: unknown color")

	// ErrUnknownAction is returned by ParseAction for an unrecognized name.
	ErrUnknownAction = errors.New("sketch: unknown action")
)

// Errors from sub-packages, re-exported for errors.Is checks.
var (
	ErrUnknownFont   = text.ErrUnknownFont
	ErrEmptyFontData = text.ErrEmptyFontData
	ErrInvalidRef    = recording.ErrInvalidRef
)
