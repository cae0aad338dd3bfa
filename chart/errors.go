package chart

import "errors"

var (
	// ErrBadRecord is returned for an input line that cannot be parsed.
	// The wrapping error names the line.
	ErrBadRecord = errors.New("chart: bad record")

	// ErrNoData is returned when there is nothing to draw.
	ErrNoData = errors.New("chart: no data")

	// ErrUnknownLanguage is returned by Normalize for a baseline with no
	// results.
	ErrUnknownLanguage = errors.New("chart: unknown language")
)
