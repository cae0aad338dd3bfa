package geo

import "errors"

var (
	// ErrBadRecord is returned for a CSV row that cannot be parsed.
	// The wrapping error names the line.
	ErrBadRecord = errors.New("geo: bad record")

	// ErrMissingColumn is returned when a required CSV column has no
	// recognised header.
	ErrMissingColumn = errors.New("geo: missing column")
)
