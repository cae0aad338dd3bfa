package recording

import "errors"

// Sentinel errors for the recording package.
var (
	// ErrUnknownBackend is returned by NewBackend for an unregistered name.
	ErrUnknownBackend = errors.New("recording: unknown backend")

	// ErrInvalidRef is returned by Playback when a command references a
	// resource missing from the pool.
	ErrInvalidRef = errors.New("recording: invalid resource reference")
)
