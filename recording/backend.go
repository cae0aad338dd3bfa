package recording

import (
	"image"
	"io"
)

// Backend is the interface that all output backends implement.
// Backends receive device-space drawing commands and translate them to
// their output format (raster pixels, PDF content streams, SVG elements,
// PostScript operators).
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register(), naming the file
//     extensions it writes
//  2. Handle all Backend methods (even if no-op for some)
//  3. Keep its own graphics-state stack for Save/Restore; clips set after
//     a Save are dropped by the matching Restore
//  4. Flip or rescale coordinates if its format needs it (PDF, EPS)
//
// Example registration:
//
//	func init() {
//	    recording.Register("pdf", func() recording.Backend {
//	        return NewBackend()
//	    }, ".pdf")
//	}
type Backend interface {
	// Begin initializes the backend for a width x height canvas.
	Begin(width, height int) error

	// End finalizes the output. WriteTo or SaveToFile follow End.
	End() error

	// Save pushes the graphics state (the clip region).
	Save()

	// Restore pops the graphics state. An empty stack is a no-op.
	Restore()

	// SetClip intersects the clip region with path.
	SetClip(path *Path, rule FillRule)

	// ClearClip removes the clips set since the most recent Save.
	ClearClip()

	// FillPath fills path with brush.
	FillPath(path *Path, brush Brush, rule FillRule)

	// StrokePath strokes path with brush and stroke style.
	StrokePath(path *Path, brush Brush, stroke Stroke)

	// FillRect fills an axis-aligned rectangle.
	FillRect(rect Rect, brush Brush)

	// DrawImage draws img; m maps image pixel space to device space.
	DrawImage(img image.Image, m Matrix, opacity float64)
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to w. Call only after End.
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content to path. Call only after End.
	SaveToFile(path string) error
}

// ImageBackend extends Backend with access to the rendered pixels.
// It is implemented by the raster backend.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before End.
	Image() image.Image
}
