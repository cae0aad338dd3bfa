package sketch

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/gogpu/sketch/recording"
	"github.com/gogpu/sketch/text"
)

// Drawing is a mutable 2D drawing context.
//
// Drawing calls do not rasterize. They are captured as device-space
// commands in a recording, and Finish replays that recording into the
// backend registered for the output format. The same drawing code
// therefore produces PNG, SVG, PDF or EPS output.
//
// Errors from drawing calls are sticky: the first one is kept, later calls
// still run, and Err or Finish report it.
//
// A Drawing is not safe for concurrent use.
type Drawing struct {
	width, height int
	filename      string
	format        string

	rec   *recording.Recorder
	st    state
	stack []state
	path  *recording.Path

	tolerance float64
	err       error
}

// state is the part of a Drawing saved by Save and restored by Restore.
type state struct {
	matrix Matrix

	// color holds the hue in R, G, B and the opacity in A.
	color       RGBA
	blend       *Blend
	blendMatrix Matrix

	lineWidth  float64
	lineCap    LineCap
	lineJoin   LineJoin
	miterLimit float64
	dash       []float64
	dashOffset float64
	fillRule   FillRule

	fontName string
	face     *text.Face
}

// NewDrawing creates a drawing of width x height units that Finish writes
// to filename. The output format comes from the filename extension unless
// WithFormat is given; an unknown extension is reported by Err and Finish.
func NewDrawing(width, height int, filename string, opts ...Option) *Drawing {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := newDrawing(width, height, o)
	d.filename = filename
	d.format = o.format
	if d.format == "" {
		format, err := FormatForFilename(filename)
		d.setErr(err)
		d.format = format
	}
	Logger().Debug("sketch: new drawing", "width", width, "height", height, "file", filename, "format", d.format)
	return d
}

// NewDrawingFormat creates an in-memory drawing for the named format.
// Use Encode or Image to obtain the output.
func NewDrawingFormat(width, height int, format string, opts ...Option) *Drawing {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.format != "" {
		format = o.format
	}

	d := newDrawing(width, height, o)
	d.format = format
	return d
}

func newDrawing(width, height int, o options) *Drawing {
	d := &Drawing{
		width:     width,
		height:    height,
		rec:       recording.NewRecorder(width, height),
		path:      recording.NewPath(),
		tolerance: o.tolerance,
		st: state{
			matrix:     Identity(),
			color:      Black,
			lineWidth:  2,
			miterLimit: 10,
		},
	}
	if err := d.SetFont(o.font, o.fontSize); err != nil {
		d.setErr(err)
		d.st.fontName = text.DefaultFont
		d.st.face = text.Default().Face(o.fontSize)
	}
	if o.background != nil {
		d.Background(*o.background)
	}
	return d
}

// Width returns the drawing width.
func (d *Drawing) Width() int { return d.width }

// Height returns the drawing height.
func (d *Drawing) Height() int { return d.height }

// Filename returns the output filename, empty for in-memory drawings.
func (d *Drawing) Filename() string { return d.filename }

// Format returns the output format name.
func (d *Drawing) Format() string { return d.format }

// Tolerance returns the simplification tolerance in device units.
func (d *Drawing) Tolerance() float64 { return d.tolerance }

// Err returns the first error recorded by a drawing call, or nil.
func (d *Drawing) Err() error { return d.err }

func (d *Drawing) setErr(err error) {
	if err == nil {
		return
	}
	Logger().Debug("sketch: drawing error", "err", err)
	if d.err == nil {
		d.err = err
	}
}

// Recording returns an immutable snapshot of the commands drawn so far.
func (d *Drawing) Recording() *recording.Recording {
	return d.rec.Finish()
}

// Finish replays the drawing into the backend for its format and writes
// the result to the drawing's file.
func (d *Drawing) Finish() error {
	if d.filename == "" {
		return fmt.Errorf("sketch: drawing has no filename; use Encode")
	}
	backend, err := d.render()
	if err != nil {
		return err
	}

	if fb, ok := backend.(recording.FileBackend); ok {
		if err := fb.SaveToFile(d.filename); err != nil {
			return fmt.Errorf("sketch: save %s: %w", d.filename, err)
		}
		return nil
	}

	f, err := os.Create(d.filename)
	if err != nil {
		return fmt.Errorf("sketch: %w", err)
	}
	if err := writeBackend(backend, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode replays the drawing into the backend for its format and writes
// the result to w.
func (d *Drawing) Encode(w io.Writer) error {
	backend, err := d.render()
	if err != nil {
		return err
	}
	return writeBackend(backend, w)
}

// Image rasterizes the drawing regardless of its output format.
func (d *Drawing) Image() (image.Image, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	backend, err := recording.NewBackend("png")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}
	if err := d.rec.Finish().Playback(backend); err != nil {
		return nil, fmt.Errorf("sketch: render: %w", err)
	}
	ib, ok := backend.(recording.ImageBackend)
	if !ok {
		return nil, fmt.Errorf("sketch: png backend does not produce images")
	}
	return ib.Image(), nil
}

func (d *Drawing) check() error {
	if d.err != nil {
		return d.err
	}
	if n := len(d.stack); n != 0 {
		return fmt.Errorf("%w: %d unmatched Save", ErrUnbalancedStack, n)
	}
	return nil
}

func (d *Drawing) render() (recording.Backend, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	backend, err := recording.NewBackend(d.format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}
	if err := d.rec.Finish().Playback(backend); err != nil {
		return nil, fmt.Errorf("sketch: render %s: %w", d.format, err)
	}
	return backend, nil
}

func writeBackend(backend recording.Backend, w io.Writer) error {
	wb, ok := backend.(recording.WriterBackend)
	if !ok {
		return fmt.Errorf("sketch: backend %T cannot write output", backend)
	}
	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("sketch: write: %w", err)
	}
	return nil
}

// Background paints the whole canvas with c, whatever the current
// transform. The current path is left untouched.
func (d *Drawing) Background(c color.Color) {
	rgba := FromColor(c)
	d.rec.FillRect(
		recording.NewRect(0, 0, float64(d.width), float64(d.height)),
		recording.NewSolidBrush(rgba.device()),
	)
}
