// Package pdf provides a PDF backend for the recording system.
//
// Recordings are written as a single page through codeberg.org/go-pdf/fpdf.
// The page measures width x height points, so one device pixel maps to one
// point. Paths are written with fpdf's path operators; clips and miter
// limits, which fpdf has no call for, are written as raw content stream
// operators.
//
// Gradients are not expressible through fpdf's path API and are painted
// with the color at their midpoint.
//
//	import _ "github.com/gogpu/sketch/recording/backends/pdf"
//
//	backend, _ := recording.NewBackend("pdf")
//	rec.Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("output.pdf")
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strconv"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gogpu/sketch/recording"
)

func init() {
	recording.Register("pdf", func() recording.Backend {
		return NewBackend()
	}, ".pdf")
}

// Creator is written to the document information dictionary.
const Creator = "sketch"

// Backend writes recordings as PDF documents.
type Backend struct {
	doc      *fpdf.Fpdf
	out      bytes.Buffer
	width    int
	height   int
	compress bool
	images   int

	// clips counts the extra q operators opened by SetClip at each Save level.
	clips []int
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new PDF backend with compressed content streams.
func NewBackend() *Backend {
	return &Backend{compress: true}
}

// Begin starts a document with one width x height point page.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pdf: invalid size %dx%d", width, height)
	}
	b.width = width
	b.height = height
	b.images = 0
	b.clips = []int{0}
	b.out.Reset()

	b.doc = fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	b.doc.SetCompression(b.compress)
	b.doc.SetCreator(Creator, true)
	b.doc.SetMargins(0, 0, 0)
	b.doc.SetAutoPageBreak(false, 0)
	b.doc.AddPage()
	return b.doc.Error()
}

// End closes open graphics states and produces the document.
func (b *Backend) End() error {
	for len(b.clips) > 1 {
		b.Restore()
	}
	b.ClearClip()
	return b.doc.Output(&b.out)
}

// Save pushes the graphics state.
func (b *Backend) Save() {
	b.doc.TransformBegin()
	b.clips = append(b.clips, 0)
}

// Restore pops the graphics state. An empty stack is a no-op.
func (b *Backend) Restore() {
	if len(b.clips) <= 1 {
		return
	}
	b.ClearClip()
	b.doc.TransformEnd()
	b.clips = b.clips[:len(b.clips)-1]
}

// SetClip intersects the clip region with path. Each clip gets its own
// q so ClearClip can drop it without touching the enclosing Save.
func (b *Backend) SetClip(path *recording.Path, rule recording.FillRule) {
	if path.IsEmpty() {
		return
	}
	b.doc.TransformBegin()
	b.clips[len(b.clips)-1]++
	b.writePath(path)
	if rule == recording.FillRuleEvenOdd {
		b.doc.RawWriteStr("W* n")
	} else {
		b.doc.RawWriteStr("W n")
	}
}

// ClearClip removes the clips set since the most recent Save.
func (b *Backend) ClearClip() {
	top := len(b.clips) - 1
	for ; b.clips[top] > 0; b.clips[top]-- {
		b.doc.TransformEnd()
	}
}

// FillPath fills path with brush.
func (b *Backend) FillPath(path *recording.Path, brush recording.Brush, rule recording.FillRule) {
	if path.IsEmpty() {
		return
	}
	c := b.color(brush)
	b.doc.SetFillColor(channels(c))
	b.doc.SetAlpha(clampAlpha(c.A), "Normal")
	b.writePath(path)
	if rule == recording.FillRuleEvenOdd {
		b.doc.DrawPath("F*")
	} else {
		b.doc.DrawPath("F")
	}
}

// StrokePath strokes path with brush and stroke style.
func (b *Backend) StrokePath(path *recording.Path, brush recording.Brush, stroke recording.Stroke) {
	if path.IsEmpty() || stroke.Width <= 0 {
		return
	}
	c := b.color(brush)
	b.doc.SetDrawColor(channels(c))
	b.doc.SetAlpha(clampAlpha(c.A), "Normal")
	b.doc.SetLineWidth(stroke.Width)
	b.doc.SetLineCapStyle(capStyle(stroke.Cap))
	b.doc.SetLineJoinStyle(joinStyle(stroke.Join))
	if stroke.MiterLimit > 0 {
		b.doc.RawWriteStr(strconv.FormatFloat(stroke.MiterLimit, 'f', 2, 64) + " M")
	}
	if stroke.IsDashed() {
		b.doc.SetDashPattern(stroke.Dash, stroke.DashOffset)
	} else {
		b.doc.SetDashPattern(nil, 0)
	}
	b.writePath(path)
	b.doc.DrawPath("D")
}

// FillRect fills an axis-aligned rectangle.
func (b *Backend) FillRect(rect recording.Rect, brush recording.Brush) {
	path := recording.NewPath()
	path.MoveTo(rect.MinX, rect.MinY)
	path.LineTo(rect.MaxX, rect.MinY)
	path.LineTo(rect.MaxX, rect.MaxY)
	path.LineTo(rect.MinX, rect.MaxY)
	path.Close()
	b.FillPath(path, brush, recording.FillRuleNonZero)
}

// DrawImage embeds img as a PNG XObject placed under m.
func (b *Backend) DrawImage(img image.Image, m recording.Matrix, opacity float64) {
	if img == nil || opacity <= 0 {
		return
	}
	var data bytes.Buffer
	if err := png.Encode(&data, img); err != nil {
		recording.Logger().Warn("pdf: image encoding failed", "err", err)
		return
	}
	b.images++
	name := "img" + strconv.Itoa(b.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	b.doc.RegisterImageOptionsReader(name, opts, &data)

	// fpdf places the image at (0, 0) with one point per pixel in its
	// y-down page space; conjugating m with the page flip gives the
	// matrix to apply in PDF space.
	bounds := img.Bounds()
	m = m.Multiply(recording.Translate(float64(bounds.Min.X), float64(bounds.Min.Y)))
	flip := recording.Matrix{A: 1, E: -1, F: float64(b.height)}
	t := flip.Multiply(m).Multiply(flip)

	b.doc.TransformBegin()
	b.doc.Transform(fpdf.TransformMatrix{A: t.A, B: t.D, C: t.B, D: t.E, E: t.C, F: t.F})
	b.doc.SetAlpha(clampAlpha(opacity), "Normal")
	b.doc.ImageOptions(name, 0, 0, float64(bounds.Dx()), float64(bounds.Dy()), false, opts, 0, "")
	b.doc.TransformEnd()
}

// WriteTo writes the document. Call only after End.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if err := b.err(); err != nil {
		return 0, err
	}
	return bytes.NewReader(b.out.Bytes()).WriteTo(w)
}

// SaveToFile writes the document to path. Call only after End.
func (b *Backend) SaveToFile(path string) error {
	if err := b.err(); err != nil {
		return err
	}
	return os.WriteFile(path, b.out.Bytes(), 0o644)
}

func (b *Backend) err() error {
	if b.doc == nil {
		return errors.New("pdf: document not started")
	}
	return b.doc.Error()
}

// writePath appends path to the content stream. fpdf flips y itself.
// Quadratic segments are raised to cubics; fpdf's CurveTo writes the
// "v" operator, which is not a quadratic.
func (b *Backend) writePath(path *recording.Path) {
	var cur, start recording.Point
	for seg := range path.Segments() {
		p := seg.Pts
		switch seg.Verb {
		case recording.VerbMoveTo:
			b.doc.MoveTo(p[0].X, p[0].Y)
			cur, start = p[0], p[0]
		case recording.VerbLineTo:
			b.doc.LineTo(p[0].X, p[0].Y)
			cur = p[0]
		case recording.VerbQuadTo:
			c1x := cur.X + 2.0/3.0*(p[0].X-cur.X)
			c1y := cur.Y + 2.0/3.0*(p[0].Y-cur.Y)
			c2x := p[1].X + 2.0/3.0*(p[0].X-p[1].X)
			c2y := p[1].Y + 2.0/3.0*(p[0].Y-p[1].Y)
			b.doc.CurveBezierCubicTo(c1x, c1y, c2x, c2y, p[1].X, p[1].Y)
			cur = p[1]
		case recording.VerbCubicTo:
			b.doc.CurveBezierCubicTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
			cur = p[2]
		case recording.VerbClose:
			b.doc.ClosePath()
			cur = start
		}
	}
}

func (b *Backend) color(brush recording.Brush) recording.Color {
	if _, ok := brush.(recording.SolidBrush); !ok {
		recording.Logger().Warn("pdf: gradient painted with its midpoint color")
	}
	return recording.RepresentativeColor(brush)
}

func channels(c recording.Color) (int, int, int) {
	r, g, b, _ := c.RGBA8()
	return int(r), int(g), int(b)
}

func clampAlpha(a float64) float64 {
	return max(0, min(1, a))
}

func capStyle(c recording.LineCap) string {
	switch c {
	case recording.LineCapRound:
		return "round"
	case recording.LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinStyle(j recording.LineJoin) string {
	switch j {
	case recording.LineJoinRound:
		return "round"
	case recording.LineJoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}
