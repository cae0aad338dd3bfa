// Package eps provides an Encapsulated PostScript backend for the
// recording system.
//
// The document is written directly as PostScript Level 2 operators. The
// page is flipped once so drawing happens in the same y-down device space
// as the other backends. PostScript has no transparency: colors with alpha
// below one are composited over white, and gradients are painted with the
// color at their midpoint.
//
//	import _ "github.com/gogpu/sketch/recording/backends/eps"
//
//	backend, _ := recording.NewBackend("eps")
//	rec.Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("output.eps")
package eps

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/sketch/recording"
)

func init() {
	recording.Register("eps", func() recording.Backend {
		return NewBackend()
	}, ".eps", ".ps")
}

// Creator is written to the document header.
const Creator = "sketch"

var white = recording.Color{R: 1, G: 1, B: 1, A: 1}

// Backend writes recordings as EPS documents.
type Backend struct {
	body   bytes.Buffer
	doc    bytes.Buffer
	width  int
	height int

	// clips counts the gsave operators opened by SetClip at each Save level.
	clips []int

	warnedAlpha    bool
	warnedGradient bool
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new EPS backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin starts a new document with a width x height bounding box.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("eps: invalid size %dx%d", width, height)
	}
	b.width = width
	b.height = height
	b.clips = []int{0}
	b.warnedAlpha = false
	b.warnedGradient = false
	b.body.Reset()
	b.doc.Reset()
	return nil
}

// End closes open graphics states and assembles the document.
func (b *Backend) End() error {
	for len(b.clips) > 1 {
		b.Restore()
	}
	b.ClearClip()

	fmt.Fprintf(&b.doc, "%%!PS-Adobe-3.0 EPSF-3.0\n")
	fmt.Fprintf(&b.doc, "%%%%Creator: %s\n", Creator)
	fmt.Fprintf(&b.doc, "%%%%BoundingBox: 0 0 %d %d\n", b.width, b.height)
	fmt.Fprintf(&b.doc, "%%%%LanguageLevel: 2\n")
	fmt.Fprintf(&b.doc, "%%%%EndComments\n")
	fmt.Fprintf(&b.doc, "save\n")
	fmt.Fprintf(&b.doc, "0 %d translate 1 -1 scale\n", b.height)
	b.doc.Write(b.body.Bytes())
	fmt.Fprintf(&b.doc, "restore\n")
	fmt.Fprintf(&b.doc, "showpage\n")
	fmt.Fprintf(&b.doc, "%%%%EOF\n")
	return nil
}

// Save pushes the graphics state.
func (b *Backend) Save() {
	b.op("gsave")
	b.clips = append(b.clips, 0)
}

// Restore pops the graphics state. An empty stack is a no-op.
func (b *Backend) Restore() {
	if len(b.clips) <= 1 {
		return
	}
	b.ClearClip()
	b.op("grestore")
	b.clips = b.clips[:len(b.clips)-1]
}

// SetClip intersects the clip region with path.
func (b *Backend) SetClip(path *recording.Path, rule recording.FillRule) {
	if path.IsEmpty() {
		return
	}
	b.op("gsave")
	b.clips[len(b.clips)-1]++
	b.writePath(path)
	if rule == recording.FillRuleEvenOdd {
		b.op("eoclip newpath")
	} else {
		b.op("clip newpath")
	}
}

// ClearClip removes the clips set since the most recent Save.
func (b *Backend) ClearClip() {
	top := len(b.clips) - 1
	for ; b.clips[top] > 0; b.clips[top]-- {
		b.op("grestore")
	}
}

// FillPath fills path with brush.
func (b *Backend) FillPath(path *recording.Path, brush recording.Brush, rule recording.FillRule) {
	if path.IsEmpty() {
		return
	}
	b.setColor(b.color(brush))
	b.writePath(path)
	if rule == recording.FillRuleEvenOdd {
		b.op("eofill")
	} else {
		b.op("fill")
	}
}

// StrokePath strokes path with brush and stroke style.
func (b *Backend) StrokePath(path *recording.Path, brush recording.Brush, stroke recording.Stroke) {
	if path.IsEmpty() || stroke.Width <= 0 {
		return
	}
	b.setColor(b.color(brush))
	b.op(num(stroke.Width) + " setlinewidth")
	b.op(strconv.Itoa(lineCap(stroke.Cap)) + " setlinecap")
	b.op(strconv.Itoa(lineJoin(stroke.Join)) + " setlinejoin")
	if stroke.MiterLimit >= 1 {
		b.op(num(stroke.MiterLimit) + " setmiterlimit")
	}
	if stroke.IsDashed() {
		parts := make([]string, len(stroke.Dash))
		for i, d := range stroke.Dash {
			parts[i] = num(d)
		}
		b.op("[" + strings.Join(parts, " ") + "] " + num(stroke.DashOffset) + " setdash")
	} else {
		b.op("[] 0 setdash")
	}
	b.writePath(path)
	b.op("stroke")
}

// FillRect fills an axis-aligned rectangle.
func (b *Backend) FillRect(rect recording.Rect, brush recording.Brush) {
	b.setColor(b.color(brush))
	b.op(num(rect.MinX) + " " + num(rect.MinY) + " " + num(rect.Width()) + " " + num(rect.Height()) + " rectfill")
}

// DrawImage writes img as an RGB colorimage under m. Alpha is composited
// over white.
func (b *Backend) DrawImage(img image.Image, m recording.Matrix, opacity float64) {
	if img == nil || opacity <= 0 {
		return
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return
	}
	m = m.Multiply(recording.Translate(float64(bounds.Min.X), float64(bounds.Min.Y)))

	b.op("gsave")
	b.op("[" + num(m.A) + " " + num(m.D) + " " + num(m.B) + " " + num(m.E) + " " + num(m.C) + " " + num(m.F) + "] concat")
	fmt.Fprintf(&b.body, "%d %d 8 [1 0 0 1 0 0] currentfile /ASCIIHexDecode filter false 3 colorimage\n", w, h)

	row := make([]byte, 3*w)
	enc := make([]byte, hex.EncodedLen(len(row)))
	lossy := opacity < 1
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a < 0xffff {
				lossy = true
			}
			// Premultiplied components over white: c + (1-a).
			alpha := float64(a) / 0xffff * opacity
			c := recording.Color{
				R: float64(r) / 0xffff * opacity,
				G: float64(g) / 0xffff * opacity,
				B: float64(bl) / 0xffff * opacity,
			}
			i := 3 * (x - bounds.Min.X)
			row[i] = to8(c.R + 1 - alpha)
			row[i+1] = to8(c.G + 1 - alpha)
			row[i+2] = to8(c.B + 1 - alpha)
		}
		hex.Encode(enc, row)
		b.body.Write(enc)
		b.body.WriteByte('\n')
	}
	b.body.WriteString(">\n")
	b.op("grestore")
	if lossy {
		b.warnAlpha()
	}
}

// WriteTo writes the document. Call only after End.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(b.doc.Bytes()).WriteTo(w)
}

// SaveToFile writes the document to path. Call only after End.
func (b *Backend) SaveToFile(path string) error {
	return os.WriteFile(path, b.doc.Bytes(), 0o644)
}

func (b *Backend) op(s string) {
	b.body.WriteString(s)
	b.body.WriteByte('\n')
}

func (b *Backend) setColor(c recording.Color) {
	if c.A < 1 {
		b.warnAlpha()
		c = c.Over(white)
	}
	r, g, bl, _ := c.RGBA8()
	if r == g && g == bl {
		b.op(num(float64(r)/255) + " setgray")
		return
	}
	b.op(num(float64(r)/255) + " " + num(float64(g)/255) + " " + num(float64(bl)/255) + " setrgbcolor")
}

func (b *Backend) color(brush recording.Brush) recording.Color {
	if _, ok := brush.(recording.SolidBrush); !ok && !b.warnedGradient {
		b.warnedGradient = true
		recording.Logger().Warn("eps: gradient painted with its midpoint color")
	}
	return recording.RepresentativeColor(brush)
}

func (b *Backend) warnAlpha() {
	if b.warnedAlpha {
		return
	}
	b.warnedAlpha = true
	recording.Logger().Warn("eps: transparency flattened against white")
}

// writePath writes path as a new PostScript path.
func (b *Backend) writePath(path *recording.Path) {
	var sb strings.Builder
	sb.WriteString("newpath")
	var cur, start recording.Point
	for seg := range path.Segments() {
		p := seg.Pts
		switch seg.Verb {
		case recording.VerbMoveTo:
			sb.WriteString("\n" + num(p[0].X) + " " + num(p[0].Y) + " moveto")
			cur, start = p[0], p[0]
		case recording.VerbLineTo:
			sb.WriteString("\n" + num(p[0].X) + " " + num(p[0].Y) + " lineto")
			cur = p[0]
		case recording.VerbQuadTo:
			c1 := recording.Point{X: cur.X + 2.0/3.0*(p[0].X-cur.X), Y: cur.Y + 2.0/3.0*(p[0].Y-cur.Y)}
			c2 := recording.Point{X: p[1].X + 2.0/3.0*(p[0].X-p[1].X), Y: p[1].Y + 2.0/3.0*(p[0].Y-p[1].Y)}
			sb.WriteString("\n" + curve(c1, c2, p[1]))
			cur = p[1]
		case recording.VerbCubicTo:
			sb.WriteString("\n" + curve(p[0], p[1], p[2]))
			cur = p[2]
		case recording.VerbClose:
			sb.WriteString(" closepath")
			cur = start
		}
	}
	b.op(sb.String())
}

func curve(c1, c2, p recording.Point) string {
	return num(c1.X) + " " + num(c1.Y) + " " + num(c2.X) + " " + num(c2.Y) + " " + num(p.X) + " " + num(p.Y) + " curveto"
}

func lineCap(c recording.LineCap) int {
	switch c {
	case recording.LineCapRound:
		return 1
	case recording.LineCapSquare:
		return 2
	default:
		return 0
	}
}

func lineJoin(j recording.LineJoin) int {
	switch j {
	case recording.LineJoinRound:
		return 1
	case recording.LineJoinBevel:
		return 2
	default:
		return 0
	}
}

// num formats v with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
