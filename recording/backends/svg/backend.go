// Package svg provides an SVG backend for the recording system.
//
// Commands become <path> elements written with github.com/ajstarks/svgo.
// Gradients are emitted as <defs> in user space, clips as <clipPath>
// groups, and images as embedded PNG data URIs.
//
//	import _ "github.com/gogpu/sketch/recording/backends/svg"
//
//	backend, _ := recording.NewBackend("svg")
//	rec.Playback(backend)
//	backend.(recording.WriterBackend).WriteTo(w)
package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/gogpu/sketch/recording"
)

func init() {
	recording.Register("svg", func() recording.Backend {
		return NewBackend()
	}, ".svg")
}

// Backend writes recordings as SVG documents.
type Backend struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	width  int
	height int
	nextID int

	// groups counts the open clip groups at each Save level.
	groups []int
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new SVG backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin starts a new document.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg: invalid size %dx%d", width, height)
	}
	b.buf.Reset()
	b.width = width
	b.height = height
	b.nextID = 0
	b.groups = []int{0}
	b.canvas = svg.New(&b.buf)
	b.canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	return nil
}

// End closes all open groups and the document.
func (b *Backend) End() error {
	for len(b.groups) > 0 {
		b.closeGroups()
		b.groups = b.groups[:len(b.groups)-1]
	}
	b.canvas.End()
	return nil
}

// Save opens a new clip level.
func (b *Backend) Save() {
	b.groups = append(b.groups, 0)
}

// Restore closes the clip groups opened since the matching Save.
func (b *Backend) Restore() {
	if len(b.groups) <= 1 {
		return
	}
	b.closeGroups()
	b.groups = b.groups[:len(b.groups)-1]
}

// SetClip opens a group clipped to path.
func (b *Backend) SetClip(path *recording.Path, rule recording.FillRule) {
	if path.IsEmpty() {
		return
	}
	id := b.id("clip")
	b.canvas.ClipPath(`id="` + id + `"`)
	b.canvas.Path(pathData(path), `clip-rule="`+ruleName(rule)+`"`)
	b.canvas.ClipEnd()
	b.canvas.Group(`clip-path="url(#` + id + `)"`)
	b.groups[len(b.groups)-1]++
}

// ClearClip closes the clip groups opened since the most recent Save.
func (b *Backend) ClearClip() {
	b.closeGroups()
}

// FillPath writes a filled <path>.
func (b *Backend) FillPath(path *recording.Path, brush recording.Brush, rule recording.FillRule) {
	if path.IsEmpty() {
		return
	}
	paint, opacity := b.paint(brush)
	attrs := []string{`fill="` + paint + `"`}
	if opacity < 1 {
		attrs = append(attrs, `fill-opacity="`+num(opacity)+`"`)
	}
	if rule == recording.FillRuleEvenOdd {
		attrs = append(attrs, `fill-rule="evenodd"`)
	}
	b.canvas.Path(pathData(path), attrs...)
}

// StrokePath writes a stroked <path>.
func (b *Backend) StrokePath(path *recording.Path, brush recording.Brush, stroke recording.Stroke) {
	if path.IsEmpty() || stroke.Width <= 0 {
		return
	}
	paint, opacity := b.paint(brush)
	attrs := []string{
		`fill="none"`,
		`stroke="` + paint + `"`,
		`stroke-width="` + num(stroke.Width) + `"`,
	}
	if opacity < 1 {
		attrs = append(attrs, `stroke-opacity="`+num(opacity)+`"`)
	}
	switch stroke.Cap {
	case recording.LineCapRound:
		attrs = append(attrs, `stroke-linecap="round"`)
	case recording.LineCapSquare:
		attrs = append(attrs, `stroke-linecap="square"`)
	}
	switch stroke.Join {
	case recording.LineJoinRound:
		attrs = append(attrs, `stroke-linejoin="round"`)
	case recording.LineJoinBevel:
		attrs = append(attrs, `stroke-linejoin="bevel"`)
	default:
		if stroke.MiterLimit > 0 && stroke.MiterLimit != 4 {
			attrs = append(attrs, `stroke-miterlimit="`+num(stroke.MiterLimit)+`"`)
		}
	}
	if stroke.IsDashed() {
		attrs = append(attrs, `stroke-dasharray="`+numList(stroke.Dash)+`"`)
		if stroke.DashOffset != 0 {
			attrs = append(attrs, `stroke-dashoffset="`+num(stroke.DashOffset)+`"`)
		}
	}
	b.canvas.Path(pathData(path), attrs...)
}

// FillRect writes a filled rectangle as a path.
func (b *Backend) FillRect(rect recording.Rect, brush recording.Brush) {
	path := recording.NewPath()
	path.MoveTo(rect.MinX, rect.MinY)
	path.LineTo(rect.MaxX, rect.MinY)
	path.LineTo(rect.MaxX, rect.MaxY)
	path.LineTo(rect.MinX, rect.MaxY)
	path.Close()
	b.FillPath(path, brush, recording.FillRuleNonZero)
}

// DrawImage embeds img as a PNG data URI under the matrix m.
func (b *Backend) DrawImage(img image.Image, m recording.Matrix, opacity float64) {
	if img == nil || opacity <= 0 {
		return
	}
	var data bytes.Buffer
	if err := png.Encode(&data, img); err != nil {
		recording.Logger().Warn("svg: image encoding failed", "err", err)
		return
	}
	bounds := img.Bounds()
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data.Bytes())

	attrs := []string{
		fmt.Sprintf(`transform="matrix(%s %s %s %s %s %s)"`,
			num(m.A), num(m.D), num(m.B), num(m.E), num(m.C), num(m.F)),
		`preserveAspectRatio="none"`,
	}
	if opacity < 1 {
		attrs = append(attrs, `opacity="`+num(opacity)+`"`)
	}
	b.canvas.Image(bounds.Min.X, bounds.Min.Y, bounds.Dx(), bounds.Dy(), href, attrs...)
}

// WriteTo writes the document. Call only after End.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(b.buf.Bytes()).WriteTo(w)
}

// SaveToFile writes the document to path.
func (b *Backend) SaveToFile(path string) error {
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

// Bytes returns the document written so far.
func (b *Backend) Bytes() []byte {
	return b.buf.Bytes()
}

func (b *Backend) closeGroups() {
	top := len(b.groups) - 1
	for ; b.groups[top] > 0; b.groups[top]-- {
		b.canvas.Gend()
	}
}

func (b *Backend) id(prefix string) string {
	b.nextID++
	return prefix + strconv.Itoa(b.nextID)
}

// paint returns the fill or stroke value for brush and its opacity.
// Gradients are written to a <defs> block and referenced by URL.
func (b *Backend) paint(brush recording.Brush) (string, float64) {
	var (
		open  string
		stops []recording.GradientStop
	)
	switch br := brush.(type) {
	case recording.SolidBrush:
		return br.Color.Hex(), br.Color.A
	case *recording.LinearGradientBrush:
		open = fmt.Sprintf(`<linearGradient id="%%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			num(br.Start.X), num(br.Start.Y), num(br.End.X), num(br.End.Y))
		stops = br.Stops
	case *recording.RadialGradientBrush:
		open = fmt.Sprintf(`<radialGradient id="%%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s" fx="%s" fy="%s" fr="%s">`,
			num(br.Center.X), num(br.Center.Y), num(br.EndRadius),
			num(br.Focus.X), num(br.Focus.Y), num(br.StartRadius))
		stops = br.Stops
	default:
		return "#000000", 1
	}

	id := b.id("grad")
	b.canvas.Def()
	fmt.Fprintf(b.canvas.Writer, open+"\n", id)
	for _, s := range stops {
		fmt.Fprintf(b.canvas.Writer, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n",
			num(s.Offset), s.Color.Hex(), num(s.Color.A))
	}
	if _, ok := brush.(*recording.LinearGradientBrush); ok {
		fmt.Fprintln(b.canvas.Writer, "</linearGradient>")
	} else {
		fmt.Fprintln(b.canvas.Writer, "</radialGradient>")
	}
	b.canvas.DefEnd()
	return "url(#" + id + ")", 1
}

// pathData converts path to SVG path data.
func pathData(path *recording.Path) string {
	var sb strings.Builder
	for seg := range path.Segments() {
		p := seg.Pts
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		switch seg.Verb {
		case recording.VerbMoveTo:
			sb.WriteString("M" + num(p[0].X) + "," + num(p[0].Y))
		case recording.VerbLineTo:
			sb.WriteString("L" + num(p[0].X) + "," + num(p[0].Y))
		case recording.VerbQuadTo:
			sb.WriteString("Q" + num(p[0].X) + "," + num(p[0].Y) + " " + num(p[1].X) + "," + num(p[1].Y))
		case recording.VerbCubicTo:
			sb.WriteString("C" + num(p[0].X) + "," + num(p[0].Y) + " " +
				num(p[1].X) + "," + num(p[1].Y) + " " + num(p[2].X) + "," + num(p[2].Y))
		case recording.VerbClose:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func ruleName(rule recording.FillRule) string {
	if rule == recording.FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// num formats v with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numList(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}
