package sketch

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/sketch/recording"
)

// rgbaAt returns the 8-bit color of img at (x, y).
func rgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// commands returns the recorded command types of d.
func commands(d *Drawing) []recording.CommandType {
	var types []recording.CommandType
	for _, c := range d.Recording().Commands() {
		types = append(types, c.Type())
	}
	return types
}

func countCommands(d *Drawing, typ recording.CommandType) int {
	n := 0
	for _, ct := range commands(d) {
		if ct == typ {
			n++
		}
	}
	return n
}

func TestNewDrawingFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"out.png", "png"},
		{"OUT.PNG", "png"},
		{"photo.jpg", "jpeg"},
		{"photo.jpeg", "jpeg"},
		{"anim.gif", "gif"},
		{"scan.tif", "tiff"},
		{"bitmap.bmp", "bmp"},
		{"dir/figure.svg", "svg"},
		{"report.pdf", "pdf"},
		{"print.eps", "eps"},
		{"print.ps", "eps"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			d := NewDrawing(10, 10, tt.filename)
			if err := d.Err(); err != nil {
				t.Fatalf("NewDrawing(%q) error: %v", tt.filename, err)
			}
			if got := d.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
			if d.Filename() != tt.filename || d.Width() != 10 || d.Height() != 10 {
				t.Errorf("drawing = %q %dx%d", d.Filename(), d.Width(), d.Height())
			}
		})
	}
}

func TestNewDrawingUnknownExtension(t *testing.T) {
	d := NewDrawing(10, 10, filepath.Join(t.TempDir(), "out.xyz"))
	if !errors.Is(d.Err(), ErrUnknownFormat) {
		t.Fatalf("Err() = %v, want ErrUnknownFormat", d.Err())
	}
	if err := d.Finish(); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Finish() = %v, want ErrUnknownFormat", err)
	}

	d = NewDrawing(10, 10, "out.xyz", WithFormat("svg"))
	if d.Err() != nil || d.Format() != "svg" {
		t.Errorf("WithFormat override: format %q, err %v", d.Format(), d.Err())
	}
}

func TestFinishWithoutFilename(t *testing.T) {
	d := NewDrawingFormat(10, 10, "png")
	if err := d.Finish(); err == nil {
		t.Error("Finish on an in-memory drawing should fail")
	}
}

func TestRestoreUnderflowIsSticky(t *testing.T) {
	d := NewDrawingFormat(10, 10, "png")
	d.Restore()
	if !errors.Is(d.Err(), ErrStackUnderflow) {
		t.Fatalf("Err() = %v, want ErrStackUnderflow", d.Err())
	}

	// Later errors do not replace the first one.
	d.SetHueName("nosuchcolor")
	if !errors.Is(d.Err(), ErrStackUnderflow) {
		t.Errorf("Err() = %v, want the first error kept", d.Err())
	}
	var buf bytes.Buffer
	if err := d.Encode(&buf); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("Encode() = %v, want ErrStackUnderflow", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Encode wrote %d bytes after an error", buf.Len())
	}
}

func TestUnbalancedSave(t *testing.T) {
	d := NewDrawingFormat(10, 10, "png")
	d.Save()
	d.Save()
	d.Restore()
	if d.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", d.Depth())
	}
	if err := d.Encode(&bytes.Buffer{}); !errors.Is(err, ErrUnbalancedStack) {
		t.Errorf("Encode() = %v, want ErrUnbalancedStack", err)
	}
	if _, err := d.Image(); !errors.Is(err, ErrUnbalancedStack) {
		t.Errorf("Image() = %v, want ErrUnbalancedStack", err)
	}
	d.Grestore()
	if err := d.Encode(&bytes.Buffer{}); err != nil {
		t.Errorf("Encode() after balancing = %v", err)
	}
}

func TestSaveRestoreState(t *testing.T) {
	d := NewDrawingFormat(100, 100, "png")
	d.SetHue(Red)
	d.SetLine(5)
	d.Translate(10, 10)

	d.Layer(func() {
		d.SetHue(Blue)
		d.SetOpacity(0.5)
		d.SetLine(1)
		d.Rotate(1)
		d.SetDash(DashDotted)
		if d.Depth() != 1 {
			t.Errorf("Depth() inside Layer = %d", d.Depth())
		}
	})

	if d.Hue() != Red {
		t.Errorf("Hue() = %+v, want red", d.Hue())
	}
	if d.LineWidth() != 5 {
		t.Errorf("LineWidth() = %v, want 5", d.LineWidth())
	}
	if d.Matrix() != Translate(10, 10) {
		t.Errorf("Matrix() = %+v, want translate(10, 10)", d.Matrix())
	}
	if d.st.dash != nil {
		t.Errorf("dash = %v, want none", d.st.dash)
	}
	if d.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", d.Depth())
	}
}

func TestOriginAndTransforms(t *testing.T) {
	d := NewDrawingFormat(200, 100, "png")
	d.Origin()
	if got := d.UserToDevice(O); got != Pt(100, 50) {
		t.Errorf("origin maps to %v, want (100, 50)", got)
	}
	d.ScaleUniform(2)
	if got := d.UserToDevice(Pt(10, 10)); got != Pt(120, 70) {
		t.Errorf("scaled point = %v, want (120, 70)", got)
	}
	if got := d.DeviceToUser(Pt(120, 70)); !got.Near(Pt(10, 10), 1e-9) {
		t.Errorf("DeviceToUser = %v, want (10, 10)", got)
	}
	d.OriginAt(Pt(5, 5))
	if d.Matrix() != Translate(5, 5) {
		t.Errorf("OriginAt matrix = %+v", d.Matrix())
	}
	d.ResetTransform()
	if !d.Matrix().IsIdentity() {
		t.Errorf("ResetTransform matrix = %+v", d.Matrix())
	}
	d.SetMatrix(Scale(3, 3))
	d.Transform(Translate(1, 0))
	if got := d.UserToDevice(O); got != Pt(3, 0) {
		t.Errorf("Transform result = %v, want (3, 0)", got)
	}
}

func TestHueAndOpacity(t *testing.T) {
	d := NewDrawingFormat(10, 10, "png")
	d.SetOpacity(0.4)
	d.SetHueName("blue")
	if got := d.Hue(); got != Blue.WithAlpha(0.4) {
		t.Errorf("SetHueName keeps opacity: got %+v", got)
	}
	d.SetHueRGB(1, 0, 0)
	if got := d.Hue(); got != Red.WithAlpha(0.4) {
		t.Errorf("SetHueRGB keeps opacity: got %+v", got)
	}
	d.SetColor(Green.WithAlpha(0.1))
	if got := d.Hue(); got != Green.WithAlpha(0.1) {
		t.Errorf("SetColor = %+v", got)
	}
	d.SetOpacity(7)
	if d.Hue().A != 1 {
		t.Errorf("SetOpacity not clamped: %v", d.Hue().A)
	}
	if d.Err() != nil {
		t.Fatalf("unexpected error: %v", d.Err())
	}
	d.SetHueName("nosuchcolor")
	if !errors.Is(d.Err(), ErrUnknownColor) {
		t.Errorf("Err() = %v, want ErrUnknownColor", d.Err())
	}
}

func TestDashStyles(t *testing.T) {
	d := NewDrawingFormat(10, 10, "png")
	d.SetLine(3)
	d.SetDash(DashDashed)
	if want := []float64{12, 6}; !equalFloats(d.st.dash, want) {
		t.Errorf("dashed pattern = %v, want %v", d.st.dash, want)
	}
	d.SetDash(DashSolid)
	if d.st.dash != nil {
		t.Errorf("solid pattern = %v", d.st.dash)
	}

	d.SetDashPattern([]float64{0, 0}, 1)
	if d.st.dash != nil {
		t.Errorf("all-zero pattern should remove dashing, got %v", d.st.dash)
	}
	d.SetDashPattern([]float64{5, 1}, 2)
	d.Scale(2, 2)
	s := d.stroke()
	if s.Width != 6 || !equalFloats(s.Dash, []float64{10, 2}) || s.DashOffset != 4 {
		t.Errorf("device stroke = %+v", s)
	}
	if d.Err() != nil {
		t.Fatalf("unexpected error: %v", d.Err())
	}

	d.SetDashPattern([]float64{1, -1}, 0)
	if d.Err() == nil {
		t.Error("negative dash length not reported")
	}
	d2 := NewDrawingFormat(10, 10, "png")
	d2.SetDash(DashStyle(99))
	if d2.Err() == nil {
		t.Error("unknown dash style not reported")
	}
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestImageRendersDrawing(t *testing.T) {
	d := NewDrawingFormat(40, 40, "svg")
	d.Background(White)
	d.SetHue(Red)
	d.Box(Pt(20, 20), 20, 20, ActionFill)

	img, err := d.Image()
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("image bounds = %v", b)
	}
	if got := rgbaAt(img, 20, 20); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := rgbaAt(img, 2, 2); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("corner pixel = %v, want white", got)
	}
}

func TestBackgroundIgnoresTransform(t *testing.T) {
	d := NewDrawingFormat(20, 20, "png")
	d.Translate(100, 100)
	d.Scale(0.1, 0.1)
	d.Background(Blue)
	img, err := d.Image()
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}
	for _, p := range []image.Point{{0, 0}, {19, 19}, {10, 3}} {
		if got := rgbaAt(img, p.X, p.Y); got != (color.NRGBA{B: 255, A: 255}) {
			t.Errorf("pixel %v = %v, want blue", p, got)
		}
	}
}

func TestEncodeFormats(t *testing.T) {
	tests := []struct {
		format string
		prefix string
	}{
		{"png", "\x89PNG"},
		{"jpeg", "\xff\xd8"},
		{"gif", "GIF8"},
		{"bmp", "BM"},
		{"svg", "<?xml"},
		{"pdf", "%PDF-"},
		{"eps", "%!PS-Adobe"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			d := NewDrawingFormat(30, 20, tt.format)
			d.Background(White)
			d.SetHue(Orange)
			d.Circle(Pt(15, 10), 8, ActionFillStroke)

			var buf bytes.Buffer
			if err := d.Encode(&buf); err != nil {
				t.Fatalf("Encode(%s) error: %v", tt.format, err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("output starts %q, want %q", buf.String()[:min(buf.Len(), 8)], tt.prefix)
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	d := NewDrawingFormat(10, 10, "webm")
	if err := d.Encode(&bytes.Buffer{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode() = %v, want ErrUnknownFormat", err)
	}
}

func TestFinishWritesFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "a.svg", "a.pdf", "a.eps", "a.jpg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			d := NewDrawing(16, 16, path)
			d.Background(Grey)
			if err := d.Finish(); err != nil {
				t.Fatalf("Finish() error: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Size() == 0 {
				t.Error("output file is empty")
			}
		})
	}
}

func TestWithBackgroundOption(t *testing.T) {
	d := NewDrawingFormat(8, 8, "png", WithBackground(Green))
	if got := countCommands(d, recording.CmdFillRect); got != 1 {
		t.Fatalf("FillRect commands = %d, want 1", got)
	}
	img, err := d.Image()
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}
	if got := rgbaAt(img, 4, 4); got != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("pixel = %v, want green", got)
	}
}
