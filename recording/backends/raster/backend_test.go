package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/sketch/recording"
)

var (
	red   = recording.Color{R: 1, A: 1}
	blue  = recording.Color{B: 1, A: 1}
	white = recording.Color{R: 1, G: 1, B: 1, A: 1}
)

func rectPath(x, y, w, h float64) *recording.Path {
	p := recording.NewPath()
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}

func newBackend(t *testing.T, w, h int) *Backend {
	t.Helper()
	b := NewBackend("png")
	if err := b.Begin(w, h); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	return b
}

func pixel(t *testing.T, b *Backend, x, y int) color.RGBA {
	t.Helper()
	r, g, bl, a := b.Image().At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
}

func TestBackendRegistration(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			if !recording.IsRegistered(format) {
				t.Fatalf("%s backend not registered", format)
			}
			backend, err := recording.NewBackend(format)
			if err != nil {
				t.Fatalf("failed to create %s backend: %v", format, err)
			}
			rb, ok := backend.(*Backend)
			if !ok {
				t.Fatalf("backend is %T, want *raster.Backend", backend)
			}
			if rb.Format() != format {
				t.Errorf("Format() = %q, want %q", rb.Format(), format)
			}
		})
	}
}

func TestBackendLifecycle(t *testing.T) {
	backend := NewBackend("")
	if backend.Format() != "png" {
		t.Errorf("default format = %q, want png", backend.Format())
	}
	if backend.Image() != nil {
		t.Error("Image() before Begin should be nil")
	}

	if err := backend.Begin(100, 80); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if backend.Width() != 100 || backend.Height() != 80 {
		t.Errorf("size = %dx%d, want 100x80", backend.Width(), backend.Height())
	}
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	img := backend.Image()
	if img == nil {
		t.Fatal("Image() returned nil")
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("Image bounds = %v, want 100x80", b)
	}
}

func TestBackendBeginInvalidSize(t *testing.T) {
	if err := NewBackend("png").Begin(0, 10); err == nil {
		t.Error("Begin(0, 10) should fail")
	}
}

func TestBackendFillRect(t *testing.T) {
	backend := newBackend(t, 100, 100)
	backend.FillRect(recording.NewRect(10, 10, 50, 50), recording.NewSolidBrush(red))

	if c := pixel(t, backend, 35, 35); c.R < 250 || c.G > 5 || c.A < 250 {
		t.Errorf("pixel inside rect = %v, want red", c)
	}
	if c := pixel(t, backend, 80, 80); c.A != 0 {
		t.Errorf("pixel outside rect = %v, want transparent", c)
	}
}

func TestBackendFillPath(t *testing.T) {
	tests := []struct {
		name   string
		rule   recording.FillRule
		center bool
	}{
		{"nonzero", recording.FillRuleNonZero, true},
		{"evenodd", recording.FillRuleEvenOdd, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newBackend(t, 100, 100)
			// Two nested squares with the same winding.
			path := rectPath(10, 10, 80, 80)
			inner := rectPath(30, 30, 40, 40)
			for seg := range inner.Segments() {
				switch seg.Verb {
				case recording.VerbMoveTo:
					path.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
				case recording.VerbLineTo:
					path.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
				case recording.VerbClose:
					path.Close()
				}
			}
			backend.FillPath(path, recording.NewSolidBrush(blue), tt.rule)

			if c := pixel(t, backend, 20, 20); c.B < 250 {
				t.Errorf("ring pixel = %v, want blue", c)
			}
			filled := pixel(t, backend, 50, 50).A > 0
			if filled != tt.center {
				t.Errorf("center filled = %v, want %v", filled, tt.center)
			}
		})
	}
}

func TestBackendStrokePath(t *testing.T) {
	backend := newBackend(t, 100, 100)
	path := recording.NewPath()
	path.MoveTo(10, 50)
	path.LineTo(90, 50)

	stroke := recording.DefaultStroke()
	stroke.Width = 6
	backend.StrokePath(path, recording.NewSolidBrush(red), stroke)

	if c := pixel(t, backend, 50, 50); c.R < 250 {
		t.Errorf("pixel on line = %v, want red", c)
	}
	if c := pixel(t, backend, 50, 20); c.A != 0 {
		t.Errorf("pixel off line = %v, want transparent", c)
	}

	stroke.Width = 0
	before := pixel(t, backend, 50, 80)
	path2 := recording.NewPath()
	path2.MoveTo(10, 80)
	path2.LineTo(90, 80)
	backend.StrokePath(path2, recording.NewSolidBrush(red), stroke)
	if after := pixel(t, backend, 50, 80); after != before {
		t.Errorf("zero-width stroke painted %v", after)
	}
}

func TestBackendClipSaveRestore(t *testing.T) {
	backend := newBackend(t, 100, 100)

	backend.Save()
	backend.SetClip(rectPath(0, 0, 50, 100), recording.FillRuleNonZero)
	backend.FillRect(recording.NewRect(0, 0, 100, 50), recording.NewSolidBrush(red))
	backend.Restore()

	if c := pixel(t, backend, 25, 25); c.R < 250 {
		t.Errorf("pixel inside clip = %v, want red", c)
	}
	if c := pixel(t, backend, 75, 25); c.A != 0 {
		t.Errorf("pixel outside clip = %v, want transparent", c)
	}

	// After Restore the clip is gone.
	backend.FillRect(recording.NewRect(0, 50, 100, 50), recording.NewSolidBrush(blue))
	if c := pixel(t, backend, 75, 75); c.B < 250 {
		t.Errorf("pixel after restore = %v, want blue", c)
	}

	// Extra Restore calls are ignored.
	backend.Restore()
	backend.Restore()
}

func TestBackendClearClip(t *testing.T) {
	backend := newBackend(t, 100, 100)
	backend.SetClip(rectPath(0, 0, 50, 50), recording.FillRuleNonZero)
	backend.ClearClip()
	backend.FillRect(recording.NewRect(0, 0, 100, 100), recording.NewSolidBrush(red))

	if c := pixel(t, backend, 75, 75); c.R < 250 {
		t.Errorf("pixel after ClearClip = %v, want red", c)
	}
}

func TestBackendLinearGradient(t *testing.T) {
	backend := newBackend(t, 100, 20)
	grad := recording.NewLinearGradientBrush(0, 0, 100, 0).
		AddColorStop(0, red).
		AddColorStop(1, blue)
	backend.FillRect(recording.NewRect(0, 0, 100, 20), grad)

	left := pixel(t, backend, 2, 10)
	right := pixel(t, backend, 97, 10)
	if left.R < 200 || left.B > 50 {
		t.Errorf("left pixel = %v, want mostly red", left)
	}
	if right.B < 200 || right.R > 50 {
		t.Errorf("right pixel = %v, want mostly blue", right)
	}
}

func TestBackendRadialGradientClipped(t *testing.T) {
	backend := newBackend(t, 100, 100)
	backend.SetClip(rectPath(0, 0, 50, 100), recording.FillRuleNonZero)
	grad := recording.NewRadialGradientBrush(50, 50, 0, 50).
		AddColorStop(0, white).
		AddColorStop(1, blue)
	backend.FillRect(recording.NewRect(0, 0, 100, 100), grad)

	if c := pixel(t, backend, 25, 50); c.A == 0 {
		t.Error("pixel inside clip not painted")
	}
	if c := pixel(t, backend, 75, 50); c.A != 0 {
		t.Errorf("pixel outside clip = %v, want transparent", c)
	}
}

func TestBackendDrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{G: 255, A: 255})
		}
	}

	t.Run("scaled", func(t *testing.T) {
		backend := newBackend(t, 100, 100)
		m := recording.Translate(20, 20).Multiply(recording.Scale(3, 3))
		backend.DrawImage(src, m, 1)
		if c := pixel(t, backend, 35, 35); c.G < 250 {
			t.Errorf("pixel inside image = %v, want green", c)
		}
		if c := pixel(t, backend, 60, 60); c.A != 0 {
			t.Errorf("pixel outside image = %v, want transparent", c)
		}
	})

	t.Run("rotated", func(t *testing.T) {
		backend := newBackend(t, 100, 100)
		m := recording.Translate(50, 50).Multiply(recording.Rotate(0.5)).Multiply(recording.Scale(2, 2))
		backend.DrawImage(src, m, 1)
		if c := pixel(t, backend, 55, 60); c.G < 200 {
			t.Errorf("pixel inside rotated image = %v, want green", c)
		}
	})

	t.Run("transparent", func(t *testing.T) {
		backend := newBackend(t, 100, 100)
		backend.DrawImage(src, recording.Identity(), 0)
		if c := pixel(t, backend, 5, 5); c.A != 0 {
			t.Errorf("zero opacity painted %v", c)
		}
	})
}

func TestBackendWriteTo(t *testing.T) {
	decoders := map[string]func(*bytes.Reader) (image.Image, error){
		"png":  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		"jpeg": func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
		"gif":  func(r *bytes.Reader) (image.Image, error) { return gif.Decode(r) },
		"tiff": func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
		"bmp":  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	}

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			backend := NewBackend(format)
			if err := backend.Begin(40, 30); err != nil {
				t.Fatalf("Begin failed: %v", err)
			}
			backend.FillRect(recording.NewRect(0, 0, 40, 30), recording.NewSolidBrush(red))

			var buf bytes.Buffer
			n, err := backend.WriteTo(&buf)
			if err != nil {
				t.Fatalf("WriteTo failed: %v", err)
			}
			if n != int64(buf.Len()) {
				t.Errorf("WriteTo returned %d, buffer has %d bytes", n, buf.Len())
			}

			img, err := decoders[format](bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode %s: %v", format, err)
			}
			if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
				t.Errorf("decoded bounds = %v, want 40x30", b)
			}
		})
	}
}

func TestBackendWriteToUnknownFormat(t *testing.T) {
	backend := NewBackend("webp")
	if err := backend.Begin(10, 10); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	var buf bytes.Buffer
	if _, err := backend.WriteTo(&buf); err == nil {
		t.Error("WriteTo with unsupported format should fail")
	}
}

func TestBackendSaveToFile(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{"png", "bmp"} {
		backend := NewBackend(format)
		if err := backend.Begin(20, 20); err != nil {
			t.Fatalf("Begin failed: %v", err)
		}
		backend.FillRect(recording.NewRect(0, 0, 20, 20), recording.NewSolidBrush(blue))

		path := filepath.Join(dir, "out."+format)
		if err := backend.SaveToFile(path); err != nil {
			t.Fatalf("SaveToFile(%s) failed: %v", format, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestPlayback(t *testing.T) {
	rec := recording.NewRecorder(50, 50)
	rec.FillRect(recording.NewRect(0, 0, 50, 50), recording.NewSolidBrush(white))
	rec.Save()
	rec.FillPath(rectPath(10, 10, 30, 30), recording.NewSolidBrush(red), recording.FillRuleNonZero)
	rec.Restore()

	backend := NewBackend("png")
	if err := rec.Finish().Playback(backend); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}
	if c := pixel(t, backend, 25, 25); c.R < 250 || c.G > 5 {
		t.Errorf("pixel = %v, want red", c)
	}
	if c := pixel(t, backend, 5, 5); c.G < 250 {
		t.Errorf("background pixel = %v, want white", c)
	}
}
