package sketch

import (
	"fmt"
	"image"
	"os"

	// Decoders for ReadImage.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func ReadImage(path string) (image.Image, error) {
	// #nosec G304 -- Image path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sketch: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sketch: decode %s: %w", path, err)
	}
	Logger().Debug("sketch: image read", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

// ReadSVG rasterizes an SVG file to a width x height image, scaling its
// view box to fit.
func ReadSVG(path string, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIcon(path, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("sketch: read svg %s: %w", path, err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// PlaceImage paints img with its top-left corner at p, or its center at p
// if centered is true. One image pixel covers one user unit; the current
// transform, rotation included, and opacity apply.
func (d *Drawing) PlaceImage(img image.Image, p Point, centered bool) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if centered {
		p = p.Sub(Pt(float64(b.Dx())/2, float64(b.Dy())/2))
	}
	m := d.st.matrix.
		Multiply(Translate(p.X, p.Y)).
		Multiply(Translate(-float64(b.Min.X), -float64(b.Min.Y)))
	d.rec.DrawImage(img, m.device(), d.st.color.A)
}

// PlaceImageScaled paints img stretched to fill the user-space rect r.
func (d *Drawing) PlaceImageScaled(img image.Image, r Rect) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	m := d.st.matrix.
		Multiply(Translate(r.Min.X, r.Min.Y)).
		Multiply(Scale(r.Width()/float64(b.Dx()), r.Height()/float64(b.Dy()))).
		Multiply(Translate(-float64(b.Min.X), -float64(b.Min.Y)))
	d.rec.DrawImage(img, m.device(), d.st.color.A)
}
