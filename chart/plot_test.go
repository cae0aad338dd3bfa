package chart

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/recording"
)

func band() vg.Path {
	var p vg.Path
	p.Move(vg.Point{X: 0, Y: 0})
	p.Line(vg.Point{X: 100, Y: 0})
	p.Line(vg.Point{X: 100, Y: 10})
	p.Line(vg.Point{X: 0, Y: 10})
	p.Close()
	return p
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestPlotCanvasFlipsY(t *testing.T) {
	d := sketch.NewDrawingFormat(100, 100, "png")
	c := NewPlotCanvas(d, 100, 100)
	c.SetColor(color.Black)
	c.Fill(band())

	b := firstPath(t, d).Bounds()
	if !near(b.MinX, 0) || !near(b.MaxX, 100) || !near(b.MinY, 90) || !near(b.MaxY, 100) {
		t.Errorf("bottom band bounds = %+v, want x 0..100 y 90..100", b)
	}
	if d.Depth() != 0 || !d.Matrix().IsIdentity() {
		t.Error("Fill leaked drawing state")
	}
	if w, h := c.Size(); w != 100 || h != 100 {
		t.Errorf("Size() = %v, %v", w, h)
	}
}

func TestPlotCanvasStrokeWidth(t *testing.T) {
	d := sketch.NewDrawingFormat(100, 100, "png")
	c := NewPlotCanvas(d, 100, 100)
	c.SetLineWidth(0)
	c.Stroke(band())
	if n := len(d.Recording().Commands()); n != 0 {
		t.Fatalf("zero width stroke recorded %d commands", n)
	}

	d = sketch.NewDrawingFormat(100, 100, "png")
	c = NewPlotCanvas(d, 100, 100)
	c.SetLineWidth(2)
	c.SetLineDash([]vg.Length{2, 2}, 0)
	c.Stroke(band())
	if _, strokes := counts(d); strokes != 1 {
		t.Errorf("recorded %d strokes, want 1", strokes)
	}
}

func TestPlotCanvasPushPop(t *testing.T) {
	d := sketch.NewDrawingFormat(100, 100, "png")
	c := NewPlotCanvas(d, 100, 100)
	c.Push()
	c.Translate(vg.Point{X: 10, Y: 10})
	c.Scale(2, 2)
	c.Pop()
	c.Pop()
	c.Fill(band())

	b := firstPath(t, d).Bounds()
	if !near(b.MinX, 0) || !near(b.MaxY, 100) {
		t.Errorf("bounds after Pop = %+v, want the untransformed band", b)
	}
}

func TestPlotCanvasTranslate(t *testing.T) {
	d := sketch.NewDrawingFormat(100, 100, "png")
	c := NewPlotCanvas(d, 100, 100)
	c.Translate(vg.Point{X: 10, Y: 20})
	c.Fill(band())

	b := firstPath(t, d).Bounds()
	if !near(b.MinX, 10) || !near(b.MinY, 70) || !near(b.MaxY, 80) {
		t.Errorf("translated band bounds = %+v, want x from 10, y 70..80", b)
	}
}

func TestPlotCanvasArc(t *testing.T) {
	d := sketch.NewDrawingFormat(100, 100, "png")
	c := NewPlotCanvas(d, 100, 100)
	var p vg.Path
	p.Arc(vg.Point{X: 50, Y: 30}, 10, 0, 2*math.Pi)
	p.Close()
	c.Fill(p)

	b := firstPath(t, d).Bounds()
	if !near(b.MinX, 40) || !near(b.MaxX, 60) || !near(b.MinY, 60) || !near(b.MaxY, 80) {
		t.Errorf("circle bounds = %+v, want x 40..60 y 60..80", b)
	}
}

func TestPlotCanvasFillStringUpright(t *testing.T) {
	d := sketch.NewDrawingFormat(100, 100, "png")
	c := NewPlotCanvas(d, 100, 100)
	f := font.Face{Font: font.Font{Typeface: "Liberation", Size: 12}}
	c.FillString(f, vg.Point{X: 10, Y: 50}, "H")

	b := firstPath(t, d).Bounds()
	if b.MaxY > 50.5 || b.MinY > 45 {
		t.Errorf("glyph bounds = %+v, want ink above the baseline at y 50", b)
	}
	if b.MinX < 9.5 {
		t.Errorf("glyph starts at x %v, want from 10", b.MinX)
	}

	d = sketch.NewDrawingFormat(100, 100, "png")
	NewPlotCanvas(d, 100, 100).FillString(font.Face{}, vg.Point{}, "H")
	if n := len(d.Recording().Commands()); n != 0 {
		t.Errorf("zero size text recorded %d commands", n)
	}
}

func TestPlotCanvasDrawImage(t *testing.T) {
	d := sketch.NewDrawingFormat(100, 100, "png")
	c := NewPlotCanvas(d, 100, 100)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	c.DrawImage(vg.Rectangle{Min: vg.Point{X: 0, Y: 0}, Max: vg.Point{X: 20, Y: 20}}, img)
	if n := len(d.Recording().Commands()); n == 0 {
		t.Error("DrawImage recorded nothing")
	}
	if d.Depth() != 0 {
		t.Error("DrawImage leaked drawing state")
	}
}

func TestPlotFontName(t *testing.T) {
	tests := []struct {
		font font.Font
		want string
	}{
		{font.Font{Typeface: "Go-Mono"}, "Go-Mono"},
		{font.Font{}, "Go"},
		{font.Font{Typeface: "Liberation"}, "Go"},
		{font.Font{Typeface: "Liberation", Weight: xfont.WeightBold}, "Go-Bold"},
		{font.Font{Typeface: "Liberation", Style: xfont.StyleItalic}, "Go-Italic"},
		{font.Font{Typeface: "Liberation", Variant: "Serif"}, "Go"},
		{font.Font{Typeface: "Liberation", Variant: "Mono", Weight: xfont.WeightBold, Style: xfont.StyleOblique}, "Go-Mono-Bold-Italic"},
	}
	for _, tt := range tests {
		if got := plotFontName(tt.font); got != tt.want {
			t.Errorf("plotFontName(%+v) = %q, want %q", tt.font, got, tt.want)
		}
	}
}

func TestDrawPlotBenchmarkBars(t *testing.T) {
	p, err := BenchmarkBars(SampleBenchmarks(), "go")
	if err != nil {
		t.Fatalf("BenchmarkBars error: %v", err)
	}
	d := sketch.NewDrawingFormat(300, 200, "png")
	DrawPlot(d, p, sketch.Rect{Min: sketch.Pt(10, 10), Max: sketch.Pt(290, 190)})

	fills, strokes := counts(d)
	if fills < 6 || strokes == 0 {
		t.Errorf("recorded %d fills and %d strokes, want bars and axes", fills, strokes)
	}
	rec := d.Recording()
	for _, c := range rec.Commands() {
		var path *recording.Path
		switch c := c.(type) {
		case recording.FillPathCommand:
			path = rec.Resources().GetPath(c.Path)
		case recording.StrokePathCommand:
			path = rec.Resources().GetPath(c.Path)
		default:
			continue
		}
		b := path.Bounds()
		if b.MinX < 0 || b.MaxX > 300 || b.MinY < 0 || b.MaxY > 200 {
			t.Fatalf("path bounds %+v fall outside the drawing", b)
		}
	}
	if d.Depth() != 0 || !d.Matrix().IsIdentity() {
		t.Error("DrawPlot leaked drawing state")
	}
}

func TestBenchmarkBarsUnknownLanguage(t *testing.T) {
	if _, err := BenchmarkBars(SampleBenchmarks(), "cobol"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("error = %v, want ErrUnknownLanguage", err)
	}
	if _, err := BenchmarkBars(nil, "go"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("nil table error = %v, want ErrUnknownLanguage", err)
	}
}
