package sketch

import (
	"math"
	"testing"

	"github.com/gogpu/sketch/recording"
)

// lastPath returns the device-space path of the most recent fill or
// stroke in d.
func lastPath(t *testing.T, d *Drawing) *recording.Path {
	t.Helper()
	rec := d.Recording()
	cmds := rec.Commands()
	for i := len(cmds) - 1; i >= 0; i-- {
		switch c := cmds[i].(type) {
		case recording.FillPathCommand:
			return rec.Resources().GetPath(c.Path)
		case recording.StrokePathCommand:
			return rec.Resources().GetPath(c.Path)
		}
	}
	t.Fatal("no path painted")
	return nil
}

func nearRect(r recording.Rect, minX, minY, maxX, maxY float64) bool {
	const eps = 1e-6
	return math.Abs(r.MinX-minX) < eps && math.Abs(r.MinY-minY) < eps &&
		math.Abs(r.MaxX-maxX) < eps && math.Abs(r.MaxY-maxY) < eps
}

func TestShapeBounds(t *testing.T) {
	tests := []struct {
		name                   string
		draw                   func(d *Drawing)
		minX, minY, maxX, maxY float64
	}{
		{"circle", func(d *Drawing) { d.Circle(Pt(50, 50), 10, ActionFill) }, 40, 40, 60, 60},
		{"ellipse", func(d *Drawing) { d.Ellipse(Pt(50, 50), 40, 20, ActionFill) }, 30, 40, 70, 60},
		{"rect", func(d *Drawing) { d.Rect(Pt(10, 20), 30, 40, ActionFill) }, 10, 20, 40, 60},
		{"box", func(d *Drawing) { d.Box(Pt(50, 50), 30, 40, ActionFill) }, 35, 30, 65, 70},
		{"rounded box", func(d *Drawing) { d.RoundedBox(Pt(50, 50), 40, 20, 5, ActionFill) }, 30, 40, 70, 60},
		{"line", func(d *Drawing) { d.Line(Pt(1, 2), Pt(30, 40), ActionStroke) }, 1, 2, 30, 40},
		{"ngon", func(d *Drawing) { d.Ngon(Pt(50, 50), 10, 4, 0, ActionFill) }, 40, 40, 60, 60},
		{"pie", func(d *Drawing) { d.Pie(Pt(50, 50), 10, 0, math.Pi/2, ActionFill) }, 50, 50, 60, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrawingFormat(100, 100, "png")
			tt.draw(d)
			b := lastPath(t, d).Bounds()
			if !nearRect(b, tt.minX, tt.minY, tt.maxX, tt.maxY) {
				t.Errorf("bounds = %+v, want (%v, %v)-(%v, %v)", b, tt.minX, tt.minY, tt.maxX, tt.maxY)
			}
		})
	}
}

func TestRoundedBoxClampsRadius(t *testing.T) {
	d := NewDrawingFormat(100, 100, "png")
	d.RoundedBox(Pt(50, 50), 20, 10, 100, ActionFill)
	b := lastPath(t, d).Bounds()
	if !nearRect(b, 40, 45, 60, 55) {
		t.Errorf("bounds = %+v, want the box itself", b)
	}

	d = NewDrawingFormat(100, 100, "png")
	d.RoundedBox(Pt(50, 50), 20, 10, 0, ActionFill)
	n := 0
	for seg := range lastPath(t, d).Segments() {
		if seg.Verb == recording.VerbCubicTo {
			n++
		}
	}
	if n != 0 {
		t.Errorf("zero radius produced %d curves", n)
	}
}

func TestPolyTooFewPoints(t *testing.T) {
	d := NewDrawingFormat(10, 10, "png")
	d.Poly([]Point{Pt(1, 1)}, ActionFill, true)
	d.Poly(nil, ActionStroke, false)
	if n := len(d.Recording().Commands()); n != 0 {
		t.Errorf("recorded %d commands, want 0", n)
	}
}

func TestPolyOpenAndClosed(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	for _, closed := range []bool{false, true} {
		d := NewDrawingFormat(20, 20, "png")
		d.Poly(pts, ActionStroke, closed)
		var closes int
		for seg := range lastPath(t, d).Segments() {
			if seg.Verb == recording.VerbClose {
				closes++
			}
		}
		if (closes == 1) != closed {
			t.Errorf("closed=%v: %d close segments", closed, closes)
		}
	}
}

func TestPrettypoly(t *testing.T) {
	d := NewDrawingFormat(100, 100, "png")
	pts := NgonPoints(Pt(50, 50), 20, 5, 0)
	var got []Point
	d.Prettypoly(pts, ActionStroke, func(i int, p Point) {
		got = append(got, d.UserToDevice(O))
		d.SetHue(Red)
		d.Circle(O, 2, ActionFill)
	})
	if len(got) != len(pts) {
		t.Fatalf("vertex called %d times, want %d", len(got), len(pts))
	}
	for i := range pts {
		if !got[i].Near(pts[i], 1e-9) {
			t.Errorf("vertex %d origin = %v, want %v", i, got[i], pts[i])
		}
	}
	if d.Depth() != 0 || d.Hue() != Black {
		t.Errorf("vertex state leaked: depth %d hue %+v", d.Depth(), d.Hue())
	}
	if n := countCommands(d, recording.CmdFillPath); n != 5 {
		t.Errorf("fills = %d, want 5", n)
	}
}

func TestNgonPoints(t *testing.T) {
	pts := NgonPoints(Pt(10, 10), 5, 4, 0)
	want := []Point{Pt(15, 10), Pt(10, 15), Pt(5, 10), Pt(10, 5)}
	if len(pts) != len(want) {
		t.Fatalf("got %d points", len(pts))
	}
	for i := range want {
		if !pts[i].Near(want[i], 1e-9) {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
	if NgonPoints(O, 1, 0, 0) != nil {
		t.Error("zero sides should give no points")
	}
}

func TestStarPoints(t *testing.T) {
	pts := StarPoints(O, 10, 5, 0.5, 0)
	if len(pts) != 10 {
		t.Fatalf("got %d points, want 10", len(pts))
	}
	for i, p := range pts {
		want := 10.0
		if i%2 == 1 {
			want = 5
		}
		if math.Abs(p.Length()-want) > 1e-9 {
			t.Errorf("point %d radius = %v, want %v", i, p.Length(), want)
		}
	}
	if StarPoints(O, 1, 1, 0.5, 0) != nil {
		t.Error("one-point star should give no points")
	}
}

func TestArcDirection(t *testing.T) {
	// Clockwise on screen from 0 to pi/2 passes through +y.
	d := NewDrawingFormat(100, 100, "png")
	d.Arc(Pt(50, 50), 10, 0, math.Pi/2, ActionStroke)
	b := lastPath(t, d).Bounds()
	if b.MaxY < 59 || b.MinY < 49 {
		t.Errorf("clockwise arc bounds = %+v", b)
	}

	// Counterclockwise from 0 to pi/2 goes the long way round through -y.
	d = NewDrawingFormat(100, 100, "png")
	d.Carc(Pt(50, 50), 10, 0, math.Pi/2, ActionStroke)
	b = lastPath(t, d).Bounds()
	if b.MinY > 41 || b.MinX > 41 {
		t.Errorf("counterclockwise arc bounds = %+v", b)
	}
}

func TestArcJoinsCurrentPoint(t *testing.T) {
	d := NewDrawingFormat(100, 100, "png")
	d.MoveTo(Pt(0, 0))
	d.Arc(Pt(50, 50), 10, 0, math.Pi, ActionPath)
	var moves, lines int
	for seg := range d.path.Segments() {
		switch seg.Verb {
		case recording.VerbMoveTo:
			moves++
		case recording.VerbLineTo:
			lines++
		}
	}
	if moves != 1 || lines != 1 {
		t.Errorf("moves=%d lines=%d, want 1 and 1", moves, lines)
	}
}

func TestArcLargeAngles(t *testing.T) {
	tests := []struct {
		name string
		draw func(d *Drawing)
	}{
		{"arc far behind", func(d *Drawing) { d.Arc(Pt(50, 50), 10, 1e17, 0, ActionStroke) }},
		{"arc far ahead", func(d *Drawing) { d.Arc(Pt(50, 50), 10, 0, 1e9, ActionStroke) }},
		{"carc far ahead", func(d *Drawing) { d.Carc(Pt(50, 50), 10, 0, 1e17, ActionStroke) }},
		{"carc far behind", func(d *Drawing) { d.Carc(Pt(50, 50), 10, 1e9, 0, ActionStroke) }},
		{"sector", func(d *Drawing) { d.Sector(Pt(50, 50), 5, 10, 1e17, -1e17, ActionFill) }},
		{"pie", func(d *Drawing) { d.Pie(Pt(50, 50), 10, 1e12, 0, ActionFill) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrawingFormat(100, 100, "png")
			tt.draw(d)
			var curves int
			for seg := range lastPath(t, d).Segments() {
				if seg.Verb == recording.VerbCubicTo {
					curves++
				}
			}
			// Each arc is cut to under two turns of quarter segments.
			if curves > 16 {
				t.Errorf("%d curve segments, want at most 16", curves)
			}
			b := lastPath(t, d).Bounds()
			if b.MinX < 38 || b.MaxX > 62 || b.MinY < 38 || b.MaxY > 62 {
				t.Errorf("bounds = %+v, want within the circle", b)
			}
		})
	}
}

func TestArcSweepKeepsEndAngle(t *testing.T) {
	tests := []struct {
		a1, a2, want float64
	}{
		{0, math.Pi / 2, math.Pi / 2},
		{math.Pi / 2, 0, 3 * math.Pi / 2},
		{0, 2 * math.Pi, 2 * math.Pi},
		{0, 5 * math.Pi, 3 * math.Pi},
		{1, 1, 0},
		{0, -2 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := clockwiseSweep(tt.a1, tt.a2); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("clockwiseSweep(%v, %v) = %v, want %v", tt.a1, tt.a2, got, tt.want)
		}
	}
}

func TestSectorAndPie(t *testing.T) {
	d := NewDrawingFormat(100, 100, "png")
	d.Background(White)
	d.Sector(Pt(50, 50), 20, 40, 0, math.Pi/2, ActionFill)
	img, err := d.Image()
	if err != nil {
		t.Fatalf("Image() error: %v", err)
	}
	// Inside the annulus on the 45 degree ray.
	if got := rgbaAt(img, 71, 71); got.R != 0 {
		t.Errorf("annulus pixel = %v, want black", got)
	}
	// Inside the inner radius.
	if got := rgbaAt(img, 55, 55); got.R != 255 {
		t.Errorf("hole pixel = %v, want white", got)
	}

	d = NewDrawingFormat(100, 100, "png")
	d.Sector(Pt(50, 50), 0, 40, 0, math.Pi/2, ActionFill)
	if b := lastPath(t, d).Bounds(); !nearRect(b, 50, 50, 90, 90) {
		t.Errorf("zero inner radius bounds = %+v, want the pie", b)
	}
}

func TestArrow(t *testing.T) {
	d := NewDrawingFormat(100, 100, "png")
	d.Arrow(Pt(10, 50), Pt(90, 50), 10, math.Pi/6)
	if got := commands(d); len(got) != 2 || got[0] != recording.CmdStrokePath || got[1] != recording.CmdFillPath {
		t.Errorf("commands = %v, want stroke then fill", got)
	}
	head := lastPath(t, d).Bounds()
	if head.MaxX != 90 || head.MinX > 82 {
		t.Errorf("head bounds = %+v", head)
	}

	d = NewDrawingFormat(10, 10, "png")
	d.Arrow(Pt(1, 1), Pt(1, 1), 5, 0.5)
	if n := len(d.Recording().Commands()); n != 0 {
		t.Errorf("zero-length arrow recorded %d commands", n)
	}
}
