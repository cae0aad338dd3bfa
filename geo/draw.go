package geo

import (
	"image/color"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/orb/simplify"

	"github.com/gogpu/sketch"
)

// DrawGeometry adds g to the current path of d through the view and
// applies action, like the shape methods of sketch.Drawing.
//
// The geometry is clipped to the view bound, projected into user space
// and simplified with Douglas-Peucker at the drawing tolerance, so no
// vertex is dropped that would move a line by more than that many
// device pixels. Points become discs of radius v.PointRadius. The
// argument is not modified.
func DrawGeometry(d *sketch.Drawing, v *MapView, g orb.Geometry, action sketch.Action) {
	if action != sketch.ActionPath {
		d.NewPath()
	}
	if g = prepare(d, v, g); g != nil {
		appendPath(d, v, g)
	}
	d.Do(action)
}

// DrawFeatures draws the geometry of each feature with action.
func DrawFeatures(d *sketch.Drawing, v *MapView, features []Feature, action sketch.Action) {
	for _, f := range features {
		DrawGeometry(d, v, f.Geometry, action)
	}
}

// prepare returns g clipped, projected to user space and simplified, or
// nil when nothing is visible.
func prepare(d *sketch.Drawing, v *MapView, g orb.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	g = clip.Geometry(v.bound, orb.Clone(g))
	if g == nil {
		return nil
	}
	g = orient(g)
	g = project.Geometry(g, v.project)

	if sf := d.Matrix().ScaleFactor(); sf > 0 && d.Tolerance() > 0 {
		g = simplify.DouglasPeucker(d.Tolerance() / sf).Simplify(g)
	}
	return g
}

// orient turns bounds into polygons and winds polygon outer rings
// counterclockwise and holes clockwise.
func orient(g orb.Geometry) orb.Geometry {
	switch g := g.(type) {
	case orb.Bound:
		return orient(orb.Polygon{g.ToRing()})
	case orb.Polygon:
		for i, r := range g {
			want := orb.CW
			if i == 0 {
				want = orb.CCW
			}
			if len(r) >= 3 && r.Orientation() == -want {
				r.Reverse()
			}
		}
		return g
	case orb.MultiPolygon:
		for i := range g {
			g[i] = orient(g[i]).(orb.Polygon)
		}
		return g
	case orb.Collection:
		for i := range g {
			g[i] = orient(g[i])
		}
		return g
	}
	return g
}

func appendPath(d *sketch.Drawing, v *MapView, g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		d.Circle(sketch.Pt(g[0], g[1]), v.PointRadius, sketch.ActionPath)
	case orb.MultiPoint:
		for _, p := range g {
			appendPath(d, v, p)
		}
	case orb.LineString:
		appendLine(d, g, false)
	case orb.MultiLineString:
		for _, ls := range g {
			appendLine(d, ls, false)
		}
	case orb.Ring:
		appendLine(d, g, true)
	case orb.Polygon:
		for _, r := range g {
			appendLine(d, r, true)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			appendPath(d, v, p)
		}
	case orb.Collection:
		for _, c := range g {
			appendPath(d, v, c)
		}
	}
}

func appendLine(d *sketch.Drawing, pts []orb.Point, closed bool) {
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return
	}
	d.MoveTo(sketch.Pt(pts[0][0], pts[0][1]))
	for _, p := range pts[1:] {
		d.LineTo(sketch.Pt(p[0], p[1]))
	}
	if closed {
		d.ClosePath()
	}
}

// AirportStyle controls DrawAirports.
type AirportStyle struct {
	// Radius of each dot in user units; 0 means 2.
	Radius float64
	// Hue of dots and labels; nil keeps the current hue.
	Hue color.Color
	// Labels draws the airport code, or the name when the code is empty,
	// to the right of each dot.
	Labels bool
	// FontSize of the labels; 0 keeps the current size.
	FontSize float64
}

// DrawAirports draws a dot for each airport inside the view bound and
// returns how many were drawn. Drawing state is restored afterwards.
func DrawAirports(d *sketch.Drawing, v *MapView, airports []Airport, style AirportStyle) int {
	r := style.Radius
	if r <= 0 {
		r = 2
	}
	n := 0
	d.Layer(func() {
		if style.Hue != nil {
			d.SetHue(style.Hue)
		}
		if style.FontSize > 0 {
			d.SetFontSize(style.FontSize)
		}
		for _, a := range airports {
			if !v.bound.Contains(a.Location) {
				continue
			}
			p := v.ToPoint(a.Location)
			d.Circle(p, r, sketch.ActionFill)
			n++

			if !style.Labels {
				continue
			}
			label := a.Code
			if label == "" {
				label = a.Name
			}
			if label != "" {
				d.TextAligned(label, p.Add(sketch.Pt(r+2, 0)), sketch.AlignLeft, sketch.AlignMiddle)
			}
		}
	})
	return n
}
