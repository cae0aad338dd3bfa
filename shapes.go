package sketch

import "math"

// kappa is the cubic Bézier control distance for a quarter circle of
// radius 1.
const kappa = 0.5522847498307936

// Circle adds a circle of radius r centered at c and applies action.
func (d *Drawing) Circle(c Point, r float64, action Action) {
	d.Ellipse(c, 2*r, 2*r, action)
}

// Ellipse adds an ellipse of width w and height h centered at c and
// applies action.
func (d *Drawing) Ellipse(c Point, w, h float64, action Action) {
	d.begin(action)
	rx, ry := w/2, h/2
	ox, oy := rx*kappa, ry*kappa
	x, y := c.X, c.Y

	d.MoveTo(Pt(x+rx, y))
	d.CurveTo(Pt(x+rx, y+oy), Pt(x+ox, y+ry), Pt(x, y+ry))
	d.CurveTo(Pt(x-ox, y+ry), Pt(x-rx, y+oy), Pt(x-rx, y))
	d.CurveTo(Pt(x-rx, y-oy), Pt(x-ox, y-ry), Pt(x, y-ry))
	d.CurveTo(Pt(x+ox, y-ry), Pt(x+rx, y-oy), Pt(x+rx, y))
	d.ClosePath()
	d.Do(action)
}

// Rect adds a rectangle with top-left corner at corner and applies action.
func (d *Drawing) Rect(corner Point, w, h float64, action Action) {
	d.begin(action)
	d.MoveTo(corner)
	d.LineTo(Pt(corner.X+w, corner.Y))
	d.LineTo(Pt(corner.X+w, corner.Y+h))
	d.LineTo(Pt(corner.X, corner.Y+h))
	d.ClosePath()
	d.Do(action)
}

// Box adds a rectangle centered at center and applies action.
func (d *Drawing) Box(center Point, w, h float64, action Action) {
	d.Rect(Pt(center.X-w/2, center.Y-h/2), w, h, action)
}

// RoundedBox adds a rectangle centered at center with corners rounded to
// radius r, clamped to half the shorter side, and applies action.
func (d *Drawing) RoundedBox(center Point, w, h, r float64, action Action) {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 {
		d.Box(center, w, h, action)
		return
	}

	d.begin(action)
	x0, y0 := center.X-w/2, center.Y-h/2
	x1, y1 := x0+w, y0+h
	d.MoveTo(Pt(x0+r, y0))
	d.LineTo(Pt(x1-r, y0))
	d.arcPath(Pt(x1-r, y0+r), r, -math.Pi/2, math.Pi/2)
	d.LineTo(Pt(x1, y1-r))
	d.arcPath(Pt(x1-r, y1-r), r, 0, math.Pi/2)
	d.LineTo(Pt(x0+r, y1))
	d.arcPath(Pt(x0+r, y1-r), r, math.Pi/2, math.Pi/2)
	d.LineTo(Pt(x0, y0+r))
	d.arcPath(Pt(x0+r, y0+r), r, math.Pi, math.Pi/2)
	d.ClosePath()
	d.Do(action)
}

// Line adds a line from p1 to p2 and applies action.
func (d *Drawing) Line(p1, p2 Point, action Action) {
	d.begin(action)
	d.MoveTo(p1)
	d.LineTo(p2)
	d.Do(action)
}

// Poly adds the polyline through pts, closed if closed is true, and
// applies action. Fewer than two points add nothing.
func (d *Drawing) Poly(pts []Point, action Action, closed bool) {
	d.begin(action)
	if len(pts) < 2 {
		return
	}
	d.MoveTo(pts[0])
	for _, p := range pts[1:] {
		d.LineTo(p)
	}
	if closed {
		d.ClosePath()
	}
	d.Do(action)
}

// Prettypoly draws the closed polygon through pts with action, then calls
// vertex for each vertex with the origin moved to that vertex. Each call
// runs between Save and Restore.
func (d *Drawing) Prettypoly(pts []Point, action Action, vertex func(i int, p Point)) {
	d.Poly(pts, action, true)
	if vertex == nil {
		return
	}
	for i, p := range pts {
		d.Layer(func() {
			d.Translate(p.X, p.Y)
			vertex(i, p)
		})
	}
}

// NgonPoints returns the vertices of a regular polygon with the given
// number of sides, circumradius r, and first vertex at angle orientation.
func NgonPoints(c Point, r float64, sides int, orientation float64) []Point {
	if sides < 1 {
		return nil
	}
	step := 2 * math.Pi / float64(sides)
	pts := make([]Point, sides)
	for i := range pts {
		pts[i] = c.Add(Polar(r, orientation+step*float64(i)))
	}
	return pts
}

// Ngon adds a regular polygon and applies action.
func (d *Drawing) Ngon(c Point, r float64, sides int, orientation float64, action Action) {
	d.Poly(NgonPoints(c, r, sides, orientation), action, true)
}

// StarPoints returns the vertices of a star with the given number of
// points. Outer vertices lie at radius r, inner ones at r*ratio.
func StarPoints(c Point, r float64, points int, ratio, orientation float64) []Point {
	if points < 2 {
		return nil
	}
	step := math.Pi / float64(points)
	pts := make([]Point, 2*points)
	for i := range pts {
		radius := r
		if i%2 == 1 {
			radius = r * ratio
		}
		pts[i] = c.Add(Polar(radius, orientation+step*float64(i)))
	}
	return pts
}

// Star adds a star polygon and applies action.
func (d *Drawing) Star(c Point, r float64, points int, ratio, orientation float64, action Action) {
	d.Poly(StarPoints(c, r, points, ratio, orientation), action, true)
}

// Arc adds a circular arc from angle a1 to a2, running clockwise on
// screen, and applies action. With a current point, a line joins it to
// the start of the arc.
func (d *Drawing) Arc(c Point, r, a1, a2 float64, action Action) {
	d.begin(action)
	d.arcPath(c, r, a1, clockwiseSweep(a1, a2))
	d.Do(action)
}

// Carc adds a circular arc from angle a1 to a2, running counterclockwise
// on screen, and applies action.
func (d *Drawing) Carc(c Point, r, a1, a2 float64, action Action) {
	d.begin(action)
	d.arcPath(c, r, a1, -clockwiseSweep(a2, a1))
	d.Do(action)
}

// clockwiseSweep returns the non-negative sweep from a1 to a2, adding
// whole turns when a2 < a1. Sweeps past one turn keep their end angle
// but are cut to less than two turns.
func clockwiseSweep(a1, a2 float64) float64 {
	s := a2 - a1
	switch {
	case s < 0:
		if s = math.Mod(s, 2*math.Pi); s < 0 {
			s += 2 * math.Pi
		}
	case s > 2*math.Pi:
		s = 2*math.Pi + math.Mod(s, 2*math.Pi)
	}
	return s
}

// arcPath appends an arc starting at angle a1 and turning by sweep, as
// cubic segments spanning at most 90 degrees each. The sign of sweep
// gives the direction.
func (d *Drawing) arcPath(c Point, r, a1, sweep float64) {
	a1 = math.Mod(a1, 2*math.Pi)
	start := c.Add(Polar(r, a1))
	if d.HasCurrentPoint() {
		d.LineTo(start)
	} else {
		d.MoveTo(start)
	}

	if math.IsNaN(sweep) || math.IsInf(sweep, 0) {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4) * r
	for i := 0; i < n; i++ {
		t1 := a1 + float64(i)*step
		t2 := t1 + step
		p1 := c.Add(Polar(r, t1))
		p2 := c.Add(Polar(r, t2))
		c1 := p1.Add(Pt(-math.Sin(t1), math.Cos(t1)).Mul(k))
		c2 := p2.Sub(Pt(-math.Sin(t2), math.Cos(t2)).Mul(k))
		d.CurveTo(c1, c2, p2)
	}
}

// Sector adds an annular sector between radii inner and outer from angle
// a1 clockwise to a2, and applies action. An inner radius of zero gives a
// pie slice.
func (d *Drawing) Sector(c Point, inner, outer, a1, a2 float64, action Action) {
	if inner <= 0 {
		d.Pie(c, outer, a1, a2, action)
		return
	}
	d.begin(action)
	sweep := clockwiseSweep(a1, a2)
	d.NewSubPath()
	d.arcPath(c, outer, a1, sweep)
	d.arcPath(c, inner, a1+sweep, -sweep)
	d.ClosePath()
	d.Do(action)
}

// Pie adds a pie slice of radius r from angle a1 clockwise to a2 and
// applies action.
func (d *Drawing) Pie(c Point, r, a1, a2 float64, action Action) {
	d.begin(action)
	d.MoveTo(c)
	d.arcPath(c, r, a1, clockwiseSweep(a1, a2))
	d.ClosePath()
	d.Do(action)
}

// Arrow strokes a line from `from` to `to` and fills a triangular head of
// length headLength whose sides make headAngle with the shaft.
func (d *Drawing) Arrow(from, to Point, headLength, headAngle float64) {
	dir := to.Sub(from)
	if dir.Length() == 0 {
		return
	}
	theta := dir.Angle()
	back := math.Cos(headAngle) * headLength
	base := to.Sub(dir.Normalize().Mul(math.Min(back, dir.Length())))

	d.Line(from, base, ActionStroke)

	left := to.Sub(Polar(headLength, theta-headAngle))
	right := to.Sub(Polar(headLength, theta+headAngle))
	d.Poly([]Point{to, left, right}, ActionFill, true)
}
