package recording

import (
	"iter"
	"math"
)

// Verb identifies the kind of a path segment.
type Verb uint8

const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

var verbNames = [...]string{
	VerbMoveTo:  "MoveTo",
	VerbLineTo:  "LineTo",
	VerbQuadTo:  "QuadTo",
	VerbCubicTo: "CubicTo",
	VerbClose:   "Close",
}

func (v Verb) String() string {
	if int(v) < len(verbNames) {
		return verbNames[v]
	}
	return "Unknown"
}

// pointCount is the number of points each verb consumes.
func (v Verb) pointCount() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 1
	case VerbQuadTo:
		return 2
	case VerbCubicTo:
		return 3
	default:
		return 0
	}
}

// Segment is a single path element. Only the first Verb.pointCount()
// entries of Pts are meaningful; the last one is the end point.
type Segment struct {
	Verb Verb
	Pts  [3]Point
}

// End returns the end point of the segment.
func (s Segment) End() Point {
	n := s.Verb.pointCount()
	if n == 0 {
		return Point{}
	}
	return s.Pts[n-1]
}

// Path is a device-space path made of move, line, quadratic, cubic and
// close segments. The zero value is an empty path.
type Path struct {
	verbs  []Verb
	points []Point

	start   Point
	current Point
	hasCur  bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Point{X: x, Y: y}
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, pt)
	p.start, p.current, p.hasCur = pt, pt, true
}

// LineTo adds a line. Without a current point it acts as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCur {
		p.MoveTo(x, y)
		return
	}
	pt := Point{X: x, Y: y}
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, pt)
	p.current = pt
}

// QuadTo adds a quadratic Bézier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.hasCur {
		p.MoveTo(cx, cy)
	}
	end := Point{X: x, Y: y}
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, Point{X: cx, Y: cy}, end)
	p.current = end
}

// CubicTo adds a cubic Bézier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasCur {
		p.MoveTo(c1x, c1y)
	}
	end := Point{X: x, Y: y}
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, Point{X: c1x, Y: c1y}, Point{X: c2x, Y: c2y}, end)
	p.current = end
}

// Close closes the current subpath. The current point returns to the
// subpath start.
func (p *Path) Close() {
	if !p.hasCur || len(p.verbs) == 0 || p.verbs[len(p.verbs)-1] == VerbClose {
		return
	}
	p.verbs = append(p.verbs, VerbClose)
	p.current = p.start
}

// CurrentPoint returns the current point, if any.
func (p *Path) CurrentPoint() (Point, bool) {
	return p.current, p.hasCur
}

// ClearCurrentPoint forgets the current point without touching segments,
// so the next LineTo starts a new subpath.
func (p *Path) ClearCurrentPoint() {
	p.hasCur = false
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.verbs) == 0
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.verbs)
}

// Reset removes all segments.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.hasCur = false
}

// Segments iterates over the path segments in order.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if p == nil {
			return
		}
		i := 0
		for _, v := range p.verbs {
			s := Segment{Verb: v}
			n := v.pointCount()
			copy(s.Pts[:n], p.points[i:i+n])
			i += n
			if !yield(s) {
				return
			}
		}
	}
}

// Append adds every segment of o to p.
func (p *Path) Append(o *Path) {
	for s := range o.Segments() {
		switch s.Verb {
		case VerbMoveTo:
			p.MoveTo(s.Pts[0].X, s.Pts[0].Y)
		case VerbLineTo:
			p.LineTo(s.Pts[0].X, s.Pts[0].Y)
		case VerbQuadTo:
			p.QuadTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y)
		case VerbCubicTo:
			p.CubicTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case VerbClose:
			p.Close()
		}
	}
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	c := &Path{
		verbs:   make([]Verb, len(p.verbs)),
		points:  make([]Point, len(p.points)),
		start:   p.start,
		current: p.current,
		hasCur:  p.hasCur,
	}
	copy(c.verbs, p.verbs)
	copy(c.points, p.points)
	return c
}

// Transform returns a copy of the path with every point mapped by m.
func (p *Path) Transform(m Matrix) *Path {
	c := p.Clone()
	for i, pt := range c.points {
		c.points[i] = m.TransformPoint(pt)
	}
	c.start = m.TransformPoint(c.start)
	c.current = m.TransformPoint(c.current)
	return c
}

// Bounds returns the bounding box of all points, control points included.
// The box contains the curves but may be larger than their tight bounds.
func (p *Path) Bounds() Rect {
	if p.IsEmpty() || len(p.points) == 0 {
		return Rect{}
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, pt := range p.points {
		r.MinX = math.Min(r.MinX, pt.X)
		r.MinY = math.Min(r.MinY, pt.Y)
		r.MaxX = math.Max(r.MaxX, pt.X)
		r.MaxY = math.Max(r.MaxY, pt.Y)
	}
	return r
}

// Polyline is a flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flatten converts the path into polylines, subdividing curves so that no
// point deviates from the true curve by more than tolerance.
func (p *Path) Flatten(tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = 0.25
	}
	var (
		out []Polyline
		cur *Polyline
		pos Point
	)
	flush := func() {
		if cur != nil && len(cur.Points) > 1 {
			out = append(out, *cur)
		}
		cur = nil
	}
	for s := range p.Segments() {
		switch s.Verb {
		case VerbMoveTo:
			flush()
			cur = &Polyline{Points: []Point{s.Pts[0]}}
			pos = s.Pts[0]
		case VerbLineTo:
			cur.Points = append(cur.Points, s.Pts[0])
			pos = s.Pts[0]
		case VerbQuadTo:
			cur.Points = flattenQuad(cur.Points, pos, s.Pts[0], s.Pts[1], tolerance)
			pos = s.Pts[1]
		case VerbCubicTo:
			cur.Points = flattenCubic(cur.Points, pos, s.Pts[0], s.Pts[1], s.Pts[2], tolerance)
			pos = s.Pts[2]
		case VerbClose:
			if cur != nil {
				cur.Closed = true
				pos = cur.Points[0]
				flush()
				cur = &Polyline{Points: []Point{pos}}
			}
		}
	}
	if cur != nil && len(cur.Points) > 1 {
		out = append(out, *cur)
	}
	return out
}

// Subdivision counts follow Wang's formula for Bézier curves.
func flattenQuad(dst []Point, p0, p1, p2 Point, tol float64) []Point {
	dd := math.Hypot(p0.X-2*p1.X+p2.X, p0.Y-2*p1.Y+p2.Y)
	n := int(math.Ceil(math.Sqrt(0.25 * dd / tol)))
	if n < 1 {
		n = 1
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		dst = append(dst, Point{
			X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
			Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
		})
	}
	return dst
}

func flattenCubic(dst []Point, p0, p1, p2, p3 Point, tol float64) []Point {
	d1 := math.Hypot(p0.X-2*p1.X+p2.X, p0.Y-2*p1.Y+p2.Y)
	d2 := math.Hypot(p1.X-2*p2.X+p3.X, p1.Y-2*p2.Y+p3.Y)
	n := int(math.Ceil(math.Sqrt(0.75 * math.Max(d1, d2) / tol)))
	if n < 1 {
		n = 1
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
		dst = append(dst, Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
	return dst
}
