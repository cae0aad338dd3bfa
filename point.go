package sketch

import (
	"math"

	"github.com/gogpu/sketch/recording"
)

// Point represents a 2D point or vector in user space.
type Point struct {
	X, Y float64
}

// O is the origin.
var O = Point{}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Polar returns the point at distance r and angle theta from the origin.
func Polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns the point divided by a scalar.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Angle returns the direction of the vector in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Normalize returns a unit vector in the same direction.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Rotate returns the point rotated by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Equal reports whether p and q are exactly equal.
func (p Point) Equal(q Point) bool {
	return p == q
}

// Near reports whether p and q are within eps of each other.
func (p Point) Near(q Point, eps float64) bool {
	return p.Distance(q) <= eps
}

func (p Point) device() recording.Point {
	return recording.Point(p)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return a.Lerp(b, 0.5)
}

// Between returns the point at fraction t of the way from a to b.
func Between(a, b Point, t float64) Point {
	return a.Lerp(b, t)
}

// Perpendicular returns the foot of the perpendicular from p onto the
// line through a and b.
func Perpendicular(a, b, p Point) Point {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return a
	}
	return a.Add(d.Mul(p.Sub(a).Dot(d) / l2))
}

// IntersectLines returns the intersection of the infinite lines p1-p2 and
// q1-q2. ok is false for parallel or degenerate lines.
func IntersectLines(p1, p2, q1, q2 Point) (pt Point, ok bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	den := r.Cross(s)
	if math.Abs(den) < 1e-12 {
		return Point{}, false
	}
	t := q1.Sub(p1).Cross(s) / den
	return p1.Add(r.Mul(t)), true
}

// IsInside reports whether p lies inside the polygon, using the even-odd
// rule. Points exactly on an edge may report either way.
func IsInside(p Point, poly []Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Centroid returns the arithmetic mean of the points.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Div(float64(len(pts)))
}

// Rect is an axis-aligned rectangle in user space.
type Rect struct {
	Min, Max Point
}

// BoundingBox returns the smallest Rect containing pts.
func BoundingBox(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Width returns the rectangle width.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the rectangle height.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the rectangle center.
func (r Rect) Center() Point { return Midpoint(r.Min, r.Max) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Union returns the smallest Rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	return BoundingBox([]Point{r.Min, r.Max, o.Min, o.Max})
}

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + d, Y: r.Min.Y + d},
		Max: Point{X: r.Max.X - d, Y: r.Max.Y - d},
	}
}
