package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/gogpu/sketch"
)

// World is the whole globe in degrees of longitude and latitude.
var World = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Projections from longitude/latitude in degrees to planar coordinates.
// Both are monotonic in each axis, so projecting the corners of a bound
// gives the bound of the projected area.
var (
	// Equirectangular plots degrees directly.
	Equirectangular orb.Projection = func(p orb.Point) orb.Point { return p }

	// Mercator is the spherical web Mercator projection, in meters.
	// Latitudes near the poles are clamped to a square world.
	Mercator orb.Projection = project.WGS84.ToMercator
)

// MapView fits a geographic bound into a box of user space centred on
// the origin. Projected coordinates are scaled uniformly and y is
// flipped so north is up.
type MapView struct {
	// PointRadius is the radius of the disc drawn for point geometries.
	PointRadius float64

	bound  orb.Bound
	proj   orb.Projection
	center orb.Point
	scale  float64
	width  float64
	height float64
}

// NewMapView returns a view that maps bound, projected with proj, into
// a w by h box centred on the origin, leaving margin on every side. The
// aspect ratio of the projected bound is kept. A nil proj is
// Equirectangular.
func NewMapView(bound orb.Bound, proj orb.Projection, w, h, margin float64) *MapView {
	if proj == nil {
		proj = Equirectangular
	}
	pb := orb.MultiPoint{proj(bound.Min), proj(bound.Max)}.Bound()
	pw, ph := pb.Right()-pb.Left(), pb.Top()-pb.Bottom()
	aw, ah := math.Max(w-2*margin, 0), math.Max(h-2*margin, 0)

	scale := 1.0
	switch {
	case pw > 0 && ph > 0:
		scale = math.Min(aw/pw, ah/ph)
	case pw > 0:
		scale = aw / pw
	case ph > 0:
		scale = ah / ph
	}
	return &MapView{
		PointRadius: 2,
		bound:       bound,
		proj:        proj,
		center:      pb.Center(),
		scale:       scale,
		width:       pw * scale,
		height:      ph * scale,
	}
}

// Bound returns the geographic bound shown by the view.
func (v *MapView) Bound() orb.Bound { return v.bound }

// Scale returns the user-space size of one projected unit.
func (v *MapView) Scale() float64 { return v.scale }

// Size returns the user-space width and height of the projected bound.
func (v *MapView) Size() (w, h float64) { return v.width, v.height }

// ToPoint projects a longitude/latitude point into user space.
func (v *MapView) ToPoint(p orb.Point) sketch.Point {
	q := v.project(p)
	return sketch.Pt(q[0], q[1])
}

// project is the orb.Projection from degrees to user space.
func (v *MapView) project(p orb.Point) orb.Point {
	q := v.proj(p)
	return orb.Point{
		(q[0] - v.center[0]) * v.scale,
		-(q[1] - v.center[1]) * v.scale,
	}
}
