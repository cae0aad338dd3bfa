package chart

import (
	"math"

	"github.com/gogpu/sketch"
)

// Value is one labelled number.
type Value struct {
	Label string
	V     float64
}

// SectorChart draws values as sectors of equal angle around a hub. The
// outer radius of a sector grows with log1p of its value, so values
// spanning orders of magnitude stay readable.
type SectorChart struct {
	Values []Value

	// Inner is the hub radius and Outer the radius reached by Scale.
	Inner, Outer float64

	// Scale is the value drawn at Outer. Zero means the largest value.
	Scale float64

	// Gap is the angle left empty between neighbouring sectors.
	Gap float64
}

// Radius returns the outer radius of a sector for v.
func (c SectorChart) Radius(v float64) float64 {
	scale := c.Scale
	if scale <= 0 {
		for _, x := range c.Values {
			scale = max(scale, x.V)
		}
	}
	if v <= 0 || scale <= 0 {
		return c.Inner
	}
	return c.Inner + (c.Outer-c.Inner)*math.Log1p(v)/math.Log1p(scale)
}

// Angles returns the start and end angle of sector i. The first sector
// starts at the top and the rest follow clockwise.
func (c SectorChart) Angles(i int) (a1, a2 float64) {
	step := 2 * math.Pi / float64(len(c.Values))
	gap := math.Min(c.Gap, step/2)
	a1 = -math.Pi/2 + float64(i)*step + gap/2
	return a1, a1 + step - gap
}

// Draw draws the chart centred on center. Sector i is filled with
// Color(i, len(Values)); values <= 0 leave their sector empty. A thin
// grey ring marks Outer. Drawing state is restored afterwards.
func (c SectorChart) Draw(d *sketch.Drawing, center sketch.Point) {
	n := len(c.Values)
	if n == 0 {
		return
	}
	d.Layer(func() {
		for i, v := range c.Values {
			if v.V <= 0 {
				continue
			}
			a1, a2 := c.Angles(i)
			d.SetHue(Color(i, n))
			d.Sector(center, c.Inner, c.Radius(v.V), a1, a2, sketch.ActionFill)
		}
		d.SetHue(sketch.Grey)
		d.SetLine(0.5)
		d.SetDash(sketch.DashDotted)
		d.Circle(center, c.Outer, sketch.ActionStroke)
	})
}

// Color returns the colour of item i of n, spread evenly around the hue
// circle.
func Color(i, n int) sketch.RGBA {
	if n <= 0 {
		n = 1
	}
	return sketch.HSL(360*float64(i%n)/float64(n), 0.65, 0.5)
}
