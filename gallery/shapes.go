package gallery

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/gogpu/sketch"
)

// Sierpinski fills the Sierpinski triangle of the given depth inside the
// triangle pts with the current hue. It returns the number of triangles
// filled, 3^depth.
func Sierpinski(d *sketch.Drawing, pts [3]sketch.Point, depth int) int {
	if depth <= 0 {
		d.Poly(pts[:], sketch.ActionFill, true)
		return 1
	}
	a, b, c := pts[0], pts[1], pts[2]
	ab, bc, ca := a.Lerp(b, 0.5), b.Lerp(c, 0.5), c.Lerp(a, 0.5)
	return Sierpinski(d, [3]sketch.Point{a, ab, ca}, depth-1) +
		Sierpinski(d, [3]sketch.Point{ab, b, bc}, depth-1) +
		Sierpinski(d, [3]sketch.Point{ca, bc, c}, depth-1)
}

func sierpinski(d *sketch.Drawing) error {
	r := bounds(d).Height() / 2 * 0.95
	var pts [3]sketch.Point
	copy(pts[:], sketch.NgonPoints(sketch.Pt(0, r*0.2), r*1.1, 3, -math.Pi/2))

	// Darker layers underneath, lighter ones drawn on top.
	for depth := 0; depth <= 5; depth++ {
		d.SetHue(sketch.HSL(200+float64(depth)*25, 0.6, 0.25+float64(depth)*0.08))
		Sierpinski(d, pts, depth)
	}
	return nil
}

func logo(d *sketch.Drawing) error {
	r := math.Min(bounds(d).Width(), bounds(d).Height()) / 2 * 0.8

	d.Layer(func() {
		d.SetLine(r / 40)
		for i := range 4 {
			d.SetHue(sketch.Grey.WithAlpha(0.3 + 0.15*float64(i)))
			d.Circle(sketch.O, r*(1-0.06*float64(i)), sketch.ActionStroke)
		}
	})

	hues := []sketch.RGBA{sketch.Hex("#cb3c33"), sketch.Hex("#389826"), sketch.Hex("#9558b2")}
	for i, hue := range hues {
		d.Layer(func() {
			d.Rotate(float64(i) * 2 * math.Pi / 3)
			d.SetHue(hue)
			d.SetOpacity(0.85)
			d.Circle(sketch.Pt(0, -r*0.35), r*0.3, sketch.ActionFill)
		})
	}

	var err error
	d.Layer(func() {
		if err = d.SetFont("Go-Bold", r*0.35); err != nil {
			return
		}
		const word = "sketch"
		w := d.TextWidth(word)
		base := sketch.Pt(-w/2, r*0.75)
		d.TextPath(word, base)
		d.Clip()

		b := sketch.NewLinearBlend(sketch.Pt(-w/2, 0), sketch.Pt(w/2, 0)).
			AddStop(0, hues[0]).
			AddStop(0.5, hues[1]).
			AddStop(1, hues[2])
		d.SetBlend(b)
		d.Box(sketch.Pt(0, base.Y-r*0.1), w, r*0.5, sketch.ActionFill)
	})
	return err
}

func stars(d *sketch.Drawing) error {
	area := bounds(d)
	d.Background(sketch.Hex("#0b1026"))

	rng := rand.New(rand.NewPCG(1, 2))
	size := math.Min(area.Width(), area.Height()) / 20
	for range 120 {
		p := sketch.Pt(
			area.Min.X+rng.Float64()*area.Width(),
			area.Min.Y+rng.Float64()*area.Height(),
		)
		d.SetHue(sketch.RandomHue(rng))
		d.Star(p, size*(0.2+rng.Float64()), 5+rng.IntN(4), 0.45, rng.Float64()*math.Pi, sketch.ActionFill)
	}
	return nil
}

func tiles(d *sketch.Drawing) error {
	area := bounds(d)
	t := sketch.NewTiler(area.Width(), area.Height(), 4, 6, 20)
	for _, tile := range t.Tiles() {
		sides := 3 + tile.Index%8
		r := math.Min(tile.Width, tile.Height) / 2 * 0.8
		d.SetHue(sketch.HSL(360*float64(tile.Index)/float64(t.Len()), 0.7, 0.6))
		d.Ngon(tile.Center, r, sides, -math.Pi/2, sketch.ActionFill)

		d.SetHue(sketch.Black)
		d.SetLine(1)
		d.Ngon(tile.Center, r, sides, -math.Pi/2, sketch.ActionStroke)
		d.SetFontSize(r / 2)
		d.TextAligned(strconv.Itoa(sides), tile.Center, sketch.AlignCenter, sketch.AlignMiddle)
	}
	return nil
}
