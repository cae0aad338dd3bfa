package chart

import (
	"math"

	"github.com/gogpu/sketch"
)

// Options controls DrawBenchmarks.
type Options struct {
	// Cols is the number of charts per row. Zero picks a near-square grid.
	Cols int

	// Margin around the grid in user units. Zero means 10.
	Margin float64

	// Baseline, when set, normalizes every value by this language first.
	Baseline string

	// Values adds the formatted value to each benchmark label.
	Values bool
}

// DrawBenchmarks draws one sector chart per language of t, laid out on
// a grid covering the whole drawing. All charts share one scale. Each
// chart is titled with its language, and every sector is labelled with
// its benchmark name.
func DrawBenchmarks(d *sketch.Drawing, t *Table, opts Options) error {
	if t == nil || t.Len() == 0 {
		return ErrNoData
	}
	if opts.Baseline != "" {
		nt, err := t.Normalize(opts.Baseline)
		if err != nil {
			return err
		}
		t = nt
	}
	langs := t.Languages()
	if len(langs) == 0 || t.Max() <= 0 {
		return ErrNoData
	}

	cols := opts.Cols
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(len(langs)))))
	}
	rows := (len(langs) + cols - 1) / cols
	margin := opts.Margin
	if margin <= 0 {
		margin = 10
	}
	tiler := sketch.NewTiler(float64(d.Width()), float64(d.Height()), rows, cols, margin)
	scale := t.Max()

	sketch.Logger().Debug("chart: drawing benchmarks",
		"languages", len(langs), "rows", rows, "cols", cols, "scale", scale)

	d.Layer(func() {
		d.Origin()
		for i, lang := range langs {
			drawTile(d, tiler.Tile(i), lang, t.Values(lang), scale, opts.Values)
		}
	})
	return nil
}

func drawTile(d *sketch.Drawing, tile sketch.Tile, lang string, values []Value, scale float64, withValues bool) {
	size := math.Min(tile.Width, tile.Height)
	fontSize := math.Max(6, math.Min(14, size/14))
	outer := size/2 - 2*fontSize
	if outer <= 0 {
		return
	}
	center := tile.Center.Sub(sketch.Pt(0, fontSize/2))
	sc := SectorChart{
		Values: values,
		Inner:  outer * 0.15,
		Outer:  outer,
		Scale:  scale,
		Gap:    0.02,
	}
	sc.Draw(d, center)

	d.Layer(func() {
		d.SetHue(sketch.Black)
		d.SetFontSize(fontSize)
		d.TextAligned(lang, sketch.Pt(tile.Center.X, tile.Rect().Max.Y), sketch.AlignCenter, sketch.AlignBottom)

		d.SetFontSize(fontSize * 0.7)
		for i, v := range values {
			a1, a2 := sc.Angles(i)
			mid := (a1 + a2) / 2
			p := center.Add(sketch.Polar(sc.Radius(v.V)+3, mid))
			h := sketch.AlignLeft
			if math.Cos(mid) < 0 {
				h = sketch.AlignRight
			}
			label := v.Label
			if withValues {
				label += " " + FormatValue(v.V)
			}
			d.TextAligned(label, p, h, sketch.AlignMiddle)
		}
	})
}
