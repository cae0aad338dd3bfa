package gallery

import (
	"io"
	"slices"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/chart"
)

// benchmarks loads the benchmark file named in in, or the built-in
// sample table.
func (in Inputs) benchmarks() (*chart.Table, error) {
	if in.Benchmarks == "" {
		return chart.SampleBenchmarks(), nil
	}
	return chart.ReadBenchmarksFile(in.Benchmarks)
}

func (in Inputs) sectors(d *sketch.Drawing) error {
	t, err := in.benchmarks()
	if err != nil {
		return err
	}
	return chart.DrawBenchmarks(d, t, chart.Options{Values: true})
}

func (in Inputs) plot(d *sketch.Drawing) error {
	t, err := in.benchmarks()
	if err != nil {
		return err
	}
	langs := t.Languages()
	if len(langs) == 0 {
		return chart.ErrNoData
	}
	lang := langs[0]
	if slices.Contains(langs, chart.GoLanguage) {
		lang = chart.GoLanguage
	}
	p, err := chart.BenchmarkBars(t, lang)
	if err != nil {
		return err
	}
	area := bounds(d)
	chart.DrawPlot(d, p, sketch.Rect{
		Min: area.Min.Add(sketch.Pt(10, 10)),
		Max: area.Max.Sub(sketch.Pt(10, 10)),
	})
	return nil
}

// pie draws the total time per language as a go-chart pie chart.
func (in Inputs) pie(d *sketch.Drawing) error {
	t, err := in.benchmarks()
	if err != nil {
		return err
	}
	var values []gochart.Value
	for _, lang := range t.Languages() {
		total := 0.0
		for _, v := range t.Values(lang) {
			total += v.V
		}
		if total > 0 {
			values = append(values, gochart.Value{Label: lang, Value: total})
		}
	}
	if len(values) == 0 {
		return chart.ErrNoData
	}

	pie := gochart.PieChart{
		Title:  "total time",
		Width:  d.Width(),
		Height: d.Height(),
		Values: values,
	}
	area := bounds(d)
	d.Layer(func() {
		d.Translate(area.Min.X, area.Min.Y)
		err = pie.Render(chart.DrawingRenderer(d), io.Discard)
	})
	return err
}
