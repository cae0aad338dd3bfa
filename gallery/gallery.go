package gallery

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/sketch"
)

// ErrUnknownDemo is returned by Render for a name not in Names.
var ErrUnknownDemo = errors.New("gallery: unknown demo")

// Demo paints one example into d.
type Demo func(d *sketch.Drawing) error

// Inputs names the data files used by the data-driven demos. Empty
// fields select the built-in fallbacks.
type Inputs struct {
	Shapefile  string `toml:"shapefile"`
	GeoJSON    string `toml:"geojson"`
	Airports   string `toml:"airports"`
	Benchmarks string `toml:"benchmarks"`
}

// Demos returns the demo registry for in.
func Demos(in Inputs) map[string]Demo {
	return map[string]Demo{
		"sierpinski": sierpinski,
		"logo":       logo,
		"stars":      stars,
		"tiles":      tiles,
		"map":        in.worldMap,
		"sectors":    in.sectors,
		"plot":       in.plot,
		"pie":        in.pie,
	}
}

// Names returns the sorted demo names.
func Names() []string {
	return slices.Sorted(maps.Keys(Demos(Inputs{})))
}

// Render prepares d and runs the demo called name. Errors from the demo
// and the drawing's sticky error are returned.
func Render(d *sketch.Drawing, name string, in Inputs) error {
	demo, ok := Demos(in)[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownDemo, name)
	}
	sketch.Logger().Debug("gallery: rendering", "demo", name,
		"width", d.Width(), "height", d.Height())

	d.Origin()
	d.Background(sketch.White)
	d.SetHue(sketch.Black)
	if err := demo(d); err != nil {
		return fmt.Errorf("gallery: %s: %w", name, err)
	}
	return d.Err()
}

// bounds returns the drawing area in user space once the origin is at
// the centre.
func bounds(d *sketch.Drawing) sketch.Rect {
	w, h := float64(d.Width()), float64(d.Height())
	return sketch.Rect{Min: sketch.Pt(-w/2, -h/2), Max: sketch.Pt(w/2, h/2)}
}
