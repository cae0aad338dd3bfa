package gallery

import (
	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/geo"
)

var (
	ocean = sketch.Hex("#d4e6f1")
	land  = sketch.Hex("#f4ecd8")
	coast = sketch.Hex("#7f8c8d")
)

// features loads the shapefile, or failing that the GeoJSON file, named
// in in. Neither set means no features.
func (in Inputs) features() ([]geo.Feature, error) {
	switch {
	case in.Shapefile != "":
		return geo.ReadShapefile(in.Shapefile)
	case in.GeoJSON != "":
		return geo.ReadGeoJSON(in.GeoJSON)
	}
	return nil, nil
}

func (in Inputs) worldMap(d *sketch.Drawing) error {
	features, err := in.features()
	if err != nil {
		return err
	}
	var airports []geo.Airport
	if in.Airports != "" {
		if airports, err = geo.ReadAirportsFile(in.Airports); err != nil {
			return err
		}
	}

	bound := geo.World
	if b, ok := geo.Bound(features); ok && len(airports) == 0 {
		bound = b.Pad(1)
	}
	area := bounds(d)
	v := geo.NewMapView(bound, geo.Equirectangular, area.Width(), area.Height(), 10)

	d.Layer(func() {
		d.SetHue(ocean)
		geo.DrawGeometry(d, v, bound, sketch.ActionFill)

		d.SetHue(sketch.Grey)
		d.SetLine(0.5)
		d.SetDash(sketch.DashDotted)
		geo.DrawGeometry(d, v, geo.Graticule(30), sketch.ActionStroke)
		d.SetDash(sketch.DashSolid)

		if len(features) > 0 {
			d.SetHue(land)
			geo.DrawFeatures(d, v, features, sketch.ActionFill)
			d.SetHue(coast)
			geo.DrawFeatures(d, v, features, sketch.ActionStroke)
		}

		n := geo.DrawAirports(d, v, airports, geo.AirportStyle{
			Hue:      sketch.Red,
			Labels:   len(airports) <= 50,
			FontSize: 8,
		})
		sketch.Logger().Debug("gallery: map drawn", "features", len(features),
			"airports", n, "bound", bound)
	})
	return nil
}
