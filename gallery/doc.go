// Package gallery holds the example drawings shipped with sketch.
//
// Every demo is a Demo that paints into a prepared Drawing: origin at the
// centre, white background, black hue. Render prepares the drawing and
// runs a demo by name:
//
//	d := sketch.NewDrawing(600, 400, "map.svg")
//	in := gallery.Inputs{Shapefile: "ne_110m_land.shp"}
//	if err := gallery.Render(d, "map", in); err != nil {
//	    log.Fatal(err)
//	}
//	err := d.Finish()
//
// The map, sectors, plot and pie demos read their data from the files
// named in Inputs and fall back to built-in data when none is given.
package gallery
