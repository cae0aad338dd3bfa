// Package geo reads geographic data and draws it into a sketch.Drawing.
//
// Features come from shapefiles ([ReadShapefile]) or GeoJSON files
// ([ReadGeoJSON]) and carry an orb geometry plus their attributes.
// Airports come from a CSV file ([ReadAirports]).
//
// A [MapView] fits a geographic bound into a box of the drawing using a
// [Projection]. [DrawGeometry] clips geometry to the view, projects it,
// simplifies it to the drawing tolerance and emits path segments:
//
//	view := geo.NewMapView(geo.World, geo.Equirectangular, 800, 400, 10)
//	d.SetHue(sketch.Grey)
//	geo.DrawFeatures(d, view, countries, sketch.ActionFill)
package geo
