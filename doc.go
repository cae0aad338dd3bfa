// Package sketch is a 2D vector drawing library with one API for raster
// and vector output.
//
// # Overview
//
// A Drawing holds a current transform, a paint (hue, opacity or blend),
// a line style, a font and a current path. Shape functions build a path
// and apply an Action to it:
//
//	err := sketch.Draw("hello.png", 400, 300, func(d *sketch.Drawing) {
//	    d.SetHueName("steelblue")
//	    d.Circle(sketch.O, 80, sketch.ActionFill)
//	    d.SetHue(sketch.White)
//	    d.SetFont("Go-Bold", 24)
//	    d.TextCentered("hello", sketch.Pt(0, 8))
//	})
//
// The extension of the filename picks the output: .png, .jpg, .gif, .tif,
// .bmp, .svg, .pdf and .eps (or .ps).
//
// # Coordinates
//
// The origin starts at the top-left corner with y growing downwards.
// Origin moves it to the center. Angles are in radians, and positive
// angles turn clockwise on screen.
//
// # Graphics state
//
// Save (Gsave) and Restore (Grestore) push and pop the transform, paint,
// line style, font and clip. Layer wraps a function in such a pair.
// Unbalanced pairs are reported by Finish.
//
// # Architecture
//
// Drawing calls are recorded as device-space commands (package recording)
// and replayed at Finish into the backend registered for the format:
//
//	Drawing -> recording.Recorder -> Recording -> Backend
//	                                              ├── raster (gogpu/gg)
//	                                              ├── svg (svgo)
//	                                              ├── pdf (fpdf)
//	                                              └── eps
//
// Text is shaped by package text and drawn as glyph outlines, so every
// backend renders it identically.
//
// # Related packages
//
// Package geo draws shapefiles, GeoJSON and airport lists through map
// projections. Package chart draws sector charts of benchmark results and
// adapts gonum/plot and go-chart to a Drawing. Package gallery holds the
// example drawings rendered by cmd/sketch.
//
// # Logging
//
// The library is silent by default. SetLogger enables structured logging
// through log/slog for sketch and its sub-packages.
package sketch
