package sketch

import (
	"io"
)

// Draw creates a width x height drawing for filename, moves the origin to
// the center, paints a white background, sets the hue to black, runs fn,
// and finishes the file.
//
//	err := sketch.Draw("circle.svg", 400, 400, func(d *sketch.Drawing) {
//	    d.Circle(sketch.O, 100, sketch.ActionStroke)
//	})
func Draw(filename string, width, height int, fn func(*Drawing)) error {
	d := NewDrawing(width, height, filename)
	setup(d)
	fn(d)
	return d.Finish()
}

// DrawTo is like Draw but writes the named format to w.
func DrawTo(w io.Writer, format string, width, height int, fn func(*Drawing)) error {
	d := NewDrawingFormat(width, height, format)
	setup(d)
	fn(d)
	return d.Encode(w)
}

func setup(d *Drawing) {
	d.Origin()
	d.Background(White)
	d.SetHue(Black)
}
