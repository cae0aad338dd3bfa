package sketch

// Option configures a Drawing during creation.
//
// Example:
//
//	d := sketch.NewDrawing(400, 400, "out.png",
//	    sketch.WithFont("Go-Bold", 18),
//	    sketch.WithBackground(sketch.White))
type Option func(*options)

// options holds optional configuration for Drawing creation.
type options struct {
	format     string
	font       string
	fontSize   float64
	tolerance  float64
	background *RGBA
}

// defaultOptions returns the default drawing options.
func defaultOptions() options {
	return options{
		font:      "Go",
		fontSize:  12,
		tolerance: 0.5,
	}
}

// WithFormat overrides the output format otherwise taken from the
// filename extension, for example "svg" or "pdf".
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithFont selects the initial font by registry name and size.
func WithFont(name string, size float64) Option {
	return func(o *options) {
		o.font = name
		o.fontSize = size
	}
}

// WithFontSize sets the initial font size.
func WithFontSize(size float64) Option {
	return func(o *options) {
		o.fontSize = size
	}
}

// WithTolerance sets the geometry simplification tolerance in device
// units, half a pixel by default. Map drawing simplifies lines to it.
// Values <= 0 are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithBackground paints the whole canvas with c before any drawing.
func WithBackground(c RGBA) Option {
	return func(o *options) {
		o.background = &c
	}
}
