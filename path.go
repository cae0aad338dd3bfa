package sketch

import (
	"fmt"
	"strings"
)

// Action says what a shape function does with the path it builds.
type Action int

// Actions. ActionNone and ActionPath leave the shape in the current path;
// ActionPath also skips the NewPath that other actions start with, so
// shapes can be accumulated and painted together.
const (
	ActionNone Action = iota
	ActionFill
	ActionStroke
	ActionFillStroke
	ActionClip
	ActionFillPreserve
	ActionStrokePreserve
	ActionClipPreserve
	ActionPath
)

var actionNames = [...]string{
	ActionNone:           "none",
	ActionFill:           "fill",
	ActionStroke:         "stroke",
	ActionFillStroke:     "fillstroke",
	ActionClip:           "clip",
	ActionFillPreserve:   "fillpreserve",
	ActionStrokePreserve: "strokepreserve",
	ActionClipPreserve:   "clippreserve",
	ActionPath:           "path",
}

// String returns the lowercase action name.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction converts a name such as "fill" or "stroke" to an Action.
// Case, spaces, hyphens and underscores are ignored.
func ParseAction(s string) (Action, error) {
	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	for i, name := range actionNames {
		if name == key {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("%w %q", ErrUnknownAction, s)
}

// NewPath discards the current path.
func (d *Drawing) NewPath() {
	d.path.Reset()
}

// NewSubPath ends the current subpath without closing it, so the next
// LineTo starts a new subpath.
func (d *Drawing) NewSubPath() {
	d.path.ClearCurrentPoint()
}

// MoveTo starts a new subpath at p.
func (d *Drawing) MoveTo(p Point) {
	q := d.UserToDevice(p)
	d.path.MoveTo(q.X, q.Y)
}

// LineTo adds a line from the current point to p. Without a current
// point it acts as MoveTo.
func (d *Drawing) LineTo(p Point) {
	q := d.UserToDevice(p)
	d.path.LineTo(q.X, q.Y)
}

// RelLineTo adds a line from the current point by the user-space vector v.
func (d *Drawing) RelLineTo(v Point) {
	cur, ok := d.CurrentPoint()
	if !ok {
		d.setErr(fmt.Errorf("sketch: RelLineTo without current point"))
		return
	}
	d.LineTo(cur.Add(v))
}

// QuadTo adds a quadratic Bézier curve with control point c to p.
func (d *Drawing) QuadTo(c, p Point) {
	cq := d.UserToDevice(c)
	q := d.UserToDevice(p)
	d.path.QuadTo(cq.X, cq.Y, q.X, q.Y)
}

// CurveTo adds a cubic Bézier curve with control points c1, c2 to p.
func (d *Drawing) CurveTo(c1, c2, p Point) {
	a := d.UserToDevice(c1)
	b := d.UserToDevice(c2)
	q := d.UserToDevice(p)
	d.path.CubicTo(a.X, a.Y, b.X, b.Y, q.X, q.Y)
}

// ClosePath closes the current subpath.
func (d *Drawing) ClosePath() {
	d.path.Close()
}

// CurrentPoint returns the current point in user space.
func (d *Drawing) CurrentPoint() (Point, bool) {
	p, ok := d.path.CurrentPoint()
	if !ok {
		return Point{}, false
	}
	return d.DeviceToUser(Point(p)), true
}

// HasCurrentPoint reports whether the path has a current point.
func (d *Drawing) HasCurrentPoint() bool {
	_, ok := d.path.CurrentPoint()
	return ok
}

// PathBounds returns the device-space bounds of the current path,
// including curve control points.
func (d *Drawing) PathBounds() Rect {
	b := d.path.Bounds()
	return Rect{Min: Point{X: b.MinX, Y: b.MinY}, Max: Point{X: b.MaxX, Y: b.MaxY}}
}

// Do applies action to the current path.
func (d *Drawing) Do(action Action) {
	switch action {
	case ActionFill:
		d.Fill()
	case ActionStroke:
		d.Stroke()
	case ActionFillStroke:
		d.FillStroke()
	case ActionClip:
		d.Clip()
	case ActionFillPreserve:
		d.FillPreserve()
	case ActionStrokePreserve:
		d.StrokePreserve()
	case ActionClipPreserve:
		d.ClipPreserve()
	case ActionNone, ActionPath:
	default:
		d.setErr(fmt.Errorf("%w %d", ErrUnknownAction, int(action)))
	}
}

// begin starts a shape: every action except ActionPath discards the
// current path first.
func (d *Drawing) begin(action Action) {
	if action != ActionPath {
		d.NewPath()
	}
}

// Fill fills the current path and discards it.
func (d *Drawing) Fill() {
	d.FillPreserve()
	d.NewPath()
}

// FillPreserve fills the current path and keeps it.
func (d *Drawing) FillPreserve() {
	d.rec.FillPath(d.path, d.brush(), d.st.fillRule)
}

// Stroke strokes the current path and discards it.
func (d *Drawing) Stroke() {
	d.StrokePreserve()
	d.NewPath()
}

// StrokePreserve strokes the current path and keeps it.
// The line width is scaled by the current transform.
func (d *Drawing) StrokePreserve() {
	if d.st.lineWidth == 0 {
		return
	}
	d.rec.StrokePath(d.path, d.brush(), d.stroke())
}

// FillStroke fills and then strokes the current path, then discards it.
func (d *Drawing) FillStroke() {
	d.FillPreserve()
	d.Stroke()
}

// Clip intersects the clip region with the current path and discards the
// path. The clip lasts until the matching Restore or ClipReset.
func (d *Drawing) Clip() {
	d.ClipPreserve()
	d.NewPath()
}

// ClipPreserve intersects the clip region with the current path and
// keeps the path.
func (d *Drawing) ClipPreserve() {
	d.rec.SetClip(d.path, d.st.fillRule)
}

// ClipReset removes the clips set since the most recent Save.
func (d *Drawing) ClipReset() {
	d.rec.ClearClip()
}
