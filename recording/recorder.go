package recording

import (
	"fmt"
	"image"
)

// Recorder appends device-space drawing commands and stores the resources
// they reference. Use Finish to obtain an immutable Recording that can be
// replayed to different backends.
//
//	rec := recording.NewRecorder(800, 600)
//	rec.Save()
//	rec.SetClip(clipPath, recording.FillRuleNonZero)
//	rec.FillPath(path, recording.NewSolidBrush(red), recording.FillRuleNonZero)
//	rec.Restore()
//	r := rec.Finish()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
	resources     *ResourcePool
}

// NewRecorder creates a new Recorder for the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		commands:  make([]Command, 0, 256),
		resources: NewResourcePool(),
	}
}

// Width returns the width of the recording canvas.
func (r *Recorder) Width() int { return r.width }

// Height returns the height of the recording canvas.
func (r *Recorder) Height() int { return r.height }

// Commands returns the commands recorded so far.
func (r *Recorder) Commands() []Command { return r.commands }

// Save records a Save command.
func (r *Recorder) Save() {
	r.commands = append(r.commands, SaveCommand{})
}

// Restore records a Restore command.
func (r *Recorder) Restore() {
	r.commands = append(r.commands, RestoreCommand{})
}

// SetClip records a clip with a clone of path. Empty paths are ignored.
func (r *Recorder) SetClip(path *Path, rule FillRule) {
	if path.IsEmpty() {
		return
	}
	r.commands = append(r.commands, SetClipCommand{
		Path: r.resources.AddPath(path),
		Rule: rule,
	})
}

// ClearClip records a ClearClip command.
func (r *Recorder) ClearClip() {
	r.commands = append(r.commands, ClearClipCommand{})
}

// FillPath records a fill of a clone of path. Empty paths are ignored.
func (r *Recorder) FillPath(path *Path, brush Brush, rule FillRule) {
	if path.IsEmpty() {
		return
	}
	r.commands = append(r.commands, FillPathCommand{
		Path:  r.resources.AddPath(path),
		Brush: r.resources.AddBrush(brush),
		Rule:  rule,
	})
}

// StrokePath records a stroke of a clone of path. Empty paths are ignored.
func (r *Recorder) StrokePath(path *Path, brush Brush, stroke Stroke) {
	if path.IsEmpty() {
		return
	}
	r.commands = append(r.commands, StrokePathCommand{
		Path:   r.resources.AddPath(path),
		Brush:  r.resources.AddBrush(brush),
		Stroke: stroke.Clone(),
	})
}

// FillRect records a rectangle fill.
func (r *Recorder) FillRect(rect Rect, brush Brush) {
	r.commands = append(r.commands, FillRectCommand{
		Rect:  rect,
		Brush: r.resources.AddBrush(brush),
	})
}

// DrawImage records an image draw. m maps image pixels to device space.
func (r *Recorder) DrawImage(img image.Image, m Matrix, opacity float64) {
	if img == nil {
		return
	}
	r.commands = append(r.commands, DrawImageCommand{
		Image:   r.resources.AddImage(img),
		Matrix:  m,
		Opacity: opacity,
	})
}

// Finish returns an immutable Recording of all commands recorded so far.
// The Recorder may keep recording; later commands do not affect the
// returned Recording.
func (r *Recorder) Finish() *Recording {
	cmds := make([]Command, len(r.commands))
	copy(cmds, r.commands)
	return &Recording{
		width:     r.width,
		height:    r.height,
		commands:  cmds,
		resources: r.resources,
	}
}

// Recording is an immutable container for recorded drawing commands.
type Recording struct {
	width, height int
	commands      []Command
	resources     *ResourcePool
}

// Width returns the width of the recording canvas.
func (r *Recording) Width() int { return r.width }

// Height returns the height of the recording canvas.
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool { return r.resources }

// Playback replays the recording to the given backend, bracketed by
// Begin and End. A command referencing a missing resource aborts playback
// with an error wrapping ErrInvalidRef.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.width, r.height); err != nil {
		return err
	}
	Logger().Debug("recording: playback", "commands", len(r.commands), "width", r.width, "height", r.height)

	for i, cmd := range r.commands {
		if err := r.replay(backend, cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Type(), err)
		}
	}

	return backend.End()
}

func (r *Recording) replay(backend Backend, cmd Command) error {
	switch c := cmd.(type) {
	case SaveCommand:
		backend.Save()
	case RestoreCommand:
		backend.Restore()
	case SetClipCommand:
		path := r.resources.GetPath(c.Path)
		if path == nil {
			return ErrInvalidRef
		}
		backend.SetClip(path, c.Rule)
	case ClearClipCommand:
		backend.ClearClip()
	case FillPathCommand:
		path := r.resources.GetPath(c.Path)
		brush := r.resources.GetBrush(c.Brush)
		if path == nil || brush == nil {
			return ErrInvalidRef
		}
		backend.FillPath(path, brush, c.Rule)
	case StrokePathCommand:
		path := r.resources.GetPath(c.Path)
		brush := r.resources.GetBrush(c.Brush)
		if path == nil || brush == nil {
			return ErrInvalidRef
		}
		backend.StrokePath(path, brush, c.Stroke)
	case FillRectCommand:
		brush := r.resources.GetBrush(c.Brush)
		if brush == nil {
			return ErrInvalidRef
		}
		backend.FillRect(c.Rect, brush)
	case DrawImageCommand:
		img := r.resources.GetImage(c.Image)
		if img == nil {
			return ErrInvalidRef
		}
		backend.DrawImage(img, c.Matrix, c.Opacity)
	}
	return nil
}
