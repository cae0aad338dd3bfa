package recording

import (
	"errors"
	"image"
	"slices"
	"testing"
)

var red = Color{R: 1, A: 1}

func trianglePath() *Path {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(5, 8)
	p.Close()
	return p
}

func TestNewRecorder(t *testing.T) {
	rec := NewRecorder(800, 600)

	if rec.Width() != 800 {
		t.Errorf("Width() = %d, want 800", rec.Width())
	}
	if rec.Height() != 600 {
		t.Errorf("Height() = %d, want 600", rec.Height())
	}
	if len(rec.Commands()) != 0 {
		t.Errorf("new recorder has %d commands, want 0", len(rec.Commands()))
	}
}

func TestRecorderIgnoresEmptyPaths(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.FillPath(NewPath(), NewSolidBrush(red), FillRuleNonZero)
	rec.StrokePath(nil, NewSolidBrush(red), DefaultStroke())
	rec.SetClip(NewPath(), FillRuleEvenOdd)
	rec.DrawImage(nil, Identity(), 1)

	if n := len(rec.Commands()); n != 0 {
		t.Errorf("recorded %d commands for empty input, want 0", n)
	}
}

func TestRecorderClonesPaths(t *testing.T) {
	rec := NewRecorder(10, 10)
	p := trianglePath()
	rec.FillPath(p, NewSolidBrush(red), FillRuleNonZero)
	p.LineTo(100, 100)

	r := rec.Finish()
	cmd := r.Commands()[0].(FillPathCommand)
	if got := r.Resources().GetPath(cmd.Path).Len(); got != 4 {
		t.Errorf("stored path has %d segments, want 4", got)
	}
}

func TestPlaybackOrder(t *testing.T) {
	rec := NewRecorder(64, 32)
	rec.FillRect(NewRect(0, 0, 64, 32), NewSolidBrush(Color{R: 1, G: 1, B: 1, A: 1}))
	rec.Save()
	rec.SetClip(trianglePath(), FillRuleNonZero)
	rec.FillPath(trianglePath(), NewSolidBrush(red), FillRuleEvenOdd)
	rec.StrokePath(trianglePath(), NewSolidBrush(red), DefaultStroke())
	rec.ClearClip()
	rec.DrawImage(image.NewRGBA(image.Rect(0, 0, 2, 2)), Translate(3, 4), 0.5)
	rec.Restore()

	mock := newMockBackend("order")
	if err := rec.Finish().Playback(mock); err != nil {
		t.Fatalf("Playback: %v", err)
	}

	want := []string{"FillRect", "Save", "SetClip", "FillPath", "StrokePath", "ClearClip", "DrawImage", "Restore"}
	if !slices.Equal(mock.calls, want) {
		t.Errorf("calls = %v, want %v", mock.calls, want)
	}
	if mock.beginCalls != 1 || mock.endCalls != 1 {
		t.Errorf("Begin/End calls = %d/%d, want 1/1", mock.beginCalls, mock.endCalls)
	}
	if mock.width != 64 || mock.height != 32 {
		t.Errorf("Begin size = %dx%d, want 64x32", mock.width, mock.height)
	}
}

func TestFinishIsSnapshot(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.Save()
	r := rec.Finish()
	rec.Restore()

	if n := len(r.Commands()); n != 1 {
		t.Errorf("snapshot has %d commands, want 1", n)
	}
}

func TestPlaybackInvalidRef(t *testing.T) {
	r := &Recording{
		width:     10,
		height:    10,
		commands:  []Command{FillPathCommand{Path: 7, Brush: 0}},
		resources: NewResourcePool(),
	}

	err := r.Playback(newMockBackend("bad"))
	if !errors.Is(err, ErrInvalidRef) {
		t.Errorf("Playback error = %v, want ErrInvalidRef", err)
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{SaveCommand{}, "Save"},
		{RestoreCommand{}, "Restore"},
		{SetClipCommand{}, "SetClip"},
		{ClearClipCommand{}, "ClearClip"},
		{FillPathCommand{}, "FillPath"},
		{StrokePathCommand{}, "StrokePath"},
		{FillRectCommand{}, "FillRect"},
		{DrawImageCommand{}, "DrawImage"},
	}

	for _, tt := range tests {
		if got := tt.cmd.Type().String(); got != tt.want {
			t.Errorf("%T.Type().String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}

	if got := CommandType(200).String(); got != "Unknown" {
		t.Errorf("CommandType(200).String() = %q, want Unknown", got)
	}
}

func TestResourcePoolSolidBrushReuse(t *testing.T) {
	pool := NewResourcePool()
	a := pool.AddBrush(NewSolidBrush(red))
	b := pool.AddBrush(NewSolidBrush(red))
	c := pool.AddBrush(NewSolidBrush(Color{B: 1, A: 1}))

	if a != b {
		t.Errorf("identical consecutive brushes got refs %d and %d", a, b)
	}
	if c == a {
		t.Error("different brush reused the previous ref")
	}
	if pool.BrushCount() != 2 {
		t.Errorf("BrushCount() = %d, want 2", pool.BrushCount())
	}
	if pool.GetBrush(BrushRef(99)) != nil {
		t.Error("GetBrush out of range should return nil")
	}
}

func TestStrokeClone(t *testing.T) {
	s := DefaultStroke()
	s.Dash = []float64{4, 2}
	c := s.Clone()
	c.Dash[0] = 9

	if s.Dash[0] != 4 {
		t.Error("Clone shares the dash slice")
	}
	if !s.IsDashed() {
		t.Error("IsDashed() = false for {4, 2}")
	}
	if (Stroke{Dash: []float64{0, 0}}).IsDashed() {
		t.Error("IsDashed() = true for an all-zero pattern")
	}
}
