package recording

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave      CommandType = iota // Save graphics state
	CmdRestore                      // Restore graphics state
	CmdSetClip                      // Intersect clip with a path
	CmdClearClip                    // Remove clips set since the last Save

	// Drawing commands
	CmdFillPath   // Fill a path
	CmdStrokePath // Stroke a path
	CmdFillRect   // Fill a rectangle
	CmdDrawImage  // Draw an image under a matrix
)

var commandTypeNames = [...]string{
	CmdSave:       "Save",
	CmdRestore:    "Restore",
	CmdSetClip:    "SetClip",
	CmdClearClip:  "ClearClip",
	CmdFillPath:   "FillPath",
	CmdStrokePath: "StrokePath",
	CmdFillRect:   "FillRect",
	CmdDrawImage:  "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Reference Types
// --------------------------------------------------------------------------

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// BrushRef is a reference to a brush in the resource pool.
type BrushRef uint32

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference is not InvalidRef.
func (r PathRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r BrushRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r ImageRef) IsValid() bool { return uint32(r) != InvalidRef }

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand saves the graphics state (clip in particular).
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand restores the graphics state saved by the matching Save.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// SetClipCommand intersects the clip region with a path.
type SetClipCommand struct {
	Path PathRef
	Rule FillRule
}

// Type implements Command.
func (SetClipCommand) Type() CommandType { return CmdSetClip }

// ClearClipCommand removes the clips set since the most recent Save.
type ClearClipCommand struct{}

// Type implements Command.
func (ClearClipCommand) Type() CommandType { return CmdClearClip }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// FillPathCommand fills a path with a brush.
type FillPathCommand struct {
	Path  PathRef
	Brush BrushRef
	Rule  FillRule
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand strokes a path with a brush and stroke style.
type StrokePathCommand struct {
	Path   PathRef
	Brush  BrushRef
	Stroke Stroke
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// FillRectCommand fills a device-space rectangle.
type FillRectCommand struct {
	Rect  Rect
	Brush BrushRef
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// DrawImageCommand draws an image. Matrix maps image pixel coordinates,
// with (0, 0) at the top-left of the image bounds, into device space.
type DrawImageCommand struct {
	Image   ImageRef
	Matrix  Matrix
	Opacity float64
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// --------------------------------------------------------------------------
// Supporting Types
// --------------------------------------------------------------------------

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Stroke defines the style for stroking paths. Lengths are in device units.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	// Dash is the dash pattern, nil for a solid line.
	Dash       []float64
	DashOffset float64
}

// DefaultStroke returns a Stroke with default settings.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10.0,
	}
}

// Clone creates a deep copy of the Stroke.
func (s Stroke) Clone() Stroke {
	result := s
	if s.Dash != nil {
		result.Dash = make([]float64, len(s.Dash))
		copy(result.Dash, s.Dash)
	}
	return result
}

// IsDashed reports whether the stroke has a usable dash pattern.
func (s Stroke) IsDashed() bool {
	total := 0.0
	for _, d := range s.Dash {
		if d < 0 {
			return false
		}
		total += d
	}
	return total > 0
}
