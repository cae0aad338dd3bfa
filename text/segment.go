package text

import (
	"golang.org/x/image/font/sfnt"
)

// Op is an outline segment operation.
type Op uint8

const (
	// OpMoveTo starts a new contour at Pts[0].
	OpMoveTo Op = iota
	// OpLineTo draws a line to Pts[0].
	OpLineTo
	// OpQuadTo draws a quadratic curve with control Pts[0] to Pts[1].
	OpQuadTo
	// OpCubeTo draws a cubic curve with controls Pts[0], Pts[1] to Pts[2].
	OpCubeTo
)

// Point is an outline coordinate in user units, y down.
type Point struct {
	X, Y float64
}

// Segment is one outline operation.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// appendSegments converts sfnt segments, offset by (dx, dy), and appends
// them to dst. Contours are left open; sfnt closes them implicitly with
// the next MoveTo, and fills treat them as closed.
func appendSegments(dst []Segment, segs sfnt.Segments, dx, dy float64) []Segment {
	for _, s := range segs {
		var seg Segment
		n := 1
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			seg.Op = OpMoveTo
		case sfnt.SegmentOpLineTo:
			seg.Op = OpLineTo
		case sfnt.SegmentOpQuadTo:
			seg.Op = OpQuadTo
			n = 2
		case sfnt.SegmentOpCubeTo:
			seg.Op = OpCubeTo
			n = 3
		}
		for i := 0; i < n; i++ {
			seg.Pts[i] = Point{
				X: dx + fixedToFloat(s.Args[i].X),
				Y: dy + fixedToFloat(s.Args[i].Y),
			}
		}
		dst = append(dst, seg)
	}
	return dst
}
