// Package crossing finds right-angle intersections between placed wire
// segments of unrelated nets and decides which wire is drawn with the
// unbroken "jump" arc.
package crossing

import (
	"sort"

	"github.com/OpenTraceLab/schemroute/pkg/geom"
)

// Placed is a finalized wire segment tagged with its owning net or trunk id.
type Placed struct {
	Owner   string
	Segment geom.Segment
}

// Crossing is one visual wire crossing with no electrical connection.
// Horizontal and Vertical are the two owner ids; Jumper is the one whose
// wire gets the jump arc.
type Crossing struct {
	Pos        geom.Position `json:"pos"`
	Horizontal string        `json:"horizontal"`
	Vertical   string        `json:"vertical"`
	Jumper     string        `json:"jumper"`
}

// Detect reports every right-angle intersection between segments of
// different owners. Same-owner intersections and touches at a shared
// endpoint are excluded. The jump arc goes to the lexicographically smaller
// owner id: a stable identity rule, independent of draw order. Results are
// sorted by position, then owners, and deduplicated, so permuting the input
// cannot change the output.
func Detect(placed []Placed) []Crossing {
	var out []Crossing
	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			a, b := placed[i], placed[j]
			if a.Owner == b.Owner {
				continue
			}
			if a.Segment.Horizontal() == b.Segment.Horizontal() {
				continue
			}
			pt, ok := a.Segment.CrossesAt(b.Segment)
			if !ok {
				continue
			}
			if isEndpoint(pt, a.Segment) || isEndpoint(pt, b.Segment) {
				// A touch, not a crossing: at least one wire ends here.
				continue
			}
			h, v := a.Owner, b.Owner
			if !a.Segment.Horizontal() {
				h, v = v, h
			}
			jumper := h
			if v < h {
				jumper = v
			}
			out = append(out, Crossing{Pos: pt, Horizontal: h, Vertical: v, Jumper: jumper})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Pos.X != b.Pos.X {
			return a.Pos.X < b.Pos.X
		}
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y < b.Pos.Y
		}
		if a.Horizontal != b.Horizontal {
			return a.Horizontal < b.Horizontal
		}
		return a.Vertical < b.Vertical
	})

	// Collapse duplicates from segments that share a vertex on the same
	// crossing point.
	dedup := out[:0]
	for i, c := range out {
		if i > 0 {
			p := out[i-1]
			if c.Pos.Eq(p.Pos) && c.Horizontal == p.Horizontal && c.Vertical == p.Vertical {
				continue
			}
		}
		dedup = append(dedup, c)
	}
	return dedup
}

// isEndpoint reports whether the point coincides with either end of the
// segment.
func isEndpoint(pt geom.Position, s geom.Segment) bool {
	return pt.Eq(s.A) || pt.Eq(s.B)
}
