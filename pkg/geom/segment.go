package geom

import "math"

// Segment is a single axis-aligned wire segment.
type Segment struct {
	A Position // Start point
	B Position // End point
}

// Horizontal reports whether both endpoints share a Y coordinate.
func (s Segment) Horizontal() bool {
	return math.Abs(s.A.Y-s.B.Y) < Epsilon
}

// Vertical reports whether both endpoints share an X coordinate.
func (s Segment) Vertical() bool {
	return math.Abs(s.A.X-s.B.X) < Epsilon
}

// Degenerate reports whether the segment has zero length.
func (s Segment) Degenerate() bool {
	return s.A.Eq(s.B)
}

// Length returns the segment length. Only meaningful for axis-aligned
// segments, which is all this engine produces.
func (s Segment) Length() float64 {
	return math.Abs(s.A.X-s.B.X) + math.Abs(s.A.Y-s.B.Y)
}

// span returns the segment's range along its varying axis, ordered min, max.
func (s Segment) span() (lo, hi float64) {
	if s.Horizontal() {
		return math.Min(s.A.X, s.B.X), math.Max(s.A.X, s.B.X)
	}
	return math.Min(s.A.Y, s.B.Y), math.Max(s.A.Y, s.B.Y)
}

// fixed returns the segment's constant coordinate (Y for horizontal,
// X for vertical).
func (s Segment) fixed() float64 {
	if s.Horizontal() {
		return s.A.Y
	}
	return s.A.X
}

// Overlaps reports whether two parallel collinear segments share more than
// a single point.
func (s Segment) Overlaps(t Segment) bool {
	if s.Horizontal() != t.Horizontal() {
		return false
	}
	if math.Abs(s.fixed()-t.fixed()) > Epsilon {
		return false
	}
	sLo, sHi := s.span()
	tLo, tHi := t.span()
	return math.Min(sHi, tHi)-math.Max(sLo, tLo) > Epsilon
}

// CloseParallel reports whether the segments run parallel within the given
// gap, overlapping along their shared axis, without being collinear.
func (s Segment) CloseParallel(t Segment, gap float64) bool {
	if s.Horizontal() != t.Horizontal() {
		return false
	}
	d := math.Abs(s.fixed() - t.fixed())
	if d <= Epsilon || d > gap {
		return false
	}
	sLo, sHi := s.span()
	tLo, tHi := t.span()
	return math.Min(sHi, tHi)-math.Max(sLo, tLo) > Epsilon
}

// CrossesAt reports a right-angle intersection between a horizontal and a
// vertical segment and returns the intersection point. Touches at shared
// endpoints count; callers that care filter them out.
func (s Segment) CrossesAt(t Segment) (Position, bool) {
	h, v := s, t
	if s.Horizontal() == t.Horizontal() {
		return Position{}, false
	}
	if !h.Horizontal() {
		h, v = t, s
	}
	hLo, hHi := h.span()
	vLo, vHi := v.span()
	x := v.fixed()
	y := h.fixed()
	if x < hLo-Epsilon || x > hHi+Epsilon {
		return Position{}, false
	}
	if y < vLo-Epsilon || y > vHi+Epsilon {
		return Position{}, false
	}
	return Position{X: x, Y: y}, true
}

// IntersectsBox reports whether an axis-aligned segment passes through the
// interior of a bounding box. Grazing the boundary does not count.
func (s Segment) IntersectsBox(box BoundingBox) bool {
	lo, hi := s.span()
	if s.Horizontal() {
		y := s.fixed()
		if y <= box.Min.Y+Epsilon || y >= box.Max.Y-Epsilon {
			return false
		}
		return hi > box.Min.X+Epsilon && lo < box.Max.X-Epsilon
	}
	x := s.fixed()
	if x <= box.Min.X+Epsilon || x >= box.Max.X-Epsilon {
		return false
	}
	return hi > box.Min.Y+Epsilon && lo < box.Max.Y-Epsilon
}
