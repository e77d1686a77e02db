package geom

import "math"

// Route is an ordered orthogonal polyline. The first and last points are the
// two pin positions; every interior vertex changes only one axis relative to
// its neighbor.
type Route []Position

// Segments decomposes the route into its wire segments, skipping zero-length
// runs produced by coincident vertices.
func (r Route) Segments() []Segment {
	segs := make([]Segment, 0, len(r))
	for i := 0; i+1 < len(r); i++ {
		s := Segment{A: r[i], B: r[i+1]}
		if s.Degenerate() {
			continue
		}
		segs = append(segs, s)
	}
	return segs
}

// Length returns the total wire length.
func (r Route) Length() float64 {
	var total float64
	for _, s := range r.Segments() {
		total += s.Length()
	}
	return total
}

// Bends counts direction changes along the route.
func (r Route) Bends() int {
	segs := r.Segments()
	bends := 0
	for i := 0; i+1 < len(segs); i++ {
		if segs[i].Horizontal() != segs[i+1].Horizontal() {
			bends++
		}
	}
	return bends
}

// Orthogonal reports whether every consecutive point pair shares an X or Y
// coordinate. A route with fewer than two points is not a route.
func (r Route) Orthogonal() bool {
	if len(r) < 2 {
		return false
	}
	for i := 0; i+1 < len(r); i++ {
		dx := math.Abs(r[i].X - r[i+1].X)
		dy := math.Abs(r[i].Y - r[i+1].Y)
		if dx > Epsilon && dy > Epsilon {
			return false
		}
	}
	return true
}

// Degenerate reports whether the route collapses to a single point.
func (r Route) Degenerate() bool {
	return len(r) < 2 || r.Length() < Epsilon
}

// Simplify removes coincident vertices and merges collinear runs, keeping
// the endpoints untouched.
func (r Route) Simplify() Route {
	if len(r) < 3 {
		return r
	}
	out := Route{r[0]}
	for i := 1; i+1 < len(r); i++ {
		prev := out[len(out)-1]
		cur := r[i]
		next := r[i+1]
		if cur.Eq(prev) {
			continue
		}
		a := Segment{A: prev, B: cur}
		b := Segment{A: cur, B: next}
		if !b.Degenerate() && a.Horizontal() == b.Horizontal() && a.Vertical() == b.Vertical() {
			continue
		}
		out = append(out, cur)
	}
	out = append(out, r[len(r)-1])
	return out
}

// Clone returns an independent copy of the route.
func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}
