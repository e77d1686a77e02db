package route

import (
	"math"

	"github.com/OpenTraceLab/schemroute/pkg/geom"
	"github.com/OpenTraceLab/schemroute/pkg/symbol"
)

// Router plans orthogonal wire paths between resolved pins.
type Router struct {
	cfg Config
}

// NewRouter creates a router with the given calibration.
func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// Config returns the router calibration.
func (r *Router) Config() Config {
	return r.cfg
}

// Plan connects two world pins with the best-scoring axis-aligned path that
// leaves and arrives along each pin's exit side. owner is the routing net's
// id; placed segments of the same owner neither penalize nor repel the
// candidate. The route starts exactly at a.Pos and ends exactly at b.Pos.
// A candidate whose segments pass through an obstacle not owned by either
// endpoint item is only returned, flagged Obstructed, when every candidate
// is obstructed; it is never silently preferred over a clear one.
func (r *Router) Plan(owner string, a, b symbol.WorldPin, existing []PlacedSegment, obstacles []symbol.Obstacle) (geom.Route, Quality) {
	if a.Pos.Eq(b.Pos) {
		// Coincident pins collapse to a degenerate route; nothing to draw.
		return nil, Quality{}
	}

	var (
		best      geom.Route
		bestQ     Quality
		bestScore float64
		bestBends int
		found     bool
	)

	for _, cand := range r.candidates(a, b) {
		cand = r.nudge(cand, owner, existing).Simplify()
		if !cand.Orthogonal() || !compliant(cand, a, b) {
			continue
		}
		q := measure(cand, owner, existing, obstacles, a.ItemID, b.ItemID, r.cfg)
		score := q.Score(r.cfg)
		bends := cand.Bends()

		better := !found
		switch {
		case better:
		case bestQ.Obstructed && !q.Obstructed:
			better = true
		case !bestQ.Obstructed && q.Obstructed:
		case score < bestScore-geom.Epsilon:
			better = true
		case math.Abs(score-bestScore) <= geom.Epsilon && bends < bestBends:
			better = true
		}
		if better {
			best, bestQ, bestScore, bestBends, found = cand, q, score, bends, true
		}
	}

	if !found {
		// Both pins coincide or every candidate collapsed; nothing to draw.
		return nil, Quality{Obstructed: true}
	}
	return best, bestQ
}

// candidates enumerates the axis-aligned path shapes between the pins, in a
// fixed order so tie-breaking is deterministic: straight, the two L shapes,
// midpoint Z shapes, then escape-stub detours.
func (r *Router) candidates(a, b symbol.WorldPin) []geom.Route {
	pa, pb := a.Pos, b.Pos
	var out []geom.Route

	// Straight run.
	if math.Abs(pa.Y-pb.Y) < geom.Epsilon || math.Abs(pa.X-pb.X) < geom.Epsilon {
		out = append(out, geom.Route{pa, pb})
	}

	// Single-bend L shapes.
	out = append(out,
		geom.Route{pa, {X: pb.X, Y: pa.Y}, pb},
		geom.Route{pa, {X: pa.X, Y: pb.Y}, pb},
	)

	// Midpoint Z shapes: three segments through the halfway channel.
	midX := (pa.X + pb.X) / 2
	midY := (pa.Y + pb.Y) / 2
	out = append(out,
		geom.Route{pa, {X: midX, Y: pa.Y}, {X: midX, Y: pb.Y}, pb},
		geom.Route{pa, {X: pa.X, Y: midY}, {X: pb.X, Y: midY}, pb},
	)

	// Escape-stub detours: leave each pin by the fixed spacing along its
	// exit side, then connect the stub ends with an L either way. Covers
	// facing-away and same-side ("U") configurations.
	eax, eay := a.Side.Exit()
	ebx, eby := b.Side.Exit()
	ea := pa.Add(eax*r.cfg.StubSpacing, eay*r.cfg.StubSpacing)
	eb := pb.Add(ebx*r.cfg.StubSpacing, eby*r.cfg.StubSpacing)
	out = append(out,
		geom.Route{pa, ea, {X: eb.X, Y: ea.Y}, eb, pb},
		geom.Route{pa, ea, {X: ea.X, Y: eb.Y}, eb, pb},
	)

	// U detours through a channel past the pin extents, for facing-away
	// pins where no two-corner shape can honor both exit sides.
	lowY := math.Min(pa.Y, pb.Y) - r.cfg.StubSpacing
	highY := math.Max(pa.Y, pb.Y) + r.cfg.StubSpacing
	lowX := math.Min(pa.X, pb.X) - r.cfg.StubSpacing
	highX := math.Max(pa.X, pb.X) + r.cfg.StubSpacing
	for _, cy := range [2]float64{lowY, highY} {
		out = append(out, geom.Route{pa, ea, {X: ea.X, Y: cy}, {X: eb.X, Y: cy}, eb, pb})
	}
	for _, cx := range [2]float64{lowX, highX} {
		out = append(out, geom.Route{pa, ea, {X: cx, Y: ea.Y}, {X: cx, Y: eb.Y}, eb, pb})
	}

	return out
}

// compliant reports whether the route leaves pin a along a's exit side and
// arrives at pin b along b's exit side.
func compliant(route geom.Route, a, b symbol.WorldPin) bool {
	if len(route) < 2 {
		return false
	}
	fdx := route[1].X - route[0].X
	fdy := route[1].Y - route[0].Y
	ex, ey := a.Side.Exit()
	if fdx*ex+fdy*ey < geom.Epsilon {
		return false
	}

	n := len(route)
	ldx := route[n-2].X - route[n-1].X
	ldy := route[n-2].Y - route[n-1].Y
	ex, ey = b.Side.Exit()
	return ldx*ex+ldy*ey >= geom.Epsilon
}

// nudge shifts interior segments that exactly overlap another net's parallel
// segment, alternating sides in growing steps until the overlap clears or
// the attempt budget runs out. Endpoints never move.
func (r *Router) nudge(route geom.Route, owner string, existing []PlacedSegment) geom.Route {
	if len(route) < 4 {
		return route
	}
	pts := route.Clone()
	for i := 1; i+2 < len(pts); i++ {
		seg := geom.Segment{A: pts[i], B: pts[i+1]}
		if seg.Degenerate() || !overlapsAny(seg, owner, existing) {
			continue
		}
		for k := 1; k <= r.cfg.MaxNudgeAttempts; k++ {
			off := r.cfg.NudgeStep * float64((k+1)/2)
			if k%2 == 0 {
				off = -off
			}
			moved := shiftSegment(seg, off)
			if overlapsAny(moved, owner, existing) {
				continue
			}
			pts[i] = moved.A
			pts[i+1] = moved.B
			break
		}
	}
	return pts
}

func overlapsAny(seg geom.Segment, owner string, existing []PlacedSegment) bool {
	for _, p := range existing {
		if p.Owner == owner {
			continue
		}
		if seg.Overlaps(p.Segment) {
			return true
		}
	}
	return false
}

// shiftSegment moves an axis-aligned segment perpendicular to its run.
func shiftSegment(seg geom.Segment, off float64) geom.Segment {
	if seg.Horizontal() {
		seg.A.Y += off
		seg.B.Y += off
	} else {
		seg.A.X += off
		seg.B.X += off
	}
	return seg
}
