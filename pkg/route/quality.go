package route

import (
	"github.com/OpenTraceLab/schemroute/pkg/geom"
	"github.com/OpenTraceLab/schemroute/pkg/symbol"
)

// PlacedSegment is a finalized wire segment already claimed by a net or bus
// trunk. Later routes score themselves against these.
type PlacedSegment struct {
	Owner   string // Net or trunk id
	Segment geom.Segment
}

// Quality describes how well a candidate route fits among the wires already
// placed. Lower Score is better.
type Quality struct {
	Overlaps       int     // Collinear runs shared with other nets
	Crossings      int     // Right-angle intersections with other nets
	CloseParallels int     // Distinct parallel runs within the parallel gap
	Length         float64 // Total wire length
	Obstructed     bool    // A segment passes through a foreign item body
}

// Score collapses the quality counters into a single weighted figure.
// Overlaps dominate, then crossings, then close parallels, then length.
func (q Quality) Score(cfg Config) float64 {
	return float64(q.Overlaps)*cfg.OverlapWeight +
		float64(q.Crossings)*cfg.CrossingWeight +
		float64(q.CloseParallels)*cfg.ParallelWeight +
		q.Length*cfg.LengthWeight
}

// measure scores a candidate route against the already-placed segments and
// the obstacle set. Segments of the same owning net are skipped: running
// along or touching your own net is a junction, not a conflict. Crossings
// that only touch at shared endpoints do not count. Obstacles owned by
// either endpoint item are ignored: a wire necessarily starts inside its
// own symbol's clearance zone.
func measure(r geom.Route, owner string, existing []PlacedSegment, obstacles []symbol.Obstacle, itemA, itemB string, cfg Config) Quality {
	q := Quality{Length: r.Length()}
	segs := r.Segments()

	for _, s := range segs {
		for _, p := range existing {
			if p.Owner == owner {
				continue
			}
			switch {
			case s.Overlaps(p.Segment):
				q.Overlaps++
			case s.CloseParallel(p.Segment, cfg.ParallelGap):
				q.CloseParallels++
			default:
				if pt, ok := s.CrossesAt(p.Segment); ok {
					if sharedEndpoint(pt, s, p.Segment) {
						continue
					}
					q.Crossings++
				}
			}
		}
		for i := range obstacles {
			if obstacles[i].ItemID == itemA || obstacles[i].ItemID == itemB {
				continue
			}
			if s.IntersectsBox(obstacles[i].Box) {
				q.Obstructed = true
			}
		}
	}
	return q
}

// sharedEndpoint reports whether the intersection point coincides with an
// endpoint of both segments, i.e. the two wires merely touch.
func sharedEndpoint(pt geom.Position, a, b geom.Segment) bool {
	touchesA := pt.Eq(a.A) || pt.Eq(a.B)
	touchesB := pt.Eq(b.A) || pt.Eq(b.B)
	return touchesA && touchesB
}
