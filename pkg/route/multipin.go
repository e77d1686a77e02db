package route

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/OpenTraceLab/schemroute/pkg/geom"
	"github.com/OpenTraceLab/schemroute/pkg/netlist"
	"github.com/OpenTraceLab/schemroute/pkg/symbol"
)

// TreeEdge is one routed edge of a multi-pin net's spanning tree.
type TreeEdge struct {
	A, B    symbol.WorldPin
	Route   geom.Route
	Quality Quality
}

// PlanTree routes a 3-5 pin net: a minimum-Manhattan-spanning tree over the
// pins, each edge routed through Plan in shortest-first order with earlier
// edges fed forward as placed context. ok is false when the net must degrade
// to stubs: pin count or span out of bounds, or any edge failing the
// fallback criteria — there is no partial wiring. Never-degrading classes
// always return their best effort.
func (r *Router) PlanTree(owner string, class netlist.NetClass, pins []symbol.WorldPin, existing []PlacedSegment, obstacles []symbol.Obstacle) ([]TreeEdge, bool) {
	if len(pins) < 3 || len(pins) > 5 {
		return nil, false
	}
	if !class.NeverDegrades() {
		bbox := geom.NewBoundingBox()
		for _, p := range pins {
			bbox.Expand(p.Pos)
		}
		if bbox.Width()+bbox.Height() > r.cfg.MultiPinSpanCap {
			return nil, false
		}
	}

	n := len(pins)
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// The index-derived epsilon keeps every weight distinct, so
			// the minimum tree is unique and the result does not depend
			// on graph iteration order.
			w := pins[i].Pos.Manhattan(pins[j].Pos) + 1e-9*float64(i*n+j)
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(j), W: w})
		}
	}
	mst := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	path.Prim(mst, g)

	type treePair struct {
		i, j int
		span float64
	}
	var pairs []treePair
	it := mst.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		i, j := int(e.From().ID()), int(e.To().ID())
		if i > j {
			i, j = j, i
		}
		pairs = append(pairs, treePair{i: i, j: j, span: pins[i].Pos.Manhattan(pins[j].Pos)})
	}
	// Shortest edges route first and claim space; ties break on pin index.
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].span != pairs[b].span {
			return pairs[a].span < pairs[b].span
		}
		if pairs[a].i != pairs[b].i {
			return pairs[a].i < pairs[b].i
		}
		return pairs[a].j < pairs[b].j
	})

	ctx := make([]PlacedSegment, len(existing), len(existing)+3*len(pairs))
	copy(ctx, existing)

	edges := make([]TreeEdge, 0, len(pairs))
	for idx, pr := range pairs {
		rt, q := r.Plan(owner, pins[pr.i], pins[pr.j], ctx, obstacles)
		if len(rt) < 2 {
			if class.NeverDegrades() {
				continue
			}
			return nil, false
		}
		if !class.NeverDegrades() && r.Classify(class, pins[pr.i], pins[pr.j], rt, q) != OutcomeWire {
			return nil, false
		}
		// Earlier edges are fed forward under a per-edge sub-id so later
		// edges of the same net still route around them.
		sub := fmt.Sprintf("%s#%d", owner, idx)
		for _, s := range rt.Segments() {
			ctx = append(ctx, PlacedSegment{Owner: sub, Segment: s})
		}
		edges = append(edges, TreeEdge{A: pins[pr.i], B: pins[pr.j], Route: rt, Quality: q})
	}
	if len(edges) == 0 {
		return nil, false
	}
	return edges, true
}
