// Package engine runs the full routing pass over a schematic sheet: pin
// resolution, obstacle construction, net priority ordering, orthogonal and
// multi-pin routing, bus detection, and crossing detection, in one
// synchronous call. It also provides the imperative live path used while
// items are dragged.
package engine

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/OpenTraceLab/schemroute/pkg/bus"
	"github.com/OpenTraceLab/schemroute/pkg/crossing"
	"github.com/OpenTraceLab/schemroute/pkg/geom"
	"github.com/OpenTraceLab/schemroute/pkg/netlist"
	"github.com/OpenTraceLab/schemroute/pkg/route"
	"github.com/OpenTraceLab/schemroute/pkg/symbol"
)

// Sheet is the input to a routing pass: placed items and the nets joining
// their pins. The engine treats it as read-only; all derived geometry is
// recomputed every pass.
type Sheet struct {
	Path  string         `json:"path,omitempty"` // Hierarchical sheet path
	Items []*symbol.Item `json:"items"`
	Nets  []*netlist.Net `json:"nets"`
}

// Engine turns sheets into drawings. It owns the route calibration and the
// user override store; those are the only state carried between passes.
type Engine struct {
	cfg       route.Config
	router    *route.Router
	overrides *route.Store
	log       *logrus.Logger
}

// New creates an engine with the given calibration.
func New(cfg route.Config) *Engine {
	return &Engine{
		cfg:       cfg,
		router:    route.NewRouter(cfg),
		overrides: route.NewStore(),
		log:       logrus.StandardLogger(),
	}
}

// SetLogger replaces the pass logger.
func (e *Engine) SetLogger(log *logrus.Logger) {
	if log != nil {
		e.log = log
	}
}

// SetRouteOverride records user-edited geometry for one routed edge. It is
// honored on every following pass until cleared; an override is never
// silently replaced by automatic routing.
func (e *Engine) SetRouteOverride(key route.OverrideKey, r geom.Route) {
	e.overrides.Set(key, r)
}

// ClearRouteOverride removes an override. Automatic routing resumes for
// that edge on the next pass.
func (e *Engine) ClearRouteOverride(key route.OverrideKey) {
	e.overrides.Clear(key)
}

// resolvedNet is a net whose pins survived resolution, plus its Manhattan
// extent for priority ordering.
type resolvedNet struct {
	net  *netlist.Net
	pins []symbol.WorldPin
	span float64
}

// Route runs one full synchronous pass. It never mutates the sheet and
// never fails: nets that cannot be drawn degrade to stubs or are recorded
// in Drawing.Skipped.
func (e *Engine) Route(sheet *Sheet) *Drawing {
	items := itemIndex(sheet.Items)
	obstacles := symbol.BuildObstacles(sheet.Items, e.cfg.Clearance)

	resolved, skipped := e.resolveNets(sheet, items)
	orderNets(resolved)

	d := &Drawing{Skipped: skipped}
	var placed []route.PlacedSegment
	var cands []bus.Candidate

	for _, rn := range resolved {
		res, segs, cand := e.routeNet(sheet.Path, rn, placed, obstacles)
		if res == nil {
			d.Skipped = append(d.Skipped, Skip{NetID: rn.net.ID, Reason: "degenerate route"})
			continue
		}
		d.Nets = append(d.Nets, *res)
		placed = append(placed, segs...)
		if cand != nil {
			cands = append(cands, *cand)
		}
	}

	d.Buses = bus.Detect(cands, e.cfg.StubSpacing)
	d.Crossings = crossing.Detect(crossingInput(placed, d.Buses))

	sort.Slice(d.Nets, func(i, j int) bool { return d.Nets[i].NetID < d.Nets[j].NetID })
	sort.Slice(d.Skipped, func(i, j int) bool { return d.Skipped[i].NetID < d.Skipped[j].NetID })

	e.log.WithFields(logrus.Fields{
		"nets":      len(d.Nets),
		"buses":     len(d.Buses),
		"crossings": len(d.Crossings),
		"skipped":   len(d.Skipped),
	}).Debug("routing pass complete")
	return d
}

// resolveNets resolves every pin of every net. Unknown items and missing
// pins drop the pin; a net left with fewer than two pins is skipped.
func (e *Engine) resolveNets(sheet *Sheet, items map[string]*symbol.Item) ([]resolvedNet, []Skip) {
	var resolved []resolvedNet
	var skipped []Skip
	for _, n := range sheet.Nets {
		pins := make([]symbol.WorldPin, 0, len(n.Pins))
		dropped := 0
		for _, ref := range n.Pins {
			item, ok := items[ref.ItemID]
			if !ok {
				dropped++
				continue
			}
			wp, ok := symbol.ResolvePin(item, ref.PinID)
			if !ok {
				dropped++
				continue
			}
			pins = append(pins, wp)
		}
		if dropped > 0 {
			e.log.WithFields(logrus.Fields{"net": n.ID, "dropped": dropped}).Debug("unresolvable pins skipped")
		}
		if len(pins) < 2 {
			skipped = append(skipped, Skip{NetID: n.ID, Reason: "fewer than two resolvable pins"})
			continue
		}
		resolved = append(resolved, resolvedNet{net: n, pins: pins, span: pinSpan(pins)})
	}
	return resolved, skipped
}

// priority ranks nets for routing order. Power rails route first and claim
// the clean corridors, then ground, then bus-bound nets, then everything
// else.
func priority(n *netlist.Net) int {
	switch {
	case n.Class == netlist.ClassPower:
		return 0
	case n.Class == netlist.ClassGround:
		return 1
	case n.Bundle || n.Class == netlist.ClassBus:
		return 2
	}
	return 3
}

// orderNets sorts nets into routing order: priority class, then Manhattan
// extent, then net id. The key is total, so the order never depends on
// input order.
func orderNets(nets []resolvedNet) {
	sort.Slice(nets, func(i, j int) bool {
		pi, pj := priority(nets[i].net), priority(nets[j].net)
		if pi != pj {
			return pi < pj
		}
		if nets[i].span != nets[j].span {
			return nets[i].span < nets[j].span
		}
		return nets[i].net.ID < nets[j].net.ID
	})
}

// routeNet draws one net. It returns the result, the segments the net
// claims for later nets to route around, and the bus candidate when the net
// came out as a single direct wire. A nil result means the route was
// degenerate and nothing is drawn.
func (e *Engine) routeNet(path string, rn resolvedNet, placed []route.PlacedSegment, obstacles []symbol.Obstacle) (*NetResult, []route.PlacedSegment, *bus.Candidate) {
	n := rn.net
	res := &NetResult{NetID: n.ID, Name: n.Name, Class: n.Class}

	switch {
	case len(rn.pins) == 2:
		a, b := rn.pins[0], rn.pins[1]

		// A stored override wins outright: it is anchored to the current
		// pin positions and bypasses quality checks entirely.
		if ov, ok := e.overrides.Get(route.OverrideKey{NetID: n.ID, Edge: 0}); ok {
			if anchored, ok := route.Anchor(ov, a.Pos, b.Pos); ok {
				res.Wires = append(res.Wires, Wire{
					UUID:   wireID(path, n.ID, 0),
					Edge:   0,
					Route:  anchored,
					Source: route.SourceOverridden,
				})
				return res, ownSegments(n.ID, anchored), &bus.Candidate{Net: n, A: a, B: b}
			}
			// Anchoring failed for the current pin positions. The override
			// stays stored but this pass routes automatically.
		}

		rt, q := e.router.Plan(n.ID, a, b, placed, obstacles)
		if len(rt) < 2 {
			return nil, nil, nil
		}
		if e.router.Classify(n.Class, a, b, rt, q) == route.OutcomeWire {
			res.Wires = append(res.Wires, Wire{
				UUID:   wireID(path, n.ID, 0),
				Edge:   0,
				Route:  rt,
				Source: route.SourceComputed,
			})
			return res, ownSegments(n.ID, rt), &bus.Candidate{Net: n, A: a, B: b}
		}
		res.Stubs = e.router.MakeStubs(n.Name, a, b)
		return res, nil, nil

	case len(rn.pins) >= 3 && len(rn.pins) <= 5:
		edges, ok := e.router.PlanTree(n.ID, n.Class, rn.pins, placed, obstacles)
		if !ok {
			res.Stubs = e.router.MakeStubs(n.Name, rn.pins...)
			return res, nil, nil
		}
		var segs []route.PlacedSegment
		for i := range edges {
			rt := edges[i].Route
			src := route.SourceComputed
			if ov, ok := e.overrides.Get(route.OverrideKey{NetID: n.ID, Edge: i}); ok {
				if anchored, aok := route.Anchor(ov, edges[i].A.Pos, edges[i].B.Pos); aok {
					rt, src = anchored, route.SourceOverridden
				}
			}
			res.Wires = append(res.Wires, Wire{
				UUID:   wireID(path, n.ID, i),
				Edge:   i,
				Route:  rt,
				Source: src,
			})
			segs = append(segs, ownSegments(n.ID, rt)...)
		}
		return res, segs, nil

	default:
		// Too many pins for tree routing: labeled stubs at every pin.
		res.Stubs = e.router.MakeStubs(n.Name, rn.pins...)
		return res, nil, nil
	}
}

// crossingInput builds the finalized segment set for crossing detection.
// Bus member wires are represented by their trunk, so jump markers land on
// the drawn trunk rather than on geometry the trunk replaces.
func crossingInput(placed []route.PlacedSegment, buses []bus.Group) []crossing.Placed {
	member := make(map[string]bool)
	for _, g := range buses {
		for _, id := range g.MemberNetIDs {
			member[id] = true
		}
	}
	out := make([]crossing.Placed, 0, len(placed))
	for _, p := range placed {
		if member[p.Owner] {
			continue
		}
		out = append(out, crossing.Placed{Owner: p.Owner, Segment: p.Segment})
	}
	for _, g := range buses {
		for _, s := range g.Trunk.Segments() {
			out = append(out, crossing.Placed{Owner: g.ID, Segment: s})
		}
	}
	return out
}

func ownSegments(owner string, rt geom.Route) []route.PlacedSegment {
	segs := rt.Segments()
	out := make([]route.PlacedSegment, 0, len(segs))
	for _, s := range segs {
		out = append(out, route.PlacedSegment{Owner: owner, Segment: s})
	}
	return out
}

func pinSpan(pins []symbol.WorldPin) float64 {
	bbox := geom.NewBoundingBox()
	for _, p := range pins {
		bbox.Expand(p.Pos)
	}
	return bbox.Width() + bbox.Height()
}

func itemIndex(items []*symbol.Item) map[string]*symbol.Item {
	idx := make(map[string]*symbol.Item, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}
	return idx
}
