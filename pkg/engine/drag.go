package engine

import (
	"github.com/OpenTraceLab/schemroute/pkg/route"
	"github.com/OpenTraceLab/schemroute/pkg/symbol"
)

// DragState carries the working state for live routing while items are
// dragged. The caller owns it and reuses it across frames; the engine keeps
// no drag state of its own, so drags on different sheets never interfere.
type DragState struct {
	ItemIDs map[string]bool       // Items currently being dragged
	Static  []route.PlacedSegment // Wires of untouched nets, from the last full pass

	scratch   []route.PlacedSegment
	obstacles []symbol.Obstacle
	results   []NetResult
}

// NewDragState prepares drag state for the given items. Seed Static from
// Drawing.PlacedSegments of the last full pass so live routes avoid the
// wires that are not moving.
func NewDragState(itemIDs ...string) *DragState {
	ids := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		ids[id] = true
	}
	return &DragState{ItemIDs: ids}
}

// RouteLive recomputes only the nets that touch the dragged items, against
// the frozen geometry of everything else. It reuses the full-pass routing
// functions but skips bus and crossing detection; the full pass reconciles
// when the drag ends. The returned slice is valid until the next call on
// the same state.
func (e *Engine) RouteLive(sheet *Sheet, ds *DragState) []NetResult {
	items := itemIndex(sheet.Items)
	ds.obstacles = symbol.BuildObstacles(sheet.Items, e.cfg.Clearance)
	ds.results = ds.results[:0]

	touched := make(map[string]bool)
	for _, n := range sheet.Nets {
		for _, ref := range n.Pins {
			if ds.ItemIDs[ref.ItemID] {
				touched[n.ID] = true
				break
			}
		}
	}

	// Frozen context: every static segment except the touched nets' own
	// old geometry, which is being replaced this frame.
	placed := ds.scratch[:0]
	for _, p := range ds.Static {
		if !touched[p.Owner] {
			placed = append(placed, p)
		}
	}

	for _, n := range sheet.Nets {
		if !touched[n.ID] {
			continue
		}
		pins := make([]symbol.WorldPin, 0, len(n.Pins))
		for _, ref := range n.Pins {
			item, ok := items[ref.ItemID]
			if !ok {
				continue
			}
			wp, ok := symbol.ResolvePin(item, ref.PinID)
			if !ok {
				continue
			}
			pins = append(pins, wp)
		}
		if len(pins) < 2 {
			continue
		}
		res, segs, _ := e.routeNet(sheet.Path, resolvedNet{net: n, pins: pins, span: pinSpan(pins)}, placed, ds.obstacles)
		if res == nil {
			continue
		}
		ds.results = append(ds.results, *res)
		placed = append(placed, segs...)
	}
	ds.scratch = placed[:0]
	return ds.results
}
