package engine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/schemroute/pkg/bus"
	"github.com/OpenTraceLab/schemroute/pkg/crossing"
	"github.com/OpenTraceLab/schemroute/pkg/geom"
	"github.com/OpenTraceLab/schemroute/pkg/netlist"
	"github.com/OpenTraceLab/schemroute/pkg/route"
)

// wireSpace is the fixed namespace for wire ids. Ids are SHA1-derived from
// the sheet path, net id, and edge index, so identical inputs always yield
// identical ids.
var wireSpace = uuid.MustParse("b3a0a7c2-5c1e-4d0a-9f42-7d12c9a64e08")

func wireID(sheetPath, netID string, edge int) uuid.UUID {
	return uuid.NewSHA1(wireSpace, []byte(fmt.Sprintf("%s|%s|%d", sheetPath, netID, edge)))
}

// Wire is one drawn run of a net: the whole route for a 2-pin net, or one
// spanning-tree edge of a multi-pin net.
type Wire struct {
	UUID   uuid.UUID    `json:"uuid"`
	Edge   int          `json:"edge"`
	Route  geom.Route   `json:"route"`
	Source route.Source `json:"source"`
}

// NetResult is the drawn form of one net: wires, or labeled stubs when the
// net degraded.
type NetResult struct {
	NetID string           `json:"net"`
	Name  string           `json:"name"`
	Class netlist.NetClass `json:"class"`
	Wires []Wire           `json:"wires,omitempty"`
	Stubs []route.Stub     `json:"stubs,omitempty"`
}

// Skip records a net the pass could not draw at all, and why.
type Skip struct {
	NetID  string `json:"net"`
	Reason string `json:"reason"`
}

// Drawing is the complete output of one routing pass.
type Drawing struct {
	Nets      []NetResult         `json:"nets"`
	Buses     []bus.Group         `json:"buses,omitempty"`
	Crossings []crossing.Crossing `json:"crossings,omitempty"`
	Skipped   []Skip              `json:"skipped,omitempty"`
}

// PlacedSegments flattens every drawn wire into owner-tagged segments,
// suitable for seeding live-drag context.
func (d *Drawing) PlacedSegments() []route.PlacedSegment {
	var out []route.PlacedSegment
	for _, nr := range d.Nets {
		for _, w := range nr.Wires {
			for _, s := range w.Route.Segments() {
				out = append(out, route.PlacedSegment{Owner: nr.NetID, Segment: s})
			}
		}
	}
	return out
}

// ExportJSON exports the drawing to indented JSON.
func (d *Drawing) ExportJSON() ([]byte, error) {
	output := struct {
		Version string `json:"version"`
		*Drawing
	}{
		Version: "1.0",
		Drawing: d,
	}
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("engine: export: %w", err)
	}
	return data, nil
}
