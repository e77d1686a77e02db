package route

import (
	"github.com/OpenTraceLab/schemroute/pkg/geom"
	"github.com/OpenTraceLab/schemroute/pkg/netlist"
	"github.com/OpenTraceLab/schemroute/pkg/symbol"
)

// Outcome is the wire-vs-stub decision for a routed net. It is the only
// observable degradation the engine produces; routing failures never
// surface as errors.
type Outcome int

const (
	OutcomeWire Outcome = iota // Draw the route
	OutcomeStub                // Draw labeled floating stubs instead
)

// Stub is a short dangling wire ending in a floating net-name label. Two
// stubs with the same label stand in for a wire that could not be drawn
// cleanly.
type Stub struct {
	Pin   symbol.WorldPin `json:"pin"`
	Path  geom.Route      `json:"path"`  // Short run leaving the pin along its exit side
	Label string          `json:"label"` // Net name shown at the free end
}

// Classify decides whether a routed 2-pin net is drawn as a wire or
// degraded to labeled stubs. Power, ground, and bus-class nets never
// degrade: omitting them would be electrically ambiguous. Short spans are
// forced direct regardless of quality.
func (r *Router) Classify(class netlist.NetClass, a, b symbol.WorldPin, rt geom.Route, q Quality) Outcome {
	if class.NeverDegrades() {
		return OutcomeWire
	}
	span := a.Pos.Manhattan(b.Pos)
	if span <= r.cfg.ForceDirectSpan && !q.Obstructed && len(rt) >= 2 {
		return OutcomeWire
	}
	switch {
	case len(rt) < 2,
		q.Obstructed,
		q.Overlaps > 0,
		q.Crossings >= r.cfg.CrossingLimit,
		q.CloseParallels > r.cfg.ParallelLimit,
		q.Score(r.cfg) > r.cfg.QualityCeiling,
		span > r.cfg.SpanCap:
		return OutcomeStub
	}
	return OutcomeWire
}

// MakeStubs builds the degraded representation of a net: one labeled stub
// per pin, leaving along the pin's exit side.
func (r *Router) MakeStubs(label string, pins ...symbol.WorldPin) []Stub {
	stubs := make([]Stub, 0, len(pins))
	for _, pin := range pins {
		dx, dy := pin.Side.Exit()
		end := pin.Pos.Add(dx*r.cfg.StubLength, dy*r.cfg.StubLength)
		stubs = append(stubs, Stub{
			Pin:   pin,
			Path:  geom.Route{pin.Pos, end},
			Label: label,
		})
	}
	return stubs
}
