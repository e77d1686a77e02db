// Package netlist models the abstract connectivity the routing engine
// consumes: nets, the pins they join, and their electrical classification.
package netlist

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PinRef identifies one pin of one placed item.
type PinRef struct {
	ItemID string `json:"item"` // Owning item id
	PinID  string `json:"pin"`  // Pin id within the item
}

// Key returns the canonical string form of the reference.
func (p PinRef) Key() string {
	return p.ItemID + ":" + p.PinID
}

// Disposition describes how a net will be drawn based on its pin count.
type Disposition int

const (
	DispositionDirect   Disposition = iota // 2 pins, single orthogonal route
	DispositionMultiPin                    // 3-5 pins, spanning-tree routing
	DispositionStub                        // too many pins, labeled stubs only
)

// Net represents a set of electrically equivalent pins.
type Net struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Class  NetClass `json:"class"`
	Pins   []PinRef `json:"pins"`
	Bundle bool     `json:"bundle,omitempty"` // Explicit bus-bundling request
}

// Disposition returns the routing strategy for the net's pin count.
func (n *Net) Disposition() Disposition {
	switch {
	case len(n.Pins) == 2:
		return DispositionDirect
	case len(n.Pins) >= 3 && len(n.Pins) <= 5:
		return DispositionMultiPin
	default:
		return DispositionStub
	}
}

// ItemPair returns the unordered pair of item ids a 2-pin net connects,
// ordered lexicographically. ok is false for other pin counts.
func (n *Net) ItemPair() (a, b string, ok bool) {
	if len(n.Pins) != 2 {
		return "", "", false
	}
	a, b = n.Pins[0].ItemID, n.Pins[1].ItemID
	if a > b {
		a, b = b, a
	}
	return a, b, true
}

// Builder assembles nets from pairwise pin connections using union-find,
// then produces a deterministic net list.
type Builder struct {
	parent  map[string]string
	rank    map[string]int
	pins    map[string]PinRef
	names   map[string]string // Root key -> assigned net name
	bundles map[string]bool   // Root key -> bundle flag
}

// NewBuilder creates an empty netlist builder.
func NewBuilder() *Builder {
	return &Builder{
		parent:  make(map[string]string),
		rank:    make(map[string]int),
		pins:    make(map[string]PinRef),
		names:   make(map[string]string),
		bundles: make(map[string]bool),
	}
}

// AddPin registers an isolated pin. Adding the same pin twice is harmless.
func (b *Builder) AddPin(pin PinRef) {
	key := pin.Key()
	if _, ok := b.parent[key]; ok {
		return
	}
	b.parent[key] = key
	b.rank[key] = 0
	b.pins[key] = pin
}

// Connect marks two pins as electrically connected, registering them if
// needed. Connections are transitive.
func (b *Builder) Connect(x, y PinRef) {
	b.AddPin(x)
	b.AddPin(y)

	rootX := b.find(x.Key())
	rootY := b.find(y.Key())
	if rootX == rootY {
		return
	}

	// Union by rank; carry name and bundle flag onto the surviving root.
	if b.rank[rootX] < b.rank[rootY] {
		rootX, rootY = rootY, rootX
	}
	b.parent[rootY] = rootX
	if b.rank[rootX] == b.rank[rootY] {
		b.rank[rootX]++
	}
	if b.names[rootX] == "" {
		b.names[rootX] = b.names[rootY]
	}
	if b.bundles[rootY] {
		b.bundles[rootX] = true
	}
	delete(b.names, rootY)
	delete(b.bundles, rootY)
}

// Name assigns a net name to the net containing the pin. The first name
// assigned to a net wins.
func (b *Builder) Name(pin PinRef, name string) {
	b.AddPin(pin)
	root := b.find(pin.Key())
	if b.names[root] == "" {
		b.names[root] = name
	}
}

// Bundle marks the net containing the pin for explicit bus bundling.
func (b *Builder) Bundle(pin PinRef) {
	b.AddPin(pin)
	b.bundles[b.find(pin.Key())] = true
}

// find returns the representative key with path compression.
func (b *Builder) find(key string) string {
	root := key
	for b.parent[root] != root {
		root = b.parent[root]
	}
	for key != root {
		next := b.parent[key]
		b.parent[key] = root
		key = next
	}
	return root
}

// Build produces the final net list. Isolated single-pin groups are dropped.
// Output is deterministic: pins within a net and nets themselves are sorted,
// and net ids are derived from the sorted order, never from map iteration.
func (b *Builder) Build() []*Net {
	groups := make(map[string][]PinRef)
	for key, pin := range b.pins {
		root := b.find(key)
		groups[root] = append(groups[root], pin)
	}

	roots := make([]string, 0, len(groups))
	for root, pins := range groups {
		if len(pins) < 2 {
			continue
		}
		roots = append(roots, root)
	}

	// Sort roots by their lexicographically smallest member so ids are
	// stable under permuted Connect order.
	leader := make(map[string]string, len(roots))
	for _, root := range roots {
		pins := groups[root]
		sort.Slice(pins, func(i, j int) bool {
			if pins[i].ItemID != pins[j].ItemID {
				return pins[i].ItemID < pins[j].ItemID
			}
			return pins[i].PinID < pins[j].PinID
		})
		leader[root] = pins[0].Key()
	}
	sort.Slice(roots, func(i, j int) bool {
		return leader[roots[i]] < leader[roots[j]]
	})

	nets := make([]*Net, 0, len(roots))
	for i, root := range roots {
		name := b.names[root]
		if name == "" {
			name = fmt.Sprintf("Net-%d", i)
		}
		nets = append(nets, &Net{
			ID:     fmt.Sprintf("net-%03d", i),
			Name:   name,
			Class:  ClassifyName(name),
			Pins:   groups[root],
			Bundle: b.bundles[root],
		})
	}
	return nets
}

// ExportJSON exports a net list to indented JSON.
func ExportJSON(nets []*Net) ([]byte, error) {
	output := struct {
		Version  string `json:"version"`
		NetCount int    `json:"net_count"`
		Nets     []*Net `json:"nets"`
	}{
		Version:  "1.0",
		NetCount: len(nets),
		Nets:     nets,
	}
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("netlist: export: %w", err)
	}
	return data, nil
}
