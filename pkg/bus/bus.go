// Package bus groups compatible two-pin nets into shared visual trunks: one
// merged wire between two components standing in for several related
// signals, with per-signal fan-out stubs and a protocol badge.
package bus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/schemroute/pkg/geom"
	"github.com/OpenTraceLab/schemroute/pkg/netlist"
	"github.com/OpenTraceLab/schemroute/pkg/symbol"
)

// Candidate is a 2-pin net that routed as a direct wire and may join a
// trunk. A and B are its resolved endpoints.
type Candidate struct {
	Net *netlist.Net
	A   symbol.WorldPin
	B   symbol.WorldPin
}

// FanStub is one member's connection from its pin to the trunk merge point:
// a short perpendicular run to the elbow, then a diagonal into the merge.
type FanStub struct {
	NetID string          `json:"net"`
	Pin   symbol.WorldPin `json:"pin"`
	Elbow geom.Position   `json:"elbow"`
}

// Endpoint is one end of a trunk: the owning item, the side the member pins
// share, their fan-out stubs, and the single point they merge into.
type Endpoint struct {
	ItemID string        `json:"item"`
	Side   geom.Side     `json:"side"`
	Merge  geom.Position `json:"merge"`
	Stubs  []FanStub     `json:"stubs"`
}

// Badge labels the trunk midpoint with the recognized protocol and the
// number of bundled signals.
type Badge struct {
	Protocol string        `json:"protocol"`
	Count    int           `json:"count"`
	Pos      geom.Position `json:"pos"`
}

// Text renders the badge label.
func (b Badge) Text() string {
	return fmt.Sprintf("%s ×%d", b.Protocol, b.Count)
}

// Group is a detected bus: at least two member nets sharing one trunk
// between the same two endpoint items.
type Group struct {
	ID           string      `json:"id"`
	MemberNetIDs []string    `json:"members"` // Sorted
	Trunk        geom.Route  `json:"trunk"`
	Endpoints    [2]Endpoint `json:"endpoints"`
	Badge        Badge       `json:"badge"`
}

// protocol vocabularies checked in fixed order. Names are tokenized on
// non-alphanumeric boundaries, so SPI's "sclk" never matches I2C's "scl".
var protocols = []struct {
	name   string
	tokens []string
}{
	{"I2C", []string{"scl", "sda"}},
	{"SPI", []string{"mosi", "miso", "sclk", "cs"}},
	{"UART", []string{"tx", "rx"}},
}

// Detect groups candidates into trunks. Members must connect the same
// unordered item pair on the same two sides, and either a majority of their
// names must match one protocol vocabulary or every member must carry the
// explicit bundle flag. The result is independent of candidate order:
// candidates are sorted by net id before assignment.
func Detect(cands []Candidate, spacing float64) []Group {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	for i := range sorted {
		sorted[i] = normalize(sorted[i])
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Net.ID < sorted[j].Net.ID
	})

	byKey := make(map[string][]Candidate)
	var keys []string
	for _, c := range sorted {
		key := groupKey(c)
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], c)
	}
	sort.Strings(keys)

	var groups []Group
	for _, key := range keys {
		members := byKey[key]
		if len(members) < 2 {
			continue
		}
		protocol, ok := matchProtocol(members)
		if !ok {
			continue
		}
		groups = append(groups, build(members, protocol, spacing))
	}
	return groups
}

// normalize orders a candidate's endpoints by item id so the unordered item
// pair has one canonical form.
func normalize(c Candidate) Candidate {
	if c.A.ItemID > c.B.ItemID {
		c.A, c.B = c.B, c.A
	}
	return c
}

func groupKey(c Candidate) string {
	return c.A.ItemID + "|" + c.A.Side.String() + "|" + c.B.ItemID + "|" + c.B.Side.String()
}

// matchProtocol finds the vocabulary a majority of member names belong to,
// or accepts the group outright when every member requests bundling.
func matchProtocol(members []Candidate) (string, bool) {
	bestName := ""
	bestCount := 0
	for _, p := range protocols {
		count := 0
		for _, m := range members {
			if nameMatches(m.Net.Name, p.tokens) {
				count++
			}
		}
		if count > bestCount {
			bestName, bestCount = p.name, count
		}
	}
	if bestCount*2 > len(members) {
		return bestName, true
	}

	allBundled := true
	for _, m := range members {
		if !m.Net.Bundle {
			allBundled = false
			break
		}
	}
	if allBundled {
		return "BUS", true
	}
	return "", false
}

func nameMatches(name string, tokens []string) bool {
	for _, part := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		for _, tok := range tokens {
			if part == tok {
				return true
			}
		}
	}
	return false
}

// build derives the trunk geometry: per side, member pins fan out through a
// perpendicular elbow into one merge point pushed clear of the pins; the
// trunk runs merge to merge along the shared midline.
func build(members []Candidate, protocol string, spacing float64) Group {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.Net.ID)
	}

	endA := buildEndpoint(members, true, spacing)
	endB := buildEndpoint(members, false, spacing)

	trunk := trunkRoute(endA.Merge, endB.Merge)
	badge := Badge{
		Protocol: protocol,
		Count:    len(members),
		Pos:      midpoint(trunk),
	}

	return Group{
		ID:           "bus:" + ids[0],
		MemberNetIDs: ids,
		Trunk:        trunk,
		Endpoints:    [2]Endpoint{endA, endB},
		Badge:        badge,
	}
}

func buildEndpoint(members []Candidate, first bool, spacing float64) Endpoint {
	pinOf := func(m Candidate) symbol.WorldPin {
		if first {
			return m.A
		}
		return m.B
	}

	// Centroid of the member pins on this side.
	var cx, cy float64
	for _, m := range members {
		p := pinOf(m)
		cx += p.Pos.X
		cy += p.Pos.Y
	}
	n := float64(len(members))
	centroid := geom.Position{X: cx / n, Y: cy / n}

	side := pinOf(members[0]).Side
	dx, dy := side.Exit()
	merge := centroid.Add(dx*spacing*2, dy*spacing*2)

	stubs := make([]FanStub, 0, len(members))
	for _, m := range members {
		p := pinOf(m)
		stubs = append(stubs, FanStub{
			NetID: m.Net.ID,
			Pin:   p,
			Elbow: p.Pos.Add(dx*spacing, dy*spacing),
		})
	}

	return Endpoint{
		ItemID: pinOf(members[0]).ItemID,
		Side:   side,
		Merge:  merge,
		Stubs:  stubs,
	}
}

// trunkRoute connects the two merge points: straight when aligned, else an
// L through the shared midline.
func trunkRoute(a, b geom.Position) geom.Route {
	if a.Eq(b) {
		return geom.Route{a, b}
	}
	r := geom.Route{a, b}
	if r.Orthogonal() {
		return r
	}
	mid := geom.Position{X: (a.X + b.X) / 2, Y: a.Y}
	return geom.Route{a, mid, {X: mid.X, Y: b.Y}, b}.Simplify()
}

// midpoint walks the trunk to its halfway point.
func midpoint(r geom.Route) geom.Position {
	segs := r.Segments()
	if len(segs) == 0 {
		if len(r) > 0 {
			return r[0]
		}
		return geom.Position{}
	}
	half := r.Length() / 2
	for _, s := range segs {
		l := s.Length()
		if half <= l {
			t := half / l
			return geom.Position{
				X: s.A.X + (s.B.X-s.A.X)*t,
				Y: s.A.Y + (s.B.Y-s.A.Y)*t,
			}
		}
		half -= l
	}
	return segs[len(segs)-1].B
}
