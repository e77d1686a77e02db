package route

import (
	"sort"

	"github.com/OpenTraceLab/schemroute/pkg/geom"
)

// Source tags whether a drawn route came from the automatic router or from
// a user override.
type Source int

const (
	SourceComputed Source = iota
	SourceOverridden
)

// String returns the lowercase source name.
func (s Source) String() string {
	if s == SourceOverridden {
		return "overridden"
	}
	return "computed"
}

// MarshalJSON encodes the source as its string name.
func (s Source) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// OverrideKey scopes a stored override to one routed edge of one net.
// 2-pin nets use Edge 0; multi-pin nets key each tree edge.
type OverrideKey struct {
	NetID string
	Edge  int
}

// Store records user-edited route geometry. Overrides survive endpoint moves
// through re-anchoring and are removed only by explicit Clear.
type Store struct {
	overrides map[OverrideKey]geom.Route
}

// NewStore creates an empty override store.
func NewStore() *Store {
	return &Store{overrides: make(map[OverrideKey]geom.Route)}
}

// Set records an override. Non-orthogonal or degenerate routes are ignored:
// a commit the engine could never redraw is not worth keeping.
func (s *Store) Set(key OverrideKey, r geom.Route) {
	if !r.Orthogonal() || r.Degenerate() {
		return
	}
	s.overrides[key] = r.Clone()
}

// Get returns the stored override for the key.
func (s *Store) Get(key OverrideKey) (geom.Route, bool) {
	r, ok := s.overrides[key]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Clear removes an override. This is the only way one is deleted.
func (s *Store) Clear(key OverrideKey) {
	delete(s.overrides, key)
}

// Len returns the number of stored overrides.
func (s *Store) Len() int {
	return len(s.overrides)
}

// Keys returns the stored keys sorted by net id then edge.
func (s *Store) Keys() []OverrideKey {
	keys := make([]OverrideKey, 0, len(s.overrides))
	for k := range s.overrides {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].NetID != keys[j].NetID {
			return keys[i].NetID < keys[j].NetID
		}
		return keys[i].Edge < keys[j].Edge
	})
	return keys
}

// Anchor rewrites an override's first and last vertices to the current pin
// positions and shifts each adjacent interior vertex along the shared axis
// so the bend structure is preserved. The interior shape is never
// recomputed. ok is false when no orthogonal path can be preserved; the
// caller then discards the override and automatic routing resumes.
func Anchor(r geom.Route, a, b geom.Position) (geom.Route, bool) {
	if len(r) < 2 || !r.Orthogonal() {
		return nil, false
	}
	out := r.Clone()

	if len(out) == 2 {
		// A straight override only survives if the moved pins still share
		// its axis.
		out[0], out[1] = a, b
		if !out.Orthogonal() {
			return nil, false
		}
		return out, true
	}

	anchorEnd(out, 0, 1, a)
	n := len(out)
	anchorEnd(out, n-1, n-2, b)

	if !out.Orthogonal() || out.Degenerate() {
		return nil, false
	}
	return out, true
}

// anchorEnd moves the endpoint at index end to pos and drags its neighbor
// along the axis the old end segment did not constrain.
func anchorEnd(r geom.Route, end, neighbor int, pos geom.Position) {
	seg := geom.Segment{A: r[end], B: r[neighbor]}
	if seg.Horizontal() && !seg.Vertical() {
		// Horizontal end segment: the neighbor follows the endpoint's Y.
		r[neighbor].Y = pos.Y
	} else if seg.Vertical() && !seg.Horizontal() {
		r[neighbor].X = pos.X
	} else {
		// Degenerate end segment: neighbor follows entirely.
		r[neighbor] = pos
	}
	r[end] = pos
}
