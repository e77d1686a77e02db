package route

import (
	"testing"

	"github.com/OpenTraceLab/schemroute/pkg/geom"
)

func TestStoreSetGetClear(t *testing.T) {
	s := NewStore()
	key := OverrideKey{NetID: "net-001", Edge: 0}
	rt := geom.Route{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}

	s.Set(key, rt)
	got, ok := s.Get(key)
	if !ok {
		t.Fatal("stored override should be retrievable")
	}
	if len(got) != 3 {
		t.Errorf("override has %d points, want 3", len(got))
	}

	// The stored copy is independent of the caller's slice.
	got[0].X = 99
	again, _ := s.Get(key)
	if again[0].X == 99 {
		t.Error("Get must return a copy, not the stored slice")
	}

	s.Clear(key)
	if _, ok := s.Get(key); ok {
		t.Error("cleared override should be gone")
	}
}

func TestStoreRejectsInvalidRoutes(t *testing.T) {
	s := NewStore()
	key := OverrideKey{NetID: "n", Edge: 0}

	s.Set(key, geom.Route{{X: 0, Y: 0}, {X: 10, Y: 5}}) // diagonal
	if s.Len() != 0 {
		t.Error("non-orthogonal override should be ignored")
	}
	s.Set(key, geom.Route{{X: 3, Y: 3}}) // single point
	if s.Len() != 0 {
		t.Error("degenerate override should be ignored")
	}
}

func TestStoreKeysSorted(t *testing.T) {
	s := NewStore()
	s.Set(OverrideKey{NetID: "net-b", Edge: 1}, geom.Route{{X: 0, Y: 0}, {X: 1, Y: 0}})
	s.Set(OverrideKey{NetID: "net-a", Edge: 0}, geom.Route{{X: 0, Y: 0}, {X: 1, Y: 0}})
	s.Set(OverrideKey{NetID: "net-b", Edge: 0}, geom.Route{{X: 0, Y: 0}, {X: 1, Y: 0}})

	keys := s.Keys()
	want := []OverrideKey{
		{NetID: "net-a", Edge: 0},
		{NetID: "net-b", Edge: 0},
		{NetID: "net-b", Edge: 1},
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d = %+v, want %+v", i, keys[i], want[i])
		}
	}
}

func TestAnchorMoveOneEndpoint(t *testing.T) {
	// L route from (0,0) right and down to (10,5).
	rt := geom.Route{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}

	// Move only endpoint A down by 2: the first vertex and its neighbor
	// change, the far end stays put.
	out, ok := Anchor(rt, geom.Position{X: 0, Y: 2}, geom.Position{X: 10, Y: 5})
	if !ok {
		t.Fatal("anchoring should succeed")
	}
	if !out[0].Eq(geom.Position{X: 0, Y: 2}) {
		t.Errorf("first vertex = %v", out[0])
	}
	if !out[1].Eq(geom.Position{X: 10, Y: 2}) {
		t.Errorf("neighbor vertex = %v, want (10,2)", out[1])
	}
	if !out[2].Eq(geom.Position{X: 10, Y: 5}) {
		t.Errorf("far endpoint moved to %v", out[2])
	}
	if !out.Orthogonal() {
		t.Errorf("anchored route %v lost orthogonality", out)
	}
}

func TestAnchorPreservesBendStructure(t *testing.T) {
	// Z route with four points.
	rt := geom.Route{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 10}, {X: 20, Y: 10}}
	out, ok := Anchor(rt, geom.Position{X: 0, Y: -3}, geom.Position{X: 22, Y: 12})
	if !ok {
		t.Fatal("anchoring should succeed")
	}
	if len(out) != 4 {
		t.Fatalf("anchored route has %d points, want 4", len(out))
	}
	if got := out.Bends(); got != 2 {
		t.Errorf("anchored route bends = %d, want 2", got)
	}
	if !out[1].Eq(geom.Position{X: 5, Y: -3}) {
		t.Errorf("second vertex = %v, want (5,-3)", out[1])
	}
	if !out[2].Eq(geom.Position{X: 5, Y: 12}) {
		t.Errorf("third vertex = %v, want (5,12)", out[2])
	}
}

func TestAnchorStraightRoute(t *testing.T) {
	rt := geom.Route{{X: 0, Y: 0}, {X: 20, Y: 0}}

	// Pins still share the axis: fine.
	out, ok := Anchor(rt, geom.Position{X: 2, Y: 0}, geom.Position{X: 25, Y: 0})
	if !ok || !out[0].Eq(geom.Position{X: 2, Y: 0}) || !out[1].Eq(geom.Position{X: 25, Y: 0}) {
		t.Errorf("straight anchor = %v, ok=%v", out, ok)
	}

	// Pins no longer aligned: the override cannot be preserved.
	if _, ok := Anchor(rt, geom.Position{X: 0, Y: 0}, geom.Position{X: 20, Y: 7}); ok {
		t.Error("misaligned straight override should be discarded")
	}
}

func TestAnchorDiscardsCollapsed(t *testing.T) {
	rt := geom.Route{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}
	// Both pins moved onto the same point: nothing preservable.
	if _, ok := Anchor(rt, geom.Position{X: 3, Y: 3}, geom.Position{X: 3, Y: 3}); ok {
		t.Error("collapsed anchor should be discarded")
	}
}
