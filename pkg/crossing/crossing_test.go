package crossing

import (
	"testing"

	"github.com/OpenTraceLab/schemroute/pkg/geom"
)

func seg(owner string, x1, y1, x2, y2 float64) Placed {
	return Placed{Owner: owner, Segment: geom.Segment{
		A: geom.Position{X: x1, Y: y1},
		B: geom.Position{X: x2, Y: y2},
	}}
}

func TestDetectSingleCrossing(t *testing.T) {
	placed := []Placed{
		seg("net-x", 0, 5, 20, 5),
		seg("net-y", 10, 0, 10, 10),
	}
	got := Detect(placed)
	if len(got) != 1 {
		t.Fatalf("expected 1 crossing, got %d", len(got))
	}
	c := got[0]
	if !c.Pos.Eq(geom.Position{X: 10, Y: 5}) {
		t.Errorf("crossing at %v, want (10,5)", c.Pos)
	}
	if c.Horizontal != "net-x" || c.Vertical != "net-y" {
		t.Errorf("tagged h=%s v=%s", c.Horizontal, c.Vertical)
	}
	if c.Jumper != "net-x" {
		t.Errorf("jumper = %s, want the lexicographically smaller net-x", c.Jumper)
	}
}

func TestDetectNeverSameNet(t *testing.T) {
	placed := []Placed{
		seg("net-x", 0, 5, 20, 5),
		seg("net-x", 10, 0, 10, 10),
	}
	if got := Detect(placed); len(got) != 0 {
		t.Errorf("same-net crossing reported: %+v", got)
	}
}

func TestDetectExcludesSharedEndpoints(t *testing.T) {
	// net-y ends exactly on net-x's wire: a touch, not a crossing.
	placed := []Placed{
		seg("net-x", 0, 5, 20, 5),
		seg("net-y", 10, 5, 10, 15),
	}
	if got := Detect(placed); len(got) != 0 {
		t.Errorf("endpoint touch reported as crossing: %+v", got)
	}
}

func TestDetectParallelNeverCross(t *testing.T) {
	placed := []Placed{
		seg("net-x", 0, 5, 20, 5),
		seg("net-y", 0, 7, 20, 7),
		seg("net-z", 0, 5, 20, 5), // exact overlap is not a crossing either
	}
	if got := Detect(placed); len(got) != 0 {
		t.Errorf("parallel segments reported as crossing: %+v", got)
	}
}

func TestDetectJumperStableUnderOrder(t *testing.T) {
	a := seg("net-b", 0, 5, 20, 5)
	b := seg("net-a", 10, 0, 10, 10)

	first := Detect([]Placed{a, b})
	second := Detect([]Placed{b, a})
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 crossing each, got %d and %d", len(first), len(second))
	}
	if first[0] != second[0] {
		t.Errorf("crossing depends on input order: %+v vs %+v", first[0], second[0])
	}
	if first[0].Jumper != "net-a" {
		t.Errorf("jumper = %s, want net-a", first[0].Jumper)
	}
}

func TestDetectMultipleSorted(t *testing.T) {
	placed := []Placed{
		seg("net-c", 0, 5, 30, 5),
		seg("net-a", 10, 0, 10, 10),
		seg("net-b", 20, 0, 20, 10),
	}
	got := Detect(placed)
	if len(got) != 2 {
		t.Fatalf("expected 2 crossings, got %d", len(got))
	}
	if got[0].Pos.X != 10 || got[1].Pos.X != 20 {
		t.Errorf("crossings not sorted by position: %+v", got)
	}
	if got[0].Vertical != "net-a" || got[1].Vertical != "net-b" {
		t.Errorf("vertical owners = %s, %s", got[0].Vertical, got[1].Vertical)
	}
}
