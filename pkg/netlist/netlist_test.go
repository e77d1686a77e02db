package netlist

import (
	"math/rand"
	"testing"
)

func TestBuilderConnect(t *testing.T) {
	b := NewBuilder()
	a0 := PinRef{ItemID: "U1", PinID: "1"}
	a1 := PinRef{ItemID: "U2", PinID: "3"}
	a2 := PinRef{ItemID: "U3", PinID: "7"}

	b.Connect(a0, a1)
	b.Connect(a1, a2)
	b.AddPin(PinRef{ItemID: "U9", PinID: "1"}) // stays isolated

	nets := b.Build()
	if len(nets) != 1 {
		t.Fatalf("expected 1 net, got %d", len(nets))
	}
	if len(nets[0].Pins) != 3 {
		t.Errorf("expected 3 pins in net, got %d", len(nets[0].Pins))
	}
	if nets[0].Disposition() != DispositionMultiPin {
		t.Errorf("3-pin net disposition = %v, want multi-pin", nets[0].Disposition())
	}
}

func TestBuilderDeterministicUnderPermutation(t *testing.T) {
	pairs := [][2]PinRef{
		{{ItemID: "U1", PinID: "1"}, {ItemID: "U2", PinID: "1"}},
		{{ItemID: "U1", PinID: "2"}, {ItemID: "U2", PinID: "2"}},
		{{ItemID: "U3", PinID: "1"}, {ItemID: "U4", PinID: "1"}},
		{{ItemID: "U3", PinID: "2"}, {ItemID: "U4", PinID: "2"}},
	}

	build := func(order []int) []*Net {
		b := NewBuilder()
		for _, i := range order {
			b.Connect(pairs[i][0], pairs[i][1])
		}
		return b.Build()
	}

	base := build([]int{0, 1, 2, 3})
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		order := rng.Perm(len(pairs))
		got := build(order)
		if len(got) != len(base) {
			t.Fatalf("permuted build produced %d nets, want %d", len(got), len(base))
		}
		for i := range base {
			if got[i].ID != base[i].ID {
				t.Errorf("net %d id = %s, want %s (order %v)", i, got[i].ID, base[i].ID, order)
			}
			if got[i].Pins[0] != base[i].Pins[0] {
				t.Errorf("net %d first pin differs under order %v", i, order)
			}
		}
	}
}

func TestBuilderNames(t *testing.T) {
	b := NewBuilder()
	p1 := PinRef{ItemID: "U1", PinID: "VCC"}
	p2 := PinRef{ItemID: "U2", PinID: "VCC"}
	b.Connect(p1, p2)
	b.Name(p1, "+3V3")

	nets := b.Build()
	if len(nets) != 1 {
		t.Fatalf("expected 1 net, got %d", len(nets))
	}
	if nets[0].Name != "+3V3" {
		t.Errorf("net name = %q, want +3V3", nets[0].Name)
	}
	if nets[0].Class != ClassPower {
		t.Errorf("net class = %v, want power", nets[0].Class)
	}
}

func TestDisposition(t *testing.T) {
	tests := []struct {
		pins int
		want Disposition
	}{
		{2, DispositionDirect},
		{3, DispositionMultiPin},
		{5, DispositionMultiPin},
		{6, DispositionStub},
		{1, DispositionStub},
	}
	for _, tt := range tests {
		net := &Net{Pins: make([]PinRef, tt.pins)}
		if got := net.Disposition(); got != tt.want {
			t.Errorf("%d pins -> %v, want %v", tt.pins, got, tt.want)
		}
	}
}

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name string
		want NetClass
	}{
		{"VCC", ClassPower},
		{"vdd_core", ClassPower},
		{"+3V3", ClassPower},
		{"+1.8V", ClassPower},
		{"GND", ClassGround},
		{"AGND", ClassGround},
		{"vss", ClassGround},
		{"DATA[0..7]", ClassBus},
		{"ADDR_BUS", ClassBus},
		{"I2C_SCL", ClassSignal},
		{"RESET_N", ClassSignal},
		{"", ClassSignal},
	}
	for _, tt := range tests {
		if got := ClassifyName(tt.name); got != tt.want {
			t.Errorf("ClassifyName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNetClassJSON(t *testing.T) {
	data, err := ClassPower.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"power"` {
		t.Errorf("marshaled class = %s", data)
	}
	var c NetClass
	if err := c.UnmarshalJSON([]byte(`"ground"`)); err != nil {
		t.Fatal(err)
	}
	if c != ClassGround {
		t.Errorf("unmarshaled class = %v, want ground", c)
	}
	if err := c.UnmarshalJSON([]byte(`"bogus"`)); err == nil {
		t.Error("expected error for unknown class")
	}
}

func TestItemPair(t *testing.T) {
	net := &Net{Pins: []PinRef{{ItemID: "U2", PinID: "1"}, {ItemID: "U1", PinID: "4"}}}
	a, b, ok := net.ItemPair()
	if !ok {
		t.Fatal("2-pin net should have an item pair")
	}
	if a != "U1" || b != "U2" {
		t.Errorf("pair = %s,%s, want U1,U2", a, b)
	}
	if _, _, ok := (&Net{}).ItemPair(); ok {
		t.Error("empty net should not have an item pair")
	}
}
