// Package symbol models placed schematic items: their body geometry, their
// pins in local coordinates, and the instance transform that places them on
// the sheet. It resolves pins into world space and builds routing obstacles.
package symbol

import (
	"github.com/OpenTraceLab/schemroute/pkg/geom"
)

// Transform places an item on the sheet. Rotation is limited to quarter
// turns; mirroring is applied in local space before rotation.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation int     `json:"rotation"` // Degrees, one of 0, 90, 180, 270
	MirrorX  bool    `json:"mirror_x,omitempty"`
	MirrorY  bool    `json:"mirror_y,omitempty"`
}

// PinDef is a pin in item-local coordinates.
type PinDef struct {
	ID     string        `json:"id"`
	Offset geom.Position `json:"offset"` // Relative to item origin
	Side   geom.Side     `json:"side"`   // Exit side before transform
}

// Item is a placed symbol instance.
type Item struct {
	ID        string    `json:"id"`
	Size      geom.Size `json:"size"` // Body extents in local space
	Pins      []PinDef  `json:"pins"`
	Transform Transform `json:"transform"`
}

// WorldPin is a pin resolved into sheet coordinates. It is derived state:
// always recomputed from the current transform, never cached.
type WorldPin struct {
	ItemID string        `json:"item"`
	PinID  string        `json:"pin"`
	Pos    geom.Position `json:"pos"`
	Side   geom.Side     `json:"side"`
}

// Obstacle is a clearance-padded axis-aligned keep-out derived from an
// item body.
type Obstacle struct {
	ItemID string
	Box    geom.BoundingBox
}

// ResolvePin converts a pin's local geometry through the item transform into
// a world position and exit side. It is a pure function of its inputs; ok is
// false when the pin id does not exist on the item.
func ResolvePin(item *Item, pinID string) (WorldPin, bool) {
	for i := range item.Pins {
		if item.Pins[i].ID == pinID {
			return resolve(item, &item.Pins[i]), true
		}
	}
	return WorldPin{}, false
}

// ResolveAll resolves every pin of the item in definition order.
func ResolveAll(item *Item) []WorldPin {
	out := make([]WorldPin, 0, len(item.Pins))
	for i := range item.Pins {
		out = append(out, resolve(item, &item.Pins[i]))
	}
	return out
}

func resolve(item *Item, pin *PinDef) WorldPin {
	t := item.Transform
	x, y := pin.Offset.X, pin.Offset.Y
	side := pin.Side

	if t.MirrorX {
		x = -x
		side = side.MirrorX()
	}
	if t.MirrorY {
		y = -y
		side = side.MirrorY()
	}

	// Quarter-turn rotation on a Y-down sheet: 90 degrees maps (x,y) to (y,-x).
	switch ((t.Rotation/90)%4 + 4) % 4 {
	case 1:
		x, y = y, -x
	case 2:
		x, y = -x, -y
	case 3:
		x, y = -y, x
	}
	side = side.Rotate(t.Rotation)

	return WorldPin{
		ItemID: item.ID,
		PinID:  pin.ID,
		Pos:    geom.Position{X: x + t.X, Y: y + t.Y},
		Side:   side,
	}
}

// BuildObstacle converts the item body into a clearance-padded world-space
// keep-out box. Quarter-turn rotations of 90 or 270 degrees swap the body
// width and height; mirroring leaves the axis-aligned box unchanged.
func BuildObstacle(item *Item, clearance float64) Obstacle {
	w, h := item.Size.Width, item.Size.Height
	rot := ((item.Transform.Rotation/90)%4 + 4) % 4
	if rot == 1 || rot == 3 {
		w, h = h, w
	}
	center := geom.Position{X: item.Transform.X, Y: item.Transform.Y}
	return Obstacle{
		ItemID: item.ID,
		Box:    geom.BoxAround(center, w/2, h/2).Pad(clearance),
	}
}

// BuildObstacles builds keep-outs for every item, in input order.
func BuildObstacles(items []*Item, clearance float64) []Obstacle {
	out := make([]Obstacle, 0, len(items))
	for _, item := range items {
		out = append(out, BuildObstacle(item, clearance))
	}
	return out
}
