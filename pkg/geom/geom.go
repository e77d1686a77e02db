// Package geom provides the shared 2D primitives for the routing engine.
// All coordinates are in schematic millimeters; Y grows downward to match
// the schematic coordinate system.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used when comparing coordinates. Placed geometry
// is grid-snapped, so anything closer than this is the same point.
const Epsilon = 1e-6

// Position represents a 2D coordinate on the schematic sheet.
type Position struct {
	X float64 `json:"x"` // X coordinate in mm
	Y float64 `json:"y"` // Y coordinate in mm
}

// Add returns the position offset by dx, dy.
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Eq reports whether two positions coincide within Epsilon.
func (p Position) Eq(q Position) bool {
	return math.Abs(p.X-q.X) < Epsilon && math.Abs(p.Y-q.Y) < Epsilon
}

// Manhattan returns the Manhattan (taxicab) distance between two positions.
func (p Position) Manhattan(q Position) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Size represents dimensions.
type Size struct {
	Width  float64 `json:"width"`  // Width in mm
	Height float64 `json:"height"` // Height in mm
}

// Side identifies the side of a symbol body a pin exits from.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// String returns the lowercase side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// MarshalJSON encodes the side as its string name.
func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a side from its string name.
func (s *Side) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"left"`:
		*s = SideLeft
	case `"right"`:
		*s = SideRight
	case `"top"`:
		*s = SideTop
	case `"bottom"`:
		*s = SideBottom
	default:
		return fmt.Errorf("geom: unknown side %s", data)
	}
	return nil
}

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideTop:
		return SideBottom
	default:
		return SideTop
	}
}

// Horizontal reports whether the side's exit direction is along the X axis.
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// Rotate returns the side after a counter-clockwise rotation by the given
// angle, which must be a multiple of 90 degrees. Rotation cyclically
// permutes left -> bottom -> right -> top on a Y-down sheet.
func (s Side) Rotate(degrees int) Side {
	steps := ((degrees/90)%4 + 4) % 4
	order := [4]Side{SideLeft, SideBottom, SideRight, SideTop}
	var idx int
	for i, v := range order {
		if v == s {
			idx = i
			break
		}
	}
	return order[(idx+steps)%4]
}

// MirrorX returns the side after mirroring across the vertical axis
// (left/right swap, top/bottom unchanged).
func (s Side) MirrorX() Side {
	if s.Horizontal() {
		return s.Opposite()
	}
	return s
}

// MirrorY returns the side after mirroring across the horizontal axis
// (top/bottom swap, left/right unchanged).
func (s Side) MirrorY() Side {
	if !s.Horizontal() {
		return s.Opposite()
	}
	return s
}

// Exit returns the unit step leaving a pin on this side, away from the
// symbol body.
func (s Side) Exit() (dx, dy float64) {
	switch s {
	case SideLeft:
		return -1, 0
	case SideRight:
		return 1, 0
	case SideTop:
		return 0, -1
	default:
		return 0, 1
	}
}
