package geom

// BoundingBox represents a rectangular boundary.
type BoundingBox struct {
	Min Position // Minimum (top-left) corner
	Max Position // Maximum (bottom-right) corner
}

// NewBoundingBox creates an empty bounding box.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: 1e9, Y: 1e9},
		Max: Position{X: -1e9, Y: -1e9},
	}
}

// BoxAround builds a box centered on pos with the given half extents.
func BoxAround(pos Position, halfWidth, halfHeight float64) BoundingBox {
	return BoundingBox{
		Min: Position{X: pos.X - halfWidth, Y: pos.Y - halfHeight},
		Max: Position{X: pos.X + halfWidth, Y: pos.Y + halfHeight},
	}
}

// IsEmpty checks if the bounding box is empty.
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Intersects checks if two bounding boxes intersect.
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y
}

// Contains checks if a position is within the bounding box.
func (bb BoundingBox) Contains(pos Position) bool {
	return pos.X >= bb.Min.X && pos.X <= bb.Max.X &&
		pos.Y >= bb.Min.Y && pos.Y <= bb.Max.Y
}

// Expand expands the bounding box to include a position.
func (bb *BoundingBox) Expand(pos Position) {
	if pos.X < bb.Min.X {
		bb.Min.X = pos.X
	}
	if pos.Y < bb.Min.Y {
		bb.Min.Y = pos.Y
	}
	if pos.X > bb.Max.X {
		bb.Max.X = pos.X
	}
	if pos.Y > bb.Max.Y {
		bb.Max.Y = pos.Y
	}
}

// Pad returns the box grown by the clearance on every side.
func (bb BoundingBox) Pad(clearance float64) BoundingBox {
	return BoundingBox{
		Min: Position{X: bb.Min.X - clearance, Y: bb.Min.Y - clearance},
		Max: Position{X: bb.Max.X + clearance, Y: bb.Max.Y + clearance},
	}
}

// Center returns the box center point.
func (bb BoundingBox) Center() Position {
	return Position{X: (bb.Min.X + bb.Max.X) / 2, Y: (bb.Min.Y + bb.Max.Y) / 2}
}

// Width returns the width of the bounding box.
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box.
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}
