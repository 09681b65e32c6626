package collision

// BoundingBox represents a square collision boundary around a point
type BoundingBox struct {
	X      float64 // Center X coordinate
	Y      float64 // Center Y coordinate
	Radius float64 // Half the edge length
}

// NewBoundingBox creates a new bounding box centered at the given position
func NewBoundingBox(x, y, radius float64) *BoundingBox {
	return &BoundingBox{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb *BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	return bb.X - bb.Radius, bb.Y - bb.Radius, bb.X + bb.Radius, bb.Y + bb.Radius
}

// ProbePoints returns the four corners and the four edge midpoints, the
// points tested against the map.
func (bb *BoundingBox) ProbePoints() [8]Point {
	return bb.probePointsAt(bb.X, bb.Y)
}

func (bb *BoundingBox) probePointsAt(x, y float64) [8]Point {
	r := bb.Radius
	return [8]Point{
		{X: x - r, Y: y - r}, {X: x, Y: y - r},
		{X: x + r, Y: y - r}, {X: x + r, Y: y},
		{X: x + r, Y: y + r}, {X: x, Y: y + r},
		{X: x - r, Y: y + r}, {X: x - r, Y: y},
	}
}

// Contains checks if a point is inside the bounding box
func (bb *BoundingBox) Contains(point Point) bool {
	minX, minY, maxX, maxY := bb.GetBounds()
	return point.X >= minX && point.X <= maxX && point.Y >= minY && point.Y <= maxY
}

// MoveTo moves the bounding box to a new center position
func (bb *BoundingBox) MoveTo(x, y float64) {
	bb.X = x
	bb.Y = y
}

// Point represents a 2D coordinate
type Point struct {
	X, Y float64
}
