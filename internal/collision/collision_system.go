// Package collision keeps moving bodies out of solid tiles.
package collision

// TileChecker reports whether a world position is inside a wall.
type TileChecker interface {
	PointInSolidTile(x, y float64) bool
}

// CollisionSystem tests bounding boxes against the map
type CollisionSystem struct {
	tileChecker TileChecker
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker) *CollisionSystem {
	return &CollisionSystem{tileChecker: tileChecker}
}

// UpdateTileChecker updates the tile checker (used when switching maps)
func (cs *CollisionSystem) UpdateTileChecker(tileChecker TileChecker) {
	cs.tileChecker = tileChecker
}

// CanMoveTo reports whether box would be clear of walls centred at (x, y).
func (cs *CollisionSystem) CanMoveTo(box *BoundingBox, x, y float64) bool {
	for _, p := range box.probePointsAt(x, y) {
		if cs.tileChecker.PointInSolidTile(p.X, p.Y) {
			return false
		}
	}
	return true
}

// Move displaces box by (dx, dy), resolving each axis on its own so a body
// blocked on one axis still slides along the other. It returns the final
// centre.
func (cs *CollisionSystem) Move(box *BoundingBox, dx, dy float64) (x, y float64) {
	if dx != 0 && cs.CanMoveTo(box, box.X+dx, box.Y) {
		box.X += dx
	}
	if dy != 0 && cs.CanMoveTo(box, box.X, box.Y+dy) {
		box.Y += dy
	}
	return box.X, box.Y
}
