// Package raycast finds where a viewing ray first enters a solid tile.
//
// Rays are traced with two independent walks: one over the horizontal grid
// lines (constant y) and one over the vertical grid lines (constant x). The
// nearer of the two hits wins.
package raycast

import (
	"math"

	"rayengine/internal/mathutil"
)

// boundaryNudge pushes the first boundary into the tile ahead when walking
// toward smaller coordinates, so the probe lands inside that tile.
const boundaryNudge = 0.0001

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return mathutil.Distance(a.X, a.Y, b.X, b.Y)
}

// TileGrid is the map a ray travels through.
type TileGrid interface {
	// Bounds is the world-space width and height of the grid.
	Bounds() (width, height float64)
	TileSize() int
	PointInSolidTile(x, y float64) bool
	WallCodeAt(x, y float64) int
}

// Ray is the result of a single cast. When HasHit is false Length is +Inf and
// every other field except Angle is zero.
type Ray struct {
	Angle  float64
	Length float64
	Hit    Point
	HasHit bool

	// Exactly one of Vertical and Horizontal is set on a hit.
	Vertical   bool
	Horizontal bool

	// TileCode is the code of the struck tile.
	TileCode int
	// Inverted marks hits whose texture must be sampled right to left.
	Inverted bool
}

// Cast traces a ray from origin at angle (radians, [0, 2π)) through grid.
func Cast(angle float64, origin Point, grid TileGrid) Ray {
	ray := Ray{Angle: angle, Length: math.Inf(1)}

	hHit, hOK := castHorizontal(angle, origin, grid)
	vHit, vOK := castVertical(angle, origin, grid)

	hLength, vLength := math.Inf(1), math.Inf(1)
	if hOK {
		hLength = Distance(origin, hHit)
	}
	if vOK {
		vLength = Distance(origin, vHit)
	}

	switch {
	case math.IsInf(hLength, 1) && math.IsInf(vLength, 1):
		return ray
	case hLength < vLength:
		ray.Length = hLength
		ray.Hit = hHit
		ray.Horizontal = true
		ray.Inverted = facingDown(angle)
	default:
		ray.Length = vLength
		ray.Hit = vHit
		ray.Vertical = true
		ray.Inverted = facingLeft(angle)
	}
	ray.HasHit = true
	ray.TileCode = grid.WallCodeAt(ray.Hit.X, ray.Hit.Y)
	return ray
}

// TextureColumn picks the texture column for the hit: the offset along the
// struck tile face, mirrored when Inverted. It returns -1 when there is no hit.
func (r Ray) TextureColumn(tileSize int) int {
	if !r.HasHit || tileSize <= 0 {
		return -1
	}
	size := float64(tileSize)

	var offset float64
	if r.Vertical {
		offset = math.Mod(r.Hit.Y, size)
	} else {
		offset = math.Mod(r.Hit.X, size)
	}
	if offset < 0 {
		offset += size
	}

	column := int(offset)
	if r.Inverted {
		column = tileSize - column - 1
	}
	return column
}

func facingUp(angle float64) bool    { return angle > math.Pi && angle < mathutil.TwoPi }
func facingDown(angle float64) bool  { return angle > 0 && angle < math.Pi }
func facingLeft(angle float64) bool  { return angle > math.Pi/2 && angle < 3*math.Pi/2 }
func facingRight(angle float64) bool { return angle < math.Pi/2 || angle > 3*math.Pi/2 }

// castHorizontal walks the constant-y grid lines.
func castHorizontal(angle float64, origin Point, grid TileGrid) (Point, bool) {
	size := float64(grid.TileSize())
	tan := math.Tan(angle)

	var y, stepY float64
	switch {
	case facingUp(angle):
		y = math.Floor(origin.Y/size)*size - boundaryNudge
		stepY = -size
	case facingDown(angle):
		y = math.Floor(origin.Y/size)*size + size
		stepY = size
	default:
		return Point{}, false
	}
	x := (y-origin.Y)/tan + origin.X
	stepX := stepY / tan

	return walk(x, y, stepX, stepY, grid)
}

// castVertical walks the constant-x grid lines.
func castVertical(angle float64, origin Point, grid TileGrid) (Point, bool) {
	size := float64(grid.TileSize())
	tan := math.Tan(angle)

	var x, stepX float64
	switch {
	case facingRight(angle):
		x = math.Floor(origin.X/size)*size + size
		stepX = size
	case facingLeft(angle):
		x = math.Floor(origin.X/size)*size - boundaryNudge
		stepX = -size
	default:
		return Point{}, false
	}
	y := origin.Y + (x-origin.X)*tan
	stepY := stepX * tan

	return walk(x, y, stepX, stepY, grid)
}

func walk(x, y, stepX, stepY float64, grid TileGrid) (Point, bool) {
	width, height := grid.Bounds()
	for x >= 0 && x <= width && y >= 0 && y <= height {
		if grid.PointInSolidTile(x, y) {
			return Point{X: x, Y: y}, true
		}
		x += stepX
		y += stepY
	}
	return Point{}, false
}
