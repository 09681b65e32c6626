package world

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"rayengine/internal/graphics"
)

// DefaultTileSize is the tile edge length in world units when none is configured.
const DefaultTileSize = 64

// EmptyTile is the reserved code for open space. It can never be bound to a texture.
const EmptyTile = 0

var ErrReservedCode = errors.New("tile code is reserved")

// Grid is a rectangular map of integer tile codes. A code is solid when a
// texture is bound to it; everything else, code 0 included, is open space.
// Tile contents are fixed after construction, bindings may only be added or replaced.
type Grid struct {
	tiles    [][]int
	rows     int
	cols     int
	tileSize int
	textures map[int]*graphics.Texture
}

// NewGrid copies tiles into a new grid.
func NewGrid(tiles [][]int, tileSize int) (*Grid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", tileSize)
	}
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyMap
	}

	cols := len(tiles[0])
	copied := make([][]int, len(tiles))
	for row, line := range tiles {
		if len(line) != cols {
			return nil, &MapError{Line: row + 1, Reason: fmt.Sprintf("expected %d columns, got %d", cols, len(line)), Err: ErrRaggedRows}
		}
		for col, code := range line {
			if code < 0 {
				return nil, &MapError{Line: row + 1, Column: col + 1, Reason: fmt.Sprintf("negative tile code %d", code), Err: ErrBadCell}
			}
		}
		copied[row] = append([]int(nil), line...)
	}

	return &Grid{
		tiles:    copied,
		rows:     len(copied),
		cols:     cols,
		tileSize: tileSize,
		textures: make(map[int]*graphics.Texture),
	}, nil
}

// AddTileBehavior makes code solid, drawn with tex. Binding an already bound
// code replaces its texture.
func (g *Grid) AddTileBehavior(code int, tex *graphics.Texture) error {
	if code <= EmptyTile {
		return fmt.Errorf("bind tile code %d: %w", code, ErrReservedCode)
	}
	if tex == nil {
		return fmt.Errorf("bind tile code %d: nil texture", code)
	}
	g.textures[code] = tex
	return nil
}

// TextureFor returns the texture bound to code.
func (g *Grid) TextureFor(code int) (*graphics.Texture, bool) {
	tex, ok := g.textures[code]
	return tex, ok
}

// IsBehaviorDefined reports whether code has a texture bound.
func (g *Grid) IsBehaviorDefined(code int) bool {
	_, ok := g.textures[code]
	return ok
}

// Code returns the tile code at (row, col), or EmptyTile out of range.
func (g *Grid) Code(row, col int) int {
	if !g.inRange(row, col) {
		return EmptyTile
	}
	return g.tiles[row][col]
}

// IsSolid reports whether the tile at (row, col) has a bound texture.
// Cells outside the grid are not solid.
func (g *Grid) IsSolid(row, col int) bool {
	if !g.inRange(row, col) {
		return false
	}
	return g.IsBehaviorDefined(g.tiles[row][col])
}

// TileContaining maps world coordinates to a tile, flooring toward negative
// infinity.
func (g *Grid) TileContaining(x, y float64) (row, col int) {
	size := float64(g.tileSize)
	return int(math.Floor(y / size)), int(math.Floor(x / size))
}

// PointInSolidTile reports whether (x, y) lies inside a solid tile.
func (g *Grid) PointInSolidTile(x, y float64) bool {
	row, col := g.TileContaining(x, y)
	return g.IsSolid(row, col)
}

// WallCodeAt returns the raw code of the tile containing (x, y).
func (g *Grid) WallCodeAt(x, y float64) int {
	row, col := g.TileContaining(x, y)
	return g.Code(row, col)
}

// Bounds is the world-space extent of the grid.
func (g *Grid) Bounds() (width, height float64) {
	return float64(g.cols * g.tileSize), float64(g.rows * g.tileSize)
}

// TileCenter returns the world coordinates of the middle of (row, col).
func (g *Grid) TileCenter(row, col int) (x, y float64) {
	half := float64(g.tileSize) / 2
	return float64(col*g.tileSize) + half, float64(row*g.tileSize) + half
}

func (g *Grid) TileSize() int { return g.tileSize }
func (g *Grid) Rows() int     { return g.rows }
func (g *Grid) Cols() int     { return g.cols }

func (g *Grid) inRange(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// String renders the codes row by row, space separated.
func (g *Grid) String() string {
	var sb strings.Builder
	for _, line := range g.tiles {
		for col, code := range line {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(code))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
