package world

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"rayengine/internal/graphics"
)

// TileData describes how a solid tile code is drawn.
type TileData struct {
	Name   string `yaml:"name"`
	Sprite string `yaml:"sprite"`
	Color  [3]int `yaml:"color"`
}

// TileConfig is the layout of a tiles file.
type TileConfig struct {
	Tiles map[int]TileData `yaml:"tiles"`
}

// TileManager holds the tile code registry loaded from YAML.
type TileManager struct {
	tileData map[int]*TileData
}

// NewTileManager creates an empty registry.
func NewTileManager() *TileManager {
	return &TileManager{
		tileData: make(map[int]*TileData),
	}
}

// DefaultTileManager binds code 1 to a plain white wall.
func DefaultTileManager() *TileManager {
	tm := NewTileManager()
	tm.tileData[1] = &TileData{Name: "wall", Color: [3]int{255, 255, 255}}
	return tm
}

// LoadTileConfig loads tile definitions from a YAML file.
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}
	return tm.ParseTileConfig(data)
}

// ParseTileConfig replaces the registry with the definitions in data.
func (tm *TileManager) ParseTileConfig(data []byte) error {
	var tileConfig TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	tiles := make(map[int]*TileData, len(tileConfig.Tiles))
	for code, tileData := range tileConfig.Tiles {
		if code <= EmptyTile {
			return fmt.Errorf("tile %q: code %d: %w", tileData.Name, code, ErrReservedCode)
		}
		tileCopy := tileData
		tiles[code] = &tileCopy
	}
	tm.tileData = tiles
	return nil
}

// GetTileData returns the definition for code.
func (tm *TileManager) GetTileData(code int) (*TileData, bool) {
	data, ok := tm.tileData[code]
	return data, ok
}

// Codes returns every registered code in ascending order.
func (tm *TileManager) Codes() []int {
	codes := make([]int, 0, len(tm.tileData))
	for code := range tm.tileData {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// Apply binds every registered code into grid. Tiles with a sprite load it
// through cache; the rest become solid colour textures.
func (tm *TileManager) Apply(grid *Grid, cache *graphics.TextureCache) error {
	for _, code := range tm.Codes() {
		data := tm.tileData[code]

		var tex *graphics.Texture
		if data.Sprite != "" {
			tex = cache.Get(data.Sprite)
		} else {
			tex = cache.Solid(graphics.RGB(data.Color))
		}

		if err := grid.AddTileBehavior(code, tex); err != nil {
			return fmt.Errorf("tile %q: %w", data.Name, err)
		}
		log.WithField("code", code).WithField("name", data.Name).Debug("tile bound")
	}
	return nil
}
