package graphics

import (
	"fmt"
	"image/color"

	"rayengine/internal/logger"
)

var log = logger.Component("graphics")

// TextureCache loads each texture file once and hands out shared pointers.
// Textures are immutable, so sharing is safe.
type TextureCache struct {
	size     int
	textures map[string]*Texture
	solids   map[color.RGBA]*Texture
}

// NewTextureCache creates a cache producing size×size textures.
func NewTextureCache(size int) *TextureCache {
	if size <= 0 {
		size = DefaultSize
	}
	return &TextureCache{
		size:     size,
		textures: make(map[string]*Texture),
		solids:   make(map[color.RGBA]*Texture),
	}
}

// Get returns the texture for path, loading it on first use. Missing files are
// cached as their placeholder so the disk is only probed once.
func (tc *TextureCache) Get(path string) *Texture {
	if tex, exists := tc.textures[path]; exists {
		return tex
	}
	tex := LoadTexture(path, tc.size)
	tc.textures[path] = tex
	return tex
}

// Solid returns a cached single-colour texture.
func (tc *TextureCache) Solid(c color.RGBA) *Texture {
	if tex, exists := tc.solids[c]; exists {
		return tex
	}
	tex := NewSolidTexture(c, tc.size)
	tc.solids[c] = tex
	return tex
}

// Size is the edge length of every texture the cache produces.
func (tc *TextureCache) Size() int {
	return tc.size
}

// Len reports how many distinct textures are held.
func (tc *TextureCache) Len() int {
	return len(tc.textures) + len(tc.solids)
}

func (tc *TextureCache) String() string {
	return fmt.Sprintf("TextureCache{size: %d, files: %d, solids: %d}", tc.size, len(tc.textures), len(tc.solids))
}

// RGB converts a [r, g, b] config triple into an opaque colour, clamping
// components to 0..255.
func RGB(c [3]int) color.RGBA {
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.RGBA{clamp(c[0]), clamp(c[1]), clamp(c[2]), 255}
}
