package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"rayengine/internal/config"
	"rayengine/internal/graphics"
	"rayengine/internal/render"
	"rayengine/internal/world"
)

// LoadWorld loads the map and binds tile textures. Without a tiles file,
// code 1 is a plain white wall.
func LoadWorld(cfg *config.Config, cache *graphics.TextureCache) (*world.Grid, error) {
	grid, err := world.LoadMap(cfg.World.MapFile, cfg.GetTileSize())
	if err != nil {
		return nil, err
	}

	tiles := world.DefaultTileManager()
	if cfg.World.TilesFile != "" {
		tiles = world.NewTileManager()
		if err := tiles.LoadTileConfig(cfg.World.TilesFile); err != nil {
			return nil, err
		}
	}
	if err := tiles.Apply(grid, cache); err != nil {
		return nil, fmt.Errorf("failed to bind tiles: %w", err)
	}
	return grid, nil
}

// NewCaster builds a ray caster for grid from the camera and background sections.
func NewCaster(cfg *config.Config, grid *world.Grid) (*render.RayCaster, error) {
	caster := render.NewRayCaster(grid)
	caster.SetFOV(cfg.GetFieldOfView())
	if err := caster.SetAspectRatio(cfg.GetAspectRatio()); err != nil {
		return nil, err
	}
	if err := caster.SetRaysToCast(cfg.GetRays()); err != nil {
		return nil, err
	}
	caster.SetWorkers(cfg.Camera.Workers)

	if cfg.Background.Image != "" {
		caster.SetBackground(graphics.LoadBackground(cfg.Background.Image))
	} else {
		caster.SetBackground(graphics.NewSolidBackground(
			graphics.RGB(cfg.Background.Ceiling),
			graphics.RGB(cfg.Background.Floor),
		))
	}

	w, h := caster.SimSize()
	log.WithFields(logrus.Fields{
		"fov":    caster.FOV(),
		"rays":   caster.RaysToCast(),
		"width":  w,
		"height": h,
	}).Info("ray caster ready")
	return caster, nil
}

// LoadEntities creates the configured entities. They are queued, so the
// list is populated after its first ApplyPending.
func LoadEntities(cfg *config.Config, cache *graphics.TextureCache) *world.EntityList {
	entities := world.NewEntityList()
	for _, ec := range cfg.Entities {
		var tex *graphics.Texture
		if ec.Sprite != "" {
			tex = cache.Get(ec.Sprite)
		} else {
			tex = cache.Solid(graphics.RGB(ec.Color))
		}
		entities.Add(world.NewEntity(ec.X, ec.Y, tex))
	}
	return entities
}

// LoadBanners creates the configured overlays in file order.
func LoadBanners(cfg *config.Config) *graphics.BannerStack {
	banners := graphics.NewBannerStack()
	for _, bc := range cfg.Banners {
		if bc.Sprite != "" {
			banners.Add(graphics.LoadBanner(bc.Sprite, bc.X, bc.Y, bc.W, bc.H))
			continue
		}
		img := graphics.NewSolidTexture(graphics.RGB(bc.Color), 1).Image()
		banners.Add(graphics.NewBanner(img, bc.X, bc.Y, bc.W, bc.H))
	}
	return banners
}
