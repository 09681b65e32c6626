package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"rayengine/internal/config"
	"rayengine/internal/game"
	"rayengine/internal/graphics"
	"rayengine/internal/logger"
	"rayengine/internal/mathutil"
	"rayengine/internal/render"
)

// Prints the loaded map and one ray sweep from the player start, and
// optionally writes the first frame to a PNG without opening a window.
func main() {
	configPath := flag.String("config", "config.yaml", "engine configuration")
	out := flag.String("png", "", "write the first frame to this file")
	width := flag.Int("w", 640, "png viewport width")
	height := flag.Int("h", 480, "png viewport height")
	every := flag.Int("every", 16, "print every nth ray")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}

	cache := graphics.NewTextureCache(cfg.GetTileSize())
	grid, err := game.LoadWorld(cfg, cache)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load world")
	}
	caster, err := game.NewCaster(cfg, grid)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to configure caster")
	}

	fmt.Printf("Map %s (%dx%d tiles of %d)\n", cfg.World.MapFile, grid.Cols(), grid.Rows(), grid.TileSize())
	fmt.Println(grid.String())

	player := game.NewPlayer(grid, cfg.Player)
	caster.Update(player)

	simW, simH := caster.SimSize()
	fmt.Printf("Sweep from (%.1f, %.1f) facing %.1f deg, %d rays, sim %dx%d\n",
		player.X, player.Y, player.AngleDegrees(), caster.RaysToCast(), simW, simH)
	fmt.Printf("%5s %8s %10s %6s %5s %5s %8s\n", "ray", "angle", "length", "side", "code", "texX", "height")

	step := mathutil.IntMax(1, *every)
	for i, ray := range caster.Rays() {
		if i%step != 0 && i != len(caster.Rays())-1 {
			continue
		}
		side := "-"
		switch {
		case ray.Vertical:
			side = "vert"
		case ray.Horizontal:
			side = "horz"
		}
		fmt.Printf("%5d %8.2f %10.2f %6s %5d %5d %8d\n",
			i, mathutil.RadToDeg(ray.Angle), ray.Length, side, ray.TileCode,
			ray.TextureColumn(grid.TileSize()), caster.ColumnHeight(ray.Length))
	}

	if *out == "" {
		return
	}

	entities := game.LoadEntities(cfg, cache)
	entities.ApplyPending()
	entities.Update(0, player.X, player.Y)

	img := caster.Render(render.Viewport{Width: *width, Height: *height}, entities.All(), game.LoadBanners(cfg))
	f, err := os.Create(*out)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to create png")
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		logger.Log.WithError(err).Fatal("failed to encode png")
	}
	fmt.Printf("Wrote %s\n", *out)
}
