package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"rayengine/internal/config"
	"rayengine/internal/game"
	"rayengine/internal/graphics"
	"rayengine/internal/logger"
	"rayengine/internal/render"
	"rayengine/internal/world"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

var (
	floorColor  = color.RGBA{30, 30, 36, 255}
	gridColor   = color.RGBA{55, 55, 65, 255}
	rayColor    = color.RGBA{255, 220, 90, 120}
	playerColor = color.RGBA{80, 200, 255, 255}
	entityColor = color.RGBA{255, 80, 80, 255}
	panelColor  = color.RGBA{18, 18, 22, 255}
)

// viewer draws the map from above with the current ray sweep, and lets the
// player walk it with the same controls as the engine.
type viewer struct {
	cfg      *config.Config
	grid     *world.Grid
	caster   *render.RayCaster
	player   *game.Player
	entities *world.EntityList
	colors   map[int]color.RGBA

	rayStride int
	showGrid  bool
}

func main() {
	configPath := flag.String("config", "config.yaml", "engine configuration")
	flag.Parse()
	ensureRuntimeCWD(*configPath)

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

	v := &viewer{
		cfg:       cfg,
		grid:      grid,
		caster:    caster,
		player:    game.NewPlayer(grid, cfg.Player),
		entities:  game.LoadEntities(cfg, cache),
		colors:    tileColors(grid),
		rayStride: 4,
		showGrid:  true,
	}
	v.entities.ApplyPending()
	v.caster.Update(v.player)

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Map Viewer - " + cfg.World.MapFile)
	if err := ebiten.RunGame(v); err != nil {
		logger.Log.WithError(err).Fatal("viewer stopped")
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.showGrid = !v.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) && v.rayStride > 1 {
		v.rayStride /= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && v.rayStride < 64 {
		v.rayStride *= 2
	}

	v.player.Update(1.0/60, game.Controls{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Backward:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyD),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyLeft),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyRight),
	})
	v.entities.Update(1.0/60, v.player.X, v.player.Y)
	v.caster.Update(v.player)
	v.entities.ApplyPending()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	mapW := windowWidth - sidebarWidth
	worldW, worldH := v.grid.Bounds()
	scale := math.Min(float64(mapW)/worldW, float64(windowHeight)/worldH)
	offX := (float64(mapW) - worldW*scale) / 2
	offY := (float64(windowHeight) - worldH*scale) / 2
	toScreen := func(x, y float64) (float32, float32) {
		return float32(offX + x*scale), float32(offY + y*scale)
	}

	v.drawTiles(screen, scale, toScreen)

	px, py := toScreen(v.player.X, v.player.Y)
	rays := v.caster.Rays()
	for i := 0; i < len(rays); i += v.rayStride {
		if !rays[i].HasHit {
			continue
		}
		hx, hy := toScreen(rays[i].Hit.X, rays[i].Hit.Y)
		vector.StrokeLine(screen, px, py, hx, hy, 1, rayColor, true)
	}

	for _, e := range v.entities.All() {
		ex, ey := toScreen(e.X, e.Y)
		vector.DrawFilledCircle(screen, ex, ey, float32(math.Max(3, 8*scale/4)), entityColor, true)
	}

	vector.DrawFilledCircle(screen, px, py, 6, playerColor, true)
	fx, fy := toScreen(v.player.X+v.player.GetForwardX()*30, v.player.Y+v.player.GetForwardY()*30)
	vector.StrokeLine(screen, px, py, fx, fy, 2, playerColor, true)

	v.drawSidebar(screen, mapW)
}

func (v *viewer) drawTiles(screen *ebiten.Image, scale float64, toScreen func(x, y float64) (float32, float32)) {
	size := float64(v.grid.TileSize())
	cell := float32(size * scale)
	for row := 0; row < v.grid.Rows(); row++ {
		for col := 0; col < v.grid.Cols(); col++ {
			x, y := toScreen(float64(col)*size, float64(row)*size)
			clr := floorColor
			if c, ok := v.colors[v.grid.Code(row, col)]; ok {
				clr = c
			}
			vector.DrawFilledRect(screen, x, y, cell, cell, clr, false)
			if v.showGrid {
				vector.StrokeRect(screen, x, y, cell, cell, 1, gridColor, false)
			}
		}
	}
}

func (v *viewer) drawSidebar(screen *ebiten.Image, x int) {
	vector.DrawFilledRect(screen, float32(x), 0, sidebarWidth, windowHeight, panelColor, false)

	row, col := v.player.Tile()
	simW, simH := v.caster.SimSize()
	info := fmt.Sprintf(
		"Map: %s\nSize: %dx%d tiles of %d\n\nPlayer: (%.1f, %.1f)\nTile: row %d col %d\nHeading: %.1f deg\n\n"+
			"FOV: %d deg\nRays: %d (showing 1/%d)\nSim: %dx%d\nEntities: %d\n\n"+
			"WASD/arrows: move\n-/=: ray density\nG: toggle grid",
		v.cfg.World.MapFile, v.grid.Cols(), v.grid.Rows(), v.grid.TileSize(),
		v.player.X, v.player.Y, row, col, v.player.AngleDegrees(),
		v.caster.FOV(), v.caster.RaysToCast(), v.rayStride, simW, simH, v.entities.Len(),
	)
	ebitenutil.DebugPrintAt(screen, info, x+12, 12)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// tileColors samples the centre of each bound texture so sprite tiles get a
// representative colour too.
func tileColors(grid *world.Grid) map[int]color.RGBA {
	colors := make(map[int]color.RGBA)
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			code := grid.Code(row, col)
			if _, seen := colors[code]; seen || code == world.EmptyTile {
				continue
			}
			tex, ok := grid.TextureFor(code)
			if !ok {
				colors[code] = graphics.ErrorColor
				continue
			}
			mid := tex.Size() / 2
			colors[code] = tex.Image().RGBAAt(mid, mid)
		}
	}
	return colors
}

func ensureRuntimeCWD(configPath string) {
	if _, err := os.Stat(configPath); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
