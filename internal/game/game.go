package game

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"rayengine/internal/config"
	"rayengine/internal/game/keytracker"
	"rayengine/internal/graphics"
	"rayengine/internal/logger"
	"rayengine/internal/monitoring"
	"rayengine/internal/render"
	"rayengine/internal/world"
)

var log = logger.Component("game")

// maxFrameDelta bounds dt after stalls such as window drags.
const maxFrameDelta = 0.25

// Game runs the engine inside ebiten.
type Game struct {
	config   *config.Config
	grid     *world.Grid
	player   *Player
	caster   *render.RayCaster
	entities *world.EntityList
	banners  *graphics.BannerStack
	monitor  *monitoring.PerformanceMonitor

	inputHandler *InputHandler
	keys         *keytracker.KeyStateTracker
	window       Window

	paused  bool
	showFPS bool

	frameImg   *ebiten.Image
	now        func() time.Time
	lastUpdate time.Time
}

// NewGame loads everything cfg describes and binds it to the ebiten window.
func NewGame(cfg *config.Config) (*Game, error) {
	device := ebitenDevice{}
	return newGame(cfg, device, device)
}

func newGame(cfg *config.Config, input Input, window Window) (*Game, error) {
	cache := graphics.NewTextureCache(cfg.GetTileSize())

	grid, err := LoadWorld(cfg, cache)
	if err != nil {
		return nil, err
	}
	caster, err := NewCaster(cfg, grid)
	if err != nil {
		return nil, err
	}

	g := &Game{
		config:       cfg,
		grid:         grid,
		player:       NewPlayer(grid, cfg.Player),
		caster:       caster,
		entities:     LoadEntities(cfg, cache),
		banners:      LoadBanners(cfg),
		monitor:      monitoring.NewPerformanceMonitor(cfg.Debug.FrameAvg),
		inputHandler: NewInputHandler(input),
		keys:         keytracker.New(input.IsKeyPressed, ebiten.KeyEscape, ebiten.KeyF4, ebiten.KeyF11),
		window:       window,
		showFPS:      cfg.Debug.ShowFPS,
		now:          time.Now,
	}
	g.entities.ApplyPending()
	g.caster.Update(g.player)

	if g.grid.PointInSolidTile(g.player.X, g.player.Y) {
		log.WithField("x", g.player.X).WithField("y", g.player.Y).Warn("player starts inside a wall")
	}
	log.WithField("map", cfg.World.MapFile).WithField("textures", cache.Len()).Info("game loaded")

	g.setPaused(false)
	return g, nil
}

// Player returns the viewer.
func (g *Game) Player() *Player {
	return g.player
}

// Caster returns the ray caster.
func (g *Game) Caster() *render.RayCaster {
	return g.caster
}

// AddEntity queues e; it appears from the next frame.
func (g *Game) AddEntity(e *world.Entity) {
	g.entities.Add(e)
}

// RemoveEntity queues e for removal at the end of the current frame.
func (g *Game) RemoveEntity(e *world.Entity) {
	g.entities.Remove(e)
}

// Entities returns the live entities, farthest first.
func (g *Game) Entities() []*world.Entity {
	return g.entities.All()
}

// Banners returns the overlay stack.
func (g *Game) Banners() *graphics.BannerStack {
	return g.banners
}

func (g *Game) IsPaused() bool {
	return g.paused
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.window.SetCursorCaptured(!paused)
	g.inputHandler.ResetLook()
}

// Update advances one frame: input, player, entities, rays, then pending
// entity changes.
func (g *Game) Update() error {
	dt := g.tick()
	g.monitor.RecordFrame(dt)

	g.keys.Update()
	g.handleToggles()
	if g.paused {
		return nil
	}

	controls := g.inputHandler.Controls()
	g.monitor.ProfiledFunction("update", func() {
		g.player.Update(dt, controls)
		g.entities.Update(dt, g.player.X, g.player.Y)
	})
	g.monitor.ProfiledFunction("raycast", func() {
		g.caster.Update(g.player)
	})
	g.entities.ApplyPending()
	return nil
}

func (g *Game) tick() float64 {
	now := g.now()
	dt := 1.0 / 60
	if !g.lastUpdate.IsZero() {
		dt = now.Sub(g.lastUpdate).Seconds()
	}
	g.lastUpdate = now
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	return dt
}

func (g *Game) handleToggles() {
	if g.keys.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
		log.WithField("paused", g.paused).Debug("pause toggled")
	}
	if !g.paused && !g.window.IsFocused() {
		g.setPaused(true)
		log.Debug("window lost focus, pausing")
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyF11) {
		g.window.SetFullscreen(!g.window.IsFullscreen())
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyF4) {
		g.showFPS = !g.showFPS
	}
}

// DrawFrame renders the simulation image with the FPS and pause overlays.
func (g *Game) DrawFrame() *image.RGBA {
	var frame *image.RGBA
	g.monitor.ProfiledFunction("render", func() {
		frame = g.caster.Frame(g.entities.All(), g.banners)
	})

	if g.showFPS {
		graphics.DrawTextBox(frame, fmt.Sprintf("FPS: %.2f", g.monitor.FPS()), 0, 0)
	}
	if g.paused {
		w, h := g.caster.SimSize()
		graphics.DrawTextBox(frame, "PAUSED", w/2-28, h/2-13)
	}
	return frame
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.DrawFrame()
	w, h := g.caster.SimSize()
	if g.frameImg == nil || g.frameImg.Bounds().Dx() != w || g.frameImg.Bounds().Dy() != h {
		g.frameImg = ebiten.NewImage(w, h)
	}
	g.frameImg.WritePixels(frame.Pix)

	screen.Fill(color.Black)
	b := screen.Bounds()
	box := render.Fit(w, h, render.Viewport{Width: b.Dx(), Height: b.Dy()})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(box.Scale, box.Scale)
	op.GeoM.Translate(float64(box.X), float64(box.Y))
	screen.DrawImage(g.frameImg, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return outsideWidth, outsideHeight
}
