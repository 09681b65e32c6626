package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"rayengine/internal/config"
	"rayengine/internal/game"
	"rayengine/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the engine configuration")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	if err := logger.SetLevel(cfg.Debug.LogLevel); err != nil {
		logger.Log.WithError(err).Warn("keeping default log level")
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(cfg.Display.Fullscreen)
	if cfg.Display.TargetFPS > 0 {
		ebiten.SetTPS(cfg.Display.TargetFPS)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}

	g, err := game.NewGame(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start engine")
	}
	if err := ebiten.RunGame(g); err != nil {
		logger.Log.WithError(err).Fatal("engine stopped")
	}
}
