package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all engine configuration values
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	World      WorldConfig      `yaml:"world"`
	Camera     CameraConfig     `yaml:"camera"`
	Background BackgroundConfig `yaml:"background"`
	Player     PlayerConfig     `yaml:"player"`
	Entities   []EntityConfig   `yaml:"entities"`
	Banners    []BannerConfig   `yaml:"banners"`
	Debug      DebugConfig      `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	Fullscreen   bool   `yaml:"fullscreen"`
	// TargetFPS of 0 or less runs uncapped.
	TargetFPS int `yaml:"target_fps"`
}

type WorldConfig struct {
	TileSize  int    `yaml:"tile_size"`
	MapFile   string `yaml:"map_file"`
	TilesFile string `yaml:"tiles_file"`
}

type CameraConfig struct {
	FieldOfView int    `yaml:"field_of_view"`
	Rays        int    `yaml:"rays"`
	AspectRatio [2]int `yaml:"aspect_ratio"`
	// Workers casts rays in parallel when above 1.
	Workers int `yaml:"workers"`
}

// BackgroundConfig uses Image when set, otherwise the ceiling/floor pair.
type BackgroundConfig struct {
	Ceiling [3]int `yaml:"ceiling"`
	Floor   [3]int `yaml:"floor"`
	Image   string `yaml:"image"`
}

type PlayerConfig struct {
	StartX       float64 `yaml:"start_x"`
	StartY       float64 `yaml:"start_y"`
	Angle        float64 `yaml:"angle"`       // degrees
	Speed        float64 `yaml:"speed"`       // world units per second
	Sensitivity  float64 `yaml:"sensitivity"` // degrees per pixel of mouse movement
	TurnSpeed    float64 `yaml:"turn_speed"`  // degrees per second for keyboard turning
	HitboxRadius float64 `yaml:"hitbox_radius"`
}

// EntityConfig places a billboard. Sprite wins over Color when both are set.
type EntityConfig struct {
	Sprite string  `yaml:"sprite"`
	Color  [3]int  `yaml:"color"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// BannerConfig places an overlay in viewport fractions.
type BannerConfig struct {
	Sprite string  `yaml:"sprite"`
	Color  [3]int  `yaml:"color"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
}

type DebugConfig struct {
	ShowFPS  bool   `yaml:"show_fps"`
	FrameAvg int    `yaml:"frame_avg"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used for any field a file leaves out.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 600,
			WindowTitle:  "rayengine",
			Resizable:    true,
			TargetFPS:    60,
		},
		World: WorldConfig{
			TileSize: 64,
			MapFile:  "assets/level.map",
		},
		Camera: CameraConfig{
			FieldOfView: 60,
			Rays:        320,
			AspectRatio: [2]int{4, 3},
		},
		Background: BackgroundConfig{
			Ceiling: [3]int{50, 50, 70},
			Floor:   [3]int{90, 90, 90},
		},
		Player: PlayerConfig{
			StartX:       96,
			StartY:       96,
			Speed:        150,
			Sensitivity:  0.1,
			TurnSpeed:    120,
			HitboxRadius: 15,
		},
		Debug: DebugConfig{
			FrameAvg: 30,
			LogLevel: "info",
		},
	}
}

// LoadConfig reads filename over the defaults and validates the result.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Display.ScreenWidth > 0, "display.screen_width must be positive, got %d", c.Display.ScreenWidth)
	check(c.Display.ScreenHeight > 0, "display.screen_height must be positive, got %d", c.Display.ScreenHeight)
	check(c.World.TileSize > 0, "world.tile_size must be positive, got %d", c.World.TileSize)
	check(c.World.MapFile != "", "world.map_file is required")
	check(c.Camera.FieldOfView > 0 && c.Camera.FieldOfView <= 360, "camera.field_of_view must be in (0, 360], got %d", c.Camera.FieldOfView)
	check(c.Camera.Rays > 0, "camera.rays must be positive, got %d", c.Camera.Rays)
	check(c.Camera.AspectRatio[0] > 0 && c.Camera.AspectRatio[1] > 0, "camera.aspect_ratio must be two positive integers, got %v", c.Camera.AspectRatio)
	check(c.Player.Speed >= 0, "player.speed must not be negative, got %v", c.Player.Speed)
	check(c.Player.HitboxRadius >= 0, "player.hitbox_radius must not be negative, got %v", c.Player.HitboxRadius)
	check(c.Debug.FrameAvg > 0, "debug.frame_avg must be positive, got %d", c.Debug.FrameAvg)

	for i, b := range c.Banners {
		check(b.W > 0 && b.H > 0, "banners[%d] must have a positive size, got %vx%v", i, b.W, b.H)
	}

	return errors.Join(errs...)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() int {
	return c.World.TileSize
}

func (c *Config) GetFieldOfView() int {
	return c.Camera.FieldOfView
}

func (c *Config) GetRays() int {
	return c.Camera.Rays
}

func (c *Config) GetAspectRatio() (w, h int) {
	return c.Camera.AspectRatio[0], c.Camera.AspectRatio[1]
}
