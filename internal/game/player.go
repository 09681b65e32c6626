package game

import (
	"rayengine/internal/collision"
	"rayengine/internal/config"
	"rayengine/internal/world"
)

// Controls is one frame of player intent, decoupled from the input device.
type Controls struct {
	Forward, Backward       bool
	StrafeLeft, StrafeRight bool
	TurnLeft, TurnRight     bool
	// LookDelta is the horizontal mouse movement in pixels.
	LookDelta float64
}

// Player is the viewer walking the grid.
type Player struct {
	FirstPersonCamera

	Speed       float64 // world units per second
	Sensitivity float64 // degrees per pixel
	TurnSpeed   float64 // degrees per second

	grid      *world.Grid
	box       *collision.BoundingBox
	collision *collision.CollisionSystem
	row, col  int
}

// NewPlayer places a player on grid using the player section of cfg.
func NewPlayer(grid *world.Grid, cfg config.PlayerConfig) *Player {
	p := &Player{
		FirstPersonCamera: FirstPersonCamera{X: cfg.StartX, Y: cfg.StartY},
		Speed:             cfg.Speed,
		Sensitivity:       cfg.Sensitivity,
		TurnSpeed:         cfg.TurnSpeed,
		grid:              grid,
		box:               collision.NewBoundingBox(cfg.StartX, cfg.StartY, cfg.HitboxRadius),
		collision:         collision.NewCollisionSystem(grid),
	}
	p.SetAngleDegrees(cfg.Angle)
	p.row, p.col = grid.TileContaining(p.X, p.Y)
	return p
}

// Update applies one frame of controls over dt seconds.
func (p *Player) Update(dt float64, c Controls) {
	turn := c.LookDelta * p.Sensitivity
	if c.TurnLeft {
		turn -= p.TurnSpeed * dt
	}
	if c.TurnRight {
		turn += p.TurnSpeed * dt
	}
	if turn != 0 {
		p.AddAngleDegrees(turn)
	}

	p.updateMovement(dt, c)
}

func (p *Player) updateMovement(dt float64, c Controls) {
	speed := p.Speed * dt
	fx, fy := p.GetForwardX(), p.GetForwardY()
	rx, ry := p.GetRightX(), p.GetRightY()

	var moveX, moveY float64
	if c.Forward {
		moveX += fx * speed
		moveY += fy * speed
	}
	if c.Backward {
		moveX -= fx * speed
		moveY -= fy * speed
	}
	if c.StrafeLeft {
		moveX -= rx * speed
		moveY -= ry * speed
	}
	if c.StrafeRight {
		moveX += rx * speed
		moveY += ry * speed
	}
	if moveX == 0 && moveY == 0 {
		return
	}

	p.box.MoveTo(p.X, p.Y)
	p.X, p.Y = p.collision.Move(p.box, moveX, moveY)
	p.row, p.col = p.grid.TileContaining(p.X, p.Y)
}

// Tile returns the tile the player is standing on.
func (p *Player) Tile() (row, col int) {
	return p.row, p.col
}
