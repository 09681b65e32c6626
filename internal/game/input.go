package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Input is the device state the engine reads each frame.
type Input interface {
	IsKeyPressed(key ebiten.Key) bool
	CursorPosition() (x, y int)
}

// Window is the part of the host window the engine controls.
type Window interface {
	IsFocused() bool
	IsFullscreen() bool
	SetFullscreen(fullscreen bool)
	// SetCursorCaptured hides and locks the cursor for mouse look.
	SetCursorCaptured(captured bool)
}

// ebitenDevice reads input from and drives the real ebiten window.
type ebitenDevice struct{}

func (ebitenDevice) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }
func (ebitenDevice) CursorPosition() (int, int)       { return ebiten.CursorPosition() }
func (ebitenDevice) IsFocused() bool                  { return ebiten.IsFocused() }
func (ebitenDevice) IsFullscreen() bool               { return ebiten.IsFullscreen() }
func (ebitenDevice) SetFullscreen(fullscreen bool)    { ebiten.SetFullscreen(fullscreen) }

func (ebitenDevice) SetCursorCaptured(captured bool) {
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// InputHandler maps raw input to Controls and engine toggles.
type InputHandler struct {
	input   Input
	lastX   int
	hasLast bool
}

func NewInputHandler(input Input) *InputHandler {
	return &InputHandler{input: input}
}

// Controls samples movement keys and the horizontal cursor delta since the
// previous call.
func (ih *InputHandler) Controls() Controls {
	in := ih.input
	c := Controls{
		Forward:     in.IsKeyPressed(ebiten.KeyW),
		Backward:    in.IsKeyPressed(ebiten.KeyS),
		StrafeLeft:  in.IsKeyPressed(ebiten.KeyA),
		StrafeRight: in.IsKeyPressed(ebiten.KeyD),
		TurnLeft:    in.IsKeyPressed(ebiten.KeyLeft),
		TurnRight:   in.IsKeyPressed(ebiten.KeyRight),
	}

	x, _ := in.CursorPosition()
	if ih.hasLast {
		c.LookDelta = float64(x - ih.lastX)
	}
	ih.lastX, ih.hasLast = x, true
	return c
}

// ResetLook forgets the last cursor position so the next sample has no delta.
// Used when the cursor is captured or released, where it may jump.
func (ih *InputHandler) ResetLook() {
	ih.hasLast = false
}
