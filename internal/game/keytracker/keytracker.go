// Package keytracker turns level-triggered key state into edge events.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker remembers the previous frame's state for a set of keys.
type KeyStateTracker struct {
	isPressed   func(ebiten.Key) bool
	keys        []ebiten.Key
	prevPressed map[ebiten.Key]bool
	pressed     map[ebiten.Key]bool
}

// New tracks keys, reading their state through isPressed. A nil isPressed
// uses ebiten.IsKeyPressed.
func New(isPressed func(ebiten.Key) bool, keys ...ebiten.Key) *KeyStateTracker {
	if isPressed == nil {
		isPressed = ebiten.IsKeyPressed
	}
	return &KeyStateTracker{
		isPressed:   isPressed,
		keys:        keys,
		prevPressed: make(map[ebiten.Key]bool, len(keys)),
		pressed:     make(map[ebiten.Key]bool, len(keys)),
	}
}

// Update samples every tracked key. Call it once per frame.
func (k *KeyStateTracker) Update() {
	for _, key := range k.keys {
		k.prevPressed[key] = k.pressed[key]
		k.pressed[key] = k.isPressed(key)
	}
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.pressed[key] && !k.prevPressed[key]
}

// IsKeyJustReleased returns true if the key was pressed last frame but is not pressed this frame.
func (k *KeyStateTracker) IsKeyJustReleased(key ebiten.Key) bool {
	return !k.pressed[key] && k.prevPressed[key]
}
