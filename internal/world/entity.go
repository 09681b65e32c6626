package world

import (
	"sort"

	"rayengine/internal/graphics"
	"rayengine/internal/mathutil"
)

// Entity is a billboarded object in the world.
type Entity struct {
	X, Y    float64
	Texture *graphics.Texture
	Visible bool

	// OnUpdate, when set, runs once per frame before distances are refreshed.
	OnUpdate func(e *Entity, dt float64)

	distance float64
}

// NewEntity creates a visible entity at (x, y).
func NewEntity(x, y float64, tex *graphics.Texture) *Entity {
	return &Entity{X: x, Y: y, Texture: tex, Visible: true}
}

// UpdateDistance recomputes the distance to the viewer at (x, y).
func (e *Entity) UpdateDistance(x, y float64) {
	e.distance = mathutil.Distance(e.X, e.Y, x, y)
}

// Distance is the value computed by the last UpdateDistance.
func (e *Entity) Distance() float64 {
	return e.distance
}

// EntityList keeps entities sorted farthest first. Add and Remove are queued
// and only take effect in ApplyPending, so callers may mutate the list while
// iterating All.
type EntityList struct {
	entities []*Entity
	toAdd    []*Entity
	toRemove []*Entity
}

func NewEntityList() *EntityList {
	return &EntityList{}
}

// Add queues e for insertion.
func (l *EntityList) Add(e *Entity) {
	l.toAdd = append(l.toAdd, e)
}

// Remove queues e for removal.
func (l *EntityList) Remove(e *Entity) {
	l.toRemove = append(l.toRemove, e)
}

// ApplyPending applies queued removals, then queued additions.
func (l *EntityList) ApplyPending() {
	for _, e := range l.toRemove {
		for i, cur := range l.entities {
			if cur == e {
				l.entities = append(l.entities[:i], l.entities[i+1:]...)
				break
			}
		}
	}
	for _, e := range l.toAdd {
		if !l.Contains(e) {
			l.entities = append(l.entities, e)
		}
	}
	l.toAdd = l.toAdd[:0]
	l.toRemove = l.toRemove[:0]
}

// Update runs entity behaviours, refreshes distances to the viewer and sorts
// the list by descending distance.
func (l *EntityList) Update(dt, viewerX, viewerY float64) {
	for _, e := range l.entities {
		if e.OnUpdate != nil {
			e.OnUpdate(e, dt)
		}
		e.UpdateDistance(viewerX, viewerY)
	}
	sort.SliceStable(l.entities, func(i, j int) bool {
		return l.entities[i].distance > l.entities[j].distance
	})
}

// All returns the entities farthest first. The slice must not be modified.
func (l *EntityList) All() []*Entity {
	return l.entities
}

func (l *EntityList) Len() int {
	return len(l.entities)
}

// Contains reports whether e is in the applied list.
func (l *EntityList) Contains(e *Entity) bool {
	for _, cur := range l.entities {
		if cur == e {
			return true
		}
	}
	return false
}

// InRadius returns the entities within r of the viewer, nearest first.
// It relies on the ordering established by Update.
func (l *EntityList) InRadius(r float64) []*Entity {
	var found []*Entity
	for i := len(l.entities) - 1; i >= 0; i-- {
		e := l.entities[i]
		if e.distance > r {
			break
		}
		found = append(found, e)
	}
	return found
}
