// Package render turns a grid and a viewer into a first-person frame.
//
// A RayCaster owns one ray per column of an internal simulation image. Each
// frame it casts the rays, draws walls over the background, projects entities
// into the same columns with per-column occlusion, and finishes with banner
// overlays. The simulation image is then scaled into the real viewport.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/sirupsen/logrus"

	"rayengine/internal/graphics"
	"rayengine/internal/logger"
	"rayengine/internal/mathutil"
	"rayengine/internal/raycast"
	"rayengine/internal/workers"
	"rayengine/internal/world"
)

var log = logger.Component("render")

const (
	DefaultFOV     = 60
	DefaultRays    = 200
	DefaultAspectW = 4
	DefaultAspectH = 3

	// caps the height of columns for rays of (almost) zero length
	maxColumnHeight = 1 << 20
)

// Viewer supplies the position and heading the frame is rendered from.
type Viewer interface {
	GetPosition() (x, y float64)
	// GetAngle is the heading in radians, normalised to [0, 2π).
	GetAngle() float64
}

// RayCaster renders a grid at a fixed simulation resolution. Its width is the
// number of rays cast per frame; its height follows from the aspect ratio.
type RayCaster struct {
	grid       *world.Grid
	background *graphics.Background

	fov              int
	raysToCast       int
	aspectW, aspectH int
	ratio            float64
	simWidth         int
	simHeight        int

	viewerX, viewerY float64
	heading          float64
	rays             []raycast.Ray
	pool             *workers.Pool

	frame  *image.RGBA
	output *image.RGBA
}

// NewRayCaster creates a caster over grid with a 60° field of view, a 4:3
// aspect ratio and 200 rays.
func NewRayCaster(grid *world.Grid) *RayCaster {
	rc := &RayCaster{
		grid:       grid,
		background: graphics.NewSolidBackground(graphics.RGB([3]int{40, 40, 40}), graphics.RGB([3]int{90, 90, 90})),
		aspectW:    DefaultAspectW,
		aspectH:    DefaultAspectH,
	}
	rc.SetFOV(DefaultFOV)
	rc.ratio = float64(rc.aspectW) / float64(rc.aspectH)
	rc.resize(DefaultRays)
	return rc
}

// SetFOV sets the field of view in degrees. Odd values are rounded up to the
// next even value and the result is normalised to [0, 360), except that 360
// itself is kept.
func (rc *RayCaster) SetFOV(degrees int) {
	if degrees%2 != 0 {
		degrees++
	}
	if degrees != 360 {
		degrees = mathutil.NormalizeDegrees(degrees)
	}
	rc.fov = degrees
}

// FOV is the field of view in degrees.
func (rc *RayCaster) FOV() int {
	return rc.fov
}

// SetRaysToCast sets the number of rays, which is also the simulation width.
func (rc *RayCaster) SetRaysToCast(n int) error {
	if n <= 0 {
		return fmt.Errorf("rays to cast must be positive, got %d", n)
	}
	rc.resize(n)
	return nil
}

// RaysToCast is the number of rays cast per frame.
func (rc *RayCaster) RaysToCast() int {
	return rc.raysToCast
}

// SetAspectRatio sets the simulation aspect ratio as w:h.
func (rc *RayCaster) SetAspectRatio(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %d:%d", w, h)
	}
	rc.aspectW, rc.aspectH = w, h
	rc.ratio = float64(w) / float64(h)
	rc.resize(rc.raysToCast)
	return nil
}

// AspectRatio returns the configured w:h pair.
func (rc *RayCaster) AspectRatio() (w, h int) {
	return rc.aspectW, rc.aspectH
}

// SetWorkers spreads ray casting over n goroutines. One or fewer casts on
// the calling goroutine.
func (rc *RayCaster) SetWorkers(n int) {
	if n <= 1 {
		rc.pool = nil
		return
	}
	rc.pool = workers.NewPool(n)
}

// SetBackground replaces the background drawn behind the walls.
func (rc *RayCaster) SetBackground(bg *graphics.Background) {
	if bg != nil {
		rc.background = bg
	}
}

func (rc *RayCaster) resize(n int) {
	rc.raysToCast = n
	rc.simWidth = n
	rc.simHeight = mathutil.IntMax(1, n*rc.aspectH/rc.aspectW)
	rc.rays = make([]raycast.Ray, n)
	rc.frame = nil

	log.WithFields(logrus.Fields{
		"rays":   n,
		"width":  rc.simWidth,
		"height": rc.simHeight,
	}).Debug("simulation resized")
}

// SimSize is the simulation image size in pixels.
func (rc *RayCaster) SimSize() (w, h int) {
	return rc.simWidth, rc.simHeight
}

// Update reads the viewer state and casts a fresh set of rays.
func (rc *RayCaster) Update(v Viewer) {
	rc.viewerX, rc.viewerY = v.GetPosition()
	rc.heading = v.GetAngle()
	rc.CastRays()
}

// CastRays casts every ray from the last viewer state. Rays are spaced evenly
// across the field of view and centred on the heading.
func (rc *RayCaster) CastRays() {
	n := rc.raysToCast
	increment := mathutil.DegToRad(rc.fov) / float64(n)
	first := rc.heading - increment*float64(n/2)
	origin := raycast.Point{X: rc.viewerX, Y: rc.viewerY}

	cast := func(i int) {
		angle := mathutil.NormalizeAngleRad(first + increment*float64(i))
		rc.rays[i] = raycast.Cast(angle, origin, rc.grid)
	}

	if rc.pool == nil {
		for i := 0; i < n; i++ {
			cast(i)
		}
		return
	}
	rc.pool.ParallelFor(0, n, cast)
}

// Rays returns the rays of the last cast, one per simulation column. The
// slice is overwritten by the next cast.
func (rc *RayCaster) Rays() []raycast.Ray {
	return rc.rays
}

// ColumnHeight converts a fisheye-corrected distance into an on-screen height.
// The aspect-ratio factor is empirical; it keeps walls square at non 1:1
// ratios. The result is always even so columns centre exactly.
func (rc *RayCaster) ColumnHeight(length float64) int {
	if math.IsInf(length, 1) || math.IsNaN(length) {
		return 0
	}
	if length <= 0 {
		return maxColumnHeight
	}
	height := float64(rc.grid.TileSize()) / length * float64(rc.simHeight) * rc.ratio
	if height > maxColumnHeight {
		return maxColumnHeight
	}
	return mathutil.MakeEven(int(math.Round(height)))
}

// correctedLength removes fisheye distortion from a ray's length.
func (rc *RayCaster) correctedLength(ray raycast.Ray) float64 {
	return ray.Length * math.Cos(mathutil.NormalizeAngleRad(rc.heading-ray.Angle))
}

// Projection places an entity in simulation space.
type Projection struct {
	// ScreenX is the column of the entity's centre.
	ScreenX int
	// Size is the width and height in pixels.
	Size int
	// Offset is the top edge.
	Offset int
	// Depth is the distance along the viewing direction.
	Depth float64
}

// Start is the leftmost column covered.
func (p Projection) Start() int {
	return p.ScreenX - p.Size/2
}

// ProjectEntity maps e into the current view. It reports false for hidden
// entities and for entities on or behind the viewer's plane.
func (rc *RayCaster) ProjectEntity(e *world.Entity) (Projection, bool) {
	if e == nil || !e.Visible {
		return Projection{}, false
	}

	// y is flipped so that positive y points away from the screen's top
	dx := e.X - rc.viewerX
	dy := -(e.Y - rc.viewerY)

	// rotate so the heading lies on +y
	rotation := mathutil.NormalizeAngleRad(math.Pi/2 + rc.heading)
	sin, cos := math.Sincos(rotation)
	rx := dx*cos - dy*sin
	ry := dx*sin + dy*cos
	if ry <= 0 {
		return Projection{}, false
	}

	halfFOVTan := math.Tan(mathutil.DegToRad(rc.fov) / 2)
	t := rx / ry / halfFOVTan
	screenX := (t + 1) * 0.5 * float64(rc.simWidth)
	screenX = math.Max(-maxColumnHeight, math.Min(screenX, float64(rc.simWidth+maxColumnHeight)))
	size := rc.ColumnHeight(ry)

	return Projection{
		ScreenX: int(screenX),
		Size:    size,
		Offset:  (rc.simHeight - size) / 2,
		Depth:   ry,
	}, true
}
