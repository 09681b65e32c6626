package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"rayengine/internal/graphics"
	"rayengine/internal/mathutil"
	"rayengine/internal/world"
)

// Viewport is the size of the surface a frame is presented on.
type Viewport struct {
	Width, Height int
}

// Letterbox is where a scaled simulation image lands inside a viewport.
type Letterbox struct {
	Scale         float64
	X, Y          int
	Width, Height int
}

// Rect is the letterbox area in viewport pixels.
func (l Letterbox) Rect() image.Rectangle {
	return image.Rect(l.X, l.Y, l.X+l.Width, l.Y+l.Height)
}

// Fit scales simW×simH uniformly into vp and centres it. The smaller of the
// two axis scales is used so the whole image stays visible.
func Fit(simW, simH int, vp Viewport) Letterbox {
	if simW <= 0 || simH <= 0 || vp.Width <= 0 || vp.Height <= 0 {
		return Letterbox{}
	}
	scale := math.Min(float64(vp.Width)/float64(simW), float64(vp.Height)/float64(simH))
	drawW := int(float64(simW) * scale)
	drawH := int(float64(simH) * scale)
	return Letterbox{
		Scale:  scale,
		X:      (vp.Width - drawW) / 2,
		Y:      (vp.Height - drawH) / 2,
		Width:  drawW,
		Height: drawH,
	}
}

// RenderFrame draws the current view into dst, which should be SimSize large.
// Layers are background, walls, entities and banners, in that order.
// entities must already be sorted farthest first.
func (rc *RayCaster) RenderFrame(dst *image.RGBA, entities []*world.Entity, banners *graphics.BannerStack) {
	rc.background.Draw(dst, image.Rect(0, 0, rc.simWidth, rc.simHeight))
	rc.drawWalls(dst)
	rc.drawEntities(dst, entities)
	if banners != nil {
		banners.Draw(dst, rc.simWidth, rc.simHeight)
	}
}

func (rc *RayCaster) drawWalls(dst *image.RGBA) {
	tileSize := rc.grid.TileSize()

	for i, ray := range rc.rays {
		if !ray.HasHit {
			continue
		}
		tex, ok := rc.grid.TextureFor(ray.TileCode)
		if !ok {
			continue
		}

		height := rc.ColumnHeight(rc.correctedLength(ray))
		offset := (rc.simHeight - height) / 2
		column := ray.TextureColumn(tileSize) * tex.Size() / tileSize

		if ray.Vertical {
			tex.DrawColumn(dst, column, i, offset, 1, height)
		} else {
			tex.DrawShadedColumn(dst, column, i, offset, 1, height)
		}
	}
}

func (rc *RayCaster) drawEntities(dst *image.RGBA, entities []*world.Entity) {
	for _, e := range entities {
		if e.Texture == nil {
			continue
		}
		p, ok := rc.ProjectEntity(e)
		if !ok || p.Size == 0 {
			continue
		}

		start := p.Start()
		from := mathutil.IntMax(start, 0)
		to := mathutil.IntMin(start+p.Size, len(rc.rays))
		for j := from; j < to; j++ {
			// a nearer wall hides this column
			if e.Distance() > rc.rays[j].Length {
				continue
			}
			column := (j - start) * e.Texture.Size() / p.Size
			e.Texture.DrawColumn(dst, column, j, p.Offset, 1, p.Size)
		}
	}
}

// Composite scales sim into dst, centred, and paints the uncovered bars black.
func Composite(dst *image.RGBA, sim image.Image) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)

	sb := sim.Bounds()
	box := Fit(sb.Dx(), sb.Dy(), Viewport{Width: bounds.Dx(), Height: bounds.Dy()})
	if box.Width == 0 || box.Height == 0 {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, box.Rect().Add(bounds.Min), sim, sb, xdraw.Src, nil)
}

// Frame renders the simulation image. The returned image is reused by later
// calls.
func (rc *RayCaster) Frame(entities []*world.Entity, banners *graphics.BannerStack) *image.RGBA {
	if rc.frame == nil {
		rc.frame = image.NewRGBA(image.Rect(0, 0, rc.simWidth, rc.simHeight))
	}
	rc.RenderFrame(rc.frame, entities, banners)
	return rc.frame
}

// Render renders a frame and composites it into a vp sized image. The
// returned image is reused by later calls.
func (rc *RayCaster) Render(vp Viewport, entities []*world.Entity, banners *graphics.BannerStack) *image.RGBA {
	frame := rc.Frame(entities, banners)
	vp.Width, vp.Height = mathutil.IntMax(vp.Width, 0), mathutil.IntMax(vp.Height, 0)
	if rc.output == nil || rc.output.Bounds().Dx() != vp.Width || rc.output.Bounds().Dy() != vp.Height {
		rc.output = image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	}
	Composite(rc.output, frame)
	return rc.output
}
