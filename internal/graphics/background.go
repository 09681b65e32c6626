package graphics

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Background fills the area behind the walls: either a solid ceiling/floor
// pair split at the horizon, or a full image scaled to the view.
type Background struct {
	img image.Image

	// Ceiling and Floor are always set. For image backgrounds they are sampled
	// from the image so presentation layers have a representative colour.
	Ceiling color.RGBA
	Floor   color.RGBA
}

// NewSolidBackground creates a two-colour background.
func NewSolidBackground(ceiling, floor color.Color) *Background {
	return &Background{
		Ceiling: rgbaOf(ceiling),
		Floor:   rgbaOf(floor),
	}
}

// NewImageBackground wraps img. The ceiling colour is sampled at (w/2, h/4)
// and the floor at (w/2, 3h/4).
func NewImageBackground(img image.Image) *Background {
	b := img.Bounds()
	cx := b.Min.X + b.Dx()/2
	cy := b.Dy() / 4
	return &Background{
		img:     img,
		Ceiling: rgbaOf(img.At(cx, b.Min.Y+cy)),
		Floor:   rgbaOf(img.At(cx, b.Min.Y+cy*3)),
	}
}

// LoadBackground reads an image background. A missing file yields black.
func LoadBackground(path string) *Background {
	img, err := decodeFile(path)
	if err != nil {
		log.WithField("path", path).WithError(err).Warn("background unavailable, using black")
		return NewImageBackground(solidImage(color.Black, DefaultSize, DefaultSize))
	}
	return NewImageBackground(img)
}

// IsImage reports whether the background is image based.
func (bg *Background) IsImage() bool {
	return bg.img != nil
}

// Draw paints the background into r.
func (bg *Background) Draw(dst draw.Image, r image.Rectangle) {
	if bg.img != nil {
		xdraw.NearestNeighbor.Scale(dst, r, bg.img, bg.img.Bounds(), xdraw.Src, nil)
		return
	}
	horizon := r.Min.Y + r.Dy()/2
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, horizon), image.NewUniform(bg.Ceiling), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, horizon, r.Max.X, r.Max.Y), image.NewUniform(bg.Floor), image.Point{}, draw.Src)
}

func rgbaOf(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
