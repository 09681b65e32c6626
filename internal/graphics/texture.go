package graphics

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// DefaultSize is the edge length used when a caller asks for a non-positive size.
const DefaultSize = 64

var (
	// ErrorColor fills placeholders for images that could not be read.
	ErrorColor = color.RGBA{255, 0, 255, 255}
	// ColumnErrorColor marks column requests outside the texture.
	ColumnErrorColor = color.RGBA{0, 255, 0, 255}

	// black at 50% opacity, premultiplied
	shadowColor = color.RGBA{0, 0, 0, 128}
)

// Texture is an immutable square image plus a darkened copy used for
// horizontally struck walls.
type Texture struct {
	size   int
	img    *image.RGBA
	shaded *image.RGBA
}

// NewSolidTexture builds a size×size texture filled with c.
func NewSolidTexture(c color.Color, size int) *Texture {
	if size <= 0 {
		size = DefaultSize
	}
	return newTexture(solidImage(c, size, size))
}

// NewTextureFromImage rescales src to size×size with nearest-neighbour sampling.
func NewTextureFromImage(src image.Image, size int) *Texture {
	if size <= 0 {
		size = DefaultSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(img, img.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return newTexture(img)
}

// LoadTexture reads an image file into a texture. Unreadable files produce an
// ErrorColor placeholder instead of an error.
func LoadTexture(path string, size int) *Texture {
	return NewTextureFromImage(LoadImage(path, size), size)
}

func newTexture(img *image.RGBA) *Texture {
	return &Texture{
		size:   img.Bounds().Dx(),
		img:    img,
		shaded: shade(img),
	}
}

func shade(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	draw.Draw(dst, dst.Bounds(), image.NewUniform(shadowColor), image.Point{}, draw.Over)
	return dst
}

func solidImage(c color.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// LoadImage decodes an image file. It never fails: a missing or undecodable
// file yields a fallbackSize square of ErrorColor.
func LoadImage(path string, fallbackSize int) image.Image {
	img, err := decodeFile(path)
	if err != nil {
		if fallbackSize <= 0 {
			fallbackSize = DefaultSize
		}
		log.WithField("path", path).WithError(err).Warn("image unavailable, using placeholder")
		return solidImage(ErrorColor, fallbackSize, fallbackSize)
	}
	return img
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Size is the edge length in pixels.
func (t *Texture) Size() int {
	return t.size
}

// Image returns the unshaded pixels. Callers must not modify it.
func (t *Texture) Image() *image.RGBA {
	return t.img
}

// ShadedImage returns the darkened pixels. Callers must not modify it.
func (t *Texture) ShadedImage() *image.RGBA {
	return t.shaded
}

// DrawColumn stretches the one-pixel-wide texture column into the dst
// rectangle (x, y, w, h). The rectangle is clipped to dst.
func (t *Texture) DrawColumn(dst draw.Image, column, x, y, w, h int) {
	t.drawColumn(dst, t.img, column, x, y, w, h, false)
}

// DrawShadedColumn is DrawColumn using the darkened texture.
func (t *Texture) DrawShadedColumn(dst draw.Image, column, x, y, w, h int) {
	t.drawColumn(dst, t.shaded, column, x, y, w, h, true)
}

func (t *Texture) drawColumn(dst draw.Image, src *image.RGBA, column, x, y, w, h int, shaded bool) {
	r := image.Rect(x, y, x+w, y+h)
	if r.Empty() {
		return
	}
	if column < 0 || column >= t.size {
		draw.Draw(dst, r, image.NewUniform(ColumnErrorColor), image.Point{}, draw.Src)
		if shaded {
			draw.Draw(dst, r, image.NewUniform(shadowColor), image.Point{}, draw.Over)
		}
		return
	}
	xdraw.NearestNeighbor.Scale(dst, r, src, image.Rect(column, 0, column+1, t.size), xdraw.Over, nil)
}

// DrawSprite draws the whole texture scaled into (x, y, w, h).
func (t *Texture) DrawSprite(dst draw.Image, x, y, w, h int) {
	xdraw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w, y+h), t.img, t.img.Bounds(), xdraw.Over, nil)
}

// DrawShadedSprite draws the whole darkened texture scaled into (x, y, w, h).
func (t *Texture) DrawShadedSprite(dst draw.Image, x, y, w, h int) {
	xdraw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w, y+h), t.shaded, t.shaded.Bounds(), xdraw.Over, nil)
}
