package graphics

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawTextBox writes str in white on a black box whose top-left corner is (x, y).
// It returns the box it filled.
func DrawTextBox(dst draw.Image, str string, x, y int) image.Rectangle {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	fHeight := metrics.Height.Ceil()
	fWidth := font.MeasureString(face, str).Ceil()

	offset := fHeight / 2
	box := image.Rect(x, y, x+fWidth+fHeight, y+fHeight*2)
	draw.Draw(dst, box, image.NewUniform(color.Black), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x+offset, y+offset+metrics.Ascent.Ceil()),
	}
	d.DrawString(str)
	return box
}
