package graphics

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Banner is a screen-space overlay. Position and size are fractions of the
// view, so a banner at (0.5, 0.5) stays centred whatever the resolution.
type Banner struct {
	X, Y float64
	W, H float64

	img image.Image
	z   int
}

// NewBanner creates a banner from an already decoded image.
func NewBanner(img image.Image, x, y, w, h float64) *Banner {
	return &Banner{X: x, Y: y, W: w, H: h, img: img}
}

// LoadBanner reads the banner image from disk at its native size.
func LoadBanner(path string, x, y, w, h float64) *Banner {
	return NewBanner(LoadImage(path, DefaultSize), x, y, w, h)
}

// SetImage swaps the banner picture.
func (b *Banner) SetImage(img image.Image) {
	b.img = img
}

// Image returns the banner picture.
func (b *Banner) Image() image.Image {
	return b.img
}

// Z is the draw-order index; lower values draw first.
func (b *Banner) Z() int {
	return b.z
}

// Rect converts the fractional placement into pixels for a view of w×h.
func (b *Banner) Rect(w, h int) image.Rectangle {
	sx := int(b.X * float64(w))
	sy := int(b.Y * float64(h))
	sw := int(b.W * float64(w))
	sh := int(b.H * float64(h))
	return image.Rect(sx, sy, sx+sw, sy+sh)
}

// Draw scales the banner into its rectangle on a w×h view.
func (b *Banner) Draw(dst draw.Image, w, h int) {
	if b.img == nil {
		return
	}
	r := b.Rect(w, h)
	if r.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, r, b.img, b.img.Bounds(), xdraw.Over, nil)
}

// BannerStack keeps banners in draw order. After every mutation each banner's
// Z equals its index.
type BannerStack struct {
	banners []*Banner
}

// NewBannerStack creates an empty stack.
func NewBannerStack() *BannerStack {
	return &BannerStack{}
}

// Add appends b on top. Adding a banner already in the stack is a no-op.
func (s *BannerStack) Add(b *Banner) {
	if s.Contains(b) {
		return
	}
	s.banners = append(s.banners, b)
	s.reindex()
}

// Insert places b at index z. An out-of-range z appends instead.
func (s *BannerStack) Insert(b *Banner, z int) {
	if s.Contains(b) {
		return
	}
	if z < 0 || z > len(s.banners) {
		s.banners = append(s.banners, b)
	} else {
		s.banners = append(s.banners, nil)
		copy(s.banners[z+1:], s.banners[z:])
		s.banners[z] = b
	}
	s.reindex()
}

// Move relocates the banner at z to targetZ. It returns false and changes
// nothing when either index is out of range.
func (s *BannerStack) Move(z, targetZ int) bool {
	n := len(s.banners)
	if z < 0 || z >= n || targetZ < 0 || targetZ >= n {
		return false
	}
	b := s.banners[z]
	s.banners = append(s.banners[:z], s.banners[z+1:]...)
	s.banners = append(s.banners, nil)
	copy(s.banners[targetZ+1:], s.banners[targetZ:])
	s.banners[targetZ] = b
	s.reindex()
	return true
}

// Remove deletes b, reporting whether it was present.
func (s *BannerStack) Remove(b *Banner) bool {
	for i, cur := range s.banners {
		if cur == b {
			s.banners = append(s.banners[:i], s.banners[i+1:]...)
			s.reindex()
			return true
		}
	}
	return false
}

// Contains reports whether b is in the stack.
func (s *BannerStack) Contains(b *Banner) bool {
	for _, cur := range s.banners {
		if cur == b {
			return true
		}
	}
	return false
}

// Len is the number of banners.
func (s *BannerStack) Len() int {
	return len(s.banners)
}

// All returns the banners in ascending Z. The slice must not be modified.
func (s *BannerStack) All() []*Banner {
	return s.banners
}

// Draw composites every banner in ascending Z.
func (s *BannerStack) Draw(dst draw.Image, w, h int) {
	for _, b := range s.banners {
		b.Draw(dst, w, h)
	}
}

func (s *BannerStack) reindex() {
	for i, b := range s.banners {
		b.z = i
	}
}
