package graphics

import (
	"image"
	"image/color"
	"testing"
)

func newTestBanner() *Banner {
	return NewBanner(solidImage(color.White, 2, 2), 0, 0, 0.1, 0.1)
}

func assertZOrder(t *testing.T, s *BannerStack) {
	t.Helper()
	for i, b := range s.All() {
		if b.Z() != i {
			t.Errorf("banner at index %d has Z %d", i, b.Z())
		}
	}
}

func TestBannerStack_Add(t *testing.T) {
	s := NewBannerStack()
	a, b := newTestBanner(), newTestBanner()

	s.Add(a)
	s.Add(b)
	s.Add(a) // duplicate

	if s.Len() != 2 {
		t.Fatalf("expected 2 banners, got %d", s.Len())
	}
	if a.Z() != 0 || b.Z() != 1 {
		t.Errorf("unexpected z order: a=%d b=%d", a.Z(), b.Z())
	}
}

func TestBannerStack_Insert(t *testing.T) {
	s := NewBannerStack()
	a, b, c, d := newTestBanner(), newTestBanner(), newTestBanner(), newTestBanner()
	s.Add(a)
	s.Add(b)

	s.Insert(c, 0)
	if s.All()[0] != c {
		t.Errorf("expected c at bottom")
	}

	s.Insert(d, 42)
	if s.All()[s.Len()-1] != d {
		t.Errorf("out-of-range insert should append")
	}
	assertZOrder(t, s)
}

func TestBannerStack_Move(t *testing.T) {
	s := NewBannerStack()
	a, b, c := newTestBanner(), newTestBanner(), newTestBanner()
	s.Add(a)
	s.Add(b)
	s.Add(c)

	if !s.Move(0, 2) {
		t.Fatal("expected move to succeed")
	}
	want := []*Banner{b, c, a}
	for i, banner := range s.All() {
		if banner != want[i] {
			t.Errorf("index %d holds the wrong banner", i)
		}
	}
	assertZOrder(t, s)

	if s.Move(0, 3) || s.Move(-1, 0) {
		t.Error("out-of-range moves should fail")
	}
}

func TestBannerStack_Remove(t *testing.T) {
	s := NewBannerStack()
	a, b := newTestBanner(), newTestBanner()
	s.Add(a)
	s.Add(b)

	if !s.Remove(a) {
		t.Fatal("expected remove to succeed")
	}
	if s.Remove(a) {
		t.Error("second remove should report false")
	}
	if b.Z() != 0 {
		t.Errorf("expected remaining banner to move to z 0, got %d", b.Z())
	}
}

func TestBanner_Rect(t *testing.T) {
	b := NewBanner(nil, 0.5, 0.25, 0.1, 0.5)
	got := b.Rect(200, 100)
	want := image.Rect(100, 25, 120, 75)
	if got != want {
		t.Errorf("Rect = %v, want %v", got, want)
	}
}

func TestBannerStack_DrawAscendingZ(t *testing.T) {
	s := NewBannerStack()
	red := NewBanner(solidImage(color.RGBA{255, 0, 0, 255}, 1, 1), 0, 0, 1, 1)
	blue := NewBanner(solidImage(color.RGBA{0, 0, 255, 255}, 1, 1), 0, 0, 1, 1)
	s.Add(red)
	s.Add(blue)

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s.Draw(dst, 4, 4)
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("topmost banner should win, got %v", got)
	}

	s.Move(1, 0)
	s.Draw(dst, 4, 4)
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("after reordering red should be on top, got %v", got)
	}
}
