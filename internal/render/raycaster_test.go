package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"rayengine/internal/graphics"
	"rayengine/internal/mathutil"
	"rayengine/internal/world"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

type fakeViewer struct {
	x, y, angle float64
}

func (v fakeViewer) GetPosition() (float64, float64) { return v.x, v.y }
func (v fakeViewer) GetAngle() float64               { return v.angle }

func newTestGrid(t *testing.T, tiles [][]int) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(tiles, 64)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if err := g.AddTileBehavior(1, graphics.NewSolidTexture(white, 64)); err != nil {
		t.Fatalf("AddTileBehavior: %v", err)
	}
	return g
}

func roomGrid(t *testing.T) *world.Grid {
	return newTestGrid(t, [][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})
}

func TestNewRayCaster_Defaults(t *testing.T) {
	rc := NewRayCaster(roomGrid(t))

	if rc.FOV() != 60 {
		t.Errorf("FOV = %d, want 60", rc.FOV())
	}
	if rc.RaysToCast() != 200 {
		t.Errorf("rays = %d, want 200", rc.RaysToCast())
	}
	if w, h := rc.SimSize(); w != 200 || h != 150 {
		t.Errorf("SimSize = %dx%d, want 200x150", w, h)
	}
	if w, h := rc.AspectRatio(); w != 4 || h != 3 {
		t.Errorf("AspectRatio = %d:%d, want 4:3", w, h)
	}
}

func TestRayCaster_SetFOV(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{60, 60},
		{61, 62},
		{359, 360},
		{360, 360},
		{361, 2},
		{720, 0},
		{-60, 300},
		{90, 90},
	}
	rc := NewRayCaster(roomGrid(t))
	for _, tt := range tests {
		rc.SetFOV(tt.in)
		if got := rc.FOV(); got != tt.want {
			t.Errorf("SetFOV(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRayCaster_Resolution(t *testing.T) {
	rc := NewRayCaster(roomGrid(t))

	if err := rc.SetRaysToCast(0); err == nil {
		t.Error("expected error for zero rays")
	}
	if err := rc.SetRaysToCast(-5); err == nil {
		t.Error("expected error for negative rays")
	}
	if err := rc.SetAspectRatio(0, 9); err == nil {
		t.Error("expected error for zero aspect width")
	}

	if err := rc.SetAspectRatio(16, 9); err != nil {
		t.Fatalf("SetAspectRatio: %v", err)
	}
	if err := rc.SetRaysToCast(320); err != nil {
		t.Fatalf("SetRaysToCast: %v", err)
	}
	if w, h := rc.SimSize(); w != 320 || h != 180 {
		t.Errorf("SimSize = %dx%d, want 320x180", w, h)
	}
	if len(rc.Rays()) != 320 {
		t.Errorf("expected 320 rays, got %d", len(rc.Rays()))
	}
}

func TestRayCaster_ColumnHeight(t *testing.T) {
	rc := NewRayCaster(roomGrid(t)) // 200x150, 4:3

	if got := rc.ColumnHeight(64); got != 200 {
		t.Errorf("ColumnHeight(64) = %d, want 200", got)
	}
	if got := rc.ColumnHeight(math.Inf(1)); got != 0 {
		t.Errorf("ColumnHeight(+Inf) = %d, want 0", got)
	}

	prev := rc.ColumnHeight(1)
	for length := 1.5; length < 5000; length *= 1.07 {
		h := rc.ColumnHeight(length)
		if h%2 != 0 {
			t.Fatalf("ColumnHeight(%v) = %d is odd", length, h)
		}
		if h > prev {
			t.Fatalf("ColumnHeight(%v) = %d grew from %d", length, h, prev)
		}
		prev = h
	}
}

func TestRayCaster_SweepIsCentred(t *testing.T) {
	rc := NewRayCaster(roomGrid(t))
	rc.SetFOV(60)
	if err := rc.SetRaysToCast(7); err != nil {
		t.Fatalf("SetRaysToCast: %v", err)
	}
	rc.Update(fakeViewer{96, 96, 0})

	rays := rc.Rays()
	inc := mathutil.DegToRad(60) / 7
	for i, ray := range rays {
		want := mathutil.NormalizeAngleRad(inc * float64(i-3))
		if math.Abs(ray.Angle-want) > 1e-9 {
			t.Errorf("ray %d angle = %v, want %v", i, ray.Angle, want)
		}
	}
	if rays[3].Angle != 0 {
		t.Errorf("centre ray angle = %v, want exactly 0", rays[3].Angle)
	}
}

func TestRayCaster_ParallelCastMatchesSerial(t *testing.T) {
	serial := NewRayCaster(roomGrid(t))
	parallel := NewRayCaster(roomGrid(t))
	parallel.SetWorkers(4)

	for _, angle := range []float64{0, 1, 2.5, 4, 5.9} {
		v := fakeViewer{100, 90, angle}
		serial.Update(v)
		parallel.Update(v)
		for i := range serial.Rays() {
			if serial.Rays()[i] != parallel.Rays()[i] {
				t.Fatalf("angle %v ray %d: parallel %+v, serial %+v", angle, i, parallel.Rays()[i], serial.Rays()[i])
			}
		}
	}
}

func TestRayCaster_ThreeByThreeScenario(t *testing.T) {
	rc := NewRayCaster(roomGrid(t))
	rc.SetFOV(60)
	if err := rc.SetRaysToCast(7); err != nil {
		t.Fatalf("SetRaysToCast: %v", err)
	}
	rc.Update(fakeViewer{96, 96, 0})

	centre := rc.Rays()[3]
	if !centre.HasHit || !centre.Vertical || centre.Horizontal {
		t.Fatalf("expected a vertical hit, got %+v", centre)
	}
	if centre.Inverted {
		t.Error("centre ray should not be inverted")
	}
	if math.Abs(centre.Hit.X-128) > 1e-6 || math.Abs(centre.Hit.Y-96) > 1e-6 {
		t.Errorf("hit = %v, want (128, 96)", centre.Hit)
	}
	if math.Abs(centre.Length-32) > 1e-6 {
		t.Errorf("length = %v, want 32", centre.Length)
	}

	frame := rc.Frame(nil, nil)
	_, h := rc.SimSize()
	if got := frame.RGBAAt(3, h/2); got != white {
		t.Errorf("vertical wall should be drawn unshaded, got %v", got)
	}
}

func TestRayCaster_HorizontalWallIsShaded(t *testing.T) {
	rc := NewRayCaster(roomGrid(t))
	if err := rc.SetRaysToCast(7); err != nil {
		t.Fatalf("SetRaysToCast: %v", err)
	}
	rc.Update(fakeViewer{96, 96, math.Pi / 2})

	if !rc.Rays()[3].Horizontal {
		t.Fatalf("expected a horizontal hit facing south")
	}
	frame := rc.Frame(nil, nil)
	_, h := rc.SimSize()
	got := frame.RGBAAt(3, h/2)
	if got.R >= 200 || got.R < 100 {
		t.Errorf("horizontal wall should be shaded, got %v", got)
	}
}

func TestRayCaster_NoHitShowsBackground(t *testing.T) {
	g := newTestGrid(t, [][]int{
		{0, 0, 0},
		{0, 0, 0},
	})
	rc := NewRayCaster(g)
	rc.SetBackground(graphics.NewSolidBackground(blue, green))
	if err := rc.SetRaysToCast(8); err != nil {
		t.Fatalf("SetRaysToCast: %v", err)
	}
	rc.Update(fakeViewer{96, 64, 0})

	for i, ray := range rc.Rays() {
		if ray.HasHit {
			t.Fatalf("ray %d should not hit in an open grid", i)
		}
	}
	frame := rc.Frame(nil, nil)
	if got := frame.RGBAAt(0, 0); got != blue {
		t.Errorf("top should be ceiling, got %v", got)
	}
	if got := frame.RGBAAt(7, 5); got != green {
		t.Errorf("bottom should be floor, got %v", got)
	}
}

func TestRayCaster_ProjectEntity(t *testing.T) {
	rc := NewRayCaster(roomGrid(t))
	rc.Update(fakeViewer{96, 96, 0})
	w, _ := rc.SimSize()

	ahead := world.NewEntity(120, 96, nil)
	p, ok := rc.ProjectEntity(ahead)
	if !ok {
		t.Fatal("entity straight ahead should project")
	}
	if p.ScreenX != w/2 {
		t.Errorf("ScreenX = %d, want %d", p.ScreenX, w/2)
	}
	if math.Abs(p.Depth-24) > 1e-9 {
		t.Errorf("Depth = %v, want 24", p.Depth)
	}
	if p.Size != rc.ColumnHeight(24) {
		t.Errorf("Size = %d, want %d", p.Size, rc.ColumnHeight(24))
	}

	// south is to the right when facing east
	right := world.NewEntity(120, 110, nil)
	if p, ok := rc.ProjectEntity(right); !ok || p.ScreenX <= w/2 {
		t.Errorf("entity to the right projected at %d (ok=%v)", p.ScreenX, ok)
	}
	left := world.NewEntity(120, 82, nil)
	if p, ok := rc.ProjectEntity(left); !ok || p.ScreenX >= w/2 {
		t.Errorf("entity to the left projected at %d (ok=%v)", p.ScreenX, ok)
	}

	if _, ok := rc.ProjectEntity(world.NewEntity(70, 96, nil)); ok {
		t.Error("entity behind the viewer should not project")
	}
	if _, ok := rc.ProjectEntity(world.NewEntity(96, 120, nil)); ok {
		t.Error("entity level with the viewer should not project")
	}

	hidden := world.NewEntity(120, 96, nil)
	hidden.Visible = false
	if _, ok := rc.ProjectEntity(hidden); ok {
		t.Error("invisible entity should not project")
	}
}

func TestRayCaster_ProjectEntityIsIdempotent(t *testing.T) {
	rc := NewRayCaster(roomGrid(t))
	rc.Update(fakeViewer{80, 100, 0.3})

	e := world.NewEntity(110, 105, nil)
	first, ok1 := rc.ProjectEntity(e)
	second, ok2 := rc.ProjectEntity(e)
	if ok1 != ok2 || first != second {
		t.Errorf("projection changed between calls: %+v vs %+v", first, second)
	}
}

func corridorCaster(t *testing.T) *RayCaster {
	t.Helper()
	g := newTestGrid(t, [][]int{
		{1, 1, 1, 1, 1, 1},
		{1, 0, 0, 2, 0, 1},
		{1, 1, 1, 1, 1, 1},
	})
	if err := g.AddTileBehavior(2, graphics.NewSolidTexture(blue, 64)); err != nil {
		t.Fatalf("AddTileBehavior: %v", err)
	}
	rc := NewRayCaster(g)
	rc.SetBackground(graphics.NewSolidBackground(black, black))
	if err := rc.SetRaysToCast(40); err != nil {
		t.Fatalf("SetRaysToCast: %v", err)
	}
	rc.Update(fakeViewer{96, 96, 0})
	return rc
}

func countColour(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestRayCaster_EntityOcclusion(t *testing.T) {
	rc := corridorCaster(t)
	tex := graphics.NewSolidTexture(red, 64)

	hidden := world.NewEntity(288, 96, tex)
	hidden.UpdateDistance(96, 96)
	frame := rc.Frame([]*world.Entity{hidden}, nil)
	if n := countColour(frame, red); n != 0 {
		t.Errorf("entity behind the wall drew %d pixels", n)
	}

	visible := world.NewEntity(150, 96, tex)
	visible.UpdateDistance(96, 96)
	frame = rc.Frame([]*world.Entity{visible}, nil)
	if n := countColour(frame, red); n == 0 {
		t.Fatal("entity in front of the wall was not drawn")
	}

	_, h := rc.SimSize()
	for j, ray := range rc.Rays() {
		drawn := false
		for y := 0; y < h; y++ {
			if frame.RGBAAt(j, y) == red {
				drawn = true
				break
			}
		}
		if drawn && visible.Distance() > ray.Length {
			t.Errorf("column %d drawn although the wall at %.1f is nearer", j, ray.Length)
		}
	}
}

func TestRayCaster_EntitiesDrawFarToNear(t *testing.T) {
	rc := corridorCaster(t)

	far := world.NewEntity(170, 96, graphics.NewSolidTexture(red, 64))
	near := world.NewEntity(140, 96, graphics.NewSolidTexture(green, 64))

	list := world.NewEntityList()
	list.Add(near)
	list.Add(far)
	list.ApplyPending()
	list.Update(0, 96, 96)

	frame := rc.Frame(list.All(), nil)
	w, h := rc.SimSize()
	if got := frame.RGBAAt(w/2, h/2); got != green {
		t.Errorf("nearer entity should be on top, got %v", got)
	}
}

func TestRayCaster_BannersDrawLast(t *testing.T) {
	rc := corridorCaster(t)

	e := world.NewEntity(140, 96, graphics.NewSolidTexture(green, 64))
	e.UpdateDistance(96, 96)

	banners := graphics.NewBannerStack()
	banners.Add(graphics.NewBanner(graphics.NewSolidTexture(red, 4).Image(), 0.25, 0.25, 0.5, 0.5))

	frame := rc.Frame([]*world.Entity{e}, banners)
	w, h := rc.SimSize()
	if got := frame.RGBAAt(w/2, h/2); got != red {
		t.Errorf("banner should cover the entity, got %v", got)
	}
	if got := frame.RGBAAt(w/2, 0); got == red {
		t.Error("banner drawn outside its rectangle")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want Letterbox
	}{
		{"exact", Viewport{800, 600}, Letterbox{Scale: 4, X: 0, Y: 0, Width: 800, Height: 600}},
		{"pillarbox", Viewport{1000, 600}, Letterbox{Scale: 4, X: 100, Y: 0, Width: 800, Height: 600}},
		{"letterbox", Viewport{800, 800}, Letterbox{Scale: 4, X: 0, Y: 100, Width: 800, Height: 600}},
		{"empty", Viewport{0, 600}, Letterbox{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(200, 150, tt.vp); got != tt.want {
				t.Errorf("Fit = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComposite(t *testing.T) {
	sim := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			sim.SetRGBA(x, y, white)
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, 10, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 10; x++ {
			dst.SetRGBA(x, y, blue)
		}
	}

	Composite(dst, sim)

	// scale 2: 8x6 image centred with 1px bars either side
	if got := dst.RGBAAt(0, 3); got != black {
		t.Errorf("left bar = %v, want black", got)
	}
	if got := dst.RGBAAt(9, 3); got != black {
		t.Errorf("right bar = %v, want black", got)
	}
	if got := dst.RGBAAt(1, 0); got != white {
		t.Errorf("image pixel = %v, want white", got)
	}
	if got := dst.RGBAAt(8, 5); got != white {
		t.Errorf("image pixel = %v, want white", got)
	}
}

func TestRayCaster_Render(t *testing.T) {
	rc := NewRayCaster(roomGrid(t))
	if err := rc.SetRaysToCast(40); err != nil {
		t.Fatalf("SetRaysToCast: %v", err)
	}
	rc.Update(fakeViewer{96, 96, 1.0})

	out := rc.Render(Viewport{Width: 160, Height: 200}, nil, nil)
	if b := out.Bounds(); b.Dx() != 160 || b.Dy() != 200 {
		t.Fatalf("output size = %v", b)
	}
	// 40x30 scaled by 4 is 160x120, leaving 40px bars top and bottom
	if got := out.RGBAAt(80, 10); got != black {
		t.Errorf("top bar = %v, want black", got)
	}
	if got := out.RGBAAt(80, 190); got != black {
		t.Errorf("bottom bar = %v, want black", got)
	}
	if got := out.RGBAAt(80, 100); got == black {
		t.Error("centre of the view should not be a bar")
	}
}
