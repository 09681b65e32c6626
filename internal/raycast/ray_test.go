package raycast

import (
	"math"
	"testing"
)

const tolerance = 1e-3

// mockGrid implements TileGrid for testing.
type mockGrid struct {
	tiles    [][]int
	tileSize int
}

func (m *mockGrid) Bounds() (float64, float64) {
	return float64(len(m.tiles[0]) * m.tileSize), float64(len(m.tiles) * m.tileSize)
}

func (m *mockGrid) TileSize() int {
	return m.tileSize
}

func (m *mockGrid) code(x, y float64) int {
	row := int(math.Floor(y / float64(m.tileSize)))
	col := int(math.Floor(x / float64(m.tileSize)))
	if row < 0 || row >= len(m.tiles) || col < 0 || col >= len(m.tiles[0]) {
		return 0
	}
	return m.tiles[row][col]
}

func (m *mockGrid) PointInSolidTile(x, y float64) bool {
	return m.code(x, y) != 0
}

func (m *mockGrid) WallCodeAt(x, y float64) int {
	return m.code(x, y)
}

func roomGrid() *mockGrid {
	return &mockGrid{
		tileSize: 64,
		tiles: [][]int{
			{1, 1, 1},
			{1, 0, 2},
			{1, 1, 1},
		},
	}
}

func sweepAngles(n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	return angles
}

func TestCast_OpenGridNeverHits(t *testing.T) {
	grid := &mockGrid{tileSize: 64, tiles: make([][]int, 5)}
	for i := range grid.tiles {
		grid.tiles[i] = make([]int, 5)
	}

	origins := []Point{{1, 1}, {160, 160}, {319, 2}, {64, 64}, {200.5, 77.25}}
	for _, origin := range origins {
		for _, angle := range sweepAngles(72) {
			ray := Cast(angle, origin, grid)
			if ray.HasHit || !math.IsInf(ray.Length, 1) {
				t.Fatalf("origin %v angle %.3f: expected no hit, got %+v", origin, angle, ray)
			}
			if ray.Vertical || ray.Horizontal || ray.Inverted || ray.TileCode != 0 {
				t.Fatalf("origin %v angle %.3f: no-hit ray has flags set: %+v", origin, angle, ray)
			}
		}
	}
}

func TestCast_AxisAligned(t *testing.T) {
	grid := roomGrid()
	origin := Point{96, 96}

	tests := []struct {
		name       string
		angle      float64
		vertical   bool
		inverted   bool
		tileCode   int
		wantLength float64
	}{
		{"east", 0, true, false, 2, 32},
		{"south", math.Pi / 2, false, true, 1, 32},
		{"west", math.Pi, true, true, 1, 32},
		{"north", 3 * math.Pi / 2, false, false, 1, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := Cast(tt.angle, origin, grid)
			if !ray.HasHit {
				t.Fatal("expected a hit")
			}
			if math.Abs(ray.Length-tt.wantLength) > tolerance {
				t.Errorf("length = %v, want %v", ray.Length, tt.wantLength)
			}
			if ray.Vertical != tt.vertical || ray.Horizontal == tt.vertical {
				t.Errorf("family: vertical=%v horizontal=%v, want vertical=%v", ray.Vertical, ray.Horizontal, tt.vertical)
			}
			if ray.Inverted != tt.inverted {
				t.Errorf("inverted = %v, want %v", ray.Inverted, tt.inverted)
			}
			if ray.TileCode != tt.tileCode {
				t.Errorf("tile code = %d, want %d", ray.TileCode, tt.tileCode)
			}
		})
	}
}

func TestCast_EastFromCentre(t *testing.T) {
	ray := Cast(0, Point{96, 96}, roomGrid())

	if !ray.Vertical || ray.Inverted {
		t.Fatalf("expected a non-inverted vertical hit, got %+v", ray)
	}
	if math.Abs(ray.Hit.X-128) > tolerance || math.Abs(ray.Hit.Y-96) > tolerance {
		t.Errorf("hit = %v, want (128, 96)", ray.Hit)
	}
}

func TestCast_MirroringRule(t *testing.T) {
	grid := roomGrid()
	origins := []Point{{96, 96}, {70, 80}, {120, 125}}

	for _, origin := range origins {
		for _, angle := range sweepAngles(360) {
			ray := Cast(angle, origin, grid)
			if !ray.HasHit {
				t.Fatalf("origin %v angle %.4f: enclosed room should always hit", origin, angle)
			}
			if ray.Vertical == ray.Horizontal {
				t.Fatalf("origin %v angle %.4f: exactly one family must be set", origin, angle)
			}

			var want bool
			if ray.Horizontal {
				want = angle > 0 && angle < math.Pi
			} else {
				want = angle > math.Pi/2 && angle < 3*math.Pi/2
			}
			if ray.Inverted != want {
				t.Errorf("origin %v angle %.4f: inverted = %v, want %v", origin, angle, ray.Inverted, want)
			}
		}
	}
}

func TestCast_LengthMatchesHit(t *testing.T) {
	grid := roomGrid()
	origin := Point{80, 100}

	for _, angle := range sweepAngles(90) {
		ray := Cast(angle, origin, grid)
		if math.Abs(ray.Length-Distance(origin, ray.Hit)) > 1e-9 {
			t.Errorf("angle %.3f: length %v does not match hit distance", angle, ray.Length)
		}
		if !grid.PointInSolidTile(ray.Hit.X, ray.Hit.Y) {
			t.Errorf("angle %.3f: hit %v is not inside a solid tile", angle, ray.Hit)
		}
	}
}

func TestCast_ExitsOpenSide(t *testing.T) {
	// the east side of the middle row is open
	grid := &mockGrid{
		tileSize: 64,
		tiles: [][]int{
			{1, 1, 1},
			{1, 0, 0},
			{1, 1, 1},
		},
	}
	ray := Cast(0, Point{96, 96}, grid)
	if ray.HasHit || !math.IsInf(ray.Length, 1) {
		t.Errorf("ray leaving the grid should not hit, got %+v", ray)
	}
}

func TestRay_TextureColumn(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		want int
	}{
		{"vertical", Ray{HasHit: true, Vertical: true, Hit: Point{128, 96}}, 32},
		{"vertical inverted", Ray{HasHit: true, Vertical: true, Inverted: true, Hit: Point{63.9999, 96}}, 31},
		{"horizontal", Ray{HasHit: true, Horizontal: true, Hit: Point{100.7, 128}}, 36},
		{"horizontal inverted", Ray{HasHit: true, Horizontal: true, Inverted: true, Hit: Point{64, 128}}, 63},
		{"no hit", Ray{Length: math.Inf(1)}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ray.TextureColumn(64); got != tt.want {
				t.Errorf("TextureColumn = %d, want %d", got, tt.want)
			}
		})
	}
}
