package mathutil

import (
	"math"

	"golang.org/x/exp/constraints"
)

const TwoPi = 2 * math.Pi

// DegToRad converts degrees of any numeric type to radians.
func DegToRad[T constraints.Integer | constraints.Float](deg T) float64 {
	return float64(deg) * (math.Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// NormalizeAngleRad keeps an angle inside [0, 2π).
func NormalizeAngleRad(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// a tiny negative remainder plus 2π rounds to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// NormalizeAngleDeg keeps an angle in degrees inside [0, 360).
func NormalizeAngleDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// NormalizeDegrees is the integer form of NormalizeAngleDeg.
func NormalizeDegrees(a int) int {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}

// Distance is the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
