package game

import (
	"math"

	"rayengine/internal/mathutil"
)

// FirstPersonCamera is a position and heading on the map. Angles grow
// clockwise on screen because world y points down.
type FirstPersonCamera struct {
	X, Y  float64
	Angle float64 // radians, [0, 2π)
}

// GetForwardX returns the X component of the forward direction vector
func (c *FirstPersonCamera) GetForwardX() float64 {
	return math.Cos(c.Angle)
}

// GetForwardY returns the Y component of the forward direction vector
func (c *FirstPersonCamera) GetForwardY() float64 {
	return math.Sin(c.Angle)
}

// GetRightX returns the X component of the right direction vector
func (c *FirstPersonCamera) GetRightX() float64 {
	return -math.Sin(c.Angle)
}

// GetRightY returns the Y component of the right direction vector
func (c *FirstPersonCamera) GetRightY() float64 {
	return math.Cos(c.Angle)
}

// GetPosition returns the camera's current position
func (c *FirstPersonCamera) GetPosition() (float64, float64) {
	return c.X, c.Y
}

// SetPosition sets the camera's position
func (c *FirstPersonCamera) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}

// GetAngle returns the heading in radians.
func (c *FirstPersonCamera) GetAngle() float64 {
	return c.Angle
}

// Rotate turns the camera by angle radians.
func (c *FirstPersonCamera) Rotate(angle float64) {
	c.Angle = mathutil.NormalizeAngleRad(c.Angle + angle)
}

// SetAngleDegrees sets the heading in degrees.
func (c *FirstPersonCamera) SetAngleDegrees(deg float64) {
	c.Angle = mathutil.NormalizeAngleRad(mathutil.DegToRad(deg))
}

// AddAngleDegrees turns the camera by deg degrees.
func (c *FirstPersonCamera) AddAngleDegrees(deg float64) {
	c.Rotate(mathutil.DegToRad(deg))
}

// AngleDegrees returns the heading in degrees.
func (c *FirstPersonCamera) AngleDegrees() float64 {
	return mathutil.RadToDeg(c.Angle)
}
