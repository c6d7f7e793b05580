// Package physics provides point-mass integration on the character grid.
package physics

import "math"

// Profile describes the forces applied to a body once per tick.
type Profile struct {
	Gravity float64 // Added to VY every tick (rows grow downward)
	Drag    float64 // Horizontal velocity multiplier per tick (1.0 = no drag)
}

// Body is a point moving in grid units per tick.
type Body struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
}

// Advance moves the body by its velocity, then applies gravity and drag.
func (b *Body) Advance(p Profile) {
	b.X += b.VX
	b.Y += b.VY
	b.VY += p.Gravity
	b.VX *= p.Drag
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 {
	return Distance(0, 0, b.VX, b.VY)
}

// Heading returns the direction of the body's velocity in [0, 2π).
func (b *Body) Heading() float64 {
	a := math.Atan2(b.VY, b.VX)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Polar converts an angle (radians) and speed into velocity components.
func Polar(angle, speed float64) (vx, vy float64) {
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Cell truncates a grid coordinate to its integer cell.
// Truncation (not flooring) matches how positions are recorded in trails.
func Cell(v float64) int {
	return int(v)
}
