package material

import (
	"image/color"
	"math"
)

// Color is an 8-bit RGBA value as laid out in the render buffer.
type Color struct {
	R, G, B, A uint8
}

// RGBA converts the color for use with image/color consumers.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Vec2 is a velocity in cells per tick.
type Vec2 struct {
	X, Y float32
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Particle is the value stored in every grid cell.
type Particle struct {
	ID ID
	// Lifetime is the remaining life in seconds for materials that age.
	Lifetime float32
	Velocity Vec2
	Color    Color
	// Updated marks a particle that has already been processed this tick.
	Updated bool
}

// IsEmpty reports whether the particle is the EMPTY sentinel.
func (p Particle) IsEmpty() bool { return p.ID == Empty }

// EmptyParticle returns the canonical EMPTY particle.
func EmptyParticle() Particle { return Particle{} }
