// Package bounce moves boids along straight lines inside an axis-aligned
// rectangle, reflecting them off its edges. There is no flocking here: it is
// the lightweight motion model used when the demo runs in bounce mode.
package bounce

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Boid is a particle of the bounce model. Direction holds a ±1 sign per axis
// and Angle, in degrees, splits the speed between X (cosine) and Y (sine).
type Boid struct {
	Position  geometry.Vector3
	Velocity  geometry.Vector3
	Direction geometry.Vector3
	Angle     float32
}

// NewBoid returns a boid heading towards +X/+Y at the given angle.
func NewBoid(position, velocity geometry.Vector3, angle float32) Boid {
	return Boid{
		Position:  position,
		Velocity:  velocity,
		Direction: geometry.Vector3{X: 1, Y: 1},
		Angle:     angle,
	}
}

// Heading returns the displacement per second the boid currently follows.
func (b *Boid) Heading() geometry.Vector3 {
	rad := float64(b.Angle) * math.Pi / 180
	return geometry.Vector3{
		X: b.Velocity.X * float32(math.Cos(rad)) * b.Direction.X,
		Y: b.Velocity.Y * float32(math.Sin(rad)) * b.Direction.Y,
	}
}

// Swarm holds the bounds of the box.
type Swarm struct {
	width, height float32
}

// SetBounds sets the box to [0, width] x [0, height].
func (s *Swarm) SetBounds(width, height uint32) {
	s.width = float32(width)
	s.height = float32(height)
}

// Bounds returns the box size.
func (s *Swarm) Bounds() (width, height float32) {
	return s.width, s.height
}

// Simulate advances every boid by dt seconds. A boid crossing an edge is put
// back on it and its direction on that axis flips.
func (s *Swarm) Simulate(boids []Boid, dt float32) {
	for i := range boids {
		b := &boids[i]
		next := b.Position.Add(b.Heading().Mul(dt))

		next.X, b.Direction.X = reflect(next.X, s.width, b.Direction.X)
		next.Y, b.Direction.Y = reflect(next.Y, s.height, b.Direction.Y)

		b.Position.X, b.Position.Y = next.X, next.Y
	}
}

func reflect(v, limit, dir float32) (float32, float32) {
	if v < 0 {
		return 0, -dir
	}
	if v > limit {
		return limit, -dir
	}
	return v, dir
}
