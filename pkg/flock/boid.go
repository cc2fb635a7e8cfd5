// Package flock implements the boids flocking engine: a voxel grid over
// agent positions, a perception query with a rear blind spot, the
// separation/alignment/cohesion/steering force composer and the integrator.
//
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// https://en.wikipedia.org/wiki/Boids
package flock

import "github.com/lao-tseu-is-alive/go-flock/pkg/geometry"

// Boid represents a single entity in the flock.
// The fields are exported so the renderer can read them after a step.
// Acceleration is scratch state recomputed on every step.
type Boid struct {
	Position     geometry.Vector3 `json:"position"`
	Velocity     geometry.Vector3 `json:"velocity"`
	Acceleration geometry.Vector3 `json:"acceleration"`
}

// NewBoid creates a boid with the given position and velocity and no acceleration.
func NewBoid(position, velocity geometry.Vector3) Boid {
	return Boid{Position: position, Velocity: velocity}
}

// Neighbor is one result of a perception query. It borrows the boid from the
// caller's slice and must not outlive the step it was produced in.
type Neighbor struct {
	Index     int
	Boid      *Boid
	Direction geometry.Vector3 // unit vector from the querying boid to the neighbor, zero on overlap
	Distance  float32
}
