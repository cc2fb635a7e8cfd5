package simulation

import (
	"github.com/lao-tseu-is-alive/go-flock/pkg/bounce"
	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// BoidState is what the renderer needs of a boid.
type BoidState struct {
	Position geometry.Vector3
	Velocity geometry.Vector3
}

// Snapshot is the state of the world after a step, pushed to the UI.
type Snapshot struct {
	Step    uint64
	Bounce  bool
	Boids   []BoidState
	Targets []geometry.Vector3
}

// NewSnapshot copies the flock state out, the snapshot never aliases boids.
func NewSnapshot(step uint64, boids []flock.Boid, targets []geometry.Vector3) *Snapshot {
	s := &Snapshot{
		Step:    step,
		Boids:   make([]BoidState, len(boids)),
		Targets: targets,
	}
	for i, b := range boids {
		s.Boids[i] = BoidState{Position: b.Position, Velocity: b.Velocity}
	}
	return s
}

// NewBounceSnapshot is NewSnapshot for the bounce model; velocities are the
// current headings.
func NewBounceSnapshot(step uint64, boids []bounce.Boid, targets []geometry.Vector3) *Snapshot {
	s := &Snapshot{
		Step:    step,
		Bounce:  true,
		Boids:   make([]BoidState, len(boids)),
		Targets: targets,
	}
	for i := range boids {
		s.Boids[i] = BoidState{Position: boids[i].Position, Velocity: boids[i].Heading()}
	}
	return s
}

// AverageSpeed returns the mean velocity length, 0 for an empty snapshot.
func (s *Snapshot) AverageSpeed() float32 {
	if len(s.Boids) == 0 {
		return 0
	}
	var sum float32
	for _, b := range s.Boids {
		sum += b.Velocity.Len()
	}
	return sum / float32(len(s.Boids))
}

// Centroid returns the mean position, the origin for an empty snapshot.
func (s *Snapshot) Centroid() geometry.Vector3 {
	if len(s.Boids) == 0 {
		return geometry.Zero
	}
	var sum geometry.Vector3
	for _, b := range s.Boids {
		sum = sum.Add(b.Position)
	}
	return sum.Mul(1 / float32(len(s.Boids)))
}
