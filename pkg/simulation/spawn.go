package simulation

import (
	"github.com/lao-tseu-is-alive/go-flock/pkg/bounce"
	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// SpawnRandom returns the source used to place the initial population.
// It is independent of the engine's own source so both stay reproducible.
func (c *Config) SpawnRandom() flock.Random {
	if c.Seed == 0 {
		return flock.GlobalRandom()
	}
	return flock.NewSeededRandom(c.Seed + 1)
}

// SpawnFlock scatters NumBoids boids over the world box with random headings
// of at most InitialSpeed. A planar world keeps every boid at z = 0.
func SpawnFlock(c *Config, rnd flock.Random) []flock.Boid {
	boids := make([]flock.Boid, c.NumBoids)
	s := c.InitialSpeed
	for i := range boids {
		pos := geometry.NewVector(rnd.Uniform(0, c.WorldWidth), rnd.Uniform(0, c.WorldHeight), 0)
		vel := geometry.NewVector(rnd.Uniform(-s, s), rnd.Uniform(-s, s), 0)
		if !c.Planar() {
			pos.Z = rnd.Uniform(0, c.WorldDepth)
			vel.Z = rnd.Uniform(-s, s)
		}
		boids[i] = flock.NewBoid(pos, vel.ClampLen(s))
	}
	return boids
}

// SpawnBounce places NumBoids bouncing boids, all at InitialSpeed on both axes
// with a random angle in [0, 90) degrees.
func SpawnBounce(c *Config, rnd flock.Random) ([]bounce.Boid, *bounce.Swarm) {
	sw := &bounce.Swarm{}
	sw.SetBounds(uint32(c.WorldWidth), uint32(c.WorldHeight))

	boids := make([]bounce.Boid, c.NumBoids)
	speed := geometry.NewVector(c.InitialSpeed, c.InitialSpeed, 0)
	for i := range boids {
		pos := geometry.NewVector(rnd.Uniform(0, c.WorldWidth), rnd.Uniform(0, c.WorldHeight), 0)
		boids[i] = bounce.NewBoid(pos, speed, rnd.Uniform(0, 90))
	}
	return boids, sw
}
