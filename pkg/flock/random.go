package flock

import (
	"math/rand/v2"
	"sync"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// overlapPush is the magnitude of the random push applied to exactly coincident boids.
const overlapPush = 1000

// Random is a source of uniformly distributed values in [min, max).
type Random interface {
	Uniform(min, max float32) float32
}

// globalRandom draws from the math/rand/v2 top-level generator, which is safe
// for concurrent use.
type globalRandom struct{}

func (globalRandom) Uniform(min, max float32) float32 {
	return min + rand.Float32()*(max-min)
}

// GlobalRandom returns the source engines use when none is configured.
func GlobalRandom() Random { return globalRandom{} }

// SeededRandom is a reproducible Random for tests and recorded runs.
// It is not safe for concurrent use on its own.
type SeededRandom struct {
	r *rand.Rand
}

// NewSeededRandom returns a PCG-backed source seeded with seed.
func NewSeededRandom(seed uint64) *SeededRandom {
	return &SeededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededRandom) Uniform(min, max float32) float32 {
	return min + s.r.Float32()*(max-min)
}

type lockedRandom struct {
	mu  sync.Mutex
	src Random
}

func (l *lockedRandom) Uniform(min, max float32) float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uniform(min, max)
}

// randomUnit returns a random unit vector. Draws that are too short to
// normalize reliably are rejected.
func randomUnit(r Random) geometry.Vector3 {
	for range 8 {
		v := geometry.Vector3{
			X: r.Uniform(-1, 1),
			Y: r.Uniform(-1, 1),
			Z: r.Uniform(-1, 1),
		}
		if l := v.LenSqr(); l > 1e-6 && l <= 1 {
			return v.Normalize()
		}
	}
	return geometry.Vector3{X: 1}
}
