package flock

import (
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest slice of boids handed to one compose goroutine.
const minChunk = 64

// Engine steps a flock. It does not own the boids: the caller passes its slice
// to every Step call and must not touch it while Step runs.
type Engine struct {
	params  Params
	targets []geometry.Vector3
	grid    *Grid
	rnd     Random
	workers int
	planar  bool

	scratch []Neighbor
}

// Option configures an Engine.
type Option func(*Engine)

// WithParams replaces the default parameters.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithRandom sets the source used for the overlap push.
func WithRandom(r Random) Option {
	return func(e *Engine) { e.rnd = r }
}

// WithWorkers spreads the force pass over n goroutines. n <= 1 keeps it sequential.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithPlanar keeps the overlap push in the XY plane, for flocks living in 2D.
func WithPlanar() Option {
	return func(e *Engine) { e.planar = true }
}

// New creates an engine with DefaultParams and no steering targets.
func New(opts ...Option) *Engine {
	e := &Engine{
		params: DefaultParams(),
		grid:   NewGrid(),
		rnd:    globalRandom{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers > 1 {
		if _, ok := e.rnd.(globalRandom); !ok {
			e.rnd = &lockedRandom{src: e.rnd}
		}
	}
	return e
}

// Params returns a copy of the current parameters.
func (e *Engine) Params() Params { return e.params }

// SetParams replaces every parameter at once.
func (e *Engine) SetParams(p Params) { e.params = p }

func (e *Engine) PerceptionRadius() float32 { return e.params.PerceptionRadius }

// SetPerceptionRadius sets the perception radius. Zero is replaced by 1 when the next step starts.
func (e *Engine) SetPerceptionRadius(r float32) { e.params.PerceptionRadius = r }

func (e *Engine) BlindSpotAngle() float32 { return e.params.BlindSpotAngle }

// SetBlindSpotAngle sets the half-angle, in degrees, of the cone behind a moving boid it cannot see.
func (e *Engine) SetBlindSpotAngle(deg float32) { e.params.BlindSpotAngle = deg }

func (e *Engine) MaxAcceleration() float32 { return e.params.MaxAcceleration }

func (e *Engine) SetMaxAcceleration(a float32) { e.params.MaxAcceleration = a }

func (e *Engine) MaxVelocity() float32 { return e.params.MaxVelocity }

func (e *Engine) SetMaxVelocity(v float32) { e.params.MaxVelocity = v }

// Term returns weight and distance curve of force f.
func (e *Engine) Term(f Force) Term { return e.params.Term(f) }

// SetTerm sets weight and distance curve of force f.
func (e *Engine) SetTerm(f Force, t Term) { e.params.SetTerm(f, t) }

// AddSteeringTarget appends a fixed point every boid is attracted to.
func (e *Engine) AddSteeringTarget(pos geometry.Vector3) {
	e.targets = append(e.targets, pos)
}

// Targets returns a copy of the steering targets in insertion order.
func (e *Engine) Targets() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), e.targets...)
}

// Step runs one simulation step of dt seconds over boids:
//  1. rebuild the voxel grid from current positions,
//  2. compute every boid's acceleration from that frozen state,
//  3. integrate velocities and positions.
//
// Passes 2 and 3 stay separate so the result does not depend on slice order.
func (e *Engine) Step(boids []Boid, dt float32) {
	if len(boids) == 0 {
		return
	}
	assertFinite(boids)

	e.params.PerceptionRadius = e.params.effectiveRadius()
	p := e.params

	e.grid.Rebuild(boids, p.PerceptionRadius)

	if e.workers > 1 && len(boids) >= 2*minChunk {
		e.composeParallel(boids, &p)
	} else {
		e.scratch = e.composeRange(boids, 0, len(boids), &p, e.scratch)
	}

	for i := range boids {
		integrate(&boids[i], dt, p.MaxVelocity)
	}
}

// composeRange writes the acceleration of boids[from:to]. scratch is reused
// between queries and returned for the next call.
func (e *Engine) composeRange(boids []Boid, from, to int, p *Params, scratch []Neighbor) []Neighbor {
	for i := from; i < to; i++ {
		scratch = e.grid.Query(boids, i, p.PerceptionRadius, p.BlindSpotAngle, scratch[:0])
		boids[i].Acceleration = e.compose(boids, i, scratch, p, e.rnd)
	}
	// drop the borrowed pointers
	clear(scratch)
	return scratch[:0]
}

// composeParallel splits the force pass into contiguous chunks. Each goroutine
// only writes the Acceleration of its own chunk; positions and velocities are
// read-only until every goroutine is done.
func (e *Engine) composeParallel(boids []Boid, p *Params) {
	chunk := max((len(boids)+e.workers-1)/e.workers, minChunk)

	var g errgroup.Group
	g.SetLimit(e.workers)
	for from := 0; from < len(boids); from += chunk {
		to := min(from+chunk, len(boids))
		g.Go(func() error {
			e.composeRange(boids, from, to, p, nil)
			return nil
		})
	}
	_ = g.Wait()
}
