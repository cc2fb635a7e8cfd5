package simulation

import (
	"time"

	"github.com/lao-tseu-is-alive/go-flock/pkg/bounce"
	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// FlockActor owns the authoritative flock and the engine that moves it.
// Every mutation goes through its mailbox, so the engine never sees two
// callers at once.
type FlockActor struct {
	cfg    *Config
	engine *flock.Engine
	boids  []flock.Boid

	// bounce mode
	bouncers []bounce.Boid
	swarm    *bounce.Swarm

	// Communication with UI, may be nil when running headless
	snapshotCh chan<- *Snapshot
	steps      uint64

	// --- Benchmark Stats ---
	stepCount   int
	stepTime    time.Duration
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor creates the actor; the population is spawned on PostStart.
func NewFlockActor(snapshotCh chan<- *Snapshot, cfg *Config) *FlockActor {
	return &FlockActor{
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (f *FlockActor) PreStart(ctx *actor.Context) error {
	f.engine = flock.New(f.cfg.EngineOptions()...)
	for _, t := range f.cfg.Targets {
		f.engine.AddSteeringTarget(t)
	}
	return nil
}

func (f *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		f.spawn()
		ctx.Logger().Infof("Flock started: %d boids, bounce=%t, workers=%d",
			f.cfg.NumBoids, f.cfg.Bounce, f.cfg.Workers)

	// The main simulation step, driven by the game loop or the headless runner
	case *durationpb.Duration:
		f.step(TickSeconds(msg))
		f.logBenchmarks(ctx)
		f.pushSnapshot()

	case *structpb.Struct:
		p, err := ApplyParamsUpdate(f.engine.Params(), msg)
		if err != nil {
			ctx.Logger().Warnf("ignoring params update: %v", err)
			return
		}
		f.engine.SetParams(p)

	case *structpb.ListValue:
		t, err := ParseTarget(msg)
		if err != nil {
			ctx.Logger().Warnf("ignoring target: %v", err)
			return
		}
		f.engine.AddSteeringTarget(t)

	case *emptypb.Empty:
		ctx.Response(wrapperspb.Bytes(EncodeSnapshot(f.buildSnapshot())))

	default:
		ctx.Unhandled()
	}
}

func (f *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock stopped after %d steps", f.steps)
	return nil
}

func (f *FlockActor) spawn() {
	rnd := f.cfg.SpawnRandom()
	if f.cfg.Bounce {
		f.bouncers, f.swarm = SpawnBounce(f.cfg, rnd)
		return
	}
	f.boids = SpawnFlock(f.cfg, rnd)
}

func (f *FlockActor) step(dt float32) {
	start := time.Now()
	if f.cfg.Bounce {
		f.swarm.Simulate(f.bouncers, dt)
	} else {
		f.engine.Step(f.boids, dt)
	}
	f.steps++
	f.stepCount++
	f.stepTime += time.Since(start)
}

func (f *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(f.lastLogTime) >= time.Second {
		var avg time.Duration
		if f.stepCount > 0 {
			avg = f.stepTime / time.Duration(f.stepCount)
		}
		ctx.Logger().Infof("📊 STEP RATE: %d/sec (avg %s) | Boids: %d | Targets: %d",
			f.stepCount, avg, f.population(), len(f.engine.Targets()))
		f.stepCount = 0
		f.stepTime = 0
		f.lastLogTime = time.Now()
	}
}

func (f *FlockActor) population() int {
	if f.cfg.Bounce {
		return len(f.bouncers)
	}
	return len(f.boids)
}

func (f *FlockActor) pushSnapshot() {
	if f.snapshotCh == nil {
		return
	}
	select {
	case f.snapshotCh <- f.buildSnapshot():
	default:
		// UI busy, skip frame
	}
}

// buildSnapshot copies the state out so the receiver never aliases the flock.
func (f *FlockActor) buildSnapshot() *Snapshot {
	if f.cfg.Bounce {
		return NewBounceSnapshot(f.steps, f.bouncers, f.engine.Targets())
	}
	return NewSnapshot(f.steps, f.boids, f.engine.Targets())
}
