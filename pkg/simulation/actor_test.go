package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func startSystem(t *testing.T) (context.Context, actor.ActorSystem) {
	t.Helper()
	ctx := context.Background()
	system, err := actor.NewActorSystem("flock-test", actor.WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })
	return ctx, system
}

func askSnapshot(t *testing.T, ctx context.Context, pid *actor.PID) *Snapshot {
	t.Helper()
	resp, err := actor.Ask(ctx, pid, &emptypb.Empty{}, time.Second)
	require.NoError(t, err)
	b, ok := resp.(*wrapperspb.BytesValue)
	require.True(t, ok, "unexpected response %T", resp)
	s, err := DecodeSnapshot(b.GetValue())
	require.NoError(t, err)
	return s
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.NumBoids = 60
	cfg.Seed = 7
	cfg.WorldWidth = 200
	cfg.WorldHeight = 150
	return cfg
}

func TestFlockActor_SpawnsOnStart(t *testing.T) {
	ctx, system := startSystem(t)
	cfg := testConfig()
	cfg.Targets = []geometry.Vector3{{X: 10, Y: 20}}

	pid, err := system.Spawn(ctx, "flock", NewFlockActor(nil, cfg))
	require.NoError(t, err)

	s := askSnapshot(t, ctx, pid)
	assert.Zero(t, s.Step)
	assert.False(t, s.Bounce)
	require.Len(t, s.Boids, 60)
	for _, b := range s.Boids {
		assert.Zero(t, b.Position.Z)
		assert.GreaterOrEqual(t, b.Position.X, float32(0))
		assert.Less(t, b.Position.X, cfg.WorldWidth)
	}
	assert.Equal(t, cfg.Targets, s.Targets)
}

func TestFlockActor_TicksAdvanceAndPush(t *testing.T) {
	ctx, system := startSystem(t)
	snapshots := make(chan *Snapshot, 10)

	pid, err := system.Spawn(ctx, "flock", NewFlockActor(snapshots, testConfig()))
	require.NoError(t, err)

	before := askSnapshot(t, ctx, pid)
	for range 3 {
		require.NoError(t, actor.Tell(ctx, pid, NewTick(1.0/30)))
	}
	after := askSnapshot(t, ctx, pid)

	assert.Equal(t, uint64(3), after.Step)
	assert.NotEqual(t, before.Boids, after.Boids)

	require.Len(t, snapshots, 3)
	first := <-snapshots
	assert.Equal(t, uint64(1), first.Step)
}

func TestFlockActor_SameSeedSameRun(t *testing.T) {
	ctx, system := startSystem(t)

	var runs [2]*Snapshot
	for i, name := range []string{"flock-a", "flock-b"} {
		pid, err := system.Spawn(ctx, name, NewFlockActor(nil, testConfig()))
		require.NoError(t, err)
		for range 5 {
			require.NoError(t, actor.Tell(ctx, pid, NewTick(1.0/60)))
		}
		runs[i] = askSnapshot(t, ctx, pid)
	}
	assert.Equal(t, runs[0], runs[1])
}

func TestFlockActor_TargetsAndParams(t *testing.T) {
	ctx, system := startSystem(t)
	pid, err := system.Spawn(ctx, "flock", NewFlockActor(nil, testConfig()))
	require.NoError(t, err)

	require.NoError(t, actor.Tell(ctx, pid, NewTargetMessage(geometry.NewVector(5, 6, 0))))
	bad, err := structpb.NewList([]interface{}{"x"})
	require.NoError(t, err)
	require.NoError(t, actor.Tell(ctx, pid, bad))

	update, err := structpb.NewStruct(map[string]interface{}{"maxVelocity": 0})
	require.NoError(t, err)
	require.NoError(t, actor.Tell(ctx, pid, update))
	require.NoError(t, actor.Tell(ctx, pid, NewTick(0.1)))

	s := askSnapshot(t, ctx, pid)
	assert.Equal(t, []geometry.Vector3{{X: 5, Y: 6}}, s.Targets)
	// a zero velocity cap freezes everyone
	for _, b := range s.Boids {
		assert.True(t, b.Velocity.IsZero())
	}
}

func TestFlockActor_BounceMode(t *testing.T) {
	ctx, system := startSystem(t)
	cfg := testConfig()
	cfg.Bounce = true
	cfg.InitialSpeed = 400

	pid, err := system.Spawn(ctx, "bounce", NewFlockActor(nil, cfg))
	require.NoError(t, err)
	for range 20 {
		require.NoError(t, actor.Tell(ctx, pid, NewTick(0.05)))
	}

	s := askSnapshot(t, ctx, pid)
	assert.True(t, s.Bounce)
	require.Len(t, s.Boids, cfg.NumBoids)
	for _, b := range s.Boids {
		assert.GreaterOrEqual(t, b.Position.X, float32(0))
		assert.LessOrEqual(t, b.Position.X, cfg.WorldWidth)
		assert.GreaterOrEqual(t, b.Position.Y, float32(0))
		assert.LessOrEqual(t, b.Position.Y, cfg.WorldHeight)
	}
}
