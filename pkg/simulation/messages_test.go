package simulation

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestTick(t *testing.T) {
	assert.InDelta(t, 1.0/60, TickSeconds(NewTick(1.0/60)), 1e-6)
	assert.Zero(t, TickSeconds(NewTick(0)))
}

func TestParamsUpdate_RoundTrip(t *testing.T) {
	p := flock.DefaultParams()
	p.PerceptionRadius = 55
	p.Separation = flock.Term{Weight: 12, Distance: flock.InverseQuadratic}

	msg, err := NewParamsUpdate(p)
	require.NoError(t, err)

	got, err := ApplyParamsUpdate(flock.DefaultParams(), msg)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestApplyParamsUpdate_Partial(t *testing.T) {
	base := flock.DefaultParams()
	msg, err := structpb.NewStruct(map[string]interface{}{
		"maxVelocity": 3,
		"cohesion":    map[string]interface{}{"distance": "quadratic"},
	})
	require.NoError(t, err)

	got, err := ApplyParamsUpdate(base, msg)
	require.NoError(t, err)
	assert.Equal(t, float32(3), got.MaxVelocity)
	assert.Equal(t, flock.Term{Weight: 1, Distance: flock.Quadratic}, got.Cohesion)
	assert.Equal(t, base.PerceptionRadius, got.PerceptionRadius)
}

func TestApplyParamsUpdate_BadDistanceKeepsBase(t *testing.T) {
	base := flock.DefaultParams()
	msg, err := structpb.NewStruct(map[string]interface{}{
		"steering": map[string]interface{}{"distance": "cubic"},
	})
	require.NoError(t, err)

	got, err := ApplyParamsUpdate(base, msg)
	assert.Error(t, err)
	assert.Equal(t, base, got)
}

func TestTargetMessage(t *testing.T) {
	v := geometry.NewVector(1.5, -2, 9)
	got, err := ParseTarget(NewTargetMessage(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)

	flat, err := structpb.NewList([]interface{}{4, 5})
	require.NoError(t, err)
	got, err = ParseTarget(flat)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector(4, 5, 0), got)

	for _, bad := range [][]interface{}{{1}, {1, 2, 3, 4}, {1, "two"}, {math.Inf(1), 0}, {0, math.NaN()}, {1, 2, 1e300}, nil} {
		l, err := structpb.NewList(bad)
		require.NoError(t, err)
		_, err = ParseTarget(l)
		assert.ErrorIs(t, err, ErrBadTarget, "%v", bad)
	}
}
