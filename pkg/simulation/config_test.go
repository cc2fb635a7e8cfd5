package simulation

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_SampleJSON(t *testing.T) {
	cfg, err := LoadConfig("../../configs/flock.json")
	require.NoError(t, err)

	assert.Equal(t, 400, cfg.NumBoids)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Planar())
	assert.Equal(t, []geometry.Vector3{{X: 700, Y: 400}}, cfg.Targets)
	assert.Equal(t, flock.DefaultParams(), cfg.Flock)
}

func TestLoadConfig_SampleYAML(t *testing.T) {
	cfg, err := LoadConfig("../../configs/flock.yaml")
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.NumBoids)
	assert.Equal(t, float32(15), cfg.InitialSpeed)
	assert.Len(t, cfg.Targets, 2)
	assert.Equal(t, float32(40), cfg.Flock.PerceptionRadius)
	assert.Equal(t, flock.Term{Weight: 40, Distance: flock.InverseLinear}, cfg.Flock.Separation)
	assert.Equal(t, flock.Term{Weight: 0.02, Distance: flock.Linear}, cfg.Flock.Steering)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"numBoids": 12, "flock": {"cohesion": {"weight": 3}}}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, 12, cfg.NumBoids)
	assert.Equal(t, def.WorldWidth, cfg.WorldWidth)
	assert.Equal(t, flock.Term{Weight: 3, Distance: flock.Linear}, cfg.Flock.Cohesion)
	assert.Equal(t, def.Flock.Separation, cfg.Flock.Separation)
}

func TestLoadConfig_EmptyYAML(t *testing.T) {
	path := writeConfig(t, "empty.yml", "# nothing here\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown field", "c.json", `{"numBirds": 3}`},
		{"negative radius", "c.json", `{"flock": {"perceptionRadius": -1}}`},
		{"blind spot over 180", "c.yaml", "flock:\n  blindSpotAngle: 200\n"},
		{"unknown distance", "c.json", `{"flock": {"steering": {"distance": "cubic"}}}`},
		{"target without y", "c.json", `{"targets": [{"x": 1}]}`},
		{"not json", "c.json", `{numBoids: }`},
		{"not yaml", "c.yaml", "numBoids: [1,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_EngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.Flock.MaxVelocity = 7

	e := flock.New(cfg.EngineOptions()...)
	assert.Equal(t, float32(7), e.MaxVelocity())
}

func TestSpawnFlock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumBoids = 200
	cfg.Seed = 11

	boids := SpawnFlock(cfg, cfg.SpawnRandom())
	require.Len(t, boids, 200)
	for i, b := range boids {
		assert.Zero(t, b.Position.Z, "boid %d", i)
		assert.Zero(t, b.Velocity.Z, "boid %d", i)
		assert.GreaterOrEqual(t, b.Position.X, float32(0))
		assert.Less(t, b.Position.X, cfg.WorldWidth)
		assert.LessOrEqual(t, b.Velocity.Len(), cfg.InitialSpeed*(1+1e-5))
	}
	assert.Equal(t, boids, SpawnFlock(cfg, cfg.SpawnRandom()), "same seed, same flock")

	cfg.WorldDepth = 50
	deep := SpawnFlock(cfg, cfg.SpawnRandom())
	assert.True(t, slices.ContainsFunc(deep, func(b flock.Boid) bool { return b.Position.Z > 0 }))
}

func TestSpawnBounce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumBoids = 20
	cfg.Seed = 2

	boids, sw := SpawnBounce(cfg, cfg.SpawnRandom())
	require.Len(t, boids, 20)
	w, h := sw.Bounds()
	assert.Equal(t, cfg.WorldWidth, w)
	assert.Equal(t, cfg.WorldHeight, h)
	for _, b := range boids {
		assert.GreaterOrEqual(t, b.Angle, float32(0))
		assert.Less(t, b.Angle, float32(90))
	}
}
