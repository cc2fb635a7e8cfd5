package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		vel  geometry.Vector3
		want rune
	}{
		{geometry.NewVector(1, 0, 0), '→'},
		{geometry.NewVector(1, 1, 0), '↘'},
		{geometry.NewVector(0, 3, 0), '↓'},
		{geometry.NewVector(-2, 0, 0), '←'},
		{geometry.NewVector(0, -1, 0), '↑'},
		{geometry.NewVector(1, -1, 5), '↗'},
		{geometry.NewVector(0, 0, 4), '·'},
		{geometry.Zero, '·'},
	}
	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(Glyph(tt.vel)), "%v", tt.vel)
	}
}

func TestView_CellAndWorld(t *testing.T) {
	v := NewView(newScreen(t, 100, 51), 1000, 500)

	x, y, ok := v.Cell(geometry.NewVector(505, 255, 0))
	require.True(t, ok)
	assert.Equal(t, 50, x)
	assert.Equal(t, 25, y)

	_, _, ok = v.Cell(geometry.NewVector(1000, 10, 0))
	assert.False(t, ok, "right edge is off screen")
	_, _, ok = v.Cell(geometry.NewVector(-0.5, 10, 0))
	assert.False(t, ok)

	assert.Equal(t, geometry.NewVector(505, 255, 0), v.World(50, 25))
}

func TestView_Render(t *testing.T) {
	screen := newScreen(t, 20, 11)
	v := NewView(screen, 200, 100)

	v.Render(&simulation.Snapshot{
		Boids: []simulation.BoidState{
			{Position: geometry.NewVector(15, 15, 0), Velocity: geometry.NewVector(1, 0, 0)},
			{Position: geometry.NewVector(55, 35, 0), Velocity: geometry.NewVector(0, -50, 0)},
			{Position: geometry.NewVector(-5, 35, 0), Velocity: geometry.NewVector(1, 0, 0)},
		},
		Targets: []geometry.Vector3{{X: 195, Y: 95}},
	}, 10, "step 1")

	r, _, style, _ := screen.GetContent(1, 1)
	assert.Equal(t, "→", string(r))
	assert.Equal(t, boidStyle, style)

	r, _, style, _ = screen.GetContent(5, 3)
	assert.Equal(t, "↑", string(r))
	assert.Equal(t, fastStyle, style)

	r, _, _, _ = screen.GetContent(19, 9)
	assert.Equal(t, "✚", string(r))

	r, _, style, _ = screen.GetContent(0, 10)
	assert.Equal(t, "s", string(r))
	assert.Equal(t, statusStyle, style)
	r, _, _, _ = screen.GetContent(19, 10)
	assert.Equal(t, " ", string(r))
}
