package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// Cell is an integer voxel coordinate.
type Cell struct {
	X, Y, Z int32
}

// Grid is the voxel cache: cell -> indices of the boids located in it.
// It is rebuilt from scratch on every step and never holds indices across steps.
type Grid struct {
	cellSize float32
	inv      float32
	cells    map[Cell][]int32
}

// NewGrid returns an empty grid. Call Rebuild before querying it.
func NewGrid() *Grid {
	return &Grid{
		cellSize: 1,
		inv:      1,
		cells:    make(map[Cell][]int32),
	}
}

// CellSize returns the edge length used by the last Rebuild.
func (g *Grid) CellSize() float32 {
	return g.cellSize
}

// Rebuild clears every bucket and inserts each boid into the bucket of its cell.
// cellSize below 1 is raised to 1.
func (g *Grid) Rebuild(boids []Boid, cellSize float32) {
	// Reset slices to length 0 but keep capacity, so the underlying arrays
	// get reused and a steady-state step allocates almost nothing.
	for k, bucket := range g.cells {
		if len(bucket) == 0 {
			// nothing landed here last step either
			delete(g.cells, k)
			continue
		}
		g.cells[k] = bucket[:0]
	}

	g.cellSize = max(cellSize, 1)
	g.inv = 1 / g.cellSize

	for i := range boids {
		key := g.CellFor(boids[i].Position)
		g.cells[key] = append(g.cells[key], int32(i))
	}
}

// CellFor returns floor(position / cellSize) per axis.
func (g *Grid) CellFor(position geometry.Vector3) Cell {
	f := position.Mul(g.inv).Floor()
	return Cell{X: toCell(f.X), Y: toCell(f.Y), Z: toCell(f.Z)}
}

// Bucket returns the boid indices stored in cell c. The slice is owned by the grid.
func (g *Grid) Bucket(c Cell) []int32 {
	return g.cells[c]
}

// Len returns the number of indexed boids.
func (g *Grid) Len() int {
	n := 0
	for _, bucket := range g.cells {
		n += len(bucket)
	}
	return n
}

func toCell(f float32) int32 {
	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(f)
	}
}
