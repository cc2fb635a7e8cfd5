// Package terminal draws flock snapshots on a character grid with tcell.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock/pkg/simulation"
)

// headings, counter-clockwise from +X with screen Y pointing down
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

var (
	boidStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	fastStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Glyph returns the arrow closest to the XY heading of vel, '·' when still.
func Glyph(vel geometry.Vector3) rune {
	if vel.X == 0 && vel.Y == 0 {
		return '·'
	}
	a := math.Atan2(float64(vel.Y), float64(vel.X))
	i := int(math.Round(a/(math.Pi/4))) & 7
	return arrows[i]
}

// View maps a world rectangle onto the screen, keeping the last row for status.
type View struct {
	screen        tcell.Screen
	width, height float32
}

func NewView(screen tcell.Screen, worldWidth, worldHeight float32) *View {
	return &View{screen: screen, width: worldWidth, height: worldHeight}
}

func (v *View) area() (cols, rows int) {
	cols, rows = v.screen.Size()
	return cols, max(rows-1, 0)
}

// Cell returns the screen cell of a world position, ok is false off screen.
func (v *View) Cell(pos geometry.Vector3) (x, y int, ok bool) {
	cols, rows := v.area()
	if cols == 0 || rows == 0 || v.width <= 0 || v.height <= 0 {
		return 0, 0, false
	}
	x = int(pos.X / v.width * float32(cols))
	y = int(pos.Y / v.height * float32(rows))
	return x, y, x >= 0 && x < cols && y >= 0 && y < rows && pos.X >= 0 && pos.Y >= 0
}

// World returns the world position at the center of a screen cell.
func (v *View) World(x, y int) geometry.Vector3 {
	cols, rows := v.area()
	if cols == 0 || rows == 0 {
		return geometry.Zero
	}
	return geometry.NewVector(
		(float32(x)+0.5)*v.width/float32(cols),
		(float32(y)+0.5)*v.height/float32(rows),
		0,
	)
}

// Render clears the screen, draws s and the status line, then shows it.
// Boids faster than fast are highlighted.
func (v *View) Render(s *simulation.Snapshot, fast float32, status string) {
	v.screen.Clear()
	for _, b := range s.Boids {
		x, y, ok := v.Cell(b.Position)
		if !ok {
			continue
		}
		style := boidStyle
		if b.Velocity.Len() > fast {
			style = fastStyle
		}
		v.screen.SetContent(x, y, Glyph(b.Velocity), nil, style)
	}
	for _, t := range s.Targets {
		if x, y, ok := v.Cell(t); ok {
			v.screen.SetContent(x, y, '✚', nil, targetStyle)
		}
	}

	cols, rows := v.screen.Size()
	if rows > 0 {
		line := []rune(status)
		for x := 0; x < cols; x++ {
			r := ' '
			if x < len(line) {
				r = line[x]
			}
			v.screen.SetContent(x, rows-1, r, nil, statusStyle)
		}
	}
	v.screen.Show()
}
