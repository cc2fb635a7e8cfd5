// Package ui holds the small immediate-mode widgets drawn over the simulation:
// sliders, checkboxes, buttons and the scrollable panel that stacks them.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is anything the panel can stack.
type Widget interface {
	HandleInput(in Input)
	Draw(screen *ebiten.Image)
	SetPosition(x, y float64)
	Height() float64
}

// Input is the pointer state for one frame.
type Input struct {
	X, Y    float64
	Pressed bool
	WheelY  float64
}

// ReadInput samples the cursor, the left button and the wheel.
func ReadInput() Input {
	mx, my := ebiten.CursorPosition()
	_, dy := ebiten.Wheel()
	return Input{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  dy,
	}
}

func (in Input) over(x, y, w, h float64) bool {
	return in.X >= x && in.X <= x+w && in.Y >= y && in.Y <= y+h
}

// clickLatch turns a held button into a single click.
type clickLatch struct {
	down bool
}

// press reports true only on the frame the button goes down over the target.
func (l *clickLatch) press(over, pressed bool) bool {
	if over && pressed {
		if l.down {
			return false
		}
		l.down = true
		return true
	}
	l.down = false
	return false
}
