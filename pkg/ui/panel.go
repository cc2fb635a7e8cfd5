package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30
	sectionHeight = 25
	margin        = 10
)

// Panel stacks widgets under section headers in a scrollable column.
type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	ScrollOffset  float64

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA

	rows []row
}

// a row is either a section header or a widget
type row struct {
	title   string
	widget  Widget
	visible bool
}

func NewPanel(x, y, width, height float64) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       "Configuration",
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new titled group; following widgets belong to it.
func (p *Panel) AddSection(title string) {
	p.rows = append(p.rows, row{title: title})
}

func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(0, 0, p.Width-2*margin, label, min, max, value)
	p.Add(s)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(0, 0, label, value)
	p.Add(c)
	return c
}

func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-2*margin, 22, label, onClick)
	p.Add(b)
	return b
}

// Add appends any widget to the current section.
func (p *Panel) Add(w Widget) {
	p.rows = append(p.rows, row{widget: w})
	p.layout()
}

// Contains reports whether the point lies on the panel.
func (p *Panel) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

// ContentHeight is the height of everything in the panel, scrolled or not.
func (p *Panel) ContentHeight() float64 {
	h := float64(titleHeight)
	for _, r := range p.rows {
		if r.widget == nil {
			h += sectionHeight
		} else {
			h += r.widget.Height()
		}
	}
	return h
}

func (p *Panel) scroll(dy float64) {
	if dy == 0 {
		return
	}
	p.ScrollOffset -= dy * 20
	maxScroll := max(p.ContentHeight()-p.Height+40, 0)
	p.ScrollOffset = min(max(p.ScrollOffset, 0), maxScroll)
	p.layout()
}

// layout places every widget for the current scroll offset and marks the
// rows that fall inside the panel.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for i := range p.rows {
		r := &p.rows[i]
		h := float64(sectionHeight)
		if r.widget != nil {
			h = r.widget.Height()
			r.widget.SetPosition(p.X+margin, y)
		}
		r.visible = y >= p.Y+titleHeight-5 && y+h <= p.Y+p.Height
		y += h
	}
}

// Update feeds input to the visible widgets.
func (p *Panel) Update() {
	p.HandleInput(ReadInput())
}

func (p *Panel) HandleInput(in Input) {
	if p.Contains(in.X, in.Y) {
		p.scroll(in.WheelY)
	}
	for _, r := range p.rows {
		if r.widget != nil && r.visible {
			r.widget.HandleInput(in)
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		if r.widget == nil {
			if r.visible {
				vector.FillRect(screen,
					float32(p.X+5), float32(y),
					float32(p.Width-10), 20,
					color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
				ebitenutil.DebugPrintAt(screen, r.title, int(p.X+margin), int(y+3))
			}
			y += sectionHeight
			continue
		}
		if r.visible {
			r.widget.Draw(screen)
		}
		y += r.widget.Height()
	}
}
