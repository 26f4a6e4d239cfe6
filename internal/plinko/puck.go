package plinko

import "github.com/vovakirdan/tui-plinko/internal/core"

// Puck is the falling disc. X is its grid column, Y its row.
type Puck struct {
	x int
	y int
}

// NewPuck creates a puck at the given grid position.
func NewPuck(x, y int) *Puck {
	return &Puck{x: x, y: y}
}

// X returns the grid column.
func (p *Puck) X() int {
	return p.x
}

// Y returns the row.
func (p *Puck) Y() int {
	return p.y
}

// Reposition moves the puck to (x, y).
func (p *Puck) Reposition(x, y int) {
	p.x = x
	p.y = y
}

// StepLeft moves one unit down-left.
func (p *Puck) StepLeft() {
	p.x--
	p.y++
}

// StepRight moves one unit down-right.
func (p *Puck) StepRight() {
	p.x++
	p.y++
}

// Render draws the puck as a filled disc with a P in the middle.
func (p *Puck) Render(c core.Canvas, l Layout) {
	x := l.ColumnX(p.x)
	y := l.RowY(p.y)
	c.FillOval(core.NewRect(x-1, y, 3, 1), core.Paint{Glyph: '█', Color: core.ColorPuck})
	c.StrokeText(x, y, "P", core.ColorGlyph)
}
