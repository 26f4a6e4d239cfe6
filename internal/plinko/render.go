package plinko

import (
	"strconv"

	"github.com/vovakirdan/tui-plinko/internal/core"
)

var (
	surfacePaint = core.Paint{Glyph: ' ', Color: core.ColorSurface}
	pegPaint     = core.Paint{Glyph: '•', Color: core.ColorPeg}
	dividerPaint = core.Paint{Glyph: '│', Color: core.ColorPeg}
	bumperPaint  = core.Paint{Glyph: '▓', Color: core.ColorPeg}
)

// bumperDepth is how far a bumper reaches into the board, in cells.
const bumperDepth = 4

func drawBoard(c core.Canvas, l Layout) {
	c.FillRect(core.NewRect(l.X, l.Y, BoardWidth, BoardHeight), surfacePaint)

	// Pegs sit on the column parity the puck is not on for that row:
	// even columns (8 pegs) then odd columns (7 pegs).
	for pair := 0; pair < PegRowPairs; pair++ {
		wide := 2 * pair
		for col := 2; col <= MaxColumn-1; col += 2 {
			c.FillOval(core.NewRect(l.ColumnX(col), l.RowY(wide), 1, 1), pegPaint)
		}
		for col := 3; col <= MaxColumn-2; col += 2 {
			c.FillOval(core.NewRect(l.ColumnX(col), l.RowY(wide+1), 1, 1), pegPaint)
		}
	}

	// Slot dividers hang below the last peg row.
	for i := 1; i <= Dividers; i++ {
		c.FillRect(core.NewRect(l.ColumnX(2*i), l.RowY(Descents), 1, 2), dividerPaint)
	}

	// Bumpers along both walls, one per pair of rows.
	left := float64(l.X)
	right := float64(l.X + BoardWidth)
	for i := 0; i < Bumpers; i++ {
		top := float64(l.RowY(2 * i))
		ys := []float64{top, top + 1, top + 2}
		c.FillPolygon([]float64{left, left + bumperDepth, left}, ys, bumperPaint)
		c.FillPolygon([]float64{right, right - bumperDepth, right}, ys, bumperPaint)
	}

	for start := 1; start <= StartColumns; start++ {
		c.StrokeText(l.ColumnX(GridColumn(start)), l.LabelY(), strconv.Itoa(start), core.ColorLabel)
	}

	for _, slot := range Slots() {
		label := strconv.Itoa(slot.Payout)
		c.StrokeText(l.ColumnX(slot.Column)-len(label)/2, l.PayoutY(), label, core.ColorLabel)
	}
}
