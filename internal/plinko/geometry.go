// Package plinko implements the Plinko board: the puck, its random walk down
// the peg grid, the slot payout table and the running statistics. It has no
// UI dependency; drawing goes through core.Canvas.
package plinko

// Board geometry. Grid columns run 0-18; the puck travels on 1-17 and the
// walls sit on 0 and 18. Start column s enters the grid at column 2s-1.
const (
	StartColumns = 9  // selectable drop points, numbered 1-9
	MinColumn    = 1  // leftmost puck column
	MaxColumn    = 17 // rightmost puck column
	Descents     = 12 // row-descents per drop
	PegRowPairs  = 6  // each pair is an 8-peg row followed by a 7-peg row
	Dividers     = 8
	Bumpers      = 6 // per side
)

// GridColumn translates a start column (1-9) into its grid column.
func GridColumn(start int) int {
	return 2*start - 1
}

// ValidStart reports whether start is a selectable drop column.
func ValidStart(start int) bool {
	return start >= 1 && start <= StartColumns
}

// Terminal layout: three cells per grid column, one line per row.
const (
	cellsPerColumn = 3
	gridWidth      = MaxColumn + 1 // wall-to-wall columns

	// BoardWidth and BoardHeight are the board's footprint in cells.
	BoardWidth  = gridWidth*cellsPerColumn + 1
	BoardHeight = Descents + 4 // labels, 13 puck rows, divider tail, payouts
)

// Layout places the board on a canvas. X and Y are the top-left cell.
type Layout struct {
	X, Y int
}

// ColumnX returns the cell x of grid column c.
func (l Layout) ColumnX(c int) int {
	return l.X + c*cellsPerColumn
}

// RowY returns the cell y of puck row r (0 = top, Descents = slot line).
func (l Layout) RowY(r int) int {
	return l.Y + 1 + r
}

// LabelY is the line carrying the 1-9 start labels.
func (l Layout) LabelY() int {
	return l.Y
}

// PayoutY is the line carrying the slot payouts.
func (l Layout) PayoutY() int {
	return l.RowY(Descents) + 2
}
