package plinko

import (
	"fmt"

	"github.com/vovakirdan/tui-plinko/internal/core"
)

// Board owns the puck and keeps score across drops. It is not safe for
// concurrent use; at most one drop may be in flight.
type Board struct {
	puck *Puck
	coin Coin

	totalWinnings int
	plays         int
	landed        int // grid column of the last landing, 0 before the first drop
	lastPath      []Direction

	active *Drop
}

// Result is a completed and paid drop.
type Result struct {
	Start  int
	Landed int
	Payout int
	Path   []Direction
}

// NewBoard creates a board with the puck resting above start column 1.
func NewBoard(coin Coin) *Board {
	return &Board{
		puck: NewPuck(GridColumn(1), 0),
		coin: coin,
	}
}

// Puck returns the board's puck.
func (b *Board) Puck() *Puck {
	return b.puck
}

// Plays returns the number of completed drops since the last reset.
func (b *Board) Plays() int {
	return b.plays
}

// TotalWinnings returns the winnings since the last reset.
func (b *Board) TotalWinnings() int {
	return b.totalWinnings
}

// LandedColumn returns the grid column of the last landing.
func (b *Board) LandedColumn() int {
	return b.landed
}

// LastPath returns the directions of the last completed drop.
func (b *Board) LastPath() []Direction {
	return append([]Direction(nil), b.lastPath...)
}

// Busy reports whether a drop is in flight.
func (b *Board) Busy() bool {
	return b.active != nil
}

// ResetStats zeroes winnings and play count.
func (b *Board) ResetStats() {
	b.totalWinnings = 0
	b.plays = 0
}

// AverageWinnings returns winnings per play, rounded down. Zero plays
// average to zero whatever the winnings.
func (b *Board) AverageWinnings() int {
	if b.plays == 0 {
		return 0
	}
	return b.totalWinnings / b.plays
}

// ComputePayout adds the prize of the landed slot to the winnings and
// returns it. Call it once per completed drop. Before the first landing it
// pays nothing.
func (b *Board) ComputePayout() int {
	if b.landed == 0 {
		return 0
	}
	payout := PayoutFor(b.landed)
	b.totalWinnings += payout
	return payout
}

// Begin starts a drop from start column 1-9 and puts the puck at the top of
// that column. The caller advances it with Drop.Step.
func (b *Board) Begin(start int) (*Drop, error) {
	if b.active != nil {
		return nil, ErrDropInProgress
	}
	if !ValidStart(start) {
		return nil, fmt.Errorf("%w: %d", ErrColumnRange, start)
	}

	column := GridColumn(start)
	b.puck.Reposition(column, 0)

	b.active = &Drop{
		board:  b,
		start:  start,
		column: column,
		path:   make([]Direction, 0, Descents),
	}
	return b.active, nil
}

// Play runs a whole drop synchronously. observe, if not nil, sees every
// row-descent.
func (b *Board) Play(start int, observe FrameObserver) error {
	d, err := b.Begin(start)
	if err != nil {
		return err
	}

	for !d.Done() {
		f, _ := d.Step()
		if observe != nil {
			observe(f)
		}
	}
	return nil
}

// Run plays a drop and pays it out.
func (b *Board) Run(start int, observe FrameObserver) (Result, error) {
	if err := b.Play(start, observe); err != nil {
		return Result{}, err
	}
	payout := b.ComputePayout()
	return Result{
		Start:  start,
		Landed: b.landed,
		Payout: payout,
		Path:   b.LastPath(),
	}, nil
}

// land finishes d: the landing column is recorded and the play counted.
func (b *Board) land(d *Drop) {
	b.landed = d.column
	b.lastPath = d.Path()
	b.plays++
	b.active = nil
}

// Describe summarizes plays, winnings and the average per play.
func (b *Board) Describe() string {
	return fmt.Sprintf("Total Plays: %d  |  Total Winnings: $%d  |  Avg. Winnings/Play: $%d",
		b.plays, b.totalWinnings, b.AverageWinnings())
}

// String implements fmt.Stringer.
func (b *Board) String() string {
	return b.Describe()
}

// RenderBoard draws the empty board. It depends only on the fixed geometry.
func (b *Board) RenderBoard(c core.Canvas, l Layout) {
	drawBoard(c, l)
}

// Render draws the board and the puck.
func (b *Board) Render(c core.Canvas, l Layout) {
	drawBoard(c, l)
	b.puck.Render(c, l)
}
