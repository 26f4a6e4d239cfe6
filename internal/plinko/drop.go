package plinko

import "strings"

// Direction is the way the puck moves on one row-descent.
type Direction int

const (
	Left Direction = iota
	Right
)

// String returns "L" or "R".
func (d Direction) String() string {
	if d == Right {
		return "R"
	}
	return "L"
}

// PathString joins a path into its L/R form, e.g. "RRLR".
func PathString(path []Direction) string {
	var sb strings.Builder
	sb.Grow(len(path))
	for _, d := range path {
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Frame describes the board right after one row-descent.
type Frame struct {
	Descent   int // 1-based
	Column    int // grid column after the step
	Direction Direction
	Forced    bool // wall bounce, the coin was ignored
	PuckX     int
	PuckY     int
}

// FrameObserver is called once per row-descent of a synchronous drop.
type FrameObserver func(Frame)

// Drop is a drop in flight. Each Step performs one row-descent, so callers
// can pace a drop over animation ticks; the last step lands the puck and
// counts the play on the board.
type Drop struct {
	board   *Board
	start   int
	column  int
	descent int
	path    []Direction
}

// Step performs the next row-descent. It returns false once the drop has
// already landed.
func (d *Drop) Step() (Frame, bool) {
	if d.Done() {
		return Frame{}, false
	}

	// The coin is flipped on every descent, even against a wall, so a seeded
	// coin replays the same way regardless of where the walls bite.
	heads := d.board.coin.Flip()

	dir := Left
	forced := false
	switch {
	case d.column <= MinColumn:
		dir, forced = Right, true
	case d.column >= MaxColumn:
		dir, forced = Left, true
	case heads:
		dir = Right
	}

	puck := d.board.puck
	if dir == Right {
		d.column++
		puck.StepRight()
	} else {
		d.column--
		puck.StepLeft()
	}
	d.descent++
	d.path = append(d.path, dir)

	if d.descent == Descents {
		d.board.land(d)
	}

	return Frame{
		Descent:   d.descent,
		Column:    d.column,
		Direction: dir,
		Forced:    forced,
		PuckX:     puck.X(),
		PuckY:     puck.Y(),
	}, true
}

// Done reports whether the puck has landed.
func (d *Drop) Done() bool {
	return d.descent >= Descents
}

// Start returns the start column (1-9).
func (d *Drop) Start() int {
	return d.start
}

// Column returns the current grid column.
func (d *Drop) Column() int {
	return d.column
}

// Descent returns how many row-descents have been made.
func (d *Drop) Descent() int {
	return d.descent
}

// Path returns a copy of the directions taken so far.
func (d *Drop) Path() []Direction {
	return append([]Direction(nil), d.path...)
}
