package plinko

import board "github.com/vovakirdan/tui-plinko/internal/plinko"

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Phase    Phase
	Plays    int
	Winnings int
	Landed   int // grid column of the last landing
	Path     string
	PuckX    int
	PuckY    int
	Notice   string
	Paused   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	puck := g.board.Puck()
	return Snapshot{
		Tick:     g.tick,
		Phase:    g.phase,
		Plays:    g.board.Plays(),
		Winnings: g.board.TotalWinnings(),
		Landed:   g.board.LandedColumn(),
		Path:     board.PathString(g.board.LastPath()),
		PuckX:    puck.X(),
		PuckY:    puck.Y(),
		Notice:   g.notice,
		Paused:   g.paused,
	}
}
