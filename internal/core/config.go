package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score  int  // Total winnings
	Plays  int  // Completed drops since the last reset
	Busy   bool // A drop is in flight; drop and reset are disabled
	Paused bool
}

// DropResult describes one completed drop.
type DropResult struct {
	StartColumn  int    // 1-9 as chosen by the player
	LandedColumn int    // odd grid column 1-17
	Payout       int    // prize for the landed slot
	Path         string // one L or R per row-descent
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Landed is set on the tick a drop completes.
	Landed *DropResult

	// StatsReset is set on the tick winnings and plays were zeroed.
	StatsReset bool
}
