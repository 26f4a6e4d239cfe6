// Package plinko wires the Plinko board into the platform game loop: it paces
// drops over simulation ticks, validates the column field and draws the HUD.
package plinko

import (
	"fmt"

	"github.com/vovakirdan/tui-plinko/internal/config"
	"github.com/vovakirdan/tui-plinko/internal/core"
	board "github.com/vovakirdan/tui-plinko/internal/plinko"
	"github.com/vovakirdan/tui-plinko/internal/registry"
)

// Player-facing messages.
const (
	MsgWelcome = "Choose a starting point and press Play!"
	MsgReset   = "Total score reset!"
	MsgPaused  = "Paused"
)

// Mode selects the drop pacing.
type Mode int

const (
	ModeClassic Mode = iota // paced by the animation config
	ModeTurbo               // one row per tick, no pause
)

// Phase is where the game is between drops.
type Phase string

const (
	PhaseAim      Phase = "aim"
	PhaseDropping Phase = "dropping"
)

// Layout constants.
const (
	hudHeight = 3 // title, summary, aim marker
	minWidth  = board.BoardWidth + 2
	minHeight = hudHeight + board.BoardHeight + 2 // notice line and a margin
)

// configPath stores the custom config path set via CLI
var configPath string

// speedPreset stores the speed preset set via CLI
var speedPreset config.SpeedPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetSpeedPreset sets the pacing preset applied on every Reset. An empty
// preset keeps the configured pacing.
func SetSpeedPreset(preset config.SpeedPreset) {
	speedPreset = preset
}

// Game implements the Plinko game loop around a board.Board.
type Game struct {
	mode Mode

	cfg      config.PlinkoConfig
	fixedCfg bool // cfg was injected, skip loading on Reset
	runtime  core.RuntimeConfig

	board *board.Board
	drop  *board.Drop

	phase      Phase
	wait       int // ticks until the next row-descent
	pauseTicks int
	rowTicks   int

	tick     uint64
	notice   string
	aim      string // current column field text
	paused   bool
	tooSmall bool
	layout   board.Layout
}

// New creates a Plinko game paced by the animation config.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewTurbo creates a Plinko game that drops one row per tick.
func NewTurbo() *Game {
	return &Game{mode: ModeTurbo}
}

// WithConfig fixes the configuration instead of loading it on Reset.
func (g *Game) WithConfig(cfg config.PlinkoConfig) *Game {
	g.cfg = cfg
	g.fixedCfg = true
	return g
}

func init() {
	registry.Register("plinko", func() registry.Game {
		return New()
	})
	registry.Register("plinko_turbo", func() registry.Game {
		return NewTurbo()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeTurbo {
		return "plinko_turbo"
	}
	return "plinko"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeTurbo {
		return "Plinko (Turbo)"
	}
	return "Plinko"
}

// Reset starts a fresh board: zero winnings, puck above column 1.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadPlinko(configPath)
		if err != nil {
			cfg = config.DefaultPlinkoConfig()
		}
		if speedPreset != "" {
			config.ApplySpeedPreset(&cfg, speedPreset)
		}
		g.cfg = cfg
	}

	if g.mode == ModeTurbo {
		g.pauseTicks, g.rowTicks = 0, 1
	} else {
		g.pauseTicks = g.cfg.StartPauseTicks(runtime.TickRate)
		g.rowTicks = g.cfg.RowTicks(runtime.TickRate)
	}

	g.board = board.NewBoard(board.NewCoin(runtime.Seed))
	g.drop = nil
	g.phase = PhaseAim
	g.wait = 0
	g.tick = 0
	g.notice = MsgWelcome
	g.aim = ""
	g.paused = false
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize adapts the layout to a new screen size, keeping the board state.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.tooSmall = width < minWidth || height < minHeight
	g.layout = board.Layout{
		X: max((width-board.BoardWidth)/2, 0),
		Y: hudHeight,
	}
}

// Config returns the active configuration.
func (g *Game) Config() config.PlinkoConfig {
	return g.cfg
}

// Board exposes the underlying board, mainly for summaries.
func (g *Game) Board() *board.Board {
	return g.board
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Notice returns the message currently shown to the player.
func (g *Game) Notice() string {
	return g.notice
}

// DropTicks is how many ticks a drop takes from the confirming tick to the
// landing tick.
func (g *Game) DropTicks() int {
	return g.pauseTicks + board.Descents*g.rowTicks
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.aim = in.Text

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	var result core.StepResult
	switch g.phase {
	case PhaseAim:
		g.stepAim(in, &result)
	case PhaseDropping:
		g.stepDrop(&result)
	}

	result.State = g.State()
	return result
}

// stepAim handles input between drops.
func (g *Game) stepAim(in core.InputFrame, result *core.StepResult) {
	if in.Has(core.ActionReset) {
		g.board.ResetStats()
		g.notice = MsgReset
		result.StatsReset = true
		return
	}

	if !in.Has(core.ActionConfirm) {
		return
	}

	start, err := board.ParseColumn(in.Text)
	if err != nil {
		g.notice = board.ColumnHint
		return
	}

	d, err := g.board.Begin(start)
	if err != nil {
		g.notice = board.ColumnHint
		return
	}

	g.drop = d
	g.phase = PhaseDropping
	g.wait = g.pauseTicks + g.rowTicks
	g.notice = ""
}

// stepDrop advances the drop in flight. Input is ignored until it lands.
func (g *Game) stepDrop(result *core.StepResult) {
	g.wait--
	if g.wait > 0 {
		return
	}

	g.drop.Step()
	if !g.drop.Done() {
		g.wait = g.rowTicks
		return
	}

	payout := g.board.ComputePayout()
	result.Landed = &core.DropResult{
		StartColumn:  g.drop.Start(),
		LandedColumn: g.board.LandedColumn(),
		Payout:       payout,
		Path:         board.PathString(g.board.LastPath()),
	}
	g.notice = fmt.Sprintf("You won $%d!", payout)
	g.drop = nil
	g.phase = PhaseAim
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.board.TotalWinnings(),
		Plays:  g.board.Plays(),
		Busy:   g.phase == PhaseDropping,
		Paused: g.paused,
	}
}
