package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-plinko/internal/core"
	"github.com/vovakirdan/tui-plinko/internal/plinko"
	"github.com/vovakirdan/tui-plinko/internal/registry"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

// footerHeight is the number of lines below the game screen: the column
// field and the help bar.
const footerHeight = 2

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Options configures a game model beyond its runtime config.
type Options struct {
	Player        string      // name stored with the session
	DefaultColumn int         // initial column field value
	Record        bool        // write landed drops to the store
	Logger        *log.Logger // persistence failures; nil discards
}

func (o Options) withDefaults() Options {
	if o.Player == "" {
		o.Player = "player"
	}
	if !plinko.ValidStart(o.DefaultColumn) {
		o.DefaultColumn = 1
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Model is the Bubble Tea model for playing a board: the game screen, the
// column field and the key help.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	session    *storage.Session
	field      textinput.Model
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string
	loop       uint64 // tick loop ID
	embedded   bool // esc returns to the menu instead of quitting
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game. A nil store
// disables history.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	opts = opts.withDefaults()

	field := textinput.New()
	field.Prompt = "Column (1-9): "
	field.CharLimit = 2
	field.Width = 3
	field.SetValue(strconv.Itoa(opts.DefaultColumn))
	field.Focus()

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 0)),
		store:      store,
		config:     cfg,
		opts:       opts,
		field:      field,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		loop:       nextLoop(),
	}
	m.startSession()
	return m
}

// gameConfig is the runtime config the game sees: the terminal minus the footer.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-footerHeight, 0)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())

	// Start the tick loop
	return tea.Batch(tickCmd(m.config.TickRate, m.loop), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	// Cursor blink and other field messages
	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if d := m.keyMapper.Nudge(msg); d != 0 {
		if !m.gameState.Busy {
			m.nudge(d)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		return m, nil
	}

	// Everything else edits the column field, which is locked during a drop.
	if m.gameState.Busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

// nudge moves the column field by d, staying within 1-9. Unparsable text
// snaps back to the default column.
func (m *Model) nudge(d int) {
	n, err := plinko.ParseColumn(m.field.Value())
	if err != nil {
		n = m.opts.DefaultColumn
	} else {
		n = core.Clamp(n+d, 1, plinko.StartColumns)
	}
	m.field.SetValue(strconv.Itoa(n))
	m.field.CursorEnd()
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gameCfg := m.gameConfig()
	m.screen.Resize(gameCfg.ScreenW, gameCfg.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(gameCfg.ScreenW, gameCfg.ScreenH)
	} else {
		m.game.Reset(gameCfg)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.inputFrame.Text = m.field.Value()

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Landed != nil {
		m.recordDrop(*result.Landed)
	}
	if result.StatsReset {
		m.startSession()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.loop)}
	switch {
	case m.gameState.Busy && m.field.Focused():
		m.field.Blur()
	case !m.gameState.Busy && !m.field.Focused():
		cmds = append(cmds, m.field.Focus())
	}

	return m, tea.Batch(cmds...)
}

// startSession opens a fresh history session. Called at start and after
// every stats reset.
func (m *Model) startSession() {
	if m.store == nil || !m.opts.Record {
		return
	}
	sess, err := m.store.StartSession(m.opts.Player, m.game.ID())
	if err != nil {
		m.opts.Logger.Warn("could not start session", "game", m.game.ID(), "error", err)
		m.session = nil
		return
	}
	m.session = &sess
}

// recordDrop stores a landed drop. Best effort: the game continues regardless.
func (m *Model) recordDrop(d core.DropResult) {
	if m.session == nil {
		return
	}
	_, err := m.store.RecordDrop(context.Background(), storage.Drop{
		SessionID:    m.session.ID,
		GameID:       m.game.ID(),
		StartColumn:  d.StartColumn,
		LandedColumn: d.LandedColumn,
		Payout:       d.Payout,
		Path:         d.Path,
	})
	if err != nil {
		m.opts.Logger.Warn("could not record drop", "session", m.session.ID, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "Screenshot failed"
		return
	}
	dir := filepath.Join(home, ".plinko", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "dir", dir, "error", err)
		m.status = "Screenshot failed"
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "error", err)
		m.status = "Screenshot failed"
		return
	}
	m.status = "Saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.field.View())
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keyMapper.Keys()))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Session returns the current history session, or nil without a store.
func (m Model) Session() *storage.Session {
	return m.session
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
