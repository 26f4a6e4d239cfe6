package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-plinko/internal/config"
	"github.com/vovakirdan/tui-plinko/internal/core"
	plinkogame "github.com/vovakirdan/tui-plinko/internal/games/plinko"
	"github.com/vovakirdan/tui-plinko/internal/platform/tui"
	"github.com/vovakirdan/tui-plinko/internal/registry"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

var (
	flagConfig string
	flagSpeed  string
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board, or pick one from the menu.

Controls:
  1-9        - Type the start column
  Left/Right - Nudge the start column
  Enter      - Drop the puck
  Ctrl+R     - Reset total score
  Ctrl+P     - Pause
  Ctrl+S     - Save a text screenshot
  Esc        - Back to menu / quit
  Ctrl+C     - Quit

Speed options:
  classic  - 750ms pause at the top, 500ms per row
  normal   - 300ms pause, 150ms per row
  fast     - 100ms pause, 50ms per row
  instant  - no animation, one row per tick

Examples:
  plinko play
  plinko play plinko --speed fast
  plinko play plinko_turbo
  plinko play plinko --config ./my-plinko.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: classic, normal, fast, instant")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, err := newLogger("plinko")
	if err != nil {
		return err
	}

	var preset config.SpeedPreset
	if flagSpeed != "" {
		preset, err = config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return err
		}
	}
	plinkoCfg, err := config.LoadPlinko(flagConfig)
	if err != nil {
		return err
	}
	plinkogame.SetConfigPath(flagConfig)
	plinkogame.SetSpeedPreset(preset)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	opts := tui.Options{
		Player:        playerName(),
		DefaultColumn: plinkoCfg.Board.DefaultColumn,
		Record:        plinkoCfg.History.Enabled,
		Logger:        logger,
	}

	// Open history storage; the game still works without it
	var store *storage.Store
	if plinkoCfg.History.Enabled {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open history database", "path", flagDBPath, "error", err)
			store = nil
		}
	}
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		return tui.RunSession(store, cfg, opts)
	}

	game, err := registry.Create(args[0])
	if err != nil {
		if errors.Is(err, registry.ErrUnknownGame) {
			return fmt.Errorf("%w (run 'plinko list' to see available boards)", err)
		}
		return err
	}
	return tui.Run(game, store, cfg, opts)
}
