// plinko is a terminal Plinko game: drop a puck through the pegs and win
// whatever slot it lands in.
//
// Usage:
//
//	plinko list               - List available boards
//	plinko play [board]       - Play a board (menu when omitted)
//	plinko drop <column>      - Drop pucks without the UI
//	plinko scores [board]     - Show history for a board
//	plinko serve              - Start SSH server for remote play
//	plinko api                - Start the HTTP JSON API
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible drops
//	--db <path>          - Set database path (default: ~/.plinko/plinko.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-plinko/internal/games/plinko"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "plinko",
	Short: "Plinko - drop a puck, win a prize, in your terminal",
	Long: `Plinko drops a puck through twelve rows of pegs. Pick a start column
from 1 to 9; the slot it lands in pays between $0 and $10000.

Available commands:
  list     - Show all available boards
  play     - Play a board (or pick one from the menu)
  drop     - Drop pucks headless and print the results
  scores   - View history and leaderboard
  serve    - Start SSH server for remote play
  api      - Start the HTTP JSON API

Examples:
  plinko play
  plinko play plinko_turbo
  plinko drop 5 --count 10
  plinko serve --ssh :2222
  plinko api --addr :8080`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.plinko/plinko.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// newLogger returns a stderr logger at the --log-level level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// playerName is the name stored with local sessions.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
