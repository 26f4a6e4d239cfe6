package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-plinko/internal/plinko"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

// dropGameID is the history key for headless drops; they share the classic
// board's leaderboard.
const dropGameID = "plinko"

var (
	flagCount  int
	flagTrace  bool
	flagNoSave bool
)

var dropCmd = &cobra.Command{
	Use:   "drop <column>",
	Short: "Drop pucks without the UI",
	Long: `Drop one or more pucks from a start column (1-9) and print where they
landed, what they paid and the running totals.

Examples:
  plinko drop 5
  plinko drop 3 --count 100
  plinko drop 9 --trace --seed 42
  plinko drop 1 --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().IntVarP(&flagCount, "count", "n", 1, "Number of pucks to drop")
	dropCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print every row-descent")
	dropCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record drops in the history database")
}

func runDrop(cmd *cobra.Command, args []string) error {
	logger, err := newLogger("plinko")
	if err != nil {
		return err
	}

	start, err := plinko.ParseColumn(args[0])
	if err != nil {
		return fmt.Errorf("%s (%w)", plinko.ColumnHint, err)
	}
	if flagCount < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", flagCount)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	board := plinko.NewBoard(plinko.NewCoin(seed))

	var (
		store   *storage.Store
		session *storage.Session
	)
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open history database", "path", flagDBPath, "error", err)
			store = nil
		}
	}
	if store != nil {
		defer store.Close()
		sess, sessErr := store.StartSession(playerName(), dropGameID)
		if sessErr != nil {
			logger.Warn("could not start session", "error", sessErr)
		} else {
			session = &sess
		}
	}

	var observe plinko.FrameObserver
	if flagTrace {
		observe = func(f plinko.Frame) {
			note := ""
			if f.Forced {
				note = "  (wall)"
			}
			fmt.Printf("  row %2d  %s -> column %2d%s\n", f.Descent, f.Direction, f.Column, note)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for i := range flagCount {
		res, err := board.Run(start, observe)
		if err != nil {
			return err
		}
		path := plinko.PathString(res.Path)

		if flagCount > 1 {
			fmt.Printf("#%d  ", i+1)
		}
		fmt.Printf("%s  slot %d  You won $%d!\n", path, (res.Landed+1)/2, res.Payout)

		if session != nil {
			_, err := store.RecordDrop(ctx, storage.Drop{
				SessionID:    session.ID,
				GameID:       dropGameID,
				StartColumn:  res.Start,
				LandedColumn: res.Landed,
				Payout:       res.Payout,
				Path:         path,
			})
			if err != nil {
				logger.Warn("could not record drop", "session", session.ID, "error", err)
			}
		}
	}

	fmt.Println()
	fmt.Println(board.Describe())
	return nil
}
