package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-plinko/internal/plinko"
	"github.com/vovakirdan/tui-plinko/internal/registry"
	"github.com/vovakirdan/tui-plinko/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show history for a board",
	Long: `Display the best sessions, overall drop statistics and how often each
slot was hit for the specified board (default: plinko).

Examples:
  plinko scores
  plinko scores plinko_turbo --limit 20
  plinko scores plinko --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all history for the board")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := "plinko"
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'plinko list' to see available boards)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearHistory(gameID); err != nil {
			return err
		}
		fmt.Printf("History for %s cleared.\n", game.Title())
		return nil
	}

	sessions, err := store.TopSessions(gameID, flagScoresLimit)
	if err != nil {
		return err
	}
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	slots, err := store.SlotCounts(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Best Sessions - %s\n", game.Title())
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No drops recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'plinko play %s' to make the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-10s  %-8s  %s\n", "Rank", "Player", "Plays", "Winnings", "Avg", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-10s  %-8s  %s\n", "----", "------", "-----", "--------", "---", "----")
	for i, s := range sessions {
		fmt.Printf("  %-4d  %-12s  %-6d  $%-9d  $%-7d  %s\n",
			i+1, s.Player, s.Plays, s.Winnings, s.Average(), s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Drops: %d in %d sessions  |  Paid: $%d  |  Best: $%d  |  Avg: $%.0f\n",
		stats.Drops, stats.Sessions, stats.TotalPayout, stats.BestPayout, stats.AvgPayout)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-7s  %s\n", "Slot", "Payout", "Hits")
	fmt.Printf("  %-4s  %-7s  %s\n", "----", "------", "----")
	for _, slot := range plinko.Slots() {
		fmt.Printf("  %-4d  $%-6d  %d\n", (slot.Column+1)/2, slot.Payout, slots[slot.Column])
	}
	return nil
}
