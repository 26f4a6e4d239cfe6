package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GameStats contains aggregated drop statistics for a game.
type GameStats struct {
	GameID      string
	Drops       int
	Sessions    int
	TotalPayout int64
	BestPayout  int
	AvgPayout   float64
	LastPlayed  time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT session_id), COALESCE(SUM(payout), 0),
		        COALESCE(MAX(payout), 0), COALESCE(AVG(payout), 0)
		 FROM drops WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Drops, &stats.Sessions, &stats.TotalPayout, &stats.BestPayout, &stats.AvgPayout)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM drops WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// SlotCounts returns how many drops of gameID landed in each grid column.
// Columns nobody landed in are absent.
func (s *Store) SlotCounts(gameID string) (map[int]int, error) {
	rows, err := s.db.Query(
		`SELECT landed_column, COUNT(*)
		 FROM drops
		 WHERE game_id = ?
		 GROUP BY landed_column`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count slots: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var column, n int
		if err := rows.Scan(&column, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan slot row: %w", err)
		}
		counts[column] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}
