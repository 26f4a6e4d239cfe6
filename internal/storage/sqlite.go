// Package storage provides SQLite-based persistence for Plinko drop history
// and play sessions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrUnknownSession is returned when a drop is recorded against a session
// that was never started.
var ErrUnknownSession = errors.New("storage: unknown session")

// Store manages the SQLite database connection for drop history.
type Store struct {
	db *sql.DB
}

// Session is one run of winnings, from a start or a stats reset until the
// next reset.
type Session struct {
	ID        string
	Player    string
	GameID    string
	Plays     int
	Winnings  int
	StartedAt time.Time
	UpdatedAt time.Time
}

// Average returns winnings per play, rounded down.
func (s Session) Average() int {
	if s.Plays == 0 {
		return 0
	}
	return s.Winnings / s.Plays
}

// Drop is a completed drop as recorded in the history.
type Drop struct {
	ID           int64
	SessionID    string
	GameID       string
	StartColumn  int
	LandedColumn int
	Payout       int
	Path         string
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SSH sessions and the HTTP API write concurrently; SQLite allows a
	// single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			game_id TEXT NOT NULL,
			plays INTEGER NOT NULL DEFAULT 0,
			winnings INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(game_id, winnings DESC);

		CREATE TABLE IF NOT EXISTS drops (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			game_id TEXT NOT NULL,
			start_column INTEGER NOT NULL,
			landed_column INTEGER NOT NULL,
			payout INTEGER NOT NULL,
			path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_drops_game_id ON drops(game_id);
		CREATE INDEX IF NOT EXISTS idx_drops_session_id ON drops(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession opens a new session for player on gameID.
func (s *Store) StartSession(player, gameID string) (Session, error) {
	sess := Session{
		ID:     uuid.NewString(),
		Player: player,
		GameID: gameID,
	}

	_, err := s.db.Exec(
		"INSERT INTO sessions (id, player, game_id) VALUES (?, ?, ?)",
		sess.ID, sess.Player, sess.GameID,
	)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot start session: %w", err)
	}

	now := time.Now().UTC()
	sess.StartedAt = now
	sess.UpdatedAt = now
	return sess, nil
}

// RecordDrop stores a completed drop and adds it to its session's totals.
// Returns the ID of the inserted drop.
func (s *Store) RecordDrop(ctx context.Context, d Drop) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions
		 SET plays = plays + 1, winnings = winnings + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		d.Payout, d.SessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update session: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("storage: cannot update session: %w", err)
	} else if n == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSession, d.SessionID)
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO drops (session_id, game_id, start_column, landed_column, payout, path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.SessionID, d.GameID, d.StartColumn, d.LandedColumn, d.Payout, d.Path,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save drop: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit drop: %w", err)
	}
	return id, nil
}

// SessionByID retrieves a session. Returns nil if it does not exist.
func (s *Store) SessionByID(id string) (*Session, error) {
	var sess Session
	var startedAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT id, player, game_id, plays, winnings, started_at, updated_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.Player, &sess.GameID, &sess.Plays, &sess.Winnings, &startedAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	sess.StartedAt = parseTime(startedAt)
	sess.UpdatedAt = parseTime(updatedAt)
	return &sess, nil
}

// TopSessions retrieves the sessions with the highest winnings for gameID.
// Sessions without plays are left out.
func (s *Store) TopSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, game_id, plays, winnings, started_at, updated_at
		 FROM sessions
		 WHERE game_id = ? AND plays > 0
		 ORDER BY winnings DESC, plays ASC, rowid ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var startedAt, updatedAt any
		if err := rows.Scan(&sess.ID, &sess.Player, &sess.GameID, &sess.Plays, &sess.Winnings, &startedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = parseTime(startedAt)
		sess.UpdatedAt = parseTime(updatedAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// RecentDrops retrieves the latest drops for gameID, newest first. An empty
// gameID matches every game.
func (s *Store) RecentDrops(gameID string, limit int) ([]Drop, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, game_id, start_column, landed_column, payout, path, created_at
		 FROM drops
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query drops: %w", err)
	}
	defer rows.Close()

	var drops []Drop
	for rows.Next() {
		var d Drop
		var createdAt any
		if err := rows.Scan(&d.ID, &d.SessionID, &d.GameID, &d.StartColumn, &d.LandedColumn, &d.Payout, &d.Path, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d.CreatedAt = parseTime(createdAt)
		drops = append(drops, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return drops, nil
}

// ClearHistory deletes all drops and sessions for the given game.
func (s *Store) ClearHistory(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM drops WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear drops: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
