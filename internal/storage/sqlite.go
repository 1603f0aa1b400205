// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrReplayNotFound is returned when no replay has the requested ID.
var ErrReplayNotFound = errors.New("storage: replay not found")

// ErrAmbiguousID is returned when a short ID prefix matches several replays.
var ErrAmbiguousID = errors.New("storage: ambiguous replay id")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayRecord is one stored run. Config and Inputs are opaque blobs owned
// by the replay package.
type ReplayRecord struct {
	ID          string
	GameID      string
	Seed        int64
	TickRate    int
	Difficulty  string
	Fingerprint string
	Config      []byte
	Inputs      []byte
	Steps       uint64
	Score       int
	Outcome     string
	CreatedAt   time.Time
}

// ReplayStats contains aggregated statistics over stored runs of a game.
type ReplayStats struct {
	GameID     string
	Runs       int
	Wins       int
	LastPlayed time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			config_fingerprint TEXT NOT NULL,
			config BLOB NOT NULL,
			inputs BLOB NOT NULL,
			steps INTEGER NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
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

// SaveReplay inserts a replay. IDs must be unique.
func (s *Store) SaveReplay(r ReplayRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO replays
		 (id, game_id, seed, tick_rate, difficulty, config_fingerprint, config, inputs, steps, score, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Seed, r.TickRate, r.Difficulty, r.Fingerprint,
		r.Config, r.Inputs, int64(r.Steps), r.Score, r.Outcome,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// Replay retrieves a full replay, blobs included.
func (s *Store) Replay(id string) (ReplayRecord, error) {
	var r ReplayRecord
	var steps int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, tick_rate, difficulty, config_fingerprint,
		        config, inputs, steps, score, outcome, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(
		&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.Difficulty, &r.Fingerprint,
		&r.Config, &r.Inputs, &steps, &r.Score, &r.Outcome, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ReplayRecord{}, fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}
	if err != nil {
		return ReplayRecord{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.Steps = uint64(steps)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// ResolveID expands a replay ID prefix, as printed by listings, to the full ID.
func (s *Store) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrReplayNotFound)
	}
	rows, err := s.db.Query(
		`SELECT id FROM replays WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot resolve id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: cannot resolve id: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrReplayNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// RecentReplays lists the newest replays for a game. Config and Inputs are
// left empty; load a single replay to get them.
func (s *Store) RecentReplays(gameID string, limit int) ([]ReplayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, tick_rate, difficulty, config_fingerprint,
		        steps, score, outcome, created_at
		 FROM replays
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var records []ReplayRecord
	for rows.Next() {
		var r ReplayRecord
		var steps int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.Difficulty, &r.Fingerprint,
			&steps, &r.Score, &r.Outcome, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Steps = uint64(steps)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteReplay removes a replay. Deleting a missing ID is not an error.
func (s *Store) DeleteReplay(id string) error {
	if _, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	return nil
}

// Stats aggregates stored runs of a game. outcome "won" counts as a win.
func (s *Store) Stats(gameID string) (*ReplayStats, error) {
	stats := &ReplayStats{GameID: gameID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        MAX(created_at)
		 FROM replays WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.Wins, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get replay stats: %w", err)
	}

	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
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
