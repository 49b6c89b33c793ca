// Package storage provides persistence for the high-score table and run history.
// The SQLite store uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/session"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
// It is safe for concurrent use by several sessions.
type Store struct {
	db *sql.DB
}

var (
	_ session.ScoreStore  = (*Store)(nil)
	_ session.RunRecorder = (*Store)(nil)
)

// RunEntry is a finished run read back from the database.
type RunEntry struct {
	ID         int64
	RunID      string
	Difficulty config.Difficulty
	Score      int
	Length     int
	Reason     string // "wall", "self", or "none" for a filled board
	Won        bool
	Ticks      int64
	Duration   time.Duration
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
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

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			difficulty TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			reason TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// LoadHighScores reads the high-score table. Difficulties without a row read
// as zero; on error the zero table is returned along with it.
func (s *Store) LoadHighScores() (session.HighScoreTable, error) {
	rows, err := s.db.Query("SELECT difficulty, score FROM high_scores")
	if err != nil {
		return session.NewHighScoreTable(), fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	table := session.NewHighScoreTable()
	for rows.Next() {
		var d string
		var score int
		if err := rows.Scan(&d, &score); err != nil {
			return session.NewHighScoreTable(), fmt.Errorf("storage: cannot scan row: %w", err)
		}
		table[config.Difficulty(d)] = score
	}

	if err := rows.Err(); err != nil {
		return session.NewHighScoreTable(), fmt.Errorf("storage: row iteration error: %w", err)
	}

	return table.Normalize(), nil
}

// SaveHighScores writes the table in one transaction. A stored record is never
// lowered, so sessions sharing the database cannot clobber each other's records.
func (s *Store) SaveHighScores(table session.HighScoreTable) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for d, score := range table.Normalize() {
		_, err := tx.Exec(
			`INSERT INTO high_scores (difficulty, score, updated_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(difficulty) DO UPDATE SET
			   score = MAX(high_scores.score, excluded.score),
			   updated_at = excluded.updated_at`,
			string(d), score,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save high score for %s: %w", d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit high scores: %w", err)
	}
	return nil
}

// ResetHighScores deletes every record, the run history included.
func (s *Store) ResetHighScores() error {
	if _, err := s.db.Exec("DELETE FROM high_scores; DELETE FROM runs;"); err != nil {
		return fmt.Errorf("storage: cannot reset scores: %w", err)
	}
	return nil
}

// RecordRun stores a finished run. Recording the same run twice is a no-op.
func (s *Store) RecordRun(r session.RunResult) error {
	ended := r.EndedAt
	if ended.IsZero() {
		ended = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO runs
		 (run_id, difficulty, score, length, reason, won, ticks, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		string(r.Difficulty),
		r.Score,
		r.Length,
		r.Reason.String(),
		r.Won,
		int64(r.Ticks),
		r.Duration.Milliseconds(),
		ended.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record run: %w", err)
	}
	return nil
}

// TopRuns retrieves the best N runs for the given difficulty.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(d config.Difficulty, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, difficulty, score, length, reason, won, ticks, duration_ms, created_at
		 FROM runs
		 WHERE difficulty = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		string(d), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all difficulties.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, difficulty, score, length, reason, won, ticks, duration_ms, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunCount returns the number of recorded runs for the given difficulty.
func (s *Store) RunCount(d config.Difficulty) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE difficulty = ?", string(d)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return count, nil
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var difficulty string
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.RunID,
			&difficulty,
			&e.Score,
			&e.Length,
			&e.Reason,
			&e.Won,
			&e.Ticks,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty = config.Difficulty(difficulty)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
