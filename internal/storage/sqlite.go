// Package storage provides SQLite-based persistence for the score ledger.
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

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
	"github.com/vovakirdan/shapedrop/internal/ledger"
)

const timeLayout = "2006-01-02 15:04:05"

// Store keeps one best record per (player, difficulty).
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ ledger.Ledger = (*Store)(nil)

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
	// One connection serializes writers from concurrent SSH sessions.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			player TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 1,
			submitted_at TEXT NOT NULL,
			PRIMARY KEY (player, difficulty)
		);
		CREATE INDEX IF NOT EXISTS idx_records_board ON records(difficulty, score DESC, submitted_at);
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

// Submit stores r if it beats the player's record at its difficulty.
// Every accepted submission counts as an attempt, improved or not.
func (s *Store) Submit(r ledger.Result) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin submit: %w", err)
	}
	defer tx.Rollback()

	var best int
	err = tx.QueryRow(
		"SELECT score FROM records WHERE player = ? AND difficulty = ?",
		r.Player, int(r.Difficulty),
	).Scan(&best)

	now := s.now().UTC().Format(timeLayout)
	improved := false

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(
			`INSERT INTO records (player, difficulty, score, lines, attempts, submitted_at)
			 VALUES (?, ?, ?, ?, 1, ?)`,
			r.Player, int(r.Difficulty), r.Score, r.Lines, now,
		)
		improved = true
	case err != nil:
		return false, fmt.Errorf("storage: cannot query record: %w", err)
	case r.Improves(&ledger.Record{Score: best}):
		_, err = tx.Exec(
			`UPDATE records SET score = ?, lines = ?, submitted_at = ?, attempts = attempts + 1
			 WHERE player = ? AND difficulty = ?`,
			r.Score, r.Lines, now, r.Player, int(r.Difficulty),
		)
		improved = true
	default:
		_, err = tx.Exec(
			"UPDATE records SET attempts = attempts + 1 WHERE player = ? AND difficulty = ?",
			r.Player, int(r.Difficulty),
		)
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot save record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit record: %w", err)
	}
	return improved, nil
}

// UserRecord returns the player's best record at d, or nil if none exists.
func (s *Store) UserRecord(player string, d engine.Difficulty) (*ledger.Record, error) {
	row := s.db.QueryRow(
		`SELECT player, difficulty, score, lines, submitted_at
		 FROM records WHERE player = ? AND difficulty = ?`,
		player, int(d),
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query record: %w", err)
	}
	return &rec, nil
}

// Leaderboard returns the best records at d ordered by score descending,
// earliest submission first on ties. limit <= 0 returns all records.
func (s *Store) Leaderboard(d engine.Difficulty, limit int) ([]ledger.Record, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	return s.queryRecords(
		`SELECT player, difficulty, score, lines, submitted_at
		 FROM records
		 WHERE difficulty = ?
		 ORDER BY score DESC, submitted_at ASC, player ASC
		 LIMIT ?`,
		int(d), limit,
	)
}

// PlayerRecords returns the player's records at every difficulty they have
// played, easiest first.
func (s *Store) PlayerRecords(player string) ([]ledger.Record, error) {
	return s.queryRecords(
		`SELECT player, difficulty, score, lines, submitted_at
		 FROM records
		 WHERE player = ?
		 ORDER BY difficulty ASC`,
		player,
	)
}

// HighScore returns the best score at d, or 0 if there are no records.
func (s *Store) HighScore(d engine.Difficulty) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM records WHERE difficulty = ?",
		int(d),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRecords deletes every record at d.
func (s *Store) ClearRecords(d engine.Difficulty) error {
	if _, err := s.db.Exec("DELETE FROM records WHERE difficulty = ?", int(d)); err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	return nil
}

// DifficultyStats aggregates the records of one difficulty.
type DifficultyStats struct {
	Difficulty    engine.Difficulty
	Players       int
	Attempts      int
	HighScore     int
	AvgScore      float64
	TotalLines    int64
	LastSubmitted time.Time
}

// Stats returns aggregated statistics for d.
func (s *Store) Stats(d engine.Difficulty) (*DifficultyStats, error) {
	stats := &DifficultyStats{Difficulty: d}
	var last sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(attempts), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(lines), 0), MAX(submitted_at)
		 FROM records WHERE difficulty = ?`,
		int(d),
	).Scan(&stats.Players, &stats.Attempts, &stats.HighScore, &stats.AvgScore, &stats.TotalLines, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if last.Valid {
		stats.LastSubmitted = parseTime(last.String)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (ledger.Record, error) {
	var rec ledger.Record
	var d int
	var submittedAt any
	if err := row.Scan(&rec.Player, &d, &rec.Score, &rec.Lines, &submittedAt); err != nil {
		return rec, err
	}
	rec.Difficulty = engine.Difficulty(d)
	rec.SubmittedAt = parseTime(submittedAt)
	return rec, nil
}

func (s *Store) queryRecords(query string, args ...any) ([]ledger.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
