// Package storage provides SQLite-based persistence for simulation batches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake-duel/internal/game"
	"github.com/vovakirdan/snake-duel/internal/sim"
)

// Store manages the SQLite database connection for batch persistence.
type Store struct {
	db *sql.DB
}

// RunEntry describes one stored batch run.
type RunEntry struct {
	ID          int64
	Label       string
	BaseSeed    int64
	FoodScore   int
	MaxTicks    int
	Repetitions int
	Games       int
	CreatedAt   time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			base_seed INTEGER NOT NULL,
			food_score INTEGER NOT NULL,
			max_ticks INTEGER NOT NULL,
			repetitions INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			case_name TEXT NOT NULL,
			strategy1 TEXT NOT NULL,
			strategy2 TEXT NOT NULL,
			rep INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			len1 INTEGER NOT NULL DEFAULT 0,
			len2 INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL,
			failed INTEGER NOT NULL DEFAULT 0,
			err TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_games_run_id ON games(run_id);
		CREATE INDEX IF NOT EXISTS idx_games_pairing ON games(run_id, case_name, strategy1, strategy2);
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

// SaveRun stores a batch and all its game records in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(label string, rules game.Rules, baseSeed int64, repetitions int, records []sim.OutcomeRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (label, base_seed, food_score, max_ticks, repetitions)
		 VALUES (?, ?, ?, ?, ?)`,
		label, baseSeed, rules.FoodScore, rules.MaxTicks, repetitions,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO games
		 (run_id, case_name, strategy1, strategy2, rep, outcome, score1, score2, len1, len2, ticks, seed, failed, err)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		failed := 0
		if r.Failed {
			failed = 1
		}
		if _, err := stmt.Exec(
			runID, r.Case, r.StrategyID1, r.StrategyID2, r.Rep,
			r.Outcome.String(), r.Score1, r.Score2, r.Len1, r.Len2,
			r.Ticks, r.Seed, failed, r.Err,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save game record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return runID, nil
}

// RecentRuns retrieves the most recent batch runs with their game counts.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.label, r.base_seed, r.food_score, r.max_ticks, r.repetitions,
		        COUNT(g.id), r.created_at
		 FROM runs r
		 LEFT JOIN games g ON g.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Label, &e.BaseSeed, &e.FoodScore, &e.MaxTicks,
			&e.Repetitions, &e.Games, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RunByID retrieves one stored run. Returns nil when the run does not exist.
func (s *Store) RunByID(runID int64) (*RunEntry, error) {
	var e RunEntry
	var createdAt any

	err := s.db.QueryRow(
		`SELECT r.id, r.label, r.base_seed, r.food_score, r.max_ticks, r.repetitions,
		        (SELECT COUNT(*) FROM games g WHERE g.run_id = r.id), r.created_at
		 FROM runs r
		 WHERE r.id = ?`,
		runID,
	).Scan(&e.ID, &e.Label, &e.BaseSeed, &e.FoodScore, &e.MaxTicks, &e.Repetitions, &e.Games, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}

	return &e, nil
}

// RunRecords reloads all game records of a run in their stored order, ready
// for re-aggregation.
func (s *Store) RunRecords(runID int64) ([]sim.OutcomeRecord, error) {
	rows, err := s.db.Query(
		`SELECT case_name, strategy1, strategy2, rep, outcome,
		        score1, score2, len1, len2, ticks, seed, failed, err
		 FROM games
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game records: %w", err)
	}
	defer rows.Close()

	var records []sim.OutcomeRecord
	for rows.Next() {
		var r sim.OutcomeRecord
		var outcome string
		var failed int
		if err := rows.Scan(&r.Case, &r.StrategyID1, &r.StrategyID2, &r.Rep, &outcome,
			&r.Score1, &r.Score2, &r.Len1, &r.Len2, &r.Ticks, &r.Seed, &failed, &r.Err); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		o, ok := game.ParseOutcome(outcome)
		if !ok {
			return nil, fmt.Errorf("storage: unknown outcome %q in run %d", outcome, runID)
		}
		r.Outcome = o
		r.Strategy1 = r.StrategyID1
		r.Strategy2 = r.StrategyID2
		r.Failed = failed != 0
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// OutcomeCounts returns how often each outcome occurred among the played
// games of a run, plus the number of failed games.
func (s *Store) OutcomeCounts(runID int64) (map[string]int, int, error) {
	rows, err := s.db.Query(
		`SELECT outcome, COUNT(*) FROM games WHERE run_id = ? AND failed = 0 GROUP BY outcome`,
		runID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("storage: cannot query outcome counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, 0, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var failures int
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM games WHERE run_id = ? AND failed = 1`, runID,
	).Scan(&failures)
	if err != nil {
		return nil, 0, fmt.Errorf("storage: cannot query failure count: %w", err)
	}

	return counts, failures, nil
}

// DeleteRun removes a run and all its game records.
func (s *Store) DeleteRun(runID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM games WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete game records: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return tx.Commit()
}
