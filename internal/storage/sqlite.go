// Package storage provides SQLite-based persistence for stage clear records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/sinland/internal/scene"
)

// Store manages the SQLite database connection for clear records.
// Every Store tags its inserts with one run ID, so a play session can be
// told apart from earlier ones.
type Store struct {
	db    *sql.DB
	runID string
}

// ClearEntry is one finished stage.
type ClearEntry struct {
	ID        int64
	RunID     string
	StageID   string
	Duration  time.Duration
	Respawns  int
	CreatedAt time.Time
}

// StageStats aggregates the clears of one stage.
type StageStats struct {
	StageID     string
	Clears      int
	Best        time.Duration
	Average     time.Duration
	Respawns    int
	Runs        int
	LastCleared time.Time
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

	store := &Store{db: db, runID: uuid.NewString()}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			stage_id TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			respawns INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_clears_stage_id ON clears(stage_id);
		CREATE INDEX IF NOT EXISTS idx_clears_best ON clears(stage_id, duration_ms ASC);
		CREATE INDEX IF NOT EXISTS idx_clears_run_id ON clears(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s != nil && s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RunID returns the ID attached to clears saved through this Store.
func (s *Store) RunID() string {
	return s.runID
}

// SaveClear records a finished stage. An empty RunID uses the Store's run.
// Returns the ID of the inserted record.
func (s *Store) SaveClear(e ClearEntry) (int64, error) {
	if e.RunID == "" {
		e.RunID = s.runID
	}
	result, err := s.db.Exec(
		"INSERT INTO clears (run_id, stage_id, duration_ms, respawns) VALUES (?, ?, ?, ?)",
		e.RunID, e.StageID, e.Duration.Milliseconds(), e.Respawns,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordClear saves a clear for the current run. A nil Store drops it.
func (s *Store) RecordClear(stageID string, d time.Duration, respawns int) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.SaveClear(ClearEntry{StageID: stageID, Duration: d, Respawns: respawns})
	return err
}

// Ensure Store implements scene.Recorder
var _ scene.Recorder = (*Store)(nil)

// BestClears retrieves the fastest N clears of a stage.
func (s *Store) BestClears(stageID string, limit int) ([]ClearEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, stage_id, duration_ms, respawns, created_at
		 FROM clears
		 WHERE stage_id = ?
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		stageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	return scanClears(rows)
}

// RecentClears retrieves the latest N clears across all stages.
func (s *Store) RecentClears(limit int) ([]ClearEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, stage_id, duration_ms, respawns, created_at
		 FROM clears
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent clears: %w", err)
	}
	return scanClears(rows)
}

func scanClears(rows *sql.Rows) ([]ClearEntry, error) {
	defer rows.Close()

	var entries []ClearEntry
	for rows.Next() {
		var e ClearEntry
		var ms int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.StageID, &ms, &e.Respawns, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(ms) * time.Millisecond
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
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// StageStats retrieves aggregated statistics for one stage.
// A stage without clears returns zero stats.
func (s *Store) StageStats(stageID string) (*StageStats, error) {
	stats := &StageStats{StageID: stageID}

	var best, avg float64
	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(duration_ms), 0), COALESCE(AVG(duration_ms), 0),
		        COALESCE(SUM(respawns), 0), COUNT(DISTINCT run_id), MAX(created_at)
		 FROM clears WHERE stage_id = ?`,
		stageID,
	).Scan(&stats.Clears, &best, &avg, &stats.Respawns, &stats.Runs, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}

	stats.Best = time.Duration(best) * time.Millisecond
	stats.Average = time.Duration(avg) * time.Millisecond
	stats.LastCleared = parseTime(last)
	return stats, nil
}

// AllStageStats retrieves statistics for every stage that was cleared.
func (s *Store) AllStageStats() (map[string]*StageStats, error) {
	rows, err := s.db.Query(
		`SELECT stage_id, COUNT(*), MIN(duration_ms), AVG(duration_ms),
		        SUM(respawns), COUNT(DISTINCT run_id), MAX(created_at)
		 FROM clears
		 GROUP BY stage_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stage stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StageStats)
	for rows.Next() {
		var st StageStats
		var best, avg float64
		var last any
		if err := rows.Scan(&st.StageID, &st.Clears, &best, &avg, &st.Respawns, &st.Runs, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Best = time.Duration(best) * time.Millisecond
		st.Average = time.Duration(avg) * time.Millisecond
		st.LastCleared = parseTime(last)
		stats[st.StageID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearStage deletes all records of a stage.
func (s *Store) ClearStage(stageID string) error {
	_, err := s.db.Exec("DELETE FROM clears WHERE stage_id = ?", stageID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	return nil
}
