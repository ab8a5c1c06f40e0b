// Package history keeps a local SQLite record of build and publish runs,
// backing the history command.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID         int64
	RunID      string
	Project    string
	Version    string
	Outcome    string
	Pages      int
	DurationMS int64
	Published  bool
	CommitHash string
	CreatedAt  time.Time
}

// Store persists runs in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the history database at dbPath. Use ":memory:" for
// an in-memory store. Parent directories are created as needed.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		project TEXT NOT NULL,
		version TEXT,
		outcome TEXT NOT NULL,
		pages INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		published INTEGER NOT NULL DEFAULT 0,
		commit_hash TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends a run to the history.
func (s *Store) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (run_id, project, version, outcome, pages, duration_ms, published, commit_hash, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.RunID, run.Project, run.Version, run.Outcome, run.Pages, run.DurationMS,
		boolToInt(run.Published), run.CommitHash, createdAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. A limit of 0 or less
// means no limit. When failedOnly is set only non-success runs are returned.
func (s *Store) List(ctx context.Context, limit int, failedOnly bool) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, run_id, project, version, outcome, pages, duration_ms, published, commit_hash, created_at FROM runs"
	var args []any
	if failedOnly {
		query += " WHERE outcome != 'success'"
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Prune retains only the keep newest runs and deletes the rest. It returns
// the number of deleted rows.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)", keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var published int
		var createdAt int64
		var version, commitHash sql.NullString
		err := rows.Scan(&r.ID, &r.RunID, &r.Project, &version, &r.Outcome,
			&r.Pages, &r.DurationMS, &published, &commitHash, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Version = version.String
		r.CommitHash = commitHash.String
		r.Published = published != 0
		r.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
