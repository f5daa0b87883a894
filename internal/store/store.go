// Package store persists analysis runs and their activation-record frames
// in SQLite so a later stage can consume layouts without re-analyzing.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/miniada/miniada/symtab"
)

// ErrRunNotFound is returned by Frames for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one stored analysis outcome.
type Run struct {
	ID         string         `json:"id" yaml:"id"`
	Program    string         `json:"program" yaml:"program"`
	File       string         `json:"file" yaml:"file"`
	CreatedAt  time.Time      `json:"createdAt" yaml:"createdAt"`
	Successful bool           `json:"successful" yaml:"successful"`
	ErrorCode  string         `json:"errorCode,omitempty" yaml:"errorCode,omitempty"`
	Error      string         `json:"error,omitempty" yaml:"error,omitempty"`
	Tokens     int            `json:"tokens" yaml:"tokens"`
	Frames     []symtab.Frame `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// Store is a SQLite-backed run store, safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the database at path, creating its directory.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		program TEXT NOT NULL,
		file TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		successful INTEGER NOT NULL,
		error_code TEXT,
		error TEXT,
		tokens INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS frames (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		proc_name TEXT NOT NULL,
		depth INTEGER NOT NULL,
		line INTEGER NOT NULL,
		param_size INTEGER NOT NULL,
		local_size INTEGER NOT NULL,
		params TEXT,
		locals TEXT,
		nested TEXT,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_program ON runs(program);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts run and its frames in one transaction. A missing ID or
// creation time is filled in.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, program, file, created_at, successful, error_code, error, tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Program, run.File, run.CreatedAt, run.Successful,
		nullString(run.ErrorCode), nullString(run.Error), run.Tokens)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO frames (run_id, seq, proc_name, depth, line, param_size, local_size, params, locals, nested)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, f := range run.Frames {
		params, err := json.Marshal(f.Params)
		if err != nil {
			return fmt.Errorf("failed to encode params of %s: %w", f.Procedure, err)
		}
		locals, err := json.Marshal(f.Locals)
		if err != nil {
			return fmt.Errorf("failed to encode locals of %s: %w", f.Procedure, err)
		}
		nested, err := json.Marshal(f.Nested)
		if err != nil {
			return fmt.Errorf("failed to encode nested of %s: %w", f.Procedure, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, f.Procedure, f.Depth, f.Line,
			f.ParamSize, f.LocalSize, string(params), string(locals), string(nested)); err != nil {
			return fmt.Errorf("failed to insert frame %s: %w", f.Procedure, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Runs lists stored runs, newest first, without their frames. A positive
// limit caps the result.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, program, file, created_at, successful, error_code, error, tokens
		FROM runs ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var code, msg sql.NullString
		if err := rows.Scan(&r.ID, &r.Program, &r.File, &r.CreatedAt, &r.Successful,
			&code, &msg, &r.Tokens); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.ErrorCode = code.String
		r.Error = msg.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Frames returns the frames of run id in the order they were saved.
func (s *Store) Frames(ctx context.Context, id string) ([]symtab.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT proc_name, depth, line, param_size, local_size, params, locals, nested
		FROM frames WHERE run_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query frames: %w", err)
	}
	defer rows.Close()

	var frames []symtab.Frame
	for rows.Next() {
		var f symtab.Frame
		var params, locals, nested sql.NullString
		if err := rows.Scan(&f.Procedure, &f.Depth, &f.Line, &f.ParamSize, &f.LocalSize,
			&params, &locals, &nested); err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		if err := decodeJSON(params, &f.Params); err != nil {
			return nil, fmt.Errorf("failed to decode params of %s: %w", f.Procedure, err)
		}
		if err := decodeJSON(locals, &f.Locals); err != nil {
			return nil, fmt.Errorf("failed to decode locals of %s: %w", f.Procedure, err)
		}
		if err := decodeJSON(nested, &f.Nested); err != nil {
			return nil, fmt.Errorf("failed to decode nested of %s: %w", f.Procedure, err)
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// Prune deletes runs created before cutoff and returns how many went.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func decodeJSON(s sql.NullString, v any) error {
	if !s.Valid || s.String == "" || s.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), v)
}
