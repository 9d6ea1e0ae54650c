// Package store persists schedule runs of the HTTP service in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rhyrak/lecture-scheduler/internal/apperrors"
)

const (
	StatusInProgress = "in progress"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

const schema = `CREATE TABLE IF NOT EXISTS schedule (
	id         TEXT PRIMARY KEY,
	status     TEXT NOT NULL,
	report     TEXT NOT NULL DEFAULT '',
	data       TEXT NOT NULL DEFAULT '',
	failures   TEXT NOT NULL DEFAULT '',
	pdf        BLOB,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Run is one allocation request and, once finished, its outputs.
type Run struct {
	ID        string    `db:"id" json:"id"`
	Status    string    `db:"status" json:"status"`
	Report    string    `db:"report" json:"report"`
	Data      string    `db:"data" json:"-"`
	Failures  string    `db:"failures" json:"-"`
	PDF       []byte    `db:"pdf" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Result holds the outputs of a successful run.
type Result struct {
	Data     string
	Failures string
	PDF      []byte
	Report   string
}

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open creates the database file and its directory if needed and applies
// the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schedule table: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Create records a new run in progress.
func (s *Store) Create(ctx context.Context, id string) error {
	const query = `INSERT INTO schedule (id, status, report, data, failures, created_at, updated_at)
VALUES (?, ?, '', '', '', ?, ?)`
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, query, id, StatusInProgress, now, now); err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// Complete stores the outputs of a successful run.
func (s *Store) Complete(ctx context.Context, id string, res Result) error {
	const query = `UPDATE schedule SET status = ?, report = ?, data = ?, failures = ?, pdf = ?, updated_at = ? WHERE id = ?`
	return s.update(ctx, query, StatusSuccess, res.Report, res.Data, res.Failures, res.PDF, time.Now().UTC(), id)
}

// Fail marks a run failed with the given report.
func (s *Store) Fail(ctx context.Context, id, report string) error {
	const query = `UPDATE schedule SET status = ?, report = ?, updated_at = ? WHERE id = ?`
	return s.update(ctx, query, StatusFailed, report, time.Now().UTC(), id)
}

func (s *Store) update(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return expectRow(res)
}

// List returns run metadata, newest first. Outputs are not loaded.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	const query = `SELECT id, status, report, created_at, updated_at FROM schedule ORDER BY created_at DESC, id ASC`
	runs := []Run{}
	if err := s.db.SelectContext(ctx, &runs, query); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get fetches one run with its outputs.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	const query = `SELECT id, status, report, data, failures, pdf, created_at, updated_at FROM schedule WHERE id = ?`
	var run Run
	if err := s.db.GetContext(ctx, &run, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "schedule not found")
		}
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schedule WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.Clone(apperrors.ErrNotFound, "schedule not found")
	}
	return nil
}
