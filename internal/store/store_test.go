package store

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/lecture-scheduler/internal/apperrors"
)

func newStoreMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlite3")
	return New(sqlxDB), mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestStoreCreate(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO schedule").
		WithArgs("run-1", StatusInProgress, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Create(context.Background(), "run-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreComplete(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE schedule SET status").
		WithArgs(StatusSuccess, "ok", "a,b\n", "", []byte("%PDF"), sqlmock.AnyArg(), "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Complete(context.Background(), "run-1", Result{Data: "a,b\n", PDF: []byte("%PDF"), Report: "ok"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFailUnknownRun(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE schedule SET status").
		WithArgs(StatusFailed, "boom", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Fail(context.Background(), "missing", "boom")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStoreList(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "status", "report", "created_at", "updated_at"}).
		AddRow("run-2", StatusInProgress, "", now, now).
		AddRow("run-1", StatusSuccess, "[  OK]", now, now)
	mock.ExpectQuery("SELECT id, status, report, created_at").WillReturnRows(rows)

	runs, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, StatusSuccess, runs[1].Status)
}

func TestStoreGetNotFound(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule WHERE id = ?")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStoreDelete(t *testing.T) {
	s, mock, cleanup := newStoreMock(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM schedule").WithArgs("run-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Delete(context.Background(), "run-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "db", "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Create(ctx, "run-1"))
	run, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, run.Status)

	require.NoError(t, s.Complete(ctx, "run-1", Result{Data: "x\n", Failures: "y\n", PDF: []byte("%PDF-1.3"), Report: "done"}))
	run, err = s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, run.Status)
	assert.Equal(t, "x\n", run.Data)
	assert.Equal(t, []byte("%PDF-1.3"), run.PDF)

	runs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	require.NoError(t, s.Delete(ctx, "run-1"))
	assert.True(t, apperrors.Is(s.Delete(ctx, "run-1"), apperrors.ErrNotFound))
}
