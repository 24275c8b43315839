package adapter

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"dadmind/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteAdapterWithMock(t *testing.T) (*SQLiteCacheAdapter, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	adapter := &SQLiteCacheAdapter{db: sqlx.NewDb(db, "sqlmock"), now: func() time.Time { return now }}
	return adapter, mock, now
}

func TestSQLiteCacheAdapter_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		adapter, mock, now := newSQLiteAdapterWithMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(sqliteGetQuery)).
			WithArgs("k", now.Unix()).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("v"))

		val, err := adapter.Get(ctx, "k")
		assert.NoError(t, err)
		assert.Equal(t, "v", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		adapter, mock, now := newSQLiteAdapterWithMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(sqliteGetQuery)).
			WithArgs("k", now.Unix()).
			WillReturnError(sql.ErrNoRows)

		_, err := adapter.Get(ctx, "k")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		adapter, mock, now := newSQLiteAdapterWithMock(t)
		dbErr := errors.New("disk I/O error")
		mock.ExpectQuery(regexp.QuoteMeta(sqliteGetQuery)).
			WithArgs("k", now.Unix()).
			WillReturnError(dbErr)

		_, err := adapter.Get(ctx, "k")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLiteCacheAdapter_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("WithExpiration", func(t *testing.T) {
		adapter, mock, now := newSQLiteAdapterWithMock(t)
		mock.ExpectExec(regexp.QuoteMeta(sqliteSetQuery)).
			WithArgs("k", "v", now.Add(time.Hour).Unix()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, adapter.Set(ctx, "k", "v", time.Hour))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoExpiration", func(t *testing.T) {
		adapter, mock, _ := newSQLiteAdapterWithMock(t)
		mock.ExpectExec(regexp.QuoteMeta(sqliteSetQuery)).
			WithArgs("k", "v", int64(0)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, adapter.Set(ctx, "k", "v", 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		adapter, mock, _ := newSQLiteAdapterWithMock(t)
		dbErr := errors.New("database is locked")
		mock.ExpectExec(regexp.QuoteMeta(sqliteSetQuery)).WillReturnError(dbErr)

		assert.ErrorIs(t, adapter.Set(ctx, "k", "v", 0), dbErr)
	})
}

func TestSQLiteCacheAdapter_DeleteAndPing(t *testing.T) {
	ctx := context.Background()
	adapter, mock, _ := newSQLiteAdapterWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(sqliteDeleteQuery)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPing()

	assert.NoError(t, adapter.Delete(ctx, "k"))
	assert.NoError(t, adapter.Ping(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
