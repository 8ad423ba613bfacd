package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGooseUp(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestMigrateDB_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var called bool
	stubGooseUp(t, func(_ context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		assert.Same(t, db, got)
		assert.Equal(t, migrationsDir, dir)
		assert.Empty(t, opts)
		return nil
	})

	require.NoError(t, MigrateDB(context.Background(), db))
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDB_Error(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	stubGooseUp(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return boom
	})

	err = MigrateDB(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to apply migrations")
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(migrations, migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		data, err := fs.ReadFile(migrations, migrationsDir+"/"+e.Name())
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "-- +goose Up"), e.Name())
		assert.True(t, strings.Contains(string(data), "-- +goose Down"), e.Name())
	}
}
