package storage

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "kharcha/internal/log"
	"kharcha/internal/store"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "kharcha.db")
	repo, err := NewSQLiteRepository(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestSQLiteRepositoryGetSet(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	_, err := repo.Get(ctx, "personal-expense-app")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "personal-expense-app", []byte(`{"incomes":{},"expenses":[]}`)))
	require.NoError(t, repo.Set(ctx, "personal-expense-app", []byte(`{"incomes":{"2025-06":5},"expenses":[]}`)))

	got, err := repo.Get(ctx, "personal-expense-app")
	require.NoError(t, err)
	assert.JSONEq(t, `{"incomes":{"2025-06":5},"expenses":[]}`, string(got))
}

func TestSQLiteRepositoryLogsThroughComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelDebug, Output: &buf, Component: applog.ComponentApp})

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "kharcha.db"), logger)
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.Set(context.Background(), "personal-expense-app", []byte("{}")))

	out := buf.String()
	assert.Contains(t, out, "component=storage")
	assert.Contains(t, out, "schema_version=1")
	assert.Contains(t, out, "key=personal-expense-app")
	assert.NotContains(t, out, "component=app")
}

func TestMigrateKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kharcha.db")

	version, err := migrateKV(path, migrationsFS, migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	version, err = migrateKV(path, migrationsFS, migrationsDir)
	require.NoError(t, err, "a second run is a no-op")
	assert.Equal(t, uint(1), version)

	_, err = migrateKV(path, migrationsFS, "missing")
	assert.Error(t, err)
}

func TestSQLiteRepositoryReopen(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepo(t)
	require.NoError(t, repo.Set(ctx, "k", []byte("v")))
	require.NoError(t, repo.Close())

	// Migrations are idempotent and data survives.
	again, err := NewSQLiteRepository(path, nil)
	require.NoError(t, err)
	defer again.Close()

	got, err := again.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
