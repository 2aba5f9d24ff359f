package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/config"
	"kharcha/internal/store"
)

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name   string
		config Config
		check  func(t *testing.T)
	}{
		{
			name:   "memory",
			config: Config{Type: MemoryBackend},
		},
		{
			name:   "file",
			config: Config{Type: FileBackend, DataDirectory: filepath.Join(dir, "files")},
			check: func(t *testing.T) {
				_, err := os.Stat(filepath.Join(dir, "files", "scratch.json"))
				assert.NoError(t, err)
			},
		},
		{
			name:   "sqlite",
			config: Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "db", "kharcha.db")},
			check: func(t *testing.T) {
				_, err := os.Stat(filepath.Join(dir, "db", "kharcha.db"))
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewFactory(nil).CreateBackend(ctx, tt.config)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, res.Close()) })

			_, err = res.Store.Get(ctx, "scratch")
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, res.Store.Set(ctx, "scratch", []byte(`{}`)))
			got, err := res.Store.Get(ctx, "scratch")
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(got))

			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.CreateBackend(context.Background(), Config{Type: "postgres"})
	assert.Error(t, err)
	_, err = f.CreateBackend(context.Background(), Config{Type: SQLiteBackend})
	assert.ErrorContains(t, err, "SQLite database path is required")
}

func TestFromAppConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DataBackend = "sqlite"

	got, err := FromAppConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, SQLiteDBPath: cfg.SQLiteDBPath, DataDirectory: cfg.DataDir}, got)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)

	cfg.DataBackend = "postgres"
	_, err = FromAppConfig(cfg)
	assert.Error(t, err)

	assert.Equal(t, []string{"sqlite", "file", "memory"}, GetBackendTypeStrings())
}
