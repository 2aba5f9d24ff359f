package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	applog "kharcha/internal/log"
	"kharcha/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements store.KV on a single kv_store table.
type SQLiteRepository struct {
	db     *sql.DB
	logger *applog.Logger
}

var _ store.KV = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens the database at dbPath, creating its directory,
// and migrates the kv_store schema.
func NewSQLiteRepository(dbPath string, logger *applog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer per session; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := migrateKV(dbPath, migrationsFS, migrationsDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dbPath, err)
	}
	logger.Debug("SQLite schema ready",
		applog.FieldPath, dbPath,
		applog.FieldSchemaVersion, version)

	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Get implements store.KV
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get key %s: %w", key, err)
	}
	return value, nil
}

// Set implements store.KV
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set key %s: %w", key, err)
	}

	r.logger.DebugContext(ctx, "Value saved to SQLite",
		applog.FieldKey, key,
		applog.FieldSize, len(value))
	return nil
}
