package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	migrationsDir = "migrations"
	// golang-migrate bookkeeping, kept apart from kv_store.
	migrationsTable = "kv_schema_migrations"
)

// migrateKV applies the scripts found under dir in scripts to the database
// at dbPath and returns the schema version it ends on. It works on its own
// connection since closing the migrator closes the handle it was given.
func migrateKV(dbPath string, scripts fs.FS, dir string) (uint, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open migration connection: %w", err)
	}
	defer conn.Close()

	driver, err := sqlite.WithInstance(conn, &sqlite.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return 0, fmt.Errorf("create sqlite migration driver: %w", err)
	}
	src, err := iofs.New(scripts, dir)
	if err != nil {
		return 0, fmt.Errorf("read migration scripts in %s: %w", dir, err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return 0, fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}
