// Package file stores each key as one file in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	applog "kharcha/internal/log"
	"kharcha/internal/store"
)

type Store struct {
	dir    string
	logger *applog.Logger
}

var _ store.KV = (*Store)(nil)

// New creates the directory if needed.
func New(dir string, logger *applog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &Store{dir: dir, logger: logger.WithComponent(applog.ComponentStorage)}, nil
}

// sanitizeKey makes a key safe for use as a filename and blocks path traversal.
func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "Read key from file store",
		applog.FieldKey, key,
		applog.FieldSize, len(data))
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := WriteAtomic(s.path(key), value); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Wrote key to file store",
		applog.FieldKey, key,
		applog.FieldSize, len(value))
	return nil
}

// WriteAtomic replaces path with data: a temp file in the same directory is
// synced and then renamed over the target.
func WriteAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
