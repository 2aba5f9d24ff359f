package backend

import (
	"context"
	"fmt"

	applog "kharcha/internal/log"
	"kharcha/internal/storage"
	"kharcha/internal/store/file"
	"kharcha/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case FileBackend:
		return f.createFileBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.DebugContext(ctx, "Initialized SQLite backend",
		applog.FieldBackend, config.Type.String(),
		applog.FieldPath, config.SQLiteDBPath)

	return &BackendResult{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createFileBackend(ctx context.Context, config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data" // Default directory
	}

	s, err := file.New(dataDir, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file backend: %w", err)
	}

	f.logger.DebugContext(ctx, "Initialized file backend",
		applog.FieldBackend, config.Type.String(),
		applog.FieldPath, dataDir)

	return &BackendResult{Store: s}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context) (*BackendResult, error) {
	f.logger.DebugContext(ctx, "Initialized memory backend, data will not outlive the process",
		applog.FieldBackend, MemoryBackend.String())

	return &BackendResult{Store: memory.New()}, nil
}
