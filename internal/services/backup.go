package services

import (
	"context"
	"fmt"
	"os"

	"kharcha/internal/ledger"
	applog "kharcha/internal/log"
	"kharcha/internal/store/file"
)

// DefaultBackupFile is the file name used when no output path is given.
const DefaultBackupFile = "expense-backup.json"

// BackupLedger is the part of the ledger a backup needs.
type BackupLedger interface {
	Export() ([]byte, error)
	MergeRestore(ctx context.Context, data []byte) (ledger.MergeResult, error)
}

// BackupService moves the ledger document to and from backup files.
type BackupService struct {
	ledger BackupLedger
	logger *applog.Logger
}

func NewBackupService(l BackupLedger, logger *applog.Logger) *BackupService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &BackupService{
		ledger: l,
		logger: logger.WithComponent(applog.ComponentBackup),
	}
}

// ExportFile writes the indented backup to path (DefaultBackupFile when
// empty) and returns the path written. An empty ledger is refused with
// ledger.ErrNothingToExport and no file is created.
func (s *BackupService) ExportFile(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = DefaultBackupFile
	}

	data, err := s.ledger.Export()
	if err != nil {
		return "", err
	}
	if err := file.WriteAtomic(path, data); err != nil {
		s.logger.ErrorContext(ctx, "Failed to write backup",
			applog.NewFields().
				WithOperation(applog.OpExport).
				WithErrorType(applog.ErrorTypeStorage).
				WithError(err).
				ToSlice()...)
		return "", fmt.Errorf("write backup %s: %w", path, err)
	}

	s.logger.InfoContext(ctx, "Backup written",
		applog.FieldOperation, applog.OpExport,
		applog.FieldPath, path,
		"size", len(data))
	return path, nil
}

// RestoreFile merges the backup at path into the ledger. Local data is never
// overwritten; see ledger.Store.MergeLedger.
func (s *BackupService) RestoreFile(ctx context.Context, path string) (ledger.MergeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ledger.MergeResult{}, fmt.Errorf("read backup %s: %w", path, err)
	}

	res, err := s.ledger.MergeRestore(ctx, data)
	if err != nil {
		return res, fmt.Errorf("restore %s: %w", path, err)
	}

	s.logger.InfoContext(ctx, "Backup restored",
		applog.FieldOperation, applog.OpMerge,
		applog.FieldPath, path,
		"incomes_added", res.IncomesAdded,
		"expenses_added", res.ExpensesAdded)
	return res, nil
}
