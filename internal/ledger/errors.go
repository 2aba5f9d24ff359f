package ledger

import "errors"

var (
	// ErrExpenseNotFound is returned by UpdateExpense for an unknown id.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrBadShape rejects a document that is not {"incomes": {...}, "expenses": [...]}.
	ErrBadShape = errors.New("invalid ledger document")
	// ErrPersist wraps a failed write-back. The in-memory change is kept.
	ErrPersist = errors.New("persist ledger")
	// ErrNothingToExport is returned when a backup of an empty ledger is requested.
	ErrNothingToExport = errors.New("ledger has no data to export")
)
