package ledger

import (
	"context"
	"slices"

	"kharcha/internal/core"
	applog "kharcha/internal/log"
)

// MergeResult counts what a restore added.
type MergeResult struct {
	IncomesAdded  int
	ExpensesAdded int
}

// MergeRestore decodes a backup document and merges it into the ledger.
// A document of the wrong shape returns ErrBadShape and changes nothing.
func (s *Store) MergeRestore(ctx context.Context, data []byte) (MergeResult, error) {
	imported, err := DecodeDocument(data)
	if err != nil {
		s.logger.WarnContext(ctx, "Backup rejected",
			applog.NewFields().
				WithOperation(applog.OpMerge).
				WithErrorType(applog.ErrorTypeShape).
				WithError(err).
				ToSlice()...)
		return MergeResult{}, err
	}
	return s.MergeLedger(ctx, imported)
}

// MergeLedger reconciles imported into the ledger. Local data always wins:
// incomes are only added for months not yet set, expenses only for ids not
// yet present. The merged sequence is then stably sorted newest first.
func (s *Store) MergeLedger(ctx context.Context, imported core.Ledger) (MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res MergeResult
	for month, amount := range imported.Incomes {
		if _, ok := s.ledger.Incomes[month]; ok {
			continue
		}
		s.ledger.Incomes[month] = amount
		res.IncomesAdded++
	}

	seen := make(map[string]struct{}, len(s.ledger.Expenses))
	for _, e := range s.ledger.Expenses {
		seen[e.ID] = struct{}{}
	}
	for _, e := range imported.Expenses {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		s.ledger.Expenses = append(s.ledger.Expenses, e.Normalize())
		res.ExpensesAdded++
	}

	sortNewestFirst(s.ledger.Expenses)

	s.logger.InfoContext(ctx, "Backup merged",
		applog.FieldOperation, applog.OpMerge,
		"incomes_added", res.IncomesAdded,
		"expenses_added", res.ExpensesAdded)
	return res, s.save(ctx)
}

// sortNewestFirst orders by date descending; equal dates keep their order.
func sortNewestFirst(expenses []core.Expense) {
	slices.SortStableFunc(expenses, func(a, b core.Expense) int {
		return b.Date.Compare(a.Date.Time)
	})
}
