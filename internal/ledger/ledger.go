// Package ledger owns the canonical incomes and expenses of a session and
// writes the whole document back to its Persister after every change.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/core"
	applog "kharcha/internal/log"
	"kharcha/internal/store"
)

// Store is the ledger aggregate root. Reads hand out copies; mutations run
// one at a time and persist before returning.
type Store struct {
	mu      sync.Mutex
	ledger  core.Ledger
	persist Persister
	logger  *applog.Logger
	now     func() time.Time
	newID   func() string
}

type Option func(*Store)

// WithLogger sets the logger; the component is forced to "ledger".
func WithLogger(l *applog.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(applog.ComponentLedger) }
}

// WithClock replaces time.Now, used to default blank expense dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the random id source.
func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// ExpenseInput carries a new expense. A zero Date means today.
type ExpenseInput struct {
	Title    string
	Amount   core.Money
	Date     core.Date
	Category string
}

// ExpensePatch lists the fields to change; nil fields keep their value.
type ExpensePatch struct {
	Title    *string
	Amount   *core.Money
	Date     *core.Date
	Category *string
}

// Open loads the stored document. A missing or unreadable document yields an
// empty ledger; only a failing backend is reported.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		ledger:  core.NewLedger(),
		persist: p,
		logger:  applog.Discard().WithComponent(applog.ComponentLedger),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := p.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.logger.InfoContext(ctx, "No stored ledger, starting empty",
			applog.FieldOperation, applog.OpLoad)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	l, err := DecodeDocument(data)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored ledger is corrupt, starting empty",
			applog.NewFields().
				WithOperation(applog.OpLoad).
				WithErrorType(applog.ErrorTypeCorrupt).
				WithError(err).
				ToSlice()...)
		return s, nil
	}
	s.ledger = l

	s.logger.InfoContext(ctx, "Ledger loaded",
		applog.FieldOperation, applog.OpLoad,
		"incomes", len(l.Incomes),
		"expenses", len(l.Expenses))
	return s, nil
}

// Snapshot returns a deep copy of the current ledger.
func (s *Store) Snapshot() core.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// IsEmpty reports whether no income or expense has been recorded.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.IsEmpty()
}

// Expense looks up a record by id.
func (s *Store) Expense(id string) (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.ledger.Expenses[i], true
	}
	return core.Expense{}, false
}

// SetIncome records the income of a month, replacing any previous value.
func (s *Store) SetIncome(ctx context.Context, month core.Month, amount core.Money) error {
	if month.IsZero() {
		return s.reject(ctx, applog.OpSetIncome, core.ErrInvalidMonth)
	}
	if err := amount.Validate(); err != nil {
		return s.reject(ctx, applog.OpSetIncome, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Incomes[month] = amount
	s.logger.DebugContext(ctx, "Income set",
		applog.FieldOperation, applog.OpSetIncome,
		applog.FieldMonth, month.String(),
		applog.FieldAmount, amount.String())
	return s.save(ctx)
}

// AddExpense validates the input, assigns a fresh id and puts the record at
// the front of the sequence. The stored record is returned even when the
// write-back fails.
func (s *Store) AddExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := in.Date
	if date.IsZero() {
		date = core.DateOf(s.now())
	}
	e := core.Expense{
		Title:    in.Title,
		Amount:   in.Amount,
		Date:     date,
		Category: core.Category(in.Category),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, s.reject(ctx, applog.OpCreate, err)
	}
	e.ID = s.newID()
	e = e.Normalize()

	s.ledger.Expenses = append([]core.Expense{e}, s.ledger.Expenses...)
	s.logExpense(ctx, applog.OpCreate, "Expense added", e)
	return e, s.save(ctx)
}

// UpdateExpense applies patch to the record with the given id, in place.
func (s *Store) UpdateExpense(ctx context.Context, id string, patch ExpensePatch) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, s.reject(ctx, applog.OpUpdate, ErrExpenseNotFound)
	}

	e := s.ledger.Expenses[i]
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Category != nil {
		e.Category = core.Category(*patch.Category)
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, s.reject(ctx, applog.OpUpdate, err)
	}
	e = e.Normalize()

	s.ledger.Expenses[i] = e
	s.logExpense(ctx, applog.OpUpdate, "Expense updated", e)
	return e, s.save(ctx)
}

// DeleteExpense removes the record with the given id. Deleting an unknown id
// is a no-op that reports false and writes nothing.
func (s *Store) DeleteExpense(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	e := s.ledger.Expenses[i]
	s.ledger.Expenses = append(s.ledger.Expenses[:i:i], s.ledger.Expenses[i+1:]...)
	s.logExpense(ctx, applog.OpDelete, "Expense deleted", e)
	return true, s.save(ctx)
}

// Export returns the indented backup document.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger.IsEmpty() {
		return nil, ErrNothingToExport
	}
	return EncodeBackup(s.ledger)
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.ledger.Expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// save writes the full document. Callers hold s.mu.
func (s *Store) save(ctx context.Context) error {
	doc, err := EncodeDocument(s.ledger)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	if err := s.persist.Save(ctx, doc); err != nil {
		s.logger.WarnContext(ctx, "Ledger write-back failed, keeping in-memory state",
			applog.NewFields().
				WithOperation(applog.OpSave).
				WithErrorType(applog.ErrorTypeStorage).
				WithError(err).
				ToSlice()...)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) reject(ctx context.Context, op string, err error) error {
	s.logger.DebugContext(ctx, "Ledger mutation rejected",
		applog.NewFields().
			WithOperation(op).
			WithErrorType(applog.ErrorTypeValidation).
			WithError(err).
			ToSlice()...)
	return err
}

func (s *Store) logExpense(ctx context.Context, op, msg string, e core.Expense) {
	s.logger.DebugContext(ctx, msg,
		applog.NewFields().
			WithOperation(op).
			WithExpense(e.ID, e.Title, e.Amount.String(), string(e.Category), e.Date.String()).
			ToSlice()...)
}
