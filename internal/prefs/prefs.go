// Package prefs keeps the display preferences beside the ledger under their
// own fixed key. They never affect stored amounts.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kharcha/internal/core"
	applog "kharcha/internal/log"
	"kharcha/internal/report"
	"kharcha/internal/store"
)

// Key is the fixed key the preference document lives under.
const Key = "personal-expense-prefs"

var (
	ErrInvalidCurrency    = errors.New("unknown currency code")
	ErrInvalidTrendMonths = fmt.Errorf("trend months must be between 1 and %d", report.MaxTrendMonths)
)

// Prefs is the stored preference document.
type Prefs struct {
	Currency    string `json:"currency"`
	TrendMonths int    `json:"trendMonths"`
}

func (p Prefs) Validate() error {
	if !core.ValidCurrency(p.Currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, p.Currency)
	}
	if p.TrendMonths < 1 || p.TrendMonths > report.MaxTrendMonths {
		return ErrInvalidTrendMonths
	}
	return nil
}

// Store reads and writes Prefs through a key-value store. Missing fields in
// the stored document fall back to the defaults it was created with.
type Store struct {
	kv       store.KV
	defaults Prefs
	logger   *applog.Logger
}

func New(kv store.KV, defaults Prefs, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Store{kv: kv, defaults: defaults, logger: logger.WithComponent(applog.ComponentPrefs)}
}

// Load returns the stored preferences merged over the defaults. An absent or
// unreadable document yields the defaults.
func (s *Store) Load(ctx context.Context) (Prefs, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, store.ErrNotFound) {
		return s.defaults, nil
	}
	if err != nil {
		return Prefs{}, fmt.Errorf("load prefs: %w", err)
	}

	p := s.defaults
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.WarnContext(ctx, "Stored preferences are corrupt, using defaults",
			applog.NewFields().
				WithOperation(applog.OpLoad).
				WithErrorType(applog.ErrorTypeCorrupt).
				WithError(err).
				ToSlice()...)
		return s.defaults, nil
	}
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if err := p.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Stored preferences are invalid, using defaults",
			applog.NewFields().
				WithOperation(applog.OpLoad).
				WithErrorType(applog.ErrorTypeValidation).
				WithError(err).
				ToSlice()...)
		return s.defaults, nil
	}
	return p, nil
}

// Save validates and stores p.
func (s *Store) Save(ctx context.Context, p Prefs) error {
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	s.logger.DebugContext(ctx, "Preferences saved",
		applog.FieldOperation, applog.OpSave,
		"currency", p.Currency,
		"trend_months", p.TrendMonths)
	return nil
}
