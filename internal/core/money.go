// Package core provides the ledger domain types.
//
// This file holds Money, a decimal currency amount that travels through JSON
// as a plain number, and the helpers to parse it from user input.
package core

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in currency units. No rounding rule is applied; the
// value is kept exactly as entered.
type Money struct {
	decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// NewMoney builds a Money from a float, mainly for tests and constants.
func NewMoney(v float64) Money {
	return Money{Decimal: decimal.NewFromFloat(v)}
}

// ParseMoney converts user input to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for malformed, zero or negative values.
//
// Examples:
//
//	ParseMoney("250")    -> 250
//	ParseMoney("12,5")   -> 12.5
//	ParseMoney("-1")     -> ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrInvalidAmount
	}
	m := Money{Decimal: d}
	if err := m.Validate(); err != nil {
		return Zero, err
	}
	return m, nil
}

func (m Money) Validate() error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(n Money) Money { return Money{Decimal: m.Decimal.Add(n.Decimal)} }
func (m Money) Sub(n Money) Money { return Money{Decimal: m.Decimal.Sub(n.Decimal)} }

// Equal compares values, ignoring representation (1.50 equals 1.5).
func (m Money) Equal(n Money) bool { return m.Decimal.Equal(n.Decimal) }

// MarshalJSON writes the amount as an unquoted JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

// Format renders m in the given ISO 4217 currency, rounded to the currency's
// minor unit (Format("INR") of 1234.5 is "₹1,234.50"). Unknown codes get a
// plain two-decimal rendering with the code as suffix.
func (m Money) Format(code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return m.StringFixed(2) + " " + code
	}
	minor := m.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// ValidCurrency reports whether code is a known ISO 4217 currency.
func ValidCurrency(code string) bool {
	return code != "" && money.GetCurrency(code) != nil
}
