package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type (
	// Date is a calendar day. A date read from a document that is not
	// YYYY-MM-DD has a zero Time and keeps its original text.
	Date struct {
		time.Time
		raw string
	}

	// Expense is a single dated spending record. MonthKey is a cache of
	// MonthOf(Date) and must only be set through Expense.Normalize. A record
	// whose date does not parse keeps the month key it was imported with.
	Expense struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Amount   Money    `json:"amount"`
		Date     Date     `json:"date"`
		MonthKey Month    `json:"monthKey"`
		Category Category `json:"category,omitempty"`
	}

	// Ledger is the persisted document: monthly incomes plus the expense
	// sequence. It is also the backup export format.
	Ledger struct {
		Incomes  map[Month]Money `json:"incomes"`
		Expenses []Expense       `json:"expenses"`
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyTitle    = errors.New("empty title")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day, keeping t's wall clock date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return DateOf(t), nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return d.raw
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON does not fail on record content. null is the zero date;
// anything that is not YYYY-MM-DD is kept verbatim so a save writes it back.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Date{raw: string(b)}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		*d = Date{raw: s}
		return nil
	}
	*d = parsed
	return nil
}

// Normalize trims the title, coerces the category and recomputes MonthKey
// from a parsed Date. Every path that stores an expense goes through it.
func (e Expense) Normalize() Expense {
	e.Title = strings.TrimSpace(e.Title)
	e.Category = NormalizeCategory(string(e.Category))
	if !e.Date.IsZero() {
		e.MonthKey = MonthOf(e.Date)
	}
	return e
}

// Validate checks the rules applied to locally entered expenses.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}

// NewLedger returns an empty ledger with a non-nil income table.
func NewLedger() Ledger {
	return Ledger{Incomes: map[Month]Money{}, Expenses: []Expense{}}
}

// IsEmpty reports whether the ledger holds neither incomes nor expenses.
func (l Ledger) IsEmpty() bool {
	return len(l.Incomes) == 0 && len(l.Expenses) == 0
}

// Clone returns a deep copy so callers can read without aliasing the store.
func (l Ledger) Clone() Ledger {
	out := Ledger{
		Incomes:  make(map[Month]Money, len(l.Incomes)),
		Expenses: make([]Expense, len(l.Expenses)),
	}
	for k, v := range l.Incomes {
		out.Incomes[k] = v
	}
	copy(out.Expenses, l.Expenses)
	return out
}
