package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month")

// Month is a month in a specific year, written YYYY-MM. It is comparable and
// used directly as the income table key.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns a new Month, normalizing out-of-range month numbers.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// MonthOf returns the month a date falls in.
func MonthOf(d Date) Month {
	if d.IsZero() {
		return Month{}
	}
	return Month{Year: d.Year(), Month: d.Time.Month()}
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w %q: %v", ErrInvalidMonth, s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// AddMonths moves the month by n (negative n goes back).
func (m Month) AddMonths(n int) Month {
	return NewMonth(m.Year, m.Month+time.Month(n))
}

// Prev returns the month before m.
func (m Month) Prev() Month {
	return m.AddMonths(-1)
}

// MarshalText lets Month serve as a JSON object key and string value.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts an empty string as the zero Month.
func (m *Month) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*m = Month{}
		return nil
	}
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalJSON reads a monthKey value. Object keys go through
// UnmarshalText and stay strict; a value that does not parse becomes the
// zero Month.
func (m *Month) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*m = Month{}
		return nil
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		*m = Month{}
		return nil
	}
	*m = parsed
	return nil
}
