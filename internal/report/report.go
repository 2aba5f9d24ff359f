// Package report derives read-only views from a ledger snapshot: month and
// weekly totals, the weekly budget, category breakdowns and trend series.
//
// Every function is pure. Time-relative views take the reference date as an
// argument instead of reading the clock.
package report

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"kharcha/internal/core"
)

// DefaultTrendMonths is the trend length used when none is given.
const DefaultTrendMonths = 6

// MaxTrendMonths bounds a trend series.
const MaxTrendMonths = 60

// WeekDays is the length of the weekly window, reference date included.
const WeekDays = 7

var (
	weeksPerMonth = decimal.NewFromInt(4)
	warnThreshold = decimal.RequireFromString("0.8")
)

// MonthExpenses returns the expenses of month in ledger order.
func MonthExpenses(l core.Ledger, month core.Month) []core.Expense {
	out := []core.Expense{}
	for _, e := range l.Expenses {
		if e.MonthKey == month {
			out = append(out, e)
		}
	}
	return out
}

// MonthTotal sums the expenses of month; zero if there are none.
func MonthTotal(l core.Ledger, month core.Month) core.Money {
	total := core.Zero
	for _, e := range l.Expenses {
		if e.MonthKey == month {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// MonthIncome returns the recorded income of month, or zero.
func MonthIncome(l core.Ledger, month core.Month) core.Money {
	if v, ok := l.Incomes[month]; ok {
		return v
	}
	return core.Zero
}

// WeeklyTotal sums the expenses of month dated within [ref-6 days, ref].
func WeeklyTotal(l core.Ledger, month core.Month, ref core.Date) core.Money {
	from := ref.AddDays(-(WeekDays - 1))
	total := core.Zero
	for _, e := range l.Expenses {
		if e.MonthKey != month {
			continue
		}
		if e.Date.Before(from.Time) || e.Date.After(ref.Time) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}

// WeeklyLimit is a quarter of the month's income.
func WeeklyLimit(income core.Money) core.Money {
	return core.Money{Decimal: income.Div(weeksPerMonth)}
}

// OverBudgetWarning reports whether the weekly spend exceeds 80% of a
// positive weekly limit.
func OverBudgetWarning(weekly, limit core.Money) bool {
	return limit.IsPositive() && weekly.GreaterThan(limit.Mul(warnThreshold))
}

// CategoryBreakdown sums the month's expenses per category. Only categories
// with at least one expense appear.
func CategoryBreakdown(l core.Ledger, month core.Month) map[core.Category]core.Money {
	out := map[core.Category]core.Money{}
	for _, e := range l.Expenses {
		if e.MonthKey != month {
			continue
		}
		c := core.NormalizeCategory(string(e.Category))
		out[c] = out[c].Add(e.Amount)
	}
	return out
}

// CategoryAmounts is CategoryBreakdown as a list, largest amount first.
// Equal amounts keep the fixed category order.
func CategoryAmounts(l core.Ledger, month core.Month) []core.CategoryAmount {
	breakdown := CategoryBreakdown(l, month)
	out := make([]core.CategoryAmount, 0, len(breakdown))
	for _, c := range core.Categories() {
		if amount, ok := breakdown[c]; ok {
			out = append(out, core.CategoryAmount{Category: c, Amount: amount})
		}
	}
	slices.SortStableFunc(out, func(a, b core.CategoryAmount) int {
		return b.Amount.Cmp(a.Amount.Decimal)
	})
	return out
}

// TrendSeries returns count consecutive months ending at current, oldest
// first, each with its income and total expense. count <= 0 means
// DefaultTrendMonths; counts above MaxTrendMonths are clamped.
func TrendSeries(l core.Ledger, current core.Month, count int) []core.TrendPoint {
	if count <= 0 {
		count = DefaultTrendMonths
	}
	count = min(count, MaxTrendMonths)
	out := make([]core.TrendPoint, 0, count)
	for i := count - 1; i >= 0; i-- {
		m := current.AddMonths(-i)
		out = append(out, core.TrendPoint{
			Month:   m,
			Income:  MonthIncome(l, m),
			Expense: MonthTotal(l, m),
		})
	}
	return out
}

// FilterByCategory keeps the expenses whose category is selected. An empty
// selection, or one containing "All", keeps everything. Names match
// case-insensitively and a blank expense category counts as Other.
func FilterByCategory(expenses []core.Expense, categories []string) []core.Expense {
	selected := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if strings.EqualFold(c, core.AllCategories) {
			return slices.Clone(expenses)
		}
		selected[strings.ToLower(c)] = struct{}{}
	}
	if len(selected) == 0 {
		return slices.Clone(expenses)
	}

	out := []core.Expense{}
	for _, e := range expenses {
		c := string(e.Category)
		if strings.TrimSpace(c) == "" {
			c = string(core.Other)
		}
		if _, ok := selected[strings.ToLower(c)]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Overview composes the views of one month as seen on ref.
func Overview(l core.Ledger, month core.Month, ref core.Date) core.MonthOverview {
	income := MonthIncome(l, month)
	total := MonthTotal(l, month)
	weekly := WeeklyTotal(l, month, ref)
	limit := WeeklyLimit(income)
	return core.MonthOverview{
		Month:       month,
		Income:      income,
		Total:       total,
		Balance:     income.Sub(total),
		WeeklyTotal: weekly,
		WeeklyLimit: limit,
		Warning:     OverBudgetWarning(weekly, limit),
		ByCategory:  CategoryAmounts(l, month),
		Expenses:    MonthExpenses(l, month),
	}
}
