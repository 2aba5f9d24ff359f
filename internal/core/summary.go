package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// TrendPoint pairs a month with its income and total expense.
type TrendPoint struct {
	Month   Month
	Income  Money
	Expense Money
}

// MonthOverview is the derived view of one month as seen on a reference date.
type MonthOverview struct {
	Month       Month
	Income      Money
	Total       Money
	Balance     Money // Income minus Total, may be negative
	WeeklyTotal Money
	WeeklyLimit Money
	Warning     bool
	ByCategory  []CategoryAmount
	Expenses    []Expense
}
