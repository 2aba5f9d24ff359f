package core

import "strings"

type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Rent          Category = "Rent"
	Other         Category = "Other"
)

// AllCategories is the sentinel accepted by category filters to mean
// "no filtering".
const AllCategories = "All"

// Categories lists the valid categories in display order.
func Categories() []Category {
	return []Category{Food, Transport, Shopping, Bills, Entertainment, Rent, Other}
}

// NormalizeCategory maps free text onto the fixed set, case-insensitively.
// Empty or unknown input becomes Other.
func NormalizeCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return Other
}
