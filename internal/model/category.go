package model

import "strings"

// Category is one label from the fixed closed set describing an expense's
// nature.
type Category string

// The closed category set. The classifier and the scanner must agree on
// these exact values; anything else arriving from storage is a producer
// contract violation that the engine tolerates but flags.
const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
)

// Categories returns the closed set in canonical order. Remote
// classification replies are matched against this list in this order, so
// the order is part of the classification contract.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryHealth,
		CategoryOther,
	}
}

// ParseCategory maps free text onto the closed set, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Known reports whether c belongs to the closed set.
func (c Category) Known() bool {
	_, ok := ParseCategory(string(c))
	return ok
}
