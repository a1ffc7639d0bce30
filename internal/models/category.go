// Package models provides the data structures shared by the extraction, comparison and
// reporting layers.
package models

import (
	"fmt"
	"strings"
)

// Category classifies an invoice charge.
type Category string

const (
	CategoryCAM       Category = "CAM"
	CategoryTax       Category = "Tax"
	CategoryUtilities Category = "Utilities"
	CategoryRent      Category = "Rent"
	CategoryInsurance Category = "Insurance"
	CategoryOther     Category = "Other"
)

// AllCategories lists every valid category in display order.
var AllCategories = []Category{
	CategoryCAM,
	CategoryTax,
	CategoryUtilities,
	CategoryRent,
	CategoryInsurance,
	CategoryOther,
}

// CategoryNames returns the category names as plain strings, e.g. for a JSON schema enum.
func CategoryNames() []string {
	names := make([]string, len(AllCategories))
	for i, c := range AllCategories {
		names[i] = string(c)
	}
	return names
}

// ParseCategory maps a category name, case-insensitively, to a Category.
func ParseCategory(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	for _, c := range AllCategories {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// IsValid reports whether c is one of the enumerated categories.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Ptr returns a pointer to a copy of c, handy for optional category arguments.
func (c Category) Ptr() *Category {
	return &c
}
