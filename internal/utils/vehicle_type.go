package utils

import "strings"

const CategoryAll = "all"

// VehicleCategories lists the categories the catalog and the dictionaries know about.
var VehicleCategories = []string{"sedan", "suv", "minivan", "compact"}

// NormalizeCategory lower-cases and trims a category coming from a query string.
// An empty value maps to CategoryAll.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return CategoryAll
	}
	return c
}

// IsKnownCategory reports whether category is one of VehicleCategories.
func IsKnownCategory(category string) bool {
	for _, c := range VehicleCategories {
		if c == category {
			return true
		}
	}
	return false
}

// DistinctCategories returns the categories of the given list in first-seen order.
func DistinctCategories(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	var out []string
	for _, c := range categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
