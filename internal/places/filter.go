// Package places holds the pure computations over a place collection:
// text search, category filtering and aggregate statistics.
package places

import (
	"strings"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// Filter returns the places whose name, description or category contains query,
// ignoring case. A blank query returns list itself. Order is preserved.
func Filter(list []models.Place, query string) []models.Place {
	if strings.TrimSpace(query) == "" {
		return list
	}

	needle := strings.ToLower(query)
	matched := make([]models.Place, 0, len(list))
	for _, place := range list {
		if Matches(place, needle) {
			matched = append(matched, place)
		}
	}

	return matched
}

// Matches reports whether the lower-cased needle occurs in one of the searchable fields of place.
func Matches(place models.Place, needle string) bool {
	return strings.Contains(strings.ToLower(place.Name), needle) ||
		strings.Contains(strings.ToLower(place.Description), needle) ||
		strings.Contains(strings.ToLower(place.Category), needle)
}

// FilterByCategory keeps the places in category, compared case-insensitively.
// An empty category returns list itself.
func FilterByCategory(list []models.Place, category string) []models.Place {
	if category == "" {
		return list
	}

	matched := make([]models.Place, 0, len(list))
	for _, place := range list {
		if strings.EqualFold(place.Category, category) {
			matched = append(matched, place)
		}
	}

	return matched
}
