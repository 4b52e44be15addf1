package templates

import (
	"strings"

	"github.com/aiscreen-io/canvasctl/internal/models"
)

// Filter runs the client-side half of the filter: substring search over
// name, description, and tags, then tag matching. Lists from backends
// that already honored the server-side hints pass through unchanged.
// Shared with the store's derived filtered view.
func Filter(items []models.Template, filters models.Filters) []models.Template {
	if filters.Search == "" && len(filters.Tags) == 0 {
		return items
	}

	filtered := make([]models.Template, 0, len(items))
	for _, t := range items {
		if filters.Search != "" && !matchesSearch(t, filters.Search) {
			continue
		}
		if len(filters.Tags) > 0 && !matchesTags(t, filters.Tags) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// matchesSearch reports whether the query appears, case-insensitively,
// in the template's name, description, or any tag.
func matchesSearch(t models.Template, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// matchesTags reports whether the template carries at least one of the
// selected tags. Tag comparison is exact, matching how tags are stored.
func matchesTags(t models.Template, selected []string) bool {
	for _, want := range selected {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}
