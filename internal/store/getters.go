package store

import (
	"math"

	"github.com/aiscreen-io/canvasctl/internal/models"
	"github.com/aiscreen-io/canvasctl/internal/templates"
	"github.com/aiscreen-io/canvasctl/internal/util/tags"
)

// SessionState returns the session state machine's current state.
func (s *Store) SessionState() SessionState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.sessionState
}

// User returns the logged-in user, or nil.
func (s *Store) User() *models.User {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.user
}

// AuthError returns the last authentication failure message.
func (s *Store) AuthError() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.authError
}

// Templates returns the loaded template list.
func (s *Store) Templates() []models.Template {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]models.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Current returns the currently selected template, or nil.
func (s *Store) Current() *models.Template {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.current
}

// IsLoading reports whether an action is mid-flight.
func (s *Store) IsLoading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

// LastError returns the last action's error message, or "".
func (s *Store) LastError() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastError
}

// Filters returns the active filter state.
func (s *Store) Filters() models.Filters {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.filters
}

// Pagination returns the active pagination state.
func (s *Store) Pagination() models.Pagination {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.pagination
}

// AvailableTags returns the union of tags embedded in loaded templates
// and tags reported by the backend, deduplicated and sorted.
func (s *Store) AvailableTags() []string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return tags.Union(tags.ExtractUnique(s.templates), s.apiTags)
}

// FilteredTemplates applies the active search and tag filters to the
// loaded list.
func (s *Store) FilteredTemplates() []models.Template {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return templates.Filter(s.templates, s.filters)
}

// Stats aggregates visibility counts over the loaded templates. A
// template with no is_public field counts toward total only.
func (s *Store) Stats() models.Stats {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	stats := models.Stats{Total: len(s.templates)}
	for _, t := range s.templates {
		if t.IsPublic == nil {
			continue
		}
		if *t.IsPublic {
			stats.Published++
		} else {
			stats.Private++
		}
	}
	return stats
}

// TotalPages returns ceil(total/limit), or 0 before the first fetch.
func (s *Store) TotalPages() int {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.pagination.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(s.pagination.Total) / float64(s.pagination.Limit)))
}

// HasNextPage reports whether a later page exists.
func (s *Store) HasNextPage() bool {
	return s.Pagination().Page < s.TotalPages()
}

// HasPrevPage reports whether an earlier page exists.
func (s *Store) HasPrevPage() bool {
	return s.Pagination().Page > 1
}
