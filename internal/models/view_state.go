package models

import (
	"strings"
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// FilterAll is the sentinel the UI sends for "no filter".
const FilterAll = "all"

// ViewState is the serialisable admin view owned by one user session.
type ViewState struct {
	Tab       string    `json:"tab"`
	Search    string    `json:"search"`
	Status    string    `json:"status"`
	Category  string    `json:"category"`
	Page      int       `json:"page"`
	PageSize  int       `json:"page_size"`
	Selected  []string  `json:"selected"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ViewStateUpdate carries optional changes; nil fields are left untouched.
type ViewStateUpdate struct {
	Search   *string `json:"search"`
	Status   *string `json:"status"`
	Category *string `json:"category"`
	Page     *int    `json:"page" validate:"omitempty,min=1"`
	PageSize *int    `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// NewViewState returns the default state for a tab.
func NewViewState(tab Tab) ViewState {
	return ViewState{Tab: tab.Name(), Page: 1, PageSize: DefaultPageSize, Selected: []string{}}
}

// Apply merges an update. Any filter or page-size change sends the view back to page 1.
func (s *ViewState) Apply(update ViewStateUpdate) {
	reset := false
	if update.Search != nil && strings.TrimSpace(*update.Search) != s.Search {
		s.Search = strings.TrimSpace(*update.Search)
		reset = true
	}
	if update.Status != nil && NormalizeFilter(*update.Status) != s.Status {
		s.Status = NormalizeFilter(*update.Status)
		reset = true
	}
	if update.Category != nil && NormalizeFilter(*update.Category) != s.Category {
		s.Category = NormalizeFilter(*update.Category)
		reset = true
	}
	if update.PageSize != nil && *update.PageSize != s.PageSize {
		s.PageSize = clampPageSize(*update.PageSize)
		reset = true
	}
	if update.Page != nil && *update.Page > 0 {
		s.Page = *update.Page
	}
	if reset {
		s.Page = 1
	}
}

// Select adds ids to the selection keeping insertion order.
func (s *ViewState) Select(ids ...string) {
	seen := make(map[string]struct{}, len(s.Selected))
	for _, id := range s.Selected {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		s.Selected = append(s.Selected, id)
	}
}

// Deselect removes ids from the selection.
func (s *ViewState) Deselect(ids ...string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.Selected[:0]
	for _, id := range s.Selected {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}
	s.Selected = kept
}

// ClearSelection empties the selection.
func (s *ViewState) ClearSelection() {
	s.Selected = []string{}
}

// NormalizeFilter maps the "all" sentinel and blanks to no filter.
func NormalizeFilter(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, FilterAll) {
		return ""
	}
	return value
}

func clampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
