// Package editor tracks the interaction mode and the active list filter
package editor

import (
	"github.com/riordanpawley/taskmaster/internal/domain"
	"github.com/riordanpawley/taskmaster/internal/types"
)

// Re-export Mode type for convenience
type Mode = types.Mode

// Mode constants
const (
	ModeNormal  = types.ModeNormal
	ModeSearch  = types.ModeSearch
	ModeFilter  = types.ModeFilter
	ModeCreate  = types.ModeCreate
	ModeEdit    = types.ModeEdit
	ModeConfirm = types.ModeConfirm
	ModeHelp    = types.ModeHelp
)

// Service manages editing state (mode, search text, selector)
type Service struct {
	mode   Mode
	filter *domain.Filter
}

// NewService creates a new editor service with defaults
func NewService() *Service {
	return &Service{
		mode:   ModeNormal,
		filter: domain.NewFilter(),
	}
}

// GetMode returns the current mode
func (s *Service) GetMode() Mode {
	return s.mode
}

// SetMode sets the current mode
func (s *Service) SetMode(mode Mode) {
	s.mode = mode
}

// ExitMode returns to normal mode if not already normal
func (s *Service) ExitMode() bool {
	if s.mode != ModeNormal {
		s.mode = ModeNormal
		return true
	}
	return false
}

// IsNormal returns true if in normal mode
func (s *Service) IsNormal() bool {
	return s.mode == ModeNormal
}

// Filter management

// GetFilter returns the current filter
func (s *Service) GetFilter() *domain.Filter {
	return s.filter
}

// SearchQuery returns the current search text
func (s *Service) SearchQuery() string {
	return s.filter.SearchQuery
}

// SetSearchQuery updates the search query in the filter
func (s *Service) SetSearchQuery(query string) {
	s.filter.SearchQuery = query
}

// ClearSearch clears the search query
func (s *Service) ClearSearch() {
	s.filter.SearchQuery = ""
}

// Selector returns the current selector
func (s *Service) Selector() domain.Selector {
	if s.filter.Selector == "" {
		return domain.SelectAll
	}
	return s.filter.Selector
}

// SetSelector changes the selector
func (s *Service) SetSelector(sel domain.Selector) {
	s.filter.Selector = sel
}

// CycleSelector advances to the next selector, wrapping around
func (s *Service) CycleSelector() domain.Selector {
	all := domain.Selectors()
	current := s.Selector()
	next := all[0]
	for i, sel := range all {
		if sel == current {
			next = all[(i+1)%len(all)]
			break
		}
	}
	s.filter.Selector = next
	return next
}

// ClearFilters resets search and selector
func (s *Service) ClearFilters() {
	s.filter.Clear()
}

// IsFilterActive returns true if any filter is active
func (s *Service) IsFilterActive() bool {
	return s.filter.IsActive()
}

// ApplyFilter filters a list of tasks
func (s *Service) ApplyFilter(tasks []domain.Task) []domain.Task {
	return s.filter.Apply(tasks)
}
