package domain

import "strings"

// Selector narrows the view by completion state or priority
type Selector string

const (
	SelectAll        Selector = "all"
	SelectCompleted  Selector = "completed"
	SelectIncomplete Selector = "incomplete"
	SelectHigh       Selector = "high"
	SelectMedium     Selector = "medium"
	SelectLow        Selector = "low"
)

// Selectors returns every selector in menu order
func Selectors() []Selector {
	return []Selector{SelectAll, SelectCompleted, SelectIncomplete, SelectHigh, SelectMedium, SelectLow}
}

// ParseSelector parses a selector case-insensitively. "pending" is an alias
// for "incomplete"; unknown values select everything.
func ParseSelector(s string) Selector {
	switch v := Selector(strings.ToLower(strings.TrimSpace(s))); v {
	case SelectCompleted, SelectIncomplete, SelectHigh, SelectMedium, SelectLow:
		return v
	case "pending":
		return SelectIncomplete
	default:
		return SelectAll
	}
}

// Matches reports whether t satisfies the selector
func (s Selector) Matches(t Task) bool {
	switch s {
	case SelectCompleted:
		return t.Completed
	case SelectIncomplete:
		return !t.Completed
	case SelectHigh:
		return t.Priority == PriorityHigh
	case SelectMedium:
		return t.Priority == PriorityMedium
	case SelectLow:
		return t.Priority == PriorityLow
	default:
		return true
	}
}

// Label returns the menu label for the selector
func (s Selector) Label() string {
	switch s {
	case SelectCompleted:
		return "Completed"
	case SelectIncomplete:
		return "Pending"
	case SelectHigh:
		return "High priority"
	case SelectMedium:
		return "Medium priority"
	case SelectLow:
		return "Low priority"
	default:
		return "All"
	}
}

// Filter is the transient view state: a title search and a selector
type Filter struct {
	SearchQuery string
	Selector    Selector
}

// NewFilter creates a filter that matches every task
func NewFilter() *Filter {
	return &Filter{Selector: SelectAll}
}

// IsActive returns true if the filter hides anything
func (f *Filter) IsActive() bool {
	return f.SearchQuery != "" || (f.Selector != SelectAll && f.Selector != "")
}

// Matches returns true if the title contains the search query
// (case-insensitive) and the selector is satisfied
func (f *Filter) Matches(t Task) bool {
	if f.SearchQuery != "" {
		if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.SearchQuery)) {
			return false
		}
	}
	return f.Selector.Matches(t)
}

// Apply returns the matching tasks in source order. The result never aliases
// the input.
func (f *Filter) Apply(tasks []Task) []Task {
	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Clear resets the filter
func (f *Filter) Clear() {
	f.SearchQuery = ""
	f.Selector = SelectAll
}

// FilteredView projects tasks through a search string and selector name
func FilteredView(tasks []Task, search, selector string) []Task {
	f := Filter{SearchQuery: search, Selector: ParseSelector(selector)}
	return f.Apply(tasks)
}
