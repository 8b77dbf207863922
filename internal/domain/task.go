// Package domain contains the core to-do types, the collection reducer and the
// filtered view projection.
package domain

import (
	"fmt"
	"strings"
)

// Task is a single to-do record
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"desc"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// Priority is the urgency of a task
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is preselected in new-task forms
const DefaultPriority = PriorityMedium

// Priorities returns all priorities, most urgent first
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// String returns the display string
func (p Priority) String() string {
	return string(p)
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank returns 0 for High, 1 for Medium and 2 for Low (and for unknown values)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Icon returns a short glyph for the priority
func (p Priority) Icon() string {
	switch p {
	case PriorityHigh:
		return "▲"
	case PriorityMedium:
		return "◆"
	case PriorityLow:
		return "▽"
	default:
		return "?"
	}
}

// ParsePriority parses a priority name case-insensitively
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities() {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", &ValidationError{
		Field:   "priority",
		Message: fmt.Sprintf("unknown priority %q (want High, Medium or Low)", s),
	}
}
