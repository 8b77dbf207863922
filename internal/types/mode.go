// Package types contains shared types used across the application.
package types

// Mode represents what the task list is currently doing with keystrokes
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeFilter
	ModeCreate
	ModeEdit
	ModeConfirm
	ModeHelp
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSearch:
		return "SEARCH"
	case ModeFilter:
		return "FILTER"
	case ModeCreate:
		return "CREATE"
	case ModeEdit:
		return "EDIT"
	case ModeConfirm:
		return "CONFIRM"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}
