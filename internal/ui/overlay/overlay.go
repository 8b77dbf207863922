// Package overlay provides the modal components drawn over the task list
package overlay

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/taskmaster/internal/domain"
)

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when a menu entry or dialog button is chosen
type SelectionMsg struct {
	Key   string
	Value any
}

// TaskSubmittedMsg is emitted when the form is saved with valid input
type TaskSubmittedMsg struct {
	// Edit is set when ID names an existing task to update
	Edit        bool
	ID          int64
	Title       string
	Description string
	Priority    domain.Priority
}

// FormCanceledMsg is emitted when the form is dismissed without saving
type FormCanceledMsg struct {
	ID int64
}

// ValidationFailedMsg is emitted when the form rejects its input. The form
// stays open.
type ValidationFailedMsg struct {
	Err error
}
