package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/taskmaster/internal/ui/styles"
)

// ConfirmDialog is a confirmation dialog overlay with Yes/No options
type ConfirmDialog struct {
	title    string
	message  string
	subject  int64
	styles   *styles.Styles
	selected bool // true = Yes, false = No
}

// ConfirmResult carries the answer and the task the question was about
type ConfirmResult struct {
	Confirmed bool
	TaskID    int64
}

// NewConfirmDialog creates a dialog asking about the task with id subject
func NewConfirmDialog(s *styles.Styles, title, message string, subject int64) *ConfirmDialog {
	return &ConfirmDialog{
		title:    title,
		message:  message,
		subject:  subject,
		styles:   s,
		selected: false, // Default to No
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			return c, c.answer(true)

		case "n", "N", "esc":
			return c, c.answer(false)

		case "enter":
			return c, c.answer(c.selected)

		case "left", "h":
			// Move to No
			c.selected = false
			return c, nil

		case "right", "l", "tab":
			// Move to Yes
			c.selected = true
			return c, nil
		}
	}

	return c, nil
}

// answer emits the result. The receiver of the SelectionMsg pops the dialog.
func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	key := "no"
	if yes {
		key = "yes"
	}
	result := SelectionMsg{Key: key, Value: ConfirmResult{Confirmed: yes, TaskID: c.subject}}
	return func() tea.Msg { return result }
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	// Message
	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	// Buttons
	yesStyle := c.styles.MenuItem
	noStyle := c.styles.MenuItem

	if c.selected {
		yesStyle = c.styles.MenuItemActive
	} else {
		noStyle = c.styles.MenuItemActive
	}

	yes := yesStyle.Render("[Y] Yes")
	no := noStyle.Render("[N] No")

	// Render buttons side by side with spacing
	buttons := yes + "    " + no
	b.WriteString(buttons)
	b.WriteString("\n")

	// Footer hint
	footer := c.styles.Footer.Render("← → / Tab: switch • Enter: confirm • Esc: cancel")
	b.WriteString("\n")
	b.WriteString(footer)

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 50, messageLines + 7
}
