package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/taskmaster/internal/domain"
	"github.com/riordanpawley/taskmaster/internal/ui/styles"
)

// TaskForm is the create/edit form: title, description and priority
type TaskForm struct {
	id          int64
	edit        bool
	title       textinput.Model
	description textarea.Model
	priority    domain.Priority
	focusIndex  int
	err         error
	styles      *styles.Styles
}

const (
	focusTitle = iota
	focusDescription
	focusPriority
	focusSubmit
	focusCount
)

// NewTaskForm creates an empty form for a new task
func NewTaskForm(s *styles.Styles) *TaskForm {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	ta := textarea.New()
	ta.Placeholder = "Task description..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(4)

	return &TaskForm{
		title:       ti,
		description: ta,
		priority:    domain.DefaultPriority,
		focusIndex:  focusTitle,
		styles:      s,
	}
}

// NewEditForm creates a form prefilled from task
func NewEditForm(s *styles.Styles, task domain.Task) *TaskForm {
	f := NewTaskForm(s)
	f.id = task.ID
	f.edit = true
	f.title.SetValue(task.Title)
	f.description.SetValue(task.Description)
	if task.Priority.Valid() {
		f.priority = task.Priority
	}
	return f
}

// IsEdit reports whether the form edits an existing task
func (f *TaskForm) IsEdit() bool {
	return f.edit
}

// Init initializes the overlay
func (f *TaskForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (f *TaskForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			id := f.id
			return f, tea.Batch(
				func() tea.Msg { return FormCanceledMsg{ID: id} },
				func() tea.Msg { return CloseOverlayMsg{} },
			)

		case "ctrl+s":
			return f, f.submit()

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				f.setFocus((f.focusIndex + 1) % focusCount)
			} else {
				f.setFocus((f.focusIndex - 1 + focusCount) % focusCount)
			}
			return f, nil

		case "enter":
			switch f.focusIndex {
			case focusTitle:
				f.setFocus(focusDescription)
				return f, nil
			case focusPriority, focusSubmit:
				return f, f.submit()
			}
			// the description textarea takes newlines
		}

		if f.focusIndex == focusPriority {
			if cmd, handled := f.handlePriorityKey(msg.String()); handled {
				return f, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch f.focusIndex {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return f, cmd
}

func (f *TaskForm) handlePriorityKey(key string) (tea.Cmd, bool) {
	priorities := domain.Priorities()
	switch key {
	case "1", "H", "h":
		f.priority = domain.PriorityHigh
	case "2", "M", "m":
		f.priority = domain.PriorityMedium
	case "3", "L", "l":
		f.priority = domain.PriorityLow
	case "left", "up", "k":
		f.priority = priorities[(f.priority.Rank()+len(priorities)-1)%len(priorities)]
	case "right", "down", "j", " ":
		f.priority = priorities[(f.priority.Rank()+1)%len(priorities)]
	default:
		return nil, false
	}
	return nil, true
}

func (f *TaskForm) setFocus(index int) {
	f.focusIndex = index
	f.title.Blur()
	f.description.Blur()
	switch index {
	case focusTitle:
		f.title.Focus()
	case focusDescription:
		f.description.Focus()
	}
}

// View renders the form
func (f *TaskForm) View() string {
	var b strings.Builder

	b.WriteString(f.label("Title", focusTitle))
	b.WriteString("\n")
	b.WriteString(f.title.View())
	b.WriteString("\n\n")

	b.WriteString(f.label("Description", focusDescription))
	b.WriteString("\n")
	b.WriteString(f.description.View())
	b.WriteString("\n\n")

	b.WriteString(f.label("Priority", focusPriority))
	b.WriteString("  ")
	b.WriteString(f.renderPrioritySelector())
	b.WriteString("\n\n")

	b.WriteString(f.styles.Separator.Render(strings.Repeat("─", 50)))
	b.WriteString("\n")

	submitStyle := f.styles.MenuItem
	if f.focusIndex == focusSubmit {
		submitStyle = f.styles.MenuItemActive
	}
	label := "[ Add Task ]"
	if f.IsEdit() {
		label = "[ Update Task ]"
	}
	b.WriteString(submitStyle.Render(label))

	if f.err != nil {
		b.WriteString("\n")
		b.WriteString(f.styles.Error.Render(f.err.Error()))
	}

	hints := []string{
		f.styles.MenuKey.Render("Tab") + " " + f.styles.Footer.UnsetMarginTop().Render("Switch fields"),
		f.styles.MenuKey.Render("Ctrl+S") + " " + f.styles.Footer.UnsetMarginTop().Render("Save"),
		f.styles.MenuKey.Render("Esc") + " " + f.styles.Footer.UnsetMarginTop().Render("Cancel"),
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Join(hints, " • "))

	return b.String()
}

func (f *TaskForm) label(text string, index int) string {
	if f.focusIndex == index {
		return f.styles.LabelFocused.Render(text + ":")
	}
	return f.styles.Label.Render(text + ":")
}

// renderPrioritySelector renders the priority selector with current selection
func (f *TaskForm) renderPrioritySelector() string {
	var parts []string
	for i, p := range domain.Priorities() {
		style := f.styles.MenuItem
		indicator := " "
		if p == f.priority {
			style = f.styles.MenuItemActive.Copy().Foreground(f.styles.PriorityColor(p))
			indicator = "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%d %s]", indicator, i+1, p)))
	}
	return strings.Join(parts, " ")
}

// submit validates the draft and emits TaskSubmittedMsg, or keeps the form
// open and reports the problem
func (f *TaskForm) submit() tea.Cmd {
	title := strings.TrimSpace(f.title.Value())
	description := strings.TrimSpace(f.description.Value())

	if err := domain.ValidateDraft(title, description); err != nil {
		f.err = err
		return func() tea.Msg { return ValidationFailedMsg{Err: err} }
	}
	f.err = nil

	submitted := TaskSubmittedMsg{
		Edit:        f.edit,
		ID:          f.id,
		Title:       title,
		Description: description,
		Priority:    f.priority,
	}
	return tea.Batch(
		func() tea.Msg { return submitted },
		func() tea.Msg { return CloseOverlayMsg{} },
	)
}

// Title returns the overlay title
func (f *TaskForm) Title() string {
	if f.IsEdit() {
		return "Edit Task"
	}
	return "New Task"
}

// Size returns the overlay dimensions
func (f *TaskForm) Size() (width, height int) {
	return 60, 22
}
