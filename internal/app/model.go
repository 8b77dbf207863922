// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/riordanpawley/taskmaster/internal/config"
	"github.com/riordanpawley/taskmaster/internal/domain"
	"github.com/riordanpawley/taskmaster/internal/services/editor"
	"github.com/riordanpawley/taskmaster/internal/services/tasks"
	"github.com/riordanpawley/taskmaster/internal/types"
	"github.com/riordanpawley/taskmaster/internal/ui/compact"
	"github.com/riordanpawley/taskmaster/internal/ui/overlay"
	"github.com/riordanpawley/taskmaster/internal/ui/statusbar"
	"github.com/riordanpawley/taskmaster/internal/ui/styles"
	"github.com/riordanpawley/taskmaster/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal  = types.ModeNormal
	ModeSearch  = types.ModeSearch
	ModeFilter  = types.ModeFilter
	ModeCreate  = types.ModeCreate
	ModeEdit    = types.ModeEdit
	ModeConfirm = types.ModeConfirm
	ModeHelp    = types.ModeHelp
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

const toastTick = 500 * time.Millisecond

// Model is the main application state
type Model struct {
	// Core data
	store *tasks.Store

	// Editor state (mode, search, selector)
	editor *editor.Service

	// UI state
	list         *compact.CompactView
	overlayStack *overlay.Stack

	// Toasts
	toasts   []Toast
	toastTTL time.Duration

	// Terminal size
	width  int
	height int

	// Styles, shared with every overlay so a theme switch repaints all of them
	styles *styles.Styles

	// Configuration
	config     *config.Config
	configPath string

	// Loading state
	loading bool
	spinner spinner.Model

	logger *log.Logger
	now    func() time.Time
}

// New creates a new application model. The store is loaded by Init.
func New(cfg *config.Config, store *tasks.Store, logger *log.Logger) Model {
	st := styles.New(styles.ParseTheme(cfg.UI.Theme))

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(st.Palette.Blue)

	ttl := time.Duration(cfg.UI.ToastSeconds) * time.Second
	if ttl <= 0 {
		ttl = 3 * time.Second
	}

	return Model{
		store:        store,
		editor:       editor.NewService(),
		list:         compact.NewCompactView(st, 0, 0),
		overlayStack: overlay.NewStack(),
		toasts:       []Toast{},
		toastTTL:     ttl,
		styles:       st,
		config:       cfg,
		configPath:   filepath.Join(config.BaseDir(), "config.toml"),
		loading:      true,
		spinner:      s,
		logger:       logger,
		now:          time.Now,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadTasksCmd(),
		tickEvery(toastTick),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// status bar takes the last line
		m.list.SetDimensions(msg.Width, msg.Height-1)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tasksLoadedMsg:
		m.loading = false
		m.refresh()
		if err := m.store.PersistErr(); err != nil {
			m.addToast(ToastWarning, "Could not read saved tasks, starting empty")
		}
		m.logger.Info("tasks loaded", "count", m.store.Len(), "backend", m.store.BackendName())
		return m, nil

	case tickMsg:
		m.expireToasts()
		return m, tickEvery(toastTick)

	case tea.KeyMsg:
		if m.loading {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.closeOverlay()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.TaskSubmittedMsg:
		return m.handleSubmit(msg)

	case overlay.FormCanceledMsg:
		m.store.ClearEditTarget()
		return m, nil

	case overlay.ValidationFailedMsg:
		m.addToast(ToastError, validationMessage(msg.Err))
		return m, nil

	case overlay.SearchMsg:
		m.editor.SetSearchQuery(msg.Query)
		m.refresh()
		if search, ok := overlay.Top[*overlay.SearchOverlay](m.overlayStack); ok {
			search.SetMatchCount(m.list.Len())
		}
		return m, nil

	case overlay.SelectorChosenMsg:
		m.editor.SetSelector(msg.Selector)
		m.refresh()
		return m, nil

	case overlay.SettingsChangedMsg:
		return m.applySettings(msg)
	}

	return m, nil
}

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Show loading spinner if loading
	if m.loading {
		return m.renderLoading()
	}

	mainView := m.list.Render()

	// Render status bar
	info := fmt.Sprintf("%s · %s", m.styles.Theme, m.store.BackendName())
	sb := statusbar.New(m.editor.GetMode(), m.width, m.styles).
		WithFilter(m.editor.GetFilter()).
		WithInfo(info)
	statusBarView := sb.Render()

	// Compose the layout
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, statusBarView)

	// If overlay is open, render it on top (centered)
	if !m.overlayStack.IsEmpty() {
		current := m.overlayStack.Current()
		overlayView := current.View()

		overlayWidth, overlayHeight := current.Size()

		// If width is 0, it means full width (like search bar)
		if overlayWidth == 0 {
			view = lipgloss.JoinVertical(lipgloss.Left, view, overlayView)
		} else {
			// Centered modal overlay with border and title
			if title := current.Title(); title != "" {
				titleView := m.styles.OverlayTitle.Render(title)
				overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
			}
			overlayView = m.styles.Overlay.
				Width(overlayWidth).
				Height(overlayHeight).
				Render(overlayView)

			// The modal replaces the list; the status bar stays visible
			centeredOverlay := lipgloss.Place(
				m.width,
				m.height-1,
				lipgloss.Center,
				lipgloss.Center,
				overlayView,
			)
			view = lipgloss.JoinVertical(lipgloss.Left, centeredOverlay, statusBarView)
		}
	}

	// Render toasts below everything else
	if len(m.toasts) > 0 {
		toastView := toast.New(m.styles).Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// handleKey processes keyboard input when no overlay is open
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "ctrl+l":
		// Force redraw
		return m, tea.ClearScreen

	// Navigation
	case "j", "down":
		m.list.MoveDown(1)
	case "k", "up":
		m.list.MoveUp(1)
	case "g", "home":
		m.list.GotoTop()
	case "G", "end":
		m.list.GotoBottom()
	case "ctrl+d":
		m.list.MoveDown(m.halfPage())
	case "ctrl+u":
		m.list.MoveUp(m.halfPage())

	// Task operations
	case " ", "x":
		if task := m.list.GetCurrentTask(); task != nil {
			id := task.ID
			m.store.Toggle(id)
			m.afterMutation(id)
		}

	case "c", "n":
		m.editor.SetMode(ModeCreate)
		return m, m.overlayStack.Push(overlay.NewTaskForm(m.styles))

	case "e", "enter":
		return m.openEditForm()

	case "d":
		return m.requestDelete()

	// View
	case "/":
		m.editor.SetMode(ModeSearch)
		search := overlay.NewSearchOverlay(m.styles, m.editor.SearchQuery())
		search.SetMatchCount(m.list.Len())
		return m, m.overlayStack.Push(search)

	case "f":
		m.editor.SetMode(ModeFilter)
		return m, m.overlayStack.Push(overlay.NewFilterMenu(m.styles, m.editor.Selector(), m.selectorCounts()))

	case "F":
		sel := m.editor.CycleSelector()
		m.refresh()
		m.addToast(ToastInfo, "Showing: "+sel.Label())

	case "esc":
		if m.editor.IsFilterActive() {
			m.editor.ClearFilters()
			m.refresh()
		}

	case "t":
		m.setTheme(m.styles.Theme.Toggle())

	case "?":
		m.editor.SetMode(ModeHelp)
		return m, m.overlayStack.Push(overlay.NewHelpOverlay(m.styles))

	case ",":
		return m, m.overlayStack.Push(overlay.NewSettingsOverlay(m.styles, m.currentSettings()))
	}

	return m, nil
}

// handleOverlayKey routes keyboard messages to the overlay stack
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	cmd := m.overlayStack.Update(msg)
	return m, cmd
}

func (m Model) openEditForm() (tea.Model, tea.Cmd) {
	task := m.list.GetCurrentTask()
	if task == nil {
		return m, nil
	}
	if !m.store.SetEditTarget(task.ID) {
		return m, nil
	}
	target, _ := m.store.EditTarget()
	m.editor.SetMode(ModeEdit)
	return m, m.overlayStack.Push(overlay.NewEditForm(m.styles, target))
}

func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	task := m.list.GetCurrentTask()
	if task == nil {
		return m, nil
	}
	if !m.config.UI.ConfirmDelete {
		m.removeTask(task.ID)
		return m, nil
	}
	m.editor.SetMode(ModeConfirm)
	dialog := overlay.NewConfirmDialog(
		m.styles,
		"Delete Task",
		fmt.Sprintf("Delete %q?", task.Title),
		task.ID,
	)
	return m, m.overlayStack.Push(dialog)
}

// handleSelection processes answers from dialogs. The dialog is popped here.
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	m.closeOverlay()

	if result, ok := msg.Value.(overlay.ConfirmResult); ok && result.Confirmed {
		m.removeTask(result.TaskID)
	}
	return m, nil
}

func (m Model) handleSubmit(msg overlay.TaskSubmittedMsg) (tea.Model, tea.Cmd) {
	if !msg.Edit {
		task := m.store.Add(msg.Title, msg.Description, msg.Priority)
		m.logger.Debug("task added", "id", task.ID)
		m.afterMutation(task.ID)
		m.addToast(ToastSuccess, "Task added")
		return m, nil
	}

	m.store.Update(msg.ID, domain.TaskUpdate{
		Title:       msg.Title,
		Description: msg.Description,
		Priority:    msg.Priority,
	})
	m.logger.Debug("task updated", "id", msg.ID)
	m.afterMutation(msg.ID)
	m.addToast(ToastSuccess, "Task updated")
	return m, nil
}

func (m *Model) removeTask(id int64) {
	m.store.Remove(id)
	m.logger.Debug("task removed", "id", id)
	m.afterMutation(0)
	m.addToast(ToastError, "Task removed")
}

// afterMutation recomputes the list, keeps the cursor on focus when it is
// still visible and surfaces a failed write
func (m *Model) afterMutation(focus int64) {
	m.refresh()
	if focus != 0 {
		m.list.SelectID(focus)
	}
	if err := m.store.PersistErr(); err != nil {
		m.addToast(ToastWarning, "Changes not saved: "+err.Error())
	}
}

// refresh recomputes the projection shown by the list
func (m *Model) refresh() {
	visible := m.store.FilteredView(m.editor.SearchQuery(), string(m.editor.Selector()))
	m.list.SetTasks(visible, m.store.Len())
}

// closeOverlay pops the top overlay and returns to normal mode once none
// are left
func (m *Model) closeOverlay() {
	m.overlayStack.Pop()
	if m.overlayStack.IsEmpty() {
		m.editor.SetMode(ModeNormal)
	}
}

func (m Model) selectorCounts() map[domain.Selector]int {
	counts := make(map[domain.Selector]int)
	all := m.store.FilteredView(m.editor.SearchQuery(), string(domain.SelectAll))
	for _, sel := range domain.Selectors() {
		counts[sel] = len(domain.FilteredView(all, "", string(sel)))
	}
	return counts
}

func (m Model) currentSettings() overlay.Settings {
	return overlay.Settings{
		Theme:         m.styles.Theme,
		ConfirmDelete: m.config.UI.ConfirmDelete,
	}
}

func (m *Model) setTheme(theme styles.Theme) {
	m.styles.SetTheme(theme)
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.styles.Palette.Blue)
	m.config.UI.Theme = string(theme)
}

func (m Model) applySettings(msg overlay.SettingsChangedMsg) (tea.Model, tea.Cmd) {
	if msg.Settings.Theme != m.styles.Theme {
		m.setTheme(msg.Settings.Theme)
	}
	m.config.UI.ConfirmDelete = msg.Settings.ConfirmDelete

	if !msg.Save {
		return m, nil
	}
	if err := config.SaveUISettings(m.configPath, m.config.UI); err != nil {
		m.logger.Error("failed to save config", "path", m.configPath, "error", err)
		m.addToast(ToastError, "Could not save settings")
		return m, nil
	}
	m.logger.Info("config saved", "path", m.configPath)
	m.addToast(ToastSuccess, "Settings saved")
	return m, nil
}

func validationMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return "Please fill all fields"
	}
	return err.Error()
}

// Message types for async operations

type tasksLoadedMsg struct{}

type tickMsg time.Time

// Commands

// loadTasksCmd restores the collection off the update loop. Keys are
// ignored until tasksLoadedMsg arrives so the store is never touched
// concurrently.
func (m Model) loadTasksCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store.Load(ctx)
		return tasksLoadedMsg{}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// halfPage calculates half-page scroll distance based on terminal height
func (m Model) halfPage() int {
	// header and separator take three lines
	visibleRows := m.height - 4
	return max(1, visibleRows/2)
}

// renderLoading renders a centered loading spinner with message
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		"Loading tasks...",
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level ToastLevel, message string) {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now(), m.toastTTL))
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	m.toasts = types.PruneToasts(m.toasts, m.now())
}
