// Package compact renders the task collection as a scrollable table
package compact

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/taskmaster/internal/domain"
	"github.com/riordanpawley/taskmaster/internal/ui/styles"
)

// EmptyMessage is shown when the projection has no rows
const EmptyMessage = "No tasks found!"

// CompactView is the task table: one row per visible task with status,
// title, description and priority
type CompactView struct {
	tasks  []domain.Task
	total  int
	cursor int
	styles *styles.Styles
	width  int
	height int

	// Scrolling state
	scrollOffset int
}

// NewCompactView creates a new CompactView with the given dimensions
func NewCompactView(s *styles.Styles, width, height int) *CompactView {
	return &CompactView{
		styles: s,
		width:  width,
		height: height,
	}
}

// SetTasks replaces the visible rows. total is the size of the whole
// collection, shown in the header.
func (cv *CompactView) SetTasks(tasks []domain.Task, total int) {
	cv.tasks = tasks
	cv.total = total
	// Clamp cursor to valid range
	if cv.cursor >= len(cv.tasks) {
		cv.cursor = max(0, len(cv.tasks)-1)
	}
	cv.ensureCursorVisible()
}

// Len returns the number of visible rows
func (cv *CompactView) Len() int {
	return len(cv.tasks)
}

// SetCursor sets the cursor position
func (cv *CompactView) SetCursor(index int) {
	if index < 0 {
		cv.cursor = 0
	} else if index >= len(cv.tasks) {
		cv.cursor = max(0, len(cv.tasks)-1)
	} else {
		cv.cursor = index
	}
	cv.ensureCursorVisible()
}

// GetCursor returns the current cursor position
func (cv *CompactView) GetCursor() int {
	return cv.cursor
}

// MoveUp moves cursor up by n positions
func (cv *CompactView) MoveUp(n int) {
	cv.SetCursor(cv.cursor - n)
}

// MoveDown moves cursor down by n positions
func (cv *CompactView) MoveDown(n int) {
	cv.SetCursor(cv.cursor + n)
}

// GotoTop moves cursor to the first task
func (cv *CompactView) GotoTop() {
	cv.SetCursor(0)
}

// GotoBottom moves cursor to the last task
func (cv *CompactView) GotoBottom() {
	cv.SetCursor(len(cv.tasks) - 1)
}

// SelectID moves the cursor onto the task with id, if visible
func (cv *CompactView) SelectID(id int64) bool {
	for i, t := range cv.tasks {
		if t.ID == id {
			cv.SetCursor(i)
			return true
		}
	}
	return false
}

// GetCurrentTask returns the task at the cursor position
func (cv *CompactView) GetCurrentTask() *domain.Task {
	if cv.cursor >= 0 && cv.cursor < len(cv.tasks) {
		return &cv.tasks[cv.cursor]
	}
	return nil
}

// SetDimensions updates the view dimensions
func (cv *CompactView) SetDimensions(width, height int) {
	cv.width = width
	cv.height = height
	cv.ensureCursorVisible()
}

// Render renders the header, table and scroll indicator
func (cv *CompactView) Render() string {
	var b strings.Builder

	b.WriteString(cv.renderTitle())
	b.WriteString("\n")

	if len(cv.tasks) == 0 {
		b.WriteString(cv.renderEmptyState())
		return b.String()
	}

	b.WriteString(cv.renderHeader())
	b.WriteString("\n")
	b.WriteString(cv.renderSeparator())
	b.WriteString("\n")

	// Calculate visible range
	visibleRows := cv.calculateVisibleRows()
	startIdx := cv.scrollOffset
	endIdx := min(startIdx+visibleRows, len(cv.tasks))

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(cv.renderRow(i, cv.tasks[i]))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(cv.tasks) {
		b.WriteString("\n")
		b.WriteString(cv.styles.Separator.Render(
			fmt.Sprintf(" ↓ %d more tasks ↓ ", len(cv.tasks)-endIdx),
		))
	}

	return b.String()
}

func (cv *CompactView) renderTitle() string {
	count := fmt.Sprintf("%d tasks", cv.total)
	if len(cv.tasks) != cv.total {
		count = fmt.Sprintf("%d of %d tasks", len(cv.tasks), cv.total)
	}
	return cv.styles.Header.Render("My Tasks") + "  " + cv.styles.HeaderCount.Render(count)
}

func (cv *CompactView) renderEmptyState() string {
	return cv.styles.Empty.
		Width(cv.width).
		Align(lipgloss.Center).
		PaddingTop(1).
		Render(EmptyMessage + "\n\nPress 'c' to create a task or '/' to search")
}

func (cv *CompactView) renderHeader() string {
	widths := cv.calculateColumnWidths()

	cells := []string{
		cv.styles.HeaderCell.Width(widths.cursor).Render(""),
		cv.styles.HeaderCell.Width(widths.status).Render(""),
		cv.styles.HeaderCell.Width(widths.title).Render("Title"),
		cv.styles.HeaderCell.Width(widths.desc).Render("Description"),
		cv.styles.HeaderCell.Width(widths.priority).Render("Priority"),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (cv *CompactView) renderSeparator() string {
	return cv.styles.Separator.Render(strings.Repeat("─", max(cv.width, 1)))
}

func (cv *CompactView) renderRow(index int, task domain.Task) string {
	isActive := index == cv.cursor

	rowStyle := cv.styles.Row
	if isActive {
		rowStyle = cv.styles.RowActive
	}

	widths := cv.calculateColumnWidths()

	cells := []string{
		cv.renderCursorCell(isActive, rowStyle, widths.cursor),
		cv.renderStatusCell(task.Completed, rowStyle, widths.status),
		cv.renderTitleCell(task, rowStyle, widths.title),
		rowStyle.Copy().
			Foreground(cv.styles.Description.GetForeground()).
			Width(widths.desc).
			Render(truncateString(firstLine(task.Description), widths.desc-1)),
		cv.renderPriorityCell(task.Priority, rowStyle, widths.priority),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (cv *CompactView) renderCursorCell(isActive bool, rowStyle lipgloss.Style, width int) string {
	indicator := "  "
	if isActive {
		indicator = cv.styles.Cursor.Render("▶ ")
	}
	return rowStyle.Copy().Width(width).Render(indicator)
}

func (cv *CompactView) renderStatusCell(completed bool, rowStyle lipgloss.Style, width int) string {
	if completed {
		return rowStyle.Copy().
			Foreground(cv.styles.CheckDone.GetForeground()).
			Bold(true).
			Width(width).
			Render("[x]")
	}
	return rowStyle.Copy().
		Foreground(cv.styles.Checkbox.GetForeground()).
		Width(width).
		Render("[ ]")
}

func (cv *CompactView) renderTitleCell(task domain.Task, rowStyle lipgloss.Style, width int) string {
	style := rowStyle.Copy().Width(width)
	if task.Completed {
		style = style.
			Foreground(cv.styles.TitleDone.GetForeground()).
			Strikethrough(true)
	}
	return style.Render(truncateString(task.Title, width-1))
}

func (cv *CompactView) renderPriorityCell(priority domain.Priority, rowStyle lipgloss.Style, width int) string {
	label := priority.Icon() + " " + priority.String()
	return rowStyle.Copy().
		Foreground(cv.styles.PriorityColor(priority)).
		Bold(true).
		Width(width).
		Render(label)
}

// columnWidths holds the calculated column widths
type columnWidths struct {
	cursor   int
	status   int
	title    int
	desc     int
	priority int
}

// calculateColumnWidths splits the space left by the fixed columns between
// title and description
func (cv *CompactView) calculateColumnWidths() columnWidths {
	const (
		cursorWidth   = 2
		statusWidth   = 4
		priorityWidth = 10
	)

	flexible := max(24, cv.width-cursorWidth-statusWidth-priorityWidth)
	titleWidth := max(12, flexible*55/100)

	return columnWidths{
		cursor:   cursorWidth,
		status:   statusWidth,
		title:    titleWidth,
		desc:     max(12, flexible-titleWidth),
		priority: priorityWidth,
	}
}

// calculateVisibleRows returns how many rows fit below the title, header
// and separator
func (cv *CompactView) calculateVisibleRows() int {
	availableHeight := cv.height - 3
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// ensureCursorVisible adjusts scroll offset to keep cursor visible
func (cv *CompactView) ensureCursorVisible() {
	visibleRows := cv.calculateVisibleRows()

	if cv.cursor < cv.scrollOffset {
		cv.scrollOffset = cv.cursor
	}
	if cv.cursor >= cv.scrollOffset+visibleRows {
		cv.scrollOffset = cv.cursor - visibleRows + 1
	}

	maxOffset := max(0, len(cv.tasks)-visibleRows)
	if cv.scrollOffset > maxOffset {
		cv.scrollOffset = maxOffset
	}
	if cv.scrollOffset < 0 {
		cv.scrollOffset = 0
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// truncateString truncates a string to fit within the given width
// If truncated, adds "..." at the end
func truncateString(s string, width int) string {
	if width <= 3 {
		return strings.Repeat(".", max(0, min(width, 3)))
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	return string(runes[:width-3]) + "..."
}
