// Package statusbar renders the bottom line: mode, active filter, hints
package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/taskmaster/internal/domain"
	"github.com/riordanpawley/taskmaster/internal/types"
	"github.com/riordanpawley/taskmaster/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	styles *styles.Styles
	filter *domain.Filter
	info   string
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithFilter shows the active search and selector, if any
func (sb StatusBar) WithFilter(filter *domain.Filter) StatusBar {
	sb.filter = filter
	return sb
}

// WithInfo adds a short right-hand note (theme, backend)
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	separator := sb.styles.StatusHint.Render(" │ ")
	parts := []string{sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")}

	if summary := FilterSummary(sb.filter); summary != "" {
		parts = append(parts, separator, sb.styles.StatusFilter.Render(summary))
	}

	if hints := GetHints(sb.mode); hints != "" {
		parts = append(parts, separator, sb.styles.StatusHint.Render(hints))
	}

	if sb.info != "" {
		parts = append(parts, separator, sb.styles.StatusInfo.Render(sb.info))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).MaxHeight(1).Render(content)
}

// FilterSummary describes an active filter, or returns "" when nothing is
// hidden
func FilterSummary(filter *domain.Filter) string {
	if filter == nil || !filter.IsActive() {
		return ""
	}

	switch {
	case filter.SearchQuery != "" && filter.Selector != domain.SelectAll && filter.Selector != "":
		return fmt.Sprintf("%q · %s", filter.SearchQuery, filter.Selector.Label())
	case filter.SearchQuery != "":
		return fmt.Sprintf("%q", filter.SearchQuery)
	default:
		return filter.Selector.Label()
	}
}
