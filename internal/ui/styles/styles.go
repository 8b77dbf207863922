// Package styles holds the lipgloss styles for both themes
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/taskmaster/internal/domain"
)

// Styles holds all the UI styles.
//
// Components keep a pointer to one shared Styles; SetTheme rebuilds it in
// place so a theme toggle reaches every holder.
type Styles struct {
	Theme   Theme
	Palette Palette

	// Task list
	Header      lipgloss.Style
	HeaderCount lipgloss.Style
	HeaderCell  lipgloss.Style
	Row         lipgloss.Style
	RowActive   lipgloss.Style
	Cursor      lipgloss.Style
	Title       lipgloss.Style
	TitleDone   lipgloss.Style
	Description lipgloss.Style
	Checkbox    lipgloss.Style
	CheckDone   lipgloss.Style
	Empty       lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusMode   lipgloss.Style
	StatusHint   lipgloss.Style
	StatusInfo   lipgloss.Style
	StatusFilter lipgloss.Style

	// Overlays
	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	MenuHeader     lipgloss.Style
	Separator      lipgloss.Style
	Footer         lipgloss.Style
	Label          lipgloss.Style
	LabelFocused   lipgloss.Style
	Error          lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates styles for theme
func New(theme Theme) *Styles {
	s := &Styles{}
	s.SetTheme(theme)
	return s
}

// SetTheme rebuilds every style from the theme palette
func (s *Styles) SetTheme(theme Theme) {
	p := theme.Palette()
	*s = Styles{
		Theme:   theme,
		Palette: p,

		Header: lipgloss.NewStyle().
			Foreground(p.Mauve).
			Bold(true),

		HeaderCount: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		HeaderCell: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),

		Row: lipgloss.NewStyle().
			Foreground(p.Text),

		RowActive: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface0),

		Cursor: lipgloss.NewStyle().
			Foreground(p.Lavender).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(p.Text),

		TitleDone: lipgloss.NewStyle().
			Foreground(p.Overlay1).
			Strikethrough(true),

		Description: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		Checkbox: lipgloss.NewStyle().
			Foreground(p.Overlay2),

		CheckDone: lipgloss.NewStyle().
			Foreground(p.Green).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(p.Overlay1).
			Italic(true),

		StatusBar: lipgloss.NewStyle().
			Background(p.Surface0).
			Foreground(p.Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(p.Blue).
			Foreground(p.Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(p.Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		StatusFilter: lipgloss.NewStyle().
			Foreground(p.Peach).
			Bold(true),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface2).
			Background(p.Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(p.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(p.Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(p.Yellow).
			Bold(true),

		MenuHeader: lipgloss.NewStyle().
			Foreground(p.Subtext1).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(p.Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(p.Subtext0).
			MarginTop(1),

		Label: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		LabelFocused: lipgloss.NewStyle().
			Foreground(p.Blue).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(p.Red),

		ToastInfo:    toastStyle(p.Blue),
		ToastSuccess: toastStyle(p.Green),
		ToastWarning: toastStyle(p.Yellow),
		ToastError:   toastStyle(p.Red),
	}
}

// PriorityColor maps a priority to its accent color
func (s *Styles) PriorityColor(priority domain.Priority) lipgloss.Color {
	switch priority {
	case domain.PriorityHigh:
		return s.Palette.Red
	case domain.PriorityMedium:
		return s.Palette.Yellow
	case domain.PriorityLow:
		return s.Palette.Green
	default:
		return s.Palette.Overlay0
	}
}

// PriorityBadge returns the badge style for priority
func (s *Styles) PriorityBadge(priority domain.Priority) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Palette.Base).
		Background(s.PriorityColor(priority)).
		Padding(0, 1).
		Bold(true)
}

func toastStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1)
}
