package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/taskmaster/internal/ui/styles"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *styles.Styles
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(s *styles.Styles) *HelpOverlay {
	h := &HelpOverlay{
		styles:     s,
		viewHeight: 16,
	}
	h.maxScroll = max(0, len(h.lines())-h.viewHeight)
	return h
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			return h, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			if h.scroll < h.maxScroll {
				h.scroll++
			}
			return h, nil

		case "k", "up":
			if h.scroll > 0 {
				h.scroll--
			}
			return h, nil

		case "g":
			h.scroll = 0
			return h, nil

		case "G":
			h.scroll = h.maxScroll
			return h, nil
		}
	}

	return h, nil
}

// View renders the visible part of the help text
func (h *HelpOverlay) View() string {
	lines := h.lines()

	start := min(h.scroll, len(lines))
	end := min(start+h.viewHeight, len(lines))
	result := strings.Join(lines[start:end], "\n")

	if h.maxScroll > 0 {
		result += "\n" + h.styles.Footer.Render(
			"["+h.styles.MenuKey.Render("j/k")+" to scroll, "+h.styles.MenuKey.Render("g/G")+" to jump]",
		)
	}

	return result
}

func (h *HelpOverlay) lines() []string {
	var lines []string
	for i, cat := range Categories() {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, h.styles.MenuHeader.Render(cat.Name+":"))
		for _, binding := range cat.Bindings {
			key := h.styles.MenuKey.Render(padRight(binding.Key, 8))
			lines = append(lines, "  "+key+"  "+h.styles.MenuItem.Render(binding.Description))
		}
	}
	return lines
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 50, h.viewHeight + 4
}

// Categories returns all keybinding categories
func Categories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Navigation",
			Bindings: []KeyBinding{
				{Key: "j/k", Description: "Move down/up"},
				{Key: "g/G", Description: "Jump to top/bottom"},
			},
		},
		{
			Name: "Tasks",
			Bindings: []KeyBinding{
				{Key: "c", Description: "New task"},
				{Key: "e/Enter", Description: "Edit task"},
				{Key: "x/Space", Description: "Toggle completed"},
				{Key: "d", Description: "Delete task"},
			},
		},
		{
			Name: "View",
			Bindings: []KeyBinding{
				{Key: "/", Description: "Search titles"},
				{Key: "f", Description: "Filter menu"},
				{Key: "F", Description: "Cycle filter"},
				{Key: "Esc", Description: "Clear search and filter"},
				{Key: "t", Description: "Toggle light/dark theme"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: ",", Description: "Settings"},
				{Key: "?", Description: "Help (this screen)"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
