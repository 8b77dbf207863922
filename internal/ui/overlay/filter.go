package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/taskmaster/internal/domain"
	"github.com/riordanpawley/taskmaster/internal/ui/styles"
)

// SelectorChosenMsg is emitted when a selector is picked from the menu
type SelectorChosenMsg struct {
	Selector domain.Selector
}

// FilterMenu lists the selectors; the active one is marked
type FilterMenu struct {
	selectors []domain.Selector
	current   domain.Selector
	cursor    int
	counts    map[domain.Selector]int
	styles    *styles.Styles
}

// NewFilterMenu creates a menu with the cursor on current. counts, if not
// nil, shows how many tasks each selector would keep.
func NewFilterMenu(s *styles.Styles, current domain.Selector, counts map[domain.Selector]int) *FilterMenu {
	m := &FilterMenu{
		selectors: domain.Selectors(),
		current:   current,
		counts:    counts,
		styles:    s,
	}
	for i, sel := range m.selectors {
		if sel == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "esc", "q", "f":
		return m, func() tea.Msg { return CloseOverlayMsg{} }

	case "j", "down":
		m.cursor = (m.cursor + 1) % len(m.selectors)
		return m, nil

	case "k", "up":
		m.cursor = (m.cursor - 1 + len(m.selectors)) % len(m.selectors)
		return m, nil

	case "enter", " ":
		return m, m.choose(m.selectors[m.cursor])

	default:
		// number keys pick directly
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(m.selectors) {
			m.cursor = int(key[0] - '1')
			return m, m.choose(m.selectors[m.cursor])
		}
	}

	return m, nil
}

func (m *FilterMenu) choose(sel domain.Selector) tea.Cmd {
	m.current = sel
	return tea.Batch(
		func() tea.Msg { return SelectorChosenMsg{Selector: sel} },
		func() tea.Msg { return CloseOverlayMsg{} },
	)
}

// View renders the menu
func (m *FilterMenu) View() string {
	var b strings.Builder

	for i, sel := range m.selectors {
		style := m.styles.MenuItem
		if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		marker := "  "
		if sel == m.current {
			marker = "● "
		}

		line := m.styles.MenuKey.Render(fmt.Sprintf("[%d]", i+1)) + " " + style.Render(marker+sel.Label())
		if m.counts != nil {
			line += m.styles.StatusHint.Render(fmt.Sprintf(" (%d)", m.counts[sel]))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("j/k: move • Enter: apply • Esc: cancel"))
	return b.String()
}

// Title returns the menu title
func (m *FilterMenu) Title() string {
	return "Filter"
}

// Size returns the menu dimensions
func (m *FilterMenu) Size() (width, height int) {
	return 40, len(m.selectors) + 6
}
