package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/taskmaster/internal/ui/styles"
)

// SettingType represents the type of a setting
type SettingType int

const (
	// SettingToggle is a boolean on/off setting (Space/Enter to toggle)
	SettingToggle SettingType = iota
	// SettingChoice is a multiple-choice setting (Left/Right to cycle)
	SettingChoice
	// SettingAction is an action that triggers something (Enter to activate)
	SettingAction
)

// SettingItem represents a single setting in the settings menu
type SettingItem struct {
	Key     string
	Label   string
	Type    SettingType
	Value   any
	Choices []string
}

// Settings is the subset of configuration editable from the TUI
type Settings struct {
	Theme         styles.Theme
	ConfirmDelete bool
}

// SettingsChangedMsg is emitted whenever a value changes. Save is set when
// the user asked to write the settings to the config file.
type SettingsChangedMsg struct {
	Settings Settings
	Save     bool
}

// SettingsOverlay is a settings menu overlay
type SettingsOverlay struct {
	items  []SettingItem
	cursor int
	styles *styles.Styles
}

// NewSettingsOverlay creates a settings menu showing current
func NewSettingsOverlay(s *styles.Styles, current Settings) *SettingsOverlay {
	return &SettingsOverlay{
		items: []SettingItem{
			{
				Key:     "theme",
				Label:   "Theme",
				Type:    SettingChoice,
				Value:   string(current.Theme),
				Choices: []string{string(styles.ThemeDark), string(styles.ThemeLight)},
			},
			{
				Key:   "confirm",
				Label: "Confirm before delete",
				Type:  SettingToggle,
				Value: current.ConfirmDelete,
			},
			{
				Key:   "save",
				Label: "Save to config file",
				Type:  SettingAction,
			},
		},
		styles: s,
	}
}

// Current returns the settings as shown
func (m *SettingsOverlay) Current() Settings {
	var out Settings
	for _, item := range m.items {
		switch item.Key {
		case "theme":
			v, _ := item.Value.(string)
			out.Theme = styles.ParseTheme(v)
		case "confirm":
			out.ConfirmDelete, _ = item.Value.(bool)
		}
	}
	return out
}

// Init initializes the overlay
func (m *SettingsOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SettingsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", ",":
			return m, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			m.cursor = (m.cursor + 1) % len(m.items)
			return m, nil

		case "k", "up":
			m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
			return m, nil

		case "h", "left":
			return m, m.cycleChoice(-1)

		case "l", "right":
			return m, m.cycleChoice(1)

		case " ", "enter":
			return m, m.activate()
		}
	}

	return m, nil
}

func (m *SettingsOverlay) changed(save bool) tea.Cmd {
	msg := SettingsChangedMsg{Settings: m.Current(), Save: save}
	return func() tea.Msg { return msg }
}

func (m *SettingsOverlay) activate() tea.Cmd {
	item := &m.items[m.cursor]
	switch item.Type {
	case SettingToggle:
		v, _ := item.Value.(bool)
		item.Value = !v
		return m.changed(false)
	case SettingChoice:
		return m.cycleChoice(1)
	case SettingAction:
		return m.changed(true)
	}
	return nil
}

// cycleChoice moves a choice setting by delta, wrapping around
func (m *SettingsOverlay) cycleChoice(delta int) tea.Cmd {
	item := &m.items[m.cursor]
	if item.Type != SettingChoice || len(item.Choices) == 0 {
		return nil
	}

	currentIdx := 0
	if v, ok := item.Value.(string); ok {
		for i, choice := range item.Choices {
			if choice == v {
				currentIdx = i
				break
			}
		}
	}

	n := len(item.Choices)
	item.Value = item.Choices[((currentIdx+delta)%n+n)%n]
	return m.changed(false)
}

// View renders the settings menu
func (m *SettingsOverlay) View() string {
	var b strings.Builder

	for i, item := range m.items {
		style := m.styles.MenuItem
		if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		var line string
		switch item.Type {
		case SettingToggle:
			valueStr := "off"
			if v, ok := item.Value.(bool); ok && v {
				valueStr = "on"
			}
			line = fmt.Sprintf("%s [%s]", style.Render(item.Label), style.Render(valueStr))
		case SettingChoice:
			v, _ := item.Value.(string)
			line = fmt.Sprintf("%s <%s>", style.Render(item.Label), style.Render(v))
		case SettingAction:
			line = style.Render(item.Label)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("j/k: navigate • h/l: change • space: toggle • esc: close"))

	return b.String()
}

// Title returns the overlay title
func (m *SettingsOverlay) Title() string {
	return "Settings"
}

// Size returns the overlay dimensions
func (m *SettingsOverlay) Size() (width, height int) {
	return 60, len(m.items) + 6
}
