package overlay

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popstack/internal/surface"
	"github.com/riordanpawley/popstack/internal/ui/styles"
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
	// SettingSeparator is a visual separator (not selectable)
	SettingSeparator
)

// SettingItem represents a single setting in the settings menu
type SettingItem struct {
	Key     string
	Label   string
	Type    SettingType
	Value   any
	Choices []string // For SettingChoice type
}

// SettingChangedMsg is sent when a toggle or choice changes value
type SettingChangedMsg struct {
	Key   string
	Value any
}

// SettingsOverlay is a settings menu overlay
type SettingsOverlay struct {
	base
	items  []SettingItem
	cursor int
}

// NewSettingsOverlay creates a new settings overlay with the given items
func NewSettingsOverlay(items []SettingItem) *SettingsOverlay {
	menu := &SettingsOverlay{
		base:  base{styles: New()},
		items: items,
	}
	menu.moveCursorToNextSelectable()
	return menu
}

// Init initializes the overlay
func (m *SettingsOverlay) Init() tea.Cmd {
	return nil
}

// Value returns the current value of the setting with key
func (m *SettingsOverlay) Value(key string) any {
	i := slices.IndexFunc(m.items, func(it SettingItem) bool { return it.Key == key })
	if i < 0 {
		return nil
	}
	return m.items[i].Value
}

// Update handles messages
func (m *SettingsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q":
		return m, m.Close()
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "h", "left":
		return m, m.cycleChoice(-1)
	case "l", "right":
		return m, m.cycleChoice(1)
	case " ", "enter":
		return m, m.activateCurrent()
	}
	return m, nil
}

// View renders the settings menu
func (m *SettingsOverlay) View() string {
	separator := lipgloss.NewStyle().Foreground(styles.Surface2)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Yellow)

	var b strings.Builder
	for i, item := range m.items {
		if item.Type == SettingSeparator {
			b.WriteString(separator.Render(item.Label))
			b.WriteString("\n")
			continue
		}

		style := m.styles.MenuItem
		if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		line := fmt.Sprintf("%s %s", keyStyle.Render("["+item.Key+"]"), style.Render(item.Label))
		switch item.Type {
		case SettingToggle:
			valueStr := "off"
			if v, ok := item.Value.(bool); ok && v {
				valueStr = "on"
			}
			line += " " + style.Render("["+valueStr+"]")
		case SettingChoice:
			v, _ := item.Value.(string)
			line += " " + style.Render("<"+v+">")
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("j/k: navigate • h/l: change • space/enter: toggle • esc: close"))
	return b.String()
}

// Title returns the overlay title
func (m *SettingsOverlay) Title() string {
	return "Settings"
}

// Size returns the overlay dimensions
func (m *SettingsOverlay) Size() (width, height int) {
	return 60, 0
}

func (m *SettingsOverlay) Placement() surface.Placement { return surface.PlaceCenter }

func (m *SettingsOverlay) CloseOnClickModal() bool { return true }

func (m *SettingsOverlay) CloseOnPressEscape() bool { return true }

func (m *SettingsOverlay) Close() tea.Cmd { return m.closeCmd() }

// moveCursor steps over separators in direction dir, wrapping around
func (m *SettingsOverlay) moveCursor(dir int) {
	n := len(m.items)
	for i := 1; i <= n; i++ {
		next := ((m.cursor+dir*i)%n + n) % n
		if m.items[next].Type != SettingSeparator {
			m.cursor = next
			return
		}
	}
}

func (m *SettingsOverlay) moveCursorToNextSelectable() {
	for i, item := range m.items {
		if item.Type != SettingSeparator {
			m.cursor = i
			return
		}
	}
}

func (m *SettingsOverlay) current() *SettingItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

func (m *SettingsOverlay) changed(item *SettingItem) tea.Cmd {
	key, value := item.Key, item.Value
	return func() tea.Msg {
		return SettingChangedMsg{Key: key, Value: value}
	}
}

// activateCurrent toggles a toggle setting or triggers an action
func (m *SettingsOverlay) activateCurrent() tea.Cmd {
	item := m.current()
	if item == nil {
		return nil
	}

	switch item.Type {
	case SettingToggle:
		v, _ := item.Value.(bool)
		item.Value = !v
		return m.changed(item)
	case SettingAction:
		return m.selectCmd(item.Key, nil)
	case SettingChoice:
		return m.cycleChoice(1)
	}
	return nil
}

// cycleChoice moves a choice setting by dir, wrapping around
func (m *SettingsOverlay) cycleChoice(dir int) tea.Cmd {
	item := m.current()
	if item == nil || item.Type != SettingChoice || len(item.Choices) == 0 {
		return nil
	}

	v, _ := item.Value.(string)
	idx := slices.Index(item.Choices, v)
	if idx < 0 && dir < 0 {
		idx = 0
	}
	n := len(item.Choices)
	item.Value = item.Choices[((idx+dir)%n+n)%n]
	return m.changed(item)
}
