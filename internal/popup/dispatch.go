package popup

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// HandleKey dismisses the topmost overlay when msg matches the dismiss
// binding and the overlay accepts dismissal by key. handled is false when
// the key should be routed elsewhere.
func (m *Manager) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if !key.Matches(msg, m.dismissKey) {
		return nil, false
	}

	c, ok := m.topController()
	if !ok || !c.CloseOnPressEscape() {
		return nil, false
	}

	top, _ := m.Top()
	m.logger.Debug("popup: dismiss key", "id", top.ID)
	return dismiss(c), true
}

// clickBackdrop closes the topmost overlay if it accepts backdrop clicks
func (m *Manager) clickBackdrop() tea.Cmd {
	c, ok := m.topController()
	if !ok || !c.CloseOnClickModal() {
		return nil
	}
	return c.Close()
}
