package popup

import tea "github.com/charmbracelet/bubbletea"

// Action is an intent passed to ActionHandler
type Action string

// ActionCancel asks the overlay to close as if the user cancelled it
const ActionCancel Action = "cancel"

// Controller is the handle an overlay registers with the Manager
type Controller interface {
	// CloseOnClickModal reports whether a click on the backdrop closes the overlay
	CloseOnClickModal() bool
	// CloseOnPressEscape reports whether the dismiss key closes the overlay
	CloseOnPressEscape() bool
	// Close closes the overlay unconditionally
	Close() tea.Cmd
}

// CloseHandler is implemented by overlays that want to intercept dismissal,
// e.g. to ask before discarding edits.
type CloseHandler interface {
	HandleClose() tea.Cmd
}

// ActionHandler is implemented by overlays whose dismissal is an action
// such as "cancel".
type ActionHandler interface {
	HandleAction(action Action) tea.Cmd
}

// affordance tries one way of closing c
type affordance func(c Controller) (tea.Cmd, bool)

// escapeAffordances lists dismiss-key close affordances in priority order.
// The last entry always applies.
var escapeAffordances = []affordance{
	func(c Controller) (tea.Cmd, bool) {
		h, ok := c.(CloseHandler)
		if !ok {
			return nil, false
		}
		return h.HandleClose(), true
	},
	func(c Controller) (tea.Cmd, bool) {
		h, ok := c.(ActionHandler)
		if !ok {
			return nil, false
		}
		return h.HandleAction(ActionCancel), true
	},
	func(c Controller) (tea.Cmd, bool) {
		return c.Close(), true
	},
}

// dismiss invokes exactly one close affordance of c
func dismiss(c Controller) tea.Cmd {
	for _, a := range escapeAffordances {
		if cmd, ok := a(c); ok {
			return cmd
		}
	}
	return nil
}
