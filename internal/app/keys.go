package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the workspace shortcuts
type keyMap struct {
	Dialog   key.Binding
	Confirm  key.Binding
	Drawer   key.Binding
	Popover  key.Binding
	Settings key.Binding
	Help     key.Binding
	Quit     key.Binding
	Redraw   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dialog: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "open a dialog"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "open a confirmation"),
		),
		Drawer: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "open the notes drawer"),
		),
		Popover: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "open a popover"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Redraw: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "redraw"),
		),
	}
}

// stacking are the bindings that may open an overlay on top of another one
func (k keyMap) stacking() []key.Binding {
	return []key.Binding{k.Dialog, k.Confirm, k.Drawer, k.Popover}
}
