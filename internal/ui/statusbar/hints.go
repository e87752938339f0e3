package statusbar

import "github.com/riordanpawley/popstack/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "d: dialog  c: confirm  w: drawer  p: popover  s: settings  ?: help  q: quit"
	case types.ModeOverlay:
		return "Esc: dismiss top  click outside: dismiss  d/c/w/p: stack another"
	case types.ModeInput:
		return "Type to edit  Ctrl+S: save  Esc: close"
	default:
		return ""
	}
}
