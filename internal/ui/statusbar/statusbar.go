package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/popstack/internal/types"
	"github.com/riordanpawley/popstack/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	styles *styles.Styles

	depth    int
	topOrder int
	fade     bool
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithStack adds the overlay depth and the top overlay's stack order to the
// right-hand side of the bar
func (sb StatusBar) WithStack(depth, topOrder int, fade bool) StatusBar {
	sb.depth = depth
	sb.topOrder = topOrder
	sb.fade = fade
	return sb
}

func (sb StatusBar) info() string {
	fade := "off"
	if sb.fade {
		fade = "on"
	}
	if sb.depth == 0 {
		return fmt.Sprintf("no overlays • fade %s", fade)
	}
	return fmt.Sprintf("depth %d • z %d • fade %s", sb.depth, sb.topOrder, fade)
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(sb.mode.String())

	hints := GetHints(sb.mode)
	content := modeBadge
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, sb.styles.StatusHint.Render(hints))
	}

	// the bar's horizontal padding takes two cells
	inner := sb.width - 2
	info := sb.styles.StatusInfo.Render(sb.info())
	if gap := inner - ansi.StringWidth(content) - ansi.StringWidth(info); gap > 0 {
		content += strings.Repeat(" ", gap) + info
	} else if inner > 0 {
		content = ansi.Truncate(content, inner, "…")
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
