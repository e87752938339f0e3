package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popstack/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Frame is the bordered container for centered overlays
	Frame lipgloss.Style
	// Drawer is the container for right-edge drawers
	Drawer lipgloss.Style
	// Popover is the container for anchored popovers
	Popover lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted/selected menu item style
	MenuItemActive lipgloss.Style
	// Warning is used for unsaved-change prompts
	Warning lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
}

// New creates a new Styles instance using the Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Surface2).
			Background(styles.Base).
			Padding(1, 2),

		Drawer: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(styles.Lavender).
			Background(styles.Mantle).
			Padding(1, 2),

		Popover: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Teal).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(styles.Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(styles.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(styles.Peach).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),
	}
}
