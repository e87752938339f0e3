package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popstack/internal/surface"
)

// Dialog is a plain message dialog. It closes on Enter, the dismiss key
// or a click on the backdrop.
type Dialog struct {
	base
	title string
	body  string
	width int
}

// NewDialog creates a new dialog with the given title and body
func NewDialog(title, body string) *Dialog {
	return &Dialog{
		base:  base{styles: New()},
		title: title,
		body:  body,
	}
}

// WithWidth fixes the dialog frame width
func (d *Dialog) WithWidth(width int) *Dialog {
	d.width = width
	return d
}

// Init initializes the dialog
func (d *Dialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		return d, d.Close()
	}
	return d, nil
}

// View renders the dialog
func (d *Dialog) View() string {
	var b strings.Builder
	b.WriteString(d.styles.MenuItem.Render(d.body))
	b.WriteString("\n")
	b.WriteString(d.styles.Footer.Render("Enter/Esc: close • click outside: close"))
	return b.String()
}

// Title returns the dialog title
func (d *Dialog) Title() string {
	return d.title
}

// Size returns the frame size
func (d *Dialog) Size() (width, height int) {
	return d.width, 0
}

// Placement centers the dialog
func (d *Dialog) Placement() surface.Placement {
	return surface.PlaceCenter
}

// CloseOnClickModal is true for dialogs
func (d *Dialog) CloseOnClickModal() bool {
	return true
}

// CloseOnPressEscape is true for dialogs
func (d *Dialog) CloseOnPressEscape() bool {
	return true
}

// Close closes the dialog
func (d *Dialog) Close() tea.Cmd {
	return d.closeCmd()
}
