package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popstack/internal/surface"
)

// Drawer is a panel pinned to the right edge. It holds a small note that
// can be edited; dismissing it with unsaved edits asks once before closing.
type Drawer struct {
	base
	title      string
	note       []rune
	saved      string
	confirming bool
}

// NewDrawer creates a new drawer holding note
func NewDrawer(title, note string) *Drawer {
	return &Drawer{
		base:  base{styles: New()},
		title: title,
		note:  []rune(note),
		saved: note,
	}
}

// Init initializes the drawer
func (d *Drawer) Init() tea.Cmd {
	return nil
}

// Dirty reports whether the note has unsaved edits
func (d *Drawer) Dirty() bool {
	return string(d.note) != d.saved
}

// Note returns the current note text
func (d *Drawer) Note() string {
	return string(d.note)
}

// Update handles messages
func (d *Drawer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	d.confirming = false
	switch keyMsg.Type {
	case tea.KeyRunes, tea.KeySpace:
		d.note = append(d.note, keyMsg.Runes...)
	case tea.KeyBackspace:
		if len(d.note) > 0 {
			d.note = d.note[:len(d.note)-1]
		}
	case tea.KeyCtrlS:
		d.saved = string(d.note)
		return d, d.selectCmd("saved", d.saved)
	}
	return d, nil
}

// View renders the drawer
func (d *Drawer) View() string {
	var b strings.Builder
	b.WriteString(d.styles.MenuItem.Render(string(d.note) + "▏"))
	b.WriteString("\n")
	if d.confirming {
		b.WriteString(d.styles.Warning.Render("Unsaved changes. Esc again to discard."))
		b.WriteString("\n")
	}
	b.WriteString(d.styles.Footer.Render("Type to edit • Ctrl+S: save • Esc: close"))
	return b.String()
}

// CapturesInput is true while the drawer is open
func (d *Drawer) CapturesInput() bool {
	return true
}

// Title returns the drawer title
func (d *Drawer) Title() string {
	if d.Dirty() {
		return d.title + " *"
	}
	return d.title
}

// Placement pins the drawer to the right edge
func (d *Drawer) Placement() surface.Placement {
	return surface.PlaceRight
}

// CloseOnClickModal is true for drawers
func (d *Drawer) CloseOnClickModal() bool {
	return true
}

// CloseOnPressEscape is true for drawers
func (d *Drawer) CloseOnPressEscape() bool {
	return true
}

// HandleClose closes the drawer unless it has unsaved edits that have not
// been acknowledged yet
func (d *Drawer) HandleClose() tea.Cmd {
	if d.Dirty() && !d.confirming {
		d.confirming = true
		return nil
	}
	return d.Close()
}

// Close closes the drawer, discarding edits
func (d *Drawer) Close() tea.Cmd {
	d.confirming = false
	return d.closeCmd()
}
