package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popstack/internal/popup"
	"github.com/riordanpawley/popstack/internal/surface"
)

// ConfirmDialog is a confirmation dialog overlay with Yes/No options
type ConfirmDialog struct {
	base
	title    string
	message  string
	selected bool // true = Yes, false = No
}

// ConfirmResult represents the result of a confirmation dialog
type ConfirmResult struct {
	Confirmed bool
}

// NewConfirmDialog creates a new confirmation dialog with the given title and message
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		base:     base{styles: New()},
		title:    title,
		message:  message,
		selected: false, // Default to No
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			return c, c.answer(true)

		case "n", "N":
			return c, c.answer(false)

		case "enter":
			return c, c.answer(c.selected)

		case "left", "h":
			// Move to No
			c.selected = false
			return c, nil

		case "right", "l", "tab":
			// Move to Yes
			c.selected = true
			return c, nil
		}
	}

	return c, nil
}

// answer reports the result and closes the dialog
func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	key := "no"
	if yes {
		key = "yes"
	}
	return tea.Batch(
		c.selectCmd(key, ConfirmResult{Confirmed: yes}),
		c.closeCmd(),
	)
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	// Message
	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	// Buttons
	yesStyle := c.styles.MenuItem
	noStyle := c.styles.MenuItem

	if c.selected {
		yesStyle = c.styles.MenuItemActive
	} else {
		noStyle = c.styles.MenuItemActive
	}

	yes := yesStyle.Render("[Y] Yes")
	no := noStyle.Render("[N] No")

	// Render buttons side by side with spacing
	b.WriteString(yes + "    " + no)
	b.WriteString("\n")

	// Footer hint
	footer := c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel")
	b.WriteString(footer)

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Placement centers the dialog
func (c *ConfirmDialog) Placement() surface.Placement {
	return surface.PlaceCenter
}

// DimClasses darkens the backdrop while a confirmation is pending
func (c *ConfirmDialog) DimClasses() string {
	return "v-modal-strong"
}

// CloseOnClickModal is false so a stray click cannot answer the question
func (c *ConfirmDialog) CloseOnClickModal() bool {
	return false
}

// CloseOnPressEscape is true; escape cancels
func (c *ConfirmDialog) CloseOnPressEscape() bool {
	return true
}

// HandleAction answers "no" for a cancel action
func (c *ConfirmDialog) HandleAction(action popup.Action) tea.Cmd {
	if action == popup.ActionCancel {
		return c.answer(false)
	}
	return nil
}

// Close closes without answering
func (c *ConfirmDialog) Close() tea.Cmd {
	return c.closeCmd()
}
