package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popstack/internal/surface"
	"github.com/riordanpawley/popstack/internal/ui/styles"
)

// KeyCategory groups related key bindings under a heading
type KeyCategory struct {
	Name     string
	Bindings []key.Binding
}

// HelpOverlay displays a scrollable keybinding reference
type HelpOverlay struct {
	base
	categories []KeyCategory
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay listing categories
func NewHelpOverlay(categories ...KeyCategory) *HelpOverlay {
	return &HelpOverlay{
		base:       base{styles: New()},
		categories: categories,
		viewHeight: 12,
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "q", "?":
		return h, h.Close()
	case "j", "down":
		if h.scroll < h.maxScroll {
			h.scroll++
		}
	case "k", "up":
		if h.scroll > 0 {
			h.scroll--
		}
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}
	return h, nil
}

func (h *HelpOverlay) lines() []string {
	categoryStyle := lipgloss.NewStyle().Foreground(styles.Blue).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Yellow).Width(10)

	var lines []string
	for i, cat := range h.categories {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, categoryStyle.Render(cat.Name+":"))
		for _, b := range cat.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			lines = append(lines, "  "+keyStyle.Render(help.Key)+h.styles.MenuItem.Render(help.Desc))
		}
	}
	return lines
}

// View renders the visible slice of the reference
func (h *HelpOverlay) View() string {
	lines := h.lines()
	h.maxScroll = max(0, len(lines)-h.viewHeight)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+h.viewHeight, len(lines))
	result := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		result += "\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}
	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size fixes the help frame width
func (h *HelpOverlay) Size() (width, height int) {
	return 48, 0
}

func (h *HelpOverlay) Placement() surface.Placement { return surface.PlaceCenter }

func (h *HelpOverlay) CloseOnClickModal() bool { return true }

func (h *HelpOverlay) CloseOnPressEscape() bool { return true }

func (h *HelpOverlay) Close() tea.Cmd { return h.closeCmd() }
