package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popstack/internal/surface"
)

// Popover is a small anchored panel over a transparent backdrop. It
// ignores the dismiss key; a click outside or Enter closes it.
type Popover struct {
	base
	text string
	x, y int
}

// NewPopover creates a popover showing text at x, y
func NewPopover(text string, x, y int) *Popover {
	return &Popover{
		base: base{styles: New()},
		text: text,
		x:    x,
		y:    y,
	}
}

func (p *Popover) Init() tea.Cmd { return nil }

func (p *Popover) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		return p, p.Close()
	}
	return p, nil
}

func (p *Popover) View() string {
	return p.styles.MenuItem.Render(p.text)
}

func (p *Popover) Title() string { return "" }

func (p *Popover) Placement() surface.Placement { return surface.PlaceAnchor }

// Anchor returns the popover position
func (p *Popover) Anchor() (x, y int) { return p.x, p.y }

// DimClasses keeps the content beneath readable
func (p *Popover) DimClasses() string { return "v-modal-clear" }

func (p *Popover) CloseOnClickModal() bool { return true }

func (p *Popover) CloseOnPressEscape() bool { return false }

func (p *Popover) Close() tea.Cmd { return p.closeCmd() }
