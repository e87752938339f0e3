package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popstack/internal/popup"
	"github.com/riordanpawley/popstack/internal/surface"
)

// Overlay represents a component shown above the workspace that shares the
// popup backdrop.
type Overlay interface {
	tea.Model
	popup.Controller
	// SetID is called by the Stack before the overlay is opened
	SetID(id string)
	ID() string
	Title() string
	// Size returns the fixed frame size, or zero to size to content
	Size() (width, height int)
	Placement() surface.Placement
	// DimClasses are extra backdrop class tokens while this overlay is open
	DimClasses() string
}

// CloseOverlayMsg signals that the overlay with ID should be closed. An
// empty ID closes the topmost overlay.
type CloseOverlayMsg struct {
	ID string
}

// SelectionMsg is sent when an overlay produces a result
type SelectionMsg struct {
	ID    string
	Key   string
	Value any
}

// base carries the id and styles shared by the overlays in this package
type base struct {
	id     string
	styles *Styles
}

// SetID assigns the stack id
func (b *base) SetID(id string) {
	b.id = id
}

// ID returns the stack id
func (b *base) ID() string {
	return b.id
}

// Size sizes the overlay to its content
func (b *base) Size() (width, height int) {
	return 0, 0
}

// DimClasses adds nothing to the backdrop
func (b *base) DimClasses() string {
	return ""
}

func (b *base) closeCmd() tea.Cmd {
	id := b.id
	return func() tea.Msg {
		return CloseOverlayMsg{ID: id}
	}
}

func (b *base) selectCmd(key string, value any) tea.Cmd {
	id := b.id
	return func() tea.Msg {
		return SelectionMsg{ID: id, Key: key, Value: value}
	}
}

// InputCapturer is implemented by overlays that consume printable keys,
// so the host must not treat them as its own shortcuts
type InputCapturer interface {
	CapturesInput() bool
}
