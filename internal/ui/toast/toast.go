package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popstack/internal/surface"
	"github.com/riordanpawley/popstack/internal/types"
	"github.com/riordanpawley/popstack/internal/ui/styles"
)

// DefaultTTL is how long a toast stays visible
const DefaultTTL = 3 * time.Second

// NodeID is the id of the surface node toasts are painted into
const NodeID = "toasts"

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Render renders a stack of toasts right-aligned
// Returns empty string if no toasts to display
func (r *ToastRenderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	var rendered []string
	toastWidth := min(width/3, 40)

	for _, t := range toasts {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}

// expireMsg asks the tray to drop toasts that have run out
type expireMsg struct{}

// Tray keeps the live toasts and paints them into a node of the document.
// The node sits just above the workspace so an open backdrop dims it too.
type Tray struct {
	renderer *ToastRenderer
	node     *surface.Node
	toasts   []types.Toast
	ttl      time.Duration
	now      func() time.Time
}

// NewTray creates a tray whose node is appended to doc's body
func NewTray(doc *surface.Document, renderer *ToastRenderer, ttl time.Duration) *Tray {
	node := surface.NewElement(NodeID)
	node.Placement = surface.PlaceAnchor
	node.ZIndex = 1
	doc.Body().AppendChild(node)

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tray{
		renderer: renderer,
		node:     node,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Add shows a toast and schedules its expiry
func (t *Tray) Add(level types.ToastLevel, message string) tea.Cmd {
	t.toasts = append(t.toasts, types.Toast{
		Level:   level,
		Message: message,
		Expires: t.now().Add(t.ttl),
	})
	return tea.Tick(t.ttl, func(time.Time) tea.Msg {
		return expireMsg{}
	})
}

// Toasts returns the live toasts, oldest first
func (t *Tray) Toasts() []types.Toast {
	return t.toasts
}

// Update prunes expired toasts
func (t *Tray) Update(msg tea.Msg) {
	if _, ok := msg.(expireMsg); !ok {
		return
	}
	now := t.now()
	live := t.toasts[:0]
	for _, toast := range t.toasts {
		if !toast.Expired(now) {
			live = append(live, toast)
		}
	}
	t.toasts = live
}

// Sync paints the toasts into the bottom-right corner of a width x height
// area
func (t *Tray) Sync(width, height int) {
	t.node.Content = t.renderer.Render(t.toasts, width)
	t.node.Visible = t.node.Content != ""
	t.node.X = max(0, width-lipgloss.Width(t.node.Content))
	t.node.Y = max(0, height-lipgloss.Height(t.node.Content))
}
