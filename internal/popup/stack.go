package popup

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/popstack/internal/surface"
)

type openConfig struct {
	container  *surface.Node
	dimClasses string
	fade       bool
}

// OpenOption configures a single Open call
type OpenOption func(*openConfig)

// InContainer attaches the backdrop next to container instead of the body.
// It falls back to the body when container is detached or its parent is a
// fragment.
func InContainer(container *surface.Node) OpenOption {
	return func(c *openConfig) {
		c.container = container
	}
}

// WithDimClasses adds whitespace separated class tokens to the backdrop
// while the overlay is on the stack.
func WithDimClasses(classes string) OpenOption {
	return func(c *openConfig) {
		c.dimClasses = classes
	}
}

// WithFade sets the manager-wide fade preference. Without it the previous
// preference is kept.
func WithFade(fade bool) OpenOption {
	return func(c *openConfig) {
		c.fade = fade
	}
}

// Open pushes id onto the stack at the given order and shows the backdrop
// beneath it. Opening an id that is already on the stack does nothing, as
// does an empty id or a non-positive order. The returned command ends the
// backdrop's entrance transition.
func (m *Manager) Open(id string, order int, opts ...OpenOption) tea.Cmd {
	if id == "" || order <= 0 {
		m.logger.Debug("popup: open ignored", "id", id, "order", order)
		return nil
	}

	cfg := openConfig{fade: m.fade}
	for _, opt := range opts {
		opt(&cfg)
	}
	m.fade = cfg.fade

	for _, r := range m.stack {
		if r.ID == id {
			m.logger.Debug("popup: already open", "id", id)
			return nil
		}
	}

	backdrop, existed := m.ensureBackdrop()
	backdrop.ZIndex = order
	backdrop.Classes.Add(ClassModal)
	if m.fade && !existed {
		backdrop.Classes.Add(ClassEnter)
	}
	if cfg.dimClasses != "" {
		backdrop.Classes.Add(surface.SplitClasses(cfg.dimClasses)...)
	}
	cmd := m.scheduler.After(m.transition, enterElapsedMsg{generation: m.generation})

	m.attachBackdrop(backdrop, cfg.container)
	backdrop.TabIndex = 0
	backdrop.Visible = true

	m.stack = append(m.stack, Record{ID: id, StackOrder: order, DimClasses: cfg.dimClasses})
	m.logger.Debug("popup: opened", "id", id, "order", order, "depth", len(m.stack))
	return cmd
}

// Close removes id from the stack. Closing the top record drops its dim
// classes and lowers the backdrop to the new top; closing a record further
// down only removes it. When the stack empties the backdrop fades out and
// the returned command tears it down if nothing reopened in the meantime.
func (m *Manager) Close(id string) tea.Cmd {
	if n := len(m.stack); n > 0 {
		top := m.stack[n-1]
		if top.ID == id {
			if top.DimClasses != "" && m.backdrop != nil {
				m.backdrop.Classes.Remove(surface.SplitClasses(top.DimClasses)...)
			}
			m.stack = m.stack[:n-1]
			if len(m.stack) > 0 && m.backdrop != nil {
				m.backdrop.ZIndex = m.stack[len(m.stack)-1].StackOrder
			}
		} else {
			// Out-of-order close leaves the backdrop untouched.
			for i := n - 1; i >= 0; i-- {
				if m.stack[i].ID == id {
					m.stack = slices.Delete(m.stack, i, i+1)
					break
				}
			}
		}
	}

	if len(m.stack) > 0 || m.backdrop == nil {
		return nil
	}

	if m.fade {
		m.backdrop.Classes.Add(ClassLeave)
	}
	return m.scheduler.After(m.transition, leaveElapsedMsg{generation: m.generation})
}
