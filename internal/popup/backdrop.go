package popup

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/popstack/internal/surface"
)

// ensureBackdrop returns the shared backdrop, creating a new generation if
// the previous one was torn down. existed reports whether it was reused.
func (m *Manager) ensureBackdrop() (backdrop *surface.Node, existed bool) {
	if m.backdrop != nil {
		return m.backdrop, true
	}

	n := surface.NewElement(BackdropID)
	n.Placement = surface.PlaceFill
	n.AddEventListener(surface.EventWheel, func(ev *surface.Event) tea.Cmd {
		ev.StopPropagation()
		return nil
	})
	n.AddEventListener(surface.EventClick, func(ev *surface.Event) tea.Cmd {
		return m.clickBackdrop()
	})

	m.generation++
	m.backdrop = n
	m.logger.Debug("popup: backdrop created", "generation", m.generation)
	return n, false
}

// attachBackdrop appends the backdrop to container's parent, or to the
// document body when that is not possible.
func (m *Manager) attachBackdrop(backdrop, container *surface.Node) {
	if container != nil {
		if p := container.Parent(); p != nil && p.Kind() != surface.KindFragment {
			p.AppendChild(backdrop)
			return
		}
	}
	m.doc.Body().AppendChild(backdrop)
}

func (m *Manager) finishEnter(generation uint64) {
	if m.backdrop == nil || m.generation != generation {
		return
	}
	m.backdrop.Classes.Remove(ClassEnter)
}

// finishLeave tears the backdrop down if the stack is still empty. The
// leave class is dropped either way so a reused backdrop does not keep it.
func (m *Manager) finishLeave(generation uint64) {
	if m.backdrop == nil || m.generation != generation {
		return
	}

	b := m.backdrop
	if len(m.stack) == 0 {
		b.Detach()
		b.Visible = false
		m.backdrop = nil
		m.logger.Debug("popup: backdrop removed", "generation", generation)
	}
	b.Classes.Remove(ClassLeave)
}
