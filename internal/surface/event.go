package surface

import tea "github.com/charmbracelet/bubbletea"

// EventType identifies the kind of input event delivered to a node
type EventType int

const (
	EventClick EventType = iota
	// EventWheel covers scroll gestures over a node
	EventWheel
	EventKey
)

// Event is delivered to listeners from the target up through its ancestors
type Event struct {
	Type   EventType
	X, Y   int
	Target *Node
	// Msg is the originating Bubble Tea message, if any
	Msg tea.Msg

	stopped bool
}

// StopPropagation prevents ancestors from seeing the event
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether propagation was stopped
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener handles an event and may return a command for the program
type Listener func(ev *Event) tea.Cmd

// AddEventListener registers l for events of type t on this node
func (n *Node) AddEventListener(t EventType, l Listener) {
	if l == nil {
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[EventType][]Listener)
	}
	n.listeners[t] = append(n.listeners[t], l)
}

// Dispatch runs the listeners on n and then on each ancestor until one of
// them stops propagation. Commands returned by listeners are batched.
func (n *Node) Dispatch(ev *Event) tea.Cmd {
	if ev == nil {
		return nil
	}
	if ev.Target == nil {
		ev.Target = n
	}

	var cmds []tea.Cmd
	for cur := n; cur != nil && !ev.stopped; cur = cur.parent {
		for _, l := range cur.listeners[ev.Type] {
			if cmd := l(ev); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}
