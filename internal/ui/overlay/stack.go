package overlay

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popstack/internal/popup"
	"github.com/riordanpawley/popstack/internal/surface"
)

// Anchored is implemented by overlays placed at a fixed screen position
type Anchored interface {
	Anchor() (x, y int)
}

// deregisterMsg drops a closed overlay's controller once its exit
// transition is over
type deregisterMsg struct {
	id string
}

type entry struct {
	overlay Overlay
	node    *surface.Node
}

// Stack hosts overlays on a surface document and keeps the popup manager
// in step with them
type Stack struct {
	manager   *popup.Manager
	doc       *surface.Document
	styles    *Styles
	scheduler popup.Scheduler
	linger    time.Duration
	logger    *slog.Logger

	entries []entry
	seq     int
}

// StackOption configures a Stack
type StackOption func(*Stack)

// WithScheduler sets the scheduler used for delayed deregistration
func WithScheduler(s popup.Scheduler) StackOption {
	return func(st *Stack) {
		if s != nil {
			st.scheduler = s
		}
	}
}

// WithLinger sets how long a closed overlay stays registered
func WithLinger(d time.Duration) StackOption {
	return func(st *Stack) {
		st.linger = d
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) StackOption {
	return func(st *Stack) {
		if logger != nil {
			st.logger = logger
		}
	}
}

// NewStack creates a new empty overlay stack
func NewStack(manager *popup.Manager, doc *surface.Document, opts ...StackOption) *Stack {
	s := &Stack{
		manager:   manager,
		doc:       doc,
		styles:    New(),
		scheduler: popup.TickScheduler{},
		linger:    popup.DefaultTransition,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push opens o above everything else. The overlay gets a fresh id, is
// registered with the manager and gets a backdrop entry one order below
// its own node. opts are applied after the placement options.
func (s *Stack) Push(o Overlay, opts ...popup.OpenOption) tea.Cmd {
	s.seq++
	id := fmt.Sprintf("popup-%d", s.seq)
	o.SetID(id)
	s.manager.Register(id, o)

	backdropOrder := s.manager.NextStackOrder()
	node := surface.NewElement(id)
	node.Placement = o.Placement()
	node.ZIndex = s.manager.NextStackOrder()
	if a, ok := o.(Anchored); ok {
		node.X, node.Y = a.Anchor()
	}
	s.doc.Body().AppendChild(node)
	s.entries = append(s.entries, entry{overlay: o, node: node})

	s.logger.Debug("overlay: push", "id", id, "title", o.Title(), "order", node.ZIndex)
	opts = append([]popup.OpenOption{popup.InContainer(node), popup.WithDimClasses(o.DimClasses())}, opts...)
	return tea.Batch(o.Init(), s.manager.Open(id, backdropOrder, opts...))
}

// Close removes the overlay with the given id. Unknown ids are ignored.
func (s *Stack) Close(id string) tea.Cmd {
	i := s.index(id)
	if i < 0 {
		return nil
	}

	e := s.entries[i]
	s.entries = slices.Delete(s.entries, i, i+1)
	e.node.Detach()

	s.logger.Debug("overlay: close", "id", id)
	return tea.Batch(
		s.manager.Close(id),
		s.scheduler.After(s.linger, deregisterMsg{id: id}),
	)
}

// Pop closes the top overlay
func (s *Stack) Pop() tea.Cmd {
	current := s.Current()
	if current == nil {
		return nil
	}
	return s.Close(current.ID())
}

// Clear closes every overlay from the top down
func (s *Stack) Clear() tea.Cmd {
	var cmds []tea.Cmd
	for !s.IsEmpty() {
		cmds = append(cmds, s.Pop())
	}
	return tea.Batch(cmds...)
}

// Current returns the top overlay without removing it
// Returns nil if the stack is empty
func (s *Stack) Current() Overlay {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].overlay
}

// Get returns the open overlay with the given id
func (s *Stack) Get(id string) Overlay {
	if i := s.index(id); i >= 0 {
		return s.entries[i].overlay
	}
	return nil
}

// IsEmpty returns true if the stack has no overlays
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of open overlays
func (s *Stack) Len() int {
	return len(s.entries)
}

// Update handles CloseOverlayMsg and forwards everything else to the
// current overlay
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CloseOverlayMsg:
		if msg.ID == "" {
			return s.Pop()
		}
		return s.Close(msg.ID)
	case deregisterMsg:
		// ids are never reused, but an overlay still open keeps its handle
		if s.index(msg.id) < 0 {
			s.manager.Deregister(msg.id)
		}
		return nil
	}

	if s.IsEmpty() {
		return nil
	}

	top := len(s.entries) - 1
	current := s.entries[top].overlay
	newModel, cmd := current.Update(msg)

	if newOverlay, ok := newModel.(Overlay); ok && newOverlay != current {
		newOverlay.SetID(current.ID())
		s.entries[top].overlay = newOverlay
		s.manager.Register(current.ID(), newOverlay)
	}

	return cmd
}

// Sync renders every overlay into its surface node for a width x height
// screen
func (s *Stack) Sync(width, height int) {
	for _, e := range s.entries {
		e.node.Content = s.frame(e.overlay, width, height)
	}
}

func (s *Stack) frame(o Overlay, width, height int) string {
	view := o.View()
	if title := o.Title(); title != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, s.styles.Title.Render(title), view)
	}

	w, h := o.Size()
	switch o.Placement() {
	case surface.PlaceRight:
		if w == 0 {
			w = max(width/3, 20)
		}
		return s.styles.Drawer.Width(w).Height(height).Render(view)
	case surface.PlaceAnchor:
		return s.styles.Popover.Render(view)
	}

	style := s.styles.Frame
	if w > 0 {
		style = style.Width(w)
	}
	if h > 0 {
		style = style.Height(h)
	}
	return style.Render(view)
}

func (s *Stack) index(id string) int {
	return slices.IndexFunc(s.entries, func(e entry) bool {
		return e.overlay.ID() == id
	})
}
