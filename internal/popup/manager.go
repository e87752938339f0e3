package popup

import (
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/popstack/internal/surface"
)

const (
	// DefaultBaseStackOrder seeds the stack order counter on first use
	DefaultBaseStackOrder = 2000
	// DefaultTransition is how long the backdrop's enter/leave classes last
	DefaultTransition = 200 * time.Millisecond
)

// Backdrop class tokens
const (
	ClassModal = "v-modal"
	ClassEnter = "v-modal-enter"
	ClassLeave = "v-modal-leave"
)

// BackdropID is the node id of the shared backdrop
const BackdropID = "v-modal"

// Record is one open overlay on the stack
type Record struct {
	ID         string
	StackOrder int
	DimClasses string
}

// Manager tracks open overlays and the shared backdrop
type Manager struct {
	doc        *surface.Document
	logger     *slog.Logger
	scheduler  Scheduler
	transition time.Duration
	dismissKey key.Binding

	controllers map[string]Controller
	stack       []Record

	baseOrder   int
	order       int
	orderSeeded bool

	fade       bool
	backdrop   *surface.Node
	generation uint64
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithScheduler replaces the tea.Tick based scheduler
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) {
		if s != nil {
			m.scheduler = s
		}
	}
}

// WithBaseStackOrder sets the value the counter is seeded with
func WithBaseStackOrder(order int) Option {
	return func(m *Manager) {
		if order > 0 {
			m.baseOrder = order
		}
	}
}

// WithTransition sets the backdrop transition delay
func WithTransition(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.transition = d
		}
	}
}

// WithFadeDefault sets the fade preference used until an Open overrides it
func WithFadeDefault(fade bool) Option {
	return func(m *Manager) {
		m.fade = fade
	}
}

// WithDismissKeys sets the binding that dismisses the topmost overlay
func WithDismissKeys(b key.Binding) Option {
	return func(m *Manager) {
		m.dismissKey = b
	}
}

// New creates a Manager that attaches its backdrop to doc
func New(doc *surface.Document, opts ...Option) *Manager {
	m := &Manager{
		doc:         doc,
		logger:      slog.Default(),
		scheduler:   TickScheduler{},
		transition:  DefaultTransition,
		dismissKey:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		controllers: make(map[string]Controller),
		baseOrder:   DefaultBaseStackOrder,
		fade:        true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register stores c under id, replacing any previous controller. Empty ids
// and nil controllers are ignored.
func (m *Manager) Register(id string, c Controller) {
	if id == "" || c == nil {
		return
	}
	m.controllers[id] = c
}

// Deregister forgets the controller stored under id
func (m *Manager) Deregister(id string) {
	if id == "" {
		return
	}
	delete(m.controllers, id)
}

// Lookup returns the controller stored under id
func (m *Manager) Lookup(id string) (Controller, bool) {
	c, ok := m.controllers[id]
	return c, ok
}

// StackOrder returns the next value NextStackOrder will hand out, seeding
// the counter on first use.
func (m *Manager) StackOrder() int {
	if !m.orderSeeded {
		if m.order == 0 {
			m.order = m.baseOrder
		}
		m.orderSeeded = true
	}
	return m.order
}

// NextStackOrder returns the current counter value and advances it
func (m *Manager) NextStackOrder() int {
	order := m.StackOrder()
	m.order++
	return order
}

// SetStackOrder moves the counter. A value set before the first read
// replaces the base seed.
func (m *Manager) SetStackOrder(order int) {
	m.order = order
}

// Top returns the topmost record
func (m *Manager) Top() (Record, bool) {
	if len(m.stack) == 0 {
		return Record{}, false
	}
	return m.stack[len(m.stack)-1], true
}

// Records returns the stack from bottom to top
func (m *Manager) Records() []Record {
	return slices.Clone(m.stack)
}

// Len returns the number of open overlays
func (m *Manager) Len() int {
	return len(m.stack)
}

// Backdrop returns the shared backdrop, or nil while none exists
func (m *Manager) Backdrop() *surface.Node {
	return m.backdrop
}

// FadeEnabled reports the current fade preference
func (m *Manager) FadeEnabled() bool {
	return m.fade
}

// DismissKey returns the binding that dismisses the topmost overlay
func (m *Manager) DismissKey() key.Binding {
	return m.dismissKey
}

// Update consumes the manager's transition timers and the dismiss key
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case enterElapsedMsg:
		m.finishEnter(msg.generation)
	case leaveElapsedMsg:
		m.finishLeave(msg.generation)
	case tea.KeyMsg:
		cmd, _ := m.HandleKey(msg)
		return cmd
	}
	return nil
}

// Reset returns the manager to its initial state. Intended for tests.
func (m *Manager) Reset() {
	if m.backdrop != nil {
		m.backdrop.Detach()
		m.backdrop.Visible = false
	}
	m.backdrop = nil
	m.stack = nil
	m.controllers = make(map[string]Controller)
	m.order = 0
	m.orderSeeded = false
}

// topController resolves the controller of the topmost record
func (m *Manager) topController() (Controller, bool) {
	top, ok := m.Top()
	if !ok {
		return nil, false
	}
	return m.Lookup(top.ID)
}
