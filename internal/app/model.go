// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popstack/internal/config"
	"github.com/riordanpawley/popstack/internal/popup"
	"github.com/riordanpawley/popstack/internal/surface"
	"github.com/riordanpawley/popstack/internal/types"
	"github.com/riordanpawley/popstack/internal/ui/compose"
	"github.com/riordanpawley/popstack/internal/ui/overlay"
	"github.com/riordanpawley/popstack/internal/ui/statusbar"
	"github.com/riordanpawley/popstack/internal/ui/styles"
	"github.com/riordanpawley/popstack/internal/ui/toast"
)

// WorkspaceID is the id of the node the workspace is painted into
const WorkspaceID = "workspace"

// Model is the main application state
type Model struct {
	doc       *surface.Document
	workspace *surface.Node
	state     *workspaceState

	popups   *popup.Manager
	overlays *overlay.Stack
	tray     *toast.Tray

	styles     *styles.Styles
	config     *config.Config
	configPath string
	keys       keyMap

	// preferences applied to overlays opened from now on
	fade     bool
	mouse    bool
	dimClass string

	// Terminal size
	width  int
	height int

	logger *slog.Logger
}

// Option configures a Model
type Option func(*options)

type options struct {
	logger     *slog.Logger
	scheduler  popup.Scheduler
	configPath string
	toastTTL   time.Duration
}

// WithLogger sets the logger shared by the model and the popup manager
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithScheduler sets the scheduler used for transition and cleanup timers
func WithScheduler(s popup.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithConfigPath sets where the settings overlay saves configuration
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithToastTTL sets how long result toasts stay visible
func WithToastTTL(d time.Duration) Option {
	return func(o *options) {
		o.toastTTL = d
	}
}

// New creates a new application model with the given config
func New(cfg *config.Config, opts ...Option) Model {
	o := options{
		logger:     slog.Default(),
		scheduler:  popup.TickScheduler{},
		configPath: config.FileName,
		toastTTL:   toast.DefaultTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	st := styles.New()
	for token, color := range cfg.Theme.DimColors {
		st.SetDimColor(token, lipgloss.Color(color))
	}

	doc := surface.NewDocument()
	popups := popup.New(doc,
		popup.WithLogger(o.logger),
		popup.WithScheduler(o.scheduler),
		popup.WithBaseStackOrder(cfg.Popup.BaseStackOrder),
		popup.WithTransition(cfg.Popup.Transition()),
		popup.WithFadeDefault(cfg.Popup.Fade),
		popup.WithDismissKeys(dismissBinding(cfg.Popup.DismissKeys)),
	)
	overlays := overlay.NewStack(popups, doc,
		overlay.WithScheduler(o.scheduler),
		overlay.WithLinger(cfg.Popup.Transition()),
		overlay.WithLogger(o.logger),
	)

	state := &workspaceState{}
	workspace := surface.NewElement(WorkspaceID)
	workspace.Placement = surface.PlaceFill
	workspace.AddEventListener(surface.EventWheel, state.onWheel)
	doc.Body().AppendChild(workspace)

	return Model{
		doc:        doc,
		workspace:  workspace,
		state:      state,
		popups:     popups,
		overlays:   overlays,
		tray:       toast.NewTray(doc, toast.New(st), o.toastTTL),
		styles:     st,
		config:     cfg,
		configPath: o.configPath,
		keys:       defaultKeyMap(),
		fade:       cfg.Popup.Fade,
		mouse:      cfg.Mouse,
		logger:     o.logger,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("popstack")
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.SettingChangedMsg:
		return m.handleSetting(msg)

	case configSavedMsg:
		if msg.err != nil {
			m.logger.Error("config save failed", "path", msg.path, "error", msg.err)
			return m, m.notify(types.ToastError, fmt.Sprintf("Save failed: %v", msg.err))
		}
		return m, m.notify(types.ToastSuccess, "Settings saved to "+msg.path)
	}

	// transition timers, deferred deregistration, toast expiry and close
	// requests
	m.tray.Update(msg)
	return m, tea.Batch(m.popups.Update(msg), m.overlays.Update(msg))
}

// Mode reports what currently receives keyboard input
func (m Model) Mode() types.Mode {
	top := m.overlays.Current()
	if top == nil {
		return types.ModeNormal
	}
	if c, ok := top.(overlay.InputCapturer); ok && c.CapturesInput() {
		return types.ModeInput
	}
	return types.ModeOverlay
}

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in any mode)
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	// the dismiss key always belongs to the topmost overlay
	if cmd, handled := m.popups.HandleKey(msg); handled {
		m.logger.Debug("dismiss key handled", "key", msg.String())
		return m, cmd
	}

	switch m.Mode() {
	case types.ModeInput:
		return m, m.overlays.Update(msg)
	case types.ModeOverlay:
		if key.Matches(msg, m.keys.stacking()...) {
			return m.handleNormalMode(msg)
		}
		return m, m.overlays.Update(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes the workspace shortcuts
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	depth := m.overlays.Len()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dialog):
		d := overlay.NewDialog(
			fmt.Sprintf("Dialog %d", depth+1),
			fmt.Sprintf("Opened above %d overlay(s).\nThe backdrop now sits directly under this dialog.", depth),
		).WithWidth(44)
		return m, m.push(d)
	case key.Matches(msg, m.keys.Confirm):
		return m, m.push(overlay.NewConfirmDialog("Clear activity?", "Remove every entry from the activity log?"))
	case key.Matches(msg, m.keys.Drawer):
		return m, m.push(overlay.NewDrawer("Notes", m.state.note))
	case key.Matches(msg, m.keys.Popover):
		x, y := 4+2*depth, 3+depth
		if m.state.pointerSet {
			x, y = m.state.pointerX, m.state.pointerY
		}
		return m, m.push(overlay.NewPopover("Click anywhere outside to dismiss", x, y))
	case key.Matches(msg, m.keys.Settings):
		return m, m.push(m.settingsOverlay())
	case key.Matches(msg, m.keys.Help):
		return m, m.push(overlay.NewHelpOverlay(m.helpCategories()...))
	}
	return m, nil
}

// push opens o with the current preferences
func (m Model) push(o overlay.Overlay) tea.Cmd {
	opts := []popup.OpenOption{popup.WithFade(m.fade)}
	if o.DimClasses() == "" && m.dimClass != "" {
		opts = append(opts, popup.WithDimClasses(m.dimClass))
	}
	cmd := m.overlays.Push(o, opts...)
	m.logger.Debug("overlay opened", "id", o.ID(), "depth", m.overlays.Len())
	return cmd
}

// handleMouse hit-tests the pointer against the composed layers and
// dispatches the event to the node under it
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse {
		return m, nil
	}

	var evType surface.EventType
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		evType = surface.EventWheel
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		evType = surface.EventClick
		m.state.pointerX, m.state.pointerY, m.state.pointerSet = msg.X, msg.Y, true
	default:
		return m, nil
	}

	target := compose.HitTest(m.doc, msg.X, msg.Y, m.width, m.canvasHeight())
	if target == nil {
		return m, nil
	}
	return m, target.Dispatch(&surface.Event{Type: evType, X: msg.X, Y: msg.Y, Msg: msg})
}

// handleSelection reacts to overlay results
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	m.logger.Info("overlay result", "id", msg.ID, "key", msg.Key)

	switch msg.Key {
	case "yes":
		m.state.clear()
		return m, m.notify(types.ToastSuccess, "Activity cleared")
	case "no":
		return m, m.notify(types.ToastInfo, fmt.Sprintf("%s: kept activity", msg.ID))
	case "saved":
		if note, ok := msg.Value.(string); ok {
			m.state.note = note
		}
		return m, m.notify(types.ToastSuccess, "Note saved")
	case settingSave:
		return m, m.saveConfigCmd()
	}
	return m, nil
}

// handleSetting applies a changed preference
func (m Model) handleSetting(msg overlay.SettingChangedMsg) (tea.Model, tea.Cmd) {
	m.logger.Info("setting changed", "key", msg.Key, "value", msg.Value)

	switch msg.Key {
	case settingFade:
		m.fade, _ = msg.Value.(bool)
	case settingMouse:
		m.mouse, _ = msg.Value.(bool)
		if m.mouse {
			return m, tea.EnableMouseCellMotion
		}
		return m, tea.DisableMouse
	case settingDim:
		dim, _ := msg.Value.(string)
		if dim == popup.ClassModal {
			dim = ""
		}
		m.dimClass = dim
	}
	return m, nil
}

// notify records message in the activity log and shows it as a toast
func (m Model) notify(level types.ToastLevel, message string) tea.Cmd {
	m.state.record(message)
	return m.tray.Add(level, message)
}

// canvasHeight is the screen height left for the composed layers
func (m Model) canvasHeight() int {
	return max(0, m.height-1)
}

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	h := m.canvasHeight()
	m.workspace.Content = m.renderWorkspace(m.width, h)
	m.overlays.Sync(m.width, h)
	m.tray.Sync(m.width, h)
	canvas := compose.Render(m.doc, m.width, h, m.styles)

	depth, order := m.overlays.Len(), 0
	if top, ok := m.popups.Top(); ok {
		order = top.StackOrder
	}
	sb := statusbar.New(m.Mode(), m.width, m.styles).WithStack(depth, order, m.fade)

	if h == 0 {
		return sb.Render()
	}
	return lipgloss.JoinVertical(lipgloss.Left, canvas, sb.Render())
}
