package popup

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/popstack/internal/surface"
)

type closedMsg struct{ via string }

// stubController only offers the plain close affordance
type stubController struct {
	clickClose bool
	escClose   bool
	closes     int
}

func (s *stubController) CloseOnClickModal() bool  { return s.clickClose }
func (s *stubController) CloseOnPressEscape() bool { return s.escClose }

func (s *stubController) Close() tea.Cmd {
	s.closes++
	return func() tea.Msg { return closedMsg{via: "close"} }
}

type actionController struct {
	stubController
	actions []Action
}

func (a *actionController) HandleAction(action Action) tea.Cmd {
	a.actions = append(a.actions, action)
	return func() tea.Msg { return closedMsg{via: "action"} }
}

type handleCloseController struct {
	actionController
	handled int
}

func (h *handleCloseController) HandleClose() tea.Cmd {
	h.handled++
	return func() tea.Msg { return closedMsg{via: "handle"} }
}

var escKey = tea.KeyMsg{Type: tea.KeyEsc}

func TestEscapeClosesTopOnly(t *testing.T) {
	m, _, _ := newTestManager(t)
	a := &stubController{escClose: true}
	b := &stubController{escClose: true}
	m.Register("a", a)
	m.Register("b", b)
	m.Open("a", 2000)
	m.Open("b", 2001)

	cmd, handled := m.HandleKey(escKey)

	require.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, closedMsg{via: "close"}, cmd())
	assert.Equal(t, 1, b.closes)
	assert.Equal(t, 0, a.closes)
}

func TestEscapeRespectsOptOut(t *testing.T) {
	m, _, _ := newTestManager(t)
	a := &stubController{escClose: false}
	m.Register("a", a)
	m.Open("a", 2000)

	cmd, handled := m.HandleKey(escKey)

	assert.False(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, a.closes)
}

func TestEscapeWithoutOverlay(t *testing.T) {
	m, _, _ := newTestManager(t)

	cmd, handled := m.HandleKey(escKey)
	assert.False(t, handled)
	assert.Nil(t, cmd)

	// an open overlay without a registered controller is skipped too
	m.Open("ghost", 2000)
	cmd, handled = m.HandleKey(escKey)
	assert.False(t, handled)
	assert.Nil(t, cmd)
}

func TestEscapeIgnoresOtherKeys(t *testing.T) {
	m, _, _ := newTestManager(t)
	a := &stubController{escClose: true}
	m.Register("a", a)
	m.Open("a", 2000)

	_, handled := m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.False(t, handled)
	assert.Equal(t, 0, a.closes)
}

func TestEscapeAffordancePriority(t *testing.T) {
	tests := []struct {
		name string
		ctrl Controller
		want string
	}{
		{"plain close", &stubController{escClose: true}, "close"},
		{"action handler", &actionController{stubController: stubController{escClose: true}}, "action"},
		{
			"close handler wins",
			&handleCloseController{actionController: actionController{stubController: stubController{escClose: true}}},
			"handle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestManager(t)
			m.Register("a", tt.ctrl)
			m.Open("a", 2000)

			cmd := m.Update(escKey)
			require.NotNil(t, cmd)
			assert.Equal(t, closedMsg{via: tt.want}, cmd())
		})
	}
}

func TestEscapeInvokesExactlyOneAffordance(t *testing.T) {
	m, _, _ := newTestManager(t)
	h := &handleCloseController{actionController: actionController{stubController: stubController{escClose: true}}}
	m.Register("a", h)
	m.Open("a", 2000)

	m.HandleKey(escKey)

	assert.Equal(t, 1, h.handled)
	assert.Empty(t, h.actions)
	assert.Equal(t, 0, h.closes)

	a := &actionController{stubController: stubController{escClose: true}}
	m.Register("a", a)
	m.HandleKey(escKey)

	assert.Equal(t, []Action{ActionCancel}, a.actions)
	assert.Equal(t, 0, a.closes)
}

func TestCustomDismissKeys(t *testing.T) {
	m, _, _ := newTestManager(t, WithDismissKeys(key.NewBinding(key.WithKeys("q", "ctrl+w"))))
	a := &stubController{escClose: true}
	m.Register("a", a)
	m.Open("a", 2000)

	_, handled := m.HandleKey(escKey)
	assert.False(t, handled)

	_, handled = m.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.True(t, handled)
	assert.Equal(t, 1, a.closes)
}

func TestBackdropClickClosesTop(t *testing.T) {
	m, _, _ := newTestManager(t)
	a := &stubController{clickClose: true}
	b := &handleCloseController{actionController: actionController{stubController: stubController{clickClose: true}}}
	m.Register("a", a)
	m.Register("b", b)
	m.Open("a", 2000)
	m.Open("b", 2001)

	cmd := m.Backdrop().Dispatch(&surface.Event{Type: surface.EventClick})

	require.NotNil(t, cmd)
	assert.Equal(t, closedMsg{via: "close"}, cmd(), "click only uses the plain close affordance")
	assert.Equal(t, 1, b.closes)
	assert.Equal(t, 0, b.handled)
	assert.Equal(t, 0, a.closes)
}

func TestBackdropClickRespectsOptOut(t *testing.T) {
	m, _, _ := newTestManager(t)
	a := &stubController{clickClose: false, escClose: true}
	m.Register("a", a)
	m.Open("a", 2000)

	assert.Nil(t, m.Backdrop().Dispatch(&surface.Event{Type: surface.EventClick}))
	assert.Equal(t, 0, a.closes)
}

func TestBackdropSwallowsWheel(t *testing.T) {
	m, _, doc := newTestManager(t)
	m.Open("a", 2000)

	var bodySaw bool
	doc.Body().AddEventListener(surface.EventWheel, func(ev *surface.Event) tea.Cmd {
		bodySaw = true
		return nil
	})

	ev := &surface.Event{Type: surface.EventWheel}
	m.Backdrop().Dispatch(ev)

	assert.True(t, ev.Stopped())
	assert.False(t, bodySaw)
}

func TestScenarioCloseAndReopen(t *testing.T) {
	m, sched, _ := newTestManager(t)
	m.Register("a", &stubController{escClose: true})

	m.Open("a", 2000)
	m.Open("a", 2000)
	assert.Equal(t, 1, m.Len())

	m.Close("a")
	m.Open("a", 2001)
	b := m.Backdrop()
	require.NotNil(t, b)
	assert.True(t, b.Attached())

	sched.fire(m)
	assert.True(t, b.Attached())
	assert.True(t, b.Visible)
	assert.Equal(t, 2001, b.ZIndex)
}
