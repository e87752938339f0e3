package popup

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/popstack/internal/surface"
)

// fakeScheduler records scheduled messages instead of waiting for them
type fakeScheduler struct {
	pending []scheduled
}

type scheduled struct {
	delay time.Duration
	msg   tea.Msg
}

func (f *fakeScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	f.pending = append(f.pending, scheduled{delay: d, msg: msg})
	return func() tea.Msg { return msg }
}

// fire delivers every pending message to m in scheduling order
func (f *fakeScheduler) fire(m *Manager) {
	pending := f.pending
	f.pending = nil
	for _, s := range pending {
		m.Update(s.msg)
	}
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *fakeScheduler, *surface.Document) {
	t.Helper()
	doc := surface.NewDocument()
	sched := &fakeScheduler{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithScheduler(sched), WithLogger(logger)}, opts...)
	return New(doc, opts...), sched, doc
}

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestRegisterLookupDeregister(t *testing.T) {
	m, _, _ := newTestManager(t)
	first := &stubController{}
	second := &stubController{}

	m.Register("a", first)
	got, ok := m.Lookup("a")
	require.True(t, ok)
	assert.Same(t, first, got)

	m.Register("a", second)
	got, _ = m.Lookup("a")
	assert.Same(t, second, got, "last registration wins")

	m.Register("", first)
	m.Register("b", nil)
	_, ok = m.Lookup("")
	assert.False(t, ok)
	_, ok = m.Lookup("b")
	assert.False(t, ok)

	m.Deregister("a")
	m.Deregister("a")
	m.Deregister("")
	_, ok = m.Lookup("a")
	assert.False(t, ok)
}

func TestNextStackOrder(t *testing.T) {
	m, _, _ := newTestManager(t)

	assert.Equal(t, 2000, m.StackOrder())
	assert.Equal(t, 2000, m.NextStackOrder())
	assert.Equal(t, 2001, m.NextStackOrder())
	assert.Equal(t, 2002, m.StackOrder())

	prev := m.NextStackOrder()
	for i := 0; i < 50; i++ {
		next := m.NextStackOrder()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestStackOrderSeeding(t *testing.T) {
	t.Run("custom base", func(t *testing.T) {
		m, _, _ := newTestManager(t, WithBaseStackOrder(500))
		assert.Equal(t, 500, m.NextStackOrder())
	})

	t.Run("set before first read", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		m.SetStackOrder(3000)
		assert.Equal(t, 3000, m.NextStackOrder())
	})

	t.Run("set after first read", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		m.NextStackOrder()
		m.SetStackOrder(10)
		assert.Equal(t, 10, m.NextStackOrder())
	})

	t.Run("reset reseeds", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		m.NextStackOrder()
		m.NextStackOrder()
		m.Reset()
		assert.Equal(t, 2000, m.NextStackOrder())
	})
}

func TestOpenPreservesOrder(t *testing.T) {
	m, _, _ := newTestManager(t)
	opened := []string{"a", "b", "c", "d"}
	for _, id := range opened {
		m.Open(id, m.NextStackOrder())
	}

	assert.Equal(t, opened, ids(m.Records()))
	top, ok := m.Top()
	require.True(t, ok)
	assert.Equal(t, "d", top.ID)
	assert.Equal(t, 2003, top.StackOrder)
	assert.Equal(t, 2003, m.Backdrop().ZIndex)
}

func TestOpenRejectsInvalidInput(t *testing.T) {
	m, sched, doc := newTestManager(t)

	assert.Nil(t, m.Open("", 2000))
	assert.Nil(t, m.Open("a", 0))
	assert.Nil(t, m.Open("a", -1))

	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Backdrop())
	assert.Empty(t, sched.pending)
	assert.Nil(t, doc.Find(BackdropID))
}

func TestOpenIsIdempotent(t *testing.T) {
	m, sched, _ := newTestManager(t)
	require.NotNil(t, m.Open("a", 2000, WithDimClasses("dim")))
	before := m.Records()
	pending := len(sched.pending)

	assert.Nil(t, m.Open("a", 2000))
	assert.Nil(t, m.Open("a", 2005, WithDimClasses("other")))

	assert.Equal(t, before, m.Records())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 2000, m.Backdrop().ZIndex)
	assert.False(t, m.Backdrop().Classes.Has("other"))
	assert.Len(t, sched.pending, pending)
}

func TestOpenCreatesBackdrop(t *testing.T) {
	m, sched, doc := newTestManager(t)

	cmd := m.Open("a", 2000, WithDimClasses("  dim   heavy "))
	require.NotNil(t, cmd)

	b := m.Backdrop()
	require.NotNil(t, b)
	assert.Equal(t, doc.Body(), b.Parent())
	assert.True(t, b.Visible)
	assert.Equal(t, 0, b.TabIndex)
	assert.Equal(t, 2000, b.ZIndex)
	assert.Equal(t, []string{ClassModal, ClassEnter, "dim", "heavy"}, b.Classes.Tokens())

	require.Len(t, sched.pending, 1)
	assert.Equal(t, DefaultTransition, sched.pending[0].delay)

	sched.fire(m)
	assert.False(t, b.Classes.Has(ClassEnter))
	assert.True(t, b.Classes.Has(ClassModal))
}

func TestOpenReusesBackdropWithoutEnterClass(t *testing.T) {
	m, sched, _ := newTestManager(t)
	m.Open("a", 2000)
	sched.fire(m)
	b := m.Backdrop()

	m.Open("b", 2001)

	assert.Same(t, b, m.Backdrop())
	assert.False(t, b.Classes.Has(ClassEnter), "reused backdrop skips the entrance transition")
	assert.Equal(t, 2001, b.ZIndex)
}

func TestFadePreferenceIsShared(t *testing.T) {
	m, sched, _ := newTestManager(t)
	assert.True(t, m.FadeEnabled())

	m.Open("a", 2000, WithFade(false))
	assert.False(t, m.FadeEnabled())
	assert.False(t, m.Backdrop().Classes.Has(ClassEnter))

	// later opens without a preference keep the last one
	m.Open("b", 2001)
	assert.False(t, m.FadeEnabled())

	m.Close("b")
	m.Close("a")
	assert.False(t, m.Backdrop().Classes.Has(ClassLeave))
	sched.fire(m)
	assert.Nil(t, m.Backdrop())

	m.Open("c", 2002, WithFade(true))
	assert.True(t, m.Backdrop().Classes.Has(ClassEnter))
}

func TestFadeDefaultOption(t *testing.T) {
	m, _, _ := newTestManager(t, WithFadeDefault(false))
	m.Open("a", 2000)
	assert.False(t, m.Backdrop().Classes.Has(ClassEnter))
}

func TestOpenAttachesNextToContainer(t *testing.T) {
	t.Run("container parent", func(t *testing.T) {
		m, _, doc := newTestManager(t)
		panel := surface.NewElement("panel")
		dialog := surface.NewElement("dialog")
		doc.Body().AppendChild(panel)
		panel.AppendChild(dialog)

		m.Open("a", 2000, InContainer(dialog))
		assert.Equal(t, panel, m.Backdrop().Parent())
	})

	t.Run("detached container", func(t *testing.T) {
		m, _, doc := newTestManager(t)
		m.Open("a", 2000, InContainer(surface.NewElement("loose")))
		assert.Equal(t, doc.Body(), m.Backdrop().Parent())
	})

	t.Run("fragment parent", func(t *testing.T) {
		m, _, doc := newTestManager(t)
		frag := surface.NewFragment()
		dialog := surface.NewElement("dialog")
		frag.AppendChild(dialog)

		m.Open("a", 2000, InContainer(dialog))
		assert.Equal(t, doc.Body(), m.Backdrop().Parent())
	})
}

func TestCloseTopRestoresPreviousOrder(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("a", 2000, WithDimClasses("dim-a"))
	m.Open("b", 2002, WithDimClasses("dim-b extra"))

	assert.Nil(t, m.Close("b"))

	b := m.Backdrop()
	assert.Equal(t, []string{"a"}, ids(m.Records()))
	assert.Equal(t, 2000, b.ZIndex)
	assert.False(t, b.Classes.Has("dim-b"))
	assert.False(t, b.Classes.Has("extra"))
	assert.True(t, b.Classes.Has("dim-a"))
}

func TestCloseOutOfOrderLeavesBackdropAlone(t *testing.T) {
	// Closing a record below the top does not restyle the backdrop, so its
	// dim classes linger until a top-of-stack close removes the same token.
	m, _, _ := newTestManager(t)
	m.Open("a", 2000, WithDimClasses("dim-a"))
	m.Open("b", 2001, WithDimClasses("dim-b"))
	m.Open("c", 2002)
	before := m.Backdrop().Classes.Tokens()

	assert.Nil(t, m.Close("a"))

	assert.Equal(t, []string{"b", "c"}, ids(m.Records()))
	assert.Equal(t, before, m.Backdrop().Classes.Tokens())
	assert.True(t, m.Backdrop().Classes.Has("dim-a"))
	assert.Equal(t, 2002, m.Backdrop().ZIndex)
}

func TestCloseAbsentIDIsNoop(t *testing.T) {
	m, sched, _ := newTestManager(t)
	m.Open("a", 2000)
	m.Open("b", 2001)
	before := m.Records()
	classes := m.Backdrop().Classes.Tokens()
	pending := len(sched.pending)

	assert.Nil(t, m.Close("missing"))
	assert.Nil(t, m.Close(""))

	assert.Equal(t, before, m.Records())
	assert.Equal(t, classes, m.Backdrop().Classes.Tokens())
	assert.Len(t, sched.pending, pending)
}

func TestCloseWithoutBackdropIsNoop(t *testing.T) {
	m, sched, _ := newTestManager(t)
	assert.Nil(t, m.Close("a"))
	assert.Nil(t, m.Backdrop())
	assert.Empty(t, sched.pending)
}

func TestBackdropTeardownAfterDelay(t *testing.T) {
	m, sched, doc := newTestManager(t)
	m.Open("a", 2000)
	sched.fire(m)
	b := m.Backdrop()

	cmd := m.Close("a")
	require.NotNil(t, cmd)
	assert.Equal(t, 0, m.Len())

	// still attached until the delay elapses
	assert.True(t, b.Attached())
	assert.True(t, b.Visible)
	assert.True(t, b.Classes.Has(ClassLeave))

	require.Len(t, sched.pending, 1)
	assert.Equal(t, DefaultTransition, sched.pending[0].delay)
	sched.fire(m)

	assert.False(t, b.Attached())
	assert.False(t, b.Visible)
	assert.False(t, b.Classes.Has(ClassLeave))
	assert.Nil(t, m.Backdrop())
	assert.Nil(t, doc.Find(BackdropID))
}

func TestReopenBeforeTeardownKeepsBackdrop(t *testing.T) {
	m, sched, _ := newTestManager(t)
	m.Open("a", 2000)
	b := m.Backdrop()
	m.Close("a")

	m.Open("a", 2001)
	sched.fire(m)

	assert.Same(t, b, m.Backdrop())
	assert.True(t, b.Attached())
	assert.True(t, b.Visible)
	assert.Equal(t, 2001, b.ZIndex)
	assert.False(t, b.Classes.Has(ClassLeave), "leave class is removed even though the stack refilled")
	assert.False(t, b.Classes.Has(ClassEnter))
	assert.Equal(t, []string{"a"}, ids(m.Records()))
}

func TestStaleTimersIgnoreNewBackdrop(t *testing.T) {
	m, sched, _ := newTestManager(t)
	m.Open("a", 2000)
	m.Close("a")
	stale := sched.pending
	sched.pending = nil

	// deliver the first teardown, then open a fresh backdrop
	for _, s := range stale {
		if _, ok := s.msg.(leaveElapsedMsg); ok {
			m.Update(s.msg)
		}
	}
	require.Nil(t, m.Backdrop())

	m.Open("b", 2001)
	fresh := m.Backdrop()
	require.NotNil(t, fresh)
	m.Close("b")

	// the old entrance timer and the new one both arrive late
	for _, s := range stale {
		m.Update(s.msg)
	}
	assert.Same(t, fresh, m.Backdrop(), "stale teardown must not drop the new backdrop")
	assert.True(t, fresh.Attached())
	assert.True(t, fresh.Classes.Has(ClassEnter))

	sched.fire(m)
	assert.Nil(t, m.Backdrop())
}

func TestUpdateIgnoresUnrelatedMessages(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("a", 2000)

	assert.Nil(t, m.Update(tea.WindowSizeMsg{Width: 10, Height: 10}))
	assert.Equal(t, 1, m.Len())
}

func TestReset(t *testing.T) {
	m, _, doc := newTestManager(t)
	m.Register("a", &stubController{})
	m.Open("a", m.NextStackOrder())

	m.Reset()

	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Backdrop())
	assert.Nil(t, doc.Find(BackdropID))
	_, ok := m.Lookup("a")
	assert.False(t, ok)
}
