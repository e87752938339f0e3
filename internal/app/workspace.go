package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popstack/internal/config"
	"github.com/riordanpawley/popstack/internal/popup"
	"github.com/riordanpawley/popstack/internal/surface"
	"github.com/riordanpawley/popstack/internal/ui/overlay"
)

const (
	settingFade  = "fade"
	settingMouse = "mouse"
	settingDim   = "dim"
	settingSave  = "save"

	maxActivity = 200
)

// workspaceState is shared with the workspace node's listeners, which
// outlive any single copy of Model
type workspaceState struct {
	activity []string
	// scroll counts lines scrolled back from the newest entry
	scroll int
	note   string

	pointerX, pointerY int
	pointerSet         bool
}

func (s *workspaceState) record(line string) {
	s.activity = append(s.activity, line)
	if over := len(s.activity) - maxActivity; over > 0 {
		s.activity = s.activity[over:]
	}
	s.scroll = 0
}

func (s *workspaceState) clear() {
	s.activity = nil
	s.scroll = 0
}

// onWheel scrolls the activity log. It only runs when no backdrop covers
// the workspace.
func (s *workspaceState) onWheel(ev *surface.Event) tea.Cmd {
	mouse, ok := ev.Msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		s.scroll = min(s.scroll+1, max(0, len(s.activity)-1))
	case tea.MouseButtonWheelDown:
		s.scroll = max(s.scroll-1, 0)
	}
	return nil
}

// dismissBinding builds the dismiss key binding from configured key names
func dismissBinding(keys []string) key.Binding {
	if len(keys) == 0 {
		keys = []string{"esc"}
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), "dismiss the top overlay"),
	)
}

func (m Model) helpCategories() []overlay.KeyCategory {
	return []overlay.KeyCategory{
		{
			Name:     "Open",
			Bindings: []key.Binding{m.keys.Dialog, m.keys.Confirm, m.keys.Drawer, m.keys.Popover},
		},
		{
			Name:     "Overlays",
			Bindings: []key.Binding{m.popups.DismissKey()},
		},
		{
			Name:     "Other",
			Bindings: []key.Binding{m.keys.Settings, m.keys.Help, m.keys.Redraw, m.keys.Quit},
		},
	}
}

func (m Model) settingsOverlay() *overlay.SettingsOverlay {
	dim := m.dimClass
	if dim == "" {
		dim = popup.ClassModal
	}
	return overlay.NewSettingsOverlay([]overlay.SettingItem{
		{Key: settingFade, Label: "Fade backdrop", Type: overlay.SettingToggle, Value: m.fade},
		{Key: settingMouse, Label: "Mouse input", Type: overlay.SettingToggle, Value: m.mouse},
		{
			Key:     settingDim,
			Label:   "Backdrop dim",
			Type:    overlay.SettingChoice,
			Value:   dim,
			Choices: []string{popup.ClassModal, "v-modal-strong", "v-modal-danger", "v-modal-clear"},
		},
		{Label: strings.Repeat("─", 24), Type: overlay.SettingSeparator},
		{Key: settingSave, Label: "Save to " + m.configPath, Type: overlay.SettingAction},
	})
}

type configSavedMsg struct {
	path string
	err  error
}

// saveConfigCmd writes the current preferences to the config file
func (m Model) saveConfigCmd() tea.Cmd {
	cfg := *m.config
	cfg.Popup.Fade = m.fade
	cfg.Mouse = m.mouse
	path := m.configPath
	return func() tea.Msg {
		return configSavedMsg{path: path, err: config.SaveConfig(&cfg, path)}
	}
}

// renderWorkspace draws the layer every overlay stacks above
func (m Model) renderWorkspace(width, height int) string {
	var b strings.Builder
	b.WriteString(m.styles.WorkspaceTitle.Render("popstack"))
	b.WriteString("\n")

	for _, k := range []key.Binding{m.keys.Dialog, m.keys.Confirm, m.keys.Drawer, m.keys.Popover, m.keys.Settings, m.keys.Help} {
		help := k.Help()
		b.WriteString(m.styles.WorkspaceKey.Render(fmt.Sprintf("%-3s", help.Key)))
		b.WriteString(m.styles.WorkspaceText.Render(help.Desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.WorkspaceTitle.Render("Activity"))
	b.WriteString("\n")

	header := lipgloss.Height(b.String())
	// two rows of workspace padding
	room := max(0, height-header-2)
	b.WriteString(m.styles.WorkspaceText.Render(strings.Join(m.activityWindow(room), "\n")))

	return m.styles.Workspace.Width(width).Height(height).MaxHeight(height).Render(b.String())
}

// activityWindow returns at most n activity lines ending scroll lines before
// the newest
func (m Model) activityWindow(n int) []string {
	if n <= 0 {
		return nil
	}
	if len(m.state.activity) == 0 {
		return []string{"(nothing yet)"}
	}
	end := len(m.state.activity) - m.state.scroll
	start := max(0, end-n)
	return m.state.activity[start:end]
}
