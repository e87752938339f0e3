package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the UI styles
type Styles struct {
	// Workspace
	Workspace      lipgloss.Style
	WorkspaceTitle lipgloss.Style
	WorkspaceText  lipgloss.Style
	WorkspaceKey   lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	// dim maps backdrop class tokens to their styles
	dim map[string]lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	s := &Styles{
		Workspace: lipgloss.NewStyle().
			Padding(1, 2),

		WorkspaceTitle: lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true).
			MarginBottom(1),

		WorkspaceText: lipgloss.NewStyle().
			Foreground(Text),

		WorkspaceKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		ToastInfo:    toast(Blue),
		ToastSuccess: toast(Green),
		ToastWarning: toast(Yellow),
		ToastError:   toast(Red),

		dim: make(map[string]lipgloss.Style),
	}

	for token, color := range DimColors {
		s.dim[token] = lipgloss.NewStyle().Foreground(color)
	}
	s.dim["v-modal"] = s.dim["v-modal"].Faint(true)
	s.dim["v-modal-clear"] = s.dim["v-modal-clear"].Faint(false)

	return s
}

func toast(accent lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(accent).
		Background(Mantle).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
}

// SetDimColor registers or replaces the style for a backdrop class token
func (s *Styles) SetDimColor(token string, color lipgloss.Color) {
	if token == "" {
		return
	}
	st, ok := s.dim[token]
	if !ok {
		st = lipgloss.NewStyle()
	}
	s.dim[token] = st.Foreground(color)
}

// Backdrop resolves the style a backdrop with the given class tokens paints
// underlying content with. Unknown tokens are ignored; later tokens win.
func (s *Styles) Backdrop(classes []string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, token := range classes {
		st, ok := s.dim[token]
		if !ok {
			continue
		}
		style = st.Inherit(style)
	}
	return style
}
