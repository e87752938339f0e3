package popup

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler turns a delayed message into a command. Scheduled messages
// cannot be cancelled.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TickScheduler schedules messages with tea.Tick
type TickScheduler struct{}

// After delivers msg once d has elapsed
func (TickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// enterElapsedMsg ends the entrance transition of backdrop generation gen
type enterElapsedMsg struct {
	generation uint64
}

// leaveElapsedMsg ends the exit transition of backdrop generation gen
type leaveElapsedMsg struct {
	generation uint64
}
