// Package types contains shared types used across the application.
package types

// Mode represents what currently receives keyboard input
type Mode int

const (
	// ModeNormal routes keys to the workspace shortcuts
	ModeNormal Mode = iota
	// ModeOverlay routes keys to the topmost overlay
	ModeOverlay
	// ModeInput routes printable keys to an overlay that edits text
	ModeInput
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeOverlay:
		return "OVERLAY"
	case ModeInput:
		return "INPUT"
	default:
		return "UNKNOWN"
	}
}
