package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pluribus-dev/pluribus/internal/domain"
)

// Colors defines the color palette for the watch view.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color

	Pending    lipgloss.Color
	InProgress lipgloss.Color
	Blocked    lipgloss.Color
	Completed  lipgloss.Color
	Failed     lipgloss.Color
	Unknown    lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray

	Pending:    lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Blocked:    lipgloss.Color("#E17055"), // Orange
	Completed:  lipgloss.Color("#00B894"), // Green
	Failed:     lipgloss.Color("#D63031"), // Red
	Unknown:    lipgloss.Color("#636E72"), // Gray
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1)
)

// StatusColor returns the palette color for a plurb status.
func StatusColor(s domain.Status) lipgloss.Color {
	switch s {
	case domain.StatusPending:
		return Colors.Pending
	case domain.StatusInProgress:
		return Colors.InProgress
	case domain.StatusBlocked:
		return Colors.Blocked
	case domain.StatusCompleted:
		return Colors.Completed
	case domain.StatusFailed:
		return Colors.Failed
	default:
		return Colors.Unknown
	}
}
