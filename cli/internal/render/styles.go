// ABOUTME: Shared lipgloss styles for consistent terminal output
// ABOUTME: Defines colors and text styles used by every CLI report

package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Info      = lipgloss.Color("#3B82F6") // Blue
	Surface   = lipgloss.Color("#374151") // Dark gray

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	Section = lipgloss.NewStyle().
		Bold(true).
		MarginTop(1)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	HeaderCell = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	Cell = lipgloss.NewStyle().Padding(0, 1)
)

// StateStyle colors a resource state: occupied red, reserved amber,
// available green.
func StateStyle(state models.StatusState) lipgloss.Style {
	switch state {
	case models.StatusOccupied:
		return StatusCritical
	case models.StatusReserved:
		return StatusWarning
	default:
		return StatusOK
	}
}

// WaveStyle colors a wave status.
func WaveStyle(status string) lipgloss.Style {
	switch status {
	case models.WaveInProgress:
		return StatusWarning
	case models.WaveCompleted:
		return StatusOK
	case models.WaveScheduled:
		return lipgloss.NewStyle().Foreground(Info)
	default:
		return Subtitle
	}
}
