package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// modalAction tells the model what a dialog wants after a key press.
type modalAction int

const (
	modalNone modalAction = iota
	modalSubmit
	modalCancel
)

// Modal is the interface for dialogs drawn over the gallery.
type Modal interface {
	Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, modalAction)
	View(theme Theme, width, height int) string
}

// placeModal centers a framed dialog on the screen.
func placeModal(theme Theme, content string, boxWidth, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		BorderBackground(lipgloss.Color(theme.SurfaceAlt)).
		Background(lipgloss.Color(theme.SurfaceAlt)).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(theme.Background)),
	)
}
