package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/petgallery/internal/petstore"
)

// deleteConfirm asks before a pet is removed.
type deleteConfirm struct {
	pet petstore.Pet
}

func (d deleteConfirm) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, modalAction) {
	switch {
	case key.Matches(msg, keys.Yes), key.Matches(msg, keys.Confirm):
		return d, nil, modalSubmit
	case key.Matches(msg, keys.No), key.Matches(msg, keys.Escape):
		return d, nil, modalCancel
	}
	return d, nil, modalNone
}

func (d deleteConfirm) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete " + cardTitle(d.pet) + "?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("This removes the pet from the gallery."))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y"))
	b.WriteString(styles.MutedText.Render(" Delete   "))
	b.WriteString(styles.AccentText.Render("n"))
	b.WriteString(styles.MutedText.Render(" Cancel"))

	return placeModal(theme, b.String(), 40, width, height)
}
