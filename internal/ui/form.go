package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petgallery/internal/gallery"
)

// petForm is the add and edit dialog. Every keystroke is written through to
// the controller: the add draft or the edit copy.
type petForm struct {
	ctrl   *gallery.Controller
	mode   gallery.Modal
	inputs []textinput.Model
	focus  int
}

func newPetForm(ctrl *gallery.Controller, mode gallery.Modal) *petForm {
	seed := ctrl.Draft()
	if mode == gallery.ModalEdit {
		seed, _ = ctrl.Editing()
	}

	inputs := make([]textinput.Model, len(gallery.Fields))
	for i, f := range gallery.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		_ = ti.Cursor.SetMode(cursor.CursorStatic)
		ti.CharLimit = 500
		ti.Width = formWidth - 20
		ti.Placeholder = placeholderFor(f)
		ti.SetValue(gallery.FieldValue(seed, f))
		inputs[i] = ti
	}
	inputs[0].Focus()

	return &petForm{ctrl: ctrl, mode: mode, inputs: inputs}
}

func placeholderFor(f gallery.Field) string {
	switch f {
	case gallery.FieldImage:
		return "https://..."
	case gallery.FieldPrice:
		return "0.00"
	case gallery.FieldGender:
		return "Male / Female"
	default:
		return ""
	}
}

func (f *petForm) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, modalAction) {
	switch {
	case key.Matches(msg, keys.Escape):
		return f, nil, modalCancel
	case key.Matches(msg, keys.Submit):
		return f, nil, f.submitAction()
	case key.Matches(msg, keys.Confirm):
		if f.focus == len(f.inputs)-1 {
			return f, nil, f.submitAction()
		}
		return f, f.setFocus(f.focus + 1), modalNone
	case key.Matches(msg, keys.NextField):
		return f, f.setFocus((f.focus + 1) % len(f.inputs)), modalNone
	case key.Matches(msg, keys.PrevField):
		return f, f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs)), modalNone
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.write(f.focus)
	return f, cmd, modalNone
}

func (f *petForm) submitAction() modalAction {
	if f.mode == gallery.ModalAdd && !f.ctrl.CanSubmitAdd() {
		return modalNone
	}
	return modalSubmit
}

func (f *petForm) setFocus(idx int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = idx
	return f.inputs[f.focus].Focus()
}

func (f *petForm) write(idx int) {
	field := gallery.Fields[idx]
	value := f.inputs[idx].Value()
	if f.mode == gallery.ModalEdit {
		f.ctrl.SetEditField(field, value)
		return
	}
	f.ctrl.SetDraftField(field, value)
}

// canSubmit mirrors the enabled state of the dialog's button.
func (f *petForm) canSubmit() bool {
	return f.submitAction() == modalSubmit
}

func (f *petForm) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	bg := NewBgStyle(theme.SurfaceAlt)

	title := "Add a New Pet"
	button := "Add Pet"
	if f.mode == gallery.ModalEdit {
		title = "Edit Pet"
		button = "Save Changes"
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")

	for i, field := range gallery.Fields {
		label := field.Label()
		if f.mode == gallery.ModalAdd && field.Required() {
			label += "*"
		}
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText
		}
		b.WriteString(bg.Render(padRight(label, 14), labelStyle))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	btn := lipgloss.NewStyle().Padding(0, 2)
	if f.canSubmit() {
		btn = btn.Background(lipgloss.Color(theme.Accent)).Foreground(lipgloss.Color(theme.Background)).Bold(true)
	} else {
		btn = btn.Background(lipgloss.Color(theme.Faint)).Foreground(lipgloss.Color(theme.Muted))
	}
	b.WriteString(btn.Render(button))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("tab next field · enter/ctrl+s save · esc cancel"))

	return placeModal(theme, b.String(), formWidth, width, height)
}
