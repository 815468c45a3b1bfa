package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petgallery/internal/petstore"
	"github.com/five82/petgallery/internal/thumb"
)

// PlaceholderImage replaces a missing or broken pet image.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=No+Image"

// cardState is the local state of one card. It lives as long as the pet stays
// in the list.
type cardState struct {
	expanded bool
	// imageError is set once the pet's own image failed and never cleared.
	imageError bool
}

// ImageSource returns the image a card displays: the pet's image unless it is
// empty or has already failed, in which case the placeholder.
func ImageSource(p petstore.Pet, imageError bool) string {
	src := strings.TrimSpace(p.Image)
	if imageError || src == "" {
		return PlaceholderImage
	}
	return src
}

type thumbStatus int

const (
	thumbLoading thumbStatus = iota + 1
	thumbReady
	thumbFailed
)

// thumbEntry is the load state of one image URL.
type thumbEntry struct {
	status thumbStatus
	thumb  thumb.Thumbnail
}

// cardView is everything renderCard needs.
type cardView struct {
	pet      petstore.Pet
	state    cardState
	selected bool
	compact  bool
	// images is false when thumbnails are disabled.
	images bool
	// image is the load state of ImageSource(pet, state.imageError), nil
	// before a load was requested.
	image *thumbEntry
}

// renderCard draws a pet card. It reads nothing beyond cv.
func renderCard(theme Theme, cv cardView) string {
	bgColor := ternary(cv.selected, theme.FocusBg, theme.Surface)
	styles := theme.Styles().WithBackground(bgColor)
	inner := CardWidth - 4

	var lines []string
	if !cv.compact {
		lines = append(lines, renderCardImage(theme, cv, inner), "")
	}

	lines = append(lines,
		styles.Text.Bold(true).Render(truncate(cardTitle(cv.pet), inner)),
		styles.MutedText.Render(truncate(cv.pet.Subtitle(), inner)),
	)
	if !cv.compact {
		lines = append(lines, styles.Text.Render(truncate("Gender: "+cv.pet.Gender, inner)))
	}
	lines = append(lines, styles.SuccessText.Render("Price: "+cv.pet.PriceLabel()))

	if cv.state.expanded {
		desc := wrapText(cv.pet.Description, inner)
		if len(desc) == 0 {
			desc = []string{"No description."}
		}
		lines = append(lines, "")
		for _, l := range desc {
			lines = append(lines, styles.Text.Render(l))
		}
	}

	lines = append(lines, "", renderCardActions(styles, cv))

	border := ternary(cv.selected, theme.BorderFocus, theme.Border)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(bgColor)).
		Background(lipgloss.Color(bgColor)).
		Padding(0, 1).
		Width(CardWidth - 2).
		Render(strings.Join(lines, "\n"))
}

func cardTitle(p petstore.Pet) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return "Unnamed"
}

func renderCardActions(styles Styles, cv cardView) string {
	toggle := ternary(cv.state.expanded, "Show Less", "Show More")
	keyStyle := styles.FaintText
	if cv.selected {
		keyStyle = styles.AccentText
	}
	return keyStyle.Render("enter") + styles.MutedText.Render(" "+toggle+"  ") +
		keyStyle.Render("e") + styles.MutedText.Render(" Edit  ") +
		keyStyle.Render("d") + styles.MutedText.Render(" Delete")
}

// renderCardImage fills the image slot: the thumbnail when loaded, otherwise
// a framed stand-in naming the source.
func renderCardImage(theme Theme, cv cardView, width int) string {
	src := ImageSource(cv.pet, cv.state.imageError)
	if cv.images && cv.image != nil && cv.image.status == thumbReady && !cv.image.thumb.Empty() {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, cv.image.thumb.View(),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(ternary(cv.selected, theme.FocusBg, theme.Surface))))
	}

	var label string
	switch {
	case src == PlaceholderImage:
		label = "No Image"
	case cv.images && cv.image != nil && cv.image.status == thumbLoading:
		label = "Loading image…"
	default:
		label = truncateMiddle(src, width-4)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.BorderMuted)).
		Foreground(lipgloss.Color(theme.Muted)).
		Width(width-2).
		Height(CardImageHeight-2).
		Align(lipgloss.Center, lipgloss.Center)
	return box.Render(label)
}
