package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petgallery/internal/gallery"
	"github.com/five82/petgallery/internal/notify"
	"github.com/five82/petgallery/internal/petstore"
)

// EmptyMessage is shown when the store has no pets.
const EmptyMessage = "No pets found. Add some pets!"

// renderMain renders header, command bar, notifications and the gallery.
func (m Model) renderMain() string {
	top := []string{m.renderHeader(), m.renderCommandBar()}
	if notes := m.renderNotifications(); notes != "" {
		top = append(top, notes)
	}
	head := strings.Join(top, "\n")
	avail := max(m.height-lipgloss.Height(head), 1)
	return head + "\n" + m.renderContent(avail)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("petgallery", styles.Logo)}
	switch m.ctrl.Phase() {
	case gallery.PhaseLoading:
		parts = append(parts, bg.Render("Loading...", styles.WarningText.Bold(true)))
	case gallery.PhaseError:
		parts = append(parts, bg.Render("Offline", styles.DangerText))
	case gallery.PhaseReady:
		count := len(m.ctrl.Pets())
		parts = append(parts, bg.Render(fmt.Sprintf("%d %s", count, ternary(count == 1, "pet", "pets")), styles.SuccessText))
	}
	if m.apiURL != "" {
		parts = append(parts, bg.Render("api", styles.FaintText)+bg.Space()+
			bg.Render(truncateMiddle(m.apiURL, 50), styles.MutedText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"a", "Add"},
		{"e", "Edit"},
		{"d", "Delete"},
		{"enter", "More"},
		{"r", "Reload"},
		{"c", ternary(m.compact, "Full", "Compact")},
		{"L", "Log"},
	}
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		commands = append(commands, cmd{h.Key, h.Desc})
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderNotifications stacks the visible notifications, oldest first.
func (m Model) renderNotifications() string {
	items := m.ctrl.Notifications().Items()
	if len(items) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(items))
	for _, n := range items {
		lines = append(lines,
			styles.NotifyStyle(n.Kind).Render(notifyLabel(n.Kind))+" "+
				styles.Text.Render(truncate(n.Message, max(m.width-12, 10))))
	}
	return strings.Join(lines, "\n")
}

func notifyLabel(kind notify.Kind) string {
	switch kind {
	case notify.KindAdd:
		return "ADDED"
	case notify.KindEdit:
		return "UPDATED"
	case notify.KindDelete:
		return "REMOVED"
	default:
		return strings.ToUpper(string(kind))
	}
}

func (m Model) renderContent(height int) string {
	styles := m.theme.Styles()
	center := func(s string) string {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, s)
	}

	switch m.ctrl.Phase() {
	case gallery.PhaseIdle, gallery.PhaseLoading:
		return center(styles.WarningText.Render("Loading..."))
	case gallery.PhaseError:
		return center(styles.DangerText.Render(m.ctrl.Error()) + "\n\n" +
			styles.MutedText.Render("press r to reload"))
	}

	pets := m.ctrl.Pets()
	if len(pets) == 0 {
		return center(styles.MutedText.Render(EmptyMessage) + "\n\n" +
			styles.FaintText.Render("press a to add a pet"))
	}
	return m.renderGrid(height)
}

// columns is how many cards fit side by side.
func (m Model) columns() int {
	return max(1, (m.width+cardGap)/(CardWidth+cardGap))
}

// renderGrid lays cards out in rows and scrolls so the selected row is
// visible.
func (m Model) renderGrid(height int) string {
	pets := m.ctrl.Pets()
	cols := m.columns()
	selected := clampIndex(m.selected, len(pets))

	var rows []string
	for start := 0; start < len(pets); start += cols {
		end := min(start+cols, len(pets))
		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			cells = append(cells, renderCard(m.theme, m.cardView(pets[i], selected == i)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	selRow := selected / cols
	first := selRow
	used := lipgloss.Height(rows[selRow])
	for first > 0 && used+lipgloss.Height(rows[first-1]) <= height {
		first--
		used += lipgloss.Height(rows[first])
	}

	var lines []string
	for _, row := range rows[first:] {
		lines = append(lines, strings.Split(row, "\n")...)
		if len(lines) >= height {
			break
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) cardView(p petstore.Pet, selected bool) cardView {
	var st cardState
	if p.HasID() {
		if s, ok := m.cards[p.IDValue()]; ok {
			st = *s
		}
	}
	if !st.imageError && m.sourceFailed(ImageSource(p, false)) {
		st.imageError = true
	}
	cv := cardView{
		pet:      p,
		state:    st,
		selected: selected,
		compact:  m.compact,
		images:   m.images,
	}
	if e, ok := m.thumbs[ImageSource(p, st.imageError)]; ok {
		cv.image = e
	}
	return cv
}
