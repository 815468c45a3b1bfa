package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petgallery/internal/logtail"
)

// logState holds the activity log overlay state.
type logState struct {
	lines  []string
	follow bool
	err    error

	searchActive   bool
	searchQuery    string
	searchRegex    *regexp.Regexp
	searchInput    textinput.Model
	searchMatches  []int
	searchMatchIdx int
}

type logEntriesMsg struct {
	entries []logtail.Entry
	err     error
}

type logTickMsg time.Time

func newLogState() logState {
	ti := textinput.New()
	ti.Placeholder = "Search log..."
	ti.CharLimit = 100
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return logState{follow: true, searchInput: ti}
}

func readLogCmd(path string) tea.Cmd {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Read(path, LogTailLines)
		return logEntriesMsg{entries: entries, err: err}
	}
}

func logTickCmd() tea.Cmd {
	return tea.Tick(logRefreshInterval, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

// openLog shows the overlay and starts its refresh loop.
func (m *Model) openLog() tea.Cmd {
	m.showLog = true
	m.logState.follow = true
	m.resizeLogViewport()
	return tea.Batch(readLogCmd(m.logPath), logTickCmd())
}

func (m *Model) closeLog() {
	m.showLog = false
	m.clearLogSearch()
	m.logState.searchActive = false
	m.logState.searchInput.Blur()
}

func (m *Model) handleLogEntries(msg logEntriesMsg) {
	m.logState.err = msg.err
	if msg.err != nil {
		return
	}
	lines := make([]string, 0, len(msg.entries))
	for _, e := range msg.entries {
		lines = append(lines, strings.Split(e.Format(), "\n")...)
	}
	m.logState.lines = lines
	m.findSearchMatches()
	m.refreshLogViewport()
}

func (m *Model) resizeLogViewport() {
	w := max(m.width-4, 10)
	h := max(m.height-5, 3)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(w, h)
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
	m.refreshLogViewport()
}

func (m *Model) refreshLogViewport() {
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	width := m.logViewport.Width

	if m.logState.err != nil {
		return bg.FillLine(bg.Render("Cannot read log: "+m.logState.err.Error(), styles.DangerText), width)
	}
	if len(m.logState.lines) == 0 {
		return bg.FillLine(bg.Render("No activity yet", styles.MutedText), width)
	}

	matches := make(map[int]bool, len(m.logState.searchMatches))
	for _, idx := range m.logState.searchMatches {
		matches[idx] = true
	}
	active := -1
	if m.logState.searchMatchIdx < len(m.logState.searchMatches) {
		active = m.logState.searchMatches[m.logState.searchMatchIdx]
	}

	out := make([]string, 0, len(m.logState.lines))
	for i, line := range m.logState.lines {
		gutter := fmt.Sprintf("%4d │ ", i+1)
		var content string
		switch {
		case i == active:
			hl := lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.Warning)).
				Foreground(lipgloss.Color(m.theme.Background))
			content = hl.Render(gutter + line)
		case matches[i]:
			content = bg.Render(gutter, styles.AccentText) + bg.Render(line, styles.AccentText)
		default:
			content = bg.Render(gutter, styles.FaintText) + colorizeLogLine(line, styles, bg)
		}
		out = append(out, bg.FillLine(content, width))
	}
	return strings.Join(out, "\n")
}

var (
	timestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`)
	levelRe     = regexp.MustCompile(`\b(DEBUG|INFO|WARN|ERROR|DPANIC|PANIC|FATAL)\b`)
	separatorRe = regexp.MustCompile(`\s*–\s*`)
)

// colorizeLogLine styles a line produced by logtail.Entry.Format.
func colorizeLogLine(line string, styles Styles, bg BgStyle) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	if detail, ok := strings.CutPrefix(line, "    - "); ok {
		k, v, found := strings.Cut(detail, ": ")
		if !found {
			return bg.Spaces(4) + bg.Render(detail, styles.Text)
		}
		return bg.Spaces(4) + bg.Render(k+":", styles.MutedText) + bg.Space() + bg.Render(v, styles.Text)
	}

	var b strings.Builder
	remaining := line
	if loc := timestampRe.FindStringSubmatchIndex(remaining); loc != nil {
		b.WriteString(bg.Render(remaining[loc[2]:loc[3]], styles.FaintText))
		remaining = remaining[loc[3]:]
	}
	if loc := levelRe.FindStringSubmatchIndex(remaining); loc != nil && loc[0] <= 1 {
		level := remaining[loc[2]:loc[3]]
		if b.Len() > 0 {
			b.WriteString(bg.Space())
		}
		b.WriteString(bg.Render(level, levelStyle(level, styles).Bold(true)))
		remaining = remaining[loc[3]:]
	}
	if parts := separatorRe.Split(remaining, 2); len(parts) == 2 && b.Len() > 0 {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render("–", styles.FaintText))
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(strings.TrimSpace(parts[1]), styles.Text))
	} else {
		b.WriteString(bg.Render(strings.TrimSpace(remaining), styles.Text))
	}
	return b.String()
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.Text
	}
}

func (m Model) renderLogOverlay() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	title := "Activity Log"
	if m.logPath != "" {
		title += " · " + truncateMiddle(m.logPath, max(m.width-30, 10))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(m.width - 2).
		Render(m.logViewport.View())

	header := styles.Header.Width(m.width).Render(bg.Render(title, styles.AccentText.Bold(true)))
	return header + "\n" + box + "\n" + m.renderLogStatus(styles, bg)
}

func (m Model) renderLogStatus(styles Styles, bg BgStyle) string {
	if m.logState.searchActive {
		return styles.Header.Width(m.width).Render(bg.Render("/", styles.AccentText) + m.logState.searchInput.View())
	}
	if m.logState.searchRegex != nil {
		if len(m.logState.searchMatches) == 0 {
			return styles.Header.Width(m.width).Render(bg.Render("Pattern not found: "+m.logState.searchQuery, styles.DangerText))
		}
		return styles.Header.Width(m.width).Render(
			bg.Render("/"+m.logState.searchQuery, styles.AccentText) +
				bg.Render(fmt.Sprintf(" %d/%d", m.logState.searchMatchIdx+1, len(m.logState.searchMatches)), styles.WarningText) +
				bg.Render("  n/N next/prev  esc clear", styles.FaintText))
	}
	follow := ternary(m.logState.follow, "following", "paused")
	return styles.Header.Width(m.width).Render(
		bg.Render(fmt.Sprintf("%d lines", len(m.logState.lines)), styles.MutedText) + bg.Spaces(2) +
			bg.Render(follow, styles.InfoText) + bg.Spaces(2) +
			bg.Render("Space follow  / search  r reload  esc close", styles.FaintText))
}

func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logState.searchActive {
		return m.handleLogSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.logState.searchRegex != nil {
			m.clearLogSearch()
			m.refreshLogViewport()
			return m, nil
		}
		m.closeLog()
		return m, nil
	case key.Matches(msg, m.keys.ActivityLog):
		m.closeLog()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, readLogCmd(m.logPath)
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.logState.searchActive = true
		m.logState.searchInput.SetValue("")
		cmd := m.logState.searchInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextMatch):
		m.stepSearchMatch(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevMatch):
		m.stepSearchMatch(-1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = false
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false
		return m, nil
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
		m.logState.follow = false
		return m, nil
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
		m.logState.follow = false
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleLogSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		query := m.logState.searchInput.Value()
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		if query == "" {
			return m, nil
		}
		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
		}
		m.logState.searchRegex = re
		m.logState.searchQuery = query
		m.findSearchMatches()
		m.logState.searchMatchIdx = 0
		m.scrollToSearchMatch()
		m.refreshLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		m.logState.searchInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.logState.searchInput, cmd = m.logState.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) clearLogSearch() {
	m.logState.searchRegex = nil
	m.logState.searchQuery = ""
	m.logState.searchMatches = nil
	m.logState.searchMatchIdx = 0
}

func (m *Model) findSearchMatches() {
	m.logState.searchMatches = nil
	if m.logState.searchRegex == nil {
		return
	}
	for i, line := range m.logState.lines {
		if m.logState.searchRegex.MatchString(line) {
			m.logState.searchMatches = append(m.logState.searchMatches, i)
		}
	}
	if m.logState.searchMatchIdx >= len(m.logState.searchMatches) {
		m.logState.searchMatchIdx = 0
	}
}

func (m *Model) stepSearchMatch(delta int) {
	n := len(m.logState.searchMatches)
	if n == 0 {
		return
	}
	m.logState.searchMatchIdx = (m.logState.searchMatchIdx + delta + n) % n
	m.scrollToSearchMatch()
	m.refreshLogViewport()
}

func (m *Model) scrollToSearchMatch() {
	if len(m.logState.searchMatches) == 0 {
		return
	}
	target := m.logState.searchMatches[m.logState.searchMatchIdx]
	m.logState.follow = false
	m.logViewport.SetYOffset(max(target-m.logViewport.Height/2, 0))
}
