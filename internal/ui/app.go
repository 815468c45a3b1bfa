package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/petgallery/internal/gallery"
	"github.com/five82/petgallery/internal/petstore"
	"github.com/five82/petgallery/internal/prefs"
	"github.com/five82/petgallery/internal/thumb"
)

// ThumbnailLoader renders pet images for cards.
type ThumbnailLoader interface {
	Load(ctx context.Context, url string) (thumb.Thumbnail, error)
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *gallery.Controller
	// Thumbnails may be nil, in which case cards show image sources as text.
	Thumbnails ThumbnailLoader
	Logger     *zap.Logger
	APIURL     string
	LogPath    string
	ThemeName  string
	PrefsPath  string
	Compact    bool
	ShowImages bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	ctrl      *gallery.Controller
	loader    ThumbnailLoader
	logger    *zap.Logger
	apiURL    string
	logPath   string
	prefsPath string

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	compact bool
	images  bool

	selected int
	cards    map[int64]*cardState
	thumbs   map[string]*thumbEntry

	modal    Modal
	showHelp bool

	showLog     bool
	logViewport viewport.Model
	logState    logState
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = gallery.New(gallery.Options{Logger: logger})
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		loader:    opts.Thumbnails,
		logger:    logger,
		apiURL:    opts.APIURL,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		compact:   opts.Compact,
		images:    opts.ShowImages && opts.Thumbnails != nil,
		cards:     make(map[int64]*cardState),
		thumbs:    make(map[string]*thumbEntry),
		logState:  newLogState(),
	}
}

// Messages

// opResultMsg carries a finished controller operation back to the loop.
type opResultMsg struct {
	result gallery.Result
}

// notificationExpiredMsg fires once per notification after its display time.
type notificationExpiredMsg struct {
	id int
}

type thumbLoadedMsg struct {
	url   string
	thumb thumb.Thumbnail
	err   error
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.runOp(m.ctrl.Load()))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.showLog {
			m.resizeLogViewport()
		}
		return m, nil

	case opResultMsg:
		return m.handleResult(msg.result)

	case notificationExpiredMsg:
		if n, ok := m.ctrl.Notifications().Expire(); ok {
			m.logger.Debug("notification expired", zap.Int("id", n.ID), zap.Int("scheduled_for", msg.id))
		}
		return m, nil

	case thumbLoadedMsg:
		return m.handleThumb(msg)

	case logEntriesMsg:
		m.handleLogEntries(msg)
		return m, nil

	case logTickMsg:
		if !m.showLog {
			return m, nil
		}
		return m, tea.Batch(readLogCmd(m.logPath), logTickCmd())
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showLog {
		return m.renderLogOverlay()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	if m.showLog {
		return m.handleLogKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
		m.savePrefs()
		return m, m.requestThumbnails()

	case key.Matches(msg, m.keys.ActivityLog):
		cmd := m.openLog()
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		m.logger.Debug("reload requested")
		return m, m.runOp(m.ctrl.Load())
	}

	if m.ctrl.Phase() != gallery.PhaseReady {
		return m, nil
	}
	return m.handleGalleryKey(msg)
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pets := m.ctrl.Pets()
	cols := m.columns()

	switch {
	case key.Matches(msg, m.keys.Add):
		m.ctrl.OpenAdd()
		m.modal = newPetForm(m.ctrl, gallery.ModalAdd)
		return m, nil
	}

	if len(pets) == 0 {
		return m, nil
	}
	m.selected = clampIndex(m.selected, len(pets))
	current := pets[m.selected]

	switch {
	case key.Matches(msg, m.keys.Edit):
		if m.ctrl.RequestEdit(current) {
			m.modal = newPetForm(m.ctrl, gallery.ModalEdit)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.ctrl.RequestDelete(current) {
			m.modal = deleteConfirm{pet: current}
		}
	case key.Matches(msg, m.keys.ToggleDetails):
		if current.HasID() {
			st := m.cardState(current.IDValue())
			st.expanded = !st.expanded
		}
	case key.Matches(msg, m.keys.Down):
		m.selected = clampIndex(m.selected+cols, len(pets))
	case key.Matches(msg, m.keys.Up):
		if m.selected-cols >= 0 {
			m.selected -= cols
		}
	case key.Matches(msg, m.keys.Right):
		m.selected = clampIndex(m.selected+1, len(pets))
	case key.Matches(msg, m.keys.Left):
		m.selected = clampIndex(m.selected-1, len(pets))
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = len(pets) - 1
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd, action := m.modal.Update(msg, m.keys)
	m.modal = next

	switch action {
	case modalCancel:
		if m.ctrl.Modal() == gallery.ModalDeleteConfirm {
			m.ctrl.CancelDelete()
		} else {
			m.ctrl.CloseModal()
		}
		m.modal = nil
		return m, cmd

	case modalSubmit:
		var (
			op gallery.Op
			ok bool
		)
		switch m.ctrl.Modal() {
		case gallery.ModalAdd:
			// The add dialog stays open until the create succeeds.
			op, ok = m.ctrl.SubmitAdd()
		case gallery.ModalEdit:
			op, ok = m.ctrl.ConfirmEdit()
		case gallery.ModalDeleteConfirm:
			op, ok = m.ctrl.ConfirmDelete()
		}
		m.syncModal()
		if !ok {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.runOp(op))
	}
	return m, cmd
}

// syncModal drops the dialog once the controller has closed it.
func (m *Model) syncModal() {
	if m.ctrl.Modal() == gallery.ModalClosed {
		m.modal = nil
	}
}

func (m Model) handleResult(r gallery.Result) (tea.Model, tea.Cmd) {
	out := m.ctrl.Apply(r)
	m.syncModal()
	m.pruneCards()
	m.markFailedImages()

	var cmds []tea.Cmd
	if n := out.Notification; n != nil {
		cmds = append(cmds, expireCmd(n.ID, m.ctrl.Notifications().ExpiryDelay()))
	}
	if out.Next != nil {
		cmds = append(cmds, m.runOp(out.Next))
	}
	cmds = append(cmds, m.requestThumbnails())
	return m, tea.Batch(cmds...)
}

func (m Model) handleThumb(msg thumbLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		m.thumbs[msg.url] = &thumbEntry{status: thumbReady, thumb: msg.thumb}
		return m, nil
	}

	m.thumbs[msg.url] = &thumbEntry{status: thumbFailed}
	m.logger.Debug("thumbnail failed", zap.String("url", msg.url), zap.Error(msg.err))
	if msg.url == PlaceholderImage {
		return m, nil
	}
	m.markFailedImages()
	return m, m.requestThumbnails()
}

// markFailedImages switches every card whose image source already failed to
// the placeholder. A URL that failed once is never fetched again, so cards
// that show it later (after a reload, add or edit) fall back as well.
func (m Model) markFailedImages() {
	for _, p := range m.ctrl.Pets() {
		if !p.HasID() || m.imageError(p) {
			continue
		}
		if m.sourceFailed(ImageSource(p, false)) {
			m.cardState(p.IDValue()).imageError = true
		}
	}
}

func (m Model) sourceFailed(src string) bool {
	if src == PlaceholderImage {
		return false
	}
	e, ok := m.thumbs[src]
	return ok && e.status == thumbFailed
}

// requestThumbnails starts a load for every image source shown on a card
// that has not been requested yet.
func (m Model) requestThumbnails() tea.Cmd {
	if !m.images || m.compact || m.loader == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, p := range m.ctrl.Pets() {
		src := ImageSource(p, m.imageError(p))
		if _, seen := m.thumbs[src]; seen {
			continue
		}
		m.thumbs[src] = &thumbEntry{status: thumbLoading}
		cmds = append(cmds, loadThumbCmd(m.ctx, m.loader, src))
	}
	return tea.Batch(cmds...)
}

func (m Model) imageError(p petstore.Pet) bool {
	if !p.HasID() {
		return false
	}
	if st, ok := m.cards[p.IDValue()]; ok {
		return st.imageError
	}
	return false
}

func (m Model) cardState(id int64) *cardState {
	st, ok := m.cards[id]
	if !ok {
		st = &cardState{}
		m.cards[id] = st
	}
	return st
}

// pruneCards forgets card state for pets that left the list and keeps the
// selection in range.
func (m *Model) pruneCards() {
	pets := m.ctrl.Pets()
	live := make(map[int64]struct{}, len(pets))
	for _, p := range pets {
		if p.HasID() {
			live[p.IDValue()] = struct{}{}
		}
	}
	for id := range m.cards {
		if _, ok := live[id]; !ok {
			delete(m.cards, id)
		}
	}
	m.selected = clampIndex(m.selected, len(pets))
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Compact: m.compact}); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Commands

func (m Model) runOp(op gallery.Op) tea.Cmd {
	if op == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return opResultMsg{result: op(ctx)}
	}
}

func expireCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return notificationExpiredMsg{id: id}
	})
}

func loadThumbCmd(ctx context.Context, loader ThumbnailLoader, url string) tea.Cmd {
	return func() tea.Msg {
		t, err := loader.Load(ctx, url)
		return thumbLoadedMsg{url: url, thumb: t, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, programOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
