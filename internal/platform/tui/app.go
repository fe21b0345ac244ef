package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/session"
	"github.com/vovakirdan/cyberjump/internal/storage"
)

// SessionFactory starts a match for the menu selection.
type SessionFactory func(opts session.Options) (*session.Session, error)

type screenState int

const (
	screenMenu screenState = iota
	screenMatch
	screenScoreboard
)

// AppModel manages the full flow: menu -> match -> menu, with the
// scoreboard one key away. It is the top-level model of SSH sessions.
type AppModel struct {
	newSession SessionFactory
	store      *storage.Store
	config     core.RuntimeConfig
	pseudo     string
	defaults   MenuSelection
	state      screenState
	menu       MenuModel
	match      *MatchModel
	board      *ScoreboardModel
	err        string // last failure to start a match, shown in the menu
	quitting   bool
}

// NewAppModel creates the app model. store may be nil.
func NewAppModel(newSession SessionFactory, store *storage.Store, cfg core.RuntimeConfig, pseudo string, defaults MenuSelection) AppModel {
	return AppModel{
		newSession: newSession,
		store:      store,
		config:     cfg,
		pseudo:     pseudo,
		defaults:   defaults,
		menu:       NewMenuModel(cfg, defaults),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case screenMatch:
		return m.updateMatch(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		board := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		m.state = screenScoreboard
		return m, board.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.defaults = *selected
		m.config = m.menu.Config()

		sess, err := m.newSession(session.Options{
			Mode:       selected.Mode,
			Rounds:     selected.Rounds,
			Difficulty: selected.Difficulty,
			Pseudo:     m.pseudo,
			Fresh:      selected.Fresh,
		})
		if err != nil {
			m.err = err.Error()
			m.menu = NewMenuModel(m.config, m.defaults)
			return m, nil
		}

		m.err = ""
		match := NewMatchModel(sess, m.config)
		m.match = &match
		m.state = screenMatch
		return m, match.Init()
	}

	return m, cmd
}

func (m AppModel) updateMatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.match.Update(msg)
	if matchModel, ok := newModel.(MatchModel); ok {
		m.match = &matchModel
	}

	if m.match.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.match.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m AppModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.board.Update(msg)
	if board, ok := newModel.(ScoreboardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *AppModel) backToMenu() {
	m.state = screenMenu
	m.match = nil
	m.board = nil
	m.menu = NewMenuModel(m.config, m.defaults)
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case screenMatch:
		return m.match.View()
	case screenScoreboard:
		return m.board.View()
	}

	view := m.menu.View()
	if m.err != "" {
		view += "\n" + centerText(bossStyle.Render(m.err), m.config.ScreenW) + "\n"
	}
	return view
}

// IsQuitting returns true if user requested to quit.
func (m AppModel) IsQuitting() bool {
	return m.quitting
}
