package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
)

// Menu rows after the game modes.
const (
	rowRounds = iota
	rowDifficulty
	rowFresh
	settingRows
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuSelection is what the player picked in the menu.
type MenuSelection struct {
	Mode       match.GameMode
	Rounds     int
	Difficulty config.DifficultyPreset
	Fresh      bool
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	rounds         int
	difficulty     int // index into config.Presets
	fresh          bool
	quitting       bool
	selected       *MenuSelection // Set when user starts a match
	openScoreboard bool           // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. defaults seeds the settings rows.
func NewMenuModel(cfg core.RuntimeConfig, defaults MenuSelection) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		rounds:    defaults.Rounds,
		fresh:     defaults.Fresh,
	}
	if m.rounds != match.LongMatch {
		m.rounds = match.ShortMatch
	}
	m.difficulty = 1
	for i, p := range config.Presets {
		if p == defaults.Difficulty {
			m.difficulty = i
		}
	}
	for i, mode := range match.Modes {
		if mode == defaults.Mode {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) rows() int {
	return len(match.Modes) + settingRows
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < m.rows()-1 {
			m.cursor++
		}

	case MenuActionLeft, MenuActionRight:
		m.adjust(action == MenuActionRight)

	case MenuActionSelect:
		if m.cursor < len(match.Modes) {
			m.selected = &MenuSelection{
				Mode:       match.Modes[m.cursor],
				Rounds:     m.rounds,
				Difficulty: config.Presets[m.difficulty],
				Fresh:      m.fresh,
			}
			return m, tea.Quit // Exit menu to start the match
		}
		m.adjust(true)

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// adjust changes the setting under the cursor.
func (m *MenuModel) adjust(forward bool) {
	switch m.cursor - len(match.Modes) {
	case rowRounds:
		if m.rounds == match.ShortMatch {
			m.rounds = match.LongMatch
		} else {
			m.rounds = match.ShortMatch
		}
	case rowDifficulty:
		n := len(config.Presets)
		if forward {
			m.difficulty = (m.difficulty + 1) % n
		} else {
			m.difficulty = (m.difficulty + n - 1) % n
		}
	case rowFresh:
		m.fresh = !m.fresh
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C Y B E R   J U M P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, mode := range match.Modes {
		b.WriteString(centerText(m.row(i, mode.Title()), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fresh := "continue saved match"
	if m.fresh {
		fresh = "start a new match"
	}
	settings := []string{
		fmt.Sprintf("Rounds:     < %d >", m.rounds),
		fmt.Sprintf("Difficulty: < %s >", config.Presets[m.difficulty]),
		fmt.Sprintf("Progress:   < %s >", fresh),
	}
	for i, s := range settings {
		b.WriteString(centerText(m.row(len(match.Modes)+i, s), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuMutedStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) row(i int, text string) string {
	if i == m.cursor {
		return menuSelectedStyle.Render("> " + text)
	}
	return "  " + text
}

// Selected returns the chosen match, or nil if none selected.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       MenuSelection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, defaults MenuSelection) (MenuResult, error) {
	model := NewMenuModel(cfg, defaults)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() || m.Selected() == nil {
		result.Quit = true
		return result, nil
	}

	result.Selection = *m.Selected()
	return result, nil
}
