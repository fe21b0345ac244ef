package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame/combat"
	"github.com/vovakirdan/cyberjump/internal/minigame/lava"
	"github.com/vovakirdan/cyberjump/internal/minigame/race"
	"github.com/vovakirdan/cyberjump/internal/minigame/tictactoe"
	"github.com/vovakirdan/cyberjump/internal/session"
)

const (
	hudHeight = 3 // title line, score line, blank
	logLines  = 3
)

var (
	hudTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	bossStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	logStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MatchModel is the Bubble Tea model that plays one match.
type MatchModel struct {
	sess       *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.MultiInputFrame
	log        []string
	quitting   bool
	backToMenu bool
	standalone bool // back quits the program
}

// NewMatchModel creates a model driving sess.
func NewMatchModel(sess *session.Session, cfg core.RuntimeConfig) MatchModel {
	m := MatchModel{
		sess:       sess,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewMultiInputFrame(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.bodyHeight())
	if sess.Resumed() {
		m.log = append(m.log, fmt.Sprintf("resumed at round %d", sess.Snapshot().Round))
	}
	m.drainEvents()
	return m
}

func (m MatchModel) bodyHeight() int {
	return core.Max(m.config.ScreenH-hudHeight-logLines-1, 8)
}

// Init starts the tick loop.
func (m MatchModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m MatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen = core.NewScreen(msg.Width, m.bodyHeight())
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m MatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToMultiFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Leaving mid-match keeps the progress of the last finished round.
	if m.inputFrame.Player(match.Player1).Has(core.ActionBack) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m MatchModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}
	m.sess.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.drainEvents()
	return m, tickCmd(m.config.TickRate)
}

// drainEvents turns session events into log lines.
func (m *MatchModel) drainEvents() {
	for _, e := range m.sess.Events() {
		var line string
		switch ev := e.(type) {
		case session.RoundStartedEvent:
			line = fmt.Sprintf("round %d/%d", ev.Round, ev.Total)
			if ev.Boss {
				line += ": boss race"
			}
		case session.RaceFinishedEvent:
			if ev.Outcome.Winner == match.NoPlayer {
				line = "race tied"
			} else {
				line = "race won by " + label(ev.Outcome.Winner)
			}
		case session.ActivityStartedEvent:
			line = activityTitle(ev.Activity) + " begins"
		case session.ActivityFinishedEvent:
			if ev.Winner == match.NoPlayer {
				line = activityTitle(ev.Activity) + ": draw"
			} else {
				line = activityTitle(ev.Activity) + " won by " + label(ev.Winner)
			}
		case session.BossTimeoutEvent:
			line = fmt.Sprintf("boss race over %.0fs: match lost", ev.Limit)
		case session.MatchEndedEvent:
			line = "match over"
		}
		if line != "" {
			m.log = append(m.log, line)
		}
	}
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}

// View renders the HUD, the current phase and the event log.
func (m MatchModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.sess.Snapshot()
	var b strings.Builder
	b.WriteString(m.renderHUD(snap))
	b.WriteString("\n\n")

	m.screen.Clear()
	m.drawBody(snap)
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	for _, line := range m.log {
		b.WriteString(logStyle.Render("  " + line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m MatchModel) renderHUD(snap match.Snapshot) string {
	title := fmt.Sprintf(" CYBER JUMP  %s  round %d/%d  %s",
		snap.Mode.Title(), snap.Round, snap.TotalRounds, snap.Phase)
	line := hudTitleStyle.Render(title)
	if left := m.sess.BossRemaining(); left > 0 {
		line += "  " + bossStyle.Render("BOSS "+clock(left))
	}

	var parts []string
	for _, id := range match.Contestants {
		if !snap.Mode.Participates(id) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d pts (%d won)", label(id), snap.Scores[id], snap.Wins[id]))
	}
	return line + "\n" + hudStyle.Render(" "+strings.Join(parts, "   "))
}

func (m MatchModel) drawBody(snap match.Snapshot) {
	if r, ok := m.sess.Result(); ok {
		drawEnd(m.screen, r)
		return
	}

	switch p := m.sess.Provider().(type) {
	case *race.Race:
		drawRace(m.screen, p, snap.Mode, m.sess.BossRemaining())
		return
	case *combat.Combat:
		drawCombat(m.screen, p, snap)
		return
	case *tictactoe.Game:
		drawBoard(m.screen, p, snap.Mode)
		return
	case *lava.Survival:
		drawLava(m.screen, p, snap.Mode)
		return
	}

	switch snap.Phase {
	case match.PhaseRoundIntro:
		drawIntro(m.screen, snap, m.sess.PhaseRemaining())
	case match.PhaseShowingRewards:
		drawRewards(m.screen, snap, m.sess.PhaseRemaining())
	default:
		m.screen.DrawTextCentered(m.screen.Height()/2, "get ready...")
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m MatchModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m MatchModel) BackToMenu() bool {
	return m.backToMenu
}

// RunMatch plays sess in a full-screen Bubble Tea program.
// Returns true if the user asked to quit rather than go back.
func RunMatch(sess *session.Session, cfg core.RuntimeConfig) (quit bool, err error) {
	model := NewMatchModel(sess, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(MatchModel)
	return !ok || m.IsQuitting(), nil
}
