package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/session"
)

func press(t *testing.T, m tea.Model, msgs ...tea.KeyMsg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
)

func TestMenuDefaults(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), MenuSelection{
		Mode:       match.ModeCoopVsBot,
		Rounds:     match.LongMatch,
		Difficulty: config.DifficultyHard,
	})

	got := press(t, m, keyEnter).(MenuModel)
	sel := got.Selected()
	if sel == nil {
		t.Fatal("Expected a selection after enter")
	}
	want := MenuSelection{Mode: match.ModeCoopVsBot, Rounds: match.LongMatch, Difficulty: config.DifficultyHard}
	if *sel != want {
		t.Errorf("Expected %+v, got %+v", want, *sel)
	}
}

func TestMenuSettings(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), MenuSelection{
		Mode:       match.ModeCoopVsBot,
		Rounds:     match.LongMatch,
		Difficulty: config.DifficultyHard,
	})

	// coop -> pvp -> rounds: toggle, difficulty: step back, progress: toggle
	got := press(t, m,
		keyDown, keyDown, keyRight,
		keyDown, keyLeft,
		keyDown, keyEnter,
		keyUp, keyUp, keyUp, keyUp, keyUp, keyEnter,
	).(MenuModel)

	sel := got.Selected()
	if sel == nil {
		t.Fatal("Expected a selection")
	}
	want := MenuSelection{
		Mode:       match.ModeSoloVsBot,
		Rounds:     match.ShortMatch,
		Difficulty: config.DifficultyMedium,
		Fresh:      true,
	}
	if *sel != want {
		t.Errorf("Expected %+v, got %+v", want, *sel)
	}
}

func TestMenuUnknownRoundsFallBack(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), MenuSelection{Rounds: 7})
	got := press(t, m, keyEnter).(MenuModel)
	if sel := got.Selected(); sel == nil || sel.Rounds != match.ShortMatch {
		t.Errorf("Expected %d rounds, got %+v", match.ShortMatch, sel)
	}
}

func TestMenuRendersModes(t *testing.T) {
	view := NewMenuModel(core.DefaultConfig(), MenuSelection{}).View()
	for _, mode := range match.Modes {
		if !strings.Contains(view, mode.Title()) {
			t.Errorf("Expected menu to list %q", mode.Title())
		}
	}
}

func newTestApp(t *testing.T, factory SessionFactory) AppModel {
	t.Helper()
	return NewAppModel(factory, nil, core.DefaultConfig(), "neo", MenuSelection{
		Mode:   match.ModeSoloVsBot,
		Rounds: match.ShortMatch,
	})
}

func TestAppStartsMatchAndReturns(t *testing.T) {
	var got session.Options
	app := newTestApp(t, func(opts session.Options) (*session.Session, error) {
		got = opts
		return session.New(session.Deps{Game: config.DefaultConfig()}, opts)
	})

	m := press(t, app, keyEnter).(AppModel)
	if m.state != screenMatch {
		t.Fatalf("Expected match screen, got %v", m.state)
	}
	if got.Pseudo != "neo" {
		t.Errorf("Expected pseudo neo, got %q", got.Pseudo)
	}
	if got.Mode != match.ModeSoloVsBot || got.Rounds != match.ShortMatch {
		t.Errorf("Expected solo over %d rounds, got %+v", match.ShortMatch, got)
	}
	if !strings.Contains(m.View(), "round 1/5") {
		t.Error("Expected HUD to show round 1/5")
	}

	m = press(t, m, keyEsc).(AppModel)
	if m.state != screenMenu {
		t.Errorf("Expected menu after back, got %v", m.state)
	}
	if m.IsQuitting() {
		t.Error("Expected back not to quit")
	}
}

func TestAppFactoryError(t *testing.T) {
	app := newTestApp(t, func(session.Options) (*session.Session, error) {
		return nil, errors.New("no seats left")
	})

	m := press(t, app, keyEnter).(AppModel)
	if m.state != screenMenu {
		t.Fatalf("Expected to stay in the menu, got %v", m.state)
	}
	if !strings.Contains(m.View(), "no seats left") {
		t.Error("Expected the error in the menu view")
	}

	// Menu is usable again.
	if m.menu.Selected() != nil {
		t.Error("Expected menu selection to be reset")
	}
}

func TestAppScoreboardWithoutStore(t *testing.T) {
	app := newTestApp(t, nil)

	m := press(t, app, keyTab).(AppModel)
	if m.state != screenScoreboard {
		t.Fatalf("Expected scoreboard screen, got %v", m.state)
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("Expected empty scoreboard message")
	}

	m = press(t, m, keyTab).(AppModel)
	if !strings.Contains(m.View(), "No matches played") {
		t.Error("Expected empty history on the second tab")
	}

	m = press(t, m, keyEsc).(AppModel)
	if m.state != screenMenu {
		t.Errorf("Expected menu after back, got %v", m.state)
	}
}

func TestAppQuit(t *testing.T) {
	app := newTestApp(t, nil)
	m, cmd := app.Update(runeKey('q'))
	if !m.(AppModel).IsQuitting() {
		t.Error("Expected app to quit")
	}
	if cmd == nil {
		t.Error("Expected a quit command")
	}
}
