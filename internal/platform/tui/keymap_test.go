package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player match.PlayerID
		action core.Action
		quit   bool
	}{
		{"p1 jump", tea.KeyMsg{Type: tea.KeySpace}, match.Player1, core.ActionJump, false},
		{"p1 attack", runeKey('m'), match.Player1, core.ActionAttack, false},
		{"p1 up", tea.KeyMsg{Type: tea.KeyUp}, match.Player1, core.ActionUp, false},
		{"p1 confirm", tea.KeyMsg{Type: tea.KeyEnter}, match.Player1, core.ActionConfirm, false},
		{"p2 jump", runeKey('e'), match.Player2, core.ActionJump, false},
		{"p2 attack", runeKey('f'), match.Player2, core.ActionAttack, false},
		{"p2 left", runeKey('a'), match.Player2, core.ActionLeft, false},
		{"p2 confirm", runeKey('r'), match.Player2, core.ActionConfirm, false},
		{"back", tea.KeyMsg{Type: tea.KeyEscape}, match.Player1, core.ActionBack, false},
		{"quit", runeKey('q'), match.Player1, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, match.Player1, core.ActionQuit, true},
		{"unbound", runeKey('z'), match.NoPlayer, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player, action, quit := km.MapKey(tt.msg)
			if player != tt.player || action != tt.action || quit != tt.quit {
				t.Errorf("Expected (%v, %v, %v), got (%v, %v, %v)",
					tt.player, tt.action, tt.quit, player, action, quit)
			}
		})
	}
}

func TestMapKeyToMultiFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewMultiInputFrame()

	if km.MapKeyToMultiFrame(runeKey('m'), &frame) {
		t.Error("Expected attack key not to quit")
	}
	if km.MapKeyToMultiFrame(runeKey('e'), &frame) {
		t.Error("Expected jump key not to quit")
	}

	if !frame.Player(match.Player1).Has(core.ActionAttack) {
		t.Error("Expected player1 attack to be recorded")
	}
	if !frame.Player(match.Player2).Has(core.ActionJump) {
		t.Error("Expected player2 jump to be recorded")
	}
	if frame.Player(match.Player1).Has(core.ActionJump) {
		t.Error("Expected player2 key not to reach player1")
	}

	if !km.MapKeyToMultiFrame(runeKey('q'), &frame) {
		t.Error("Expected q to quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("Expected quit not to be recorded as a player action")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{runeKey('h'), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{runeKey('b'), MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
