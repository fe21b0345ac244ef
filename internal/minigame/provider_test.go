package minigame

import (
	"testing"

	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
)

func TestHigher(t *testing.T) {
	type vals = map[match.PlayerID]float64
	tests := []struct {
		name     string
		mode     match.GameMode
		values   vals
		tieToBot bool
		want     match.PlayerID
	}{
		{"pvp p1", match.ModePlayerVsPlayer, vals{match.Player1: 5, match.Player2: 3}, false, match.Player1},
		{"pvp tie", match.ModePlayerVsPlayer, vals{match.Player1: 5, match.Player2: 5}, true, match.NoPlayer},
		{"solo bot", match.ModeSoloVsBot, vals{match.Player1: 1, match.Bot: 3}, false, match.Bot},
		{"solo tie draw", match.ModeSoloVsBot, vals{match.Player1: 3, match.Bot: 3}, false, match.NoPlayer},
		{"solo tie bot", match.ModeSoloVsBot, vals{match.Player1: 3, match.Bot: 3}, true, match.Bot},
		{"coop best human", match.ModeCoopVsBot, vals{match.Player1: 1, match.Player2: 9, match.Bot: 3}, false, match.Player2},
		{"solo ignores p2", match.ModeSoloVsBot, vals{match.Player1: 1, match.Player2: 9, match.Bot: 3}, false, match.Bot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Higher(tt.mode, tt.values, tt.tieToBot); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSurvivor(t *testing.T) {
	vals := map[match.PlayerID]float64{match.Player1: 2, match.Player2: 4}
	tests := []struct {
		mode  match.GameMode
		loser match.PlayerID
		want  match.PlayerID
	}{
		{match.ModePlayerVsPlayer, match.Player1, match.Player2},
		{match.ModePlayerVsPlayer, match.Player2, match.Player1},
		{match.ModeSoloVsBot, match.Player1, match.Bot},
		{match.ModeSoloVsBot, match.Bot, match.Player1},
		{match.ModeCoopVsBot, match.Player2, match.Bot},
		{match.ModeCoopVsBot, match.Bot, match.Player2},
	}
	for _, tt := range tests {
		if got := Survivor(tt.mode, tt.loser, vals); got != tt.want {
			t.Errorf("Survivor(%s, %s) = %s, want %s", tt.mode, tt.loser, got, tt.want)
		}
	}
}

func TestClock(t *testing.T) {
	c := NewClock(core.DefaultConfig(), 1)
	for i := 0; i < 59; i++ {
		c.Advance()
	}
	if c.Expired() {
		t.Fatal("Clock expired early")
	}
	c.Advance()
	if !c.Expired() || c.Elapsed() != 1 || c.Remaining() != 0 {
		t.Errorf("Expected expiry at 1s, elapsed %v", c.Elapsed())
	}

	forever := NewClock(core.DefaultConfig(), 0)
	for i := 0; i < 1000; i++ {
		forever.Advance()
	}
	if forever.Expired() {
		t.Error("Clock without limit should never expire")
	}
}

func TestContestants(t *testing.T) {
	if got := Contestants(match.ModeCoopVsBot); len(got) != 3 || got[2] != match.Bot {
		t.Errorf("Unexpected coop contestants %v", got)
	}
	if got := Contestants(match.ModePlayerVsPlayer); len(got) != 2 {
		t.Errorf("Unexpected pvp contestants %v", got)
	}
}
