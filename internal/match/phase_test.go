package match

import "testing"

func TestActivityFor(t *testing.T) {
	tests := []struct {
		round, total int
		want         Activity
		phase        Phase
	}{
		{1, ShortMatch, ActivityCombat, PhaseInCombat},
		{2, ShortMatch, ActivityTicTacToe, PhaseInMinigameTicTacToe},
		{3, ShortMatch, ActivityLavaSurvival, PhaseInMinigameLavaSurvival},
		{4, ShortMatch, ActivityNone, PhaseShowingRewards},
		{5, ShortMatch, ActivityFinal, PhaseMatchComplete},
		{4, LongMatch, ActivityNone, PhaseShowingRewards},
		{6, LongMatch, ActivityCombat, PhaseInCombat},
		{9, LongMatch, ActivityCombat, PhaseInCombat},
		{10, LongMatch, ActivityFinal, PhaseMatchComplete},
	}
	for _, tt := range tests {
		got := ActivityFor(tt.round, tt.total)
		if got != tt.want {
			t.Errorf("ActivityFor(%d, %d) = %s, want %s", tt.round, tt.total, got, tt.want)
		}
		if got.Phase() != tt.phase {
			t.Errorf("ActivityFor(%d, %d).Phase() = %s, want %s", tt.round, tt.total, got.Phase(), tt.phase)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseInMinigameLavaSurvival.String() != "minigame_lava" {
		t.Errorf("Unexpected name %q", PhaseInMinigameLavaSurvival.String())
	}
	if Phase(42).String() != "unknown" {
		t.Errorf("Expected unknown, got %q", Phase(42).String())
	}
	for p := PhaseRoundIntro; p <= PhaseMatchComplete; p++ {
		if p.String() == "unknown" {
			t.Errorf("Phase %d has no name", int(p))
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseGameMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseGameMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseGameMode("arena"); err == nil {
		t.Error("Expected error for unknown mode")
	}
	for _, p := range Contestants {
		got, err := ParsePlayerID(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePlayerID(%q) = %v, %v", p.String(), got, err)
		}
	}
}

func TestModeParticipants(t *testing.T) {
	tests := []struct {
		mode         GameMode
		player2, bot bool
		humans       int
	}{
		{ModeSoloVsBot, false, true, 1},
		{ModeCoopVsBot, true, true, 2},
		{ModePlayerVsPlayer, true, false, 2},
	}
	for _, tt := range tests {
		if tt.mode.Participates(Player2) != tt.player2 {
			t.Errorf("%s: player2 participates = %v", tt.mode, !tt.player2)
		}
		if tt.mode.Participates(Bot) != tt.bot {
			t.Errorf("%s: bot participates = %v", tt.mode, !tt.bot)
		}
		if len(tt.mode.Humans()) != tt.humans {
			t.Errorf("%s: expected %d humans, got %d", tt.mode, tt.humans, len(tt.mode.Humans()))
		}
		if tt.mode.Participates(NoPlayer) {
			t.Errorf("%s: NoPlayer should never participate", tt.mode)
		}
	}
}
