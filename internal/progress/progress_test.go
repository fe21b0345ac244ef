package progress

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/cyberjump/internal/match"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "progress.json"), nil)
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	return s
}

func TestLoadMissingFile(t *testing.T) {
	s := newStore(t)
	if _, ok := s.Load(match.ModeSoloVsBot); ok {
		t.Error("Expected no progress without a file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	rec := Record{CurrentRound: 3, NumRounds: 5, Player1Wins: 4, BotWins: 1}
	if err := s.Save(match.ModeSoloVsBot, rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, ok := s.Load(match.ModeSoloVsBot)
	if !ok {
		t.Fatal("Expected saved progress")
	}
	if got != rec {
		t.Errorf("Expected %+v, got %+v", rec, got)
	}
}

func TestFileFormat(t *testing.T) {
	s := newStore(t)
	rec := Record{CurrentRound: 2, NumRounds: 10, Player1Wins: 1, BotWins: 1}
	if err := s.Save(match.ModeSoloVsBot, rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var doc map[string]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Document is not JSON: %v", err)
	}
	entry, ok := doc["joueur_vs_bot"]
	if !ok {
		t.Fatalf("Missing joueur_vs_bot key in %s", data)
	}
	for _, k := range []string{"current_round", "num_rounds", "player1_wins", "bot_wins", "match_complete"} {
		if _, ok := entry[k]; !ok {
			t.Errorf("Missing field %s", k)
		}
	}
}

func TestSavePreservesOtherKeys(t *testing.T) {
	s := newStore(t)
	if err := os.WriteFile(s.Path(), []byte(`{"settings":{"volume":7}}`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := s.Save(match.ModeSoloVsBot, Record{CurrentRound: 1, NumRounds: 5}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Reset(match.ModeSoloVsBot); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	data, _ := os.ReadFile(s.Path())
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Document is not JSON: %v", err)
	}
	if _, ok := doc["settings"]; !ok {
		t.Errorf("Foreign key lost: %s", data)
	}
	if _, ok := doc["joueur_vs_bot"]; ok {
		t.Error("Reset should remove the record")
	}
}

func TestMalformedProgress(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "not json"},
		{"wrong type", `{"joueur_vs_bot": "round 3"}`},
		{"round out of range", `{"joueur_vs_bot": {"current_round": 9, "num_rounds": 5}}`},
		{"bad rounds", `{"joueur_vs_bot": {"current_round": 1, "num_rounds": 4}}`},
		{"empty object", `{"joueur_vs_bot": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if err := os.WriteFile(s.Path(), []byte(tt.data), 0o644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			if _, ok := s.Load(match.ModeSoloVsBot); ok {
				t.Error("Expected malformed progress to be ignored")
			}
		})
	}
}

func TestCorruptFileReplacedOnSave(t *testing.T) {
	s := newStore(t)
	if err := os.WriteFile(s.Path(), []byte("{{{"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	rec := Record{CurrentRound: 2, NumRounds: 5, Player1Wins: 2}
	if err := s.Save(match.ModeSoloVsBot, rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if got, ok := s.Load(match.ModeSoloVsBot); !ok || got != rec {
		t.Errorf("Expected %+v after replacing corrupt file, got %+v", rec, got)
	}
}

func TestUnpersistedModes(t *testing.T) {
	s := newStore(t)
	for _, mode := range []match.GameMode{match.ModeCoopVsBot, match.ModePlayerVsPlayer} {
		if Persisted(mode) {
			t.Errorf("%s should not be persisted", mode)
		}
		if err := s.Save(mode, Record{CurrentRound: 1, NumRounds: 5}); !errors.Is(err, ErrNotPersisted) {
			t.Errorf("%s: expected ErrNotPersisted, got %v", mode, err)
		}
		if err := s.Reset(mode); err != nil {
			t.Errorf("%s: Reset should be a no-op, got %v", mode, err)
		}
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("No file should be written for unpersisted modes")
	}
}

func TestPersistResumeRoundTrip(t *testing.T) {
	s := newStore(t)
	cfg := match.Config{Mode: match.ModeSoloVsBot, TotalRounds: match.ShortMatch}
	m := match.NewMachine(match.DefaultRewardRules(), rand.New(rand.NewSource(1)))
	if err := m.Start(cfg); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// round 1: player1 wins the race, the bot wins the combat
	_ = m.BeginRace()
	if _, err := m.CompleteRace(match.RaceTimes{Player1: 9, Bot: 11}); err != nil {
		t.Fatalf("CompleteRace() failed: %v", err)
	}
	_, _ = m.ShowRewards()
	if err := m.CompleteActivity(match.Bot); err != nil {
		t.Fatalf("CompleteActivity() failed: %v", err)
	}
	if err := s.Save(cfg.Mode, RecordOf(m)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	rec, ok := s.Load(cfg.Mode)
	if !ok {
		t.Fatal("Expected saved progress")
	}
	r := match.NewMachine(match.DefaultRewardRules(), nil)
	if err := r.Resume(rec.Config(cfg.Mode), rec.ResumeState()); err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}
	if r.Round() != m.Round() || r.RoundWins(match.Player1) != 1 || r.RoundWins(match.Bot) != 1 {
		t.Errorf("Resume mismatch: round %d p1 %d bot %d", r.Round(), r.RoundWins(match.Player1), r.RoundWins(match.Bot))
	}
	if r.RoundWins(match.Player2) != 0 {
		t.Error("Player2 wins are not persisted")
	}
}
