package registry_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
	_ "github.com/vovakirdan/cyberjump/internal/minigame/combat"
	_ "github.com/vovakirdan/cyberjump/internal/minigame/lava"
	_ "github.com/vovakirdan/cyberjump/internal/minigame/race"
	_ "github.com/vovakirdan/cyberjump/internal/minigame/tictactoe"
	"github.com/vovakirdan/cyberjump/internal/registry"
)

func params() minigame.Params {
	cfg := config.DefaultConfig()
	return minigame.Params{
		Mode:    match.ModeSoloVsBot,
		Config:  cfg,
		Bot:     cfg.Bots.Medium,
		Runtime: core.DefaultConfig(),
		Rand:    rand.New(rand.NewSource(1)),
	}
}

func TestListSorted(t *testing.T) {
	list := registry.List()
	want := []string{"combat", "lava", "race", "tictactoe"}
	if len(list) != len(want) {
		t.Fatalf("Expected %d providers, got %d: %+v", len(want), len(list), list)
	}
	for i, kind := range want {
		if list[i].Kind != kind {
			t.Errorf("Position %d: expected %s, got %s", i, kind, list[i].Kind)
		}
		if list[i].Title == "" {
			t.Errorf("Provider %s has no title", kind)
		}
	}
}

func TestCreateActivity(t *testing.T) {
	tests := []struct {
		activity match.Activity
		wantErr  bool
	}{
		{match.ActivityCombat, false},
		{match.ActivityTicTacToe, false},
		{match.ActivityLavaSurvival, false},
		{match.ActivityNone, true},
		{match.ActivityFinal, true},
	}
	for _, tt := range tests {
		t.Run(tt.activity.String(), func(t *testing.T) {
			p, err := registry.CreateActivity(tt.activity, params())
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateActivity() failed: %v", err)
			}
			if p.Kind() != tt.activity.String() {
				t.Errorf("Expected kind %s, got %s", tt.activity, p.Kind())
			}
			if p.Done() {
				t.Error("A new provider must not be done")
			}
		})
	}
}

func TestCreateRaceAndUnknown(t *testing.T) {
	p, err := registry.Create(registry.KindRace, params())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if p.Kind() != registry.KindRace {
		t.Errorf("Expected race, got %s", p.Kind())
	}

	if _, err := registry.Create("pinball", params()); err == nil {
		t.Error("Expected error for unknown provider")
	}
	if registry.Exists("pinball") {
		t.Error("pinball should not exist")
	}
	if registry.Title("pinball") != "pinball" {
		t.Error("Unknown kinds use the kind as title")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	registry.Register(registry.KindRace, "Again", func(p minigame.Params) minigame.Provider { return nil })
}
