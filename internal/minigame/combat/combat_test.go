package combat

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
)

func newCombat(mode match.GameMode, bot config.BotConfig, rewards map[match.PlayerID]match.Reward) *Combat {
	return New(minigame.Params{
		Mode:    mode,
		Config:  config.DefaultConfig(),
		Bot:     bot,
		Rewards: rewards,
		Runtime: core.DefaultConfig(),
		Rand:    rand.New(rand.NewSource(5)),
	})
}

func attack(ids ...match.PlayerID) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, id := range ids {
		in.Press(id, core.ActionAttack)
	}
	return in
}

// passive returns a bot that never attacks.
func passive() config.BotConfig {
	return config.BotConfig{AttackChance: 0, AttackDamage: 15}
}

func TestPvpKnockout(t *testing.T) {
	c := newCombat(match.ModePlayerVsPlayer, passive(), nil)
	ticks := 0
	for !c.Done() {
		c.Step(attack(match.Player1))
		ticks++
	}
	if w, _ := c.Winner(); w != match.Player1 {
		t.Errorf("Expected player1, got %s", w)
	}
	// five hits with a 30 tick cooldown: ticks 1, 31, 61, 91, 121
	if ticks != 121 {
		t.Errorf("Expected knockout on tick 121, got %d", ticks)
	}
	if f, _ := c.Fighter(match.Player2); f.Health != 0 {
		t.Errorf("Expected 0 health, got %d", f.Health)
	}
}

func TestItemsApply(t *testing.T) {
	rewards := map[match.PlayerID]match.Reward{
		match.Player1: {Items: []match.Item{match.ItemShield}},
		match.Player2: {Items: []match.Item{match.ItemSpeedBoost}},
	}
	c := newCombat(match.ModePlayerVsPlayer, passive(), rewards)
	p1, _ := c.Fighter(match.Player1)
	p2, _ := c.Fighter(match.Player2)
	if p1.MaxHealth != 120 || p1.Health != 120 {
		t.Errorf("Expected shielded health 120, got %d/%d", p1.Health, p1.MaxHealth)
	}
	if p2.Damage != 25 {
		t.Errorf("Expected boosted damage 25, got %d", p2.Damage)
	}
	c.Step(attack(match.Player2))
	if f, _ := c.Fighter(match.Player1); f.Health != 95 {
		t.Errorf("Expected 95 health, got %d", f.Health)
	}
}

func TestCooldownBlocksAttacks(t *testing.T) {
	c := newCombat(match.ModeSoloVsBot, passive(), nil)
	for i := 0; i < 29; i++ {
		c.Step(attack(match.Player1))
	}
	if f, _ := c.Fighter(match.Bot); f.Health != 80 {
		t.Errorf("Expected a single hit during cooldown, bot health %d", f.Health)
	}
	c.Step(attack(match.Player1))
	c.Step(attack(match.Player1))
	if f, _ := c.Fighter(match.Bot); f.Health != 60 {
		t.Errorf("Expected second hit after cooldown, bot health %d", f.Health)
	}
}

func TestTimeoutDecisions(t *testing.T) {
	tests := []struct {
		name   string
		mode   match.GameMode
		hitter []match.PlayerID
		want   match.PlayerID
	}{
		{"pvp tie", match.ModePlayerVsPlayer, nil, match.NoPlayer},
		{"pvp more health", match.ModePlayerVsPlayer, []match.PlayerID{match.Player2}, match.Player2},
		{"solo tie goes to bot", match.ModeSoloVsBot, nil, match.Bot},
		{"solo more health", match.ModeSoloVsBot, []match.PlayerID{match.Player1}, match.Player1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCombat(tt.mode, passive(), nil)
			if len(tt.hitter) > 0 {
				c.Step(attack(tt.hitter...))
			}
			for !c.Done() {
				c.Step(core.NewMultiInputFrame())
			}
			if w, _ := c.Winner(); w != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, w)
			}
			if c.Elapsed() != 30 {
				t.Errorf("Expected timeout at 30s, got %v", c.Elapsed())
			}
		})
	}
}

func TestBotHitsBothHumansInCoop(t *testing.T) {
	bot := config.BotConfig{AttackChance: 1, AttackDamage: 50}
	c := newCombat(match.ModeCoopVsBot, bot, nil)
	c.Step(core.NewMultiInputFrame())
	for _, id := range []match.PlayerID{match.Player1, match.Player2} {
		if f, _ := c.Fighter(id); f.Health != 50 {
			t.Errorf("%s: expected 50 health, got %d", id, f.Health)
		}
	}
	for !c.Done() {
		c.Step(core.NewMultiInputFrame())
	}
	if w, _ := c.Winner(); w != match.Bot {
		t.Errorf("Expected bot to win when all humans are down, got %s", w)
	}
}

func TestCoopCreditsFinalBlow(t *testing.T) {
	c := newCombat(match.ModeCoopVsBot, passive(), nil)
	// two joint hits take the bot to 20, then player2 finishes it
	for i := 0; i < 2; i++ {
		c.Step(attack(match.Player1, match.Player2))
		for j := 0; j < 29; j++ {
			c.Step(core.NewMultiInputFrame())
		}
	}
	if c.Done() {
		t.Fatal("Bot should survive two joint hits")
	}
	// wait out the cooldown, then only player2 strikes
	c.Step(core.NewMultiInputFrame())
	for !c.Done() {
		c.Step(attack(match.Player2))
	}
	if w, _ := c.Winner(); w != match.Player2 {
		t.Errorf("Expected player2 credited, got %s", w)
	}
}
