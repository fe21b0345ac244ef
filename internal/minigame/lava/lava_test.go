package lava

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
)

func newSurvival(mode match.GameMode, tweak func(*config.CyberJumpConfig), bot config.BotConfig, rewards map[match.PlayerID]match.Reward) *Survival {
	cfg := config.DefaultConfig()
	if tweak != nil {
		tweak(&cfg)
	}
	return New(minigame.Params{
		Mode:    mode,
		Config:  cfg,
		Bot:     bot,
		Rewards: rewards,
		Runtime: core.DefaultConfig(),
		Rand:    rand.New(rand.NewSource(11)),
	})
}

func jump(ids ...match.PlayerID) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, id := range ids {
		in.Press(id, core.ActionJump)
	}
	return in
}

func TestIdlePlayerFallsFirst(t *testing.T) {
	alert := config.BotConfig{LavaReaction: 1}
	s := newSurvival(match.ModeSoloVsBot, nil, alert, nil)
	ticks := 0
	for !s.Done() {
		s.Step(core.NewMultiInputFrame())
		ticks++
	}
	if s.Fallen() != match.Player1 {
		t.Errorf("Expected player1 to fall, got %s", s.Fallen())
	}
	if w, _ := s.Winner(); w != match.Bot {
		t.Errorf("Expected bot to win, got %s", w)
	}
	// 10 altitude at 2 per second
	if ticks < 299 || ticks > 301 {
		t.Errorf("Expected fall after about 300 ticks, got %d", ticks)
	}
}

func TestJumpLimitAndLanding(t *testing.T) {
	s := newSurvival(match.ModePlayerVsPlayer, func(c *config.CyberJumpConfig) {
		c.Lava.SinkPerSecond = 0
	}, config.BotConfig{}, nil)

	for i := 0; i < 3; i++ {
		s.Step(jump(match.Player1))
	}
	c, _ := s.Climber(match.Player1)
	if c.Altitude != 16 {
		t.Errorf("Expected two jumps to reach 16, got %v", c.Altitude)
	}
	if c.JumpsLeft != 0 || !c.Airborne() {
		t.Errorf("Expected airborne without jumps, got %+v", c)
	}

	// landing_seconds 0.75 = 45 ticks after the last jump
	for i := 0; i < 45; i++ {
		s.Step(core.NewMultiInputFrame())
	}
	c, _ = s.Climber(match.Player1)
	if c.JumpsLeft != 2 || c.Airborne() {
		t.Errorf("Expected jumps refilled on landing, got %+v", c)
	}

	s.Step(jump(match.Player1))
	s.Step(jump(match.Player1))
	if c, _ := s.Climber(match.Player1); c.Altitude != 20 {
		t.Errorf("Expected altitude capped at 20, got %v", c.Altitude)
	}
}

func TestTimeoutHighestWins(t *testing.T) {
	still := func(c *config.CyberJumpConfig) { c.Lava.SinkPerSecond = 0 }

	s := newSurvival(match.ModePlayerVsPlayer, still, config.BotConfig{}, nil)
	s.Step(jump(match.Player2))
	for !s.Done() {
		s.Step(core.NewMultiInputFrame())
	}
	if w, _ := s.Winner(); w != match.Player2 {
		t.Errorf("Expected player2 higher, got %s", w)
	}
	if s.Elapsed() != 30 {
		t.Errorf("Expected timeout at 30s, got %v", s.Elapsed())
	}

	tie := newSurvival(match.ModeSoloVsBot, still, config.BotConfig{}, nil)
	for !tie.Done() {
		tie.Step(core.NewMultiInputFrame())
	}
	if w, _ := tie.Winner(); w != match.NoPlayer {
		t.Errorf("Expected equal altitude to tie, got %s", w)
	}
}

func TestItems(t *testing.T) {
	rewards := map[match.PlayerID]match.Reward{
		match.Player1: {Items: []match.Item{match.ItemDoubleJump}},
		match.Player2: {Items: []match.Item{match.ItemSlowTime}},
	}
	s := newSurvival(match.ModePlayerVsPlayer, nil, config.BotConfig{}, rewards)
	if c, _ := s.Climber(match.Player1); c.JumpsLeft != 3 {
		t.Errorf("Expected 3 jumps with double_jump, got %d", c.JumpsLeft)
	}

	// player1 falls first: slow_time keeps player2 above the lava longer
	for !s.Done() {
		s.Step(core.NewMultiInputFrame())
	}
	if s.Fallen() != match.Player1 {
		t.Errorf("Expected player1 to fall first, got %s", s.Fallen())
	}
	if w, _ := s.Winner(); w != match.Player2 {
		t.Errorf("Expected player2 to win, got %s", w)
	}
}

func TestCoopBotFalls(t *testing.T) {
	lazy := config.BotConfig{LavaReaction: 0}
	s := newSurvival(match.ModeCoopVsBot, nil, lazy, nil)
	for !s.Done() {
		// player2 climbs, player1 hops less often
		in := jump(match.Player2)
		if s.clock.Tick()%90 == 0 {
			in.Press(match.Player1, core.ActionJump)
		}
		s.Step(in)
	}
	if s.Fallen() != match.Bot {
		t.Fatalf("Expected bot to fall, got %s", s.Fallen())
	}
	if w, _ := s.Winner(); w != match.Player2 {
		t.Errorf("Expected the highest human to be credited, got %s", w)
	}
}
