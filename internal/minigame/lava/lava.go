// Package lava implements the "floor is lava" survival played after round 3.
//
// Every contestant sinks toward the lava at a steady rate and climbs by
// jumping. Jumps are limited while airborne and refill on landing. The
// first contestant to touch the lava loses; when time runs out the
// highest side wins.
package lava

import (
	"math/rand"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
	"github.com/vovakirdan/cyberjump/internal/registry"
)

func init() {
	registry.Register(match.ActivityLavaSurvival.String(), "Floor Is Lava", func(p minigame.Params) minigame.Provider {
		return New(p)
	})
}

// slowTimeFactor scales the sink rate of a slow_time holder.
const slowTimeFactor = 0.5

// Climber is one contestant's state.
type Climber struct {
	Altitude  float64
	JumpsLeft int
	maxJumps  int
	sink      float64 // per tick
	air       int     // ticks until landing
}

// Airborne reports whether the climber is mid-jump.
func (c Climber) Airborne() bool { return c.air > 0 }

// Survival is a single lava game.
type Survival struct {
	mode    match.GameMode
	cfg     config.LavaConfig
	bot     config.BotConfig
	rng     *rand.Rand
	clock   minigame.Clock
	landing int

	order    []match.PlayerID
	climbers map[match.PlayerID]*Climber
	fallen   match.PlayerID
	winner   match.PlayerID
	done     bool
}

// New creates a survival game for the params' mode, applying this round's
// items: double_jump adds a jump, slow_time halves the sink rate.
func New(p minigame.Params) *Survival {
	cfg := p.Config.Lava
	s := &Survival{
		mode:     p.Mode,
		cfg:      cfg,
		bot:      p.Bot,
		rng:      p.RNG(),
		clock:    minigame.NewClock(p.Runtime, cfg.TimeLimitSeconds),
		order:    minigame.Contestants(p.Mode),
		climbers: make(map[match.PlayerID]*Climber, 3),
	}
	s.landing = s.clock.Ticks(cfg.LandingSeconds)
	sink := cfg.SinkPerSecond / float64(s.clock.Ticks(1))

	for _, id := range s.order {
		c := &Climber{
			Altitude: cfg.StartAltitude,
			maxJumps: cfg.MaxJumps,
			sink:     sink,
		}
		if p.Has(id, match.ItemDoubleJump) {
			c.maxJumps++
		}
		if p.Has(id, match.ItemSlowTime) {
			c.sink *= slowTimeFactor
		}
		c.JumpsLeft = c.maxJumps
		s.climbers[id] = c
	}
	return s
}

// Kind implements minigame.Provider.
func (s *Survival) Kind() string { return match.ActivityLavaSurvival.String() }

// Step implements minigame.Provider.
func (s *Survival) Step(in core.MultiInputFrame) {
	if s.done {
		return
	}
	s.clock.Advance()

	for _, id := range s.order {
		c := s.climbers[id]
		if c.air > 0 {
			c.air--
			if c.air == 0 {
				c.JumpsLeft = c.maxJumps
			}
		}

		var jump bool
		if id == match.Bot {
			jump = c.Altitude < 2*s.cfg.JumpHeight && s.rng.Float64() < s.bot.LavaReaction
		} else {
			jump = in.Player(id).Any(core.ActionJump, core.ActionUp)
		}
		if jump && c.JumpsLeft > 0 {
			c.JumpsLeft--
			c.Altitude += s.cfg.JumpHeight
			if c.Altitude > s.cfg.MaxAltitude {
				c.Altitude = s.cfg.MaxAltitude
			}
			c.air = s.landing
		}

		c.Altitude -= c.sink
		if c.Altitude <= 0 {
			c.Altitude = 0
			s.eliminate(id)
			return
		}
	}

	if s.clock.Expired() {
		s.finish(minigame.Higher(s.mode, s.altitudes(), false))
	}
}

func (s *Survival) eliminate(id match.PlayerID) {
	s.fallen = id
	s.finish(minigame.Survivor(s.mode, id, s.altitudes()))
}

func (s *Survival) altitudes() map[match.PlayerID]float64 {
	alt := make(map[match.PlayerID]float64, len(s.climbers))
	for id, c := range s.climbers {
		alt[id] = c.Altitude
	}
	return alt
}

func (s *Survival) finish(winner match.PlayerID) {
	s.winner = winner
	s.done = true
}

// Done implements minigame.Provider.
func (s *Survival) Done() bool { return s.done }

// Winner implements minigame.Provider.
func (s *Survival) Winner() (match.PlayerID, bool) { return s.winner, s.done }

// Elapsed implements minigame.Provider.
func (s *Survival) Elapsed() float64 { return s.clock.Elapsed() }

// Remaining returns the seconds left before the timeout.
func (s *Survival) Remaining() float64 { return s.clock.Remaining() }

// Fallen returns the contestant who touched the lava, if any.
func (s *Survival) Fallen() match.PlayerID { return s.fallen }

// Climber returns a copy of a contestant's state.
func (s *Survival) Climber(id match.PlayerID) (Climber, bool) {
	c, ok := s.climbers[id]
	if !ok {
		return Climber{}, false
	}
	return *c, true
}

// MaxAltitude returns the ceiling used to scale altitude gauges.
func (s *Survival) MaxAltitude() float64 { return s.cfg.MaxAltitude }
