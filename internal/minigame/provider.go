// Package minigame defines the outcome providers played inside a round:
// the race and the activities that follow it. Providers are small
// tick-driven simulations; they decide a winner and know nothing about
// scores or rounds.
package minigame

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
)

// Provider is a single race or activity instance.
type Provider interface {
	// Kind returns the registry key of the provider ("race", "combat", ...).
	Kind() string

	// Step advances the simulation by one tick. Steps after Done are ignored.
	Step(in core.MultiInputFrame)

	// Done reports whether the outcome is decided.
	Done() bool

	// Winner returns the decided winner, NoPlayer for a draw. The second
	// result is false while the provider is still running.
	Winner() (match.PlayerID, bool)

	// Elapsed returns the simulated time in seconds.
	Elapsed() float64
}

// Params carries everything a factory needs to build a provider.
type Params struct {
	Mode    match.GameMode
	Config  config.CyberJumpConfig
	Bot     config.BotConfig
	Rewards map[match.PlayerID]match.Reward // items earned in this round's race
	Runtime core.RuntimeConfig
	Rand    *rand.Rand
	Boss    bool // the final round, timed by the driver
}

// Has reports whether player p holds item in this round.
func (p Params) Has(id match.PlayerID, item match.Item) bool {
	return p.Rewards[id].Has(item)
}

// RNG returns the params' random source, creating a clock-seeded one if unset.
func (p Params) RNG() *rand.Rand {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // gameplay randomness
}

// Clock counts ticks against an optional limit.
type Clock struct {
	tick  int
	limit int // 0 means no limit
	rt    core.RuntimeConfig
}

// NewClock creates a clock that expires after limitSeconds (0 for never).
func NewClock(rt core.RuntimeConfig, limitSeconds float64) Clock {
	return Clock{limit: rt.Ticks(limitSeconds), rt: rt}
}

// Advance moves the clock forward one tick.
func (c *Clock) Advance() { c.tick++ }

// Tick returns the number of ticks elapsed.
func (c Clock) Tick() int { return c.tick }

// Expired reports whether the limit has been reached.
func (c Clock) Expired() bool { return c.limit > 0 && c.tick >= c.limit }

// Elapsed returns the elapsed time in seconds.
func (c Clock) Elapsed() float64 { return c.rt.Seconds(c.tick) }

// Remaining returns the seconds left before the limit, or 0 without one.
func (c Clock) Remaining() float64 {
	if c.limit == 0 || c.tick >= c.limit {
		return 0
	}
	return c.rt.Seconds(c.limit - c.tick)
}

// Ticks converts seconds using the clock's tick rate.
func (c Clock) Ticks(seconds float64) int { return c.rt.Ticks(seconds) }

// Higher decides between the two sides of a match on a "bigger is better"
// measure such as health or altitude. In vs-bot modes the humans' best
// value stands for their side; equal values go to the bot when tieToBot is
// set and are a draw otherwise.
func Higher(mode match.GameMode, values map[match.PlayerID]float64, tieToBot bool) match.PlayerID {
	if mode == match.ModePlayerVsPlayer {
		switch a, b := values[match.Player1], values[match.Player2]; {
		case a > b:
			return match.Player1
		case b > a:
			return match.Player2
		default:
			return match.NoPlayer
		}
	}

	best := bestHuman(mode, values)
	switch h, bot := values[best], values[match.Bot]; {
	case h > bot:
		return best
	case bot > h || tieToBot:
		return match.Bot
	default:
		return match.NoPlayer
	}
}

// Survivor returns the winner when loser is eliminated first.
func Survivor(mode match.GameMode, loser match.PlayerID, values map[match.PlayerID]float64) match.PlayerID {
	switch {
	case mode == match.ModePlayerVsPlayer && loser == match.Player1:
		return match.Player2
	case mode == match.ModePlayerVsPlayer:
		return match.Player1
	case loser == match.Bot:
		return bestHuman(mode, values)
	default:
		return match.Bot
	}
}

// bestHuman returns the human with the highest value, player1 on ties.
func bestHuman(mode match.GameMode, values map[match.PlayerID]float64) match.PlayerID {
	if mode.HasPlayer2() && values[match.Player2] > values[match.Player1] {
		return match.Player2
	}
	return match.Player1
}

// Contestants returns the contestants taking part in mode, humans first.
func Contestants(mode match.GameMode) []match.PlayerID {
	ids := mode.Humans()
	if mode.HasBot() {
		ids = append(ids, match.Bot)
	}
	return ids
}
