// Package combat implements the arena duel played after round 1 and in
// every round without a mini-game.
//
// Hits always land; there is no geometry. Each fighter has an attack
// cooldown. A shield raises maximum health and a speed boost raises damage.
package combat

import (
	"math/rand"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
	"github.com/vovakirdan/cyberjump/internal/registry"
)

func init() {
	registry.Register(match.ActivityCombat.String(), "Arena Duel", func(p minigame.Params) minigame.Provider {
		return New(p)
	})
}

// Fighter is one contestant's combat state.
type Fighter struct {
	Health    int
	MaxHealth int
	Damage    int
	cooldown  int
}

// Alive reports whether the fighter still has health.
func (f Fighter) Alive() bool { return f.Health > 0 }

// Ready reports whether the fighter can attack this tick.
func (f Fighter) Ready() bool { return f.cooldown == 0 }

func (f *Fighter) hit(damage int) {
	f.Health -= damage
	if f.Health < 0 {
		f.Health = 0
	}
}

// Combat is a single duel.
type Combat struct {
	mode     match.GameMode
	bot      config.BotConfig
	rng      *rand.Rand
	clock    minigame.Clock
	cooldown int

	fighters  map[match.PlayerID]*Fighter
	lastHuman match.PlayerID // human who hit the bot last
	winner    match.PlayerID
	done      bool
}

// New creates a duel for the params' mode, applying this round's items.
func New(p minigame.Params) *Combat {
	cfg := p.Config.Combat
	c := &Combat{
		mode:     p.Mode,
		bot:      p.Bot,
		rng:      p.RNG(),
		clock:    minigame.NewClock(p.Runtime, cfg.TimeLimitSeconds),
		fighters: make(map[match.PlayerID]*Fighter, 3),
	}
	c.cooldown = c.clock.Ticks(cfg.CooldownSeconds)

	for _, id := range p.Mode.Humans() {
		f := &Fighter{MaxHealth: cfg.BaseHealth, Damage: cfg.Damage}
		if p.Has(id, match.ItemShield) {
			f.MaxHealth = cfg.ShieldHealth
		}
		if p.Has(id, match.ItemSpeedBoost) {
			f.Damage = cfg.BoostedDamage
		}
		f.Health = f.MaxHealth
		c.fighters[id] = f
	}
	if p.Mode.HasBot() {
		c.fighters[match.Bot] = &Fighter{
			Health:    cfg.BaseHealth,
			MaxHealth: cfg.BaseHealth,
			Damage:    p.Bot.AttackDamage,
		}
	}
	return c
}

// Kind implements minigame.Provider.
func (c *Combat) Kind() string { return match.ActivityCombat.String() }

// Step implements minigame.Provider.
func (c *Combat) Step(in core.MultiInputFrame) {
	if c.done {
		return
	}
	c.clock.Advance()
	for _, f := range c.fighters {
		if f.cooldown > 0 {
			f.cooldown--
		}
	}

	for _, id := range c.mode.Humans() {
		f := c.fighters[id]
		if !f.Alive() || !f.Ready() || !in.Player(id).Has(core.ActionAttack) {
			continue
		}
		target := c.target(id)
		if !c.fighters[target].Alive() {
			continue
		}
		c.fighters[target].hit(f.Damage)
		f.cooldown = c.cooldown
		if target == match.Bot {
			c.lastHuman = id
		}
	}

	if bot, ok := c.fighters[match.Bot]; ok && bot.Alive() && bot.Ready() && c.rng.Float64() < c.bot.AttackChance {
		// the bot hits every human at once
		for _, id := range c.mode.Humans() {
			c.fighters[id].hit(bot.Damage)
		}
		bot.cooldown = c.cooldown
	}

	c.resolve()
}

func (c *Combat) target(attacker match.PlayerID) match.PlayerID {
	if c.mode == match.ModePlayerVsPlayer {
		if attacker == match.Player1 {
			return match.Player2
		}
		return match.Player1
	}
	return match.Bot
}

func (c *Combat) resolve() {
	switch c.mode {
	case match.ModePlayerVsPlayer:
		if !c.fighters[match.Player1].Alive() {
			c.finish(match.Player2)
		} else if !c.fighters[match.Player2].Alive() {
			c.finish(match.Player1)
		}
	default:
		if !c.fighters[match.Bot].Alive() {
			c.finish(c.lastHuman)
			return
		}
		humansDown := true
		for _, id := range c.mode.Humans() {
			if c.fighters[id].Alive() {
				humansDown = false
			}
		}
		if humansDown {
			c.finish(match.Bot)
		}
	}
	if c.done || !c.clock.Expired() {
		return
	}

	// timeout: most health wins, the bot keeps ties
	health := make(map[match.PlayerID]float64, len(c.fighters))
	for id, f := range c.fighters {
		health[id] = float64(f.Health)
	}
	c.finish(minigame.Higher(c.mode, health, true))
}

func (c *Combat) finish(winner match.PlayerID) {
	c.winner = winner
	c.done = true
}

// Done implements minigame.Provider.
func (c *Combat) Done() bool { return c.done }

// Winner implements minigame.Provider.
func (c *Combat) Winner() (match.PlayerID, bool) { return c.winner, c.done }

// Elapsed implements minigame.Provider.
func (c *Combat) Elapsed() float64 { return c.clock.Elapsed() }

// Remaining returns the seconds left before the timeout.
func (c *Combat) Remaining() float64 { return c.clock.Remaining() }

// Fighter returns a copy of a contestant's state.
func (c *Combat) Fighter(id match.PlayerID) (Fighter, bool) {
	f, ok := c.fighters[id]
	if !ok {
		return Fighter{}, false
	}
	return *f, true
}
