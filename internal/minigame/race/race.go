// Package race implements the sprint that opens every round.
//
// Humans advance one stride per Jump or Right press. The race ends when
// every human has crossed the line or the time limit runs out; runners
// still on the track then finish with the limit as their time. The boss
// race has no limit of its own. The bot does not run: in vs-bot modes its
// time is drawn from player1's time and the difficulty's factor range.
package race

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
	"github.com/vovakirdan/cyberjump/internal/registry"
)

func init() {
	registry.Register(registry.KindRace, "Sprint", func(p minigame.Params) minigame.Provider {
		return New(p)
	})
}

// Runner is a human's state on the track.
type Runner struct {
	Position float64
	Time     float64 // seconds; 0 while running
	TimedOut bool    // stopped by the time limit
}

// Finished reports whether the runner crossed the line.
func (r Runner) Finished() bool { return r.Time > 0 }

// Race is a single sprint.
type Race struct {
	mode  match.GameMode
	cfg   config.RaceConfig
	bot   config.BotConfig
	rng   *rand.Rand
	clock minigame.Clock

	runners map[match.PlayerID]*Runner
	botTime float64
	done    bool
}

// New creates a race for the params' mode.
func New(p minigame.Params) *Race {
	limit := p.Config.Race.TimeLimitSeconds
	if p.Boss {
		limit = 0
	}
	r := &Race{
		mode:    p.Mode,
		cfg:     p.Config.Race,
		bot:     p.Bot,
		rng:     p.RNG(),
		clock:   minigame.NewClock(p.Runtime, limit),
		runners: make(map[match.PlayerID]*Runner, 2),
	}
	for _, id := range p.Mode.Humans() {
		r.runners[id] = &Runner{}
	}
	return r
}

// Kind implements minigame.Provider.
func (r *Race) Kind() string { return registry.KindRace }

// Step implements minigame.Provider.
func (r *Race) Step(in core.MultiInputFrame) {
	if r.done {
		return
	}
	r.clock.Advance()

	allDone := true
	for _, id := range r.mode.Humans() {
		runner := r.runners[id]
		if runner.Finished() {
			continue
		}
		if in.Player(id).Any(core.ActionJump, core.ActionRight) {
			runner.Position += r.cfg.Stride
		}
		if runner.Position >= r.cfg.TrackLength {
			runner.Position = r.cfg.TrackLength
			runner.Time = r.clock.Elapsed()
		}
		if !runner.Finished() && r.clock.Expired() {
			runner.Time = r.clock.Elapsed()
			runner.TimedOut = true
		}
		if !runner.Finished() {
			allDone = false
		}
	}

	if allDone {
		if r.mode.HasBot() {
			r.botTime = SimulateBotTime(r.runners[match.Player1].Time, r.bot, r.rng)
		}
		r.done = true
	}
}

// Done implements minigame.Provider.
func (r *Race) Done() bool { return r.done }

// Winner implements minigame.Provider. Solo races compare player1 with the
// bot; the other modes compare the two humans.
func (r *Race) Winner() (match.PlayerID, bool) {
	if !r.done {
		return match.NoPlayer, false
	}
	t := r.Times()
	rival, rivalTime := match.Player2, t.Player2
	if r.mode == match.ModeSoloVsBot {
		rival, rivalTime = match.Bot, t.Bot
	}
	switch {
	case t.Player1 < rivalTime:
		return match.Player1, true
	case rivalTime < t.Player1:
		return rival, true
	default:
		return match.NoPlayer, true
	}
}

// Elapsed implements minigame.Provider.
func (r *Race) Elapsed() float64 { return r.clock.Elapsed() }

// Remaining returns the seconds left before the time limit, 0 without one.
func (r *Race) Remaining() float64 { return r.clock.Remaining() }

// Times returns the finish times recorded so far.
func (r *Race) Times() match.RaceTimes {
	var t match.RaceTimes
	if p1, ok := r.runners[match.Player1]; ok {
		t.Player1 = p1.Time
	}
	if p2, ok := r.runners[match.Player2]; ok {
		t.Player2 = p2.Time
	}
	t.Bot = r.botTime
	return t
}

// Runner returns a copy of a human's track state.
func (r *Race) Runner(id match.PlayerID) (Runner, bool) {
	runner, ok := r.runners[id]
	if !ok {
		return Runner{}, false
	}
	return *runner, true
}

// Progress returns the fraction of the track a human has covered.
func (r *Race) Progress(id match.PlayerID) float64 {
	runner, ok := r.runners[id]
	if !ok || r.cfg.TrackLength <= 0 {
		return 0
	}
	return runner.Position / r.cfg.TrackLength
}

// SimulateBotTime draws the bot's finish time from the player's time.
func SimulateBotTime(playerTime float64, bot config.BotConfig, rng *rand.Rand) float64 {
	lo, hi := bot.RaceMinFactor, bot.RaceMaxFactor
	if hi < lo {
		lo, hi = hi, lo
	}
	return playerTime * (lo + rng.Float64()*(hi-lo))
}

// FormatTime renders seconds as MM:SS.mmm.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}
