// Package session drives one match: it owns the match machine, runs the
// round timers, plays the race and the activities through the provider
// registry, and persists progress and results.
//
// A Session is stepped once per tick by its front-end and is not safe for
// concurrent use.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame"
	"github.com/vovakirdan/cyberjump/internal/progress"
	"github.com/vovakirdan/cyberjump/internal/registry"
)

// Options select the match to play.
type Options struct {
	Mode       match.GameMode
	Rounds     int // 0 uses the campaign default
	Difficulty config.DifficultyPreset
	Pseudo     string // scoreboard name; empty skips the scoreboard
	Fresh      bool   // discard saved progress instead of continuing
}

// Deps are the collaborators of a session. Every field is optional except Game.
type Deps struct {
	Game     config.CyberJumpConfig
	Runtime  core.RuntimeConfig
	Progress *progress.Store
	Results  ResultSaver
	Logger   *log.Logger
	Rand     *rand.Rand
}

// timed is implemented by the race provider.
type timed interface {
	Times() match.RaceTimes
}

// Session is a running match.
type Session struct {
	opts    Options
	cfg     config.CyberJumpConfig
	rt      core.RuntimeConfig
	bot     config.BotConfig
	store   *progress.Store
	results ResultSaver
	logger  *log.Logger
	rng     *rand.Rand

	m       *match.Machine
	matchID string
	resumed bool

	introTicks   int
	rewardsTicks int
	bossLimit    float64

	provider minigame.Provider
	timer    int // ticks spent in the current timed screen
	ticks    int
	bossTime float64

	events []Event
	result *MatchResult
}

// New creates a session and starts or resumes its match.
//
// Persisted modes continue their saved progress unless opts.Fresh is set.
// A saved match that already ended opens on its end screen and keeps its
// record; only opts.Fresh or a record that fails validation resets it.
func New(d Deps, opts Options) (*Session, error) {
	if err := d.Game.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if opts.Rounds == 0 {
		opts.Rounds = d.Game.Campaign.DefaultRounds
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyMedium
	}

	s := &Session{
		opts:    opts,
		cfg:     d.Game,
		rt:      d.Runtime,
		bot:     d.Game.Bots.Preset(opts.Difficulty),
		store:   d.Progress,
		results: d.Results,
		logger:  d.Logger,
		rng:     d.Rand,
		matchID: uuid.NewString(),
	}
	if s.rt.TickRate <= 0 {
		s.rt = core.DefaultConfig()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // gameplay randomness
	}
	s.introTicks = s.rt.Ticks(s.cfg.Campaign.IntroSeconds)
	s.rewardsTicks = s.rt.Ticks(s.cfg.Campaign.RewardsSeconds)
	s.bossLimit = s.cfg.Campaign.BossLimitSeconds
	s.m = match.NewMachine(s.cfg.Rewards.Rules(), s.rng)

	if err := s.begin(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) begin() error {
	cfg := match.Config{Mode: s.opts.Mode, TotalRounds: s.opts.Rounds}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if s.persisted() {
		if s.opts.Fresh {
			s.resetProgress()
		} else if rec, ok := s.store.Load(cfg.Mode); ok {
			if err := s.m.Resume(rec.Config(cfg.Mode), rec.ResumeState()); err != nil {
				s.logger.Warn("cannot resume saved match", "err", err)
				s.resetProgress()
			} else {
				s.resumed = true
				s.opts.Rounds = rec.NumRounds
				s.logger.Info("match resumed", "mode", cfg.Mode, "round", rec.CurrentRound,
					"rounds", rec.NumRounds, "player1_wins", rec.Player1Wins, "bot_wins", rec.BotWins,
					"complete", rec.MatchComplete)
				if rec.MatchComplete {
					s.restoreResult()
					return nil
				}
				s.emitRound()
				return nil
			}
		}
	}

	if err := s.m.Start(cfg); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.logger.Info("match started", "id", s.matchID, "mode", cfg.Mode, "rounds", cfg.TotalRounds,
		"difficulty", s.opts.Difficulty)
	s.emitRound()
	return nil
}

// Step advances the match by one tick. Steps after the result is recorded
// are ignored.
func (s *Session) Step(in core.MultiInputFrame) {
	if s.result != nil {
		return
	}
	s.ticks++

	switch ph := s.m.Phase(); {
	case ph == match.PhaseRoundIntro:
		s.timer++
		if s.timer >= s.introTicks {
			s.check(s.m.BeginRace())
			s.timer = 0
		}
	case ph == match.PhaseRacing:
		s.stepRace(in)
	case ph == match.PhaseShowingRewards:
		s.timer++
		if s.timer >= s.rewardsTicks {
			s.closeRewards()
		}
	case ph.IsActivity():
		s.stepActivity(in)
	}

	if s.m.Phase() == match.PhaseMatchComplete {
		s.finish()
	}
}

func (s *Session) stepRace(in core.MultiInputFrame) {
	if s.provider == nil {
		p, err := s.create(registry.KindRace)
		if err != nil {
			s.fail(err)
			return
		}
		s.provider = p
	}
	s.provider.Step(in)

	if !s.provider.Done() {
		if s.m.IsBossRound() && s.bossLimit > 0 && s.provider.Elapsed() >= s.bossLimit {
			s.logger.Info("boss race timed out", "limit", s.bossLimit)
			s.bossTime = s.bossLimit
			s.provider = nil
			s.check(s.m.ForceDefeatByTimeout())
			s.emit(BossTimeoutEvent{Limit: s.bossLimit})
		}
		return
	}

	race, ok := s.provider.(timed)
	if !ok {
		s.fail(fmt.Errorf("session: provider %q reports no race times", s.provider.Kind()))
		return
	}
	times := race.Times()
	s.provider = nil

	outcome, err := s.m.CompleteRace(times)
	if err != nil {
		s.fail(err)
		return
	}
	if s.m.IsBossRound() {
		s.bossTime = times.Player1
	}
	s.timer = 0

	rewards := make(map[match.PlayerID]match.Reward, 2)
	for _, id := range s.m.Mode().Humans() {
		rewards[id] = s.m.PendingRewards(id)
	}
	s.logger.Debug("race finished", "round", s.m.Round(), "winner", outcome.Winner,
		"player1", times.Player1, "player2", times.Player2, "bot", times.Bot)
	s.emit(RaceFinishedEvent{Round: s.m.Round(), Outcome: outcome, Rewards: rewards})
}

func (s *Session) closeRewards() {
	s.timer = 0
	next, err := s.m.ShowRewards()
	if err != nil {
		s.fail(err)
		return
	}

	switch {
	case next.IsActivity():
		a := s.m.Activity()
		p, err := s.createActivity(a)
		if err != nil {
			s.fail(err)
			return
		}
		s.provider = p
		s.emit(ActivityStartedEvent{Round: s.m.Round(), Activity: a})
	case next == match.PhaseShowingRewards:
		if err := s.m.SkipToNextRound(); err != nil {
			s.fail(err)
			return
		}
		s.save()
		s.emitRound()
	}
}

func (s *Session) stepActivity(in core.MultiInputFrame) {
	if s.provider == nil {
		p, err := s.createActivity(s.m.Activity())
		if err != nil {
			s.fail(err)
			return
		}
		s.provider = p
	}
	s.provider.Step(in)
	if !s.provider.Done() {
		return
	}

	winner, _ := s.provider.Winner()
	a, round := s.m.Activity(), s.m.Round()
	s.provider = nil
	if err := s.m.CompleteActivity(winner); err != nil {
		s.fail(err)
		return
	}
	s.save()
	s.logger.Debug("activity finished", "round", round, "activity", a, "winner", winner)
	s.emit(ActivityFinishedEvent{Round: round, Activity: a, Winner: winner})
	if s.m.Phase() == match.PhaseRoundIntro {
		s.emitRound()
	}
}

func (s *Session) params() minigame.Params {
	rewards := make(map[match.PlayerID]match.Reward, 2)
	for _, id := range s.m.Mode().Humans() {
		rewards[id] = s.m.PendingRewards(id)
	}
	return minigame.Params{
		Mode:    s.m.Mode(),
		Config:  s.cfg,
		Bot:     s.bot,
		Rewards: rewards,
		Runtime: s.rt,
		Rand:    s.rng,
		Boss:    s.m.IsBossRound(),
	}
}

func (s *Session) create(kind string) (minigame.Provider, error) {
	p, err := registry.Create(kind, s.params())
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return p, nil
}

func (s *Session) createActivity(a match.Activity) (minigame.Provider, error) {
	p, err := registry.CreateActivity(a, s.params())
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return p, nil
}

// finish records the result once the machine reports the match complete.
func (s *Session) finish() {
	if s.result != nil {
		return
	}
	s.save()

	bossTime := s.bossTime
	if s.m.MatchLost() {
		bossTime = s.bossLimit
	}
	r := resultOf(s.m, s.matchID, s.opts.Pseudo, bossTime, s.rt.Seconds(s.ticks))
	s.result = &r
	s.provider = nil

	if s.results != nil {
		if s.m.Mode() == match.ModeSoloVsBot && s.opts.Pseudo != "" {
			if err := s.results.SaveScoreboardEntry(s.opts.Pseudo, r.Scores[match.Player1], bossTime); err != nil {
				s.logger.Error("cannot save scoreboard entry", "err", err)
			}
		}
		if err := s.results.SaveMatchResult(r); err != nil {
			s.logger.Error("cannot save match result", "id", r.MatchID, "err", err)
		}
	}
	s.logger.Info("match ended", "id", r.MatchID, "winner", r.Winner,
		"player1", r.Scores[match.Player1], "player2", r.Scores[match.Player2], "bot", r.Scores[match.Bot])
	s.emit(MatchEndedEvent{Result: r})
}

// restoreResult shows the end of a saved match that had already finished.
// The record is kept and nothing is written: the scoreboard and the history
// got their rows when the match ended.
func (s *Session) restoreResult() {
	r := resultOf(s.m, s.matchID, s.opts.Pseudo, 0, 0)
	s.result = &r
	s.emit(MatchEndedEvent{Result: r})
}

func (s *Session) persisted() bool {
	return s.store != nil && progress.Persisted(s.opts.Mode)
}

func (s *Session) save() {
	if !s.persisted() {
		return
	}
	if err := s.store.Save(s.m.Mode(), progress.RecordOf(s.m)); err != nil {
		s.logger.Warn("cannot save progress", "err", err)
	}
}

func (s *Session) resetProgress() {
	if err := s.store.Reset(s.opts.Mode); err != nil {
		s.logger.Warn("cannot reset progress", "err", err)
	}
}

// check logs transition errors that the tick flow makes impossible.
func (s *Session) check(err error) {
	if err != nil {
		s.logger.Error("unexpected transition error", "phase", s.m.Phase(), "err", err)
	}
}

// fail abandons the current provider after an error. The machine keeps its
// phase, so the next tick retries with a new provider.
func (s *Session) fail(err error) {
	s.provider = nil
	if errors.Is(err, match.ErrInvalidPhase) {
		s.check(err)
		return
	}
	s.logger.Error("round step failed", "round", s.m.Round(), "phase", s.m.Phase(), "err", err)
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) emitRound() {
	if s.m.Phase() == match.PhaseMatchComplete {
		return
	}
	s.emit(RoundStartedEvent{
		Round:    s.m.Round(),
		Total:    s.m.TotalRounds(),
		Boss:     s.m.IsBossRound(),
		Activity: s.m.Activity(),
	})
}

// Events returns and clears the events emitted since the last call.
func (s *Session) Events() []Event {
	evts := s.events
	s.events = nil
	return evts
}

// Snapshot returns a copy of the match state for rendering.
func (s *Session) Snapshot() match.Snapshot { return s.m.Snapshot() }

// Provider returns the race or activity being played, nil between them.
func (s *Session) Provider() minigame.Provider { return s.provider }

// MatchID returns the history identifier of the match.
func (s *Session) MatchID() string { return s.matchID }

// Resumed reports whether the match continued saved progress.
func (s *Session) Resumed() bool { return s.resumed }

// Options returns the options the session was created with, defaults applied.
func (s *Session) Options() Options { return s.opts }

// Done reports whether the match result has been recorded.
func (s *Session) Done() bool { return s.result != nil }

// Result returns the match result once the match is over.
func (s *Session) Result() (MatchResult, bool) {
	if s.result == nil {
		return MatchResult{}, false
	}
	return *s.result, true
}

// PhaseRemaining returns the seconds left on the intro or rewards screen.
func (s *Session) PhaseRemaining() float64 {
	var total int
	switch s.m.Phase() {
	case match.PhaseRoundIntro:
		total = s.introTicks
	case match.PhaseShowingRewards:
		total = s.rewardsTicks
	default:
		return 0
	}
	return s.rt.Seconds(core.Max(total-s.timer, 0))
}

// BossRemaining returns the seconds left in the boss race, or 0 outside it.
func (s *Session) BossRemaining() float64 {
	if !s.m.IsBossRound() || s.m.Phase() != match.PhaseRacing || s.bossLimit <= 0 {
		return 0
	}
	elapsed := 0.0
	if s.provider != nil {
		elapsed = s.provider.Elapsed()
	}
	if elapsed >= s.bossLimit {
		return 0
	}
	return s.bossLimit - elapsed
}
