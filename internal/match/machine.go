package match

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Points awarded per outcome.
const (
	RacePoints     = 1
	ActivityPoints = 5
)

// RaceTimes carries finish times in seconds. A time the mode needs must be
// positive; times of contestants not in the mode are ignored.
type RaceTimes struct {
	Player1 float64
	Player2 float64
	Bot     float64
}

// RaceOutcome is the evaluated result of the current round's race.
type RaceOutcome struct {
	Times  RaceTimes
	Winner PlayerID // NoPlayer on a tie
}

// ResumeState is the subset of match state that survives a restart.
type ResumeState struct {
	CurrentRound  int
	Player1Wins   int
	BotWins       int
	MatchComplete bool
}

// Snapshot is a read-only copy of the match state for HUDs and saving.
type Snapshot struct {
	Mode        GameMode
	TotalRounds int
	Round       int
	Phase       Phase
	Activity    Activity
	Scores      map[PlayerID]int
	Wins        map[PlayerID]int
	Rewards     map[PlayerID]Reward
	LastRace    *RaceOutcome
	MatchLost   bool
}

// Machine is the single authority over round, phase and score state.
type Machine struct {
	rules RewardRules
	rng   *rand.Rand

	cfg     Config
	started bool

	round     int
	phase     Phase
	scores    map[PlayerID]int
	wins      map[PlayerID]int
	matchLost bool

	rewards      map[PlayerID]Reward
	lastRace     *RaceOutcome
	rewardsShown bool
}

// NewMachine creates an idle machine. A nil rng is seeded from the clock.
func NewMachine(rules RewardRules, rng *rand.Rand) *Machine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // gameplay randomness
	}
	return &Machine{
		rules: rules,
		rng:   rng,
	}
}

// Start begins a fresh match at round 1. It never touches persisted
// progress; callers reset that themselves.
func (m *Machine) Start(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	m.started = true
	m.round = 1
	m.phase = PhaseRoundIntro
	m.scores = make(map[PlayerID]int, len(Contestants))
	m.wins = make(map[PlayerID]int, len(Contestants))
	m.matchLost = false
	m.resetRound()
	return nil
}

// Resume restores a match from persisted progress. Only player1 and bot
// win tallies are persisted; player2 wins and all scores restart at zero.
// An unfinished match resumes directly in the race of the saved round.
func (m *Machine) Resume(cfg Config, st ResumeState) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if st.CurrentRound < 1 || st.CurrentRound > cfg.TotalRounds+1 {
		return fmt.Errorf("%w: round %d of %d", ErrInvalidProgress, st.CurrentRound, cfg.TotalRounds)
	}
	if st.CurrentRound > cfg.TotalRounds && !st.MatchComplete {
		return fmt.Errorf("%w: round %d past the end of an unfinished match", ErrInvalidProgress, st.CurrentRound)
	}
	if st.Player1Wins < 0 || st.BotWins < 0 {
		return fmt.Errorf("%w: negative win tally", ErrInvalidProgress)
	}

	if err := m.Start(cfg); err != nil {
		return err
	}
	m.round = st.CurrentRound
	m.wins[Player1] = st.Player1Wins
	m.wins[Bot] = st.BotWins
	if st.MatchComplete {
		m.phase = PhaseMatchComplete
	} else {
		m.phase = PhaseRacing
	}
	return nil
}

// BeginRace leaves the round intro and starts the race.
func (m *Machine) BeginRace() error {
	if err := m.require("BeginRace", PhaseRoundIntro); err != nil {
		return err
	}
	m.phase = PhaseRacing
	return nil
}

// CompleteRace records finish times, awards the race point and builds the
// round's pending rewards.
//
// Solo matches compare player1 against the bot. Coop and PvP matches
// compare the two humans; in coop the bot's time is not consulted.
func (m *Machine) CompleteRace(times RaceTimes) (RaceOutcome, error) {
	if err := m.require("CompleteRace", PhaseRacing); err != nil {
		return RaceOutcome{}, err
	}

	var rival PlayerID
	var rivalTime float64
	if m.cfg.Mode == ModeSoloVsBot {
		rival, rivalTime = Bot, times.Bot
	} else {
		rival, rivalTime = Player2, times.Player2
	}
	if !validTime(times.Player1) {
		return RaceOutcome{}, fmt.Errorf("%w: %s", ErrMissingRaceTime, Player1)
	}
	if !validTime(rivalTime) {
		return RaceOutcome{}, fmt.Errorf("%w: %s", ErrMissingRaceTime, rival)
	}

	place := compareTimes(times.Player1, rivalTime)
	outcome := RaceOutcome{Times: times}
	switch place {
	case placeFaster:
		outcome.Winner = Player1
	case placeSlower:
		outcome.Winner = rival
	}
	if outcome.Winner != NoPlayer {
		m.wins[outcome.Winner]++
		m.scores[outcome.Winner] += RacePoints
	}

	m.rewards = make(map[PlayerID]Reward, 2)
	m.rewards[Player1] = m.makeReward(place)
	if rival == Player2 {
		m.rewards[Player2] = m.makeReward(invert(place))
	}

	m.lastRace = &outcome
	m.rewardsShown = false
	m.phase = PhaseShowingRewards
	return outcome, nil
}

func (m *Machine) makeReward(p placement) Reward {
	r := Reward{Coins: m.rules.coins(p)}
	if item, ok := m.rules.rollItem(m.rng); ok {
		r.Items = append(r.Items, item)
	}
	return r
}

// ShowRewards closes the rewards screen and moves to the round's activity.
// Rounds without an activity stay in PhaseShowingRewards until
// SkipToNextRound is called. It may be called once per race.
func (m *Machine) ShowRewards() (Phase, error) {
	if err := m.require("ShowRewards", PhaseShowingRewards); err != nil {
		return m.phase, err
	}
	if m.rewardsShown {
		return m.phase, fmt.Errorf("%w: ShowRewards already called for round %d", ErrInvalidPhase, m.round)
	}
	m.rewardsShown = true
	m.phase = ActivityFor(m.round, m.cfg.TotalRounds).Phase()
	return m.phase, nil
}

// SkipToNextRound advances from a round that has no activity straight to
// the next round's intro.
func (m *Machine) SkipToNextRound() error {
	if err := m.require("SkipToNextRound", PhaseShowingRewards); err != nil {
		return err
	}
	if !m.rewardsShown {
		return fmt.Errorf("%w: SkipToNextRound before ShowRewards", ErrInvalidPhase)
	}
	if a := ActivityFor(m.round, m.cfg.TotalRounds); a != ActivityNone {
		return fmt.Errorf("%w: round %d has activity %s", ErrInvalidPhase, m.round, a)
	}
	m.advance()
	return nil
}

// CompleteActivity records the outcome of the round's combat or mini-game.
// NoPlayer means a draw: nobody scores but the round still advances.
func (m *Machine) CompleteActivity(winner PlayerID) error {
	if err := m.require("CompleteActivity", PhaseInCombat, PhaseInMinigameTicTacToe, PhaseInMinigameLavaSurvival); err != nil {
		return err
	}
	if winner != NoPlayer {
		if !m.cfg.Mode.Participates(winner) {
			return fmt.Errorf("%w: %s in %s match", ErrInvalidWinner, winner, m.cfg.Mode)
		}
		m.wins[winner]++
		m.scores[winner] += ActivityPoints
	}
	m.advance()
	return nil
}

// ForceDefeatByTimeout ends the match as lost. No points are awarded and
// the match cannot be continued.
func (m *Machine) ForceDefeatByTimeout() error {
	if !m.started {
		return fmt.Errorf("%w: ForceDefeatByTimeout before match start", ErrInvalidPhase)
	}
	if m.phase == PhaseMatchComplete {
		return fmt.Errorf("%w: ForceDefeatByTimeout after match end", ErrInvalidPhase)
	}
	m.matchLost = true
	m.phase = PhaseMatchComplete
	return nil
}

// Winner compares round-win tallies. Callers must check MatchLost first;
// a lost match returns ErrMatchLost.
func (m *Machine) Winner() (MatchWinner, error) {
	if m.matchLost {
		return WinnerTie, ErrMatchLost
	}
	p1, p2, bot := m.wins[Player1], m.wins[Player2], m.wins[Bot]
	switch m.cfg.Mode {
	case ModePlayerVsPlayer:
		return pick(p1, p2, WinnerPlayer1, WinnerPlayer2), nil
	case ModeCoopVsBot:
		return pick(p1+p2, bot, WinnerPlayers, WinnerBot), nil
	default:
		return pick(p1, bot, WinnerPlayer1, WinnerBot), nil
	}
}

func pick(a, b int, aWins, bWins MatchWinner) MatchWinner {
	switch {
	case a > b:
		return aWins
	case b > a:
		return bWins
	default:
		return WinnerTie
	}
}

// advance moves to the next round or ends the match after the last one.
func (m *Machine) advance() {
	if m.round < m.cfg.TotalRounds {
		m.round++
		m.resetRound()
		m.phase = PhaseRoundIntro
		return
	}
	m.phase = PhaseMatchComplete
}

func (m *Machine) resetRound() {
	m.rewards = make(map[PlayerID]Reward, 2)
	m.lastRace = nil
	m.rewardsShown = false
}

func (m *Machine) require(op string, allowed ...Phase) error {
	if !m.started {
		return fmt.Errorf("%w: %s before match start", ErrInvalidPhase, op)
	}
	for _, p := range allowed {
		if m.phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %s not allowed in %s", ErrInvalidPhase, op, m.phase)
}

func validTime(t float64) bool {
	return t > 0 && !math.IsNaN(t) && !math.IsInf(t, 0)
}

// Started reports whether Start or Resume has been called.
func (m *Machine) Started() bool { return m.started }

// Config returns the match configuration.
func (m *Machine) Config() Config { return m.cfg }

// Mode returns the game mode.
func (m *Machine) Mode() GameMode { return m.cfg.Mode }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Round returns the current 1-indexed round.
func (m *Machine) Round() int { return m.round }

// TotalRounds returns the match length.
func (m *Machine) TotalRounds() int { return m.cfg.TotalRounds }

// Activity returns the activity scheduled after the current round's race.
func (m *Machine) Activity() Activity { return ActivityFor(m.round, m.cfg.TotalRounds) }

// IsBossRound reports whether the current round is the final encounter.
func (m *Machine) IsBossRound() bool { return IsBossRound(m.round, m.cfg.TotalRounds) }

// Score returns the cumulative points of p.
func (m *Machine) Score(p PlayerID) int { return m.scores[p] }

// RoundWins returns the win tally of p.
func (m *Machine) RoundWins(p PlayerID) int { return m.wins[p] }

// MatchLost reports whether the match ended by forced defeat.
func (m *Machine) MatchLost() bool { return m.matchLost }

// IsComplete reports whether the match has ended.
func (m *Machine) IsComplete() bool { return m.started && m.phase == PhaseMatchComplete }

// PendingRewards returns a copy of p's reward for the current round.
func (m *Machine) PendingRewards(p PlayerID) Reward {
	r := m.rewards[p]
	r.Items = append([]Item(nil), r.Items...)
	return r
}

// LastRace returns the current round's race outcome, if the race is over.
func (m *Machine) LastRace() (RaceOutcome, bool) {
	if m.lastRace == nil {
		return RaceOutcome{}, false
	}
	return *m.lastRace, true
}

// ResumeState returns the persistable subset of the state.
func (m *Machine) ResumeState() ResumeState {
	return ResumeState{
		CurrentRound:  m.round,
		Player1Wins:   m.wins[Player1],
		BotWins:       m.wins[Bot],
		MatchComplete: m.IsComplete(),
	}
}

// Snapshot returns a deep copy of the state.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Mode:        m.cfg.Mode,
		TotalRounds: m.cfg.TotalRounds,
		Round:       m.round,
		Phase:       m.phase,
		Activity:    m.Activity(),
		Scores:      make(map[PlayerID]int, len(Contestants)),
		Wins:        make(map[PlayerID]int, len(Contestants)),
		Rewards:     make(map[PlayerID]Reward, len(m.rewards)),
		MatchLost:   m.matchLost,
	}
	for _, p := range Contestants {
		s.Scores[p] = m.scores[p]
		s.Wins[p] = m.wins[p]
	}
	for p := range m.rewards {
		s.Rewards[p] = m.PendingRewards(p)
	}
	if m.lastRace != nil {
		race := *m.lastRace
		s.LastRace = &race
	}
	return s
}
