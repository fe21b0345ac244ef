package session

import (
	"errors"

	"github.com/vovakirdan/cyberjump/internal/match"
)

// ResultSaver is an interface for saving finished matches.
// Implemented by storage.Store.
type ResultSaver interface {
	SaveMatchResult(result MatchResult) error
	SaveScoreboardEntry(pseudo string, score int, bossTime float64) error
}

// MatchResult summarizes a finished match for the history and the scoreboard.
type MatchResult struct {
	MatchID  string
	Mode     match.GameMode
	Rounds   int
	Pseudo   string
	Scores   map[match.PlayerID]int
	Wins     map[match.PlayerID]int
	Winner   string // match.MatchWinner name, or "lost" after a boss timeout
	Lost     bool
	BossTime float64 // player1's final race time; the limit on a timeout
	Duration float64 // seconds of play in this session
}

// WinnerLost is the Winner value of a match lost by timeout.
const WinnerLost = "lost"

// resultOf builds the result of a completed machine.
func resultOf(m *match.Machine, id, pseudo string, bossTime, duration float64) MatchResult {
	r := MatchResult{
		MatchID:  id,
		Mode:     m.Mode(),
		Rounds:   m.TotalRounds(),
		Pseudo:   pseudo,
		Scores:   make(map[match.PlayerID]int, len(match.Contestants)),
		Wins:     make(map[match.PlayerID]int, len(match.Contestants)),
		Lost:     m.MatchLost(),
		BossTime: bossTime,
		Duration: duration,
	}
	for _, p := range match.Contestants {
		r.Scores[p] = m.Score(p)
		r.Wins[p] = m.RoundWins(p)
	}

	w, err := m.Winner()
	switch {
	case errors.Is(err, match.ErrMatchLost):
		r.Winner = WinnerLost
	case err != nil:
		r.Winner = match.WinnerTie.String()
	default:
		r.Winner = w.String()
	}
	return r
}
