package session

import "github.com/vovakirdan/cyberjump/internal/match"

// Event is something the front-end may want to announce.
// Events are collected during Step and drained with Session.Events.
type Event interface {
	sessionEvent() // Marker method
}

// RoundStartedEvent is emitted when a round intro begins.
type RoundStartedEvent struct {
	Round    int
	Total    int
	Boss     bool
	Activity match.Activity
}

func (RoundStartedEvent) sessionEvent() {}

// RaceFinishedEvent is emitted when a race is resolved.
type RaceFinishedEvent struct {
	Round   int
	Outcome match.RaceOutcome
	Rewards map[match.PlayerID]match.Reward
}

func (RaceFinishedEvent) sessionEvent() {}

// ActivityStartedEvent is emitted when the rewards screen hands over to an activity.
type ActivityStartedEvent struct {
	Round    int
	Activity match.Activity
}

func (ActivityStartedEvent) sessionEvent() {}

// ActivityFinishedEvent is emitted when an activity is resolved.
// Winner is NoPlayer for a draw.
type ActivityFinishedEvent struct {
	Round    int
	Activity match.Activity
	Winner   match.PlayerID
}

func (ActivityFinishedEvent) sessionEvent() {}

// BossTimeoutEvent is emitted when the final race exceeds the time limit.
type BossTimeoutEvent struct {
	Limit float64
}

func (BossTimeoutEvent) sessionEvent() {}

// MatchEndedEvent is emitted once, when the match result is recorded.
type MatchEndedEvent struct {
	Result MatchResult
}

func (MatchEndedEvent) sessionEvent() {}
