// Package match implements the competitive match state machine: rounds,
// phases, score accrual and the round -> activity policy.
//
// A Machine is owned by exactly one driver. It is not safe for concurrent
// use; all transitions happen on ticks of a single game loop.
package match

import (
	"errors"
	"fmt"
)

// PlayerID identifies a contestant in a match.
type PlayerID int

const (
	NoPlayer PlayerID = iota
	Player1
	Player2
	Bot
)

// Contestants lists every scorable contestant in a stable order.
var Contestants = []PlayerID{Player1, Player2, Bot}

// String returns the identifier used in logs and persisted data.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	case Bot:
		return "bot"
	default:
		return "none"
	}
}

// ParsePlayerID parses an identifier produced by String.
func ParsePlayerID(s string) (PlayerID, error) {
	switch s {
	case "player1":
		return Player1, nil
	case "player2":
		return Player2, nil
	case "bot":
		return Bot, nil
	}
	return NoPlayer, fmt.Errorf("match: unknown player %q", s)
}

// GameMode defines who takes part in a match.
type GameMode int

const (
	// ModeSoloVsBot is one human against the bot.
	ModeSoloVsBot GameMode = iota

	// ModeCoopVsBot is two humans against the bot.
	ModeCoopVsBot

	// ModePlayerVsPlayer is two humans against each other.
	ModePlayerVsPlayer
)

// Modes lists all game modes in menu order.
var Modes = []GameMode{ModeSoloVsBot, ModeCoopVsBot, ModePlayerVsPlayer}

// String returns the short identifier of the mode.
func (m GameMode) String() string {
	switch m {
	case ModeSoloVsBot:
		return "solo"
	case ModeCoopVsBot:
		return "coop"
	case ModePlayerVsPlayer:
		return "pvp"
	default:
		return "unknown"
	}
}

// Title returns a human-readable name for the mode.
func (m GameMode) Title() string {
	switch m {
	case ModeSoloVsBot:
		return "Player vs Bot"
	case ModeCoopVsBot:
		return "Two Players vs Bot"
	case ModePlayerVsPlayer:
		return "Player vs Player"
	default:
		return "Unknown"
	}
}

// ParseGameMode parses a mode identifier.
func ParseGameMode(s string) (GameMode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("match: unknown game mode %q", s)
}

// HasBot reports whether the bot takes part in the mode.
func (m GameMode) HasBot() bool {
	return m != ModePlayerVsPlayer
}

// HasPlayer2 reports whether a second human takes part in the mode.
func (m GameMode) HasPlayer2() bool {
	return m != ModeSoloVsBot
}

// Humans returns the human contestants of the mode.
func (m GameMode) Humans() []PlayerID {
	if m.HasPlayer2() {
		return []PlayerID{Player1, Player2}
	}
	return []PlayerID{Player1}
}

// Participates reports whether p takes part in a match of this mode.
func (m GameMode) Participates(p PlayerID) bool {
	switch p {
	case Player1:
		return true
	case Player2:
		return m.HasPlayer2()
	case Bot:
		return m.HasBot()
	}
	return false
}

// Round counts offered by the campaign.
const (
	ShortMatch = 5
	LongMatch  = 10
)

// Config is fixed for the lifetime of a match.
type Config struct {
	Mode        GameMode
	TotalRounds int
}

// Validate checks that the configuration describes a playable match.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeSoloVsBot, ModeCoopVsBot, ModePlayerVsPlayer:
	default:
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, int(c.Mode))
	}
	if c.TotalRounds != ShortMatch && c.TotalRounds != LongMatch {
		return fmt.Errorf("%w: %d rounds (want %d or %d)", ErrInvalidConfig, c.TotalRounds, ShortMatch, LongMatch)
	}
	return nil
}

// MatchWinner is the overall result of a finished match.
type MatchWinner int

const (
	WinnerTie MatchWinner = iota
	WinnerPlayer1
	WinnerPlayer2
	WinnerBot
	WinnerPlayers // coop team
)

func (w MatchWinner) String() string {
	switch w {
	case WinnerPlayer1:
		return "player1"
	case WinnerPlayer2:
		return "player2"
	case WinnerBot:
		return "bot"
	case WinnerPlayers:
		return "players"
	default:
		return "tie"
	}
}

var (
	// ErrInvalidPhase is returned when an operation is called in a phase
	// that does not allow it.
	ErrInvalidPhase = errors.New("match: invalid phase")

	// ErrInvalidConfig is returned for unsupported modes or round counts.
	ErrInvalidConfig = errors.New("match: invalid config")

	// ErrInvalidProgress is returned when a resume record is inconsistent.
	ErrInvalidProgress = errors.New("match: invalid progress")

	// ErrMissingRaceTime is returned when a race time required by the mode
	// is absent.
	ErrMissingRaceTime = errors.New("match: missing race time")

	// ErrMatchLost is returned by Winner after a forced defeat.
	ErrMatchLost = errors.New("match: match lost by timeout")

	// ErrInvalidWinner is returned when a winner does not take part in the match.
	ErrInvalidWinner = errors.New("match: invalid winner")
)
