package match

// Phase is the current stage within a round.
type Phase int

const (
	PhaseRoundIntro Phase = iota // "Round N" banner before the race
	PhaseRacing
	PhaseShowingRewards
	PhaseInCombat
	PhaseInMinigameTicTacToe
	PhaseInMinigameLavaSurvival
	PhaseMatchComplete
)

var phaseNames = map[Phase]string{
	PhaseRoundIntro:             "round_intro",
	PhaseRacing:                 "racing",
	PhaseShowingRewards:         "showing_rewards",
	PhaseInCombat:               "combat",
	PhaseInMinigameTicTacToe:    "minigame_tictactoe",
	PhaseInMinigameLavaSurvival: "minigame_lava",
	PhaseMatchComplete:          "match_complete",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// IsActivity reports whether the phase is a combat or mini-game phase.
func (p Phase) IsActivity() bool {
	switch p {
	case PhaseInCombat, PhaseInMinigameTicTacToe, PhaseInMinigameLavaSurvival:
		return true
	}
	return false
}

// Activity is what follows the rewards screen in a round.
type Activity int

const (
	// ActivityNone means the round ends with the race.
	ActivityNone Activity = iota
	ActivityCombat
	ActivityTicTacToe
	ActivityLavaSurvival

	// ActivityFinal marks the last round: the match ends after its race.
	ActivityFinal
)

func (a Activity) String() string {
	switch a {
	case ActivityCombat:
		return "combat"
	case ActivityTicTacToe:
		return "tictactoe"
	case ActivityLavaSurvival:
		return "lava"
	case ActivityFinal:
		return "final"
	default:
		return "none"
	}
}

// Phase returns the phase an activity is played in.
func (a Activity) Phase() Phase {
	switch a {
	case ActivityCombat:
		return PhaseInCombat
	case ActivityTicTacToe:
		return PhaseInMinigameTicTacToe
	case ActivityLavaSurvival:
		return PhaseInMinigameLavaSurvival
	case ActivityFinal:
		return PhaseMatchComplete
	default:
		return PhaseShowingRewards
	}
}

// roundActivities binds activities to absolute round numbers. It does not
// scale with the match length: rounds past the table fall back to combat.
var roundActivities = map[int]Activity{
	1: ActivityCombat,
	2: ActivityTicTacToe,
	3: ActivityLavaSurvival,
	4: ActivityNone,
}

// ActivityFor returns the activity played after the race of round.
// The final round always maps to ActivityFinal.
func ActivityFor(round, totalRounds int) Activity {
	if round == totalRounds {
		return ActivityFinal
	}
	if a, ok := roundActivities[round]; ok {
		return a
	}
	return ActivityCombat
}

// IsBossRound reports whether round is the final boss encounter.
func IsBossRound(round, totalRounds int) bool {
	return round == totalRounds
}
