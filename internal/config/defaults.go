package config

import (
	_ "embed"
)

//go:embed defaults/cyberjump.yaml
var defaultCyberJumpYAML []byte

// DefaultConfig returns the hard-coded campaign configuration.
// It mirrors defaults/cyberjump.yaml and is used when the embed cannot be parsed.
func DefaultConfig() CyberJumpConfig {
	return CyberJumpConfig{
		Campaign: CampaignConfig{
			DefaultRounds:    5,
			IntroSeconds:     3,
			RewardsSeconds:   3,
			BossLimitSeconds: 195,
		},
		Rewards: RewardsConfig{
			WinnerCoins:    100,
			LoserCoins:     50,
			TieCoins:       75,
			ItemDropChance: 0.3,
			Items:          []string{"speed_boost", "shield", "double_jump", "slow_time"},
		},
		Race: RaceConfig{
			TrackLength:      60,
			Stride:           1,
			TimeLimitSeconds: 60,
		},
		Combat: CombatConfig{
			BaseHealth:       100,
			ShieldHealth:     120,
			Damage:           20,
			BoostedDamage:    25,
			CooldownSeconds:  0.5,
			TimeLimitSeconds: 30,
		},
		TicTacToe: TicTacToeConfig{
			MaxMovesPerSide: 3,
			BotDelaySeconds: 0.5,
		},
		Lava: LavaConfig{
			StartAltitude:    10,
			MaxAltitude:      20,
			SinkPerSecond:    2,
			JumpHeight:       3,
			MaxJumps:         2,
			LandingSeconds:   0.75,
			TimeLimitSeconds: 30,
		},
		Bots: BotPresets{
			Easy: BotConfig{
				RaceMinFactor: 1.1,
				RaceMaxFactor: 1.4,
				AttackChance:  0.01,
				AttackDamage:  10,
				LavaReaction:  0.05,
			},
			Medium: BotConfig{
				RaceMinFactor: 0.9,
				RaceMaxFactor: 1.2,
				AttackChance:  0.02,
				AttackDamage:  15,
				LavaReaction:  0.1,
			},
			Hard: BotConfig{
				RaceMinFactor: 0.7,
				RaceMaxFactor: 1.0,
				AttackChance:  0.03,
				AttackDamage:  20,
				LavaReaction:  0.25,
			},
		},
		Storage: StorageConfig{
			DBPath:       "~/.cyberjump/scores.db",
			ProgressPath: "~/.cyberjump/progress.json",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultCyberJumpYAML
}
