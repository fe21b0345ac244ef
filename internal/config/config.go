// Package config provides YAML-based configuration for the competitive
// campaign: timers, reward rules, bot difficulty presets and the tuning of
// every round activity.
package config

import (
	"fmt"

	"github.com/vovakirdan/cyberjump/internal/match"
)

// CyberJumpConfig contains all configuration for a campaign.
type CyberJumpConfig struct {
	Campaign  CampaignConfig  `yaml:"campaign"`
	Rewards   RewardsConfig   `yaml:"rewards"`
	Race      RaceConfig      `yaml:"race"`
	Combat    CombatConfig    `yaml:"combat"`
	TicTacToe TicTacToeConfig `yaml:"tictactoe"`
	Lava      LavaConfig      `yaml:"lava"`
	Bots      BotPresets      `yaml:"bots"`
	Storage   StorageConfig   `yaml:"storage"`
}

// CampaignConfig defines match length and the driver's display timers.
type CampaignConfig struct {
	DefaultRounds    int     `yaml:"default_rounds"`     // 5 or 10
	IntroSeconds     float64 `yaml:"intro_seconds"`      // "Round N" banner
	RewardsSeconds   float64 `yaml:"rewards_seconds"`    // rewards screen before the activity
	BossLimitSeconds float64 `yaml:"boss_limit_seconds"` // final race limit before forced defeat
}

// RewardsConfig defines race rewards.
type RewardsConfig struct {
	WinnerCoins    int      `yaml:"winner_coins"`
	LoserCoins     int      `yaml:"loser_coins"`
	TieCoins       int      `yaml:"tie_coins"`
	ItemDropChance float64  `yaml:"item_drop_chance"`
	Items          []string `yaml:"items"`
}

// RaceConfig defines the sprint track.
type RaceConfig struct {
	TrackLength      float64 `yaml:"track_length"`       // cells to the finish line
	Stride           float64 `yaml:"stride"`             // cells per key press
	TimeLimitSeconds float64 `yaml:"time_limit_seconds"` // 0 disables; the boss race uses the campaign limit
}

// CombatConfig defines the arena duel.
type CombatConfig struct {
	BaseHealth       int     `yaml:"base_health"`
	ShieldHealth     int     `yaml:"shield_health"`
	Damage           int     `yaml:"damage"`
	BoostedDamage    int     `yaml:"boosted_damage"`
	CooldownSeconds  float64 `yaml:"cooldown_seconds"`
	TimeLimitSeconds float64 `yaml:"time_limit_seconds"`
}

// TicTacToeConfig defines the tic-tac-toe mini-game.
type TicTacToeConfig struct {
	MaxMovesPerSide int     `yaml:"max_moves_per_side"`
	BotDelaySeconds float64 `yaml:"bot_delay_seconds"`
}

// LavaConfig defines the "floor is lava" survival mini-game.
type LavaConfig struct {
	StartAltitude    float64 `yaml:"start_altitude"`
	MaxAltitude      float64 `yaml:"max_altitude"`
	SinkPerSecond    float64 `yaml:"sink_per_second"`
	JumpHeight       float64 `yaml:"jump_height"`
	MaxJumps         int     `yaml:"max_jumps"`
	LandingSeconds   float64 `yaml:"landing_seconds"` // airtime before jumps refill
	TimeLimitSeconds float64 `yaml:"time_limit_seconds"`
}

// BotConfig defines the bot's behaviour for one difficulty.
type BotConfig struct {
	RaceMinFactor float64 `yaml:"race_min_factor"` // bot time = player time * factor
	RaceMaxFactor float64 `yaml:"race_max_factor"`
	AttackChance  float64 `yaml:"attack_chance"` // per tick
	AttackDamage  int     `yaml:"attack_damage"`
	LavaReaction  float64 `yaml:"lava_reaction"` // chance per tick to jump when in danger
}

// BotPresets holds one BotConfig per difficulty.
type BotPresets struct {
	Easy   BotConfig `yaml:"easy"`
	Medium BotConfig `yaml:"medium"`
	Hard   BotConfig `yaml:"hard"`
}

// StorageConfig defines default file locations.
type StorageConfig struct {
	DBPath       string `yaml:"db_path"`
	ProgressPath string `yaml:"progress_path"`
}

// Preset returns the bot configuration for a difficulty preset.
func (b BotPresets) Preset(p DifficultyPreset) BotConfig {
	switch p {
	case DifficultyEasy:
		return b.Easy
	case DifficultyHard:
		return b.Hard
	default:
		return b.Medium
	}
}

// Rules converts the rewards section into match reward rules.
// Unknown item names are skipped.
func (r RewardsConfig) Rules() match.RewardRules {
	rules := match.RewardRules{
		WinnerCoins:    r.WinnerCoins,
		LoserCoins:     r.LoserCoins,
		TieCoins:       r.TieCoins,
		ItemDropChance: clampF(r.ItemDropChance, 0, 1),
	}
	for _, name := range r.Items {
		item := match.Item(name)
		switch item {
		case match.ItemSpeedBoost, match.ItemShield, match.ItemDoubleJump, match.ItemSlowTime:
			rules.ItemPool = append(rules.ItemPool, item)
		}
	}
	return rules
}

// Validate checks values that would make the campaign unplayable.
func (c CyberJumpConfig) Validate() error {
	if c.Campaign.DefaultRounds != match.ShortMatch && c.Campaign.DefaultRounds != match.LongMatch {
		return fmt.Errorf("config: default_rounds must be %d or %d, got %d",
			match.ShortMatch, match.LongMatch, c.Campaign.DefaultRounds)
	}
	if c.Campaign.BossLimitSeconds <= 0 {
		return fmt.Errorf("config: boss_limit_seconds must be positive")
	}
	if c.Race.TrackLength <= 0 || c.Race.Stride <= 0 {
		return fmt.Errorf("config: race track_length and stride must be positive")
	}
	if c.Race.TimeLimitSeconds < 0 {
		return fmt.Errorf("config: race time_limit_seconds must not be negative")
	}
	if c.Combat.BaseHealth <= 0 || c.Combat.TimeLimitSeconds <= 0 {
		return fmt.Errorf("config: combat base_health and time_limit_seconds must be positive")
	}
	if c.TicTacToe.MaxMovesPerSide < 1 || c.TicTacToe.MaxMovesPerSide > 5 {
		return fmt.Errorf("config: tictactoe max_moves_per_side must be within 1..5")
	}
	if c.Lava.MaxJumps < 1 || c.Lava.TimeLimitSeconds <= 0 {
		return fmt.Errorf("config: lava max_jumps and time_limit_seconds must be positive")
	}
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		b := c.Bots.Preset(p)
		if b.RaceMinFactor <= 0 || b.RaceMaxFactor < b.RaceMinFactor {
			return fmt.Errorf("config: bots.%s race factors are invalid", p)
		}
	}
	return nil
}
