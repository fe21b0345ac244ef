package match

import "math/rand"

// Item is a power-up that can drop after a race.
type Item string

const (
	ItemSpeedBoost Item = "speed_boost"
	ItemShield     Item = "shield"
	ItemDoubleJump Item = "double_jump"
	ItemSlowTime   Item = "slow_time"
)

// Reward is what a player earned in the current round's race.
type Reward struct {
	Coins int
	Items []Item
}

// Has reports whether the reward contains item.
func (r Reward) Has(item Item) bool {
	for _, it := range r.Items {
		if it == item {
			return true
		}
	}
	return false
}

// RewardRules configures race rewards.
type RewardRules struct {
	WinnerCoins    int
	LoserCoins     int
	TieCoins       int
	ItemDropChance float64 // probability in [0, 1], rolled once per human
	ItemPool       []Item
}

// DefaultRewardRules returns the stock reward table.
func DefaultRewardRules() RewardRules {
	return RewardRules{
		WinnerCoins:    100,
		LoserCoins:     50,
		TieCoins:       75,
		ItemDropChance: 0.3,
		ItemPool:       []Item{ItemSpeedBoost, ItemShield, ItemDoubleJump, ItemSlowTime},
	}
}

// placement of a human in the race relative to its opponent.
type placement int

const (
	placeTie placement = iota
	placeFaster
	placeSlower
)

// coins maps a placement to currency. Placement is deterministic; only
// item drops are random.
func (r RewardRules) coins(p placement) int {
	switch p {
	case placeFaster:
		return r.WinnerCoins
	case placeSlower:
		return r.LoserCoins
	default:
		return r.TieCoins
	}
}

// rollItem draws an item with ItemDropChance, independent of placement.
func (r RewardRules) rollItem(rng *rand.Rand) (Item, bool) {
	if len(r.ItemPool) == 0 || r.ItemDropChance <= 0 {
		return "", false
	}
	if rng.Float64() >= r.ItemDropChance {
		return "", false
	}
	return r.ItemPool[rng.Intn(len(r.ItemPool))], true
}

func compareTimes(a, b float64) placement {
	switch {
	case a < b:
		return placeFaster
	case b < a:
		return placeSlower
	default:
		return placeTie
	}
}

func invert(p placement) placement {
	switch p {
	case placeFaster:
		return placeSlower
	case placeSlower:
		return placeFaster
	default:
		return placeTie
	}
}
