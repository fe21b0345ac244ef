package match

import (
	"math/rand"
	"testing"
)

func TestRewardCoins(t *testing.T) {
	r := DefaultRewardRules()
	tests := []struct {
		a, b float64
		want int
	}{
		{10, 12, 100},
		{12, 10, 50},
		{11, 11, 75},
	}
	for _, tt := range tests {
		if got := r.coins(compareTimes(tt.a, tt.b)); got != tt.want {
			t.Errorf("coins(%v vs %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestInvertPlacement(t *testing.T) {
	if invert(placeFaster) != placeSlower || invert(placeSlower) != placeFaster || invert(placeTie) != placeTie {
		t.Error("invert is not symmetric")
	}
}

func TestRollItem(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	never := DefaultRewardRules()
	never.ItemDropChance = 0
	for i := 0; i < 100; i++ {
		if _, ok := never.rollItem(rng); ok {
			t.Fatal("Expected no drop with zero chance")
		}
	}

	always := DefaultRewardRules()
	always.ItemDropChance = 1
	for i := 0; i < 100; i++ {
		item, ok := always.rollItem(rng)
		if !ok {
			t.Fatal("Expected a drop with chance 1")
		}
		found := false
		for _, it := range always.ItemPool {
			if it == item {
				found = true
			}
		}
		if !found {
			t.Fatalf("Item %q not in pool", item)
		}
	}

	// rough frequency check around 30%
	r := DefaultRewardRules()
	drops := 0
	for i := 0; i < 10000; i++ {
		if _, ok := r.rollItem(rng); ok {
			drops++
		}
	}
	if drops < 2500 || drops > 3500 {
		t.Errorf("Expected about 3000 drops, got %d", drops)
	}
}

func TestRewardHas(t *testing.T) {
	r := Reward{Coins: 100, Items: []Item{ItemShield}}
	if !r.Has(ItemShield) {
		t.Error("Expected shield")
	}
	if r.Has(ItemSpeedBoost) {
		t.Error("Unexpected speed boost")
	}
}
