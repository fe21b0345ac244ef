// Package core provides the tick-level building blocks shared by the
// activities and the front-ends: input frames, runtime settings and a rune
// screen buffer. It has no terminal dependencies.
package core

// RuntimeConfig contains settings passed to a session at start.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means use current time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// Ticks converts seconds to a whole number of ticks, at least one for any
// positive duration.
func (c RuntimeConfig) Ticks(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	n := int(seconds*float64(c.rate()) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// Seconds converts a tick count to seconds.
func (c RuntimeConfig) Seconds(ticks int) float64 {
	return float64(ticks) / float64(c.rate())
}

func (c RuntimeConfig) rate() int {
	if c.TickRate <= 0 {
		return 60
	}
	return c.TickRate
}
