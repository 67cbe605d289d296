package core

import "time"

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig describes where a game runs. The platform fills it from
// the terminal and the command line.
type RuntimeConfig struct {
	ScreenW, ScreenH int   // Terminal size in cells
	TickRate         int   // Simulation steps per second
	Seed             int64 // Launch angle and pickup seed, 0 for a random one
}

// Normalize fills unset fields. A non-positive tick rate becomes
// DefaultTickRate and a zero seed is taken from now.
func (c RuntimeConfig) Normalize(now time.Time) RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.Seed == 0 {
		c.Seed = now.UnixNano()
	}
	return c
}

// Step is the simulated time of one tick.
func (c RuntimeConfig) Step() time.Duration {
	return time.Second / time.Duration(max(c.TickRate, 1))
}
