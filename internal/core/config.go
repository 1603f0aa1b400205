package core

// RuntimeConfig is what the platform hands a game on Reset.
// A replay stores Seed and TickRate; screen size never affects simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// WithDefaults fills zero or negative sizes and rates from DefaultConfig.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	d := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	return c
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	Score  int
	Lives  int
	Ended  bool // Any terminal outcome: a win or running out of lives
	Won    bool
	Paused bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
