package core

// RuntimeConfig contains configuration passed to the front end at startup.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic food placement
}

// DefaultConfig returns the runtime used when the terminal size is unknown.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 seeds from the clock
	}
}
