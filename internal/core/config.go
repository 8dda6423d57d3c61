package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the platform-facing summary of a game, returned by Game.State().
type GameState struct {
	Score      int    // Score in the current level
	TotalScore int    // Score across the run; this is what gets persisted
	Level      int    // 0-based level index
	LevelName  string
	Lives      int
	Phase      string // Simulation phase name
	Accent     string // Hex color of the current level theme, may be empty
	GameOver   bool   // Out of lives
	Won        bool   // All levels completed
	Paused     bool
}

// Finished reports whether the run has ended, either way.
func (s GameState) Finished() bool {
	return s.GameOver || s.Won
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
