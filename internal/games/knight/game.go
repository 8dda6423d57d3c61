// Package knight adapts the Knight Runner simulation to the arcade platform.
// The player auto-runs across a scrolling track and charges jumps to clear
// pits and fires across five themed levels.
package knight

import (
	"github.com/vovakirdan/knight-runner/internal/config"
	"github.com/vovakirdan/knight-runner/internal/core"
	"github.com/vovakirdan/knight-runner/internal/registry"
	"github.com/vovakirdan/knight-runner/internal/sim"
)

// Game IDs registered with the registry.
const (
	GameID     = "knight"
	DemoGameID = "knight_demo"
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel sets the 0-based level new runs begin on.
func SetStartLevel(level int) {
	startLevel = max(0, level)
}

// LoadConfig resolves the configuration the game will run with:
// the config search order, then the difficulty preset.
func LoadConfig() (config.KnightConfig, error) {
	cfg, err := config.LoadKnight(configPath)
	if err != nil {
		return config.KnightConfig{}, err
	}
	if difficultyPreset != "" {
		config.ApplyKnightPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// LevelNames returns the names of the configured levels in order.
func LevelNames() []string {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = config.DefaultKnightConfig()
	}
	names := make([]string, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		names[i] = lvl.Name
	}
	return names
}

// Game implements registry.Game on top of sim.Simulation.
type Game struct {
	demo       bool
	startLevel int
	cfg        config.KnightConfig
	runtime    core.RuntimeConfig
	sim        *sim.Simulation
	pilot      *Autopilot
	snap       sim.Snapshot
	paused     bool
	loadErr    error
}

// New creates a playable Knight Runner game.
func New() *Game {
	return &Game{startLevel: startLevel}
}

// NewDemo creates a self-playing game with collisions disabled.
func NewDemo() *Game {
	return &Game{demo: true, startLevel: startLevel}
}

// SetLevel overrides the start level for this instance. Takes effect on the next Reset.
func (g *Game) SetLevel(level int) {
	g.startLevel = max(0, level)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.demo {
		return DemoGameID
	}
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.demo {
		return "Knight Runner (Demo)"
	}
	return "Knight Runner"
}

// LoadError returns the config error from the last Reset, if the game fell
// back to the built-in configuration.
func (g *Game) LoadError() error {
	return g.loadErr
}

// Reset loads the configuration and creates a fresh simulation.
// A playable game waits on its title screen; a demo starts immediately.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false

	cfg, err := LoadConfig()
	g.loadErr = err
	if err != nil {
		cfg = config.DefaultKnightConfig()
	}
	g.cfg = cfg

	s, err := sim.New(cfg, sim.Options{
		Seed:              runtime.Seed,
		StartLevel:        g.startLevel,
		DisableCollisions: g.demo,
		AutoAdvance:       g.demo,
	})
	if err != nil {
		// Loaded configs are validated; only a broken default reaches here.
		s, _ = sim.New(config.DefaultKnightConfig(), sim.Options{Seed: runtime.Seed})
	}
	g.sim = s

	g.pilot = nil
	if g.demo {
		g.pilot = NewAutopilot(cfg.Physics)
		g.sim.Start()
	}
	g.snap = g.sim.Snapshot()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	phase := g.sim.Phase()

	if phase == sim.PhasePlaying && in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if phase != sim.PhasePlaying {
		g.handleTransition(phase, in)
		g.snap = g.sim.Snapshot()
		return core.StepResult{State: g.State()}
	}

	var intent sim.Intent
	if g.pilot != nil {
		intent = g.pilot.Next(g.snap)
	} else {
		intent = g.intentFor(in)
	}

	g.snap = g.sim.Advance(intent)
	return core.StepResult{State: g.State()}
}

// intentFor maps a frame to a jump intent. Space toggles: the first press
// starts the charge, the next one releases it. Tap keys do both at once.
func (g *Game) intentFor(in core.InputFrame) sim.Intent {
	var intent sim.Intent
	if in.Has(core.ActionJump) {
		if g.snap.Player.Charging {
			intent.JumpRelease = true
		} else {
			intent.JumpStart = true
		}
	}
	if in.Has(core.ActionTap) {
		intent.JumpStart = true
		intent.JumpRelease = true
	}
	return intent
}

// handleTransition drives the phase machine from the end screens.
func (g *Game) handleTransition(phase sim.Phase, in core.InputFrame) {
	proceed := in.Has(core.ActionJump) || in.Has(core.ActionTap) || in.Has(core.ActionConfirm)

	switch phase {
	case sim.PhaseMenu:
		if proceed {
			g.sim.Start()
		}
	case sim.PhaseLevelComplete:
		if proceed {
			g.sim.NextLevel()
		}
	case sim.PhaseGameOver:
		if proceed || in.Has(core.ActionRestart) {
			g.sim.RestartLevel()
		}
	case sim.PhaseAllComplete:
		if proceed || in.Has(core.ActionRestart) {
			g.sim.RestartGame()
		}
	}
}

// Snapshot returns the last simulation snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.snap
	return core.GameState{
		Score:      snap.Score,
		TotalScore: snap.TotalScore,
		Level:      snap.Level,
		LevelName:  snap.LevelName,
		Lives:      snap.Lives,
		Phase:      snap.Phase.String(),
		Accent:     g.cfg.Level(snap.Level).Theme.Sky,
		GameOver:   snap.Phase == sim.PhaseGameOver,
		Won:        snap.Phase == sim.PhaseAllComplete,
		Paused:     g.paused,
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(DemoGameID, func() registry.Game {
		return NewDemo()
	})
}
