package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/knight-runner/internal/config"
)

// Phase is the simulation state machine position.
type Phase uint8

const (
	PhaseMenu          Phase = iota // Before the first Start
	PhasePlaying                    // Ticks advance the world
	PhaseLevelComplete              // Target score reached; waiting for NextLevel
	PhaseGameOver                   // Out of lives; waiting for a restart
	PhaseAllComplete                // Last level finished
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	case PhaseAllComplete:
		return "all_complete"
	default:
		return "unknown"
	}
}

// Intent is the edge-triggered player input for one tick.
type Intent struct {
	JumpStart   bool
	JumpRelease bool
}

// Options tune a simulation instance without touching the shared config.
type Options struct {
	// Source overrides the random source. When nil, a math/rand source seeded with Seed is used.
	Source Source
	Seed   int64

	// DisableCollisions suppresses the collision pass (demo presentation).
	DisableCollisions bool

	// AutoAdvance moves straight into the next level instead of stopping at
	// LevelComplete, and loops back to the first level after the last one.
	AutoAdvance bool

	// StartLevel is the 0-based level a new run begins on.
	StartLevel int
}

// Simulation is the per-tick clock. It exclusively owns the player body, the
// obstacle list and the level, score and lives state.
type Simulation struct {
	cfg        config.KnightConfig
	opts       Options
	difficulty *config.DifficultyManager

	player  PlayerBody
	spawner *Spawner

	phase    Phase
	level    int
	distance float64
	score    int
	banked   int // Score from completed levels in this run
	lives    int
	tick     uint64
	events   []Event
}

// New creates a simulation in the Menu phase. The config is validated and copied.
func New(cfg config.KnightConfig, opts Options) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	rng := opts.Source
	if rng == nil {
		rng = NewSource(opts.Seed)
	}

	levels := make([]config.LevelConfig, len(cfg.Levels))
	copy(levels, cfg.Levels)
	cfg.Levels = levels

	opts.StartLevel = max(0, min(opts.StartLevel, len(cfg.Levels)-1))

	s := &Simulation{
		cfg:        cfg,
		opts:       opts,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		spawner:    NewSpawner(cfg, rng),
		phase:      PhaseMenu,
		level:      opts.StartLevel,
		lives:      cfg.Gameplay.Lives,
		events:     make([]Event, 0, 4),
	}
	s.resetLevel()
	return s, nil
}

// Config returns the configuration the simulation runs with.
func (s *Simulation) Config() config.KnightConfig {
	return s.cfg
}

// Phase returns the current phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Player returns a copy of the player body.
func (s *Simulation) Player() PlayerBody {
	return s.player
}

// Advance runs exactly one tick and returns the resulting snapshot.
// Outside the Playing phase the world is frozen and the intent is ignored.
func (s *Simulation) Advance(in Intent) Snapshot {
	s.events = s.events[:0]
	if s.phase != PhasePlaying {
		return s.Snapshot()
	}
	s.tick++

	if in.JumpStart {
		s.player.StartCharge()
	}
	if in.JumpRelease && s.player.ReleaseJump() {
		s.emit(EventJumped, 0)
	}

	// (1) player
	s.player.Tick()

	// (2) distance and score
	lvl := s.cfg.Level(s.level)
	s.distance += lvl.Speed
	s.score = int(math.Floor(s.distance / s.cfg.Gameplay.ScoreDivisor))

	// (3) spawn
	rate := s.difficulty.SpawnRate(lvl.SpawnRate, s.score, lvl.TargetScore)
	for _, o := range s.spawner.Attempt(s.level, rate, s.cfg.Dims(s.level)) {
		s.emit(EventSpawned, o.ID)
	}

	// (4) advance and cull
	s.spawner.Advance(lvl.Speed)

	// (5) collisions
	if !s.opts.DisableCollisions {
		s.resolveCollision()
	}

	// (6) progression
	if s.phase == PhasePlaying && s.score >= lvl.TargetScore {
		s.completeLevel()
	}

	return s.Snapshot()
}

// completeLevel enters LevelComplete, or moves on directly in auto-advance mode.
func (s *Simulation) completeLevel() {
	s.phase = PhaseLevelComplete
	s.emit(EventLevelComplete, 0)

	if !s.opts.AutoAdvance {
		return
	}
	s.NextLevel()
	if s.phase == PhaseAllComplete {
		s.RestartGame()
	}
}

// Start begins a run from the Menu phase. Ignored in other phases.
func (s *Simulation) Start() {
	if s.phase != PhaseMenu {
		return
	}
	s.RestartGame()
}

// NextLevel advances from LevelComplete to the next level, or to AllComplete
// after the last one. Ignored in other phases.
func (s *Simulation) NextLevel() {
	if s.phase != PhaseLevelComplete {
		return
	}

	s.banked += s.score
	s.level++
	if s.level >= len(s.cfg.Levels) {
		s.level = len(s.cfg.Levels) - 1
		s.score = 0
		s.phase = PhaseAllComplete
		s.emit(EventAllComplete, 0)
		return
	}

	s.resetLevel()
	s.phase = PhasePlaying
}

// RestartLevel replays the current level after a game over with lives restored.
// Score earned in the failed attempt is discarded. Ignored in other phases.
func (s *Simulation) RestartLevel() {
	if s.phase != PhaseGameOver {
		return
	}
	s.lives = s.cfg.Gameplay.Lives
	s.resetLevel()
	s.phase = PhasePlaying
}

// RestartGame starts a fresh run from the configured start level. Allowed in any phase.
func (s *Simulation) RestartGame() {
	s.level = s.opts.StartLevel
	s.banked = 0
	s.lives = s.cfg.Gameplay.Lives
	s.resetLevel()
	s.phase = PhasePlaying
}

// PlaceObstacle puts an obstacle on the track with its leading edge at x,
// bypassing the spawner's rules. Intended for scripted sequences.
func (s *Simulation) PlaceObstacle(kind Kind, x float64) Obstacle {
	return s.spawner.inject(kind, x, s.cfg.Dims(s.level))
}

// resetLevel reinitialises the per-level state: a fresh player body, no
// obstacles, zero distance.
func (s *Simulation) resetLevel() {
	s.player = NewPlayerBody(s.cfg.Player, s.cfg.Physics, s.cfg.World.GroundY)
	s.spawner.Reset()
	s.distance = 0
	s.score = 0
}

func (s *Simulation) groundOffset() float64 {
	size := s.cfg.World.GroundTextureSize
	if size <= 0 {
		return 0
	}
	return math.Mod(s.distance, size)
}

func (s *Simulation) emit(kind EventKind, obstacleID uint64) {
	s.events = append(s.events, Event{
		Kind:       kind,
		Tick:       s.tick,
		Level:      s.level,
		ObstacleID: obstacleID,
	})
}
