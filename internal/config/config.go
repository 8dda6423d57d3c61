// Package config provides YAML-based game configuration loading and
// difficulty management for the knight runner.
package config

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLevels is returned when a configuration has an empty level table.
	ErrNoLevels = errors.New("config: level table is empty")

	// ErrInvalidConfig wraps every field-level validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// KnightConfig contains all configuration for the Knight Runner simulation.
// It is treated as immutable once handed to the simulation.
type KnightConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleDims     `yaml:"obstacles"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Levels     []LevelConfig    `yaml:"levels"`
}

// WorldConfig defines the visible field in world units.
type WorldConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	GroundY           float64 `yaml:"ground_y"`
	GroundTextureSize float64 `yaml:"ground_texture_size"`
}

// PhysicsConfig defines per-tick physics constants.
// Jump strengths are negative (up); JumpStrengthMax is the more negative one.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	JumpStrengthMin float64 `yaml:"jump_strength_min"`
	JumpStrengthMax float64 `yaml:"jump_strength_max"`
	ChargeRate      float64 `yaml:"charge_rate"`
}

// PlayerConfig defines the player's box and fixed horizontal position.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleDims defines obstacle geometry per kind.
type ObstacleDims struct {
	FireWidth  float64 `yaml:"fire_width"`
	FireHeight float64 `yaml:"fire_height"`
	PitWidth   float64 `yaml:"pit_width"`
	PitHeight  float64 `yaml:"pit_height"`
}

// SpawnerConfig defines spacing and pattern parameters for obstacle generation.
type SpawnerConfig struct {
	MinDistance          float64 `yaml:"min_distance"`
	PitChance            float64 `yaml:"pit_chance"`
	FireSequenceDistance float64 `yaml:"fire_sequence_distance"`
	FireSequenceChance   float64 `yaml:"fire_sequence_chance"`
	FireSequenceLength   int     `yaml:"fire_sequence_length"`
	FireSequenceMinLevel int     `yaml:"fire_sequence_min_level"`
	ClusterMinLevel      int     `yaml:"cluster_min_level"`
	TripleChance         float64 `yaml:"triple_chance"`
	DoubleChance         float64 `yaml:"double_chance"`
	DoubleGap            float64 `yaml:"double_gap"`
	TripleGap            float64 `yaml:"triple_gap"`
	ResumeOffset         float64 `yaml:"resume_offset"` // Trailing edge reset is World.Width - ResumeOffset
}

// MaxLives is the most lives a run can start with.
const MaxLives = 3

// GameplayConfig defines lives and scoring.
type GameplayConfig struct {
	Lives        int     `yaml:"lives"`
	ScoreDivisor float64 `yaml:"score_divisor"` // score = floor(distance / divisor)
}

// LevelConfig is one row of the level catalogue.
type LevelConfig struct {
	Name        string        `yaml:"name"`
	Speed       float64       `yaml:"speed"`
	SpawnRate   float64       `yaml:"spawn_rate"`
	TargetScore int           `yaml:"target_score"`
	Theme       Theme         `yaml:"theme"`
	Obstacles   *ObstacleDims `yaml:"obstacles,omitempty"` // Overrides the global dimensions when set
}

// Theme holds presentation colours for a level (hex strings).
type Theme struct {
	Sky    string `yaml:"sky"`
	Ground string `yaml:"ground"`
}

// DifficultyConfig defines the spawn-rate scaling applied on top of the level table.
type DifficultyConfig struct {
	Enabled         bool              `yaml:"enabled"`
	SpawnMultiplier float64           `yaml:"spawn_multiplier"`
	Progression     ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how spawn rate ramps within a level.
type ProgressionConfig struct {
	Type string  `yaml:"type"` // "score" or "none"
	Ramp float64 `yaml:"ramp"` // Fraction added to the spawn rate at the level's target score
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// Level returns the catalogue row for a 0-based level index.
// Out-of-range indexes are clamped to the table.
func (c KnightConfig) Level(idx int) LevelConfig {
	if len(c.Levels) == 0 {
		return LevelConfig{}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Levels) {
		idx = len(c.Levels) - 1
	}
	return c.Levels[idx]
}

// Dims returns the obstacle dimensions in effect for a level.
func (c KnightConfig) Dims(idx int) ObstacleDims {
	if lvl := c.Level(idx); lvl.Obstacles != nil {
		return *lvl.Obstacles
	}
	return c.Obstacles
}

// Validate checks the configuration and reports every problem found.
func (c KnightConfig) Validate() error {
	if len(c.Levels) == 0 {
		return ErrNoLevels
	}

	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.World.Width > 0, "world.width must be positive")
	check(c.World.GroundY > 0, "world.ground_y must be positive")
	check(c.Physics.Gravity > 0, "physics.gravity must be positive")
	check(c.Physics.JumpStrengthMin < 0, "physics.jump_strength_min must be negative")
	check(c.Physics.JumpStrengthMax < c.Physics.JumpStrengthMin,
		"physics.jump_strength_max (%v) must be more negative than jump_strength_min (%v)",
		c.Physics.JumpStrengthMax, c.Physics.JumpStrengthMin)
	check(c.Physics.ChargeRate > 0 && c.Physics.ChargeRate <= 1, "physics.charge_rate must be in (0, 1]")
	check(c.Player.Width > 0 && c.Player.Height > 0, "player dimensions must be positive")
	check(c.Spawner.MinDistance > 0, "spawner.min_distance must be positive")
	check(c.Spawner.PitChance >= 0 && c.Spawner.PitChance <= 1, "spawner.pit_chance must be in [0, 1]")
	check(c.Spawner.FireSequenceLength >= 0, "spawner.fire_sequence_length must not be negative")
	check(c.Spawner.TripleChance+c.Spawner.DoubleChance <= 1, "spawner cluster chances must sum to at most 1")
	check(c.Gameplay.Lives >= 1 && c.Gameplay.Lives <= MaxLives, "gameplay.lives must be in [1, %d]", MaxLives)
	check(c.Gameplay.ScoreDivisor > 0, "gameplay.score_divisor must be positive")

	for i, lvl := range c.Levels {
		check(lvl.Speed > 0, "levels[%d].speed must be positive", i)
		check(lvl.SpawnRate >= 0 && lvl.SpawnRate <= 1, "levels[%d].spawn_rate must be in [0, 1]", i)
		check(lvl.TargetScore > 0, "levels[%d].target_score must be positive", i)
		d := c.Dims(i)
		check(d.FireWidth > 0 && d.FireHeight > 0 && d.PitWidth > 0 && d.PitHeight > 0,
			"levels[%d] obstacle dimensions must be positive", i)
	}

	return errors.Join(errs...)
}
