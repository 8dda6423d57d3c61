package config

import (
	_ "embed"
)

//go:embed defaults/knight.yaml
var defaultKnightYAML []byte

// DefaultKnightConfig returns the built-in Knight Runner configuration.
func DefaultKnightConfig() KnightConfig {
	return KnightConfig{
		World: WorldConfig{
			Width:             800,
			Height:            450,
			GroundY:           350,
			GroundTextureSize: 20,
		},
		Physics: PhysicsConfig{
			Gravity:         0.8,
			JumpStrengthMin: -15,
			JumpStrengthMax: -28,
			ChargeRate:      0.015, // ~67 ticks from empty to full
		},
		Player: PlayerConfig{
			X:      100,
			Width:  40,
			Height: 50,
		},
		Obstacles: ObstacleDims{
			FireWidth:  40,
			FireHeight: 40,
			PitWidth:   80,
			PitHeight:  100,
		},
		Spawner: SpawnerConfig{
			MinDistance:          280,
			PitChance:            0.5,
			FireSequenceDistance: 300,
			FireSequenceChance:   0.12,
			FireSequenceLength:   3,
			FireSequenceMinLevel: 1,
			ClusterMinLevel:      3,
			TripleChance:         0.07,
			DoubleChance:         0.18,
			DoubleGap:            150,
			TripleGap:            130,
			ResumeOffset:         300,
		},
		Gameplay: GameplayConfig{
			Lives:        3,
			ScoreDivisor: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			SpawnMultiplier: 1.0,
			Progression: ProgressionConfig{
				Type: "score",
				Ramp: 0.25,
			},
		},
		Levels: []LevelConfig{
			{Name: "Morning", Speed: 3, SpawnRate: 0.008, TargetScore: 200, Theme: Theme{Sky: "#87CEEB", Ground: "#8B7355"}},
			{Name: "Day", Speed: 3.6, SpawnRate: 0.01, TargetScore: 250, Theme: Theme{Sky: "#4A90E2", Ground: "#9B7D5F"}},
			{Name: "Sunrise", Speed: 4.2, SpawnRate: 0.012, TargetScore: 300, Theme: Theme{Sky: "#FF6B35", Ground: "#A0826D"}},
			{Name: "Sunset", Speed: 4.8, SpawnRate: 0.015, TargetScore: 350, Theme: Theme{Sky: "#8B0000", Ground: "#8B6F47"}},
			{Name: "Night", Speed: 5.4, SpawnRate: 0.018, TargetScore: 400, Theme: Theme{Sky: "#191970", Ground: "#5C4A37"}},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultKnightYAML
}
