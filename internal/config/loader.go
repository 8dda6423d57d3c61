package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadKnight loads Knight Runner configuration.
// Search order: customPath -> ~/.knight/configs/knight.yaml -> ./configs/knight.yaml -> embedded default
//
// Files are decoded on top of DefaultKnightConfig, so a partial file only
// overrides the fields it names. A level table in a file replaces the default one.
func LoadKnight(customPath string) (KnightConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return KnightConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return KnightConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("knight.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/knight.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultKnightYAML)
	if err != nil {
		return DefaultKnightConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the hard-coded defaults and validates the result.
func Parse(data []byte) (KnightConfig, error) {
	cfg := DefaultKnightConfig()
	cfg.Levels = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KnightConfig{}, err
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = DefaultKnightConfig().Levels
	}
	if err := cfg.Validate(); err != nil {
		return KnightConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg KnightConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".knight", "configs", filename)
}

// ApplyKnightPreset modifies the config based on a difficulty preset.
func ApplyKnightPreset(cfg *KnightConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.SpawnMultiplier = SpawnMultiplierForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 3
		cfg.Difficulty.Progression.Ramp = 0.1
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Difficulty.Progression.Ramp = 0.5
	}
}

// SpawnMultiplierForPreset returns the spawn-rate multiplier for a preset.
func SpawnMultiplierForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}
