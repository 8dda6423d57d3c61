package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultKnightConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if len(cfg.Levels) != 5 {
		t.Errorf("expected 5 levels, got %d", len(cfg.Levels))
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	def := DefaultKnightConfig()
	if cfg.Physics != def.Physics {
		t.Errorf("physics mismatch: yaml=%+v defaults=%+v", cfg.Physics, def.Physics)
	}
	if cfg.Spawner != def.Spawner {
		t.Errorf("spawner mismatch: yaml=%+v defaults=%+v", cfg.Spawner, def.Spawner)
	}
	if len(cfg.Levels) != len(def.Levels) {
		t.Fatalf("level count mismatch: %d vs %d", len(cfg.Levels), len(def.Levels))
	}
	for i := range cfg.Levels {
		a, b := cfg.Levels[i], def.Levels[i]
		if a.Name != b.Name || a.Speed != b.Speed || a.SpawnRate != b.SpawnRate || a.TargetScore != b.TargetScore {
			t.Errorf("level %d mismatch: yaml=%+v defaults=%+v", i, a, b)
		}
	}
}

func TestLevelSpeedsIncrease(t *testing.T) {
	cfg := DefaultKnightConfig()
	for i := 1; i < len(cfg.Levels); i++ {
		prev, cur := cfg.Levels[i-1], cfg.Levels[i]
		if cur.Speed <= prev.Speed {
			t.Errorf("level %d speed %v should exceed level %d speed %v", i, cur.Speed, i-1, prev.Speed)
		}
		if cur.SpawnRate < prev.SpawnRate {
			t.Errorf("level %d spawn rate should not decrease", i)
		}
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte(`
physics:
  gravity: 1.0
levels:
  - name: Only
    speed: 2
    spawn_rate: 0.0
    target_score: 10
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Physics.Gravity != 1.0 {
		t.Errorf("gravity = %v, expected 1.0", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpStrengthMax != -28 {
		t.Errorf("unset fields should keep defaults, jump max = %v", cfg.Physics.JumpStrengthMax)
	}
	if len(cfg.Levels) != 1 || cfg.Levels[0].Name != "Only" {
		t.Errorf("level table should be replaced, got %+v", cfg.Levels)
	}
}

func TestValidateRejectsBadPhysics(t *testing.T) {
	cfg := DefaultKnightConfig()
	cfg.Physics.JumpStrengthMax = -10 // weaker than min
	cfg.Gameplay.Lives = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig: %v", err)
	}
}

func TestValidateLives(t *testing.T) {
	tests := []struct {
		lives   int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{MaxLives, false},
		{MaxLives + 1, true},
	}

	for _, tt := range tests {
		cfg := DefaultKnightConfig()
		cfg.Gameplay.Lives = tt.lives
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate() with %d lives: err = %v, wantErr %v", tt.lives, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("lives error should wrap ErrInvalidConfig: %v", err)
		}
	}
}

func TestValidateEmptyLevels(t *testing.T) {
	cfg := DefaultKnightConfig()
	cfg.Levels = nil
	if err := cfg.Validate(); !errors.Is(err, ErrNoLevels) {
		t.Errorf("expected ErrNoLevels, got %v", err)
	}
}

func TestDimsOverride(t *testing.T) {
	cfg := DefaultKnightConfig()
	override := ObstacleDims{FireWidth: 10, FireHeight: 10, PitWidth: 20, PitHeight: 20}
	cfg.Levels[2].Obstacles = &override

	if got := cfg.Dims(2); got != override {
		t.Errorf("Dims(2) = %+v, expected override", got)
	}
	if got := cfg.Dims(0); got != cfg.Obstacles {
		t.Errorf("Dims(0) = %+v, expected global dims", got)
	}
}

func TestLevelClamps(t *testing.T) {
	cfg := DefaultKnightConfig()
	if cfg.Level(-1).Name != "Morning" {
		t.Error("negative index should clamp to first level")
	}
	if cfg.Level(99).Name != "Night" {
		t.Error("large index should clamp to last level")
	}
}

func TestLoadKnightCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  lives: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadKnight(path)
	if err != nil {
		t.Fatalf("LoadKnight failed: %v", err)
	}
	if cfg.Gameplay.Lives != 2 {
		t.Errorf("lives = %d, expected 2", cfg.Gameplay.Lives)
	}
	if len(cfg.Levels) != 5 {
		t.Errorf("missing level table should fall back to defaults, got %d", len(cfg.Levels))
	}
}

func TestLoadKnightMissingCustomPath(t *testing.T) {
	if _, err := LoadKnight(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestMarshalRoundTripValid(t *testing.T) {
	data, err := Marshal(DefaultKnightConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if _, err := Parse(data); err != nil {
		t.Errorf("marshalled defaults should parse: %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultKnightConfig()
	ApplyKnightPreset(&cfg, DifficultyHard)
	if cfg.Gameplay.Lives != 2 {
		t.Errorf("hard preset lives = %d, expected 2", cfg.Gameplay.Lives)
	}
	if cfg.Difficulty.SpawnMultiplier <= 1 {
		t.Errorf("hard preset should raise spawn multiplier, got %v", cfg.Difficulty.SpawnMultiplier)
	}

	cfg = DefaultKnightConfig()
	ApplyKnightPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable difficulty scaling")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should be empty")
	}
}
