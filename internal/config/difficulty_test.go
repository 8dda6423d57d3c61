package config

import (
	"math"
	"testing"
)

func TestSpawnRateRamp(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:         true,
		SpawnMultiplier: 1.0,
		Progression:     ProgressionConfig{Type: "score", Ramp: 0.5},
	})

	tests := []struct {
		name     string
		score    int
		expected float64
	}{
		{"level start", 0, 0.01},
		{"halfway", 100, 0.0125},
		{"at target", 200, 0.015},
		{"past target clamps", 400, 0.015},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := d.SpawnRate(0.01, tc.score, 200)
			if math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("SpawnRate = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSpawnRateDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:         false,
		SpawnMultiplier: 2.0,
		Progression:     ProgressionConfig{Type: "score", Ramp: 1},
	})
	if got := d.SpawnRate(0.02, 100, 100); got != 0.02 {
		t.Errorf("disabled manager should return base rate, got %v", got)
	}
	if d.IsEnabled() {
		t.Error("IsEnabled should be false")
	}
}

func TestSpawnRateNoProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:         true,
		SpawnMultiplier: 1.5,
		Progression:     ProgressionConfig{Type: "none", Ramp: 1},
	})
	if got := d.SpawnRate(0.01, 100, 100); math.Abs(got-0.015) > 1e-12 {
		t.Errorf("multiplier without ramp should give 0.015, got %v", got)
	}
}

func TestSpawnRateClampsToOne(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, SpawnMultiplier: 10})
	if got := d.SpawnRate(0.5, 0, 100); got != 1.0 {
		t.Errorf("rate should clamp to 1.0, got %v", got)
	}
}
