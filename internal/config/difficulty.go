package config

import "math"

// DifficultyManager calculates the effective spawn rate for a level.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables difficulty scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether in-level progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Progress returns how far through a level the player is (0.0 to 1.0).
func (d *DifficultyManager) Progress(score, targetScore int) float64 {
	if !d.IsEnabled() {
		return 0
	}
	if targetScore <= 0 {
		return 1
	}
	return clampF(float64(score)/float64(targetScore), 0.0, 1.0)
}

// SpawnRate returns the per-tick spawn probability for a level.
// The base rate from the level table is scaled by the preset multiplier and
// ramps up to (1 + ramp) times that as the level's target score approaches.
func (d *DifficultyManager) SpawnRate(baseRate float64, score, targetScore int) float64 {
	if !d.cfg.Enabled {
		return clampF(baseRate, 0.0, 1.0)
	}

	mult := d.cfg.SpawnMultiplier
	if mult <= 0 {
		mult = 1
	}

	rate := baseRate * mult * (1.0 + d.cfg.Progression.Ramp*d.Progress(score, targetScore))
	return clampF(rate, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
