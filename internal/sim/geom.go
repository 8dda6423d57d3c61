// Package sim implements the Knight Runner simulation core: the charge-jump
// player body, the procedural obstacle spawner, collision and life-loss
// recovery, and the per-tick clock that owns level, score and lives.
//
// The package performs no I/O and is not safe for concurrent use. A single
// caller advances the simulation one tick at a time and receives value-copied
// snapshots for rendering.
package sim

import "math/rand"

// Box is an axis-aligned rectangle in world units (y grows downward).
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// OverlapsX reports whether the horizontal ranges of two boxes overlap.
func (b Box) OverlapsX(other Box) bool {
	return b.X < other.Right() && b.Right() > other.X
}

// Overlaps reports whether two boxes overlap (all four half-plane tests).
// Touching edges do not count.
func (b Box) Overlaps(other Box) bool {
	return b.X < other.Right() &&
		b.Right() > other.X &&
		b.Y < other.Bottom() &&
		b.Bottom() > other.Y
}

// Source is the random source used by the spawner.
// Float64 returns a uniform draw in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a seeded math/rand source.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
