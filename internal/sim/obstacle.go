package sim

import "github.com/vovakirdan/knight-runner/internal/config"

// Kind identifies an obstacle variant.
type Kind uint8

const (
	Pit  Kind = iota // Hole in the ground, cleared by being airborne over it
	Fire             // Box sitting on the ground, cleared by not overlapping it
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Pit:
		return "pit"
	case Fire:
		return "fire"
	default:
		return "unknown"
	}
}

// Opposite returns the other kind.
func (k Kind) Opposite() Kind {
	if k == Pit {
		return Fire
	}
	return Pit
}

// Pattern records why an obstacle was placed.
type Pattern uint8

const (
	PatternSingle   Pattern = iota // Probability-rolled single obstacle
	PatternSequence                // Member of a fire sequence
	PatternCluster                 // Member of a double or triple cluster
)

// String returns a human-readable name for the pattern.
func (p Pattern) String() string {
	switch p {
	case PatternSingle:
		return "single"
	case PatternSequence:
		return "sequence"
	case PatternCluster:
		return "cluster"
	default:
		return "unknown"
	}
}

// Obstacle is a hazard scrolling from right to left.
type Obstacle struct {
	ID      uint64
	Kind    Kind
	Pattern Pattern
	X       float64 // Leading (left) edge
	Y       float64
	Width   float64
	Height  float64
}

// TrailingEdge returns the rightmost x extent of the obstacle.
func (o Obstacle) TrailingEdge() float64 {
	return o.X + o.Width
}

// Bounds returns the obstacle's box.
func (o Obstacle) Bounds() Box {
	return Box{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// OffScreen reports whether the obstacle has fully left the field.
func (o Obstacle) OffScreen() bool {
	return o.X+o.Width < 0
}

// Geometry returns the kind-dependent width, height and y for an obstacle.
// Pits start at the ground and extend downward; fires sit on the ground.
func Geometry(kind Kind, dims config.ObstacleDims, groundY float64) (w, h, y float64) {
	switch kind {
	case Pit:
		return dims.PitWidth, dims.PitHeight, groundY
	default:
		return dims.FireWidth, dims.FireHeight, groundY - dims.FireHeight
	}
}

// newObstacle builds an obstacle of the given kind with its leading edge at x.
func newObstacle(id uint64, kind Kind, pattern Pattern, x float64, dims config.ObstacleDims, groundY float64) Obstacle {
	w, h, y := Geometry(kind, dims, groundY)
	return Obstacle{
		ID:      id,
		Kind:    kind,
		Pattern: pattern,
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
	}
}
