package sim

import (
	"math"

	"github.com/vovakirdan/knight-runner/internal/config"
)

// Spawner owns the live obstacle list and decides each tick whether, what
// and where to place new obstacles.
//
// Random draws per Attempt, in order:
//  1. spawn roll (skipped while a fire sequence is pending)
//  2. cluster roll, from ClusterMinLevel on
//  3. kind roll, for single spawns (consumed even when the kind is forced)
//  4. sequence roll, for single fires from FireSequenceMinLevel on
type Spawner struct {
	cfg     config.SpawnerConfig
	fieldW  float64
	groundY float64
	rng     Source

	obstacles    []Obstacle
	trailingEdge float64 // World x of the rightmost placed obstacle's trailing edge
	nextID       uint64

	// Pattern history
	hasLast        bool
	lastKind       Kind
	run            int  // Consecutive placements of lastKind
	runHasSequence bool // Whether the current run contains a sequence member
	seqRemaining   int  // Fire sequence members still to place
}

// NewSpawner creates a spawner for the given configuration.
func NewSpawner(cfg config.KnightConfig, rng Source) *Spawner {
	s := &Spawner{
		cfg:       cfg.Spawner,
		fieldW:    cfg.World.Width,
		groundY:   cfg.World.GroundY,
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
	}
	s.Reset()
	return s
}

// Reset clears all obstacles and pattern history.
func (s *Spawner) Reset() {
	s.obstacles = s.obstacles[:0]
	s.trailingEdge = 0
	s.hasLast = false
	s.run = 0
	s.runHasSequence = false
	s.seqRemaining = 0
}

// Obstacles returns the live obstacle list. Callers must not modify it.
func (s *Spawner) Obstacles() []Obstacle {
	return s.obstacles
}

// TrailingEdge returns the spacing reference point for the next spawn.
func (s *Spawner) TrailingEdge() float64 {
	return s.trailingEdge
}

// InSequence reports whether a fire sequence is in progress.
func (s *Spawner) InSequence() bool {
	return s.seqRemaining > 0
}

// gap is the free track between the right edge of the field and the last placement.
func (s *Spawner) gap() float64 {
	return s.fieldW - s.trailingEdge
}

// Attempt tries to place obstacles at the right edge of the field.
// rate is the per-tick spawn probability. Returns the obstacles placed, if any.
func (s *Spawner) Attempt(level int, rate float64, dims config.ObstacleDims) []Obstacle {
	if s.seqRemaining > 0 {
		if s.hasLast && s.lastKind == Fire && s.run >= 3 {
			// Three in a row ends the sequence; the next single is forced to flip.
			s.seqRemaining = 0
		} else {
			if s.gap() < s.cfg.FireSequenceDistance {
				return nil
			}
			s.seqRemaining--
			return []Obstacle{s.place(Fire, PatternSequence, s.fieldW, dims)}
		}
	}

	if s.rng.Float64() >= rate {
		return nil
	}

	if s.gap() < s.cfg.MinDistance {
		return nil
	}

	if level >= s.cfg.ClusterMinLevel {
		u := s.rng.Float64()
		switch {
		case u < s.cfg.TripleChance:
			return s.placeCluster(3, s.cfg.TripleGap, dims)
		case u < s.cfg.TripleChance+s.cfg.DoubleChance:
			return s.placeCluster(2, s.cfg.DoubleGap, dims)
		}
	}

	kind := s.chooseKind()
	pattern := PatternSingle
	if kind == Fire && level >= s.cfg.FireSequenceMinLevel && s.cfg.FireSequenceLength > 1 {
		if s.rng.Float64() < s.cfg.FireSequenceChance {
			pattern = PatternSequence
			s.seqRemaining = s.cfg.FireSequenceLength - 1
		}
	}

	return []Obstacle{s.place(kind, pattern, s.fieldW, dims)}
}

// chooseKind draws a kind for a single spawn and applies the anti-repetition rules.
func (s *Spawner) chooseKind() Kind {
	kind := Fire
	if s.rng.Float64() < s.cfg.PitChance {
		kind = Pit
	}

	if s.hasLast && kind == s.lastKind {
		if s.run >= 3 || (s.run >= 2 && !s.runHasSequence) {
			kind = kind.Opposite()
		}
	}
	return kind
}

// placeCluster places n obstacles of alternating kind separated by gap,
// starting with the opposite of the previously placed kind.
func (s *Spawner) placeCluster(n int, gap float64, dims config.ObstacleDims) []Obstacle {
	kind := Pit
	if s.hasLast {
		kind = s.lastKind.Opposite()
	}

	placed := make([]Obstacle, 0, n)
	x := s.fieldW
	for range n {
		o := s.place(kind, PatternCluster, x, dims)
		placed = append(placed, o)
		x = o.TrailingEdge() + gap
		kind = kind.Opposite()
	}
	return placed
}

// place appends an obstacle and updates the spacing and pattern bookkeeping.
func (s *Spawner) place(kind Kind, pattern Pattern, x float64, dims config.ObstacleDims) Obstacle {
	s.nextID++
	o := newObstacle(s.nextID, kind, pattern, x, dims, s.groundY)
	s.obstacles = append(s.obstacles, o)
	s.trailingEdge = o.TrailingEdge()

	inSequence := pattern == PatternSequence
	if s.hasLast && kind == s.lastKind {
		s.run++
		s.runHasSequence = s.runHasSequence || inSequence
	} else {
		s.run = 1
		s.runHasSequence = inSequence
	}
	s.lastKind = kind
	s.hasLast = true

	return o
}

// Advance scrolls every obstacle left by speed and culls those off-screen.
// Returns the number of obstacles culled.
func (s *Spawner) Advance(speed float64) int {
	s.trailingEdge -= speed

	kept := s.obstacles[:0]
	culled := 0
	lastCulled := math.Inf(1)
	for _, o := range s.obstacles {
		o.X -= speed
		if o.OffScreen() {
			lastCulled = math.Min(lastCulled, o.TrailingEdge())
			culled++
			continue
		}
		kept = append(kept, o)
	}
	s.obstacles = kept

	// A culled obstacle is never the spacing reference while others remain.
	switch {
	case culled == 0:
	case len(kept) > 0:
		s.trailingEdge = math.Max(s.trailingEdge, s.rightmostEdge())
	default:
		s.trailingEdge = math.Min(s.trailingEdge, lastCulled)
	}
	return culled
}

// rightmostEdge returns the largest trailing edge among live obstacles.
// The list must not be empty.
func (s *Spawner) rightmostEdge() float64 {
	rightmost := s.obstacles[0].TrailingEdge()
	for _, o := range s.obstacles[1:] {
		rightmost = math.Max(rightmost, o.TrailingEdge())
	}
	return rightmost
}

// Remove deletes the obstacle with the given ID and recomputes the spacing
// reference from what remains. Returns false if no such obstacle exists, in
// which case the reference is reset as if the list were empty.
func (s *Spawner) Remove(id uint64) bool {
	idx := -1
	for i, o := range s.obstacles {
		if o.ID == id {
			idx = i
			break
		}
	}

	if idx >= 0 {
		s.obstacles = append(s.obstacles[:idx], s.obstacles[idx+1:]...)
	}

	if idx < 0 || len(s.obstacles) == 0 {
		s.trailingEdge = s.fieldW - s.cfg.ResumeOffset
		return idx >= 0
	}

	s.trailingEdge = math.Max(s.trailingEdge, s.rightmostEdge())
	return true
}

// inject adds an obstacle directly. Used by the clock for scripted setups.
func (s *Spawner) inject(kind Kind, x float64, dims config.ObstacleDims) Obstacle {
	s.nextID++
	o := newObstacle(s.nextID, kind, PatternSingle, x, dims, s.groundY)
	s.obstacles = append(s.obstacles, o)
	s.trailingEdge = math.Max(s.trailingEdge, o.TrailingEdge())
	return o
}
