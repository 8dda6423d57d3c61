package sim

// Collides reports whether the player box hits an obstacle.
//
// A pit hits when the horizontal ranges overlap and the player's foot is at or
// below the ground line (not airborne above it). A fire hits on plain box overlap.
func Collides(player Box, footY, groundY float64, o Obstacle) bool {
	switch o.Kind {
	case Pit:
		return player.OverlapsX(o.Bounds()) && footY >= groundY
	default:
		return player.Overlaps(o.Bounds())
	}
}

// FirstCollision scans obstacles oldest-first and returns the index of the
// first one the player hits, or -1.
func FirstCollision(player Box, footY, groundY float64, obstacles []Obstacle) int {
	for i, o := range obstacles {
		if Collides(player, footY, groundY, o) {
			return i
		}
	}
	return -1
}

// resolveCollision applies the life-loss policy for at most one obstacle per tick.
func (s *Simulation) resolveCollision() {
	obstacles := s.spawner.Obstacles()
	idx := FirstCollision(s.player.Bounds(), s.player.Y(), s.player.GroundY(), obstacles)
	if idx < 0 {
		return
	}
	s.loseLife(obstacles[idx].ID)
}

// loseLife decrements lives and either ends the game or removes the obstacle
// that caused the hit so play can continue.
func (s *Simulation) loseLife(obstacleID uint64) {
	if s.lives > 0 {
		s.lives--
	}
	s.emit(EventLifeLost, obstacleID)

	if s.lives == 0 {
		s.phase = PhaseGameOver
		s.emit(EventGameOver, obstacleID)
		return
	}

	// A missing obstacle is tolerated; Remove falls back to the empty-list reset.
	s.spawner.Remove(obstacleID)
}
