package sim

// PlayerView is the read-only view of the player body.
type PlayerView struct {
	X           float64
	Y           float64 // Foot position
	Width       float64
	Height      float64
	VY          float64
	ChargePower float64
	Charging    bool
	OnGround    bool
}

// EventKind identifies something that happened during a tick.
type EventKind uint8

const (
	EventJumped EventKind = iota
	EventSpawned
	EventLifeLost
	EventLevelComplete
	EventAllComplete
	EventGameOver
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventJumped:
		return "jumped"
	case EventSpawned:
		return "spawned"
	case EventLifeLost:
		return "life_lost"
	case EventLevelComplete:
		return "level_complete"
	case EventAllComplete:
		return "all_complete"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event records a state change within a tick.
type Event struct {
	Kind       EventKind
	Tick       uint64
	Level      int
	ObstacleID uint64 // Set for spawn and collision events
}

// Snapshot is a value copy of the simulation state for renderers.
type Snapshot struct {
	Tick         uint64
	Phase        Phase
	Level        int
	LevelName    string
	LevelCount   int
	Score        int // Current level score, floor(distance / divisor)
	TargetScore  int
	TotalScore   int // Completed levels plus the current level
	Distance     float64
	Lives        int
	MaxLives     int
	Speed        float64
	GroundOffset float64
	Player       PlayerView
	Obstacles    []Obstacle
	Events       []Event
}

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	lvl := s.cfg.Level(s.level)

	obstacles := make([]Obstacle, len(s.spawner.Obstacles()))
	copy(obstacles, s.spawner.Obstacles())

	var events []Event
	if len(s.events) > 0 {
		events = make([]Event, len(s.events))
		copy(events, s.events)
	}

	b := s.player.Bounds()
	return Snapshot{
		Tick:         s.tick,
		Phase:        s.phase,
		Level:        s.level,
		LevelName:    lvl.Name,
		LevelCount:   len(s.cfg.Levels),
		Score:        s.score,
		TargetScore:  lvl.TargetScore,
		TotalScore:   s.banked + s.score,
		Distance:     s.distance,
		Lives:        s.lives,
		MaxLives:     s.cfg.Gameplay.Lives,
		Speed:        lvl.Speed,
		GroundOffset: s.groundOffset(),
		Player: PlayerView{
			X:           s.player.X(),
			Y:           s.player.Y(),
			Width:       b.W,
			Height:      b.H,
			VY:          s.player.VY(),
			ChargePower: s.player.ChargePower(),
			Charging:    s.player.Charging(),
			OnGround:    s.player.OnGround(),
		},
		Obstacles: obstacles,
		Events:    events,
	}
}

// Has reports whether an event of the given kind occurred in this snapshot's tick.
func (snap Snapshot) Has(kind EventKind) bool {
	for _, e := range snap.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
