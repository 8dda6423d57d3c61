package sim

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/knight-runner/internal/config"
)

// quietConfig returns the default config with spawning turned off.
func quietConfig() config.KnightConfig {
	cfg := config.DefaultKnightConfig()
	for i := range cfg.Levels {
		cfg.Levels[i].SpawnRate = 0
	}
	return cfg
}

func newTestSim(t *testing.T, cfg config.KnightConfig, opts Options) *Simulation {
	t.Helper()
	s, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func runUntil(s *Simulation, limit int, done func(Snapshot) bool) (Snapshot, bool) {
	var snap Snapshot
	for range limit {
		snap = s.Advance(Intent{})
		if done(snap) {
			return snap, true
		}
	}
	return snap, false
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultKnightConfig()
	cfg.Levels = nil
	if _, err := New(cfg, Options{}); !errors.Is(err, config.ErrNoLevels) {
		t.Errorf("expected ErrNoLevels, got %v", err)
	}

	cfg = config.DefaultKnightConfig()
	cfg.Physics.Gravity = 0
	if _, err := New(cfg, Options{}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestMenuIsFrozen(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{})

	snap := s.Advance(Intent{JumpStart: true, JumpRelease: true})
	if snap.Phase != PhaseMenu || snap.Tick != 0 || snap.Distance != 0 {
		t.Errorf("menu should not advance: %+v", snap)
	}

	s.Start()
	if s.Phase() != PhasePlaying {
		t.Fatalf("Start() should enter playing, got %v", s.Phase())
	}
	for range 5 {
		s.Advance(Intent{})
	}

	s.Start()
	if snap := s.Snapshot(); snap.Tick != 5 || snap.Distance != 15 {
		t.Errorf("Start() during play should be ignored, got tick=%d distance=%v", snap.Tick, snap.Distance)
	}
}

func TestScoreAndGroundOffset(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{})
	s.Start()

	var snap Snapshot
	for range 7 {
		snap = s.Advance(Intent{})
	}

	if snap.Distance != 21 {
		t.Errorf("distance = %v, want 21", snap.Distance)
	}
	if snap.Score != 2 {
		t.Errorf("score = %d, want floor(21/10) = 2", snap.Score)
	}
	if snap.GroundOffset != 1 {
		t.Errorf("ground offset = %v, want 1", snap.GroundOffset)
	}
}

func TestEmptyLevelCompletes(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{})
	s.Start()

	prevScore := 0
	snap, ok := runUntil(s, 10000, func(snap Snapshot) bool {
		if snap.Lives != 3 || len(snap.Obstacles) != 0 {
			t.Fatalf("tick %d: lives=%d obstacles=%d on an empty level", snap.Tick, snap.Lives, len(snap.Obstacles))
		}
		if snap.Phase == PhasePlaying {
			prevScore = snap.Score
		}
		return snap.Phase != PhasePlaying
	})
	if !ok {
		t.Fatal("level never finished")
	}

	if snap.Phase != PhaseLevelComplete {
		t.Fatalf("phase = %v, want level_complete", snap.Phase)
	}
	if snap.Score < snap.TargetScore || prevScore >= snap.TargetScore {
		t.Errorf("completion not on the first tick at target: prev=%d score=%d target=%d", prevScore, snap.Score, snap.TargetScore)
	}
	if snap.Tick != 667 {
		t.Errorf("level 0 should complete on tick 667, got %d", snap.Tick)
	}
	if !snap.Has(EventLevelComplete) {
		t.Error("missing level complete event")
	}
}

func TestFireCollisionCostsOneLife(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{})
	s.Start()
	placed := s.PlaceObstacle(Fire, 760)

	snap, ok := runUntil(s, 1000, func(snap Snapshot) bool {
		return snap.Lives != 3
	})
	if !ok {
		t.Fatal("idle player never hit the fire")
	}

	if snap.Lives != 2 {
		t.Errorf("lives = %d, want 2", snap.Lives)
	}
	if snap.Phase != PhasePlaying {
		t.Errorf("phase = %v, want playing", snap.Phase)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("colliding obstacle should be removed, have %d", len(snap.Obstacles))
	}
	if snap.Tick != 207 {
		t.Errorf("hit on tick %d, want 207", snap.Tick)
	}

	found := false
	for _, e := range snap.Events {
		if e.Kind == EventLifeLost && e.ObstacleID == placed.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("missing life lost event for obstacle %d: %+v", placed.ID, snap.Events)
	}
}

func TestOneLifePerTick(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{})
	s.Start()
	s.PlaceObstacle(Fire, 300)
	s.PlaceObstacle(Fire, 300)

	snap, ok := runUntil(s, 1000, func(snap Snapshot) bool {
		return snap.Lives != 3
	})
	if !ok {
		t.Fatal("never collided")
	}
	if snap.Lives != 2 || len(snap.Obstacles) != 1 {
		t.Fatalf("first hit: lives=%d obstacles=%d, want 2/1", snap.Lives, len(snap.Obstacles))
	}

	snap = s.Advance(Intent{})
	if snap.Lives != 1 || len(snap.Obstacles) != 0 {
		t.Errorf("second hit: lives=%d obstacles=%d, want 1/0", snap.Lives, len(snap.Obstacles))
	}
}

func TestGameOverFreezesWorld(t *testing.T) {
	cfg := quietConfig()
	cfg.Gameplay.Lives = 1

	s := newTestSim(t, cfg, Options{})
	s.Start()
	s.PlaceObstacle(Fire, 400)

	over, ok := runUntil(s, 1000, func(snap Snapshot) bool {
		return snap.Phase != PhasePlaying
	})
	if !ok || over.Phase != PhaseGameOver {
		t.Fatalf("expected game over, got %v", over.Phase)
	}
	if !over.Has(EventGameOver) || over.Lives != 0 {
		t.Errorf("game over snapshot wrong: lives=%d events=%+v", over.Lives, over.Events)
	}

	for range 50 {
		snap := s.Advance(Intent{JumpStart: true, JumpRelease: true})
		if snap.Tick != over.Tick || snap.Distance != over.Distance || snap.Score != over.Score {
			t.Fatal("world advanced after game over")
		}
		if !reflect.DeepEqual(snap.Obstacles, over.Obstacles) || snap.Player != over.Player {
			t.Fatal("entities moved after game over")
		}
	}
}

func TestLivesMonotonic(t *testing.T) {
	cfg := config.DefaultKnightConfig()
	cfg.Gameplay.Lives = config.MaxLives
	s := newTestSim(t, cfg, Options{Seed: 3, StartLevel: 4})
	s.Start()

	prev := s.Snapshot()
	for range 20000 {
		snap := s.Advance(Intent{})
		if snap.Lives > prev.Lives {
			t.Fatalf("tick %d: lives increased %d -> %d", snap.Tick, prev.Lives, snap.Lives)
		}
		if prev.Lives-snap.Lives > 1 {
			t.Fatalf("tick %d: lost %d lives in one tick", snap.Tick, prev.Lives-snap.Lives)
		}
		if snap.Lives < prev.Lives && prev.Phase != PhasePlaying {
			t.Fatalf("tick %d: life lost outside play", snap.Tick)
		}
		if snap.Lives == 0 && snap.Phase != PhaseGameOver {
			t.Fatalf("tick %d: zero lives but phase %v", snap.Tick, snap.Phase)
		}
		prev = snap
		if snap.Phase != PhasePlaying {
			break
		}
	}
	if prev.Lives == cfg.Gameplay.Lives {
		t.Error("idle player on the last level never lost a life")
	}
}

func TestScoreMonotonicWithinLevel(t *testing.T) {
	s := newTestSim(t, config.DefaultKnightConfig(), Options{Seed: 11})
	s.Start()
	rng := rand.New(rand.NewSource(5))

	prev := s.Snapshot()
	for range 20000 {
		in := Intent{JumpStart: rng.Intn(30) == 0, JumpRelease: rng.Intn(20) == 0}
		snap := s.Advance(in)

		if snap.Level == prev.Level && snap.Phase == PhasePlaying && snap.Score < prev.Score {
			t.Fatalf("tick %d: score decreased %d -> %d", snap.Tick, prev.Score, snap.Score)
		}
		if snap.Has(EventLevelComplete) && (snap.Score < snap.TargetScore || prev.Score >= snap.TargetScore) {
			t.Fatalf("tick %d: level completed at score %d (prev %d, target %d)", snap.Tick, snap.Score, prev.Score, snap.TargetScore)
		}

		switch snap.Phase {
		case PhaseLevelComplete:
			s.NextLevel()
		case PhaseGameOver:
			s.RestartLevel()
		case PhaseAllComplete:
			return
		}
		prev = s.Snapshot()
	}
}

func TestSameTickTapGivesMinimumJump(t *testing.T) {
	cfg := quietConfig()
	s := newTestSim(t, cfg, Options{})
	s.Start()

	snap := s.Advance(Intent{JumpStart: true, JumpRelease: true})
	if !snap.Has(EventJumped) {
		t.Fatal("tap should jump")
	}
	want := cfg.Physics.JumpStrengthMin + cfg.Physics.Gravity
	if snap.Player.VY != want {
		t.Errorf("vy after tap = %v, want %v", snap.Player.VY, want)
	}
	if snap.Player.OnGround || snap.Player.Y >= cfg.World.GroundY {
		t.Error("player should be airborne after the jump tick")
	}
}

func TestChargeAcrossTicks(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{})
	s.Start()

	s.Advance(Intent{JumpStart: true})
	var snap Snapshot
	for range 9 {
		snap = s.Advance(Intent{})
	}
	if !snap.Player.Charging || snap.Player.ChargePower <= 0 {
		t.Fatalf("charge should build while held: %+v", snap.Player)
	}

	power := snap.Player.ChargePower
	snap = s.Advance(Intent{JumpRelease: true})
	if !snap.Has(EventJumped) {
		t.Fatal("release should jump")
	}
	if snap.Player.VY >= -15 {
		t.Errorf("charged jump vy = %v should be stronger than the minimum (power %v)", snap.Player.VY, power)
	}
}

func TestLevelProgression(t *testing.T) {
	cfg := quietConfig()
	cfg.Levels = []config.LevelConfig{
		{Name: "One", Speed: 10, TargetScore: 1},
		{Name: "Two", Speed: 20, TargetScore: 3},
	}
	s := newTestSim(t, cfg, Options{})
	s.Start()

	snap := s.Advance(Intent{})
	if snap.Phase != PhaseLevelComplete {
		t.Fatalf("phase = %v, want level_complete", snap.Phase)
	}

	s.RestartLevel()
	if s.Phase() != PhaseLevelComplete {
		t.Error("RestartLevel should be ignored outside game over")
	}

	s.NextLevel()
	snap = s.Snapshot()
	if snap.Phase != PhasePlaying || snap.Level != 1 || snap.LevelName != "Two" {
		t.Fatalf("after NextLevel: phase=%v level=%d name=%q", snap.Phase, snap.Level, snap.LevelName)
	}
	if snap.Score != 0 || snap.Distance != 0 || snap.TotalScore != 1 {
		t.Errorf("new level should start fresh: score=%d distance=%v total=%d", snap.Score, snap.Distance, snap.TotalScore)
	}

	snap, _ = runUntil(s, 10, func(snap Snapshot) bool { return snap.Phase != PhasePlaying })
	if snap.Phase != PhaseLevelComplete {
		t.Fatalf("phase = %v, want level_complete", snap.Phase)
	}

	s.NextLevel()
	snap = s.Snapshot()
	if snap.Phase != PhaseAllComplete {
		t.Fatalf("phase = %v, want all_complete", snap.Phase)
	}
	if snap.TotalScore != 5 {
		t.Errorf("total score = %d, want 5", snap.TotalScore)
	}
	if !snap.Has(EventAllComplete) {
		t.Error("missing all complete event")
	}

	s.RestartGame()
	snap = s.Snapshot()
	if snap.Phase != PhasePlaying || snap.Level != 0 || snap.TotalScore != 0 || snap.Lives != 3 {
		t.Errorf("RestartGame should start over: %+v", snap)
	}
}

func TestLivesCarryAcrossLevels(t *testing.T) {
	cfg := quietConfig()
	cfg.Levels[0].TargetScore = 30
	s := newTestSim(t, cfg, Options{})
	s.Start()
	s.PlaceObstacle(Fire, 200)

	snap, ok := runUntil(s, 1000, func(snap Snapshot) bool { return snap.Phase != PhasePlaying })
	if !ok || snap.Phase != PhaseLevelComplete || snap.Lives != 2 {
		t.Fatalf("expected level complete with 2 lives, got phase=%v lives=%d", snap.Phase, snap.Lives)
	}

	s.NextLevel()
	if got := s.Snapshot().Lives; got != 2 {
		t.Errorf("lives after NextLevel = %d, want 2", got)
	}
}

func TestRestartLevelAfterGameOver(t *testing.T) {
	cfg := quietConfig()
	cfg.Gameplay.Lives = 1
	s := newTestSim(t, cfg, Options{StartLevel: 2})
	s.Start()
	s.PlaceObstacle(Fire, 300)

	if _, ok := runUntil(s, 1000, func(snap Snapshot) bool { return snap.Phase == PhaseGameOver }); !ok {
		t.Fatal("expected game over")
	}

	s.NextLevel()
	if s.Phase() != PhaseGameOver {
		t.Fatal("NextLevel should be ignored during game over")
	}

	s.RestartLevel()
	snap := s.Snapshot()
	if snap.Phase != PhasePlaying || snap.Level != 2 || snap.Lives != 1 {
		t.Errorf("RestartLevel: phase=%v level=%d lives=%d", snap.Phase, snap.Level, snap.Lives)
	}
	if snap.Score != 0 || len(snap.Obstacles) != 0 {
		t.Errorf("RestartLevel should clear the level: score=%d obstacles=%d", snap.Score, len(snap.Obstacles))
	}
}

func TestAutoAdvance(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{AutoAdvance: true})
	s.Start()

	snap, ok := runUntil(s, 1000, func(snap Snapshot) bool { return snap.Level == 1 })
	if !ok {
		t.Fatal("auto advance never reached level 1")
	}
	if snap.Phase != PhasePlaying || !snap.Has(EventLevelComplete) {
		t.Errorf("auto advance should keep playing: phase=%v events=%+v", snap.Phase, snap.Events)
	}
	if snap.TotalScore != 200 {
		t.Errorf("total score = %d, want 200", snap.TotalScore)
	}
}

func TestAutoAdvanceLoopsAfterLastLevel(t *testing.T) {
	cfg := quietConfig()
	cfg.Levels = cfg.Levels[:1]
	cfg.Levels[0].Speed = 10
	cfg.Levels[0].TargetScore = 1

	s := newTestSim(t, cfg, Options{AutoAdvance: true})
	s.Start()

	snap := s.Advance(Intent{})
	if !snap.Has(EventAllComplete) {
		t.Fatal("expected all complete after the only level")
	}
	if snap.Phase != PhasePlaying || snap.Level != 0 || snap.Distance != 0 {
		t.Errorf("auto advance should loop to a fresh first level: %+v", snap)
	}
}

func TestDisableCollisions(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{DisableCollisions: true})
	s.Start()
	s.PlaceObstacle(Fire, 300)
	s.PlaceObstacle(Pit, 500)

	for range 300 {
		if snap := s.Advance(Intent{}); snap.Lives != 3 {
			t.Fatalf("tick %d: lost a life with collisions disabled", snap.Tick)
		}
	}
}

func TestStartLevelClamped(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{StartLevel: 99})
	if got := s.Snapshot().Level; got != 4 {
		t.Errorf("level = %d, want 4", got)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []Snapshot {
		s := newTestSim(t, config.DefaultKnightConfig(), Options{Seed: 77, StartLevel: 3})
		s.Start()
		rng := rand.New(rand.NewSource(1))

		out := make([]Snapshot, 0, 3000)
		for range 3000 {
			in := Intent{JumpStart: rng.Intn(25) == 0, JumpRelease: rng.Intn(15) == 0}
			out = append(out, s.Advance(in))
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("tick %d diverged", i)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSim(t, quietConfig(), Options{})
	s.Start()
	s.PlaceObstacle(Fire, 500)

	snap := s.Snapshot()
	snap.Obstacles[0].X = -1

	if got := s.Snapshot().Obstacles[0].X; got != 500 {
		t.Errorf("mutating a snapshot changed the simulation: x=%v", got)
	}
}
