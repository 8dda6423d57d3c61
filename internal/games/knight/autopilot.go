package knight

import (
	"math"

	"github.com/vovakirdan/knight-runner/internal/config"
	"github.com/vovakirdan/knight-runner/internal/sim"
)

// pitClearance is how far above the ground the foot must stay over a pit.
const pitClearance = 1.0

// Autopilot plays the game for demo mode. It watches the nearest obstacle
// ahead, works out the jump that keeps the player clear of it for the whole
// overlap, charges for exactly that long and releases.
type Autopilot struct {
	physics config.PhysicsConfig
	margin  float64 // Extra ticks of airtime requested on top of the overlap

	charging   bool
	chargeLeft int
	target     uint64
}

// JumpPlan describes how to clear one obstacle.
type JumpPlan struct {
	ChargeTicks int     // Ticks to hold the charge before releasing (0 = tap)
	Velocity    float64 // Take-off velocity the charge produces
	Lead        float64 // Gap to the obstacle at which charging should begin
}

// NewAutopilot creates an autopilot for the given physics.
func NewAutopilot(physics config.PhysicsConfig) *Autopilot {
	return &Autopilot{physics: physics, margin: 4}
}

// Reset forgets any jump in progress.
func (a *Autopilot) Reset() {
	a.charging = false
	a.chargeLeft = 0
	a.target = 0
}

// Next returns the intent for the tick after snap.
func (a *Autopilot) Next(snap sim.Snapshot) sim.Intent {
	if snap.Phase != sim.PhasePlaying {
		a.Reset()
		return sim.Intent{}
	}

	if a.charging {
		if a.chargeLeft > 0 {
			a.chargeLeft--
			return sim.Intent{}
		}
		a.charging = false
		return sim.Intent{JumpRelease: true}
	}

	if !snap.Player.OnGround {
		return sim.Intent{}
	}

	o, ok := nextObstacle(snap)
	if !ok || o.ID == a.target {
		return sim.Intent{}
	}

	gap := o.X - (snap.Player.X + snap.Player.Width)
	plan := a.Plan(o, snap.Player, snap.Speed)
	if gap > plan.Lead {
		return sim.Intent{}
	}

	a.target = o.ID
	if plan.ChargeTicks == 0 {
		return sim.Intent{JumpStart: true, JumpRelease: true}
	}
	a.charging = true
	a.chargeLeft = plan.ChargeTicks - 1
	return sim.Intent{JumpStart: true}
}

// Plan computes the jump for an obstacle at the given scroll speed.
//
// Height above ground after t ticks is -v*t - g*t*t/2, so the time spent
// above a clearance h is 2*sqrt(v*v - 2*g*h)/g. The take-off velocity is the
// smallest one whose time above h covers the overlap plus the margin, and the
// overlap is centred in that window.
func (a *Autopilot) Plan(o sim.Obstacle, player sim.PlayerView, speed float64) JumpPlan {
	g := a.physics.Gravity
	minV := math.Abs(a.physics.JumpStrengthMin)
	maxV := math.Abs(a.physics.JumpStrengthMax)

	h := pitClearance
	if o.Kind == sim.Fire {
		h = o.Height
	}

	overlap := (player.Width + o.Width) / speed
	need := overlap + a.margin
	v := math.Sqrt(math.Pow(g*need/2, 2) + 2*g*h)

	ticks := 0
	if v > minV {
		power := math.Min(1, (v-minV)/(maxV-minV))
		ticks = int(math.Ceil(power / a.physics.ChargeRate))
	}
	v = math.Abs(sim.JumpStrength(a.physics, float64(ticks)*a.physics.ChargeRate))

	disc := math.Max(0, v*v-2*g*h)
	rise := (v - math.Sqrt(disc)) / g
	fall := (v + math.Sqrt(disc)) / g
	start := math.Max(rise, (rise+fall)/2-overlap/2)

	return JumpPlan{
		ChargeTicks: ticks,
		Velocity:    -v,
		Lead:        (float64(ticks) + start) * speed,
	}
}

// nextObstacle returns the nearest obstacle the player has not reached yet.
func nextObstacle(snap sim.Snapshot) (sim.Obstacle, bool) {
	right := snap.Player.X + snap.Player.Width

	var best sim.Obstacle
	found := false
	for _, o := range snap.Obstacles {
		if o.X < right {
			continue
		}
		if !found || o.X < best.X {
			best = o
			found = true
		}
	}
	return best, found
}
