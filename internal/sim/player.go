package sim

import "github.com/vovakirdan/knight-runner/internal/config"

// PlayerBody owns the jump-charge and vertical-motion state of the runner.
// y is the foot position; larger values are lower on screen.
type PlayerBody struct {
	x, y      float64
	vy        float64
	width     float64
	height    float64
	onGround  bool
	isJumping bool

	chargeActive bool
	chargePower  float64 // [0, 1]
	chargeDir    float64 // +1 rising, -1 falling

	physics config.PhysicsConfig
	groundY float64
}

// NewPlayerBody creates a grounded player at the configured position.
func NewPlayerBody(p config.PlayerConfig, physics config.PhysicsConfig, groundY float64) PlayerBody {
	return PlayerBody{
		x:         p.X,
		y:         groundY,
		width:     p.Width,
		height:    p.Height,
		onGround:  true,
		chargeDir: 1,
		physics:   physics,
		groundY:   groundY,
	}
}

// StartCharge begins winding up a jump. Ignored unless grounded and not jumping.
func (p *PlayerBody) StartCharge() {
	if !p.onGround || p.isJumping {
		return
	}
	p.chargeActive = true
	p.chargePower = 0
	p.chargeDir = 1
}

// Tick advances the body by one simulation step.
//
// While charging, power moves along a triangle wave between 0 and 1 and flips
// direction at each bound. Gravity is applied every tick; landing snaps the
// body back onto the ground.
func (p *PlayerBody) Tick() {
	if p.chargeActive && p.onGround && !p.isJumping {
		p.chargePower += p.physics.ChargeRate * p.chargeDir
		if p.chargePower >= 1 {
			p.chargePower = 1
			p.chargeDir = -1
		} else if p.chargePower <= 0 {
			p.chargePower = 0
			p.chargeDir = 1
		}
	} else if !p.chargeActive {
		p.chargePower = 0
	}

	p.vy += p.physics.Gravity
	p.y += p.vy

	if p.y >= p.groundY {
		p.y = p.groundY
		p.vy = 0
		p.isJumping = false
		p.onGround = true
	}
}

// ReleaseJump launches the body with a strength proportional to the current
// charge power. A release without a preceding charge yields the minimum jump.
// Returns true if a jump started.
func (p *PlayerBody) ReleaseJump() bool {
	if p.onGround && !p.isJumping {
		p.vy = JumpStrength(p.physics, p.chargePower)
		p.isJumping = true
		p.onGround = false
		p.clearCharge()
		return true
	}
	if p.chargeActive {
		p.clearCharge()
	}
	return false
}

func (p *PlayerBody) clearCharge() {
	p.chargeActive = false
	p.chargePower = 0
	p.chargeDir = 1
}

// JumpStrength maps a charge power to an initial vertical velocity.
// Higher power gives a more negative (stronger upward) velocity.
func JumpStrength(physics config.PhysicsConfig, power float64) float64 {
	power = clampF(power, 0, 1)
	return physics.JumpStrengthMin + (physics.JumpStrengthMax-physics.JumpStrengthMin)*power
}

// Bounds returns the player's box; the top-left corner is derived from the foot position.
func (p *PlayerBody) Bounds() Box {
	return Box{X: p.x, Y: p.y - p.height, W: p.width, H: p.height}
}

// X returns the fixed horizontal position.
func (p *PlayerBody) X() float64 { return p.x }

// Y returns the foot position.
func (p *PlayerBody) Y() float64 { return p.y }

// VY returns the vertical velocity.
func (p *PlayerBody) VY() float64 { return p.vy }

// OnGround reports whether the body is standing on the ground.
func (p *PlayerBody) OnGround() bool { return p.onGround }

// IsJumping reports whether the body is in a jump arc.
func (p *PlayerBody) IsJumping() bool { return p.isJumping }

// Charging reports whether a jump charge is in progress.
func (p *PlayerBody) Charging() bool { return p.chargeActive }

// ChargePower returns the current charge power in [0, 1].
func (p *PlayerBody) ChargePower() float64 { return p.chargePower }

// GroundY returns the ground line the body lands on.
func (p *PlayerBody) GroundY() float64 { return p.groundY }

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
