package trigger

import (
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
)

// Knockback throws the player along a ballistic arc after a hit, on top of
// regular kinematics, and keeps the feet above GroundY.
type Knockback struct {
	Gravity float64
	GroundY float64
	Launch  core.Vec2 // horizontal speed (signed by direction) and upward speed

	active bool
	vel    core.Vec2
}

// NewKnockback creates an idle knockback.
func NewKnockback(gravity, groundY float64) *Knockback {
	return &Knockback{
		Gravity: gravity,
		GroundY: groundY,
		Launch:  core.Vec2{X: 320, Y: -420},
	}
}

// Start launches the player; dir is +1 (right) or -1 (left).
// It does nothing if a knockback is already running.
func (k *Knockback) Start(dir float64) bool {
	if k.active {
		return false
	}
	k.active = true
	k.vel = core.Vec2{X: dir * k.Launch.X, Y: k.Launch.Y}
	return true
}

// Apply integrates one frame of the arc into the player position.
func (k *Knockback) Apply(pl *physics.Player, dt float64) {
	if !k.active {
		return
	}
	k.vel.Y += k.Gravity * dt
	pl.Pos = pl.Pos.Add(k.vel.Scale(dt))
	if pl.Pos.Y+pl.Size.Y > k.GroundY {
		pl.Pos.Y = k.GroundY - pl.Size.Y
		k.vel.Y = 0
	}
}

// Active reports whether the player is being thrown.
func (k *Knockback) Active() bool {
	return k.active
}

// Stop ends the knockback.
func (k *Knockback) Stop() {
	k.active = false
	k.vel = core.Vec2{}
}
