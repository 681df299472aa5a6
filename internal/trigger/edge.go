// Package trigger holds the small per-stage state machines: edge detectors,
// landing tests, saturating counters, beat windows, charge sensors, timed
// actors and knockback. Each one is advanced once per frame after kinematics.
package trigger

import (
	"math"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
)

// Edge detects false->true transitions of a sampled boolean.
type Edge struct {
	prev bool
}

// Rise records now and reports whether it is a rising edge.
func (e *Edge) Rise(now bool) bool {
	fired := now && !e.prev
	e.prev = now
	return fired
}

// Prev returns the last sampled value.
func (e *Edge) Prev() bool {
	return e.prev
}

// Reset forgets the last sample.
func (e *Edge) Reset() {
	e.prev = false
}

// LandedOn reports whether the player's bottom edge crossed the top of r
// downward during the last Advance while overlapping it horizontally.
// Walking into r from the side never counts.
func LandedOn(pl *physics.Player, r core.Rect) bool {
	prevBottom := pl.PrevPos.Y + pl.Size.Y
	nowBottom := pl.Pos.Y + pl.Size.Y
	return prevBottom <= r.Y && nowBottom >= r.Y && pl.Vel.Y >= 0 && pl.Box().OverlapsX(r)
}

// Landing is a tolerant landing test for targets that are small or move.
// It requires a real drop, not a step off a ledge of the same height.
type Landing struct {
	Eps     float64 // slack around the top edge
	MinFall float64 // previous bottom must be at least this far above the top
	MinVy   float64 // or the player must be falling at least this fast
}

// DefaultLanding returns the stock tolerances.
func DefaultLanding() Landing {
	return Landing{Eps: 1, MinFall: 3, MinVy: 80}
}

// FromJump reports whether the player came down onto r from above.
func (l Landing) FromJump(pl *physics.Player, r core.Rect) bool {
	prevBottom := pl.PrevPos.Y + pl.Size.Y
	nowBottom := pl.Pos.Y + pl.Size.Y

	crossed := prevBottom <= r.Y+l.Eps && nowBottom >= r.Y-l.Eps
	if !crossed || pl.Vel.Y < -0.1 {
		return false
	}
	if !pl.Box().OverlapsX(r) {
		return false
	}
	if nowBottom-prevBottom <= 0.5 {
		return false
	}
	return prevBottom <= r.Y-l.MinFall || pl.Vel.Y > l.MinVy
}

// Saturating is a counter that stops at Max.
type Saturating struct {
	Max   int
	value int
}

// Inc increments the counter unless it is full.
func (c *Saturating) Inc() bool {
	if c.value >= c.Max {
		return false
	}
	c.value++
	return true
}

// Value returns the current count.
func (c *Saturating) Value() int {
	return c.value
}

// Full reports whether the counter reached Max.
func (c *Saturating) Full() bool {
	return c.value >= c.Max
}

// Reset sets the counter back to zero.
func (c *Saturating) Reset() {
	c.value = 0
}

// Cooldown blocks repeated actions for Duration seconds.
type Cooldown struct {
	Duration float64
	left     float64
}

// Tick advances the timer.
func (c *Cooldown) Tick(dt float64) {
	c.left = math.Max(0, c.left-dt)
}

// Ready reports whether the cooldown elapsed.
func (c *Cooldown) Ready() bool {
	return c.left <= 0
}

// Restart starts a new cooldown period.
func (c *Cooldown) Restart() {
	c.left = c.Duration
}
