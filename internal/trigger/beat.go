package trigger

import "math"

// BeatClock is a periodic beat derived from elapsed scene time.
type BeatClock struct {
	Hz        float64 // beats per second
	PeakPhase float64 // fraction of a period where the pulse sits
	Latency   float64 // seconds between a pulse cue and the audible thump
}

// Period returns the beat period in seconds.
func (b BeatClock) Period() float64 {
	if b.Hz <= 0 {
		return math.Inf(1)
	}
	return 1 / b.Hz
}

// Phase returns the position inside the current period in [0, 1).
func (b BeatClock) Phase(t float64) float64 {
	c := t * b.Hz
	return c - math.Floor(c)
}

// Envelope is a smooth 0..1 pulse used for drawing.
func (b BeatClock) Envelope(t float64) float64 {
	return math.Sin(2*math.Pi*b.Hz*t)*0.5 + 0.5
}

// Peaked reports whether a pulse boundary was crossed between t-dt and t.
func (b BeatClock) Peaked(t, dt float64) bool {
	p := b.Period()
	a := t - p*b.PeakPhase
	prev := a - dt
	return math.Floor(a/p+0.5) != math.Floor(prev/p+0.5)
}

// Tolerance converts a window in frames to seconds. The window never
// exceeds a quarter period, so an input half a period off is always late.
func (b BeatClock) Tolerance(dt float64, frames int) float64 {
	return math.Min(float64(frames)*dt, b.Period()/4)
}

// OnBeat reports whether an input at time t lands within the window around
// the target offset.
func (b BeatClock) OnBeat(t, dt float64, frames int) bool {
	p := b.Period()
	x := t - b.Latency - p*b.PeakPhase
	nearest := p * math.Round(x/p)
	return math.Abs(x-nearest) <= b.Tolerance(dt, frames)
}

// TargetTime returns the n-th on-beat instant.
func (b BeatClock) TargetTime(n int) float64 {
	p := b.Period()
	return b.Latency + p*b.PeakPhase + float64(n)*p
}

// Combo counts consecutive on-beat hits up to Goal.
type Combo struct {
	counter Saturating
	fired   bool
}

// NewCombo creates a combo that unlocks at goal hits.
func NewCombo(goal int) *Combo {
	return &Combo{counter: Saturating{Max: goal}}
}

// Hit registers one judged input. It returns true exactly once, on the hit
// that reaches the goal.
func (c *Combo) Hit(onBeat bool) bool {
	if !onBeat {
		c.counter.Reset()
		return false
	}
	c.counter.Inc()
	if c.counter.Full() && !c.fired {
		c.fired = true
		return true
	}
	return false
}

// Value returns the current streak.
func (c *Combo) Value() int {
	return c.counter.Value()
}

// Goal returns the target streak.
func (c *Combo) Goal() int {
	return c.counter.Max
}

// Unlocked reports whether the goal was ever reached.
func (c *Combo) Unlocked() bool {
	return c.fired
}
