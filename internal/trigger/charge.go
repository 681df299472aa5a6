package trigger

import "math"

// ChargeEvent reports what a ChargeSensor did this frame.
type ChargeEvent int

const (
	ChargeNone ChargeEvent = iota
	ChargeOpened
	ChargeClosed
)

// ChargeSensor accumulates while a zone is occupied and decays slowly
// otherwise. Reaching HoldTime opens a window that lasts Window seconds.
type ChargeSensor struct {
	HoldTime  float64
	DecayRate float64
	Window    float64

	level     float64
	remaining float64
	open      bool
}

// NewChargeSensor creates a closed, empty sensor.
func NewChargeSensor(hold, decay, window float64) *ChargeSensor {
	return &ChargeSensor{HoldTime: hold, DecayRate: decay, Window: window}
}

// Update advances the sensor by dt. Opening and the window countdown run
// in the same frame, so an open window already lost dt when it is reported.
func (c *ChargeSensor) Update(occupied bool, dt float64) ChargeEvent {
	ev := ChargeNone

	if occupied {
		c.level = math.Min(c.level+dt, c.HoldTime)
		if c.level >= c.HoldTime && !c.open {
			c.open = true
			c.remaining = c.Window
			ev = ChargeOpened
		}
	} else {
		c.level = math.Max(0, c.level-dt*c.DecayRate)
	}

	if c.open {
		c.remaining -= dt
		if c.remaining <= 0 {
			c.open = false
			c.remaining = 0
			c.level = 0
			ev = ChargeClosed
		}
	}
	return ev
}

// Open reports whether the window is active.
func (c *ChargeSensor) Open() bool {
	return c.open
}

// Level returns the charge in seconds.
func (c *ChargeSensor) Level() float64 {
	return c.level
}

// Fraction returns the charge as a 0..1 ratio.
func (c *ChargeSensor) Fraction() float64 {
	if c.HoldTime <= 0 {
		return 1
	}
	return c.level / c.HoldTime
}

// Remaining returns the seconds left in the open window.
func (c *ChargeSensor) Remaining() float64 {
	return c.remaining
}
