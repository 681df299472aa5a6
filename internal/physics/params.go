// Package physics implements player kinematics: gravity, acceleration,
// exponential friction, jumping, and axis-separated AABB resolution.
package physics

// Params holds the tunable constants of player motion. Units are world units
// and seconds.
type Params struct {
	Gravity            float64
	MoveAccel          float64 // horizontal acceleration on the ground
	AirAccel           float64 // horizontal acceleration in the air
	MaxSpeedX          float64
	RunMultiplier      float64 // applied to MaxSpeedX while running
	JumpSpeed          float64
	GroundFriction     float64
	AirFriction        float64
	Epsilon            float64 // separation left after a collision snap
	WalkCycleHz        float64
	WalkSpeedThreshold float64
	Width, Height      float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Gravity:            1800,
		MoveAccel:          2400,
		AirAccel:           1400,
		MaxSpeedX:          260,
		RunMultiplier:      1.4,
		JumpSpeed:          560,
		GroundFriction:     14,
		AirFriction:        2,
		Epsilon:            0.01,
		WalkCycleHz:        4,
		WalkSpeedThreshold: 1,
		Width:              28,
		Height:             36,
	}
}

// Restrained returns a copy for slow, jumpless walking: acceleration and top
// speed scaled down and running disabled.
func (p Params) Restrained(accelScale, speedScale float64) Params {
	p.MoveAccel *= accelScale
	p.AirAccel *= accelScale
	p.MaxSpeedX *= speedScale
	p.RunMultiplier = 1
	p.JumpSpeed = 0
	return p
}
