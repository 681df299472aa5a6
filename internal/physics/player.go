package physics

import (
	"math"

	"github.com/vovakirdan/sinland/internal/core"
)

// Controls is the per-frame movement intent.
type Controls struct {
	Left, Right bool // held
	Jump        bool // pressed this frame
	Run         bool // held
}

// ControlsFrom reads movement intent from an input snapshot.
func ControlsFrom(in core.InputFrame) Controls {
	return Controls{
		Left:  in.IsHeld(core.ActionLeft),
		Right: in.IsHeld(core.ActionRight),
		Jump:  in.Has(core.ActionJump) || in.Has(core.ActionUp),
		Run:   in.IsHeld(core.ActionRun),
	}
}

// Player is the controllable body. Size is fixed after creation.
type Player struct {
	Size            core.Vec2
	Pos             core.Vec2
	PrevPos         core.Vec2
	Vel             core.Vec2
	Grounded        bool
	JumpedThisFrame bool
	WalkPhase       float64
}

// NewPlayer creates a player resting at spawn.
func NewPlayer(spawn core.Vec2, p Params) *Player {
	return &Player{
		Size:    core.Vec2{X: p.Width, Y: p.Height},
		Pos:     spawn,
		PrevPos: spawn,
	}
}

// Box returns the current bounding box.
func (pl *Player) Box() core.Rect {
	return core.RectAt(pl.Pos, pl.Size)
}

// PrevBox returns the bounding box at the start of the last Advance.
func (pl *Player) PrevBox() core.Rect {
	return core.RectAt(pl.PrevPos, pl.Size)
}

// Feet returns a thin strip under the player used for standing checks.
func (pl *Player) Feet() core.Rect {
	return core.NewRect(pl.Pos.X, pl.Pos.Y+pl.Size.Y-2, pl.Size.X, 4)
}

// Respawn puts the player back at spawn at rest.
func (pl *Player) Respawn(spawn core.Vec2) {
	pl.Pos = spawn
	pl.PrevPos = spawn
	pl.Vel = core.Vec2{}
	pl.Grounded = false
	pl.JumpedThisFrame = false
}

// Advance integrates one frame of motion and resolves collisions against
// colliders, X axis first, then Y. Colliders are processed in list order.
func (pl *Player) Advance(colliders []core.Rect, dt float64, c Controls, p Params) {
	pl.PrevPos = pl.Pos
	pl.JumpedThisFrame = false

	ax := 0.0
	if c.Left != c.Right {
		accel := p.AirAccel
		if pl.Grounded {
			accel = p.MoveAccel
		}
		if c.Left {
			ax = -accel
		} else {
			ax = accel
		}
	}

	pl.Vel.X += ax * dt

	fric := p.AirFriction
	if pl.Grounded {
		fric = p.GroundFriction
	}
	pl.Vel.X -= pl.Vel.X * math.Min(fric*dt, 1)

	maxX := p.MaxSpeedX
	if c.Run {
		maxX *= p.RunMultiplier
	}
	pl.Vel.X = core.ClampF(pl.Vel.X, -maxX, maxX)

	pl.Vel.Y += p.Gravity * dt

	if pl.Grounded && c.Jump && p.JumpSpeed > 0 {
		pl.Vel.Y = -p.JumpSpeed
		pl.Grounded = false
		pl.JumpedThisFrame = true
	}

	pl.Pos.X += pl.Vel.X * dt
	pl.resolveX(colliders, p.Epsilon)

	pl.Pos.Y += pl.Vel.Y * dt
	pl.resolveY(colliders, p.Epsilon)
}

func (pl *Player) resolveX(colliders []core.Rect, eps float64) {
	box := pl.Box()
	for _, c := range colliders {
		if !box.Intersects(c) {
			continue
		}
		if pl.Vel.X > 0 {
			pl.Pos.X = c.X - pl.Size.X - eps
		} else if pl.Vel.X < 0 {
			pl.Pos.X = c.Right() + eps
		}
		pl.Vel.X = 0
		box = pl.Box()
	}
}

func (pl *Player) resolveY(colliders []core.Rect, eps float64) {
	pl.Grounded = false
	box := pl.Box()
	for _, c := range colliders {
		if !box.Intersects(c) {
			continue
		}
		if pl.Vel.Y > 0 {
			pl.Pos.Y = c.Y - pl.Size.Y - eps
			pl.Vel.Y = 0
			pl.Grounded = true
		} else if pl.Vel.Y < 0 {
			pl.Pos.Y = c.Bottom() + eps
			pl.Vel.Y = 0
		}
		box = pl.Box()
	}
}

// AdvanceAnimationPhase moves the walk cycle while walking on the ground.
// The phase is frozen, not reset, otherwise.
func (pl *Player) AdvanceAnimationPhase(dt float64, p Params) {
	if pl.Grounded && math.Abs(pl.Vel.X) > p.WalkSpeedThreshold {
		pl.WalkPhase += dt * 2 * math.Pi * p.WalkCycleHz
	}
}

// Pose is the derived visual pose of the walk cycle.
type Pose struct {
	Step  float64 // vertical bob in world units
	Swing float64 // limb swing in [-1, 1]
	Tilt  float64 // body lean in radians, signed by direction
}

// Pose derives the drawing pose from the walk phase and velocity.
func (pl *Player) Pose(p Params) Pose {
	speed := 0.0
	if p.MaxSpeedX > 0 {
		speed = core.Saturate(math.Abs(pl.Vel.X) / p.MaxSpeedX)
	}
	tilt := 0.08 * speed
	if pl.Vel.X < 0 {
		tilt = -tilt
	}
	if !pl.Grounded {
		return Pose{Tilt: tilt}
	}
	return Pose{
		Step:  math.Abs(math.Sin(pl.WalkPhase)) * 2 * speed,
		Swing: math.Sin(pl.WalkPhase) * speed,
		Tilt:  tilt,
	}
}
