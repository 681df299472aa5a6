package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sinland/internal/core"
)

const dt = 1.0 / 60

var ground = core.NewRect(0, 580, 960, 60)

func groundedPlayer(t *testing.T, x float64, p Params) *Player {
	t.Helper()
	pl := NewPlayer(core.Vec2{X: x, Y: 540}, p)
	for i := 0; i < 60 && !pl.Grounded; i++ {
		pl.Advance([]core.Rect{ground}, dt, Controls{}, p)
	}
	require.True(t, pl.Grounded, "player should settle on the ground")
	return pl
}

func TestAdvanceSettlesOnGround(t *testing.T) {
	p := DefaultParams()
	pl := groundedPlayer(t, 80, p)

	assert.InDelta(t, 580-36-p.Epsilon, pl.Pos.Y, 1e-9)
	assert.Zero(t, pl.Vel.Y)
	assert.False(t, pl.Box().Intersects(ground))

	// Standing still keeps the player grounded frame after frame.
	for i := 0; i < 30; i++ {
		pl.Advance([]core.Rect{ground}, dt, Controls{}, p)
		require.True(t, pl.Grounded)
		require.False(t, pl.Box().Intersects(ground))
	}
}

func TestAdvanceResolvesWalls(t *testing.T) {
	p := DefaultParams()
	wall := core.NewRect(200, 0, 20, 640)

	tests := []struct {
		name   string
		startX float64
		velX   float64
		ctrl   Controls
		wantX  float64
	}{
		{"moving right", 170, 260, Controls{Right: true}, 200 - 28 - p.Epsilon},
		{"moving left", 222, -260, Controls{Left: true}, 220 + p.Epsilon},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pl := NewPlayer(core.Vec2{X: tc.startX, Y: 100}, p)
			pl.Vel.X = tc.velX
			pl.Advance([]core.Rect{wall}, dt, tc.ctrl, p)

			assert.InDelta(t, tc.wantX, pl.Pos.X, 1e-9)
			assert.Zero(t, pl.Vel.X)
			assert.False(t, pl.Box().Intersects(wall))
		})
	}
}

func TestAdvanceHeadBump(t *testing.T) {
	p := DefaultParams()
	ceiling := core.NewRect(0, 480, 960, 20)
	pl := NewPlayer(core.Vec2{X: 100, Y: 502}, p)
	pl.Vel.Y = -560

	pl.Advance([]core.Rect{ceiling}, dt, Controls{}, p)

	assert.InDelta(t, 500+p.Epsilon, pl.Pos.Y, 1e-9)
	assert.Zero(t, pl.Vel.Y)
	assert.False(t, pl.Grounded)
}

// After each frame the box never overlaps the single collider it was
// resolved against, for a spread of approach velocities.
func TestAdvanceNoOverlapAfterResolution(t *testing.T) {
	p := DefaultParams()
	block := core.NewRect(300, 400, 120, 40)

	for vx := -600.0; vx <= 600; vx += 75 {
		for vy := -900.0; vy <= 900; vy += 150 {
			for _, start := range []core.Vec2{{X: 260, Y: 380}, {X: 400, Y: 420}, {X: 330, Y: 350}, {X: 330, Y: 442}} {
				pl := NewPlayer(start, p)
				if pl.Box().Intersects(block) {
					continue
				}
				pl.Vel = core.Vec2{X: vx, Y: vy}
				pl.Advance([]core.Rect{block}, dt, Controls{}, p)
				require.False(t, pl.Box().Intersects(block),
					"start=%v vel=(%v,%v) ended at %v", start, vx, vy, pl.Pos)
			}
		}
	}
}

func TestAdvanceNoTunnelingThroughThickPlatform(t *testing.T) {
	p := DefaultParams()
	platform := core.NewRect(0, 500, 960, 30)
	pl := NewPlayer(core.Vec2{X: 100, Y: 400}, p)
	pl.Vel.Y = 1500 // 25 units per frame, less than the platform thickness

	for i := 0; i < 20; i++ {
		pl.Advance([]core.Rect{platform}, dt, Controls{}, p)
	}

	assert.True(t, pl.Grounded)
	assert.Less(t, pl.Box().Bottom(), platform.Y)
}

func TestFrictionNeverFlipsSign(t *testing.T) {
	p := DefaultParams()
	for _, step := range []float64{1.0 / 144, 1.0 / 60, 1.0 / 30, 0.1, 0.5, 2} {
		for _, grounded := range []bool{true, false} {
			for _, v := range []float64{-300, -5, 0.5, 42, 300} {
				pl := NewPlayer(core.Vec2{X: 400, Y: 100}, p)
				pl.Grounded = grounded
				pl.Vel.X = v
				pl.Advance(nil, step, Controls{}, p)

				if v > 0 {
					assert.GreaterOrEqual(t, pl.Vel.X, 0.0, "dt=%v v=%v", step, v)
				} else {
					assert.LessOrEqual(t, pl.Vel.X, 0.0, "dt=%v v=%v", step, v)
				}
				assert.LessOrEqual(t, math.Abs(pl.Vel.X), math.Abs(v))
			}
		}
	}
}

func TestJumpRequiresGroundAndFreshPress(t *testing.T) {
	p := DefaultParams()

	t.Run("grounded press jumps", func(t *testing.T) {
		pl := groundedPlayer(t, 100, p)
		in := core.NewInputFrame()
		in.Press(core.ActionJump)
		pl.Advance([]core.Rect{ground}, dt, ControlsFrom(in), p)

		assert.True(t, pl.JumpedThisFrame)
		assert.False(t, pl.Grounded)
		assert.Equal(t, -p.JumpSpeed, pl.Vel.Y)
	})

	t.Run("held without press does not jump", func(t *testing.T) {
		pl := groundedPlayer(t, 100, p)
		in := core.NewInputFrame()
		in.Hold(core.ActionJump)
		pl.Advance([]core.Rect{ground}, dt, ControlsFrom(in), p)

		assert.False(t, pl.JumpedThisFrame)
		assert.True(t, pl.Grounded)
	})

	t.Run("airborne press does not jump", func(t *testing.T) {
		pl := NewPlayer(core.Vec2{X: 100, Y: 100}, p)
		pl.Advance(nil, dt, Controls{Jump: true}, p)

		assert.False(t, pl.JumpedThisFrame)
		assert.Greater(t, pl.Vel.Y, 0.0)
	})

	t.Run("jump flag lasts one frame", func(t *testing.T) {
		pl := groundedPlayer(t, 100, p)
		pl.Advance([]core.Rect{ground}, dt, Controls{Jump: true}, p)
		require.True(t, pl.JumpedThisFrame)
		pl.Advance([]core.Rect{ground}, dt, Controls{Jump: true}, p)
		assert.False(t, pl.JumpedThisFrame)
	})
}

func TestWalkLeftApproachesMaxSpeed(t *testing.T) {
	p := DefaultParams()
	pl := groundedPlayer(t, 600, p)

	prev := pl.Vel.X
	for i := 0; i < 30; i++ { // 0.5s
		pl.Advance([]core.Rect{ground}, dt, Controls{Left: true}, p)
		require.LessOrEqual(t, pl.Vel.X, prev, "speed should build monotonically")
		require.GreaterOrEqual(t, pl.Vel.X, -p.MaxSpeedX, "speed should never overshoot")
		prev = pl.Vel.X
	}
	assert.Less(t, pl.Vel.X, 0.0)
	assert.True(t, pl.Grounded)
}

func TestRunSpeedClamp(t *testing.T) {
	p := DefaultParams()
	pl := NewPlayer(core.Vec2{X: 100, Y: 100}, p)
	pl.Vel.X = 1000
	pl.Advance(nil, dt, Controls{Right: true, Run: true}, p)
	assert.InDelta(t, p.MaxSpeedX*p.RunMultiplier, pl.Vel.X, 1e-9)

	pl.Vel.X = 1000
	pl.Advance(nil, dt, Controls{Right: true}, p)
	assert.InDelta(t, p.MaxSpeedX, pl.Vel.X, 1e-9)
}

func TestOpposingInputsCancel(t *testing.T) {
	p := DefaultParams()
	pl := groundedPlayer(t, 100, p)
	pl.Advance([]core.Rect{ground}, dt, Controls{Left: true, Right: true}, p)
	assert.Zero(t, pl.Vel.X)
}

// Overlapping platforms: the list order decides which one the player snaps to.
func TestOverlappingCollidersUseListOrder(t *testing.T) {
	p := DefaultParams()
	low := core.NewRect(0, 580, 960, 60)
	high := core.NewRect(0, 578, 960, 10)

	pl := NewPlayer(core.Vec2{X: 100, Y: 540}, p)
	pl.Vel.Y = 300
	pl.Advance([]core.Rect{low, high}, dt, Controls{}, p)
	assert.InDelta(t, 580-36-p.Epsilon, pl.Pos.Y, 1e-9)

	pl = NewPlayer(core.Vec2{X: 100, Y: 540}, p)
	pl.Vel.Y = 300
	pl.Advance([]core.Rect{high, low}, dt, Controls{}, p)
	assert.InDelta(t, 578-36-p.Epsilon, pl.Pos.Y, 1e-9)
}

func TestRestrainedParams(t *testing.T) {
	p := DefaultParams().Restrained(0.8, 0.7)
	pl := groundedPlayer(t, 100, p)
	pl.Advance([]core.Rect{ground}, dt, Controls{Jump: true, Run: true, Right: true}, p)

	assert.False(t, pl.JumpedThisFrame)
	assert.InDelta(t, 2400*0.8, p.MoveAccel, 1e-9)
	assert.InDelta(t, 260*0.7, p.MaxSpeedX, 1e-9)
	assert.Equal(t, 1.0, p.RunMultiplier)
}

func TestAnimationPhase(t *testing.T) {
	p := DefaultParams()
	pl := groundedPlayer(t, 100, p)

	pl.Vel.X = 100
	pl.AdvanceAnimationPhase(0.25, p)
	assert.InDelta(t, 2*math.Pi, pl.WalkPhase, 1e-9)

	frozen := pl.WalkPhase
	pl.Vel.X = 0.5
	pl.AdvanceAnimationPhase(0.25, p)
	assert.Equal(t, frozen, pl.WalkPhase, "slow movement freezes the phase")

	pl.Vel.X = 100
	pl.Grounded = false
	pl.AdvanceAnimationPhase(0.25, p)
	assert.Equal(t, frozen, pl.WalkPhase, "airborne freezes the phase")
}

func TestRespawn(t *testing.T) {
	p := DefaultParams()
	pl := NewPlayer(core.Vec2{X: 1, Y: 2}, p)
	pl.Vel = core.Vec2{X: 50, Y: 900}
	pl.Pos = core.Vec2{X: 400, Y: 700}

	spawn := core.Vec2{X: 80, Y: 540}
	pl.Respawn(spawn)

	assert.Equal(t, spawn, pl.Pos)
	assert.Equal(t, spawn, pl.PrevPos)
	assert.Equal(t, core.Vec2{}, pl.Vel)
}
