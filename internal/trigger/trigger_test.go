package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
)

func TestEdgeRise(t *testing.T) {
	var e Edge
	samples := []bool{false, true, true, false, true, true, true}
	want := []bool{false, true, false, false, true, false, false}

	for i, s := range samples {
		assert.Equal(t, want[i], e.Rise(s), "sample %d", i)
	}

	e.Reset()
	assert.False(t, e.Prev())
	assert.True(t, e.Rise(true), "after Reset a held input fires again")
}

// A switch pressed once increments the counter by one; holding it for ten
// more frames does not increment further.
func TestHeldSwitchCountsOnce(t *testing.T) {
	var e Edge
	c := Saturating{Max: 7}

	if e.Rise(true) {
		c.Inc()
	}
	require.Equal(t, 1, c.Value())

	for i := 0; i < 10; i++ {
		if e.Rise(true) {
			c.Inc()
		}
	}
	assert.Equal(t, 1, c.Value())
}

func TestSaturatingNeverExceedsMax(t *testing.T) {
	c := Saturating{Max: 3}
	incs := 0
	for i := 0; i < 50; i++ {
		if c.Inc() {
			incs++
		}
		require.LessOrEqual(t, c.Value(), c.Max)
	}
	assert.Equal(t, 3, incs)
	assert.True(t, c.Full())

	c.Reset()
	assert.Zero(t, c.Value())
	assert.False(t, c.Full())
}

func TestCooldown(t *testing.T) {
	c := Cooldown{Duration: 0.2}
	assert.True(t, c.Ready(), "fresh cooldown is ready")

	c.Restart()
	assert.False(t, c.Ready())
	c.Tick(0.1)
	assert.False(t, c.Ready())
	c.Tick(0.1)
	assert.True(t, c.Ready())
}

func playerAt(prev, now core.Vec2, vy float64) *physics.Player {
	pl := physics.NewPlayer(now, physics.DefaultParams())
	pl.PrevPos = prev
	pl.Vel.Y = vy
	return pl
}

func TestLandedOn(t *testing.T) {
	pad := core.NewRect(420, 560, 48, 20)

	tests := []struct {
		name     string
		prev     core.Vec2
		now      core.Vec2
		vy       float64
		expected bool
	}{
		{"falls onto the top", core.Vec2{X: 430, Y: 520}, core.Vec2{X: 430, Y: 525}, 300, true},
		{"bottom lands exactly on the top", core.Vec2{X: 430, Y: 522}, core.Vec2{X: 430, Y: 524}, 120, true},
		{"walks in from the side at constant height", core.Vec2{X: 380, Y: 540}, core.Vec2{X: 395, Y: 540}, 0, false},
		{"already standing on it", core.Vec2{X: 430, Y: 525}, core.Vec2{X: 430, Y: 525}, 0, false},
		{"moving up through it", core.Vec2{X: 430, Y: 530}, core.Vec2{X: 430, Y: 520}, -300, false},
		{"falls beside it", core.Vec2{X: 470, Y: 520}, core.Vec2{X: 470, Y: 525}, 300, false},
		{"touching the side edge only", core.Vec2{X: 392, Y: 520}, core.Vec2{X: 392, Y: 525}, 300, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pl := playerAt(tc.prev, tc.now, tc.vy)
			assert.Equal(t, tc.expected, LandedOn(pl, pad))
		})
	}
}

func TestLandingFromJump(t *testing.T) {
	button := core.NewRect(44, 538, 24, 6)
	l := DefaultLanding()

	tests := []struct {
		name     string
		prev     core.Vec2
		now      core.Vec2
		vy       float64
		expected bool
	}{
		{"drops from a jump", core.Vec2{X: 40, Y: 495}, core.Vec2{X: 40, Y: 503}, 400, true},
		{"slow drop from well above", core.Vec2{X: 40, Y: 497}, core.Vec2{X: 40, Y: 502}, 60, true},
		{"tiny slow settle", core.Vec2{X: 40, Y: 501}, core.Vec2{X: 40, Y: 502.2}, 30, false},
		{"no vertical movement", core.Vec2{X: 40, Y: 502}, core.Vec2{X: 40, Y: 502}, 0, false},
		{"rising", core.Vec2{X: 40, Y: 503}, core.Vec2{X: 40, Y: 495}, -300, false},
		{"horizontal miss", core.Vec2{X: 100, Y: 495}, core.Vec2{X: 100, Y: 503}, 400, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pl := playerAt(tc.prev, tc.now, tc.vy)
			assert.Equal(t, tc.expected, l.FromJump(pl, button))
		})
	}
}

func TestBeatAcceptanceWindow(t *testing.T) {
	for _, hz := range []float64{0.5, 0.75, 1.0, 1.1, 1.5, 2.0} {
		for _, dt := range []float64{1.0 / 30, 1.0 / 60, 1.0 / 120, 1.0 / 144} {
			for _, frames := range []int{1, 3, 9, 30} {
				b := BeatClock{Hz: hz, PeakPhase: 0.25, Latency: 0.5}
				for n := 0; n < 5; n++ {
					target := b.TargetTime(n)
					assert.True(t, b.OnBeat(target, dt, frames),
						"hz=%v dt=%v frames=%d n=%d on target", hz, dt, frames, n)
					assert.False(t, b.OnBeat(target+b.Period()/2, dt, frames),
						"hz=%v dt=%v frames=%d n=%d half a period late", hz, dt, frames, n)
				}
			}
		}
	}
}

func TestBeatToleranceEdges(t *testing.T) {
	b := BeatClock{Hz: 1.1, PeakPhase: 0.25, Latency: 0.5}
	dt := 1.0 / 60
	target := b.TargetTime(2)

	assert.True(t, b.OnBeat(target+8*dt, dt, 9))
	assert.True(t, b.OnBeat(target-8*dt, dt, 9))
	assert.False(t, b.OnBeat(target+10*dt, dt, 9))
	assert.InDelta(t, 9*dt, b.Tolerance(dt, 9), 1e-12)
}

func TestBeatPeakedOncePerPeriod(t *testing.T) {
	b := BeatClock{Hz: 1.1, PeakPhase: 0.25}
	dt := 1.0 / 60
	end := 10 * b.Period()

	peaks := 0
	for i := 1; float64(i)*dt <= end; i++ {
		if b.Peaked(float64(i)*dt, dt) {
			peaks++
		}
	}
	assert.Equal(t, 10, peaks)
}

func TestBeatPhaseAndEnvelope(t *testing.T) {
	b := BeatClock{Hz: 2}
	assert.InDelta(t, 0.5, b.Phase(0.25), 1e-12)
	assert.InDelta(t, 0.5, b.Envelope(0), 1e-12)
	assert.InDelta(t, 1.0, b.Envelope(0.125), 1e-12)
}

func TestComboUnlocksOnce(t *testing.T) {
	c := NewCombo(10)

	for i := 0; i < 9; i++ {
		require.False(t, c.Hit(true))
	}
	c.Hit(false)
	assert.Zero(t, c.Value(), "off-beat resets the streak")

	fired := 0
	for i := 0; i < 25; i++ {
		if c.Hit(true) {
			fired++
		}
		require.LessOrEqual(t, c.Value(), c.Goal())
	}
	assert.Equal(t, 1, fired)
	assert.True(t, c.Unlocked())
}

func TestChargeSensor(t *testing.T) {
	c := NewChargeSensor(2, 0.7, 6)
	dt := 0.25

	t.Run("decays when left", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			require.Equal(t, ChargeNone, c.Update(true, dt))
		}
		assert.InDelta(t, 1.0, c.Level(), 1e-12)

		for i := 0; i < 4; i++ {
			c.Update(false, dt)
		}
		assert.InDelta(t, 0.3, c.Level(), 1e-9)

		for i := 0; i < 10; i++ {
			c.Update(false, dt)
		}
		assert.Zero(t, c.Level(), "decay is floored at zero")
	})

	t.Run("opens after the hold time and closes after the window", func(t *testing.T) {
		var ev ChargeEvent
		frames := 0
		for ev != ChargeOpened {
			ev = c.Update(true, dt)
			frames++
			require.Less(t, frames, 20)
		}
		assert.Equal(t, 8, frames)
		assert.True(t, c.Open())
		assert.InDelta(t, 5.75, c.Remaining(), 1e-12)
		assert.LessOrEqual(t, c.Level(), c.HoldTime, "level is clamped")

		closedAfter := 0
		for c.Open() {
			ev = c.Update(true, dt)
			closedAfter++
			require.Less(t, closedAfter, 40)
		}
		assert.Equal(t, ChargeClosed, ev)
		assert.Equal(t, 23, closedAfter)
		assert.Zero(t, c.Level())
	})
}

func orchardActor() *ActorCycle {
	return NewActorCycle(ActorSpec{
		TriggerX:       400,
		StartX:         1000,
		Y:              520,
		StopX:          760,
		ExitX:          1000,
		EnterSpeed:     100,
		LeaveSpeed:     140,
		Actions:        4,
		ActionDuration: 1,
		RepeatDelay:    2,
	})
}

func TestActorCycle(t *testing.T) {
	a := orchardActor()
	dt := 1.0 / 60

	assert.Equal(t, ActorNoEvent, a.Trigger(300), "below the trigger line")
	assert.False(t, a.Visible())
	assert.Equal(t, ActorStarted, a.Trigger(401))
	assert.Equal(t, ActorNoEvent, a.Trigger(500), "triggers once")
	assert.Equal(t, ActorEntering, a.Phase())

	elapsed := 0.0
	for a.Phase() == ActorEntering {
		a.Update(dt)
		elapsed += dt
		require.Less(t, elapsed, 5.0)
	}
	assert.Equal(t, ActorActing, a.Phase())
	assert.Equal(t, 760.0, a.X())
	assert.InDelta(t, 2.4, elapsed, 2*dt)

	maxStep := 0
	left := 0
	for a.Phase() == ActorActing {
		if a.Update(dt) == ActorLeft {
			left++
		}
		if a.Phase() == ActorActing && a.Step() > maxStep {
			maxStep = a.Step()
		}
	}
	assert.Equal(t, 3, maxStep)
	assert.Equal(t, 1, left)
	assert.Equal(t, ActorLeaving, a.Phase())

	for a.Phase() == ActorLeaving {
		a.Update(dt)
	}
	assert.Equal(t, ActorWaiting, a.Phase())
	assert.Greater(t, a.X(), 1000.0)

	restarted := false
	for i := 0; i < 200 && !restarted; i++ {
		restarted = a.Update(dt) == ActorStarted
	}
	assert.True(t, restarted, "a triggered actor repeats")
	assert.Equal(t, ActorEntering, a.Phase())
	assert.Equal(t, 1000.0, a.X())
}

func TestActorIdleUntilTriggered(t *testing.T) {
	a := orchardActor()
	for i := 0; i < 600; i++ {
		require.Equal(t, ActorNoEvent, a.Update(1.0/60))
	}
	assert.Equal(t, ActorWaiting, a.Phase())
	assert.False(t, a.Triggered())
}

func TestKnockback(t *testing.T) {
	k := NewKnockback(1600, 560)
	pl := physics.NewPlayer(core.Vec2{X: 400, Y: 524}, physics.DefaultParams())

	require.True(t, k.Start(-1))
	assert.False(t, k.Start(1), "already active")

	k.Apply(pl, 0.1)
	assert.InDelta(t, 400-32, pl.Pos.X, 1e-9)
	assert.Less(t, pl.Pos.Y, 524.0, "thrown upward")

	for i := 0; i < 30; i++ {
		k.Apply(pl, 0.1)
		require.LessOrEqual(t, pl.Pos.Y+pl.Size.Y, 560.0)
	}
	assert.InDelta(t, 560-36, pl.Pos.Y, 1e-9)

	k.Stop()
	assert.False(t, k.Active())
	x := pl.Pos.X
	k.Apply(pl, 0.1)
	assert.Equal(t, x, pl.Pos.X, "inactive knockback does nothing")
}
