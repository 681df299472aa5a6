// Package heartbeat is the second stage: jump in time with a beating heart
// until the combo gauge fills and the door opens.
package heartbeat

import (
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/trigger"
)

const (
	ID    = "heartbeat"
	Title = "Stage 2"
	Next  = "pencil"
)

var (
	door  = core.NewRect(40, 500, 60, 80)
	spawn = core.Vec2{X: 60, Y: 540}
)

// Stage is the rhythm stage.
type Stage struct {
	stage.Base

	colliders []core.Rect
	clock     trigger.BeatClock
	frames    int
	combo     *trigger.Combo
	doorShown bool
}

// New builds the stage. The beat starts with the scene.
func New(env stage.Env) stage.Stage {
	cfg := env.Tuning.Heartbeat
	s := &Stage{
		Base: stage.NewBase(env, spawn, 0),
		clock: trigger.BeatClock{
			Hz:        cfg.Hz,
			PeakPhase: cfg.PeakPhase,
			Latency:   cfg.Latency,
		},
		frames: cfg.ToleranceFrames,
		combo:  trigger.NewCombo(cfg.GoalCombo),
	}
	s.colliders = stage.LevelColliders(s.Env.Bounds, stage.Ground)
	return s
}

func (s *Stage) ID() string    { return ID }
func (s *Stage) Title() string { return Title }

// Colliders returns the floor and the side walls.
func (s *Stage) Colliders() []core.Rect {
	return s.colliders
}

// Clock returns the beat the stage judges against.
func (s *Stage) Clock() trigger.BeatClock {
	return s.clock
}

// Combo returns the current streak.
func (s *Stage) Combo() int {
	return s.combo.Value()
}

// DoorShown reports whether the exit door has appeared.
func (s *Stage) DoorShown() bool {
	return s.doorShown
}

// Update runs one frame.
func (s *Stage) Update(dt float64, in core.InputFrame) stage.Event {
	s.Move(s.colliders, dt, in)
	s.CheckFall()
	s.Tick(dt)

	if stage.ExitRequested(in) {
		return stage.Exit()
	}

	t := s.Elapsed()
	if s.clock.Peaked(t, dt) && !s.doorShown {
		s.Play(core.SoundHeartbeat)
	}

	if s.Body.JumpedThisFrame {
		s.combo.Hit(s.clock.OnBeat(t, dt, s.frames))
	}

	if s.combo.Unlocked() && !s.doorShown {
		s.doorShown = true
		s.Stop(core.SoundHeartbeat)
		s.Play(core.SoundDoor)
	}

	if s.doorShown && s.Body.Box().Intersects(door) {
		s.Play(core.SoundClear)
		return stage.Cleared(Next, 3, stage.Seconds(0.5))
	}
	return stage.None()
}

// Render draws the heart, the combo gauge, the door, and the player.
func (s *Stage) Render(dst *core.DrawState) {
	dst.Background = core.ColorBrightWhite

	t := s.Elapsed()
	beat := s.clock.Envelope(t)
	size := 170 * (1 + 0.03*beat)
	c := core.Vec2{X: s.Env.Bounds.X / 2, Y: s.Env.Bounds.Y * 0.48}
	heart := core.NewRect(c.X-size, c.Y-size*0.8, size*2, size*1.6)
	dst.Fill(heart, core.ColorRed, '♥')
	if beat > 0.5 {
		dst.Outline(heart, core.ColorBrightRed)
	}

	stage.DrawPlatforms(dst, stage.Ground)
	s.drawGauge(dst, t)

	if s.doorShown {
		dst.Outline(door, core.ColorGreen)
		dst.Fill(door.Stretched(-6, -6), core.ColorBrightGreen, '░')
	}

	stage.DrawPlayer(dst, s.Body, s.Env.Physics)
	stage.DrawTitle(dst, Title)
}

func (s *Stage) drawGauge(dst *core.DrawState, t float64) {
	const w, h, gap = 36.0, 10.0, 6.0
	goal := s.combo.Goal()
	base := core.Vec2{X: s.Env.Bounds.X/2 - 200, Y: 24}

	for i := range goal {
		r := core.NewRect(base.X+float64(i)*(w+gap), base.Y, w, h)
		if i < s.combo.Value() {
			dst.Fill(r.Stretched(0, 2), core.ColorBrightRed, '■')
		} else {
			dst.Outline(r, core.ColorGray)
		}
	}

	x := base.X + (w+gap)*float64(goal)*s.clock.Phase(t)
	dst.Fill(core.NewRect(x, base.Y-6, 2, h+12), core.ColorMagenta, '|')
}
