// Package room is the last stage: a slow walk through a quiet bedroom to the
// desk chair. Sitting down ends the game in a blackout.
package room

import (
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
	"github.com/vovakirdan/sinland/internal/progress"
	"github.com/vovakirdan/sinland/internal/stage"
)

const (
	ID    = "room"
	Title = "Last"
	Next  = "endroll"
)

var (
	spawn = core.Vec2{X: 40, Y: 540}
	chair = core.NewRect(860, 540, 60, 40)

	// Furniture is drawn only; the player walks through it.
	desk  = core.NewRect(820, 520, 120, 20)
	pc    = core.NewRect(880, 470, 40, 28)
	tower = core.NewRect(830, 540, 20, 40)
	step  = core.NewRect(720, 560, 80, 20)
	bed   = core.NewRect(100, 520, 220, 40)
	pane  = core.NewRect(360, 180, 180, 120)
)

const starCount = 18

// Stage is the last stage.
type Stage struct {
	stage.Base

	params    physics.Params
	colliders []core.Rect
	stars     []core.Vec2

	sitting    bool
	clicked    bool
	blackedOut bool
	sitT       float64
	blackT     float64
}

// New builds the room with jumping and running disabled.
func New(env stage.Env) stage.Stage {
	s := &Stage{Base: stage.NewBase(env, spawn, 0)}
	cfg := s.Env.Tuning.Room
	s.params = s.Env.Physics.Restrained(cfg.AccelScale, cfg.SpeedScale)
	s.colliders = stage.LevelColliders(s.Env.Bounds, stage.Ground)

	s.stars = make([]core.Vec2, starCount)
	for i := range s.stars {
		s.stars[i] = core.Vec2{
			X: pane.X + 10 + s.Env.Rand.Float64()*(pane.W-20),
			Y: pane.Y + 10 + s.Env.Rand.Float64()*(pane.H-20),
		}
	}
	return s
}

func (s *Stage) ID() string    { return ID }
func (s *Stage) Title() string { return Title }

// Colliders returns the floor and the side walls.
func (s *Stage) Colliders() []core.Rect {
	return s.colliders
}

// Params returns the restrained kinematics in use.
func (s *Stage) Params() physics.Params {
	return s.params
}

// SetPhysics keeps the room restrained when the base tuning changes.
func (s *Stage) SetPhysics(p physics.Params) {
	s.Base.SetPhysics(p)
	cfg := s.Env.Tuning.Room
	s.params = p.Restrained(cfg.AccelScale, cfg.SpeedScale)
}

// Sitting reports whether the player reached the chair.
func (s *Stage) Sitting() bool {
	return s.sitting
}

// Clicked reports whether the mouse click cue has played.
func (s *Stage) Clicked() bool {
	return s.clicked
}

// BlackedOut reports whether the screen went black.
func (s *Stage) BlackedOut() bool {
	return s.blackedOut
}

// Update runs one frame. Input is ignored once the player sits down.
func (s *Stage) Update(dt float64, in core.InputFrame) stage.Event {
	s.Tick(dt)
	if !s.sitting {
		return s.walk(dt, in)
	}

	cfg := s.Env.Tuning.Room
	s.sitT += dt

	if !s.clicked && s.sitT >= max(0, cfg.Blackout-cfg.ClickLead) {
		s.clicked = true
		s.Play(core.SoundClick)
	}
	if !s.blackedOut && s.sitT >= cfg.Blackout {
		s.blackedOut = true
		s.blackT = 0
		return stage.None()
	}
	if s.blackedOut {
		s.blackT += dt
		if s.blackT >= cfg.HoldOnBlack {
			return stage.Cleared(Next, progress.Max, 0)
		}
	}
	return stage.None()
}

func (s *Stage) walk(dt float64, in core.InputFrame) stage.Event {
	s.MoveWith(s.colliders, dt, in, s.params)
	s.CheckFall()

	if stage.ExitRequested(in) {
		return stage.Exit()
	}

	if s.Body.Box().Intersects(chair) {
		s.sitting = true
		s.sitT = 0
		s.Body.Vel = core.Vec2{}
		s.Body.Pos = core.Vec2{X: chair.X + 14, Y: chair.Y - s.Body.Size.Y + 12}
	}
	return stage.None()
}

// Render draws the bedroom, the player walking or seated, and the blackout.
func (s *Stage) Render(dst *core.DrawState) {
	dst.Background = core.ColorBrightWhite
	dst.Fill(core.NewRect(0, 560, s.Env.Bounds.X, 80), core.ColorWhite, '░')

	dst.Fill(bed, core.ColorWhite, '▒')
	dst.Outline(bed, core.ColorGray)
	dst.Fill(core.NewRect(bed.X+6, bed.Y-28, 140, 28), core.ColorBrightWhite, '▀')
	dst.Fill(core.NewRect(bed.X+150, bed.Y-16, 60, 16), core.ColorBrightWhite, '▄')

	dst.Fill(pane, core.ColorBlue, '█')
	for _, st := range s.stars {
		dst.Fill(core.NewRect(st.X, st.Y, 2, 2), core.ColorBrightYellow, '·')
	}
	dst.Outline(pane, core.ColorGray)

	dst.Fill(chair, core.ColorGray, '▒')
	dst.Fill(core.NewRect(chair.X+6, chair.Y-24, 10, 24), core.ColorGray, '▌')
	dst.Fill(core.NewRect(chair.Right()-16, chair.Y-24, 10, 24), core.ColorGray, '▐')

	dst.Fill(desk, core.ColorWhite, '▀')
	dst.Fill(core.NewRect(desk.X+6, desk.Bottom(), 8, 40), core.ColorGray, '│')
	dst.Fill(core.NewRect(desk.Right()-14, desk.Bottom(), 8, 40), core.ColorGray, '│')
	dst.Fill(pc, core.ColorBlack, '█')
	dst.Fill(core.NewRect(pc.X+4, pc.Y+4, pc.W-8, pc.H-8), core.ColorBrightCyan, '▒')
	dst.Fill(tower, core.ColorBlack, '█')
	dst.Fill(core.NewRect(tower.X+6, tower.Y+8, tower.W-12, 6), core.ColorRed, '-')
	dst.Fill(step, core.ColorGray, '▄')

	if s.sitting {
		s.drawSeated(dst)
	} else {
		stage.DrawPlayer(dst, s.Body, s.params)
	}

	// Small props in front of the player.
	dst.Fill(core.NewRect(300, 576, 28, 24), core.ColorWhite, '▆')
	dst.Fill(core.NewRect(520, 586, 26, 16), core.ColorBrown, '▅')
	dst.Fill(core.NewRect(524, 560, 18, 26), core.ColorGreen, '♣')
	dst.Fill(core.NewRect(220, 588, 36, 14), core.ColorWhite, '▄')

	stage.DrawTitle(dst, Title)
	if s.blackedOut {
		dst.Darken(1)
	}
}

func (s *Stage) drawSeated(dst *core.DrawState) {
	c := s.Body.Box().Center()
	dst.Fill(core.NewRect(c.X-1, c.Y-19, 26, 30), core.ColorBlack, '█')
	dst.Fill(core.NewRect(c.X+8, c.Y-s.Body.Size.Y*0.9-2, 20, 20), core.ColorBrightWhite, '●')
	dst.Fill(core.NewRect(c.X+12, c.Y-13, 18, 4), core.ColorBlack, '─')
	dst.Fill(core.NewRect(c.X-6, c.Y+11, 10, 10), core.ColorBlack, '▟')
	dst.Fill(core.NewRect(c.X+18, c.Y+11, 10, 10), core.ColorBlack, '▙')
	dst.Fill(core.NewRect(chair.X, chair.Bottom()-5, chair.W, 5), core.ColorGray, '▀')
}
