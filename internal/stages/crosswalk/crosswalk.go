// Package crosswalk is the fourth stage: wait at the sensor for a green
// light, then cross before it turns red. Crossing on red calls a car.
package crosswalk

import (
	"fmt"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/trigger"
)

const (
	ID    = "crosswalk"
	Title = "Stage 4"
	Next  = "room"
)

var (
	spawn      = core.Vec2{X: 120, Y: 540}
	crossing   = core.NewRect(360, 560, 240, 24)
	sensor     = core.NewRect(168, 520, 28, 44)
	goalDoor   = core.NewRect(820, 500, 60, 80)
	roadY      = crossing.Y - 8
	knockFloor = 560.0
)

// Light is the traffic signal state.
type Light int

const (
	Red Light = iota
	Green
)

func (l Light) String() string {
	if l == Green {
		return "green"
	}
	return "red"
}

// Car drives along the road once spawned and disappears off screen.
type Car struct {
	Body   core.Rect
	Speed  float64
	Dir    float64 // +1 left to right, -1 right to left
	Active bool
}

func (c *Car) spawnLeft() {
	c.Body = core.NewRect(-120, roadY, 64, 28)
	c.Dir = 1
	c.Active = true
}

func (c *Car) spawnRight(width float64) {
	c.Body = core.NewRect(width+120, roadY, 64, 28)
	c.Dir = -1
	c.Active = true
}

func (c *Car) update(dt, width float64) {
	if !c.Active {
		return
	}
	c.Body.X += c.Dir * c.Speed * dt
	if c.Dir < 0 && c.Body.Right() < -100 {
		c.Active = false
	}
	if c.Dir > 0 && c.Body.X > width+100 {
		c.Active = false
	}
}

// Stage is the crosswalk stage.
type Stage struct {
	stage.Base

	colliders []core.Rect
	sensor    *trigger.ChargeSensor
	light     Light
	car       Car
	knock     *trigger.Knockback

	carQueued  bool
	spawnDelay float64
	spawnT     float64
	goalShown  bool
	hits       int
}

// New builds the stage with the light on red.
func New(env stage.Env) stage.Stage {
	cfg := env.Tuning.Crosswalk
	s := &Stage{
		Base:       stage.NewBase(env, spawn, 0),
		sensor:     trigger.NewChargeSensor(cfg.HoldToGreen, cfg.DecayRate, cfg.GreenWindow),
		car:        Car{Speed: cfg.CarSpeed},
		knock:      trigger.NewKnockback(1600, knockFloor),
		spawnDelay: cfg.SpawnDelay,
	}
	s.colliders = stage.LevelColliders(s.Env.Bounds, stage.Ground)
	return s
}

func (s *Stage) ID() string    { return ID }
func (s *Stage) Title() string { return Title }

// Colliders returns the road and the side walls.
func (s *Stage) Colliders() []core.Rect {
	return s.colliders
}

// Light returns the current signal.
func (s *Stage) Light() Light {
	return s.light
}

// Car returns the car state.
func (s *Stage) Car() Car {
	return s.car
}

// CarQueued reports whether a car is about to spawn.
func (s *Stage) CarQueued() bool {
	return s.carQueued
}

// Knocked reports whether the player is being thrown by a car.
func (s *Stage) Knocked() bool {
	return s.knock.Active()
}

// GoalShown reports whether the exit door has appeared.
func (s *Stage) GoalShown() bool {
	return s.goalShown
}

// Hits returns how many times a car hit the player.
func (s *Stage) Hits() int {
	return s.hits
}

// Update runs one frame.
func (s *Stage) Update(dt float64, in core.InputFrame) stage.Event {
	s.Move(s.colliders, dt, in)
	s.CheckFall()
	s.Tick(dt)

	if stage.ExitRequested(in) {
		return stage.Exit()
	}

	box := s.Body.Box()

	switch s.sensor.Update(box.Intersects(sensor), dt) {
	case trigger.ChargeOpened:
		s.light = Green
		s.carQueued = false
		s.Play(core.SoundButton)
	case trigger.ChargeClosed:
		s.light = Red
	}

	if s.light == Red && box.Intersects(crossing) && !s.car.Active && !s.carQueued {
		s.carQueued = true
		s.spawnT = s.spawnDelay
	}

	if s.carQueued {
		s.spawnT -= dt
		if s.spawnT <= 0 {
			if box.CenterX() > crossing.CenterX() {
				s.car.spawnRight(s.Env.Bounds.X)
			} else {
				s.car.spawnLeft()
			}
			s.carQueued = false
		}
	}

	s.car.update(dt, s.Env.Bounds.X)

	if !s.knock.Active() && s.car.Active && box.Intersects(s.car.Body) {
		s.knock.Start(s.car.Dir)
		s.hits++
	}

	if !s.goalShown && s.light == Green && box.X > crossing.Right()+6 {
		s.goalShown = true
		s.Play(core.SoundDoor)
	}

	if s.goalShown && box.Intersects(goalDoor) {
		s.Play(core.SoundClear)
		return stage.Cleared(Next, 5, stage.Seconds(0.3))
	}

	if s.knock.Active() {
		s.knock.Apply(s.Body, dt)
		// The player stays down until the car is gone.
		if !s.car.Active {
			s.knock.Stop()
			s.carQueued = false
			s.spawnT = 0
			s.Respawn()
		}
	}
	return stage.None()
}

// Render draws the road, crossing, HUD gauge, signal, car, door, and player.
func (s *Stage) Render(dst *core.DrawState) {
	dst.Background = core.ColorBrightWhite

	dst.Fill(stage.Ground, core.ColorGray, '▓')

	dst.Fill(crossing, core.ColorWhite, ' ')
	const stripeW, stripeGap = 22.0, 14.0
	for x := crossing.X + stripeGap/2; x < crossing.Right(); x += stripeW + stripeGap {
		w := min(stripeW, crossing.Right()-x)
		dst.Fill(core.NewRect(x, crossing.Y, w, crossing.H), core.ColorBrightWhite, '█')
	}
	dst.Outline(sensor, core.ColorCyan)

	s.drawGauge(dst)
	s.drawSignal(dst)

	if s.car.Active {
		dst.Fill(s.car.Body, core.ColorBlue, '█')
		lamp := core.NewRect(s.car.Body.Right()-8, s.car.Body.Y+8, 6, 6)
		if s.car.Dir < 0 {
			lamp = core.NewRect(s.car.Body.X+2, s.car.Body.Y+8, 6, 6)
		}
		dst.Fill(lamp, core.ColorBrightYellow, '*')
	}

	if s.goalShown {
		stage.DrawDoor(dst, goalDoor)
	}

	stage.DrawPlayer(dst, s.Body, s.Env.Physics)
	stage.DrawTitle(dst, Title)
}

func (s *Stage) drawGauge(dst *core.DrawState) {
	const w, h = 360.0, 16.0
	base := core.Vec2{X: s.Env.Bounds.X/2 - w/2, Y: 40}
	frame := core.NewRect(base.X, base.Y, w, h)
	dst.Outline(frame, core.ColorGray)

	if s.light == Red {
		bar := core.NewRect(base.X, base.Y, w*core.Saturate(s.sensor.Fraction()), h)
		dst.Fill(bar, core.ColorCyan, '█')
		dst.TextCentered(frame.CenterX(), base.Y-20, "charging sensor", core.ColorGray)
		return
	}

	left := s.sensor.Remaining()
	bar := core.NewRect(base.X, base.Y, w*core.Saturate(left/s.sensor.Window), h)
	dst.Fill(bar, core.ColorBrightGreen, '█')
	dst.TextCentered(frame.CenterX(), base.Y-20, fmt.Sprintf("green %.1fs", left), core.ColorGray)
}

func (s *Stage) drawSignal(dst *core.DrawState) {
	x := crossing.CenterX()
	y := crossing.Y - 70
	dst.Fill(core.NewRect(x-10, y, 20, 100), core.ColorBlack, '█')

	red, green := core.ColorRed, core.ColorGreen
	if s.light == Red {
		red = core.ColorBrightRed
	} else {
		green = core.ColorBrightGreen
	}
	dst.Fill(core.NewRect(x-8, y+2, 16, 16), red, '●')
	dst.Fill(core.NewRect(x-8, y+32, 16, 16), green, '●')
}
