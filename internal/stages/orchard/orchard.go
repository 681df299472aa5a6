// Package orchard is the first stage: reorder the fruit on the tree to
// match the order the monkey eats them, using two jump pads.
package orchard

import (
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/trigger"
)

const (
	ID    = "orchard"
	Title = "Stage 1"
	Next  = "heartbeat"
)

// Fruit kinds in the order the monkey eats them.
const (
	Apple = iota
	Banana
	Peach
	Grape
	fruitCount
)

var (
	answer = [fruitCount]int{Apple, Banana, Peach, Grape}

	swapPad   = core.NewRect(420, 560, 48, 20)
	rotatePad = core.NewRect(500, 560, 48, 20)
	door      = core.NewRect(20, 500, 60, 80)
	spawn     = core.Vec2{X: 80, Y: 540}
)

// Stage is the orchard puzzle.
type Stage struct {
	stage.Base

	colliders []core.Rect
	monkey    *trigger.ActorCycle

	fruits     [fruitCount]int
	swapEdge   trigger.Edge
	rotateEdge trigger.Edge

	doorShown bool
	clearing  bool
	fadeOut   float64
}

// New builds the stage and starts the background music.
func New(env stage.Env) stage.Stage {
	cfg := env.Tuning.Orchard
	s := &Stage{
		Base:    stage.NewBase(env, spawn, cfg.FadeIn),
		fruits:  answer,
		fadeOut: cfg.FadeOut,
	}
	s.colliders = stage.LevelColliders(s.Env.Bounds, stage.Ground)
	s.monkey = trigger.NewActorCycle(trigger.ActorSpec{
		TriggerX:       cfg.TriggerX,
		StartX:         1000,
		Y:              520,
		StopX:          760,
		ExitX:          1000,
		EnterSpeed:     cfg.EnterSpeed,
		LeaveSpeed:     cfg.LeaveSpeed,
		Actions:        fruitCount,
		ActionDuration: cfg.FruitDuration,
		RepeatDelay:    cfg.RepeatDelay,
	})

	for s.fruits == answer {
		s.Env.Rand.Shuffle(fruitCount, func(i, j int) {
			s.fruits[i], s.fruits[j] = s.fruits[j], s.fruits[i]
		})
	}

	s.Play(core.SoundStageBGM)
	return s
}

func (s *Stage) ID() string    { return ID }
func (s *Stage) Title() string { return Title }

// Colliders returns the floor and the side walls.
func (s *Stage) Colliders() []core.Rect {
	return s.colliders
}

// Fruits returns the current order on the tree.
func (s *Stage) Fruits() [fruitCount]int {
	return s.fruits
}

// Solved reports whether the tree matches the monkey's order.
func (s *Stage) Solved() bool {
	return s.fruits == answer
}

// DoorShown reports whether the exit door has appeared.
func (s *Stage) DoorShown() bool {
	return s.doorShown
}

// Clearing reports whether the closing fade has started.
func (s *Stage) Clearing() bool {
	return s.clearing
}

// Monkey exposes the monkey's state machine.
func (s *Stage) Monkey() *trigger.ActorCycle {
	return s.monkey
}

// Update runs one frame.
func (s *Stage) Update(dt float64, in core.InputFrame) stage.Event {
	if s.clearing {
		s.Body.Vel = core.Vec2{}
	} else {
		s.Move(s.colliders, dt, in)
		s.CheckFall()
	}

	if s.monkey.Trigger(s.Body.Pos.X) == trigger.ActorStarted {
		s.Play(core.SoundMonkey)
	}
	if ev := s.monkey.Update(dt); ev != trigger.ActorNoEvent {
		s.Play(core.SoundMonkey)
	}

	s.Tick(dt)

	if s.clearing {
		if s.Fade.Done() {
			return stage.Cleared(Next, 2, 0)
		}
		return stage.None()
	}

	s.updatePuzzle()

	if stage.ExitRequested(in) {
		s.Stop(core.SoundMonkey)
		return stage.Exit()
	}
	return stage.None()
}

func (s *Stage) updatePuzzle() {
	if s.swapEdge.Rise(trigger.LandedOn(s.Body, swapPad)) {
		s.Play(core.SoundButton)
		s.fruits[0], s.fruits[3] = s.fruits[3], s.fruits[0]
	}
	if s.rotateEdge.Rise(trigger.LandedOn(s.Body, rotatePad)) {
		s.Play(core.SoundButton)
		s.rotate()
	}

	if !s.doorShown && s.Solved() {
		s.doorShown = true
		s.Play(core.SoundDoor)
	}

	if s.doorShown && s.Body.Box().Intersects(door) {
		s.clearing = true
		s.Fade.StartOut(s.fadeOut)
		s.Play(core.SoundClear)
		s.Stop(core.SoundStageBGM)
	}
}

// rotate shifts every fruit one slot to the right, wrapping around.
func (s *Stage) rotate() {
	var next [fruitCount]int
	for i, f := range s.fruits {
		next[(i+1)%fruitCount] = f
	}
	s.fruits = next
}

var fruitColors = [fruitCount]core.Color{
	Apple:  core.ColorRed,
	Banana: core.ColorBrightYellow,
	Peach:  core.ColorBrightMagenta,
	Grape:  core.ColorMagenta,
}

var fruitGlyphs = [fruitCount]rune{'●', '◗', '♥', '♣'}

func drawFruit(dst *core.DrawState, kind int, center core.Vec2) {
	r := core.NewRect(center.X-10, center.Y-10, 20, 20)
	dst.Fill(r, fruitColors[kind], fruitGlyphs[kind])
}

// Render draws back to front: tree, ground, monkey, pads, door, player.
func (s *Stage) Render(dst *core.DrawState) {
	dst.Background = core.ColorBrightCyan

	cx := s.Env.Bounds.X / 2
	dst.Fill(core.NewRect(cx-150, 100, 300, 140), core.ColorGreen, '♠')
	dst.Fill(core.NewRect(cx-24, 240, 48, 320), core.ColorBrown, '█')
	for i, f := range s.fruits {
		drawFruit(dst, f, core.Vec2{X: cx + (float64(i)-1.5)*48, Y: 210})
	}

	stage.DrawPlatforms(dst, stage.Ground)
	s.drawMonkey(dst)

	for _, pad := range []struct {
		r    core.Rect
		down bool
	}{{swapPad, s.swapEdge.Prev()}, {rotatePad, s.rotateEdge.Prev()}} {
		c := core.ColorBrightWhite
		if pad.down {
			c = core.ColorGray
		}
		dst.Fill(pad.r, c, '▬')
		dst.Outline(pad.r, core.ColorBlue)
	}

	if s.doorShown {
		dst.Fill(door, core.ColorBrightWhite, '▓')
		dst.Outline(door, core.ColorGreen)
	}

	stage.DrawPlayer(dst, s.Body, s.Env.Physics)
	stage.DrawTitle(dst, Title)
	s.Fade.Draw(dst)
}

func (s *Stage) drawMonkey(dst *core.DrawState) {
	if !s.monkey.Visible() {
		return
	}
	x := s.monkey.X()
	body := core.NewRect(x-16, 544, 32, 36)
	head := core.NewRect(x-16, 512, 32, 32)
	dst.Fill(body, core.ColorBrown, '█')
	dst.Fill(head, core.ColorBrown, '@')

	if s.monkey.Phase() == trigger.ActorActing {
		step := min(s.monkey.Step(), fruitCount-1)
		drawFruit(dst, answer[step], core.Vec2{X: x, Y: 480})
	}
}
