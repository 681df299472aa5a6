// Package pencil is the third stage: click a mechanical pencil to extend
// its lead into a bridge, and cross without snapping it.
package pencil

import (
	"math"

	"github.com/vovakirdan/sinland/internal/config"
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/trigger"
)

const (
	ID    = "pencil"
	Title = "Stage 3"
	Next  = "crosswalk"
)

// Pencil shape, in world units.
const (
	bodyLen  = 160.0
	bodyCut  = 16.0 // the metal tip replaces the end of the barrel
	tipLen   = 18.0
	bodyH    = 20.0
	leadColH = 6.0
	leadDrwH = 4.0
)

var (
	origin  = core.Vec2{X: 60, Y: 560}
	doorPad = core.NewRect(770, 560, 80, 14)
	door    = core.NewRect(doorPad.CenterX()-30, doorPad.Y-80, 60, 80)
)

// Bridge is the pencil: a fixed barrel and a lead that grows by one step
// per click.
type Bridge struct {
	Origin   core.Vec2
	LeadStep float64
	MaxLead  float64

	presses trigger.Saturating
	hp      int
}

func newBridge(cfg config.PencilConfig) Bridge {
	b := Bridge{Origin: origin, LeadStep: cfg.LeadStep, MaxLead: cfg.MaxLead, hp: 3}
	if cfg.LeadStep > 0 {
		b.presses.Max = int(math.Ceil(cfg.MaxLead / cfg.LeadStep))
	}
	return b
}

func (b *Bridge) bodyWidth() float64  { return max(0, bodyLen-bodyCut) }
func (b *Bridge) tipBaseX() float64   { return b.Origin.X + b.bodyWidth() }
func (b *Bridge) leadStartX() float64 { return b.tipBaseX() + tipLen }

// LeadLength is the current bridge length.
func (b *Bridge) LeadLength() float64 {
	return min(float64(b.presses.Value())*b.LeadStep, b.MaxLead)
}

// Presses returns the clicks since the last break.
func (b *Bridge) Presses() int {
	return b.presses.Value()
}

// Body is the barrel collider.
func (b *Bridge) Body() core.Rect {
	return core.NewRect(b.Origin.X, b.Origin.Y-8, b.bodyWidth(), 10)
}

// Lead is the lead collider; zero width when retracted.
func (b *Bridge) Lead() core.Rect {
	return core.NewRect(b.leadStartX(), b.Origin.Y-leadColH/2, b.LeadLength(), leadColH)
}

// Cap is the click cap at the back of the barrel.
func (b *Bridge) Cap() core.Rect {
	y := b.Origin.Y - bodyH/2
	return core.NewRect(b.Origin.X-14, y+2, 10, bodyH-4)
}

// Extend adds one step of lead. It reports false once at full length.
func (b *Bridge) Extend() bool {
	return b.presses.Inc()
}

// Retract drops all the lead.
func (b *Bridge) Retract() {
	b.presses.Reset()
}

// impact cracks the barrel. Only the upward component counts.
func (b *Bridge) impact(vy float64) {
	hit := math.Abs(min(vy, 0))
	switch {
	case hit > 340:
		b.hp = max(0, b.hp-2)
	case hit > 200:
		b.hp = max(0, b.hp-1)
	}
}

// fragment is a broken piece of lead falling off screen.
type fragment struct {
	rect   core.Rect
	vel    core.Vec2
	active bool
}

func (f *fragment) update(dt, floor float64) {
	if !f.active {
		return
	}
	f.vel.Y += 980 * dt
	f.rect = f.rect.Moved(f.vel.X*dt, f.vel.Y*dt)
	if f.rect.Y > floor+100 {
		f.active = false
	}
}

// Stage is the pencil bridge stage.
type Stage struct {
	stage.Base

	cfg       config.PencilConfig
	pencil    Bridge
	button    core.Rect
	cooldown  trigger.Cooldown
	landing   trigger.Landing
	btnEdge   trigger.Edge
	broken    fragment
	colliders []core.Rect
	breaks    int
}

// New builds the stage.
func New(env stage.Env) stage.Stage {
	cfg := env.Tuning.Pencil
	s := &Stage{
		cfg:      cfg,
		pencil:   newBridge(cfg),
		cooldown: trigger.Cooldown{Duration: cfg.ButtonCooldown},
		landing:  trigger.DefaultLanding(),
	}
	start := core.Vec2{X: origin.X + 24, Y: origin.Y - env.Physics.Height}
	s.Base = stage.NewBase(env, start, 0)

	cp := s.pencil.Cap()
	s.button = core.NewRect(cp.CenterX()-12, cp.Y-8, 24, 6)
	s.rebuild()
	return s
}

func (s *Stage) ID() string    { return ID }
func (s *Stage) Title() string { return Title }

// Colliders returns the door pad, the pencil, the button, and the walls,
// in that order.
func (s *Stage) Colliders() []core.Rect {
	return s.colliders
}

func (s *Stage) rebuild() {
	s.colliders = stage.LevelColliders(s.Env.Bounds,
		doorPad, s.pencil.Body(), s.pencil.Lead(), s.button)
}

// Bridge exposes the pencil.
func (s *Stage) Bridge() *Bridge {
	return &s.pencil
}

// Button returns the click button on the cap.
func (s *Stage) Button() core.Rect {
	return s.button
}

// Breaks returns how many times the lead snapped.
func (s *Stage) Breaks() int {
	return s.breaks
}

// Update runs one frame.
func (s *Stage) Update(dt float64, in core.InputFrame) stage.Event {
	s.rebuild()
	s.Move(s.colliders, dt, in)
	s.Tick(dt)
	s.cooldown.Tick(dt)
	s.broken.update(dt, s.Env.Bounds.Y)

	s.updateButton()
	s.rebuild()
	s.checkBreak()

	feet := s.Body.Feet()
	if s.pencil.Body().Intersects(feet) || s.pencil.Lead().Intersects(feet) {
		s.pencil.impact(s.Body.Vel.Y)
	}

	if s.CheckFall() {
		s.pencil.Retract()
		s.btnEdge.Reset()
		s.rebuild()
	}

	if s.Body.Box().Intersects(door) {
		s.Play(core.SoundClear)
		return stage.Cleared(Next, 4, stage.Seconds(0.5))
	}

	if stage.ExitRequested(in) {
		return stage.Exit()
	}
	return stage.None()
}

// updateButton clicks the pencil when the player walks into the button or
// lands on it, at most once per cooldown.
func (s *Stage) updateButton() {
	overlap := s.Body.Box().Intersects(s.button.Stretched(1, 1))
	entered := s.btnEdge.Rise(overlap)
	landed := s.landing.FromJump(s.Body, s.button)

	if (entered || landed) && s.cooldown.Ready() {
		if s.pencil.Extend() {
			s.Play(core.SoundPush)
		}
		s.cooldown.Restart()
	}
}

// checkBreak snaps the lead at most once per frame.
func (s *Stage) checkBreak() {
	lead := s.pencil.Lead()
	if lead.W <= 0 {
		return
	}
	centerX := s.Body.Box().CenterX()

	// Jumping onto the lead past the root.
	if s.landing.FromJump(s.Body, lead) && centerX >= lead.X+s.cfg.RootSafeLen {
		s.snap(lead)
		return
	}

	// Standing far out on a long lead.
	if s.pencil.Presses() >= s.cfg.BreakPresses {
		onLead := s.Body.Feet().Intersects(lead.Stretched(0, 1))
		if onLead && s.Body.Grounded && centerX >= s.cfg.BreakMinX {
			s.snap(lead)
		}
	}
}

func (s *Stage) snap(lead core.Rect) {
	s.Play(core.SoundBreak)
	s.broken = fragment{
		rect:   core.NewRect(lead.X, lead.Y-1, lead.W, lead.H*0.8),
		vel:    core.Vec2{X: 60 + 30*s.Env.Rand.Float64(), Y: -50},
		active: true,
	}
	s.pencil.Retract()
	s.btnEdge.Reset()
	s.breaks++
	s.rebuild()
}

// Render draws the grid, door pad, pencil, fragment, button, door, and player.
func (s *Stage) Render(dst *core.DrawState) {
	dst.Background = core.ColorBrightWhite

	dst.Fill(doorPad, core.ColorGray, '▒')
	s.drawPencil(dst)
	if s.broken.active {
		dst.Fill(s.broken.rect, core.ColorBlack, '─')
	}

	dst.Fill(s.button, core.ColorBrightWhite, '▲')
	dst.Outline(s.button, core.ColorGray)

	stage.DrawDoor(dst, door)
	stage.DrawPlayer(dst, s.Body, s.Env.Physics)
	stage.DrawTitle(dst, Title)
}

func (s *Stage) drawPencil(dst *core.DrawState) {
	p := &s.pencil
	y := p.Origin.Y - bodyH/2

	barrel := core.NewRect(p.Origin.X, y, p.bodyWidth(), bodyH)
	dst.Fill(barrel, core.ColorGreen, '█')
	dst.Fill(core.NewRect(p.tipBaseX(), y+bodyH/4, tipLen, bodyH/2), core.ColorWhite, '▶')

	if l := p.LeadLength(); l > 0 {
		dst.Fill(core.NewRect(p.leadStartX(), p.Origin.Y-leadDrwH/2, l, leadDrwH), core.ColorBlack, '─')
	}
	dst.Fill(p.Cap(), core.ColorBlack, '▌')

	// Cracks after hard hits.
	if p.hp <= 2 {
		dst.Fill(core.NewRect(p.Origin.X+18, y+6, p.bodyWidth()-36, 2), core.ColorBlack, '~')
	}
	if p.hp <= 1 {
		dst.Fill(core.NewRect(p.Origin.X+30, y+12, p.bodyWidth()-58, 2), core.ColorBlack, '~')
	}
}
