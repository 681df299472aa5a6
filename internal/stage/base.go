package stage

import (
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
)

// FallMargin is how far below the bottom edge the player may drop before
// being put back at the spawn point.
const FallMargin = 40

// Ground is the floor shared by most stages.
var Ground = core.NewRect(0, 580, core.WorldW, 60)

// LevelColliders returns platforms followed by two off-screen walls that
// keep the player inside [0, bounds.X].
func LevelColliders(bounds core.Vec2, platforms ...core.Rect) []core.Rect {
	cols := make([]core.Rect, 0, len(platforms)+2)
	cols = append(cols, platforms...)
	cols = append(cols,
		core.NewRect(-100, 0, 100, bounds.Y),
		core.NewRect(bounds.X, 0, 100, bounds.Y),
	)
	return cols
}

// ExitRequested reports whether the player asked to leave the stage.
func ExitRequested(in core.InputFrame) bool {
	return in.Has(core.ActionBack)
}

// Base carries the state every stage shares: the player, its spawn point,
// the screen fades, and simple counters for records.
type Base struct {
	Env   Env
	Spawn core.Vec2
	Body  *physics.Player
	Fade  Fader

	elapsed  float64
	respawns int
}

// NewBase places a fresh player at spawn.
func NewBase(env Env, spawn core.Vec2, fadeIn float64) Base {
	env = env.normalize()
	return Base{
		Env:   env,
		Spawn: spawn,
		Body:  physics.NewPlayer(spawn, env.Physics),
		Fade:  NewFader(fadeIn),
	}
}

// Player returns the controlled body.
func (b *Base) Player() *physics.Player {
	return b.Body
}

// Respawns returns how many times the player was sent back to spawn.
func (b *Base) Respawns() int {
	return b.respawns
}

// Elapsed returns the seconds spent in the stage.
func (b *Base) Elapsed() float64 {
	return b.elapsed
}

// SetPhysics swaps the kinematics used from the next frame on.
func (b *Base) SetPhysics(p physics.Params) {
	b.Env.Physics = p
}

// Tick advances the stage clock and fades.
func (b *Base) Tick(dt float64) {
	b.elapsed += dt
	b.Fade.Update(dt)
}

// Move runs one frame of kinematics with the stage's physics parameters.
func (b *Base) Move(colliders []core.Rect, dt float64, in core.InputFrame) {
	b.MoveWith(colliders, dt, in, b.Env.Physics)
}

// MoveWith runs one frame of kinematics with explicit parameters.
func (b *Base) MoveWith(colliders []core.Rect, dt float64, in core.InputFrame, p physics.Params) {
	b.Body.Advance(colliders, dt, physics.ControlsFrom(in), p)
	b.Body.AdvanceAnimationPhase(dt, p)
}

// Fell reports whether the player dropped below the stage.
func (b *Base) Fell() bool {
	return b.Body.Pos.Y > b.Env.Bounds.Y+FallMargin
}

// CheckFall respawns the player after a fall and reports whether it did.
func (b *Base) CheckFall() bool {
	if !b.Fell() {
		return false
	}
	b.Respawn()
	return true
}

// Respawn puts the player back at the spawn point.
func (b *Base) Respawn() {
	b.Body.Respawn(b.Spawn)
	b.respawns++
}

// Play emits a cue.
func (b *Base) Play(s core.Sound) {
	b.Env.Audio.Play(s)
}

// Stop silences a cue.
func (b *Base) Stop(s core.Sound) {
	b.Env.Audio.Stop(s)
}

// Fader runs a fade in from black when a stage starts and an optional fade
// out to black when it ends.
type Fader struct {
	in, out   float64
	tIn, tOut float64
	fadingOut bool
}

// NewFader starts a fade in lasting in seconds. Zero skips it.
func NewFader(in float64) Fader {
	return Fader{in: in}
}

// Update advances the running fades.
func (f *Fader) Update(dt float64) {
	if f.tIn < f.in {
		f.tIn += dt
	}
	if f.fadingOut {
		f.tOut += dt
	}
}

// StartOut begins a fade out lasting d seconds. Later calls are ignored.
func (f *Fader) StartOut(d float64) {
	if f.fadingOut {
		return
	}
	f.fadingOut = true
	f.out = d
	f.tOut = 0
}

// FadingOut reports whether the fade out has started.
func (f *Fader) FadingOut() bool {
	return f.fadingOut
}

// Done reports whether the fade out has finished.
func (f *Fader) Done() bool {
	return f.fadingOut && f.tOut >= f.out
}

// Alpha returns the black overlay strength in [0, 1].
func (f *Fader) Alpha() float64 {
	a := 0.0
	if f.in > 0 && f.tIn < f.in {
		a = 1 - f.tIn/f.in
	}
	if f.fadingOut {
		o := 1.0
		if f.out > 0 {
			o = f.tOut / f.out
		}
		a = max(a, o)
	}
	return core.Saturate(a)
}

// Draw applies the overlay.
func (f *Fader) Draw(dst *core.DrawState) {
	dst.Darken(f.Alpha())
}

// DrawPlatforms fills each rectangle as floor.
func DrawPlatforms(dst *core.DrawState, platforms ...core.Rect) {
	for _, p := range platforms {
		dst.Fill(p, core.ColorGray, '▒')
	}
}

// DrawDoor draws the goal door with its flag.
func DrawDoor(dst *core.DrawState, r core.Rect) {
	dst.Fill(r, core.ColorBrightGreen, '▓')
	dst.Outline(r, core.ColorGreen)
	dst.Fill(core.NewRect(r.X+10, r.Y-24, 3, 24), core.ColorGray, '|')
	dst.Fill(core.NewRect(r.X+13, r.Y-22, 24, 12), core.ColorGreen, '▶')
}

// DrawPlayer draws the body, head, and feet using the walk pose.
func DrawPlayer(dst *core.DrawState, pl *physics.Player, p physics.Params) {
	pose := pl.Pose(p)
	box := pl.Box().Moved(0, -pose.Step)

	head := core.NewRect(box.CenterX()-10, box.Y-20, 20, 20)
	dst.Fill(head, core.ColorBrightWhite, 'o')
	dst.Fill(box, core.ColorBlack, '█')

	swing := pose.Swing * 6
	dst.Fill(core.NewRect(box.X-2-swing, box.Bottom()-4, 10, 6), core.ColorGray, '▀')
	dst.Fill(core.NewRect(box.Right()-8+swing, box.Bottom()-4, 10, 6), core.ColorGray, '▀')
}

// DrawTitle writes the stage name in the top-left corner.
func DrawTitle(dst *core.DrawState, title string) {
	dst.Text(20, 16, title, core.ColorGray)
}
