// Package stage defines the capability set every playable stage provides,
// the environment stages are built from, and shared helpers for movement,
// fades, and drawing.
package stage

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/sinland/internal/config"
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
)

// Stage is one playable level. Stages contain pure logic with no host
// dependencies; the scene controller owns exactly one at a time.
type Stage interface {
	// ID returns the stable identifier used for scene switching and records.
	ID() string

	// Title returns the label shown in the HUD and on the select screen.
	Title() string

	// Update advances the stage by one frame. Kinematics run first, then
	// the stage's trigger machines.
	Update(dt float64, in core.InputFrame) Event

	// Colliders returns the solid rectangles of the current frame.
	Colliders() []core.Rect

	// Render draws the stage into dst.
	Render(dst *core.DrawState)

	// Player returns the controlled body.
	Player() *physics.Player
}

// EventKind is what a stage asks the controller to do.
type EventKind int

const (
	EventNone EventKind = iota
	EventCleared
	EventExit
)

// Event is returned from Update.
type Event struct {
	Kind      EventKind
	Next      string
	Unlock    int
	Crossfade time.Duration
}

// None is the zero event.
func None() Event {
	return Event{}
}

// Cleared reports a finished stage.
func Cleared(next string, unlock int, crossfade time.Duration) Event {
	return Event{Kind: EventCleared, Next: next, Unlock: unlock, Crossfade: crossfade}
}

// Exit asks to leave the stage without clearing it.
func Exit() Event {
	return Event{Kind: EventExit}
}

// Env is the session data a stage is built from. Stages only read it.
type Env struct {
	Physics  physics.Params
	Tuning   config.StagesConfig
	Assets   core.Assets
	Audio    core.AudioSink
	Rand     *rand.Rand
	Unlocked int
	Bounds   core.Vec2
}

// DefaultEnv returns an environment built from the default configuration
// with silent audio.
func DefaultEnv(seed int64) Env {
	cfg := config.DefaultConfig()
	return Env{
		Physics:  cfg.Physics.Params(),
		Tuning:   cfg.Stages,
		Assets:   core.DefaultAssets(),
		Audio:    core.NopAudio{},
		Rand:     rand.New(rand.NewSource(seed)),
		Unlocked: 1,
		Bounds:   core.Vec2{X: core.WorldW, Y: core.WorldH},
	}
}

// normalize fills missing collaborators so stages never nil-check.
func (e Env) normalize() Env {
	if e.Audio == nil {
		e.Audio = core.NopAudio{}
	}
	if e.Rand == nil {
		e.Rand = rand.New(rand.NewSource(1))
	}
	if e.Bounds == (core.Vec2{}) {
		e.Bounds = core.Vec2{X: core.WorldW, Y: core.WorldH}
	}
	if e.Assets.Sounds == nil {
		e.Assets = core.DefaultAssets()
	}
	return e
}

// Seconds converts a duration in seconds for use in events.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
