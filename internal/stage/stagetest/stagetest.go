// Package stagetest provides helpers for driving stages in tests.
package stagetest

import (
	"sync"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/stage"
)

// DT is the frame step used by stage tests.
const DT = 1.0 / 60

// Audio records every cue it receives.
type Audio struct {
	mu      sync.Mutex
	Played  []core.Sound
	Stopped []core.Sound
	Resets  int
}

func (a *Audio) Play(s core.Sound) {
	a.mu.Lock()
	a.Played = append(a.Played, s)
	a.mu.Unlock()
}

func (a *Audio) Stop(s core.Sound) {
	a.mu.Lock()
	a.Stopped = append(a.Stopped, s)
	a.mu.Unlock()
}

func (a *Audio) StopAll() {
	a.mu.Lock()
	a.Resets++
	a.mu.Unlock()
}

// Count returns how many times s was played.
func (a *Audio) Count(s core.Sound) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, p := range a.Played {
		if p == s {
			n++
		}
	}
	return n
}

// WasStopped reports whether s was stopped at least once.
func (a *Audio) WasStopped(s core.Sound) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.Stopped {
		if p == s {
			return true
		}
	}
	return false
}

// Env returns a default environment wired to a recording sink.
func Env(seed int64) (stage.Env, *Audio) {
	audio := &Audio{}
	env := stage.DefaultEnv(seed)
	env.Audio = audio
	return env, audio
}

// Idle returns an empty input frame.
func Idle() core.InputFrame {
	return core.NewInputFrame()
}

// Holding returns a frame with the given actions held.
func Holding(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Hold(a)
	}
	return in
}

// Pressing returns a frame with the given actions pressed this frame.
func Pressing(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Press(a)
	}
	return in
}

// Run steps s for n frames with the same input and returns the first
// non-empty event, or the zero event.
func Run(s stage.Stage, n int, in core.InputFrame) stage.Event {
	for range n {
		if ev := s.Update(DT, in); ev.Kind != stage.EventNone {
			return ev
		}
	}
	return stage.None()
}

// Settle steps idle frames until the player rests on the ground.
func Settle(s stage.Stage) {
	for range 120 {
		s.Update(DT, Idle())
		if s.Player().Grounded {
			return
		}
	}
}
