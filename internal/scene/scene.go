// Package scene runs the scene graph: title, stage select, the stages, and
// the end roll. The Controller owns the active scene, the unlock counter,
// and the crossfades between scenes.
package scene

import (
	"time"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/stage"
)

// Non-stage scene IDs.
const (
	TitleID   = "title"
	SelectID  = "select"
	EndRollID = "endroll"
)

// Scene is one screen of the game.
type Scene interface {
	ID() string
	Update(dt float64, in core.InputFrame) Request
	Render(dst *core.DrawState)
}

// Request is what a scene asks the controller to do after a frame.
// The zero value keeps the scene running.
type Request struct {
	Next      string
	Crossfade time.Duration
	Quit      bool
	Clear     *Clear
}

// Stay returns the empty request.
func Stay() Request {
	return Request{}
}

// GoTo asks for a transition to id.
func GoTo(id string, crossfade time.Duration) Request {
	return Request{Next: id, Crossfade: crossfade}
}

// Clear describes a finished stage.
type Clear struct {
	Stage    string
	Unlock   int
	Duration time.Duration
	Respawns int
}

// Recorder stores clear records. Failures never interrupt play.
type Recorder interface {
	RecordClear(stageID string, d time.Duration, respawns int) error
}

type respawnCounter interface {
	Respawns() int
}

// play adapts a stage to the Scene interface.
type play struct {
	st      stage.Stage
	elapsed float64
}

func newPlay(st stage.Stage) *play {
	return &play{st: st}
}

func (p *play) ID() string {
	return p.st.ID()
}

func (p *play) Update(dt float64, in core.InputFrame) Request {
	p.elapsed += dt
	ev := p.st.Update(dt, in)

	switch ev.Kind {
	case stage.EventCleared:
		cl := &Clear{
			Stage:    p.st.ID(),
			Unlock:   ev.Unlock,
			Duration: stage.Seconds(p.elapsed),
		}
		if rc, ok := p.st.(respawnCounter); ok {
			cl.Respawns = rc.Respawns()
		}
		return Request{Next: ev.Next, Crossfade: ev.Crossfade, Clear: cl}
	case stage.EventExit:
		return GoTo(TitleID, exitFade)
	}
	return Stay()
}

func (p *play) Render(dst *core.DrawState) {
	p.st.Render(dst)
}
