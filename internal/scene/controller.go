package scene

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sinland/internal/config"
	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
	"github.com/vovakirdan/sinland/internal/progress"
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/stages"
)

// ErrLocked is returned when jumping to a stage that is not unlocked yet.
var ErrLocked = errors.New("scene: stage is locked")

// Options configures a Controller. Zero fields get working defaults.
type Options struct {
	Registry *stage.Registry
	Counter  *progress.Counter
	Recorder Recorder
	Logger   *log.Logger
	Env      stage.Env
}

// Controller owns the active scene and the unlock counter.
type Controller struct {
	reg      *stage.Registry
	counter  *progress.Counter
	recorder Recorder
	logger   *log.Logger
	env      stage.Env

	current Scene
	trans   transition
	quit    bool
}

// NewController starts on the title screen.
func NewController(opts Options) *Controller {
	c := &Controller{
		reg:      opts.Registry,
		counter:  opts.Counter,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		env:      opts.Env,
	}
	if c.reg == nil {
		c.reg = stages.Default()
	}
	if c.counter == nil {
		c.counter = progress.New("")
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.env.Audio == nil {
		c.env.Audio = core.NopAudio{}
	}
	if c.env.Rand == nil {
		c.env.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	def := stage.DefaultEnv(0)
	if c.env.Physics == (physics.Params{}) {
		c.env.Physics = def.Physics
	}
	if c.env.Tuning == (config.StagesConfig{}) {
		c.env.Tuning = def.Tuning
	}
	c.current = c.newTitle()
	return c
}

// Current returns the ID of the active scene.
func (c *Controller) Current() string {
	return c.current.ID()
}

// Scene returns the active scene.
func (c *Controller) Scene() Scene {
	return c.current
}

// Unlocked returns the unlock counter.
func (c *Controller) Unlocked() int {
	return c.counter.Value()
}

// Transitioning reports whether a crossfade is running.
func (c *Controller) Transitioning() bool {
	return c.trans.active
}

// Jump replaces the active scene without a transition. Stages must be
// unlocked.
func (c *Controller) Jump(id string) error {
	if i := c.reg.Index(id); i > 0 && i > c.counter.Value() {
		return fmt.Errorf("%w: %s needs %d, have %d", ErrLocked, id, i, c.counter.Value())
	}
	sc, err := c.build(id)
	if err != nil {
		return err
	}
	c.trans = transition{}
	c.current = sc
	c.logger.Info("scene", "to", id)
	return nil
}

// SetPhysics changes the kinematics for the running stage and every stage
// built afterwards.
func (c *Controller) SetPhysics(p physics.Params) {
	c.env.Physics = p
	if pl, ok := c.current.(*play); ok {
		if ps, ok := pl.st.(interface{ SetPhysics(physics.Params) }); ok {
			ps.SetPhysics(p)
		}
	}
	c.logger.Debug("physics updated", "gravity", p.Gravity, "jump", p.JumpSpeed)
}

// Step runs one frame. Scenes are frozen while a transition runs.
func (c *Controller) Step(dt float64, in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		c.quit = true
	}
	if c.quit {
		return c.result()
	}

	if c.trans.active {
		if c.trans.step(dt) {
			c.swap(c.trans.next)
		}
		return c.result()
	}

	req := c.current.Update(dt, in)
	if req.Clear != nil {
		c.cleared(*req.Clear)
	}
	switch {
	case req.Quit:
		c.quit = true
	case req.Next != "":
		c.change(req.Next, req.Crossfade)
	}
	return c.result()
}

func (c *Controller) result() core.StepResult {
	return core.StepResult{Scene: c.current.ID(), Unlocked: c.counter.Value(), Quit: c.quit}
}

// Render draws the active scene and the transition overlay.
func (c *Controller) Render(dst *core.DrawState) {
	dst.Reset()
	c.current.Render(dst)
	dst.Darken(c.trans.alpha())
}

func (c *Controller) change(next string, d time.Duration) {
	c.logger.Info("scene", "from", c.current.ID(), "to", next, "fade", d)
	if d <= 0 {
		c.swap(next)
		return
	}
	c.trans = newTransition(next, d)
}

func (c *Controller) swap(next string) {
	c.env.Audio.StopAll()
	sc, err := c.build(next)
	if err != nil {
		c.logger.Error("cannot build scene", "scene", next, "error", err)
		sc = c.newTitle()
	}
	c.current = sc
}

func (c *Controller) cleared(cl Clear) {
	if c.counter.Raise(cl.Unlock) {
		if err := c.counter.Save(); err != nil {
			c.logger.Warn("cannot save progress", "error", err)
		}
	}
	if c.recorder != nil {
		if err := c.recorder.RecordClear(cl.Stage, cl.Duration, cl.Respawns); err != nil {
			c.logger.Warn("cannot record clear", "stage", cl.Stage, "error", err)
		}
	}
	c.logger.Info("stage cleared",
		"stage", cl.Stage,
		"time", cl.Duration.Round(time.Millisecond),
		"respawns", cl.Respawns,
		"unlocked", c.counter.Value(),
	)
}

func (c *Controller) build(id string) (Scene, error) {
	switch id {
	case TitleID:
		return c.newTitle(), nil
	case SelectID:
		return NewSelect(c.env.Audio, c.reg.List(), c.counter.Value()), nil
	case EndRollID:
		return NewEndRoll(), nil
	}

	env := c.env
	env.Unlocked = c.counter.Value()
	st, err := c.reg.Create(id, env)
	if err != nil {
		return nil, err
	}
	return newPlay(st), nil
}

func (c *Controller) newTitle() *Title {
	return NewTitle(c.env.Audio, c.reg.First(), c.env.Rand)
}
