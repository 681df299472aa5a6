package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/progress"
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/stage/stagetest"
	"github.com/vovakirdan/sinland/internal/stages/orchard"
)

const dt = stagetest.DT

// scripted is a stage that replays a fixed list of events.
type scripted struct {
	stage.Base
	id     string
	events []stage.Event
	n      int
}

func (s *scripted) ID() string                 { return s.id }
func (s *scripted) Title() string              { return s.id }
func (s *scripted) Colliders() []core.Rect     { return nil }
func (s *scripted) Render(dst *core.DrawState) { dst.Text(0, 0, s.id, core.ColorWhite) }

func (s *scripted) Update(float64, core.InputFrame) stage.Event {
	defer func() { s.n++ }()
	if s.n < len(s.events) {
		return s.events[s.n]
	}
	return stage.None()
}

func testRegistry(script ...stage.Event) *stage.Registry {
	r := stage.NewRegistry()
	for _, id := range []string{"one", "two", "three"} {
		r.Register(id, "Stage "+id, func(env stage.Env) stage.Stage {
			return &scripted{Base: stage.NewBase(env, core.Vec2{}, 0), id: id, events: script}
		})
	}
	return r
}

type fakeRecorder struct {
	stages   []string
	respawns []int
	err      error
}

func (f *fakeRecorder) RecordClear(id string, _ time.Duration, respawns int) error {
	f.stages = append(f.stages, id)
	f.respawns = append(f.respawns, respawns)
	return f.err
}

func newController(t *testing.T, counter *progress.Counter, rec Recorder, script ...stage.Event) (*Controller, *stagetest.Audio) {
	t.Helper()
	env, audio := stagetest.Env(1)
	c := NewController(Options{
		Registry: testRegistry(script...),
		Counter:  counter,
		Recorder: rec,
		Env:      env,
	})
	return c, audio
}

func steps(c *Controller, n int, in core.InputFrame) core.StepResult {
	var res core.StepResult
	for range n {
		res = c.Step(dt, in)
	}
	return res
}

func TestStartsOnTitle(t *testing.T) {
	c, _ := newController(t, nil, nil)
	assert.Equal(t, TitleID, c.Current())
	assert.Equal(t, 1, c.Unlocked())
}

func TestTitleStartFadesIntoFirstStage(t *testing.T) {
	c, audio := newController(t, nil, nil)

	c.Step(dt, stagetest.Pressing(core.ActionConfirm))
	require.True(t, c.Scene().(*Title).Fading())
	assert.Equal(t, 1, audio.Count(core.SoundUIEnter))

	steps(c, 30, stagetest.Idle())
	assert.Equal(t, TitleID, c.Current())

	var dst core.DrawState
	c.Render(&dst)
	assert.Greater(t, dst.Fade, 0.5)

	steps(c, 10, stagetest.Idle())
	assert.Equal(t, "one", c.Current())
	assert.False(t, c.Transitioning())
	assert.Equal(t, 1, audio.Resets)
}

func TestTitleToSelectCrossfade(t *testing.T) {
	c, audio := newController(t, nil, nil)

	c.Step(dt, stagetest.Pressing(core.ActionDown))
	assert.Equal(t, 1, audio.Count(core.SoundUISelect))
	c.Step(dt, stagetest.Pressing(core.ActionConfirm))
	require.True(t, c.Transitioning())

	steps(c, 8, stagetest.Idle())
	assert.Equal(t, TitleID, c.Current(), "swap happens at half the crossfade")

	steps(c, 2, stagetest.Idle())
	assert.Equal(t, SelectID, c.Current())
	assert.True(t, c.Transitioning())

	steps(c, 10, stagetest.Idle())
	assert.False(t, c.Transitioning())
}

func TestTitleBackQuits(t *testing.T) {
	c, _ := newController(t, nil, nil)
	res := c.Step(dt, stagetest.Pressing(core.ActionBack))
	assert.True(t, res.Quit)
}

func TestQuitActionAnywhere(t *testing.T) {
	c, _ := newController(t, nil, nil)
	require.NoError(t, c.Jump("one"))
	res := c.Step(dt, stagetest.Pressing(core.ActionQuit))
	assert.True(t, res.Quit)
	assert.True(t, c.Step(dt, stagetest.Idle()).Quit)
}

func TestSceneFrozenDuringTransition(t *testing.T) {
	c, _ := newController(t, nil, nil, stage.Exit())
	require.NoError(t, c.Jump("one"))

	c.Step(dt, stagetest.Idle())
	require.True(t, c.Transitioning())
	sc := c.Scene().(*play).st.(*scripted)
	n := sc.n
	steps(c, 3, stagetest.Idle())
	assert.Equal(t, n, sc.n)
}

func TestStageExitGoesToTitle(t *testing.T) {
	c, _ := newController(t, nil, nil, stage.Exit())
	require.NoError(t, c.Jump("one"))

	c.Step(dt, stagetest.Idle())
	steps(c, 7, stagetest.Idle())
	assert.Equal(t, TitleID, c.Current())
}

func TestClearRaisesPersistsAndRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.txt")
	counter := progress.New(path)
	rec := &fakeRecorder{}
	c, _ := newController(t, counter, rec, stage.Cleared("two", 2, 0))
	require.NoError(t, c.Jump("one"))

	res := c.Step(dt, stagetest.Idle())
	assert.Equal(t, "two", res.Scene)
	assert.Equal(t, 2, res.Unlocked)
	assert.Equal(t, []string{"one"}, rec.stages)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(data))
}

func TestClearNeverLowersProgress(t *testing.T) {
	counter := progress.New("")
	counter.Raise(5)
	c, _ := newController(t, counter, nil, stage.Cleared("two", 2, 0))
	require.NoError(t, c.Jump("one"))

	c.Step(dt, stagetest.Idle())
	assert.Equal(t, 5, c.Unlocked())
}

func TestClearWithoutRaiseSkipsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.txt")
	counter := progress.New(path)
	counter.Raise(5)
	c, _ := newController(t, counter, nil, stage.Cleared("two", 2, 0))
	require.NoError(t, c.Jump("one"))

	c.Step(dt, stagetest.Idle())
	assert.Equal(t, 5, c.Unlocked())
	assert.NoFileExists(t, path)
}

func TestPersistenceFailureIsNotFatal(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	counter := progress.New(filepath.Join(blocker, "save.txt"))

	rec := &fakeRecorder{err: errors.New("disk full")}
	c, _ := newController(t, counter, rec, stage.Cleared("two", 3, 0))
	require.NoError(t, c.Jump("one"))

	res := c.Step(dt, stagetest.Idle())
	assert.Equal(t, 3, res.Unlocked)
	assert.Equal(t, "two", res.Scene)
	assert.False(t, res.Quit)
}

func TestJumpRespectsUnlock(t *testing.T) {
	c, _ := newController(t, nil, nil)
	err := c.Jump("two")
	require.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, TitleID, c.Current())

	require.Error(t, c.Jump("nowhere"))
	require.NoError(t, c.Jump(EndRollID))
	assert.Equal(t, EndRollID, c.Current())
}

func TestUnknownNextFallsBackToTitle(t *testing.T) {
	c, _ := newController(t, nil, nil, stage.Cleared("missing", 1, 0))
	require.NoError(t, c.Jump("one"))
	res := c.Step(dt, stagetest.Idle())
	assert.Equal(t, TitleID, res.Scene)
}

func TestSetPhysicsReachesRunningStage(t *testing.T) {
	env, _ := stagetest.Env(1)
	c := NewController(Options{Env: env})
	require.NoError(t, c.Jump(orchard.ID))

	p := env.Physics
	p.Gravity = 900
	c.SetPhysics(p)

	st := c.Scene().(*play).st.(*orchard.Stage)
	assert.Equal(t, 900.0, st.Env.Physics.Gravity)
}

func TestDefaultsFillMissingOptions(t *testing.T) {
	c := NewController(Options{})
	assert.Equal(t, TitleID, c.Current())
	require.NoError(t, c.Jump(orchard.ID))
	assert.Equal(t, orchard.ID, c.Current())
}

func TestSelectEnablesUnlockedOnly(t *testing.T) {
	infos := testRegistry().List()
	audio := &stagetest.Audio{}

	s := NewSelect(audio, infos, 1)
	assert.True(t, s.Menu().Buttons[0].Enabled)
	assert.False(t, s.Menu().Buttons[1].Enabled)
	assert.False(t, s.Menu().Buttons[2].Enabled)

	s.Update(dt, stagetest.Pressing(core.ActionRight))
	assert.Equal(t, 0, s.Menu().Cursor, "cursor skips locked stages")

	s = NewSelect(audio, infos, 2)
	s.Update(dt, stagetest.Pressing(core.ActionRight))
	assert.Equal(t, 1, s.Menu().Cursor)
	req := s.Update(dt, stagetest.Pressing(core.ActionConfirm))
	assert.Equal(t, GoTo("two", 200*time.Millisecond), req)
}

func TestSelectBack(t *testing.T) {
	s := NewSelect(nil, testRegistry().List(), 1)
	req := s.Update(dt, stagetest.Pressing(core.ActionBack))
	assert.Equal(t, GoTo(TitleID, 200*time.Millisecond), req)
}

func TestSelectPointerOnLockedStage(t *testing.T) {
	s := NewSelect(nil, testRegistry().List(), 1)
	b := s.Menu().Buttons[2].Rect
	in := stagetest.Idle()
	in.Pointer = core.Pointer{X: b.CenterX(), Y: b.CenterY(), Valid: true, Pressed: true}
	assert.Equal(t, Stay(), s.Update(dt, in))
}

func TestMenuHoverAndClick(t *testing.T) {
	audio := &stagetest.Audio{}
	m := NewMenu(audio, 1, NewButton(100, 100, 80, 40, "a"), NewButton(100, 200, 80, 40, "b"))

	in := stagetest.Idle()
	in.Pointer = core.Pointer{X: 100, Y: 200, Valid: true}
	assert.Equal(t, -1, m.Update(in))
	assert.Equal(t, -1, m.Update(in))
	assert.Equal(t, 1, audio.Count(core.SoundUISelect), "hover cue plays on the rising edge only")
	assert.Equal(t, 1, m.Cursor)
	assert.True(t, m.Buttons[1].Hovered())

	in.Pointer.Pressed = true
	assert.Equal(t, 1, m.Update(in))
	assert.Equal(t, 1, audio.Count(core.SoundUIEnter))
}

func TestMenuKeyboardStopsAtEdges(t *testing.T) {
	m := NewMenu(nil, 1, NewButton(0, 0, 10, 10, "a"), NewButton(0, 20, 10, 10, "b"))
	m.Update(stagetest.Pressing(core.ActionUp))
	assert.Equal(t, 0, m.Cursor)
	m.Update(stagetest.Pressing(core.ActionDown))
	m.Update(stagetest.Pressing(core.ActionDown))
	assert.Equal(t, 1, m.Cursor)
}

func TestEndRollAdvancesAndReturns(t *testing.T) {
	e := NewEndRoll()
	frames := int((slideFade+slideHold+slideFade)/dt) + 2

	for range frames {
		e.Update(dt, stagetest.Idle())
	}
	assert.Equal(t, 1, e.Index())

	e.Update(dt, stagetest.Pressing(core.ActionJump))
	assert.Equal(t, 2, e.Index())

	var req Request
	for range len(Credits) {
		req = e.Update(dt, stagetest.Pressing(core.ActionConfirm))
		if req.Next != "" {
			break
		}
	}
	assert.Equal(t, GoTo(TitleID, 2500*time.Millisecond), req)
}

func TestEndRollBack(t *testing.T) {
	e := NewEndRoll()
	assert.Equal(t, GoTo(TitleID, 300*time.Millisecond), e.Update(dt, stagetest.Pressing(core.ActionBack)))
}

func TestSlideAlpha(t *testing.T) {
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.4, 0.5},
		{0.8, 1},
		{2.0, 1},
		{3.2, 0.5},
		{3.6, 0},
		{5, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, slideAlpha(tt.t), 1e-9, "t=%v", tt.t)
	}
}

func TestEndRollRendersOnBlack(t *testing.T) {
	e := NewEndRoll()
	for range 3 {
		e.Update(dt, stagetest.Pressing(core.ActionJump))
	}
	for range 60 {
		e.Update(dt, stagetest.Idle())
	}
	var dst core.DrawState
	e.Render(&dst)
	assert.Equal(t, core.ColorBlack, dst.Background)
	require.Len(t, dst.Labels, 1)
	assert.Equal(t, Credits[3], dst.Labels[0].Text)
}

func TestTransitionZeroAndHalf(t *testing.T) {
	tr := newTransition("x", 200*time.Millisecond)
	assert.Zero(t, tr.alpha())
	assert.False(t, tr.step(0.05))
	assert.InDelta(t, 0.5, tr.alpha(), 1e-9)
	assert.True(t, tr.step(0.05))
	assert.InDelta(t, 1, tr.alpha(), 1e-9)
	tr.step(0.1)
	assert.False(t, tr.active)
	assert.Zero(t, tr.alpha())
}
