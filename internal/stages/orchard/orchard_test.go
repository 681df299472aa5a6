package orchard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/stage/stagetest"
	"github.com/vovakirdan/sinland/internal/trigger"
)

func newStage(t *testing.T, seed int64) (*Stage, *stagetest.Audio) {
	t.Helper()
	env, audio := stagetest.Env(seed)
	s, ok := New(env).(*Stage)
	require.True(t, ok)
	return s, audio
}

// dropOnto places the player above r so the next frames fall through its top edge.
func dropOnto(s *Stage, r core.Rect) {
	s.Body.Respawn(core.Vec2{X: r.X + 4, Y: r.Y - 60})
}

func TestNewStartsUnsolved(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s, audio := newStage(t, seed)
		assert.False(t, s.Solved(), "seed %d", seed)
		assert.ElementsMatch(t, answer[:], s.fruits[:], "shuffle keeps every fruit")
		assert.Equal(t, 1, audio.Count(core.SoundStageBGM))
	}
}

func TestShuffleIsSeeded(t *testing.T) {
	a, _ := newStage(t, 42)
	b, _ := newStage(t, 42)
	assert.Equal(t, a.Fruits(), b.Fruits())
}

func TestSwapPadSolves(t *testing.T) {
	s, audio := newStage(t, 1)
	s.fruits = [fruitCount]int{Grape, Banana, Peach, Apple}

	dropOnto(s, swapPad)
	stagetest.Run(s, 60, stagetest.Idle())

	assert.True(t, s.Solved())
	assert.True(t, s.DoorShown())
	assert.Equal(t, 1, audio.Count(core.SoundButton))
	assert.Equal(t, 1, audio.Count(core.SoundDoor))
}

func TestRotatePadShiftsRight(t *testing.T) {
	s, audio := newStage(t, 1)
	s.fruits = [fruitCount]int{Banana, Peach, Grape, Apple}

	dropOnto(s, rotatePad)
	stagetest.Run(s, 60, stagetest.Idle())

	assert.Equal(t, [fruitCount]int{Apple, Banana, Peach, Grape}, s.Fruits())
	assert.Equal(t, 1, audio.Count(core.SoundButton))
}

func TestPadIgnoresSideApproach(t *testing.T) {
	s, audio := newStage(t, 1)
	start := s.Fruits()

	s.Body.Respawn(core.Vec2{X: 330, Y: 540})
	stagetest.Settle(s)
	stagetest.Run(s, 120, stagetest.Holding(core.ActionRight))

	require.Greater(t, s.Body.Pos.X, rotatePad.Right(), "walked across both pads")
	assert.Equal(t, start, s.Fruits())
	assert.Zero(t, audio.Count(core.SoundButton))
}

func TestDoorClearsAfterFade(t *testing.T) {
	s, audio := newStage(t, 1)
	s.fruits = answer
	s.Body.Respawn(core.Vec2{X: 30, Y: 540})

	ev := s.Update(stagetest.DT, stagetest.Idle())
	require.Equal(t, stage.EventNone, ev.Kind)
	require.True(t, s.Clearing())
	assert.Equal(t, 1, audio.Count(core.SoundClear))
	assert.True(t, audio.WasStopped(core.SoundStageBGM))

	frozen := s.Body.Pos
	ev = stagetest.Run(s, 10, stagetest.Pressing(core.ActionRight, core.ActionJump, core.ActionBack))
	assert.Equal(t, stage.EventNone, ev.Kind, "exit is ignored while clearing")
	assert.Equal(t, frozen, s.Body.Pos)

	ev = stagetest.Run(s, 60, stagetest.Idle())
	assert.Equal(t, stage.EventCleared, ev.Kind)
	assert.Equal(t, Next, ev.Next)
	assert.Equal(t, 2, ev.Unlock)
	assert.Zero(t, ev.Crossfade)
}

func TestDoorHiddenUntilSolved(t *testing.T) {
	s, _ := newStage(t, 1)
	s.Body.Respawn(core.Vec2{X: 30, Y: 540})
	stagetest.Run(s, 30, stagetest.Idle())
	assert.False(t, s.Clearing())
}

func TestMonkeyTriggersOnce(t *testing.T) {
	s, audio := newStage(t, 1)
	assert.False(t, s.Monkey().Visible())

	s.Body.Respawn(core.Vec2{X: 410, Y: 540})
	s.Update(stagetest.DT, stagetest.Idle())
	assert.True(t, s.Monkey().Visible())
	assert.Equal(t, trigger.ActorEntering, s.Monkey().Phase())
	assert.Equal(t, 1, audio.Count(core.SoundMonkey))

	s.Update(stagetest.DT, stagetest.Idle())
	assert.Equal(t, 1, audio.Count(core.SoundMonkey))
}

func TestExit(t *testing.T) {
	s, _ := newStage(t, 1)
	ev := s.Update(stagetest.DT, stagetest.Pressing(core.ActionBack))
	assert.Equal(t, stage.EventExit, ev.Kind)
}

func TestFallRespawns(t *testing.T) {
	s, _ := newStage(t, 1)
	s.Body.Pos = core.Vec2{X: 500, Y: 700}
	s.Update(stagetest.DT, stagetest.Idle())
	assert.Equal(t, spawn, s.Body.Pos)
	assert.Equal(t, core.Vec2{}, s.Body.Vel)
	assert.Equal(t, 1, s.Respawns())
}

func TestRenderFadesIn(t *testing.T) {
	s, _ := newStage(t, 1)
	var ds core.DrawState
	s.Render(&ds)
	assert.InDelta(t, 1.0, ds.Fade, 1e-9)
	assert.NotEmpty(t, ds.Shapes)

	stagetest.Run(s, 60, stagetest.Idle())
	ds.Reset()
	s.Render(&ds)
	assert.Zero(t, ds.Fade)
}
