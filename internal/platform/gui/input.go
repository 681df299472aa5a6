package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/sinland/internal/core"
)

// bindings lists the keys behind each action.
var bindings = map[core.Action][]ebiten.Key{
	core.ActionLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
	core.ActionRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
	core.ActionUp:      {ebiten.KeyW, ebiten.KeyArrowUp},
	core.ActionDown:    {ebiten.KeyS, ebiten.KeyArrowDown},
	core.ActionJump:    {ebiten.KeySpace},
	core.ActionRun:     {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	core.ActionConfirm: {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	core.ActionBack:    {ebiten.KeyEscape, ebiten.KeyB},
	core.ActionQuit:    {ebiten.KeyQ},
}

// KeySource reports keyboard and mouse state for one tick.
type KeySource interface {
	Held(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
	Cursor() (x, y int)
	MouseDown() bool
	MouseJustPressed() bool
}

// ebitenSource reads the live window state.
type ebitenSource struct{}

func (ebitenSource) Held(k ebiten.Key) bool        { return ebiten.IsKeyPressed(k) }
func (ebitenSource) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }
func (ebitenSource) Cursor() (int, int)            { return ebiten.CursorPosition() }
func (ebitenSource) MouseDown() bool               { return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) }
func (ebitenSource) MouseJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// ReadFrame builds the input snapshot for one tick. The cursor is already
// in world units because the layout is the world size.
func ReadFrame(src KeySource) core.InputFrame {
	f := core.NewInputFrame()
	for a, keys := range bindings {
		for _, k := range keys {
			if src.JustPressed(k) {
				f.Press(a)
			}
			if src.Held(k) {
				f.Hold(a)
			}
		}
	}

	x, y := src.Cursor()
	f.Pointer = core.Pointer{
		X:       float64(x),
		Y:       float64(y),
		Valid:   x >= 0 && y >= 0 && x < core.WorldW && y < core.WorldH,
		Down:    src.MouseDown(),
		Pressed: src.MouseJustPressed(),
	}
	return f
}
