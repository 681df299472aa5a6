// Package gui hosts the game in a desktop window through Ebitengine.
package gui

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
	"github.com/vovakirdan/sinland/internal/scene"
)

// Debug font cell size in pixels.
const (
	glyphW = 6
	glyphH = 16

	headingScale = 3
	maxCached    = 256
)

// Game adapts the scene controller to ebiten.Game.
type Game struct {
	ctrl  *scene.Controller
	cfg   core.RuntimeConfig
	input KeySource
	draw  core.DrawState
	text  map[string]*ebiten.Image
	last  core.StepResult

	// reload delivers new kinematics from the config watcher.
	reload <-chan physics.Params
}

// NewGame creates a window host for ctrl.
func NewGame(ctrl *scene.Controller, cfg core.RuntimeConfig) *Game {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return &Game{
		ctrl:  ctrl,
		cfg:   cfg,
		input: ebitenSource{},
		text:  make(map[string]*ebiten.Image),
	}
}

// Update runs one simulation tick.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	g.applyReload()
	g.last = g.ctrl.Step(g.cfg.FrameDelta(), ReadFrame(g.input))
	if g.last.Quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) applyReload() {
	for {
		select {
		case p, ok := <-g.reload:
			if !ok {
				g.reload = nil
				return
			}
			g.ctrl.SetPhysics(p)
		default:
			return
		}
	}
}

// Draw paints the current draw model.
func (g *Game) Draw(screen *ebiten.Image) {
	g.ctrl.Render(&g.draw)
	g.paint(screen, &g.draw)
}

// Layout keeps the logical screen at world size; ebiten scales the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return core.WorldW, core.WorldH
}

func (g *Game) paint(screen *ebiten.Image, d *core.DrawState) {
	screen.Fill(background(d.Background))

	for _, s := range d.Shapes {
		r := s.Rect
		c := RGBA(s.Color)
		if s.Frame {
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, c, false)
			continue
		}
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
	}

	for _, l := range d.Labels {
		g.label(screen, l)
	}

	if d.Fade > 0 {
		vector.DrawFilledRect(screen, 0, 0, core.WorldW, core.WorldH, overlay(d.Fade), false)
	}
}

// label draws text with the debug font, tinted and optionally scaled.
func (g *Game) label(screen *ebiten.Image, l core.Label) {
	img := g.glyphs(l.Text)
	if img == nil {
		return
	}

	scale := 1.0
	if l.Big {
		scale = headingScale
	}
	w := float64(img.Bounds().Dx()) * scale
	h := float64(glyphH) * scale

	x, y := l.Pos.X, l.Pos.Y-h/2
	if l.Centered {
		x -= w / 2
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(RGBA(l.Color))
	screen.DrawImage(img, op)
}

// glyphs returns a cached white rendering of text.
func (g *Game) glyphs(text string) *ebiten.Image {
	n := len([]rune(text))
	if n == 0 {
		return nil
	}
	if img, ok := g.text[text]; ok {
		return img
	}
	if len(g.text) >= maxCached {
		for k, img := range g.text {
			img.Deallocate()
			delete(g.text, k)
		}
	}
	img := ebiten.NewImage(n*glyphW, glyphH)
	ebitenutil.DebugPrintAt(img, text, 0, 0)
	g.text[text] = img
	return img
}

// Last returns the result of the most recent tick.
func (g *Game) Last() core.StepResult {
	return g.last
}

// Run opens the window and blocks until the player quits. Params received
// on reload are applied before the next tick.
func Run(ctrl *scene.Controller, cfg core.RuntimeConfig, reload <-chan physics.Params) error {
	g := NewGame(ctrl, cfg)
	g.reload = reload

	ebiten.SetWindowSize(core.WorldW, core.WorldH)
	ebiten.SetWindowTitle("Sin Land")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(g.cfg.TickRate)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

var _ ebiten.Game = (*Game)(nil)
