package scene

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/sinland/internal/core"
)

const (
	startFade   = 0.6
	selectFade  = 300 * time.Millisecond
	exitFade    = 200 * time.Millisecond
	ringEvery   = 1.5
	ringMinFade = 0.02
)

// ring is a shrinking square drawn behind the title.
type ring struct {
	pos    core.Vec2
	r      float64
	alpha  float64
	shrink float64
}

func (g *ring) update() bool {
	g.r *= g.shrink
	g.alpha *= 0.97
	return g.alpha > ringMinFade
}

// Title is the first screen: Start and Stage Select.
type Title struct {
	menu  *Menu
	first string
	rng   *rand.Rand

	rings  []ring
	spawnT float64

	fading bool
	fadeT  float64
}

// NewTitle creates the title screen. first is the stage Start leads to.
func NewTitle(audio core.AudioSink, first string, rng *rand.Rand) *Title {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Title{
		menu: NewMenu(audio, 1,
			NewButton(core.WorldW/2, core.WorldH/2+40, 220, 48, "Start"),
			NewButton(core.WorldW/2, core.WorldH/2+100, 220, 48, "Stage Select"),
		),
		first: first,
		rng:   rng,
	}
}

func (t *Title) ID() string { return TitleID }

// Menu exposes the buttons.
func (t *Title) Menu() *Menu {
	return t.menu
}

// Fading reports whether Start was chosen and the screen is going dark.
func (t *Title) Fading() bool {
	return t.fading
}

func (t *Title) Update(dt float64, in core.InputFrame) Request {
	t.spawnT += dt
	if t.spawnT >= ringEvery {
		t.spawnT = 0
		t.rings = append(t.rings, ring{
			pos:    core.Vec2{X: t.rng.Float64() * core.WorldW, Y: t.rng.Float64() * core.WorldH},
			r:      280 + t.rng.Float64()*140,
			alpha:  0.35,
			shrink: 0.985 + t.rng.Float64()*0.007,
		})
	}
	live := t.rings[:0]
	for _, g := range t.rings {
		if g.update() {
			live = append(live, g)
		}
	}
	t.rings = live

	if t.fading {
		t.fadeT += dt
		if t.fadeT >= startFade {
			return GoTo(t.first, 0)
		}
		return Stay()
	}

	switch t.menu.Update(in) {
	case 0:
		t.fading = true
		t.fadeT = 0
	case 1:
		return GoTo(SelectID, selectFade)
	}

	if in.Has(core.ActionBack) {
		return Request{Quit: true}
	}
	return Stay()
}

func (t *Title) Render(dst *core.DrawState) {
	dst.Background = core.ColorBrightWhite
	for _, g := range t.rings {
		if g.alpha < 0.1 {
			continue
		}
		dst.Outline(core.NewRect(g.pos.X-g.r, g.pos.Y-g.r, 2*g.r, 2*g.r), core.ColorWhite)
	}
	dst.Heading(core.WorldW/2, core.WorldH/2-60, "Sin Land", core.ColorBlack)
	t.menu.Render(dst)

	if t.fading {
		dst.Darken(t.fadeT / startFade)
	}
}
