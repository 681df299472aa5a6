package scene

import (
	"time"

	"github.com/vovakirdan/sinland/internal/core"
)

const (
	slideFade = 0.8
	slideHold = 2.0

	rollDoneFade = 2500 * time.Millisecond
	rollExitFade = 300 * time.Millisecond
)

// Credits are the end roll slides in order.
var Credits = []string{
	"",
	"Sin Land",
	"Design, systems & art: haito",
	"Sound: Koukaon Lab",
	"Special thanks: all players",
	"END",
}

// EndRoll shows the credits one slide at a time.
type EndRoll struct {
	slides []string
	index  int
	t      float64
}

// NewEndRoll starts at the first slide.
func NewEndRoll() *EndRoll {
	return &EndRoll{slides: Credits}
}

func (e *EndRoll) ID() string { return EndRollID }

// Index returns the current slide.
func (e *EndRoll) Index() int {
	return e.index
}

func (e *EndRoll) Update(dt float64, in core.InputFrame) Request {
	if in.Has(core.ActionBack) {
		return GoTo(TitleID, rollExitFade)
	}
	if e.index >= len(e.slides) {
		return Stay()
	}
	if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) || in.Pointer.Pressed {
		return e.next()
	}
	e.t += dt
	if e.t >= slideFade+slideHold+slideFade {
		return e.next()
	}
	return Stay()
}

func (e *EndRoll) next() Request {
	e.index++
	e.t = 0
	if e.index >= len(e.slides) {
		return GoTo(TitleID, rollDoneFade)
	}
	return Stay()
}

// slideAlpha is the text opacity t seconds into a slide.
func slideAlpha(t float64) float64 {
	a := 1.0
	switch {
	case t < slideFade:
		a = t / slideFade
	case t > slideFade+slideHold:
		a = 1 - (t-slideFade-slideHold)/slideFade
	}
	return core.Saturate(a)
}

func (e *EndRoll) Render(dst *core.DrawState) {
	dst.Background = core.ColorBlack
	dst.Fill(core.NewRect(0, 0, core.WorldW, core.WorldH), core.ColorBlack, ' ')
	if e.index >= len(e.slides) {
		return
	}

	var c core.Color
	switch a := slideAlpha(e.t); {
	case a < 0.25:
		return
	case a < 0.6:
		c = core.ColorGray
	default:
		c = core.ColorBrightWhite
	}
	dst.Heading(core.WorldW/2, core.WorldH/2, e.slides[e.index], c)
}
