package scene

import (
	"time"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/stage"
)

const (
	selectCols    = 4
	selectBtnW    = 160
	selectBtnH    = 46
	selectGapX    = 40
	selectGapY    = 60
	selectOriginX = 140
	selectOriginY = 160

	stageFade = 200 * time.Millisecond
)

// Select lists every stage; only unlocked ones can be entered.
type Select struct {
	menu   *Menu
	stages []stage.Info
}

// NewSelect lays out one button per stage. Stage i (1-based) is enabled
// when i <= unlocked.
func NewSelect(audio core.AudioSink, stages []stage.Info, unlocked int) *Select {
	buttons := make([]Button, len(stages))
	for i, info := range stages {
		col, row := i%selectCols, i/selectCols
		buttons[i] = Button{
			Rect: core.NewRect(
				selectOriginX+float64(col)*(selectBtnW+selectGapX),
				selectOriginY+float64(row)*(selectBtnH+selectGapY),
				selectBtnW, selectBtnH,
			),
			Label:   info.Title,
			Enabled: i+1 <= unlocked,
		}
	}
	return &Select{menu: NewMenu(audio, selectCols, buttons...), stages: stages}
}

func (s *Select) ID() string { return SelectID }

// Menu exposes the buttons.
func (s *Select) Menu() *Menu {
	return s.menu
}

func (s *Select) Update(_ float64, in core.InputFrame) Request {
	if i := s.menu.Update(in); i >= 0 {
		return GoTo(s.stages[i].ID, stageFade)
	}
	if in.Has(core.ActionBack) {
		return GoTo(TitleID, exitFade)
	}
	return Stay()
}

func (s *Select) Render(dst *core.DrawState) {
	dst.Background = core.ColorBrightWhite
	dst.Heading(core.WorldW/2, 40, "Stage Select", core.ColorBlack)
	s.menu.Render(dst)
	dst.TextCentered(core.WorldW/2, core.WorldH-40, "arrows: move  enter: play  esc: back", core.ColorGray)
}
