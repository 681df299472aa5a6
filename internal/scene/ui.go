package scene

import "github.com/vovakirdan/sinland/internal/core"

// Button is a clickable, focusable menu entry.
type Button struct {
	Rect    core.Rect
	Label   string
	Enabled bool

	hovered bool
}

// NewButton creates an enabled button centered on (cx, cy).
func NewButton(cx, cy, w, h float64, label string) Button {
	return Button{Rect: core.NewRect(cx-w/2, cy-h/2, w, h), Label: label, Enabled: true}
}

// Hovered reports whether the pointer is over an enabled button.
func (b *Button) Hovered() bool {
	return b.hovered
}

// Menu is a grid of buttons driven by the pointer and the keyboard.
// Hovering plays the select cue on the rising edge; activation plays the
// enter cue.
type Menu struct {
	Buttons []Button
	Cols    int
	Cursor  int

	audio core.AudioSink
}

// NewMenu creates a menu laid out in cols columns.
func NewMenu(audio core.AudioSink, cols int, buttons ...Button) *Menu {
	if audio == nil {
		audio = core.NopAudio{}
	}
	if cols < 1 {
		cols = 1
	}
	m := &Menu{Buttons: buttons, Cols: cols, audio: audio}
	m.Cursor = m.seek(-1, 1)
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m
}

// Update handles one frame of input and returns the activated button
// index, or -1.
func (m *Menu) Update(in core.InputFrame) int {
	p := in.Pointer
	for i := range m.Buttons {
		b := &m.Buttons[i]
		over := b.Enabled && p.Valid && b.Rect.Contains(p.X, p.Y)
		if over && !b.hovered {
			m.audio.Play(core.SoundUISelect)
			m.Cursor = i
		}
		b.hovered = over
		if over && p.Pressed {
			m.audio.Play(core.SoundUIEnter)
			return i
		}
	}

	moved := -1
	switch {
	case in.Has(core.ActionLeft):
		moved = m.seek(m.Cursor, -1)
	case in.Has(core.ActionRight):
		moved = m.seek(m.Cursor, 1)
	case in.Has(core.ActionUp):
		moved = m.seek(m.Cursor, -m.Cols)
	case in.Has(core.ActionDown):
		moved = m.seek(m.Cursor, m.Cols)
	}
	if moved >= 0 && moved != m.Cursor {
		m.Cursor = moved
		m.audio.Play(core.SoundUISelect)
	}

	if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
		if m.Cursor >= 0 && m.Cursor < len(m.Buttons) && m.Buttons[m.Cursor].Enabled {
			m.audio.Play(core.SoundUIEnter)
			return m.Cursor
		}
	}
	return -1
}

// seek walks from i by step and returns the first enabled index, or -1.
func (m *Menu) seek(i, step int) int {
	for j := i + step; j >= 0 && j < len(m.Buttons); j += step {
		if m.Buttons[j].Enabled {
			return j
		}
	}
	return -1
}

// Render draws every button; the focused one is highlighted.
func (m *Menu) Render(dst *core.DrawState) {
	for i, b := range m.Buttons {
		fill, frame, text := core.ColorBrightWhite, core.ColorBlack, core.ColorBlack
		switch {
		case !b.Enabled:
			fill, frame, text = core.ColorWhite, core.ColorGray, core.ColorGray
		case i == m.Cursor || b.hovered:
			fill = core.ColorBrightCyan
		}
		dst.Fill(b.Rect, fill, ' ')
		dst.Outline(b.Rect, frame)
		dst.TextCentered(b.Rect.CenterX(), b.Rect.CenterY(), b.Label, text)
	}
}
