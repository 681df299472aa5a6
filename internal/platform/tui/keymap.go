package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sinland/internal/core"
)

// Terminals only report key presses and auto-repeats, never releases.
// A key counts as held for FirstHold after the press and each repeat
// pushes the release out by RepeatHold.
const (
	FirstHold  = 500 * time.Millisecond
	RepeatHold = 120 * time.Millisecond
)

// Binding is what a single key message means to the game.
type Binding struct {
	Action core.Action
	Run    bool // shifted movement keys also hold Run
	Quit   bool
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a binding.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Binding {
	return km.MapString(msg.String())
}

// MapString maps a key name as reported by Bubble Tea.
func (km *KeyMapper) MapString(key string) Binding {
	switch key {
	case "ctrl+c", "q":
		return Binding{Action: core.ActionQuit, Quit: true}
	case "a", "left":
		return Binding{Action: core.ActionLeft}
	case "d", "right":
		return Binding{Action: core.ActionRight}
	case "A", "shift+left":
		return Binding{Action: core.ActionLeft, Run: true}
	case "D", "shift+right":
		return Binding{Action: core.ActionRight, Run: true}
	case "w", "up", "k":
		return Binding{Action: core.ActionUp}
	case "s", "down", "j":
		return Binding{Action: core.ActionDown}
	case " ", "space":
		return Binding{Action: core.ActionJump}
	case "enter":
		return Binding{Action: core.ActionConfirm}
	case "b", "esc":
		return Binding{Action: core.ActionBack}
	}
	return Binding{Action: core.ActionNone}
}

// HoldTracker turns a stream of key presses into held actions.
type HoldTracker struct {
	First  time.Duration
	Repeat time.Duration

	until map[core.Action]time.Time
}

// NewHoldTracker creates a tracker with the default hold windows.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		First:  FirstHold,
		Repeat: RepeatHold,
		until:  make(map[core.Action]time.Time),
	}
}

// Key registers a key message for a at now. It returns true for a fresh
// press and false for an auto-repeat of a key that is still held.
func (h *HoldTracker) Key(a core.Action, now time.Time) bool {
	if t, ok := h.until[a]; ok && now.Before(t) {
		if ext := now.Add(h.Repeat); ext.After(t) {
			h.until[a] = ext
		}
		return false
	}
	h.until[a] = now.Add(h.First)
	return true
}

// Held reports whether a is still considered down at now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Fill marks every held action in frame and forgets expired ones.
func (h *HoldTracker) Fill(frame *core.InputFrame, now time.Time) {
	for a, t := range h.until {
		if !now.Before(t) {
			delete(h.until, a)
			continue
		}
		frame.Hold(a)
	}
}

// Release drops every held action, e.g. when the terminal loses focus.
func (h *HoldTracker) Release() {
	clear(h.until)
}
