package core

// Action represents a semantic game action, abstracted from physical key presses.
// Hosts map keys, buttons and window events onto actions.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left, menu left
	ActionRight          // D, Right arrow - walk right, menu right
	ActionUp             // W, Up arrow - jump, menu up
	ActionDown           // S, Down arrow - menu down
	ActionJump           // Space - jump, skip a slide
	ActionRun            // Shift - run
	ActionConfirm        // Enter - activate the focused button
	ActionBack           // Escape, B - leave the current scene
	ActionQuit           // Q, Ctrl+C, window close - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionRun:
		return "Run"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Pointer is the mouse state in world units.
// Valid is false for hosts without a pointer (terminal over SSH).
type Pointer struct {
	X, Y    float64
	Valid   bool
	Down    bool // button held
	Pressed bool // button went down this frame
}

// InputFrame is a read-only snapshot of input for one simulation tick.
// Pressed holds actions that went down this frame, Held holds actions
// that are currently down (a pressed action is always held too).
type InputFrame struct {
	Pressed map[Action]bool
	Held    map[Action]bool
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Pressed: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Press marks an action as pressed this frame and held.
func (f *InputFrame) Press(a Action) {
	f.ensure()
	f.Pressed[a] = true
	f.Held[a] = true
}

// Hold marks an action as held without a fresh press.
func (f *InputFrame) Hold(a Action) {
	f.ensure()
	f.Held[a] = true
}

func (f *InputFrame) ensure() {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Pressed[a]
}

// IsHeld returns true if the given action is down this frame.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Pressed)
	clear(f.Held)
	f.Pointer.Pressed = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Pressed {
		c.Pressed[k] = v
	}
	for k, v := range f.Held {
		c.Held[k] = v
	}
	c.Pointer = f.Pointer
	return c
}
