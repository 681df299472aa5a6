package core

// World dimensions in world units. All stage geometry is laid out in this space.
const (
	WorldW = 960
	WorldH = 640
)

// RuntimeConfig contains configuration passed to hosts and the controller.
type RuntimeConfig struct {
	ScreenW  int   // Host surface width (terminal columns or window pixels)
	ScreenH  int   // Host surface height (terminal rows or window pixels)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic puzzles
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDelta returns the fixed simulation step in seconds.
func (c RuntimeConfig) FrameDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// StepResult is returned by the controller after each simulation tick.
type StepResult struct {
	Scene    string // ID of the scene that is active after the tick
	Unlocked int    // Current unlock counter
	Quit     bool   // The player asked to leave the program
}
