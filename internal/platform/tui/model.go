package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sinland/internal/core"
	"github.com/vovakirdan/sinland/internal/physics"
	"github.com/vovakirdan/sinland/internal/scene"
)

// ReloadMsg carries new kinematics from the config watcher.
type ReloadMsg struct {
	Physics physics.Params
}

// Model is the Bubble Tea model that drives the scene controller.
type Model struct {
	ctrl    *scene.Controller
	screen  *core.Screen
	draw    *core.DrawState
	raster  Raster
	keys    *KeyMapper
	hold    *HoldTracker
	frame   core.InputFrame
	pointer core.Pointer
	config  core.RuntimeConfig
	last    core.StepResult
	now     func() time.Time

	quitting bool
}

// NewModel creates a model for ctrl sized to cfg.
func NewModel(ctrl *scene.Controller, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	m := Model{
		ctrl:   ctrl,
		draw:   &core.DrawState{},
		keys:   NewKeyMapper(),
		hold:   NewHoldTracker(),
		frame:  core.NewInputFrame(),
		config: cfg,
		now:    time.Now,
		last:   core.StepResult{Scene: ctrl.Current(), Unlocked: ctrl.Unlocked()},
	}
	m.screen = core.NewScreen(cfg.ScreenW, playRows(cfg.ScreenH))
	m.raster = NewRaster(cfg.ScreenW, playRows(cfg.ScreenH))
	return m
}

// playRows leaves the last terminal row for the status line.
func playRows(h int) int {
	return max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.BlurMsg:
		m.hold.Release()
		return m, nil

	case ReloadMsg:
		m.ctrl.SetPhysics(msg.Physics)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	b := m.keys.MapKey(msg)
	if b.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	if b.Action == core.ActionNone {
		return m, nil
	}

	now := m.now()
	if b.Run {
		m.hold.Key(core.ActionRun, now)
	}
	if m.hold.Key(b.Action, now) {
		m.frame.Press(b.Action)
	}
	return m, nil
}

// handleMouse maps terminal mouse events onto the world-space pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := m.raster.World(msg.X, msg.Y)
	m.pointer.X, m.pointer.Y = x, y
	m.pointer.Valid = true

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.pointer.Down = true
			m.pointer.Pressed = true
		}
	case tea.MouseActionRelease:
		m.pointer.Down = false
	}
	return m, nil
}

// handleResize processes window resize events. The simulation runs in
// world units, so only the rasterizer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playRows(msg.Height))
	m.raster = NewRaster(msg.Width, playRows(msg.Height))
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.hold.Fill(&m.frame, m.now())
	m.frame.Pointer = m.pointer

	m.last = m.ctrl.Step(m.config.FrameDelta(), m.frame)

	m.frame.Clear()
	m.pointer.Pressed = false

	if m.last.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// Quitting reports whether the player left the game.
func (m Model) Quitting() bool {
	return m.quitting
}

// Last returns the result of the most recent tick.
func (m Model) Last() core.StepResult {
	return m.last
}

// Frame rasterizes the current scene without styling.
func (m Model) Frame() string {
	m.ctrl.Render(m.draw)
	m.raster.Draw(m.draw, m.screen)
	return m.screen.String()
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sinland", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.ctrl.Current(), m.now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.Frame()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.ctrl.Render(m.draw)
	m.raster.Draw(m.draw, m.screen)

	var sb strings.Builder
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteRune('\n')
	sb.WriteString(StatusLine(m.last, m.config.ScreenW))
	return sb.String()
}

// Run starts the Bubble Tea program for ctrl and blocks until the player
// quits. Params received on reload are applied between ticks.
func Run(ctrl *scene.Controller, cfg core.RuntimeConfig, reload <-chan physics.Params) error {
	model := NewModel(ctrl, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if reload != nil {
		go func() {
			for params := range reload {
				p.Send(ReloadMsg{Physics: params})
			}
		}()
	}

	_, err := p.Run()
	return err
}
