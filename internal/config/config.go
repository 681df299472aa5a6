// Package config provides YAML-based configuration loading for physics,
// stage tuning, and audio.
package config

import (
	"math"

	"github.com/vovakirdan/sinland/internal/physics"
)

// Config is the full game configuration.
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Stages  StagesConfig  `yaml:"stages"`
	Audio   AudioConfig   `yaml:"audio"`
}

// PhysicsConfig defines player motion.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	MoveAccel      float64 `yaml:"move_accel"`
	AirAccel       float64 `yaml:"air_accel"`
	MaxSpeedX      float64 `yaml:"max_speed_x"`
	RunMultiplier  float64 `yaml:"run_multiplier"`
	JumpSpeed      float64 `yaml:"jump_speed"`
	GroundFriction float64 `yaml:"ground_friction"`
	AirFriction    float64 `yaml:"air_friction"`
	Epsilon        float64 `yaml:"epsilon"`
	WalkCycleHz    float64 `yaml:"walk_cycle_hz"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
}

// Params converts the section to kinematics parameters. Parse overlays the
// file on DefaultConfig, so an explicit zero (no jump, no friction) is kept.
// Negative values and an empty player box fall back to the defaults.
func (c PhysicsConfig) Params() physics.Params {
	p := physics.DefaultParams()
	setIf(&p.Gravity, c.Gravity, 0)
	setIf(&p.MoveAccel, c.MoveAccel, 0)
	setIf(&p.AirAccel, c.AirAccel, 0)
	setIf(&p.MaxSpeedX, c.MaxSpeedX, 0)
	setIf(&p.RunMultiplier, c.RunMultiplier, 0)
	setIf(&p.JumpSpeed, c.JumpSpeed, 0)
	setIf(&p.GroundFriction, c.GroundFriction, 0)
	setIf(&p.AirFriction, c.AirFriction, 0)
	setIf(&p.Epsilon, c.Epsilon, 0)
	setIf(&p.WalkCycleHz, c.WalkCycleHz, 0)
	setIf(&p.Width, c.Width, math.SmallestNonzeroFloat64)
	setIf(&p.Height, c.Height, math.SmallestNonzeroFloat64)
	return p
}

func setIf(dst *float64, v, lowest float64) {
	if v >= lowest {
		*dst = v
	}
}

// StagesConfig holds per-stage tuning.
type StagesConfig struct {
	Orchard   OrchardConfig   `yaml:"orchard"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Pencil    PencilConfig    `yaml:"pencil"`
	Crosswalk CrosswalkConfig `yaml:"crosswalk"`
	Room      RoomConfig      `yaml:"room"`
}

// OrchardConfig tunes the fruit puzzle and the monkey.
type OrchardConfig struct {
	TriggerX      float64 `yaml:"trigger_x"`
	EnterSpeed    float64 `yaml:"enter_speed"`
	LeaveSpeed    float64 `yaml:"leave_speed"`
	FruitDuration float64 `yaml:"fruit_duration"`
	RepeatDelay   float64 `yaml:"repeat_delay"`
	FadeIn        float64 `yaml:"fade_in"`
	FadeOut       float64 `yaml:"fade_out"`
}

// HeartbeatConfig tunes the rhythm stage.
type HeartbeatConfig struct {
	Hz              float64 `yaml:"hz"`
	PeakPhase       float64 `yaml:"peak_phase"`
	Latency         float64 `yaml:"latency"`
	ToleranceFrames int     `yaml:"tolerance_frames"`
	GoalCombo       int     `yaml:"goal_combo"`
}

// PencilConfig tunes the telescoping lead bridge.
type PencilConfig struct {
	LeadStep       float64 `yaml:"lead_step"`
	MaxLead        float64 `yaml:"max_lead"`
	ButtonCooldown float64 `yaml:"button_cooldown"`
	BreakPresses   int     `yaml:"break_presses"`
	RootSafeLen    float64 `yaml:"root_safe_len"`
	BreakMinX      float64 `yaml:"break_min_x"`
}

// CrosswalkConfig tunes the traffic light and the car.
type CrosswalkConfig struct {
	HoldToGreen float64 `yaml:"hold_to_green"`
	DecayRate   float64 `yaml:"decay_rate"`
	GreenWindow float64 `yaml:"green_window"`
	CarSpeed    float64 `yaml:"car_speed"`
	SpawnDelay  float64 `yaml:"spawn_delay"`
}

// RoomConfig tunes the final walk and blackout.
type RoomConfig struct {
	AccelScale  float64 `yaml:"accel_scale"`
	SpeedScale  float64 `yaml:"speed_scale"`
	Blackout    float64 `yaml:"blackout"`
	ClickLead   float64 `yaml:"click_lead"`
	HoldOnBlack float64 `yaml:"hold_on_black"`
}

// AudioConfig controls the synthesized cues.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}
