package config

import (
	_ "embed"
)

//go:embed defaults/sinland.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration. It mirrors
// defaults/sinland.yaml.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:        1800,
			MoveAccel:      2400,
			AirAccel:       1400,
			MaxSpeedX:      260,
			RunMultiplier:  1.4,
			JumpSpeed:      560,
			GroundFriction: 14,
			AirFriction:    2,
			Epsilon:        0.01,
			WalkCycleHz:    4,
			Width:          28,
			Height:         36,
		},
		Stages: StagesConfig{
			Orchard: OrchardConfig{
				TriggerX:      400,
				EnterSpeed:    100,
				LeaveSpeed:    140,
				FruitDuration: 1.0,
				RepeatDelay:   2.0,
				FadeIn:        0.6,
				FadeOut:       0.7,
			},
			Heartbeat: HeartbeatConfig{
				Hz:              1.1,
				PeakPhase:       0.25,
				Latency:         0.5,
				ToleranceFrames: 9,
				GoalCombo:       10,
			},
			Pencil: PencilConfig{
				LeadStep:       80,
				MaxLead:        560,
				ButtonCooldown: 0.2,
				BreakPresses:   6,
				RootSafeLen:    24,
				BreakMinX:      480,
			},
			Crosswalk: CrosswalkConfig{
				HoldToGreen: 2.0,
				DecayRate:   0.7,
				GreenWindow: 6.0,
				CarSpeed:    520,
				SpawnDelay:  0.25,
			},
			Room: RoomConfig{
				AccelScale:  0.8,
				SpeedScale:  0.7,
				Blackout:    2.1,
				ClickLead:   0.25,
				HoldOnBlack: 0.2,
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.8,
			SampleRate: 44100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
