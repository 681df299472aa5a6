package config

import "fmt"

// Preset represents a named timing strictness.
type Preset string

const (
	PresetRelaxed Preset = "relaxed"
	PresetNormal  Preset = "normal"
	PresetStrict  Preset = "strict"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (Preset, error) {
	switch Preset(name) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetRelaxed, PresetStrict:
		return Preset(name), nil
	default:
		return "", fmt.Errorf("unknown preset %q (want relaxed, normal or strict)", name)
	}
}

// ApplyPreset adjusts the rhythm window, combo goal, and green light
// duration. Normal leaves the config untouched.
func ApplyPreset(cfg *Config, preset Preset) {
	hb := &cfg.Stages.Heartbeat
	cw := &cfg.Stages.Crosswalk

	switch preset {
	case PresetRelaxed:
		hb.ToleranceFrames = hb.ToleranceFrames * 3 / 2
		hb.GoalCombo = max(1, hb.GoalCombo-4)
		cw.GreenWindow *= 1.5
	case PresetStrict:
		hb.ToleranceFrames = max(1, hb.ToleranceFrames/2)
		hb.GoalCombo += 5
		cw.GreenWindow *= 0.75
	}
}
