package config

import (
	"fmt"
	"strings"
)

// SpeedPreset represents a predefined drop pacing.
type SpeedPreset string

const (
	SpeedClassic SpeedPreset = "classic"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists the presets in the order they are offered.
var SpeedPresets = []SpeedPreset{SpeedClassic, SpeedNormal, SpeedFast, SpeedInstant}

// ParseSpeedPreset parses a preset name. Case is ignored.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	p := SpeedPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SpeedPresets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown speed %q (want classic, normal, fast or instant)", s)
}

// ApplySpeedPreset modifies the animation settings for a preset.
func ApplySpeedPreset(cfg *PlinkoConfig, preset SpeedPreset) {
	switch preset {
	case SpeedClassic:
		cfg.Animation = AnimationConfig{Enabled: true, StartPauseMS: 750, RowMS: 500}
	case SpeedNormal:
		cfg.Animation = AnimationConfig{Enabled: true, StartPauseMS: 300, RowMS: 150}
	case SpeedFast:
		cfg.Animation = AnimationConfig{Enabled: true, StartPauseMS: 100, RowMS: 50}
	case SpeedInstant:
		cfg.Animation = AnimationConfig{Enabled: false}
	}
}
