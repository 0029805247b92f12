package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in ascending order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset validates a preset name. Matching is case-insensitive.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (valid: easy, normal, hard)", name)
}

// Engine returns the engine difficulty for the preset. Unknown presets map
// to normal.
func (p DifficultyPreset) Engine() engine.Difficulty {
	switch p {
	case DifficultyEasy:
		return engine.Easy
	case DifficultyHard:
		return engine.Hard
	default:
		return engine.Normal
	}
}

// PresetFor returns the preset name for an engine difficulty.
func PresetFor(d engine.Difficulty) DifficultyPreset {
	return DifficultyPreset(d.String())
}

// DefaultPreset returns the configured default, or normal when unset.
func (c ShapeDropConfig) DefaultPreset() DifficultyPreset {
	if p, err := ParsePreset(string(c.Difficulty.Default)); err == nil {
		return p
	}
	return DifficultyNormal
}

// ApplyShapeDropPreset makes preset the configured default difficulty.
func ApplyShapeDropPreset(cfg *ShapeDropConfig, preset DifficultyPreset) {
	if p, err := ParsePreset(string(preset)); err == nil {
		cfg.Difficulty.Default = p
	}
}

// SpeedCurve converts the speed section to engine profiles.
func (c ShapeDropConfig) SpeedCurve() engine.SpeedCurve {
	conv := func(p SpeedProfile) engine.SpeedProfile {
		return engine.SpeedProfile{
			InitialMs:         p.InitialMs,
			Per10LinesDeltaMs: p.Per10LinesDeltaMs,
			MinMs:             p.MinMs,
		}
	}
	return engine.SpeedCurve{
		engine.Easy:   conv(c.Speed.Easy),
		engine.Normal: conv(c.Speed.Normal),
		engine.Hard:   conv(c.Speed.Hard),
	}
}

// Rules converts the scoring section to engine rules.
func (c ShapeDropConfig) Rules() engine.Rules {
	return engine.Rules{
		LinePoints: c.Scoring.LinePoints,
		ComboBonus: c.Scoring.ComboBonus,
	}
}
