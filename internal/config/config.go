// Package config provides YAML-based configuration loading and difficulty
// presets for ShapeDrop.
package config

import (
	"errors"
	"fmt"
)

// ShapeDropConfig contains all tunable game parameters.
type ShapeDropConfig struct {
	Speed      SpeedConfig      `yaml:"speed"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Sound      SoundConfig      `yaml:"sound"`
}

// SpeedConfig holds one gravity profile per difficulty.
type SpeedConfig struct {
	Easy   SpeedProfile `yaml:"easy"`
	Normal SpeedProfile `yaml:"normal"`
	Hard   SpeedProfile `yaml:"hard"`
}

// SpeedProfile defines how the gravity interval shrinks with cleared lines.
type SpeedProfile struct {
	InitialMs         int `yaml:"initial_ms"`
	Per10LinesDeltaMs int `yaml:"per_10_lines_delta_ms"`
	MinMs             int `yaml:"min_ms"`
}

// ScoringConfig defines points awarded when rows clear.
type ScoringConfig struct {
	LinePoints int `yaml:"line_points"`
	ComboBonus int `yaml:"combo_bonus"`
}

// DifficultyConfig selects the preset used when none is given on the
// command line.
type DifficultyConfig struct {
	Default DifficultyPreset `yaml:"default"`
}

// SoundConfig controls the optional audio cues.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that every value is usable by the engine.
func (c ShapeDropConfig) Validate() error {
	profiles := []struct {
		name string
		p    SpeedProfile
	}{
		{"easy", c.Speed.Easy},
		{"normal", c.Speed.Normal},
		{"hard", c.Speed.Hard},
	}
	for _, pr := range profiles {
		if err := pr.p.validate(); err != nil {
			return fmt.Errorf("%w: speed.%s: %v", ErrInvalidConfig, pr.name, err)
		}
	}

	if c.Scoring.LinePoints < 0 || c.Scoring.ComboBonus < 0 {
		return fmt.Errorf("%w: scoring values must not be negative", ErrInvalidConfig)
	}
	if c.Difficulty.Default != "" {
		if _, err := ParsePreset(string(c.Difficulty.Default)); err != nil {
			return fmt.Errorf("%w: difficulty.default: %v", ErrInvalidConfig, err)
		}
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("%w: sound.volume %.2f outside [0, 1]", ErrInvalidConfig, c.Sound.Volume)
	}
	return nil
}

func (p SpeedProfile) validate() error {
	switch {
	case p.InitialMs <= 0:
		return fmt.Errorf("initial_ms must be positive, got %d", p.InitialMs)
	case p.MinMs <= 0:
		return fmt.Errorf("min_ms must be positive, got %d", p.MinMs)
	case p.MinMs > p.InitialMs:
		return fmt.Errorf("min_ms %d exceeds initial_ms %d", p.MinMs, p.InitialMs)
	case p.Per10LinesDeltaMs > 0:
		return fmt.Errorf("per_10_lines_delta_ms must not be positive, got %d", p.Per10LinesDeltaMs)
	}
	return nil
}
