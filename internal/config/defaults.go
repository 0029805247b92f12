package config

import (
	_ "embed"
)

//go:embed defaults/shapedrop.yaml
var defaultShapeDropYAML []byte

// DefaultShapeDropConfig returns the built-in configuration. It matches the
// embedded defaults/shapedrop.yaml and is used if that fails to parse.
func DefaultShapeDropConfig() ShapeDropConfig {
	return ShapeDropConfig{
		Speed: SpeedConfig{
			Easy:   SpeedProfile{InitialMs: 1000, Per10LinesDeltaMs: -50, MinMs: 120},
			Normal: SpeedProfile{InitialMs: 700, Per10LinesDeltaMs: -40, MinMs: 100},
			Hard:   SpeedProfile{InitialMs: 500, Per10LinesDeltaMs: -30, MinMs: 80},
		},
		Scoring: ScoringConfig{
			LinePoints: 100,
			ComboBonus: 20,
		},
		Difficulty: DifficultyConfig{
			Default: DifficultyNormal,
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  0.5,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultShapeDropYAML
}
