package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned when a difficulty name is not recognised.
var ErrUnknownDifficulty = errors.New("engine: unknown difficulty")

// Difficulty selects a speed profile.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Difficulties lists every difficulty in ascending order.
var Difficulties = []Difficulty{Easy, Normal, Hard}

var difficultyNames = [...]string{"easy", "normal", "hard"}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// String returns the lowercase difficulty name.
func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty parses a difficulty name or its numeric code ("0".."2").
func ParseDifficulty(s string) (Difficulty, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range difficultyNames {
		if name == n || name == fmt.Sprint(i) {
			return Difficulty(i), nil
		}
	}
	return Normal, fmt.Errorf("%w: %q (valid: easy, normal, hard)", ErrUnknownDifficulty, s)
}

// SpeedProfile describes how fast pieces fall at one difficulty.
type SpeedProfile struct {
	InitialMs         int // interval at zero lines
	Per10LinesDeltaMs int // change applied per 10 cleared lines, normally negative
	MinMs             int // floor for the interval
}

// IntervalMs returns the drop interval after the given number of cleared lines.
func (p SpeedProfile) IntervalMs(lines int) int {
	if lines < 0 {
		lines = 0
	}
	ms := p.InitialMs + (lines/10)*p.Per10LinesDeltaMs
	if ms < p.MinMs {
		return p.MinMs
	}
	return ms
}

// SpeedCurve holds one profile per difficulty.
type SpeedCurve [3]SpeedProfile

// DefaultSpeedCurve returns the standard profiles.
func DefaultSpeedCurve() SpeedCurve {
	return SpeedCurve{
		Easy:   {InitialMs: 1000, Per10LinesDeltaMs: -50, MinMs: 120},
		Normal: {InitialMs: 700, Per10LinesDeltaMs: -40, MinMs: 100},
		Hard:   {InitialMs: 500, Per10LinesDeltaMs: -30, MinMs: 80},
	}
}

// Profile returns the profile for d, falling back to Normal for unknown values.
func (c SpeedCurve) Profile(d Difficulty) SpeedProfile {
	if !d.Valid() {
		d = Normal
	}
	return c[d]
}

// DropIntervalMs returns the gravity interval for d after lines cleared lines.
func (c SpeedCurve) DropIntervalMs(d Difficulty, lines int) int {
	return c.Profile(d).IntervalMs(lines)
}

// DropIntervalMs uses the default speed curve.
func DropIntervalMs(d Difficulty, lines int) int {
	return DefaultSpeedCurve().DropIntervalMs(d, lines)
}
