package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropIntervalMs(t *testing.T) {
	tests := []struct {
		d     Difficulty
		lines int
		want  int
	}{
		{Easy, 0, 1000},
		{Easy, 9, 1000},
		{Easy, 10, 950},
		{Easy, 1000, 120},
		{Normal, 0, 700},
		{Normal, 20, 620},
		{Normal, 29, 620},
		{Normal, 149, 140},
		{Normal, 1000, 100},
		{Hard, 0, 500},
		{Hard, 100, 200},
		{Hard, 500, 80},
		{Normal, -5, 700},
		{Difficulty(9), 20, 620},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, DropIntervalMs(tt.d, tt.lines), "lines=%d", tt.lines)
		})
	}
}

func TestDropIntervalMonotonic(t *testing.T) {
	for _, d := range Difficulties {
		prev := DropIntervalMs(d, 0)
		for lines := 1; lines < 2000; lines++ {
			cur := DropIntervalMs(d, lines)
			require.LessOrEqual(t, cur, prev, "%s at %d lines", d, lines)
			require.GreaterOrEqual(t, cur, DefaultSpeedCurve().Profile(d).MinMs)
			prev = cur
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", Easy, false},
		{"Normal", Normal, false},
		{" HARD ", Hard, false},
		{"0", Easy, false},
		{"2", Hard, false},
		{"nightmare", Normal, true},
		{"", Normal, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDifficulty(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownDifficulty)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDifficultyString(t *testing.T) {
	assert.Equal(t, "easy", Easy.String())
	assert.Equal(t, "normal", Normal.String())
	assert.Equal(t, "hard", Hard.String())
	assert.Equal(t, "difficulty(7)", Difficulty(7).String())
}
