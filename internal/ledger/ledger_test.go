package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
)

func TestResultValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want error
	}{
		{"ok", Result{Player: "ann", Score: 10, Lines: 1, Difficulty: engine.Hard}, nil},
		{"zero score", Result{Player: "ann", Difficulty: engine.Easy}, nil},
		{"blank player", Result{Player: "  ", Score: 10}, ErrEmptyPlayer},
		{"negative score", Result{Player: "ann", Score: -1}, ErrNegativeValue},
		{"negative lines", Result{Player: "ann", Lines: -1}, ErrNegativeValue},
		{"bad difficulty", Result{Player: "ann", Difficulty: engine.Difficulty(5)}, ErrUnknownDifficulty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestMemoryKeepsBestPerDifficulty(t *testing.T) {
	m := NewMemory()

	improved, err := m.Submit(Result{Player: "ann", Score: 300, Lines: 3, Difficulty: engine.Normal})
	require.NoError(t, err)
	assert.True(t, improved)

	improved, err = m.Submit(Result{Player: "ann", Score: 200, Lines: 9, Difficulty: engine.Normal})
	require.NoError(t, err)
	assert.False(t, improved, "lower score must not replace the record")

	improved, err = m.Submit(Result{Player: "ann", Score: 300, Lines: 1, Difficulty: engine.Normal})
	require.NoError(t, err)
	assert.False(t, improved, "equal score must not replace the record")

	improved, err = m.Submit(Result{Player: "ann", Score: 50, Difficulty: engine.Hard})
	require.NoError(t, err)
	assert.True(t, improved, "records are kept per difficulty")

	rec, err := m.UserRecord("ann", engine.Normal)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 300, rec.Score)
	assert.Equal(t, 3, rec.Lines)

	rec, err = m.UserRecord("bob", engine.Normal)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryRejectsInvalid(t *testing.T) {
	m := NewMemory()
	_, err := m.Submit(Result{Score: 10})
	assert.ErrorIs(t, err, ErrEmptyPlayer)

	board, err := m.Leaderboard(engine.Normal, 0)
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestMemoryLeaderboard(t *testing.T) {
	m := NewMemory()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, r := range []Result{
		{Player: "cat", Score: 100, Difficulty: engine.Easy},
		{Player: "ann", Score: 400, Difficulty: engine.Easy},
		{Player: "bob", Score: 100, Difficulty: engine.Easy},
		{Player: "dan", Score: 900, Difficulty: engine.Hard},
	} {
		_, err := m.Submit(r)
		require.NoError(t, err)
	}

	board, err := m.Leaderboard(engine.Easy, 0)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "ann", board[0].Player)
	assert.Equal(t, "cat", board[1].Player, "earlier submission wins ties")
	assert.Equal(t, "bob", board[2].Player)

	board, err = m.Leaderboard(engine.Easy, 2)
	require.NoError(t, err)
	assert.Len(t, board, 2)
}

func TestImproves(t *testing.T) {
	r := Result{Score: 10}
	assert.True(t, r.Improves(nil))
	assert.True(t, r.Improves(&Record{Score: 9}))
	assert.False(t, r.Improves(&Record{Score: 10}))
	assert.False(t, r.Improves(&Record{Score: 11}))
}
