package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeI puts a horizontal I piece at the left edge of row y.
func placeI(s *State, y int) {
	s.Current = newPiece(ShapeI)
	s.Current.X, s.Current.Y = 0, y
}

func TestNewState(t *testing.T) {
	s := New(shapeRng(ShapeT, ShapeZ))

	require.NotNil(t, s.Current)
	require.NotNil(t, s.Next)
	assert.Equal(t, ShapeT, s.Current.Shape)
	assert.Equal(t, ShapeZ, s.Next.Shape)
	assert.Zero(t, s.Board.Filled())
	assert.Zero(t, s.Score)
	assert.Zero(t, s.Lines)
	assert.Zero(t, s.Combo)
	assert.False(t, s.Over)
	assert.Equal(t, PhaseFalling, s.Phase())
	assert.Equal(t, DefaultRules(), s.Rules())
}

func TestMove(t *testing.T) {
	s := New(shapeRng(ShapeO))

	assert.True(t, s.Move(-1))
	assert.Equal(t, 3, s.Current.X)

	for s.Move(-1) {
	}
	assert.Equal(t, 0, s.Current.X, "stops at the left wall")

	for s.Move(1) {
	}
	assert.Equal(t, Width-2, s.Current.X, "stops at the right wall")

	assert.False(t, s.Move(0))
}

func TestMoveBlockedByLockedCell(t *testing.T) {
	s := New(shapeRng(ShapeO))
	s.Current.Y = 18
	s.Board[19][3] = 1

	assert.False(t, s.Move(-1))
	assert.Equal(t, 4, s.Current.X)
}

func TestRotateCurrent(t *testing.T) {
	s := New(shapeRng(ShapeT))
	s.Current.Y = 5

	require.True(t, s.RotateCurrent(CW))
	assert.Equal(t, Matrix{{3, 0}, {3, 3}, {3, 0}}, s.Current.Matrix)
	assert.InDelta(t, 0.3, s.Current.Rotation, 1e-9)

	require.True(t, s.RotateCurrent(CCW))
	assert.Equal(t, Shape(ShapeT), s.Current.Matrix)
	assert.InDelta(t, -0.3, s.Current.Rotation, 1e-9)
}

func TestRotateKicks(t *testing.T) {
	verticalI := Rotate(Shape(ShapeI), CW)

	tests := []struct {
		name     string
		matrix   Matrix
		x        int
		blockers [][2]int
		wantOK   bool
		wantX    int
	}{
		{name: "fits in place", matrix: verticalI, x: 3, wantOK: true, wantX: 3},
		{name: "kick right", matrix: Shape(ShapeS), x: 3, blockers: [][2]int{{3, 5}}, wantOK: true, wantX: 4},
		{name: "kick left", matrix: verticalI, x: 7, wantOK: true, wantX: 6},
		{name: "revert", matrix: verticalI, x: 9, wantOK: false, wantX: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(shapeRng(ShapeI))
			s.Current.Matrix = tt.matrix.Clone()
			s.Current.X, s.Current.Y = tt.x, 5
			for _, b := range tt.blockers {
				s.Board[b[1]][b[0]] = 1
			}
			require.False(t, Collide(&s.Board, s.Current))

			ok := s.RotateCurrent(CW)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantX, s.Current.X)
			assert.Equal(t, 5, s.Current.Y)
			if tt.wantOK {
				assert.Equal(t, Rotate(tt.matrix, CW), s.Current.Matrix)
				assert.InDelta(t, 0.3, s.Current.Rotation, 1e-9)
			} else {
				assert.Equal(t, tt.matrix, s.Current.Matrix)
				assert.Zero(t, s.Current.Rotation)
			}
			assert.False(t, Collide(&s.Board, s.Current))
		})
	}
}

func TestStepFallsThenLocks(t *testing.T) {
	s := New(shapeRng(ShapeO, ShapeT))

	for i := 0; i < Height-1; i++ {
		_, locked := s.Step(int64(i))
		require.False(t, locked, "no lock expected on step %d", i)
	}
	assert.Equal(t, Height-2, s.Current.Y)

	ev, locked := s.Step(100)
	require.True(t, locked)
	assert.Equal(t, ShapeO, ev.Shape)
	assert.Equal(t, int64(100), ev.At)
	assert.Zero(t, ev.Cleared)
	assert.Equal(t, 4, s.Board.Filled())
	assert.Equal(t, ShapeT, s.Current.Shape, "next piece promoted")
	assert.Equal(t, -1, s.Current.Y)
}

func TestHardDrop(t *testing.T) {
	s := New(shapeRng(ShapeO))

	ev, ok := s.HardDrop(5)

	require.True(t, ok)
	assert.Equal(t, Height-2+1, ev.DropRows)
	assert.Equal(t, Cell(ShapeO), s.Board[19][4])
	assert.Equal(t, Cell(ShapeO), s.Board[18][5])
	assert.Equal(t, -1, s.Current.Y)
	assert.Equal(t, -1.0, s.Current.FY)
}

func TestComboScoring(t *testing.T) {
	s := New(shapeRng(ShapeI))

	var points []int
	for i := 0; i < 3; i++ {
		fillRow(&s.Board, 19, 2, 0, 1, 2, 3)
		placeI(s, 0)
		ev, ok := s.HardDrop(int64(i))
		require.True(t, ok)
		require.Equal(t, []int{19}, ev.Rows)
		require.Equal(t, 1, ev.Cleared)
		points = append(points, ev.Points)
	}

	assert.Equal(t, []int{100, 120, 140}, points)
	assert.Equal(t, 360, s.Score)
	assert.Equal(t, 3, s.Lines)
	assert.Equal(t, 3, s.Combo)
	assert.Zero(t, s.Board.Filled())

	// A lock without clears resets the combo and keeps the score.
	placeI(s, 0)
	ev, _ := s.HardDrop(10)
	assert.Zero(t, ev.Cleared)
	assert.Equal(t, 3, ev.ComboBefore)
	assert.Zero(t, s.Combo)
	assert.Equal(t, 360, s.Score)
}

func TestMultiLineClear(t *testing.T) {
	s := New(shapeRng(ShapeI))
	s.Current.Matrix = Rotate(s.Current.Matrix, CW)
	s.Current.X = 0
	for y := 16; y < Height; y++ {
		fillRow(&s.Board, y, 5, 0)
	}

	ev, ok := s.HardDrop(0)

	require.True(t, ok)
	assert.Equal(t, 4, ev.Cleared)
	assert.Equal(t, []int{19, 18, 17, 16}, ev.Rows)
	assert.Equal(t, 400, s.Score)
	assert.Zero(t, s.Board.Filled())
}

func TestCustomRules(t *testing.T) {
	s := NewWithRules(shapeRng(ShapeI), Rules{LinePoints: 40, ComboBonus: 5})
	for i := 0; i < 2; i++ {
		fillRow(&s.Board, 19, 2, 0, 1, 2, 3)
		placeI(s, 0)
		s.HardDrop(0)
	}
	assert.Equal(t, 40+45, s.Score)
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	s := New(shapeRng(ShapeO))
	s.Board[0][4] = 1
	s.Board[0][5] = 1
	s.Current.X, s.Current.Y = 0, 10

	ev, ok := s.HardDrop(0)

	require.True(t, ok)
	assert.True(t, ev.GameOver)
	assert.True(t, s.Over)
	assert.Equal(t, PhaseGameOver, s.Phase())
}

func TestOverIsTerminal(t *testing.T) {
	s := New(NewRandomSource(1))
	s.Current.Y = 7
	s.Current.FY = 3
	s.Current.FX = 1
	s.Current.Rotation = 0.2
	s.Board[19][0] = 4
	s.Over = true

	board := s.Board
	cur := s.Current.Clone()
	next := s.Next.Clone()

	assert.False(t, s.Move(1))
	assert.False(t, s.RotateCurrent(CW))
	_, ok := s.Step(0)
	assert.False(t, ok)
	_, ok = s.HardDrop(0)
	assert.False(t, ok)
	UpdateAnimation(s, 16, 700, 0)

	assert.Equal(t, board, s.Board)
	assert.Equal(t, cur, s.Current)
	assert.Equal(t, next, s.Next)
	assert.Zero(t, s.Score)
	assert.True(t, s.Over)
}

func TestSpawnDoesNotAlias(t *testing.T) {
	s := New(shapeRng(ShapeT, ShapeT, ShapeT))
	s.HardDrop(0)

	require.NotSame(t, s.Current, s.Next)
	s.Next.Matrix[0][0] = 9
	assert.NotEqual(t, Cell(9), s.Current.Matrix[0][0])
}

func TestDeterminism(t *testing.T) {
	play := func() *State {
		s := New(NewRandomSource(12345))
		for i := 0; i < 200 && !s.Over; i++ {
			switch i % 5 {
			case 0:
				s.Move(-1)
			case 1:
				s.RotateCurrent(CW)
			case 2:
				s.Move(2)
			case 3:
				s.Step(int64(i))
			default:
				s.HardDrop(int64(i))
			}
		}
		return s
	}

	a, b := play(), play()
	assert.Equal(t, a.Board, b.Board)
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Lines, b.Lines)
	assert.Equal(t, a.Over, b.Over)
	assert.Equal(t, a.Current.Shape, b.Current.Shape)
	assert.Equal(t, a.Next.Shape, b.Next.Shape)
}
