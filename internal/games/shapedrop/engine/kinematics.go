package engine

import "math/rand"

// Direction is a rotation sense.
type Direction int

const (
	CCW Direction = -1
	CW  Direction = 1
)

// RandomSource returns a uniform value in [0, 1).
type RandomSource func() float64

// NewRandomSource returns a deterministic RandomSource seeded with seed.
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed)).Float64
}

// Rotate returns m rotated a quarter turn. An N×M matrix becomes M×N.
// The input is not modified.
func Rotate(m Matrix, dir Direction) Matrix {
	n, w := m.Rows(), m.Cols()
	out := make(Matrix, w)
	for i := range out {
		out[i] = make([]Cell, n)
	}
	for r := 0; r < n; r++ {
		for c := 0; c < w; c++ {
			if dir == CCW {
				out[w-1-c][r] = m[r][c]
			} else {
				out[c][n-1-r] = m[r][c]
			}
		}
	}
	return out
}

// SpawnX returns the column that horizontally centers a matrix of the given
// width on the board.
func SpawnX(cols int) int {
	return (Width - cols) / 2
}

// RandomPiece draws one shape uniformly from rng and places it at its spawn
// position, one row above the board.
func RandomPiece(rng RandomSource) *Piece {
	idx := int(rng() * ShapeCount)
	if idx < 0 {
		idx = 0
	}
	if idx >= ShapeCount {
		idx = ShapeCount - 1
	}
	return newPiece(ShapeID(idx + 1))
}

func newPiece(id ShapeID) *Piece {
	m := Shape(id)
	p := &Piece{Shape: id, Matrix: m}
	p.placeAtSpawn()
	return p
}

// placeAtSpawn moves p to the top-center spawn position and resets its
// visual state.
func (p *Piece) placeAtSpawn() {
	p.X = SpawnX(p.Matrix.Cols())
	p.Y = -1
	p.FX = float64(p.X)
	p.FY = float64(p.Y)
	p.Rotation = 0
}

// GhostY returns the row the current piece would come to rest on if hard
// dropped. The live piece is not touched.
func GhostY(s *State) int {
	if s.Current == nil {
		return 0
	}
	probe := s.Current.Clone()
	for !Collide(&s.Board, probe) {
		probe.Y++
	}
	return probe.Y - 1
}
