// Package engine implements the ShapeDrop rules: the board, piece movement
// and rotation, line clearing and scoring, the difficulty speed curve and the
// presentation-only animation interpolator.
//
// The package is pure. It never reads a clock or a global random generator;
// hosts pass time in milliseconds and a RandomSource at construction.
package engine

// Cell is one board square. 0 is empty, 1..7 is the ShapeID that filled it.
type Cell uint8

// Empty marks an unoccupied cell.
const Empty Cell = 0

// ShapeID identifies one of the seven pieces.
type ShapeID uint8

const (
	ShapeI ShapeID = iota + 1
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// ShapeCount is the number of distinct shapes in the catalog.
const ShapeCount = 7

// Matrix is a piece in its current rotation. Non-zero cells are occupied and
// carry the piece's ShapeID.
type Matrix [][]Cell

// Rows returns the matrix height.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the matrix width.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for r := range m {
		out[r] = append([]Cell(nil), m[r]...)
	}
	return out
}

// Equal reports whether two matrices have the same shape and contents.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for r := range m {
		if len(m[r]) != len(o[r]) {
			return false
		}
		for c := range m[r] {
			if m[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// catalog holds the canonical spawn orientation of every shape, indexed by
// ShapeID. Index 0 is unused.
var catalog = [ShapeCount + 1]Matrix{
	nil,
	{{1, 1, 1, 1}},
	{{2, 2}, {2, 2}},
	{{0, 3, 0}, {3, 3, 3}},
	{{0, 4, 4}, {4, 4, 0}},
	{{5, 5, 0}, {0, 5, 5}},
	{{6, 0, 0}, {6, 6, 6}},
	{{0, 0, 7}, {7, 7, 7}},
}

var shapeNames = [ShapeCount + 1]string{"", "I", "O", "T", "S", "Z", "J", "L"}

// Valid reports whether id names a catalog shape.
func (id ShapeID) Valid() bool {
	return id >= ShapeI && id <= ShapeL
}

// String returns the single-letter shape name.
func (id ShapeID) String() string {
	if !id.Valid() {
		return "?"
	}
	return shapeNames[id]
}

// Shape returns a fresh copy of the canonical matrix for id, or nil if id is
// not a catalog shape. Callers own the returned matrix.
func Shape(id ShapeID) Matrix {
	if !id.Valid() {
		return nil
	}
	return catalog[id].Clone()
}

// Piece is the falling piece. X and Y are the logical position of the
// matrix's top-left corner and are authoritative for every rule. FX, FY and
// Rotation are visual-only and converge toward the logical state.
type Piece struct {
	Shape  ShapeID
	Matrix Matrix
	X, Y   int

	FX, FY   float64
	Rotation float64
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Matrix = p.Matrix.Clone()
	return &cp
}

// Cells calls fn with the board coordinates of every occupied matrix cell
// projected at the piece's logical position.
func (p *Piece) Cells(fn func(x, y int, c Cell)) {
	for r, row := range p.Matrix {
		for c, v := range row {
			if v != Empty {
				fn(p.X+c, p.Y+r, v)
			}
		}
	}
}
