package engine

// Board dimensions.
const (
	Width  = 10
	Height = 20
)

// Board is the playfield, indexed [row][column] with row 0 at the top.
// Its dimensions are fixed; clearing replaces row contents only.
type Board [Height][Width]Cell

// At returns the cell at (x, y), or Empty when out of bounds.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Empty
	}
	return b[y][x]
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for y := range b {
		for x := range b[y] {
			if b[y][x] != Empty {
				n++
			}
		}
	}
	return n
}

// rowFull reports whether every cell in row y is occupied.
func (b *Board) rowFull(y int) bool {
	for _, c := range b[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// Collide reports whether p overlaps a wall, the floor or a locked cell.
// Cells above the top edge (negative rows) are only checked against the side
// walls, so pieces may spawn partly above the board.
func Collide(b *Board, p *Piece) bool {
	for r, row := range p.Matrix {
		for c, v := range row {
			if v == Empty {
				continue
			}
			x, y := p.X+c, p.Y+r
			if x < 0 || x >= Width || y >= Height {
				return true
			}
			if y >= 0 && b[y][x] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge writes the occupied cells of p into b. Cells above the top edge are
// discarded.
func Merge(b *Board, p *Piece) {
	p.Cells(func(x, y int, c Cell) {
		if y >= 0 && y < Height && x >= 0 && x < Width {
			b[y][x] = c
		}
	})
}

// FindLinesToClear returns the indices of full rows, bottom to top.
func FindLinesToClear(b *Board) []int {
	var rows []int
	for y := Height - 1; y >= 0; y-- {
		if b.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearLines removes every full row, shifting the rows above it down and
// inserting empty rows at the top. It returns the number of rows removed.
func ClearLines(b *Board) int {
	cleared := 0
	for y := Height - 1; y >= 0; {
		if !b.rowFull(y) {
			y--
			continue
		}
		for yy := y; yy > 0; yy-- {
			b[yy] = b[yy-1]
		}
		b[0] = [Width]Cell{}
		cleared++
		// Row y now holds what was above it; examine it again.
	}
	return cleared
}
