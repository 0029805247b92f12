package shapedrop

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/shapedrop/internal/core"
	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
)

const (
	cellW  = 2                     // screen columns per board cell
	boardW = engine.Width*cellW + 2 // including border
	boardH = engine.Height + 2      // including border
	panelW = 16
	gap    = 2

	minScreenW = boardW + gap + panelW
	minScreenH = boardH + 1 // title row
)

// shapeColors maps a cell value to its color. Index 0 is empty.
var shapeColors = [engine.ShapeCount + 1]core.Color{
	core.ColorDefault,
	core.ColorCyan,    // I
	core.ColorYellow,  // O
	core.ColorMagenta, // T
	core.ColorGreen,   // S
	core.ColorRed,     // Z
	core.ColorBlue,    // J
	core.ColorOrange,  // L
}

func colorOf(c engine.Cell) core.Color {
	if int(c) >= len(shapeColors) {
		return core.ColorWhite
	}
	return shapeColors[c]
}

// Render draws the board, the falling piece, its ghost and the side panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW := boardW + gap + panelW
	originX := (g.screenW - totalW) / 2
	originY := (g.screenH - minScreenH) / 2

	title := fmt.Sprintf("SHAPEDROP · %s", g.difficulty)
	drawCentered(dst, originX, originY, totalW, title, core.ColorWhite)

	board := core.NewRect(originX, originY+1, boardW, boardH)
	dst.DrawBox(board, core.ColorGray)

	innerX, innerY := board.X+1, board.Y+1
	g.renderBoard(dst, innerX, innerY)
	if !g.state.Over {
		g.renderGhost(dst, innerX, innerY)
		g.renderCurrent(dst, innerX, innerY)
	}

	g.renderPanel(dst, board.Right()+gap, board.Y)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d", minScreenW, minScreenH, g.screenW, g.screenH))
}

func drawCell(dst *core.Screen, x0, y0, col, row int, r rune, c core.Color) {
	x := x0 + col*cellW
	dst.SetColored(x, y0+row, r, c)
	dst.SetColored(x+1, y0+row, r, c)
}

func drawCentered(dst *core.Screen, x, y, w int, text string, c core.Color) {
	dst.DrawTextColored(x+(w-utf8.RuneCountInString(text))/2, y, text, c)
}

// renderBoard draws locked cells and the empty grid.
func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	for row := 0; row < engine.Height; row++ {
		for col := 0; col < engine.Width; col++ {
			cell := g.state.Board.At(col, row)
			if cell == engine.Empty {
				dst.SetColored(x0+col*cellW+1, y0+row, '·', core.ColorDim)
				continue
			}
			drawCell(dst, x0, y0, col, row, '█', colorOf(cell))
		}
	}
}

// renderGhost marks where a hard drop would land.
func (g *Game) renderGhost(dst *core.Screen, x0, y0 int) {
	cur := g.state.Current
	ghostY := engine.GhostY(g.state)
	if ghostY <= cur.Y {
		return
	}
	for r, line := range cur.Matrix {
		for c, v := range line {
			col, row := cur.X+c, ghostY+r
			if v == engine.Empty || row < 0 || g.state.Board.At(col, row) != engine.Empty {
				continue
			}
			drawCell(dst, x0, y0, col, row, '░', colorOf(v))
		}
	}
}

// renderCurrent draws the falling piece at its interpolated position. A
// fresh rotation shows as a lighter shade until it settles.
func (g *Game) renderCurrent(dst *core.Screen, x0, y0 int) {
	cur := g.state.Current
	vx := int(math.Round(cur.FX))
	vy := int(math.Round(cur.FY))
	glyph := '█'
	if math.Abs(cur.Rotation) > 0.05 {
		glyph = '▓'
	}
	for r, line := range cur.Matrix {
		for c, v := range line {
			col, row := vx+c, vy+r
			if v == engine.Empty || row < 0 || row >= engine.Height || col < 0 || col >= engine.Width {
				continue
			}
			drawCell(dst, x0, y0, col, row, glyph, colorOf(v))
		}
	}
}

// renderPanel draws the next-piece preview and the counters.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	s := g.state

	dst.DrawTextColored(x, y, "NEXT", core.ColorGray)
	preview := core.NewRect(x, y+1, 4*cellW+2, 4)
	dst.DrawBox(preview, core.ColorGray)
	if s.Next != nil {
		m := s.Next.Matrix
		offX := (4 - m.Cols()) * cellW / 2
		for r, line := range m {
			for c, v := range line {
				if v != engine.Empty {
					drawCell(dst, preview.X+1+offX, preview.Y+1, c, r, '█', colorOf(v))
				}
			}
		}
	}

	stats := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprintf("%d", s.Score)},
		{"LINES", fmt.Sprintf("%d", s.Lines)},
		{"COMBO", fmt.Sprintf("%d", s.Combo)},
		{"SPEED", fmt.Sprintf("%dms", g.DropIntervalMs())},
	}
	row := preview.Bottom() + 1
	for _, st := range stats {
		dst.DrawTextColored(x, row, st.label, core.ColorGray)
		dst.DrawTextColored(x, row+1, st.value, core.ColorWhite)
		row += 3
	}

	if g.flashTicks > 0 && g.lastLock.Cleared > 0 {
		dst.DrawTextColored(x, row, fmt.Sprintf("+%d", g.lastLock.Points), core.ColorYellow)
		if g.lastLock.ComboBefore > 0 {
			dst.DrawTextColored(x, row+1, fmt.Sprintf("COMBO x%d", g.lastLock.Combo), core.ColorOrange)
		}
	}

	dst.DrawTextColored(x, y+boardH-2, "p pause", core.ColorDim)
	dst.DrawTextColored(x, y+boardH-1, "q quit", core.ColorDim)
}

// renderOverlays draws pause and game over boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	var lines []string
	switch {
	case g.state.Over:
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d", g.state.Score)}
		if g.status != "" {
			lines = append(lines, g.status)
		}
		lines = append(lines, "r restart  b menu")
	case g.paused:
		lines = []string{"PAUSED", "p to resume"}
	default:
		return
	}

	box := board.Centered(boardW-2, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorRed
			if !g.state.Over {
				c = core.ColorYellow
			}
		}
		drawCentered(dst, box.X, box.Y+1+i, box.W, l, c)
	}
}
