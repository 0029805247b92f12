package core

// Color is the foreground color of a screen cell.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorDim
	colorCount
)

// ansiCodes maps colors to ANSI 256-color codes. ColorDefault has none.
var ansiCodes = [colorCount]string{
	ColorRed:     "9",
	ColorGreen:   "10",
	ColorYellow:  "11",
	ColorBlue:    "12",
	ColorMagenta: "13",
	ColorCyan:    "14",
	ColorWhite:   "15",
	ColorOrange:  "208",
	ColorGray:    "245",
	ColorDim:     "238",
}

// ANSI returns the 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansiCodes[c]
}
