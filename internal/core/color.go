package core

// Color is the foreground color of a screen cell.
type Color uint8

// The board palette. ColorDefault leaves the terminal's own color.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
)

var ansiCodes = [...]string{
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorGray:         "245",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightCyan:   "14",
	ColorBrightWhite:  "15",
}

// ANSI returns the 256-color code for c, or "" for ColorDefault and
// unknown values.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) {
		return ""
	}
	return ansiCodes[c]
}
