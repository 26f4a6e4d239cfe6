package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Board palette. The terminal has no background fill, so the board surface
// itself stays ColorDefault.
const (
	ColorSurface = ColorDefault
	ColorPeg     = ColorCyan      // pegs, dividers, bumpers
	ColorLabel   = ColorRed       // column numbers and payouts
	ColorPuck    = ColorBrightRed // puck body
	ColorGlyph   = ColorBrightWhite
	ColorNotice  = ColorBrightYellow
)
