// Package draw provides the character-grid renderers the show draws into.
package draw

// Color is an index into the show palette. ColorDefault leaves the
// terminal's own foreground in place; palette colors start at 1.
type Color int

const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorGreen
	ColorCyan
	ColorBlue
	ColorMagenta
	ColorWhite
)

// PaletteSize is the number of selectable palette colors (ColorRed..ColorWhite).
const PaletteSize = 7

// PaletteColor maps a zero-based palette index onto a Color, wrapping
// around so any non-negative index is valid.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return Color(i%PaletteSize + 1)
}

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorCyan:
		return "cyan"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorWhite:
		return "white"
	default:
		return "default"
	}
}

// Emphasis is the text attribute applied to a drawn glyph.
type Emphasis int

const (
	Normal Emphasis = iota
	Bold
	Dim
)

// Renderer accepts draw requests against a fixed-size grid.
// Coordinates are 0-based; writes outside the grid are silently dropped.
type Renderer interface {
	// Draw places a glyph at (row, col).
	Draw(row, col int, glyph rune, color Color, emphasis Emphasis)
	// Clear blanks the frame being built.
	Clear()
	// Flush presents the frame built since the last Clear.
	Flush() error
	// Size reports the grid dimensions, fixed for the session.
	Size() (rows, cols int)
}

// DrawString draws s left to right starting at (row, col), one glyph per cell.
func DrawString(r Renderer, row, col int, s string, color Color, emphasis Emphasis) {
	i := 0
	for _, ch := range s {
		r.Draw(row, col+i, ch, color, emphasis)
		i++
	}
}

// inBounds reports whether (row, col) falls on a rows×cols grid.
func inBounds(row, col, rows, cols int) bool {
	return row >= 0 && row < rows && col >= 0 && col < cols
}
