package draw

import "github.com/gdamore/tcell/v2"

// tcellColors maps palette colors to the eight standard terminal colors.
var tcellColors = [...]tcell.Color{
	ColorDefault: tcell.ColorReset,
	ColorRed:     tcell.PaletteColor(1),
	ColorYellow:  tcell.PaletteColor(3),
	ColorGreen:   tcell.PaletteColor(2),
	ColorCyan:    tcell.PaletteColor(6),
	ColorBlue:    tcell.PaletteColor(4),
	ColorMagenta: tcell.PaletteColor(5),
	ColorWhite:   tcell.PaletteColor(7),
}

// TcellRenderer draws onto a tcell screen. The grid size is captured
// once at construction and kept for the session.
type TcellRenderer struct {
	screen     tcell.Screen
	rows, cols int
}

// NewTcellRenderer wraps an initialized screen.
func NewTcellRenderer(screen tcell.Screen) *TcellRenderer {
	cols, rows := screen.Size()
	screen.HideCursor()
	return &TcellRenderer{screen: screen, rows: rows, cols: cols}
}

// Style returns the tcell style used for a color and emphasis.
func (r *TcellRenderer) Style(color Color, emphasis Emphasis) tcell.Style {
	fg := tcell.ColorReset
	if color >= 0 && int(color) < len(tcellColors) {
		fg = tcellColors[color]
	}
	style := tcell.StyleDefault.Foreground(fg)
	switch emphasis {
	case Bold:
		style = style.Bold(true)
	case Dim:
		style = style.Dim(true)
	}
	return style
}

// Draw sets a screen cell. Off-grid coordinates are ignored.
func (r *TcellRenderer) Draw(row, col int, glyph rune, color Color, emphasis Emphasis) {
	if !inBounds(row, col, r.rows, r.cols) {
		return
	}
	r.screen.SetContent(col, row, glyph, nil, r.Style(color, emphasis))
}

// Clear blanks the screen buffer.
func (r *TcellRenderer) Clear() {
	r.screen.Clear()
}

// Flush shows the buffered frame.
func (r *TcellRenderer) Flush() error {
	r.screen.Show()
	return nil
}

// Size returns the grid dimensions captured at construction.
func (r *TcellRenderer) Size() (rows, cols int) {
	return r.rows, r.cols
}

var _ Renderer = (*TcellRenderer)(nil)
