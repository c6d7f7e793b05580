package draw

import "io"

// cell is one character position of the grid.
type cell struct {
	glyph    rune
	color    Color
	emphasis Emphasis
}

// Grid is a Renderer that buffers a frame of cells and writes it to an
// ANSI terminal on Flush.
type Grid struct {
	rows, cols int
	cells      []cell // Flat slice: [row * cols + col], zero glyph = empty
	out        *ChunkWriter
}

// NewGrid creates a grid of rows×cols cells writing frames to w.
func NewGrid(w io.Writer, rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]cell, rows*cols),
		out:   NewChunkWriter(w),
	}
}

// NewTerminalGrid sizes a grid with sizeFunc and writes frames to w.
func NewTerminalGrid(w io.Writer, sizeFunc TermSizeFunc) (*Grid, error) {
	width, height, err := sizeFunc()
	if err != nil {
		return nil, err
	}
	return NewGrid(w, height, width), nil
}

// Draw sets a cell. Off-grid coordinates are ignored.
func (g *Grid) Draw(row, col int, glyph rune, color Color, emphasis Emphasis) {
	if !inBounds(row, col, g.rows, g.cols) {
		return
	}
	g.cells[row*g.cols+col] = cell{glyph: glyph, color: color, emphasis: emphasis}
}

// Clear resets all cells.
func (g *Grid) Clear() {
	clear(g.cells)
}

// Flush clears the terminal and writes every set cell with its style.
func (g *Grid) Flush() error {
	g.out.WriteString("\033[H\033[2J")
	for row := 0; row < g.rows; row++ {
		offset := row * g.cols
		for col := 0; col < g.cols; col++ {
			c := g.cells[offset+col]
			if c.glyph == 0 {
				continue // Skip empty cells
			}
			g.out.MoveCursor(col+1, row+1)
			g.out.SetStyle(c.color, c.emphasis)
			g.out.WriteRune(c.glyph)
		}
	}
	g.out.ResetStyle()
	return g.out.Flush()
}

// Size returns the grid dimensions.
func (g *Grid) Size() (rows, cols int) {
	return g.rows, g.cols
}

// At returns the glyph, color and emphasis at (row, col); ok is false
// when the cell is empty or off-grid.
func (g *Grid) At(row, col int) (glyph rune, color Color, emphasis Emphasis, ok bool) {
	if !inBounds(row, col, g.rows, g.cols) {
		return 0, ColorDefault, Normal, false
	}
	c := g.cells[row*g.cols+col]
	return c.glyph, c.color, c.emphasis, c.glyph != 0
}

var _ Renderer = (*Grid)(nil)
