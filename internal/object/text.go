package object

import (
	"unicode/utf8"

	"github.com/tomz197/fireworks/internal/draw"
)

// Text is a message overlaid on the grid.
// Coordinates are 0-based grid cells; glyphs past the grid edge are clipped.
type Text struct {
	Row      int
	Col      int
	Value    string
	Color    draw.Color
	Emphasis draw.Emphasis
}

// CenteredText places value in the middle of row, never left of column 0.
func CenteredText(screen Screen, row int, value string) Text {
	col := (screen.Width - utf8.RuneCountInString(value)) / 2
	if col < 0 {
		col = 0
	}
	return Text{Row: row, Col: col, Value: value, Color: draw.ColorWhite, Emphasis: draw.Bold}
}

// Len returns the message length in glyphs.
func (t Text) Len() int {
	return utf8.RuneCountInString(t.Value)
}

// Draw writes the text at its position.
func (t Text) Draw(r draw.Renderer) {
	if t.Value == "" {
		return
	}
	draw.DrawString(r, t.Row, t.Col, t.Value, t.Color, t.Emphasis)
}
