package draw

// Call is a single in-bounds Draw request captured by a Recorder.
type Call struct {
	Row, Col int
	Glyph    rune
	Color    Color
	Emphasis Emphasis
}

// Recorder is an in-memory Renderer that records draw calls, for tests
// and headless runs. Calls holds the frame being built; Frames counts
// completed Flush calls.
type Recorder struct {
	Rows, Cols int
	Calls      []Call
	Dropped    int // Off-grid draws swallowed since the last Clear
	Clears     int
	Frames     int
}

// NewRecorder creates a recorder for a rows×cols grid.
func NewRecorder(rows, cols int) *Recorder {
	return &Recorder{Rows: rows, Cols: cols}
}

// Draw records the call, or counts it as dropped when off-grid.
func (r *Recorder) Draw(row, col int, glyph rune, color Color, emphasis Emphasis) {
	if !inBounds(row, col, r.Rows, r.Cols) {
		r.Dropped++
		return
	}
	r.Calls = append(r.Calls, Call{Row: row, Col: col, Glyph: glyph, Color: color, Emphasis: emphasis})
}

// Clear discards the recorded calls.
func (r *Recorder) Clear() {
	r.Calls = nil
	r.Dropped = 0
	r.Clears++
}

// Flush counts a presented frame.
func (r *Recorder) Flush() error {
	r.Frames++
	return nil
}

// Size returns the configured grid size.
func (r *Recorder) Size() (rows, cols int) {
	return r.Rows, r.Cols
}

// Reset drops recorded calls without counting a Clear.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Dropped = 0
}

var _ Renderer = (*Recorder)(nil)
