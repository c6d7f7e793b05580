package loop

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/tomz197/fireworks/internal/audio"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/loop/config"
	"github.com/tomz197/fireworks/internal/object"
)

// manualClock advances only when slept on.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

type recordingPlayer struct {
	played []audio.Effect
}

func (p *recordingPlayer) Play(e audio.Effect) { p.played = append(p.played, e) }

func (p *recordingPlayer) count(e audio.Effect) int {
	n := 0
	for _, got := range p.played {
		if got == e {
			n++
		}
	}
	return n
}

// frameRenderer keeps a copy of every flushed frame.
type frameRenderer struct {
	*draw.Recorder
	frames [][]draw.Call
}

func (f *frameRenderer) Flush() error {
	f.frames = append(f.frames, slices.Clone(f.Calls))
	return f.Recorder.Flush()
}

type failingRenderer struct {
	*draw.Recorder
	err error
}

func (f *failingRenderer) Flush() error { return f.err }

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestDirector(t *testing.T, r draw.Renderer, opts Options) *Director {
	t.Helper()
	opts.Renderer = r
	if opts.Rand == nil {
		opts.Rand = newTestRand(7)
	}
	if opts.Clock == nil {
		opts.Clock = newManualClock()
	}
	d, err := NewDirector(opts)
	if err != nil {
		t.Fatalf("NewDirector: %v", err)
	}
	return d
}

func TestNewDirectorRequiresRenderer(t *testing.T) {
	if _, err := NewDirector(Options{}); err == nil {
		t.Fatal("expected an error without a renderer")
	}
}

func TestRapidPhaseLaunchCount(t *testing.T) {
	rec := draw.NewRecorder(24, 80)
	sound := &recordingPlayer{}
	clock := newManualClock()

	var d *Director
	quit := input.QuitFunc(func() bool { return d.Elapsed() >= config.RapidPhaseDuration })
	d = newTestDirector(t, rec, Options{Sound: sound, Quit: quit, Clock: clock})

	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := int(config.RapidPhaseDuration / config.RapidLaunchInterval)
	if d.Launches() != want {
		t.Errorf("launches = %d, want %d", d.Launches(), want)
	}
	if got := sound.count(audio.EffectLaunch); got != want {
		t.Errorf("launch sound played %d times, want %d", got, want)
	}

	timedFrames := int(config.RapidPhaseDuration / config.FramePeriod)
	if wantFrames := timedFrames + config.FinaleFrames + config.TextRevealFrames; rec.Frames != wantFrames {
		t.Errorf("flushed %d frames, want %d", rec.Frames, wantFrames)
	}
	if d.Phase() != PhaseDone {
		t.Errorf("phase = %v after Run, want done", d.Phase())
	}
}

func TestFullShowTiming(t *testing.T) {
	rec := draw.NewRecorder(24, 80)
	sound := &recordingPlayer{}
	d := newTestDirector(t, rec, Options{Sound: sound})

	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 20 rapid launches up to 2.85s, then one every 1.02s (the first
	// 30ms frame boundary past each full second) from 3.87s on.
	if d.Launches() != 36 {
		t.Errorf("launches = %d, want 36", d.Launches())
	}
	if got := sound.count(audio.EffectLaunch); got != 36 {
		t.Errorf("launch sound played %d times, want 36", got)
	}

	timedFrames := 667 // frames at 0, 30ms, ... 19.98s
	if want := timedFrames + config.FinaleFrames + config.TextRevealFrames; rec.Frames != want {
		t.Errorf("flushed %d frames, want %d", rec.Frames, want)
	}

	wantElapsed := time.Duration(timedFrames)*config.FramePeriod +
		config.FinaleFrames*config.FramePeriod + config.FinalePause +
		config.TextRevealFrames*config.FramePeriod + config.TextRevealHold
	if d.Elapsed() != wantElapsed {
		t.Errorf("elapsed %v, want %v", d.Elapsed(), wantElapsed)
	}
}

func TestQuitStillRunsFinaleAndReveal(t *testing.T) {
	rec := draw.NewRecorder(24, 80)
	sound := &recordingPlayer{}
	d := newTestDirector(t, rec, Options{Sound: sound, Quit: input.QuitFunc(func() bool { return true })})

	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if d.Launches() != 1 {
		t.Errorf("launches = %d, want 1 before the quit was seen", d.Launches())
	}
	if want := config.FinaleFrames + config.TextRevealFrames; rec.Frames != want {
		t.Errorf("flushed %d frames, want %d", rec.Frames, want)
	}

	booms := 0
	for _, e := range audio.Booms {
		booms += sound.count(e)
	}
	if minBooms := config.FinaleFireworks + len(config.Message); booms < minBooms {
		t.Errorf("%d booms, want at least %d from the finale and reveal", booms, minBooms)
	}
	if d.Phase() != PhaseDone {
		t.Errorf("phase = %v, want done", d.Phase())
	}
}

func TestFinaleSpawn(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		sound := &recordingPlayer{}
		d := newTestDirector(t, draw.NewRecorder(24, 80), Options{Sound: sound, Rand: newTestRand(seed)})

		fireworks := d.spawnFinale()
		if len(fireworks) != config.FinaleFireworks {
			t.Fatalf("seed %d: %d finale fireworks, want %d", seed, len(fireworks), config.FinaleFireworks)
		}
		for i, f := range fireworks {
			if !f.Exploded || f.Stage != 1 {
				t.Fatalf("seed %d: firework %d not exploded before the first frame", seed, i)
			}
			if !slices.Contains(object.FinalePatterns[:], f.Pattern) {
				t.Fatalf("seed %d: finale pattern %v", seed, f.Pattern)
			}
			if f.Y < config.FinaleRowMin || f.Y > 12 {
				t.Fatalf("seed %d: finale row %v outside [5, 12]", seed, f.Y)
			}
			if len(f.Particles) == 0 {
				t.Fatalf("seed %d: firework %d has no particles", seed, i)
			}
		}
	}
}

func TestTextRevealSpawn(t *testing.T) {
	tests := []struct {
		rows, cols int
		wantStart  int
		wantCount  int
	}{
		{24, 80, 29, 22},
		{24, 30, 4, 22},
		{24, 20, 0, 20},
		{24, 14, 0, 14},
		{10, 10, 0, 10},
		{3, 1, 0, 1},
	}

	for _, tt := range tests {
		d := newTestDirector(t, draw.NewRecorder(tt.rows, tt.cols), Options{})
		text, fireworks := d.spawnTextReveal()

		if text.Col != tt.wantStart || text.Row != tt.rows/2 {
			t.Errorf("%dx%d: message at (%d,%d), want (%d,%d)", tt.rows, tt.cols, text.Row, text.Col, tt.rows/2, tt.wantStart)
		}
		if len(fireworks) != tt.wantCount {
			t.Errorf("%dx%d: %d fireworks, want %d", tt.rows, tt.cols, len(fireworks), tt.wantCount)
			continue
		}
		for i, f := range fireworks {
			if !f.Exploded {
				t.Errorf("%dx%d: firework %d not exploded", tt.rows, tt.cols, i)
			}
			if f.X != tt.wantStart+i || f.Y != float64(tt.rows/2) {
				t.Errorf("%dx%d: firework %d at (%v,%d)", tt.rows, tt.cols, i, f.Y, f.X)
			}
			if f.Color != draw.PaletteColor(i) || f.Pattern != object.PatternBurst {
				t.Errorf("%dx%d: firework %d is %v/%v", tt.rows, tt.cols, i, f.Color, f.Pattern)
			}
		}
	}
}

func TestTextRevealOverlayTiming(t *testing.T) {
	fr := &frameRenderer{Recorder: draw.NewRecorder(24, 80)}
	d := newTestDirector(t, fr, Options{})

	if err := d.runTextReveal(); err != nil {
		t.Fatalf("runTextReveal: %v", err)
	}
	if len(fr.frames) != config.TextRevealFrames {
		t.Fatalf("%d frames, want %d", len(fr.frames), config.TextRevealFrames)
	}

	// The message starts with 'H' at (12, 29); no firework glyph is a letter.
	for frame, calls := range fr.frames {
		idx := slices.IndexFunc(calls, func(c draw.Call) bool {
			return c.Row == 12 && c.Col == 29 && c.Glyph == 'H'
		})
		shown := idx >= 0
		if want := frame > config.TextRevealStartFrame; shown != want {
			t.Errorf("frame %d: overlay shown = %v, want %v", frame, shown, want)
		}
		if shown {
			c := calls[idx]
			if c.Emphasis != draw.Bold || c.Color < draw.ColorRed || c.Color > draw.ColorWhite {
				t.Errorf("frame %d: overlay drawn as %v/%v", frame, c.Color, c.Emphasis)
			}
		}
	}
}

func TestFlushErrorEndsShow(t *testing.T) {
	errBroken := errors.New("broken pipe")
	d := newTestDirector(t, &failingRenderer{Recorder: draw.NewRecorder(24, 80), err: errBroken}, Options{})

	err := d.Run()
	if !errors.Is(err, errBroken) {
		t.Fatalf("Run error = %v, want wrapped %v", err, errBroken)
	}
	if d.Phase() != PhaseRapid {
		t.Errorf("phase = %v, want the show stopped in the rapid phase", d.Phase())
	}
}

// stub is an object that becomes done after a set number of updates.
type stub struct {
	id      int
	left    int
	updates int
}

func (s *stub) Update() {
	s.updates++
	s.left--
}

func (s *stub) Draw(r draw.Renderer) { r.Draw(0, s.id, 'x', draw.ColorDefault, draw.Normal) }

func (s *stub) Done() bool { return s.left <= 0 }

func TestStepRemovesAfterFullPass(t *testing.T) {
	objs := []*stub{{id: 0, left: 1}, {id: 1, left: 3}, {id: 2, left: 1}, {id: 3, left: 2}}
	all := slices.Clone(objs)
	rec := draw.NewRecorder(1, 10)

	live := step(rec, objs)

	for _, s := range all {
		if s.updates != 1 {
			t.Errorf("object %d updated %d times, want 1", s.id, s.updates)
		}
	}
	if len(rec.Calls) != 4 {
		t.Errorf("%d draws, want every object drawn in the frame it finished", len(rec.Calls))
	}
	if len(live) != 2 || live[0].id != 1 || live[1].id != 3 {
		t.Errorf("live objects %v, want ids 1 and 3", live)
	}
}

func TestPhaseString(t *testing.T) {
	want := map[Phase]string{
		PhaseRapid:      "rapid",
		PhaseSpaced:     "spaced",
		PhaseFinale:     "finale",
		PhaseTextReveal: "text-reveal",
		PhaseDone:       "done",
		Phase(9):        "unknown",
	}
	for p, name := range want {
		if p.String() != name {
			t.Errorf("Phase(%d).String() = %q, want %q", p, p.String(), name)
		}
	}
}
