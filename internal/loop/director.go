// Package loop provides the show director: the frame loop that launches
// fireworks, runs the finale and reveals the closing message.
package loop

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fireworks/internal/audio"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/loop/config"
	"github.com/tomz197/fireworks/internal/object"
)

// Phase is the current stage of the show.
type Phase int

const (
	PhaseRapid      Phase = iota // Rapid-fire opening launches
	PhaseSpaced                  // One launch per spaced interval
	PhaseFinale                  // Simultaneous high-density bursts
	PhaseTextReveal              // Per-character bursts and message overlay
	PhaseDone
)

var phaseNames = [...]string{"rapid", "spaced", "finale", "text-reveal", "done"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Options configures a Director. Only Renderer is required.
type Options struct {
	Renderer draw.Renderer
	Sound    audio.Player     // Defaults to audio.Nop
	Quit     input.QuitPoller // Defaults to input.Never
	Rand     object.Rand      // Defaults to a time-seeded PCG source
	Clock    Clock            // Defaults to WallClock
	Logger   *log.Logger      // Defaults to a discarding logger
}

// Director owns the show state and runs every phase on a single goroutine.
type Director struct {
	renderer draw.Renderer
	sound    audio.Player
	quit     input.QuitPoller
	rng      object.Rand
	clock    Clock
	logger   *log.Logger

	screen     object.Screen
	fireworks  []*object.Firework
	start      time.Time
	lastLaunch time.Time
	launches   int
	phase      Phase
}

// NewDirector creates a director, filling in defaults for unset options.
func NewDirector(opts Options) (*Director, error) {
	if opts.Renderer == nil {
		return nil, errors.New("director: renderer is required")
	}
	d := &Director{
		renderer: opts.Renderer,
		sound:    opts.Sound,
		quit:     opts.Quit,
		rng:      opts.Rand,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
	if d.sound == nil {
		d.sound = audio.Nop{}
	}
	if d.quit == nil {
		d.quit = input.Never{}
	}
	if d.rng == nil {
		seed := uint64(time.Now().UnixNano())
		d.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if d.clock == nil {
		d.clock = WallClock
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}

	rows, cols := d.renderer.Size()
	d.screen = object.NewScreen(rows, cols)
	return d, nil
}

// Run plays the whole show. A quit request ends the timed launch phases
// early; the finale and the text reveal always run to completion. Only
// renderer flush failures are returned.
func (d *Director) Run() error {
	d.start = d.clock.Now()
	d.logger.Info("show started", "rows", d.screen.Height, "cols", d.screen.Width)

	if err := d.runTimed(); err != nil {
		return err
	}
	if err := d.runFinale(); err != nil {
		return err
	}
	if err := d.runTextReveal(); err != nil {
		return err
	}

	d.setPhase(PhaseDone)
	d.logger.Info("show finished", "launches", d.launches)
	return nil
}

// Phase returns the phase the director is in.
func (d *Director) Phase() Phase {
	return d.phase
}

// Launches returns how many rockets the timed phases launched.
func (d *Director) Launches() int {
	return d.launches
}

// Elapsed returns the show time since Run started.
func (d *Director) Elapsed() time.Duration {
	return d.clock.Now().Sub(d.start)
}

func (d *Director) setPhase(p Phase) {
	if d.phase == p {
		return
	}
	d.logger.Debug("phase", "from", d.phase, "to", p, "elapsed", d.Elapsed())
	d.phase = p
}

// runTimed runs the rapid and spaced launch phases.
func (d *Director) runTimed() error {
	d.phase = PhaseRapid
	for frame := 0; ; frame++ {
		elapsed := d.Elapsed()
		if elapsed >= config.ShowDuration {
			return nil
		}

		interval := config.SpacedLaunchInterval
		if elapsed < config.RapidPhaseDuration {
			interval = config.RapidLaunchInterval
		} else {
			d.setPhase(PhaseSpaced)
		}

		d.renderer.Clear()

		now := d.clock.Now()
		if d.launches == 0 || now.Sub(d.lastLaunch) >= interval {
			d.launch(now)
		}

		d.fireworks = step(d.renderer, d.fireworks)

		if d.quit.PollQuit() {
			d.logger.Info("quit requested", "frame", frame, "elapsed", elapsed)
			return nil
		}

		if err := d.renderer.Flush(); err != nil {
			return fmt.Errorf("flush frame %d: %w", frame, err)
		}
		d.clock.Sleep(config.FramePeriod)
	}
}

// launch sends up a rocket with a random pattern.
func (d *Director) launch(now time.Time) {
	f := object.NewFirework(d.spawnContext(), object.RandomPattern(d.rng))
	d.sound.Play(audio.EffectLaunch)
	d.fireworks = append(d.fireworks, f)
	d.lastLaunch = now
	d.launches++
	d.logger.Debug("launch", "n", d.launches, "pattern", f.Pattern, "col", f.X, "peak", f.Peak, "multi", f.MultiStage)
}

// runFinale bursts a batch of dense fireworks at once and lets them burn.
func (d *Director) runFinale() error {
	d.setPhase(PhaseFinale)
	d.fireworks = d.spawnFinale()

	if err := d.animate(config.FinaleFrames, "finale", nil); err != nil {
		return err
	}
	d.clock.Sleep(config.FinalePause)
	return nil
}

// spawnFinale builds the finale batch, every firework already exploded at
// a random row in the upper half of the grid.
func (d *Director) spawnFinale() []*object.Firework {
	ctx := d.spawnContext()
	fireworks := make([]*object.Firework, 0, config.FinaleFireworks)
	for range config.FinaleFireworks {
		pattern := object.FinalePatterns[d.rng.IntN(len(object.FinalePatterns))]
		f := object.NewFirework(ctx, pattern)
		f.Y = float64(d.randRow(config.FinaleRowMin, d.screen.Height/2))
		f.Explode()
		fireworks = append(fireworks, f)
	}
	return fireworks
}

// runTextReveal bursts one firework per message character, then overlays
// the message once the bursts have spread.
func (d *Director) runTextReveal() error {
	d.setPhase(PhaseTextReveal)

	var text object.Text
	text, d.fireworks = d.spawnTextReveal()

	overlay := func(frame int) {
		if frame <= config.TextRevealStartFrame {
			return
		}
		text.Color = draw.PaletteColor(d.rng.IntN(draw.PaletteSize))
		text.Draw(d.renderer)
	}
	if err := d.animate(config.TextRevealFrames, "text reveal", overlay); err != nil {
		return err
	}
	d.clock.Sleep(config.TextRevealHold)
	return nil
}

// spawnTextReveal centres the message on the middle row and places an
// exploded burst under every character that fits on the grid.
func (d *Director) spawnTextReveal() (object.Text, []*object.Firework) {
	text := object.CenteredText(d.screen, d.screen.Height/2, config.Message)
	ctx := d.spawnContext()
	fireworks := make([]*object.Firework, 0, text.Len())
	for i := range text.Len() {
		col := text.Col + i
		if col >= d.screen.Width {
			break
		}
		f := object.NewFirework(ctx, object.PatternBurst)
		f.X = col
		f.Y = float64(text.Row)
		f.Color = draw.PaletteColor(i)
		f.Explode()
		fireworks = append(fireworks, f)
	}
	return text, fireworks
}

// animate runs a fixed number of frames with no spawns and no quit check.
// extra, when set, draws on top of the fireworks each frame.
func (d *Director) animate(frames int, name string, extra func(frame int)) error {
	for frame := range frames {
		d.renderer.Clear()
		d.fireworks = step(d.renderer, d.fireworks)
		if extra != nil {
			extra(frame)
		}
		if err := d.renderer.Flush(); err != nil {
			return fmt.Errorf("flush %s frame %d: %w", name, frame, err)
		}
		d.clock.Sleep(config.FramePeriod)
	}
	return nil
}

func (d *Director) spawnContext() object.SpawnContext {
	return object.SpawnContext{Rand: d.rng, Sound: d.sound, Screen: d.screen}
}

// randRow samples a row in [lo, hi]; hi below lo yields lo.
func (d *Director) randRow(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + d.rng.IntN(hi-lo+1)
}

// step updates and draws every object, then drops the spent ones. Removal
// happens after the whole pass so no object is skipped mid-frame.
func step[T object.Object](r draw.Renderer, objs []T) []T {
	for _, o := range objs {
		o.Update()
		o.Draw(r)
	}

	live := objs[:0]
	for _, o := range objs {
		if !o.Done() {
			live = append(live, o)
		}
	}
	clear(objs[len(live):])
	return live
}
