package object

import (
	"github.com/tomz197/fireworks/internal/audio"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

// Rocket and launch parameters.
const (
	LaunchTrailCap = 8
	RocketSpeed    = 1.5 // Rows climbed per tick
	launchMargin   = 15  // Columns kept clear at both grid edges
	peakMin        = 5   // Highest row a rocket may burst at
	launchLift     = 2   // Launch row, counted up from the bottom edge
	rocketGlyph    = '^'
	smokeGlyph     = '·'
	exhaustGlyph   = '|'
	exhaustLength  = 2 // Newest launch trail points drawn as exhaust
)

// Explosion parameters.
const (
	MultiStageChance        = 0.15
	SecondaryBurstThreshold = 20 // Live particles below which the second stage fires
	SecondaryBurstCount     = 15
	SparkleCount            = 15
	SparkleLifeMin          = 8
	SparkleLifeMax          = 15
)

// Firework is a rocket that climbs to its peak and explodes into particles.
type Firework struct {
	X           int     // Column
	Y           float64 // Row
	Peak        int     // Row at which the rocket explodes
	Exploded    bool
	Pattern     Pattern
	Color       draw.Color
	MultiStage  bool // Fires a one-time secondary burst
	Stage       int  // Explosion events so far
	LaunchTrail []Cell
	Particles   []*Particle

	rng   Rand
	sound audio.Player
}

// NewFirework creates a rocket on the bottom of the screen with a random
// column, peak, color and multi-stage flag.
func NewFirework(ctx SpawnContext, pattern Pattern) *Firework {
	r := ctx.Rand
	w, h := ctx.Screen.Width, ctx.Screen.Height

	lo, hi := launchMargin, w-launchMargin
	if hi < lo {
		lo, hi = 0, w-1
	}

	sound := ctx.Sound
	if sound == nil {
		sound = audio.Nop{}
	}

	return &Firework{
		X:           randInt(r, lo, hi),
		Y:           float64(h - launchLift),
		Peak:        randInt(r, peakMin, h/3),
		Pattern:     pattern,
		Color:       randomColor(r),
		MultiStage:  r.Float64() < MultiStageChance,
		LaunchTrail: make([]Cell, 0, LaunchTrailCap+1),
		rng:         r,
		sound:       sound,
	}
}

// Explode spawns the pattern's particles at the rocket's position. The
// boom plays only when no explosion has happened yet; later calls still
// spawn a full set of particles and advance the stage.
func (f *Firework) Explode() {
	if f.Stage == 0 {
		f.sound.Play(audio.Booms[f.rng.IntN(len(audio.Booms))])
	}

	shape := f.Pattern.Shape()
	x := float64(f.X)
	for range shape.Count {
		f.Particles = append(f.Particles, NewParticle(f.rng, x, f.Y, f.Color, f.Pattern))
	}

	if shape.Sparkles {
		for range SparkleCount {
			p := NewParticle(f.rng, x, f.Y, draw.ColorWhite, PatternBurst)
			// Shorter life, MaxLife untouched: sparkles start dimmer than the main burst.
			p.Life = randInt(f.rng, SparkleLifeMin, SparkleLifeMax)
			f.Particles = append(f.Particles, p)
		}
	}

	f.Exploded = true
	f.Stage++
}

// Update climbs the rocket, or ages the explosion once it has burst.
func (f *Firework) Update() {
	if !f.Exploded {
		f.LaunchTrail = pushTrail(f.LaunchTrail, Cell{Row: physics.Cell(f.Y), Col: f.X}, LaunchTrailCap)
		f.Y -= RocketSpeed
		if f.Y <= float64(f.Peak) {
			f.Explode()
		}
		return
	}

	live := f.Particles[:0]
	for _, p := range f.Particles {
		p.Update()
		if !p.Done() {
			live = append(live, p)
		}
	}
	clear(f.Particles[len(live):])
	f.Particles = live

	if f.MultiStage && f.Stage == 1 && len(f.Particles) < SecondaryBurstThreshold {
		f.secondaryBurst()
	}
}

// secondaryBurst re-ignites a fading multi-stage firework at its peak.
func (f *Firework) secondaryBurst() {
	f.sound.Play(audio.EffectCrackle)
	x, y := float64(f.X), float64(f.Peak)
	for range SecondaryBurstCount {
		f.Particles = append(f.Particles, NewParticle(f.rng, x, y, randomColor(f.rng), PatternBurst))
	}
	f.Stage++
}

// Draw renders the climbing rocket with its smoke trail, or the explosion.
func (f *Firework) Draw(r draw.Renderer) {
	if f.Exploded {
		for _, p := range f.Particles {
			p.Draw(r)
		}
		return
	}

	for i, c := range f.LaunchTrail {
		glyph := smokeGlyph
		if i >= len(f.LaunchTrail)-exhaustLength {
			glyph = exhaustGlyph
		}
		r.Draw(c.Row, c.Col, glyph, draw.ColorWhite, draw.Dim)
	}
	r.Draw(physics.Cell(f.Y), f.X, rocketGlyph, draw.ColorWhite, draw.Bold)
}

// Done reports whether the firework has exploded and burned out.
func (f *Firework) Done() bool {
	return f.Exploded && len(f.Particles) == 0
}

var _ Object = (*Firework)(nil)
