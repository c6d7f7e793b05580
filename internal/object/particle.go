package object

import (
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

// Particle lifetimes in ticks.
const (
	ParticleLifeMin = 15
	ParticleLifeMax = 35
)

// Glyphs are the symbols a particle can be drawn with.
var Glyphs = [...]rune{'*', '+', 'o', '●', '◆', '✦', '✧'}

// Trail glyphs.
const (
	trailBright = '·'
	trailDim    = '.'
)

// brightBoldThreshold is the brightness above which particles draw bold.
const brightBoldThreshold = 0.7

// Particle is a single glowing point of an explosion.
type Particle struct {
	physics.Body
	Life    int // Ticks remaining
	MaxLife int // Initial life (for brightness)
	Color   draw.Color
	Pattern Pattern
	Trail   []Cell // Recent cells, oldest first
	Glyph   rune
}

// NewParticle creates a particle at (x, y) with a velocity sampled from
// the pattern's angle and speed ranges.
func NewParticle(r Rand, x, y float64, color draw.Color, pattern Pattern) *Particle {
	shape := pattern.Shape()
	angle := uniform(r, shape.AngleMin, shape.AngleMax)
	speed := uniform(r, shape.SpeedMin, shape.SpeedMax)
	vx, vy := physics.Polar(angle, speed)
	life := randInt(r, ParticleLifeMin, ParticleLifeMax)

	return &Particle{
		Body:    physics.Body{X: x, Y: y, VX: vx, VY: vy},
		Life:    life,
		MaxLife: life,
		Color:   color,
		Pattern: pattern,
		Trail:   make([]Cell, 0, shape.TrailCap+1),
		Glyph:   Glyphs[r.IntN(len(Glyphs))],
	}
}

// Update records the trail, moves the particle and ages it by one tick.
func (p *Particle) Update() {
	shape := p.Pattern.Shape()
	p.Trail = pushTrail(p.Trail, Cell{Row: physics.Cell(p.Y), Col: physics.Cell(p.X)}, shape.TrailCap)
	p.Advance(shape.Physics)
	p.Life--
}

// Brightness is the remaining fraction of the particle's life.
func (p *Particle) Brightness() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// Draw renders the fading trail and, while alive, the particle itself.
func (p *Particle) Draw(r draw.Renderer) {
	brightness := p.Brightness()

	n := float64(len(p.Trail))
	for i, c := range p.Trail {
		if float64(i)/n*brightness > 0.5 {
			r.Draw(c.Row, c.Col, trailBright, p.Color, draw.Normal)
		} else {
			r.Draw(c.Row, c.Col, trailDim, draw.ColorDefault, draw.Dim)
		}
	}

	if p.Life > 0 {
		emphasis := draw.Normal
		if brightness > brightBoldThreshold {
			emphasis = draw.Bold
		}
		r.Draw(physics.Cell(p.Y), physics.Cell(p.X), p.Glyph, p.Color, emphasis)
	}
}

// Done reports whether the particle has burned out.
func (p *Particle) Done() bool {
	return p.Life <= 0
}

var _ Object = (*Particle)(nil)
