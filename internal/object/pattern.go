package object

import (
	"math"

	"github.com/tomz197/fireworks/internal/physics"
)

// Pattern is a firework explosion shape.
type Pattern int

const (
	PatternBurst Pattern = iota
	PatternRing
	PatternWillow
	PatternPalm
	PatternChrysanthemum
	PatternPeony
)

// Patterns lists every explosion shape, in the order random picks use.
var Patterns = [...]Pattern{
	PatternBurst,
	PatternRing,
	PatternWillow,
	PatternPalm,
	PatternChrysanthemum,
	PatternPeony,
}

// FinalePatterns are the high-density shapes used in the finale.
var FinalePatterns = [...]Pattern{PatternChrysanthemum, PatternPeony, PatternPalm}

// Trail caps.
const (
	ParticleTrailCap = 5
	WillowTrailCap   = 8
)

// Shape is the declarative behavior of one pattern.
type Shape struct {
	Name               string
	AngleMin, AngleMax float64 // Launch angle range (radians)
	SpeedMin, SpeedMax float64 // Launch speed range (cells per tick)
	Physics            physics.Profile
	TrailCap           int
	Count              int  // Particles spawned per explosion
	Sparkles           bool // Adds short-lived white sparkles
}

var defaultPhysics = physics.Profile{Gravity: 0.1, Drag: 0.98}

var shapes = [...]Shape{
	PatternBurst: {
		Name: "burst", AngleMax: 2 * math.Pi, SpeedMin: 0.8, SpeedMax: 2.5,
		Physics: defaultPhysics, TrailCap: ParticleTrailCap, Count: 35,
	},
	PatternRing: {
		Name: "ring", AngleMax: 2 * math.Pi, SpeedMin: 1.5, SpeedMax: 2.0,
		Physics: defaultPhysics, TrailCap: ParticleTrailCap, Count: 30,
	},
	PatternWillow: {
		Name: "willow", AngleMin: -2 * math.Pi / 3, AngleMax: -math.Pi / 3, SpeedMin: 0.8, SpeedMax: 1.5,
		Physics: physics.Profile{Gravity: 0.15, Drag: 0.98}, TrailCap: WillowTrailCap, Count: 40,
	},
	PatternPalm: {
		Name: "palm", AngleMax: 2 * math.Pi, SpeedMin: 2.0, SpeedMax: 3.0,
		Physics: physics.Profile{Gravity: 0.05, Drag: 0.99}, TrailCap: ParticleTrailCap, Count: 50,
	},
	PatternChrysanthemum: {
		Name: "chrysanthemum", AngleMax: 2 * math.Pi, SpeedMin: 1.0, SpeedMax: 2.5,
		Physics: defaultPhysics, TrailCap: ParticleTrailCap, Count: 60, Sparkles: true,
	},
	PatternPeony: {
		Name: "peony", AngleMax: 2 * math.Pi, SpeedMin: 0.8, SpeedMax: 2.5,
		Physics: defaultPhysics, TrailCap: ParticleTrailCap, Count: 45, Sparkles: true,
	},
}

// Shape returns the pattern's behavior. Unknown patterns behave as burst.
func (p Pattern) Shape() Shape {
	if p < 0 || int(p) >= len(shapes) {
		return shapes[PatternBurst]
	}
	return shapes[p]
}

// String returns the pattern name.
func (p Pattern) String() string {
	if p < 0 || int(p) >= len(shapes) {
		return "unknown"
	}
	return shapes[p].Name
}

// RandomPattern picks one of the six patterns uniformly.
func RandomPattern(r Rand) Pattern {
	return Patterns[r.IntN(len(Patterns))]
}
