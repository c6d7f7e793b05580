// Package object holds the show's simulated entities: particles, fireworks
// and text overlays.
package object

import (
	"github.com/tomz197/fireworks/internal/audio"
	"github.com/tomz197/fireworks/internal/draw"
)

// Rand is the source of randomness for physics sampling. *rand.Rand from
// math/rand/v2 satisfies it; tests pass a seeded one.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Screen represents the grid dimensions fireworks are launched into.
type Screen struct {
	Width  int
	Height int
}

// NewScreen builds a Screen for a rows×cols grid.
func NewScreen(rows, cols int) Screen {
	return Screen{Width: cols, Height: rows}
}

// SpawnContext provides the collaborators a firework needs for its lifetime.
type SpawnContext struct {
	Rand   Rand
	Sound  audio.Player
	Screen Screen
}

// Object is a drawable and updatable show entity.
type Object interface {
	// Update advances the object by one tick.
	Update()

	// Draw emits render calls for the object's current state.
	Draw(r draw.Renderer)

	// Done reports whether the object is spent and can be removed.
	Done() bool
}

// Cell is an integer grid position.
type Cell struct {
	Row, Col int
}

// uniform samples a float in [lo, hi).
func uniform(r Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// randInt samples an integer in [lo, hi], both ends inclusive.
func randInt(r Rand, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// randomColor picks a palette color.
func randomColor(r Rand) draw.Color {
	return draw.PaletteColor(r.IntN(draw.PaletteSize))
}

// pushTrail appends c and evicts the oldest entries beyond limit.
func pushTrail(trail []Cell, c Cell, limit int) []Cell {
	trail = append(trail, c)
	if over := len(trail) - limit; over > 0 {
		trail = append(trail[:0], trail[over:]...)
	}
	return trail
}
