// Package audio plays the show's procedurally synthesized sound effects.
package audio

// Effect names a sound effect.
type Effect string

const (
	EffectLaunch  Effect = "launch"
	EffectBoom1   Effect = "boom1"
	EffectBoom2   Effect = "boom2"
	EffectBoom3   Effect = "boom3"
	EffectCrackle Effect = "crackle"
)

// Booms lists the explosion variants, one of which is picked per burst.
var Booms = [...]Effect{EffectBoom1, EffectBoom2, EffectBoom3}

// Effects lists every effect the show can request.
var Effects = [...]Effect{EffectLaunch, EffectBoom1, EffectBoom2, EffectBoom3, EffectCrackle}

// Player accepts effect playback requests. Play must never block the
// caller or fail; a player without a backend simply does nothing.
type Player interface {
	Play(effect Effect)
}

// Nop is a Player that discards every request.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Effect) {}

var _ Player = Nop{}
