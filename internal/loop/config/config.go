// Package config centralizes the fixed show parameters.
package config

import "time"

// Frame pacing.
const (
	FramePeriod = 30 * time.Millisecond // Delay between frames
)

// Timed launch phases.
const (
	ShowDuration         = 20 * time.Second       // Length of the rapid and spaced phases together
	RapidPhaseDuration   = 3 * time.Second        // Rapid-fire opening
	RapidLaunchInterval  = 150 * time.Millisecond // Launch cadence during the rapid phase
	SpacedLaunchInterval = 1 * time.Second        // Launch cadence afterwards
)

// Finale.
const (
	FinaleFireworks = 15
	FinaleFrames    = 60
	FinalePause     = 1 * time.Second // Dark pause before the text reveal
	FinaleRowMin    = 5               // Highest finale burst row
)

// Text reveal.
const (
	Message              = "HAPPY NEW YEAR EBRIWAN"
	TextRevealFrames     = 50
	TextRevealStartFrame = 20              // Message overlay starts after this frame
	TextRevealHold       = 3 * time.Second // Final frame stays up this long
)
