package loop

import "time"

// Clock is the director's source of time. The show is driven by elapsed
// time since start; tests substitute a manual clock so a run completes
// without real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// WallClock is the real-time clock.
var WallClock Clock = wallClock{}
