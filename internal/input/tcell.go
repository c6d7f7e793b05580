package input

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// TcellPoller watches a tcell screen's event queue for quit keys.
type TcellPoller struct {
	quit atomic.Bool
}

// StartTcellPoller pumps screen events on a goroutine until the screen
// is finalized.
func StartTcellPoller(screen tcell.Screen) *TcellPoller {
	p := &TcellPoller{}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			if key, ok := ev.(*tcell.EventKey); ok && IsQuitKey(key) {
				p.quit.Store(true)
			}
		}
	}()
	return p
}

// PollQuit reports whether a quit key has been pressed.
func (p *TcellPoller) PollQuit() bool {
	return p.quit.Load()
}

// IsQuitKey reports whether ev is q, Q, Esc or Ctrl-C.
func IsQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

var _ QuitPoller = (*TcellPoller)(nil)
