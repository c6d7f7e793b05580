// Package input provides non-blocking quit detection for the show loop.
package input

import (
	"bufio"
)

// QuitPoller reports whether the viewer asked to stop. PollQuit must not
// block; once it has returned true it keeps returning true.
type QuitPoller interface {
	PollQuit() bool
}

// Never is a QuitPoller that never requests a stop.
type Never struct{}

// PollQuit always returns false.
func (Never) PollQuit() bool { return false }

// QuitFunc adapts a function to QuitPoller.
type QuitFunc func() bool

// PollQuit calls f.
func (f QuitFunc) PollQuit() bool { return f() }

// IsQuitByte reports whether b is a quit key in a raw terminal:
// q, Q, Esc or Ctrl-C.
func IsQuitByte(b byte) bool {
	switch b {
	case 'q', 'Q', '\x1b', '\x03':
		return true
	}
	return false
}

// Stream delivers input bytes from a raw terminal via a channel.
type Stream struct {
	ch   chan byte
	quit bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// PollQuit drains all available bytes without blocking and latches a
// quit request once a quit key has been seen.
func (s *Stream) PollQuit() bool {
	for !s.quit {
		select {
		case b, ok := <-s.ch:
			if !ok {
				return s.quit
			}
			if IsQuitByte(b) {
				s.quit = true
			}
		default:
			return false
		}
	}
	return true
}

var _ QuitPoller = (*Stream)(nil)
