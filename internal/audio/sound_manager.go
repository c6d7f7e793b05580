package audio

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(22050)
	bufferTime = 100 * time.Millisecond

	// MaxVolume is full level; effects play as synthesized.
	MaxVolume = 100
)

// Backend is the audio output the sound manager drives. The default
// backend is the beep speaker.
type Backend interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerBackend struct{}

func (speakerBackend) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (speakerBackend) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerBackend) Lock() { speaker.Lock() }
func (speakerBackend) Unlock() { speaker.Unlock() }
func (speakerBackend) Close() { speaker.Close() }

// SoundManager plays pre-synthesized effects through a shared mixer.
// Any initialization or synthesis failure disables it for the session;
// a disabled manager accepts Play calls and ignores them.
type SoundManager struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger
	rng     *rand.Rand
	mixer   *beep.Mixer
	sounds  map[Effect]*beep.Buffer
	volume  int // Master level in percent, 0 to MaxVolume
	enabled bool
}

// NewSoundManager creates a sound manager using the beep speaker.
func NewSoundManager(logger *log.Logger, rng *rand.Rand) *SoundManager {
	return NewSoundManagerWithBackend(speakerBackend{}, logger, rng)
}

// NewSoundManagerWithBackend creates a sound manager driving backend.
func NewSoundManagerWithBackend(backend Backend, logger *log.Logger, rng *rand.Rand) *SoundManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &SoundManager{
		backend: backend,
		logger:  logger,
		rng:     rng,
		mixer:   &beep.Mixer{},
		volume:  MaxVolume,
	}
}

// Initialize synthesizes all effects and starts the output device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.enabled {
		return nil
	}

	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	sounds, err := Synthesize(format, sm.rng)
	if err != nil {
		return sm.disable(fmt.Errorf("synthesize effects: %w", err))
	}

	if err := sm.backend.Init(sampleRate, sampleRate.N(bufferTime)); err != nil {
		return sm.disable(fmt.Errorf("init speaker: %w", err))
	}

	sm.sounds = sounds
	sm.backend.Play(sm.mixer)
	sm.enabled = true
	sm.logger.Debug("audio ready", "effects", len(sounds), "rate", int(sampleRate))
	return nil
}

// disable turns the manager off for the rest of the session.
func (sm *SoundManager) disable(err error) error {
	sm.enabled = false
	sm.sounds = nil
	sm.logger.Warn("audio disabled", "err", err)
	return err
}

// SetVolume sets the master level in percent, clamped to [0, MaxVolume].
func (sm *SoundManager) SetVolume(percent int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = min(max(percent, 0), MaxVolume)
}

// Play queues an effect on the mixer. Unknown effects and calls on a
// disabled manager are ignored.
func (sm *SoundManager) Play(effect Effect) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.enabled {
		return
	}
	buf, ok := sm.sounds[effect]
	if !ok {
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	s = withVolume(s, sm.volume)

	sm.backend.Lock()
	sm.mixer.Add(s)
	sm.backend.Unlock()
}

// Cleanup stops all sounds and releases the output device.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.enabled {
		return
	}

	sm.backend.Lock()
	sm.mixer.Clear()
	sm.backend.Unlock()
	sm.backend.Close()
	sm.enabled = false
}

// withVolume scales s to percent of full level on beep's base-2 scale.
// Full level returns s unchanged; zero silences it.
func withVolume(s beep.Streamer, percent int) beep.Streamer {
	if percent >= MaxVolume {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(float64(percent) / MaxVolume),
		Silent:   percent <= 0,
	}
}

var _ Player = (*SoundManager)(nil)
