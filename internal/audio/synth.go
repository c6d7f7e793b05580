package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Effect lengths and base pitches.
const (
	whooshDuration    = 300 * time.Millisecond
	explosionDuration = 500 * time.Millisecond
	crackleDuration   = 200 * time.Millisecond

	whooshStartHz = 200.0
	whooshEndHz   = 600.0
)

// boomPitch is the tonal body of each explosion variant.
var boomPitch = map[Effect]float64{
	EffectBoom1: 150,
	EffectBoom2: 100,
	EffectBoom3: 200,
}

// Gains relative to full scale.
const (
	whooshGain   = 0.25
	rumbleGain   = 0.21
	boomBodyGain = 0.065
	crackleGain  = 0.15
)

// fade scales a stream linearly from gain down to silence over total samples.
type fade struct {
	streamer beep.Streamer
	gain     float64
	position int
	total    int
}

func newFade(s beep.Streamer, gain float64, total int) *fade {
	return &fade{streamer: s, gain: gain, total: total}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if f.position >= f.total {
			return i, false
		}
		vol := f.gain * (1 - float64(f.position)/float64(f.total))
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// noise emits random samples. Stepped noise only takes the values -1, 0
// and 1, which gives explosions their coarse rumble.
type noise struct {
	rng     *rand.Rand
	stepped bool
}

func (g *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		if g.stepped {
			val = float64(g.rng.IntN(3) - 1)
		} else {
			val = g.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (g *noise) Err() error { return nil }

// sweep is a sine whose pitch rises linearly from `from` to `to` Hz.
type sweep struct {
	from, to float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, false
		}
		freq := s.from + (s.to-s.from)*float64(s.position)/float64(s.total)
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// NewWhoosh creates the rising, fading launch sound.
func NewWhoosh(sr beep.SampleRate) beep.Streamer {
	total := sr.N(whooshDuration)
	tone := &sweep{from: whooshStartHz, to: whooshEndHz, total: total, rate: sr}
	return newFade(tone, whooshGain, total)
}

// NewExplosion creates a decaying noise burst over a low sine at baseHz.
func NewExplosion(sr beep.SampleRate, baseHz float64, rng *rand.Rand) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, baseHz)
	if err != nil {
		return nil, err
	}
	total := sr.N(explosionDuration)
	body := newFade(tone, boomBodyGain, total)
	rumble := newFade(&noise{rng: rng, stepped: true}, rumbleGain, total)
	return beep.Take(total, beep.Mix(body, rumble)), nil
}

// NewCrackle creates a short fading burst of white noise.
func NewCrackle(sr beep.SampleRate, rng *rand.Rand) beep.Streamer {
	total := sr.N(crackleDuration)
	return newFade(&noise{rng: rng}, crackleGain, total)
}

// Synthesize renders every effect into an in-memory buffer.
func Synthesize(format beep.Format, rng *rand.Rand) (map[Effect]*beep.Buffer, error) {
	streams := map[Effect]beep.Streamer{
		EffectLaunch:  NewWhoosh(format.SampleRate),
		EffectCrackle: NewCrackle(format.SampleRate, rng),
	}
	for _, boom := range Booms {
		s, err := NewExplosion(format.SampleRate, boomPitch[boom], rng)
		if err != nil {
			return nil, err
		}
		streams[boom] = s
	}

	buffers := make(map[Effect]*beep.Buffer, len(streams))
	for effect, s := range streams {
		buf := beep.NewBuffer(format)
		buf.Append(s)
		if err := s.Err(); err != nil {
			return nil, err
		}
		buffers[effect] = buf
	}
	return buffers, nil
}
