// Package synth renders audio cues as generated tones on the system speaker.
//
// It is the only package that opens an audio device; the game itself only
// sees audio.Player.
package synth

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-breakout/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is one segment of a cue.
type tone struct {
	freq float64
	dur  time.Duration
	wave WaveType
	gain float64 // effects.Gain value, -1 is silent
}

// cueTones describes every cue as a short sequence of tones.
var cueTones = map[audio.Cue][]tone{
	audio.CuePaddle:         {{freq: 440, dur: 40 * time.Millisecond, wave: WaveSquare, gain: -0.85}},
	audio.CueWall:           {{freq: 220, dur: 30 * time.Millisecond, wave: WaveSquare, gain: -0.9}},
	audio.CueBrickDamaged:   {{freq: 660, dur: 40 * time.Millisecond, wave: WaveSaw, gain: -0.85}},
	audio.CueBrickDestroyed: {{freq: 880, dur: 30 * time.Millisecond, wave: WaveSquare, gain: -0.85}, {freq: 1320, dur: 40 * time.Millisecond, wave: WaveSquare, gain: -0.85}},
	audio.CueBallLost:       {{freq: 180, dur: 120 * time.Millisecond, wave: WaveSaw, gain: -0.8}, {freq: 120, dur: 200 * time.Millisecond, wave: WaveSaw, gain: -0.8}},
	audio.CueCountdown:      {{freq: 523, dur: 80 * time.Millisecond, wave: WaveSine, gain: -0.7}},
	audio.CueLaunch:         {{freq: 784, dur: 120 * time.Millisecond, wave: WaveSine, gain: -0.7}},
	audio.CueLevelClear:     {{freq: 523, dur: 90 * time.Millisecond, wave: WaveSine, gain: -0.7}, {freq: 659, dur: 90 * time.Millisecond, wave: WaveSine, gain: -0.7}, {freq: 784, dur: 160 * time.Millisecond, wave: WaveSine, gain: -0.7}},
	audio.CueGameOver:       {{freq: 330, dur: 200 * time.Millisecond, wave: WaveSaw, gain: -0.75}, {freq: 90, dur: 300 * time.Millisecond, wave: WaveNoise, gain: -0.9}},
	audio.CueWin:            {{freq: 659, dur: 120 * time.Millisecond, wave: WaveSine, gain: -0.7}, {freq: 784, dur: 120 * time.Millisecond, wave: WaveSine, gain: -0.7}, {freq: 1047, dur: 240 * time.Millisecond, wave: WaveSine, gain: -0.7}},
}

// Synth plays cues through the system speaker using generated waveforms.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      *log.Logger
}

// New creates a synthesizer. Call Init before playing cues.
func New(logger *log.Logger) *Synth {
	if logger == nil {
		logger = log.Default()
	}
	return &Synth{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Init opens the speaker. An error means no audio device is available;
// callers should fall back to audio.Nop.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play queues the cue on the mixer and returns immediately.
// Unknown cues and an uninitialized speaker are ignored.
func (s *Synth) Play(c audio.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	streamer, ok := cueStreamer(c)
	if !ok {
		s.logger.Debug("no sound for cue", "cue", c)
		return
	}

	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close silences all playing cues.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// cueStreamer builds the streamer for a cue.
func cueStreamer(c audio.Cue) (beep.Streamer, bool) {
	tones, ok := cueTones[c]
	if !ok || len(tones) == 0 {
		return nil, false
	}

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, &effects.Gain{
			Streamer: NewOscillator(t.freq, t.dur, t.wave, sampleRate),
			Gain:     t.gain,
		})
	}
	return beep.Seq(parts...), true
}

// oscillator generates raw audio waves for a fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer producing the given wave for duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1 //nolint:gosec // audio noise, not crypto
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }
