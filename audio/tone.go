package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/t-barz/slimeking-sub004/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer producing duration of wave at freq
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
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
			val = rand.Float64()*2 - 1
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

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope shapes s over duration with attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		switch {
		case e.position < e.attack && e.attack > 0:
			vol = float64(e.position) / float64(e.attack)
		case e.position >= e.releaseStart && e.release > 0:
			vol = max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol, zero or less is silent
// effects.Volume works in log2 steps, math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Tone is one enveloped oscillator voice of a cue
type Tone struct {
	Freq     float64
	Wave     WaveType
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
	Delay    time.Duration // silence before the tone starts
}

// Streamer builds the tone at rate
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(t.Freq, t.Duration, t.Wave, rate)
	shaped := newVolume(NewEnvelope(osc, t.Duration, t.Attack, t.Release, rate), t.Gain)
	if t.Delay <= 0 {
		return shaped
	}
	return beep.Seq(beep.Silence(rate.N(t.Delay)), shaped)
}

// Cue is a set of tones mixed together
type Cue []Tone

// Streamer mixes every tone of the cue
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	voices := make([]beep.Streamer, len(c))
	for i, t := range c {
		voices[i] = t.Streamer(rate)
	}
	return beep.Mix(voices...)
}

// Length returns the cue duration including delays
func (c Cue) Length() time.Duration {
	var d time.Duration
	for _, t := range c {
		d = max(d, t.Delay+t.Duration)
	}
	return d
}

// DefaultCues returns the built-in cue library keyed by cue name
func DefaultCues() map[string]Cue {
	return map[string]Cue{
		// Short saw buzz
		parameter.CueAttack: {
			{Freq: 180, Wave: WaveSaw, Duration: 90 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 60 * time.Millisecond, Gain: 0.6},
		},
		// Bell: A5 fundamental with octave overtone, then a rising second note
		parameter.CueSpecial: {
			{Freq: 880, Wave: WaveSine, Duration: 300 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 250 * time.Millisecond, Gain: 0.7},
			{Freq: 1760, Wave: WaveSine, Duration: 300 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 150 * time.Millisecond, Gain: 0.3},
			{Freq: 1318.51, Wave: WaveSquare, Duration: 120 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 90 * time.Millisecond, Gain: 0.2, Delay: 80 * time.Millisecond},
		},
		// Noise burst
		parameter.CueImpact: {
			{Wave: WaveNoise, Duration: 70 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 50 * time.Millisecond, Gain: 0.5},
		},
	}
}

// floatBuffer is mono float64 samples ready for mixing
type floatBuffer []float64

// render drains s into a mono buffer at the output sample rate
func render(s beep.Streamer) floatBuffer {
	var out floatBuffer
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, (chunk[i][0]+chunk[i][1])/2)
		}
		if !ok {
			return out
		}
	}
}

func sampleRate() beep.SampleRate {
	return beep.SampleRate(parameter.AudioSampleRate)
}
