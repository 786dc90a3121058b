package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/t-barz/slimeking-sub004/parameter"
)

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 10*time.Millisecond, wave, rate)

		samples := make([][2]float64, 100)
		n, ok := osc.Stream(samples)
		if !ok || n != 100 {
			t.Fatalf("wave %d: Stream = (%d, %v), want (100, true)", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if math.Abs(samples[i][0]) > 1.0 || samples[i][0] != samples[i][1] {
				t.Fatalf("wave %d: sample %d invalid: %v", wave, i, samples[i])
			}
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", wave, osc.Err())
		}
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, rate)

	buf := render(osc)
	if len(buf) != rate.N(10*time.Millisecond) {
		t.Errorf("Rendered %d samples, want %d", len(buf), rate.N(10*time.Millisecond))
	}

	n, ok := osc.Stream(make([][2]float64, 10))
	if n != 0 || ok {
		t.Errorf("Drained oscillator streamed (%d, %v)", n, ok)
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	buf := render(env)
	if len(buf) != 100 {
		t.Fatalf("len = %d, want 100", len(buf))
	}
	if buf[0] != 0 {
		t.Errorf("Attack should start silent, got %v", buf[0])
	}
	if buf[5] <= 0 || buf[5] >= 1 {
		t.Errorf("Mid-attack sample = %v, want in (0,1)", buf[5])
	}
	if buf[50] != 1 {
		t.Errorf("Sustain sample = %v, want 1", buf[50])
	}
	if buf[99] >= buf[80] {
		t.Errorf("Release not decaying: buf[80]=%v buf[99]=%v", buf[80], buf[99])
	}
}

func TestNewVolumeZeroIsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	buf := render(newVolume(NewOscillator(0, 10*time.Millisecond, WaveSquare, rate), 0))
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}

func TestDefaultCuesRender(t *testing.T) {
	rate := sampleRate()
	for name, cue := range DefaultCues() {
		buf := render(cue.Streamer(rate))
		want := rate.N(cue.Length())
		if d := len(buf) - want; d < -1 || d > 1 {
			t.Errorf("cue %s: %d samples, want %d", name, len(buf), want)
		}
	}

	for _, name := range []string{parameter.CueAttack, parameter.CueSpecial, parameter.CueImpact} {
		if _, ok := DefaultCues()[name]; !ok {
			t.Errorf("Missing built-in cue %q", name)
		}
	}
}

func TestFloatToBytesClips(t *testing.T) {
	out := make([]byte, 3*parameter.AudioBytesPerFrame)
	floatToBytes([]float64{0, 5, -5}, out)

	if out[0] != 0 || out[1] != 0 {
		t.Error("Zero sample not encoded as zero")
	}
	hi := int16(uint16(out[4]) | uint16(out[5])<<8)
	lo := int16(uint16(out[8]) | uint16(out[9])<<8)
	if hi <= 0 || lo >= 0 || hi > 32767 || lo < -32767 {
		t.Errorf("Clipped samples out of range: hi=%d lo=%d", hi, lo)
	}
	if out[4] != out[6] || out[5] != out[7] {
		t.Error("Left and right channels differ")
	}
}

func TestMixActive(t *testing.T) {
	active := []activeSound{
		{buffer: floatBuffer{1, 1, 1}, volume: 0.5},
		{buffer: floatBuffer{1, 1, 1, 1, 1}, volume: 1},
	}
	buf := make([]float64, 4)

	remaining := mixActive(active, buf)
	if len(remaining) != 1 {
		t.Fatalf("remaining = %d, want 1", len(remaining))
	}
	if buf[0] != 1.5 || buf[3] != 1 {
		t.Errorf("Mixed buffer = %v", buf)
	}
	if remaining[0].pos != 4 {
		t.Errorf("Remaining position = %d, want 4", remaining[0].pos)
	}
}
