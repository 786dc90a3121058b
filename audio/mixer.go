package audio

import (
	"encoding/binary"
	"io"
	"sync/atomic"
	"time"

	"github.com/olekukonko/errors"

	"github.com/t-barz/slimeking-sub004/parameter"
)

// activeSound tracks a playing cue
type activeSound struct {
	buffer floatBuffer
	pos    int
	volume float64
}

type playRequest struct {
	cue    string
	volume float64
}

// Mixer sums active cues and streams s16le stereo to output on a fixed tick
type Mixer struct {
	output io.Writer
	cache  *cueCache

	playQueue chan playRequest
	stopChan  chan struct{}
	done      chan struct{}
	stopped   atomic.Bool

	// Accessed only by mix goroutine
	active []activeSound

	played  atomic.Uint64
	dropped atomic.Uint64

	errChan chan error
}

// NewMixer creates a mixer writing to out
func NewMixer(out io.Writer, cache *cueCache) *Mixer {
	return &Mixer{
		output:    out,
		cache:     cache,
		playQueue: make(chan playRequest, parameter.AudioQueueSize),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		active:    make([]activeSound, 0, 8),
		errChan:   make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	go m.loop()
}

// Stop signals the mixer to halt and waits for the loop to exit
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
		<-m.done
	}
}

// Play queues a cue at volume, dropped when the queue is full
func (m *Mixer) Play(cue string, volume float64) bool {
	if m.stopped.Load() {
		return false
	}
	select {
	case m.playQueue <- playRequest{cue: cue, volume: volume}:
		return true
	default:
		m.dropped.Add(1)
		return false
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	return m.played.Load(), m.dropped.Load()
}

func (m *Mixer) loop() {
	defer close(m.done)

	ticker := time.NewTicker(parameter.AudioBufferDuration)
	defer ticker.Stop()

	mixBuf := make([]float64, parameter.AudioBufferSamples)
	outBytes := make([]byte, parameter.AudioBufferSamples*parameter.AudioBytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case req := <-m.playQueue:
			m.enqueue(req)

		case <-ticker.C:
			m.drainQueue()
			clear(mixBuf)
			m.active = mixActive(m.active, mixBuf)
			floatToBytes(mixBuf, outBytes)

			// Silence keeps the pipe alive between cues
			if _, err := m.output.Write(outBytes); err != nil {
				select {
				case m.errChan <- errors.Newf("write: %v", err).Wrap(ErrPipeClosed):
				default:
				}
				return
			}
		}
	}
}

func (m *Mixer) enqueue(req playRequest) {
	buf := m.cache.get(req.cue)
	if len(buf) == 0 {
		m.dropped.Add(1)
		return
	}
	m.active = append(m.active, activeSound{buffer: buf, volume: req.volume})
	m.played.Add(1)
}

func (m *Mixer) drainQueue() {
	for {
		select {
		case req := <-m.playQueue:
			m.enqueue(req)
		default:
			return
		}
	}
}

// mixActive adds every active sound into buf and returns those still playing
func mixActive(active []activeSound, buf []float64) []activeSound {
	remaining := active[:0]
	for i := range active {
		s := &active[i]
		for j := 0; j < len(buf) && s.pos < len(s.buffer); j++ {
			buf[j] += s.buffer[s.pos] * s.volume
			s.pos++
		}
		if s.pos < len(s.buffer) {
			remaining = append(remaining, *s)
		}
	}
	return remaining
}

// floatToBytes converts mono floats to interleaved stereo int16 LE
// Soft limits above 0.8 before hard clipping
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}
		v = min(max(v, -1.0), 1.0)

		i16 := int16(v * 32767)
		idx := i * parameter.AudioBytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], uint16(i16))   // L
		binary.LittleEndian.PutUint16(out[idx+2:], uint16(i16)) // R
	}
}
