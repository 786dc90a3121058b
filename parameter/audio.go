package parameter

import "time"

// Audio output format
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8)
)

// Audio mixer timing
const (
	// AudioBufferDuration is the mixer tick and output latency
	AudioBufferDuration = 50 * time.Millisecond

	// AudioBufferSamples is frames written per mixer tick
	AudioBufferSamples = (AudioSampleRate * 50) / 1000

	// AudioQueueSize bounds pending cue requests, extra cues are dropped
	AudioQueueSize = 32
)

// Audio backend startup
const (
	AudioStartAttempts    = 3
	AudioStartMaxInterval = 500 * time.Millisecond
)
