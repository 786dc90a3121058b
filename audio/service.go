// Package audio plays effect cues through a system audio player
// Cues are synthesised with beep, mixed in process and piped as raw PCM;
// without a usable backend the service runs silent
package audio

import (
	"context"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/olekukonko/errors"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/parameter"
)

// Config holds playback settings
type Config struct {
	Enabled      bool
	MasterVolume float64
	CueVolumes   map[string]float64 // per cue gain, absent = 1
	Cues         map[string]Cue
}

// DefaultConfig returns the built-in cue library, unmuted at 0.5 master
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		CueVolumes:   make(map[string]float64),
		Cues:         DefaultCues(),
	}
}

// Service turns cue signals into sound
// Implements the effect cue sink; Signal never blocks
type Service struct {
	config Config
	cache  *cueCache
	mixer  *Mixer

	backend *BackendConfig
	cmd     *exec.Cmd
	sink    io.WriteCloser

	running atomic.Bool
	muted   atomic.Bool
	silent  atomic.Bool

	mu sync.Mutex
	wg sync.WaitGroup
}

// NewService creates a stopped service and renders its cue library
func NewService(cfg Config) *Service {
	if cfg.Cues == nil {
		cfg.Cues = DefaultCues()
	}
	s := &Service{
		config: cfg,
		cache:  newCueCache(cfg.Cues),
	}
	s.muted.Store(!cfg.Enabled)
	s.cache.preload()
	return s
}

// Start detects a backend and launches the mixer, retrying transient failures
// Missing backends leave the service running silent; only ctx cancellation is returned
func (s *Service) Start(ctx context.Context) error {
	if s.running.Load() {
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = parameter.AudioStartMaxInterval

	for attempt := 1; ; attempt++ {
		w, err := s.open()
		if err == nil {
			s.StartWriter(w)
			log.Printf("audio: playing through %s", s.backend.Name)
			return nil
		}

		if errors.Is(err, ErrNoAudioBackend) || attempt >= parameter.AudioStartAttempts {
			log.Printf("audio: %v, running silent", err)
			s.goSilent()
			return nil
		}

		sleep := bo.NextBackOff()
		if sleep == backoff.Stop {
			sleep = parameter.AudioStartMaxInterval
		}
		select {
		case <-ctx.Done():
			s.goSilent()
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// StartWriter runs the mixer on w instead of a detected backend
func (s *Service) StartWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return
	}

	s.mixer = NewMixer(w, s.cache)
	s.mixer.Start()
	s.running.Store(true)

	s.wg.Add(1)
	core.Go(s.monitorMixer)
}

// Signal plays the named cue, ignored while muted, silent or stopped
func (s *Service) Signal(name string) {
	if !s.running.Load() || s.muted.Load() || s.silent.Load() {
		return
	}

	vol := s.config.MasterVolume
	if v, ok := s.config.CueVolumes[name]; ok {
		vol *= v
	}
	s.mixer.Play(name, vol)
}

// Name identifies the service in a lifecycle hub
func (s *Service) Name() string { return "audio" }

func (s *Service) Dependencies() []string { return nil }

// Stop terminates the mixer and the backend process, safe to call twice
func (s *Service) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	s.mu.Lock()
	if s.mixer != nil {
		s.mixer.Stop()
	}
	if s.sink != nil {
		s.sink.Close()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// ToggleMute flips mute, returns true if now audible
func (s *Service) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return old
		}
	}
}

func (s *Service) Muted() bool   { return s.muted.Load() }
func (s *Service) Silent() bool  { return s.silent.Load() }
func (s *Service) Running() bool { return s.running.Load() }

// Stats returns cues played and dropped by the mixer
func (s *Service) Stats() (played, dropped uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mixer == nil {
		return 0, 0
	}
	return s.mixer.Stats()
}

// open starts the backend and returns the PCM sink
func (s *Service) open() (io.Writer, error) {
	backend, err := DetectBackend()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if backend.Args == nil {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			return nil, errors.Newf("open %s: %v", backend.Path, err)
		}
		s.backend, s.sink = backend, f
		return f, nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Newf("%s stdin: %v", backend.Name, err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, errors.Newf("start %s: %v", backend.Name, err)
	}

	s.backend, s.cmd, s.sink = backend, cmd, stdin
	s.wg.Add(1)
	core.Go(s.monitorProcess)
	return stdin, nil
}

func (s *Service) goSilent() {
	s.silent.Store(true)
	s.running.Store(true)
}

// monitorProcess drops to silent mode when the player exits unexpectedly
func (s *Service) monitorProcess() {
	defer s.wg.Done()
	if err := s.cmd.Wait(); err != nil && s.running.Load() {
		log.Printf("audio: %s exited: %v", s.backend.Name, err)
		s.silent.Store(true)
	}
}

// monitorMixer drops to silent mode on pipe errors
func (s *Service) monitorMixer() {
	defer s.wg.Done()

	var err error
	select {
	case err = <-s.mixer.Errors():
	case <-s.mixer.done:
		// The loop reports before exiting, pick up an error that raced with done
		select {
		case err = <-s.mixer.Errors():
		default:
		}
	}
	if err != nil {
		log.Printf("audio: %v", err)
		s.silent.Store(true)
	}
}
