package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/olekukonko/errors"

	"github.com/t-barz/slimeking-sub004/parameter"
)

// Sentinel errors
var (
	ErrNoAudioBackend = errors.Named("no_audio_backend")
	ErrPipeClosed     = errors.Named("audio_pipe_closed")
)

// BackendConfig describes a CLI player fed raw s16le stereo on stdin
// A backend without Args is a device file written directly (OSS)
type BackendConfig struct {
	Name string
	Path string
	Args []string
}

// candidate is a player binary and the arguments for raw PCM input
type candidate struct {
	name string
	args []string
}

func candidates() []candidate {
	rate := strconv.Itoa(parameter.AudioSampleRate)
	channels := strconv.Itoa(parameter.AudioChannels)

	return []candidate{
		{"pacat", []string{"--raw", "--format=s16le", "--rate=" + rate, "--channels=" + channels, "--latency-msec=50", "--playback"}},
		{"pw-cat", []string{"--playback", "--format=s16", "--rate=" + rate, "--channels=" + channels, "--latency=50ms", "-"}},
		{"aplay", []string{"-t", "raw", "-f", "S16_LE", "-r", rate, "-c", channels, "-q"}},
		{"play", []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", channels, "-r", rate, "-", "-d", "-q"}},
		{"ffplay", []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", channels, "-ar", rate, "-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet"}},
	}
}

// DetectBackend returns the first available player
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay > OSS
func DetectBackend() (*BackendConfig, error) {
	for _, c := range candidates() {
		if path, err := exec.LookPath(c.name); err == nil {
			return &BackendConfig{Name: c.name, Path: path, Args: c.args}, nil
		}
	}

	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &BackendConfig{Name: "oss", Path: "/dev/dsp"}, nil
		}
	}
	return nil, ErrNoAudioBackend
}
