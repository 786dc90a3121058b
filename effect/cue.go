package effect

// CueSink receives fire-and-forget cue names (sound, haptics) on trigger
type CueSink interface {
	Signal(name string)
}

// NopSink drops every cue
type NopSink struct{}

func (NopSink) Signal(string) {}

// CueFunc adapts a function to CueSink
type CueFunc func(name string)

func (f CueFunc) Signal(name string) { f(name) }
