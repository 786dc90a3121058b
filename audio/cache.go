package audio

import "sync"

// cueCache renders cues to mono buffers on first use
type cueCache struct {
	mu      sync.RWMutex
	library map[string]Cue
	store   map[string]floatBuffer
}

func newCueCache(library map[string]Cue) *cueCache {
	return &cueCache{
		library: library,
		store:   make(map[string]floatBuffer, len(library)),
	}
}

// get returns the rendered cue, nil for unknown names
func (c *cueCache) get(name string) floatBuffer {
	c.mu.RLock()
	buf, ok := c.store[name]
	c.mu.RUnlock()
	if ok {
		return buf
	}

	cue, ok := c.library[name]
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf, ok := c.store[name]; ok {
		return buf
	}
	buf = render(cue.Streamer(sampleRate()))
	c.store[name] = buf
	return buf
}

// preload renders every cue up front so the first trigger does not stall the mixer
func (c *cueCache) preload() {
	for name := range c.library {
		c.get(name)
	}
}
