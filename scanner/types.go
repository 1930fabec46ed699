package scanner

import (
	"sync"
	"time"
)

// LogSink receives free-text progress lines from the pipeline. A slow
// or absent sink must never block the run.
type LogSink interface {
	Log(line string)
}

// ProgressSink receives (current, total) counts during extraction.
type ProgressSink interface {
	Update(current, total int)
}

// ExtractStats summarizes one extraction pass.
type ExtractStats struct {
	Enumerated int
	Hashed     int
	Failed     int
}

// ProgressTracker is a console implementation of both sinks. It buffers
// counts under a mutex and repaints on a ticker, so pipeline updates
// stay non-blocking.
type ProgressTracker struct {
	mu      sync.Mutex
	current int
	total   int
	lines   []string
	ticker  *time.Ticker
	done    chan bool
}
