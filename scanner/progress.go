package scanner

import (
	"fmt"
	"time"
)

// NewProgressTracker starts a console progress tracker. The display
// goroutine repaints every 500ms until Stop is called.
func NewProgressTracker() *ProgressTracker {
	tracker := &ProgressTracker{
		ticker: time.NewTicker(500 * time.Millisecond),
		done:   make(chan bool),
	}

	go tracker.displayProgress()

	return tracker
}

// Update implements ProgressSink. It only records the counts; painting
// happens on the ticker so the pipeline never waits on the terminal.
func (p *ProgressTracker) Update(current, total int) {
	p.mu.Lock()
	p.current = current
	p.total = total
	p.mu.Unlock()
}

// Log implements LogSink. Lines are printed immediately on their own
// row, then the progress line resumes.
func (p *ProgressTracker) Log(line string) {
	p.mu.Lock()
	p.lines = append(p.lines, line)
	fmt.Printf("\r\033[K%s\n", line)
	p.mu.Unlock()
}

// displayProgress shows the progress periodically
func (p *ProgressTracker) displayProgress() {
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			p.mu.Lock()
			if p.total > 0 {
				fmt.Printf("\rProgress: %d/%d", p.current, p.total)
			}
			p.mu.Unlock()
		}
	}
}

// Lines returns every line logged so far.
func (p *ProgressTracker) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

// Stop ends the progress display.
func (p *ProgressTracker) Stop() {
	p.ticker.Stop()
	p.done <- true
	fmt.Println()
}
