package util

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback invocation
// after the burst has been quiet for the configured delay. The admin product
// handlers use it to schedule one search reindex notification per editing
// session instead of one per keystroke-sized write.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger arms (or re-arms) the timer. The callback fires once, delay after
// the last Trigger call.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
