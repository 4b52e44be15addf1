// Package debounce delays rapid repeated calls so only the last one in a
// burst runs. Search input uses it instead of cancelling in-flight
// requests, which the backend has no mechanism for.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces calls: fn runs only after the configured quiet
// period has passed since the last Call.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
}

// New creates a debouncer with the given quiet period.
func New(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Call schedules fn, cancelling any previously scheduled call.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
