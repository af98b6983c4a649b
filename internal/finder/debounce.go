package finder

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a typed query is committed.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer delivers the latest pushed value once no new value has arrived
// for the configured delay. Every Push restarts the timer; superseded
// values are never delivered.
type Debouncer struct {
	delay  time.Duration
	commit func(string)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// NewDebouncer creates a Debouncer that calls commit on its own goroutine.
func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Push records value and restarts the quiet period.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq, value) })
}

// fire delivers value unless a later Push or Stop superseded it. Stop on
// an AfterFunc timer cannot recall a callback that already started, so
// the sequence number is the real guard.
func (d *Debouncer) fire(seq uint64, value string) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.commit(value)
}

// Stop cancels any pending delivery. Later pushes are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
