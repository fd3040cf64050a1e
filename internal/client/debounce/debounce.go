// Package debounce coalesces bursts of calls into one delayed dispatch.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a call is dispatched.
const DefaultDelay = 300 * time.Millisecond

// Debouncer dispatches the last value passed to Call once no further call has
// arrived for the configured delay. A newer call cancels the pending one.
// Dispatches run on the timer goroutine and never overlap.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	pending T
	armed   bool
	seq     uint64
	stopped bool
	running sync.WaitGroup
	fire    sync.Mutex
}

// New returns a Debouncer calling fn. delay <= 0 means DefaultDelay.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Call schedules v, replacing whatever was pending.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.pending = v
	d.armed = true
	d.seq++
	seq := d.seq
	d.running.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.running.Done()
		d.dispatch(seq)
	})
}

// Flush dispatches the pending value now, if any. It returns whether
// something was dispatched.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.armed {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil && d.timer.Stop() {
		// The timer callback will never run.
		d.running.Done()
	}
	v := d.pending
	d.armed = false
	d.seq++
	d.mu.Unlock()

	d.fire.Lock()
	defer d.fire.Unlock()
	d.fn(v)
	return true
}

// Pending reports whether a dispatch is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Stop cancels the pending dispatch and waits for a running one to finish.
// Later calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.armed = false
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.mu.Unlock()

	d.running.Wait()
}

func (d *Debouncer[T]) dispatch(seq uint64) {
	d.mu.Lock()
	if d.stopped || !d.armed || seq != d.seq {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	d.mu.Unlock()

	d.fire.Lock()
	defer d.fire.Unlock()
	d.fn(v)
}
