// Package debounce coalesces bursts of calls into one trailing call.
//
// A Debouncer holds at most one pending value. Every Call replaces that
// value and restarts the quiet window; the wrapped function runs once the
// window passes without another Call, with the last value only.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays calls to fn until no Call has happened for the window.
//
// Thread safety: Debouncer is safe for concurrent use. fn runs without the
// internal lock held, so it may call back into the Debouncer.
type Debouncer[T any] struct {
	clock  Clock
	window time.Duration
	fn     func(T)

	mu       sync.Mutex
	timer    Timer
	gen      uint64 // bumped on every Call, Cancel, Flush and Close
	pending  bool
	value    T
	lastCall time.Time
	closed   bool
}

// New returns a Debouncer on the system clock.
func New[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	return NewWithClock(SystemClock{}, window, fn)
}

// NewWithClock returns a Debouncer driven by clock.
func NewWithClock[T any](clock Clock, window time.Duration, fn func(T)) *Debouncer[T] {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Debouncer[T]{clock: clock, window: window, fn: fn}
}

// Window returns the quiet window.
func (d *Debouncer[T]) Window() time.Duration {
	return d.window
}

// Call records v as the pending value and restarts the window.
// Calls after Close are ignored.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.value = v
	d.pending = true
	d.lastCall = d.clock.Now()
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(gen) })
}

// fire runs fn if gen is still the latest generation. A timer whose Stop
// lost the race against expiry carries an old gen and does nothing.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending || d.closed {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.clearLocked()
	d.mu.Unlock()

	d.fn(v)
}

// Cancel drops the pending call, if any, and reports whether there was one.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	had := d.pending
	d.stopLocked()
	d.gen++
	d.clearLocked()
	return had
}

// Flush runs the pending call immediately instead of waiting for the
// window. It reports whether there was a pending call.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending || d.closed {
		d.mu.Unlock()
		return false
	}
	d.stopLocked()
	d.gen++
	v := d.value
	d.clearLocked()
	d.mu.Unlock()

	d.fn(v)
	return true
}

// Close cancels the pending call and disables the Debouncer.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	d.clearLocked()
	d.closed = true
}

// Pending reports whether a call is waiting for the window to pass.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// LastCall returns the time of the most recent Call, or the zero time.
func (d *Debouncer[T]) LastCall() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastCall
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) clearLocked() {
	var zero T
	d.value = zero
	d.pending = false
	d.timer = nil
}
