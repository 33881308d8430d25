// Package debounce coalesces bursts of values into a single delayed emission.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet window used for search input.
const DefaultDelay = 500 * time.Millisecond

// Debouncer holds one pending timer. Every Push replaces the pending value and
// restarts the timer; only the value present when the timer fires is emitted.
type Debouncer[T any] struct {
	delay time.Duration
	emit  func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	value   T
	pending bool
	stopped bool
}

// New returns a Debouncer that calls emit with the latest value once delay has
// passed without a Push. A non-positive delay emits synchronously.
func New[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	if emit == nil {
		emit = func(T) {}
	}
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Delay returns the configured quiet window.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Push records v and restarts the quiet window.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		d.emit(v)
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.value = v
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// fire emits the pending value if no Push, Flush or Stop happened since the
// timer for gen was armed. Stop on a timer that already fired cannot recall
// it, so the generation check is what discards superseded timers.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.clearLocked()
	d.mu.Unlock()
	d.emit(v)
}

// Flush emits the pending value immediately, if any.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return false
	}
	v := d.value
	d.clearLocked()
	d.mu.Unlock()
	d.emit(v)
	return true
}

// Cancel drops the pending value without emitting it and reports whether
// there was one. Unlike Stop, later pushes still work.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	had := d.pending
	d.clearLocked()
	return had
}

// Pending reports whether a value is waiting for its window to elapse.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop drops any pending value. Later pushes are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearLocked()
	d.stopped = true
}

func (d *Debouncer[T]) clearLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.value = zero
	d.pending = false
	d.gen++
}
