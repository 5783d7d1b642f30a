package trade

import (
	"sync"
	"time"
)

// Debouncer stabilizes a rapidly-changing value: the emit callback fires with
// the latest value only once no new input has arrived for the wait duration.
// Every Set cancels and reschedules any pending emission; Stop cancels without
// emitting.
type Debouncer[T any] struct {
	wait time.Duration
	emit func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer that calls emit on its own timer goroutine.
func NewDebouncer[T any](wait time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		wait: wait,
		emit: emit,
	}
}

// Set feeds a new input value, restarting the wait window.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}

	// The emit decision and the emit itself run under the lock: a timer
	// callback that already fired before Stop or a superseding Set acquired
	// the lock is invalidated by the generation check, and Stop cannot
	// return while an emission is still running. The emit callback must not
	// call back into the debouncer.
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		if d.stopped || gen != d.gen {
			return
		}
		d.emit(value)
	})
}

// Stop cancels any pending emission. No emission occurs after Stop returns.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
