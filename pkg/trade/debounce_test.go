package trade

import (
	"sync"
	"testing"
	"time"
)

// collector records debounced emissions for assertions.
type collector struct {
	mu     sync.Mutex
	values []string
}

func (c *collector) emit(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.values...)
}

func TestDebouncerEmitsLatestValueOnly(t *testing.T) {
	c := &collector{}
	d := NewDebouncer(20*time.Millisecond, c.emit)

	d.Set("1")
	d.Set("1.")
	d.Set("1.5")

	time.Sleep(100 * time.Millisecond)

	got := c.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected 1 emission got %d: %v", len(got), got)
	}
	if got[0] != "1.5" {
		t.Fatalf("expected latest value 1.5 got %s", got[0])
	}
}

func TestDebouncerRestartsWindow(t *testing.T) {
	c := &collector{}
	d := NewDebouncer(50*time.Millisecond, c.emit)

	d.Set("1")
	time.Sleep(25 * time.Millisecond)

	// Still inside the window; this must cancel the pending emission.
	d.Set("12")
	time.Sleep(25 * time.Millisecond)

	if got := c.snapshot(); len(got) != 0 {
		t.Fatalf("expected no emission yet, got %v", got)
	}

	time.Sleep(60 * time.Millisecond)

	got := c.snapshot()
	if len(got) != 1 || got[0] != "12" {
		t.Fatalf("expected single emission of 12, got %v", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	c := &collector{}
	d := NewDebouncer(20*time.Millisecond, c.emit)

	d.Set("1")
	d.Stop()

	time.Sleep(60 * time.Millisecond)

	if got := c.snapshot(); len(got) != 0 {
		t.Fatalf("expected no emission after Stop, got %v", got)
	}

	// Set after Stop is ignored.
	d.Set("2")
	time.Sleep(60 * time.Millisecond)

	if got := c.snapshot(); len(got) != 0 {
		t.Fatalf("expected no emission after Stop, got %v", got)
	}
}

func TestDebouncerNoEmissionAfterStopReturns(t *testing.T) {
	// A near-zero wait lets the timer callback race Stop; the emission must
	// either complete before Stop returns or not happen at all.
	for i := 0; i < 100; i++ {
		var mu sync.Mutex
		stopped := false

		d := NewDebouncer(time.Microsecond, func(string) {
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				t.Error("emission fired after Stop returned")
			}
		})

		d.Set("1")
		time.Sleep(time.Microsecond)
		d.Stop()

		mu.Lock()
		stopped = true
		mu.Unlock()

		time.Sleep(100 * time.Microsecond)
	}
}

func TestDebouncerStaleValueNeverTrailsLatest(t *testing.T) {
	c := &collector{}
	d := NewDebouncer(time.Microsecond, c.emit)

	// Each Set pair races the previous timer fire; a superseded value must
	// never be emitted after the value that replaced it.
	for i := 0; i < 200; i++ {
		d.Set("old")
		d.Set("new")
		time.Sleep(50 * time.Microsecond)
	}
	time.Sleep(5 * time.Millisecond)

	got := c.snapshot()
	for i := 1; i < len(got); i++ {
		if got[i-1] == "new" && got[i] == "old" {
			t.Fatalf("stale emission after newer value at %d: %v", i, got[:i+1])
		}
	}
}
