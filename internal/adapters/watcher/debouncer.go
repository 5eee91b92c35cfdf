package watcher

import (
	"sync"
	"time"

	"go.trai.ch/same/internal/core/ports"
)

// debouncer coalesces a burst of WatchEvents arriving within window into
// a single batch, delivered on out. Events for the same (workspace, path)
// pair collapse to the most recent kind.
type debouncer struct {
	mu      sync.Mutex
	pending []ports.WatchEvent
	index   map[[2]string]int
	timer   *time.Timer
	window  time.Duration
	out     chan<- []ports.WatchEvent
	closed  bool
}

func newDebouncer(window time.Duration, out chan<- []ports.WatchEvent) *debouncer {
	return &debouncer{
		index:  make(map[[2]string]int),
		window: window,
		out:    out,
	}
}

func (d *debouncer) add(we ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	key := [2]string{we.ResolvedTarget, we.Path}
	if i, ok := d.index[key]; ok {
		d.pending[i] = we
	} else {
		d.index[key] = len(d.pending)
		d.pending = append(d.pending, we)
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	if d.closed || len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	batch := d.pending
	d.pending = nil
	d.index = make(map[[2]string]int)
	d.timer = nil
	d.mu.Unlock()

	d.out <- batch
}

// close flushes any pending batch and releases the output channel. After
// close, add is a no-op.
func (d *debouncer) close() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	batch := d.pending
	d.pending = nil
	d.closed = true
	d.mu.Unlock()

	if len(batch) > 0 {
		d.out <- batch
	}
	close(d.out)
}
