package folder

import (
	"sync"
	"time"

	"github.com/cgutt/surveykit/pkg/core"
)

// debouncer coalesces bursts of filesystem events for the same file.
// Editors and CSV exporters tend to fire several writes per save.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire for the event after the debounce delay, replacing
// any pending timer for the same file and event type.
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	key := event.String()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if t, ok := d.timers[key]; ok {
		if t.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[key] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			fire(event)
		}
	})
}

// stopAndWait rejects new events and waits for in-flight timers to finish,
// up to the given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
