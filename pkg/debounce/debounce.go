// Package debounce coalesces rapid input changes into trailing-edge
// translation requests and tracks request generations so stale completions
// can be dropped.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"
)

const DefaultDelay = 1000 * time.Millisecond

// FireFunc receives the value current at fire time and the generation of
// the request. A completion handler checks Current(generation) before
// applying its result.
type FireFunc func(value string, generation uint64)

type Debouncer struct {
	delay time.Duration
	fire  FireFunc

	mu      sync.Mutex
	enabled bool
	timer   *time.Timer
	value   string

	generation atomic.Uint64
}

func New(delay time.Duration, fire FireFunc) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}

	return &Debouncer{
		delay: delay,
		fire:  fire,
	}
}

func (d *Debouncer) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.enabled
}

// SetEnabled toggles auto mode. Disabling cancels any pending timer
// without firing.
func (d *Debouncer) SetEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.enabled = enabled

	if !enabled && d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Input (re)starts the quiescence timer with the latest value. A change
// arriving before the timer fires cancels the previous timer; the window
// never fires on the leading edge.
func (d *Debouncer) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled {
		return
	}

	d.value = value

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, d.elapsed)
}

func (d *Debouncer) elapsed() {
	d.mu.Lock()

	if !d.enabled || d.timer == nil {
		d.mu.Unlock()
		return
	}

	d.timer = nil
	value := d.value

	d.mu.Unlock()

	d.fire(value, d.generation.Add(1))
}

// Flush bypasses the window entirely: the request is issued immediately
// and supersedes anything pending.
func (d *Debouncer) Flush(value string) uint64 {
	d.mu.Lock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	generation := d.generation.Add(1)
	d.fire(value, generation)

	return generation
}

// Current reports whether a completion for the given generation may still
// be applied, i.e. no newer request has been issued since.
func (d *Debouncer) Current(generation uint64) bool {
	return d.generation.Load() == generation
}
