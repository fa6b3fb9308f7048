// Package ratelimit provides request rate limiting keyed by an arbitrary
// client identifier. The Limiter interface keeps the counting store
// injectable: the in-memory window here suits single-instance deployments,
// and a shared store can implement the same interface for multi-instance
// ones without touching the HTTP layer.
package ratelimit

import (
	"sync"
	"time"
)

// Decision reports the outcome of one Allow call, with the header values
// the HTTP layer exposes.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter decides whether a request from the given key may proceed.
type Limiter interface {
	Allow(key string) Decision
}

type record struct {
	count int
	reset time.Time
}

// Window is an in-memory fixed-window limiter: up to max requests per key
// per window, counters swept periodically.
type Window struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	records map[string]*record
	done    chan struct{}
	once    sync.Once
}

// NewWindow creates a limiter allowing max requests per window for each key
// and starts the background sweep.
func NewWindow(max int, window time.Duration) *Window {
	w := &Window{
		max:     max,
		window:  window,
		records: make(map[string]*record),
		done:    make(chan struct{}),
	}
	go w.sweep()
	return w
}

// Allow counts a request against key and reports whether it is within the
// window's budget.
func (w *Window) Allow(key string) Decision {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.records[key]
	if !ok || rec.reset.Before(now) {
		rec = &record{reset: now.Add(w.window)}
		w.records[key] = rec
	}

	decision := Decision{Limit: w.max, Reset: rec.reset}
	if rec.count >= w.max {
		return decision
	}
	rec.count++
	decision.Allowed = true
	decision.Remaining = w.max - rec.count
	return decision
}

// Close stops the background sweep.
func (w *Window) Close() {
	w.once.Do(func() { close(w.done) })
}

func (w *Window) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-w.done:
			return
		case now := <-ticker.C:
			w.mu.Lock()
			for key, rec := range w.records {
				if rec.reset.Before(now) {
					delete(w.records, key)
				}
			}
			w.mu.Unlock()
		}
	}
}
