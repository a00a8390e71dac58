// Package develop tracks the transient "developing" window of the most
// recently captured photo. The state is presentation-only and never
// persisted.
package develop

import (
	"sync"
	"time"
)

// DefaultWindow is how long a fresh capture stays in the Developing
// state before the terminal Developed transition.
const DefaultWindow = 1800 * time.Millisecond

// Tracker follows at most one photo id at a time. Starting a new id
// while a previous one is still developing reassigns the tracked state
// immediately (last writer wins) and invalidates the pending timer, so
// a superseded transition never fires as anything but a no-op.
type Tracker struct {
	window time.Duration

	mu      sync.Mutex
	current string
	timer   *time.Timer
}

func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{window: window}
}

// Start marks id as Developing and schedules its transition to
// Developed after the window elapses.
func (t *Tracker) Start(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.current = id
	t.timer = time.AfterFunc(t.window, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		// Identity check: a superseded timer must not clear the
		// state of a later capture.
		if t.current == id {
			t.current = ""
			t.timer = nil
		}
	})
}

// Developing reports whether id is inside its develop window.
func (t *Tracker) Developing(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return id != "" && t.current == id
}

// Stop cancels any pending transition and clears the tracked state.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.current = ""
}
