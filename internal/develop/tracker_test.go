package develop

import (
	"testing"
	"time"
)

const testWindow = 50 * time.Millisecond

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestDevelopingDuringWindow(t *testing.T) {
	tr := NewTracker(testWindow)
	defer tr.Stop()

	tr.Start("a")
	if !tr.Developing("a") {
		t.Error("photo should be developing right after Start")
	}
	if tr.Developing("b") {
		t.Error("untracked photo should not be developing")
	}
}

func TestDevelopedAfterWindowElapses(t *testing.T) {
	tr := NewTracker(testWindow)
	defer tr.Stop()

	tr.Start("a")
	if !waitFor(t, 10*testWindow, func() bool { return !tr.Developing("a") }) {
		t.Fatal("photo should stop developing after the window elapses")
	}

	// Terminal state: it never returns to developing.
	time.Sleep(2 * testWindow)
	if tr.Developing("a") {
		t.Error("developed is terminal")
	}
}

func TestNewCaptureSupersedesPending(t *testing.T) {
	tr := NewTracker(testWindow)
	defer tr.Stop()

	tr.Start("a")
	tr.Start("b")

	if tr.Developing("a") {
		t.Error("superseded photo should no longer be developing")
	}
	if !tr.Developing("b") {
		t.Error("latest photo should be developing")
	}

	// The superseded timer firing must not clear b's window early,
	// and b must still expire on its own schedule.
	if !waitFor(t, 10*testWindow, func() bool { return !tr.Developing("b") }) {
		t.Fatal("latest photo should eventually finish developing")
	}
}

func TestRapidRestartsKeepOnlyLast(t *testing.T) {
	tr := NewTracker(testWindow)
	defer tr.Stop()

	ids := []string{"a", "b", "c", "d"}
	for _, id := range ids {
		tr.Start(id)
	}

	for _, id := range ids[:len(ids)-1] {
		if tr.Developing(id) {
			t.Errorf("%s should not be developing", id)
		}
	}
	if !tr.Developing("d") {
		t.Error("only the last id should be developing")
	}
}

func TestStopClearsState(t *testing.T) {
	tr := NewTracker(testWindow)

	tr.Start("a")
	tr.Stop()
	if tr.Developing("a") {
		t.Error("Stop should clear tracked state")
	}
}

func TestEmptyIDNeverDeveloping(t *testing.T) {
	tr := NewTracker(testWindow)
	defer tr.Stop()

	if tr.Developing("") {
		t.Error("empty id must not report developing")
	}
}
