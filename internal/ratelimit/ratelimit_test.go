package ratelimit

import (
	"testing"
	"time"
)

func TestWindowAllowsUpToLimit(t *testing.T) {
	w := NewWindow(5, 15*time.Minute)
	defer w.Close()

	for i := 0; i < 5; i++ {
		if d := w.Allow("1.2.3.4"); !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	d := w.Allow("1.2.3.4")
	if d.Allowed {
		t.Error("6th request in window must be denied")
	}
	if d.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", d.Remaining)
	}
}

func TestWindowIsPerKey(t *testing.T) {
	w := NewWindow(1, 15*time.Minute)
	defer w.Close()

	if !w.Allow("a").Allowed {
		t.Fatal("first request for key a should pass")
	}
	if w.Allow("a").Allowed {
		t.Error("second request for key a should be denied")
	}
	if !w.Allow("b").Allowed {
		t.Error("key b has its own budget")
	}
}

func TestWindowResetsAfterWindow(t *testing.T) {
	w := NewWindow(1, 20*time.Millisecond)
	defer w.Close()

	if !w.Allow("a").Allowed {
		t.Fatal("first request should pass")
	}
	if w.Allow("a").Allowed {
		t.Fatal("second request should be denied")
	}

	time.Sleep(30 * time.Millisecond)
	if !w.Allow("a").Allowed {
		t.Error("request after window expiry should pass")
	}
}

func TestDecisionReportsLimit(t *testing.T) {
	w := NewWindow(3, time.Minute)
	defer w.Close()

	d := w.Allow("a")
	if d.Limit != 3 {
		t.Errorf("limit = %d, want 3", d.Limit)
	}
	if d.Remaining != 2 {
		t.Errorf("remaining = %d, want 2", d.Remaining)
	}
	if d.Reset.Before(time.Now()) {
		t.Error("reset must be in the future")
	}
}
