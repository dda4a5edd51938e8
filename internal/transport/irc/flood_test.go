package irc

import (
	"testing"
	"time"
)

func TestFloodLimiterDisabled(t *testing.T) {
	f := newFloodLimiter(0, time.Minute)
	for i := 0; i < 1000; i++ {
		if !f.allow() {
			t.Fatalf("disabled limiter rejected line %d", i)
		}
	}
}

func TestFloodLimiterResets(t *testing.T) {
	f := newFloodLimiter(2, 20*time.Millisecond)
	stop := make(chan struct{})
	defer close(stop)
	f.startReset(stop)

	if !f.allow() || !f.allow() {
		t.Fatal("first two lines should pass")
	}
	if f.allow() {
		t.Fatal("third line should be rejected")
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if f.allow() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("limiter never reset")
}
