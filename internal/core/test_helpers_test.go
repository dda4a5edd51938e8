package core

import (
	"sync"
	"testing"
)

func newTestDispatcher(opts ...Option) *Dispatcher {
	return NewDispatcher(NewRegistry(), NewDirectory(), opts...)
}

// registered returns a client that completed registration as nick with username "u".
func registered(t *testing.T, d *Dispatcher, nick string) *Client {
	t.Helper()

	c := NewClient("", 256)
	if err := d.Directory().Claim(c, nick); err != nil {
		t.Fatalf("claim %s: %v", nick, err)
	}
	c.SetUsername("u")
	c.MarkRegistered()
	return c
}

// drain returns every line queued for c so far.
func drain(c *Client) []string {
	var lines []string
	for {
		select {
		case line := <-c.Outbound():
			lines = append(lines, line)
		default:
			return lines
		}
	}
}

func mustLines(t *testing.T, c *Client, want ...string) {
	t.Helper()

	got := drain(c)
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d lines %q, got %d %q", c.Nick(), len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: line %d: expected %q, got %q", c.Nick(), i, want[i], got[i])
		}
	}
}

func mustNoLines(t *testing.T, c *Client) {
	t.Helper()
	if got := drain(c); len(got) != 0 {
		t.Fatalf("%s: expected no lines, got %q", c.Nick(), got)
	}
}

// joinAll joins each client to channel and discards the resulting lines.
func joinAll(d *Dispatcher, channel string, clients ...*Client) {
	for _, c := range clients {
		d.Dispatch(c, []string{"JOIN", channel})
	}
	for _, c := range clients {
		drain(c)
	}
}

// checkInvariants fails if any channel is empty or has an operator outside its members.
func checkInvariants(t *testing.T, d *Dispatcher) {
	t.Helper()
	if msg := invariantViolation(d); msg != "" {
		t.Fatal(msg)
	}
}

func invariantViolation(d *Dispatcher) string {
	var msg string
	d.Inspect(func(reg *Registry) {
		for _, name := range reg.Names() {
			ch, ok := reg.Find(name)
			switch {
			case !ok:
				msg = "registry lists " + name + " but Find misses it"
			case ch.Empty():
				msg = "empty channel " + name + " survived in registry"
			default:
				for _, op := range ch.Operators() {
					if !ch.HasMember(op) {
						msg = "channel " + name + ": operator " + op.Nick() + " is not a member"
					}
				}
			}
			if msg != "" {
				return
			}
		}
	})
	return msg
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Record(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) kinds() []EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EventKind, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Kind)
	}
	return out
}
