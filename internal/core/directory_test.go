package core

import (
	"errors"
	"testing"
)

func TestDirectoryClaim(t *testing.T) {
	dir := NewDirectory()
	a := NewClient("", 1)
	b := NewClient("", 1)

	if err := dir.Claim(a, "Alice"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := dir.Claim(b, "alice"); !errors.Is(err, ErrNickInUse) {
		t.Fatalf("expected ErrNickInUse, got %v", err)
	}
	if err := dir.Claim(a, "ALICE"); err != nil {
		t.Fatalf("re-claim by owner should succeed: %v", err)
	}
	if err := dir.Claim(a, "alice2"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, ok := dir.Lookup("alice"); ok {
		t.Fatal("old nick should be released on rename")
	}
	if err := dir.Claim(b, "9lives"); !errors.Is(err, ErrNickInvalid) {
		t.Fatalf("expected ErrNickInvalid, got %v", err)
	}

	dir.Release(a)
	if dir.Len() != 0 {
		t.Fatalf("expected empty directory, got %d", dir.Len())
	}
}

func TestValidNick(t *testing.T) {
	for _, nick := range []string{"a", "Z9", "[bot]", "x-y", "under_score"} {
		if !ValidNick(nick) {
			t.Errorf("%q should be valid", nick)
		}
	}
	for _, nick := range []string{"", "-x", "1abc", "has space", "way-too-long-nickname-for-this-server"} {
		if ValidNick(nick) {
			t.Errorf("%q should be invalid", nick)
		}
	}
}

func TestClientSendDropsWhenFull(t *testing.T) {
	c := NewClient("", 1)
	if !c.Send("one\r\n") {
		t.Fatal("first send should fit")
	}
	if c.Send("two\r\n") {
		t.Fatal("second send should be dropped")
	}
	if c.Dropped() != 1 {
		t.Fatalf("expected 1 dropped line, got %d", c.Dropped())
	}

	c.Close()
	c.Close()
	if c.Send("three\r\n") {
		t.Fatal("send after close should fail")
	}
}

func TestClientPrefix(t *testing.T) {
	c := NewClient("", 1)
	c.SetNick("n")
	c.SetUsername("u")
	if got := c.Prefix(); got != "n!u@localhost" {
		t.Fatalf("unexpected prefix %q", got)
	}
	if c.IsRegistered() {
		t.Fatal("new client must not be registered")
	}
}

func TestReplyLine(t *testing.T) {
	r := errNotOnChannel("nick", "#x")
	if got := r.Line(); got != "442 nick #x :You're not on that channel\r\n" {
		t.Fatalf("unexpected line %q", got)
	}
}
