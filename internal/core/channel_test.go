package core

import "testing"

func TestChannelMembership(t *testing.T) {
	ch := NewChannel("#x")
	a := NewClient("", 1)
	b := NewClient("", 1)

	if !ch.AddMember(a) {
		t.Fatal("first add should report newly added")
	}
	if ch.AddMember(a) {
		t.Fatal("second add should be a no-op")
	}
	if ch.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", ch.Len())
	}
	if ch.HasMember(b) {
		t.Fatal("b was never added")
	}
	if ch.RemoveMember(b) {
		t.Fatal("removing an absent client should be a no-op")
	}

	ch.AddMember(b)
	ch.AddOperator(a)
	if !ch.IsOperator(a) {
		t.Fatal("a should be operator")
	}

	ch.RemoveMember(a)
	if ch.IsOperator(a) {
		t.Fatal("removing a member must drop its operator right")
	}
	if ch.Empty() {
		t.Fatal("b is still a member")
	}
	if ch.Peak() != 2 {
		t.Fatalf("expected peak 2, got %d", ch.Peak())
	}
}

func TestChannelMembersIsSnapshot(t *testing.T) {
	ch := NewChannel("#x")
	a := NewClient("", 1)
	ch.AddMember(a)

	snapshot := ch.Members()
	ch.RemoveMember(a)

	if len(snapshot) != 1 || snapshot[0] != a {
		t.Fatalf("snapshot changed after mutation: %v", snapshot)
	}
}

func TestChannelMemberByNick(t *testing.T) {
	ch := NewChannel("#x")
	a := NewClient("", 1)
	a.SetNick("Alice")
	ch.AddMember(a)

	got, ok := ch.MemberByNick("alice")
	if !ok || got != a {
		t.Fatalf("case-insensitive lookup failed: %v %v", got, ok)
	}
	if _, ok := ch.MemberByNick("bob"); ok {
		t.Fatal("bob is not a member")
	}
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Find("#x"); ok {
		t.Fatal("empty registry should miss")
	}

	ch, created := reg.GetOrCreate("#X")
	if !created {
		t.Fatal("expected creation")
	}
	again, created := reg.GetOrCreate("#x")
	if created || again != ch {
		t.Fatal("lookup should be case-insensitive and reuse the channel")
	}
	if ch.Name() != "#X" {
		t.Fatalf("name should keep creation spelling, got %s", ch.Name())
	}

	reg.Remove("#x")
	if _, ok := reg.Find("#X"); ok {
		t.Fatal("channel should be gone")
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", reg.Len())
	}
}

func TestValidChannelName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"#go", true},
		{"&local", true},
		{"#", false},
		{"go", false},
		{"#a b", false},
		{"#a,b", false},
		{"#a:b", false},
	}
	for _, tt := range tests {
		if got := ValidChannelName(tt.name); got != tt.ok {
			t.Errorf("ValidChannelName(%q) = %v, want %v", tt.name, got, tt.ok)
		}
	}
}
