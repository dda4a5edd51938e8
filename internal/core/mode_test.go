package core

import "testing"

func TestModeGrantAndRevoke(t *testing.T) {
	d := newTestDispatcher()
	op := registered(t, d, "op")
	a := registered(t, d, "a")
	b := registered(t, d, "b")
	joinAll(d, "#x", op, a, b)

	d.Dispatch(op, []string{"MODE", "#x", "+oo", "a", "b"})
	want := ":op!u@localhost MODE #x +oo a b\r\n"
	for _, c := range []*Client{op, a, b} {
		mustLines(t, c, want)
	}

	// a is already op; only the revoke of b is a change.
	d.Dispatch(a, []string{"MODE", "#x", "+o-o", "a", "b"})
	want = ":a!u@localhost MODE #x -o b\r\n"
	for _, c := range []*Client{op, a, b} {
		mustLines(t, c, want)
	}

	info, _ := d.Channel("#x")
	if len(info.Operators) != 2 || info.Operators[0] != "a" || info.Operators[1] != "op" {
		t.Fatalf("unexpected operators: %v", info.Operators)
	}
	checkInvariants(t, d)
}

func TestModeNoChangeSendsNothing(t *testing.T) {
	d := newTestDispatcher()
	op := registered(t, d, "op")
	joinAll(d, "#x", op)

	d.Dispatch(op, []string{"MODE", "#x", "+o", "op"})
	mustNoLines(t, op)
}

func TestModeQuery(t *testing.T) {
	d := newTestDispatcher()
	op := registered(t, d, "op")
	joinAll(d, "#x", op)

	d.Dispatch(op, []string{"MODE", "#x"})
	mustLines(t, op, "324 op #x :+\r\n")
}

func TestModePreconditions(t *testing.T) {
	d := newTestDispatcher()
	op := registered(t, d, "op")
	peon := registered(t, d, "peon")
	outsider := registered(t, d, "outsider")
	joinAll(d, "#x", op, peon)

	tests := []struct {
		name   string
		client *Client
		args   []string
		want   string
	}{
		{"missing channel", op, []string{"MODE"}, "461 op MODE :Not enough parameters\r\n"},
		{"no such channel", op, []string{"MODE", "#y", "+o", "peon"}, "403 op #y :No such channel\r\n"},
		{"issuer not member", outsider, []string{"MODE", "#x", "+o", "outsider"}, "442 outsider #x :You're not on that channel\r\n"},
		{"not operator", peon, []string{"MODE", "#x", "+o", "peon"}, "482 peon #x :You're not channel operator\r\n"},
		{"unknown mode", op, []string{"MODE", "#x", "+ot", "peon"}, "472 op t :is unknown mode char to me\r\n"},
		{"missing nick", op, []string{"MODE", "#x", "+o"}, "461 op MODE :Not enough parameters\r\n"},
		{"target not member", op, []string{"MODE", "#x", "+o", "outsider"}, "441 op outsider #x :They aren't on that channel\r\n"},
		{"partial validation applies nothing", op, []string{"MODE", "#x", "+oo", "peon", "outsider"}, "441 op outsider #x :They aren't on that channel\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.Dispatch(tt.client, tt.args)
			mustLines(t, tt.client, tt.want)
			info, _ := d.Channel("#x")
			if len(info.Operators) != 1 || info.Operators[0] != "op" {
				t.Fatalf("operators changed on failed MODE: %v", info.Operators)
			}
		})
	}
	mustNoLines(t, peon)
}

func TestModeTrailingTargetNick(t *testing.T) {
	d := newTestDispatcher()
	op := registered(t, d, "op")
	peon := registered(t, d, "peon")
	joinAll(d, "#x", op, peon)

	d.Dispatch(op, []string{"MODE", "#x", "+o", ":peon"})

	want := ":op!u@localhost MODE #x +o peon\r\n"
	mustLines(t, op, want)
	mustLines(t, peon, want)
	info, _ := d.Channel("#x")
	if len(info.Operators) != 2 {
		t.Fatalf("peon should be an operator, got %v", info.Operators)
	}
}
