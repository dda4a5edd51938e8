package core

import (
	"sort"
	"strings"
	"time"
)

// Channel groups clients that joined the same name.
// It is not safe for concurrent use; the Dispatcher serializes access.
type Channel struct {
	name      string
	createdAt time.Time
	members   map[*Client]struct{}
	operators map[*Client]struct{}
	peak      int
}

// NewChannel constructs a channel with no members.
func NewChannel(name string) *Channel {
	return &Channel{
		name:      name,
		createdAt: time.Now(),
		members:   make(map[*Client]struct{}),
		operators: make(map[*Client]struct{}),
	}
}

// Name returns the channel name as spelled at creation.
func (ch *Channel) Name() string { return ch.name }

// CreatedAt returns when the channel was created.
func (ch *Channel) CreatedAt() time.Time { return ch.createdAt }

// HasMember reports whether c is in the channel.
func (ch *Channel) HasMember(c *Client) bool {
	_, ok := ch.members[c]
	return ok
}

// AddMember inserts a client. Returns true if newly added.
func (ch *Channel) AddMember(c *Client) bool {
	if _, exists := ch.members[c]; exists {
		return false
	}
	ch.members[c] = struct{}{}
	if len(ch.members) > ch.peak {
		ch.peak = len(ch.members)
	}
	return true
}

// RemoveMember deletes a client and any operator right it held. Returns true if removed.
func (ch *Channel) RemoveMember(c *Client) bool {
	if _, exists := ch.members[c]; !exists {
		return false
	}
	delete(ch.members, c)
	delete(ch.operators, c)
	return true
}

// IsOperator reports whether c holds operator rights here.
func (ch *Channel) IsOperator(c *Client) bool {
	_, ok := ch.operators[c]
	return ok
}

// AddOperator grants operator rights. Callers check membership first.
// Returns true if the right was newly granted.
func (ch *Channel) AddOperator(c *Client) bool {
	if _, exists := ch.operators[c]; exists {
		return false
	}
	ch.operators[c] = struct{}{}
	return true
}

// RemoveOperator revokes operator rights. Returns true if revoked.
func (ch *Channel) RemoveOperator(c *Client) bool {
	if _, exists := ch.operators[c]; !exists {
		return false
	}
	delete(ch.operators, c)
	return true
}

// Members returns a snapshot of the member set.
func (ch *Channel) Members() []*Client {
	out := make([]*Client, 0, len(ch.members))
	for c := range ch.members {
		out = append(out, c)
	}
	return out
}

// Operators returns a snapshot of the operator set.
func (ch *Channel) Operators() []*Client {
	out := make([]*Client, 0, len(ch.operators))
	for c := range ch.operators {
		out = append(out, c)
	}
	return out
}

// MemberByNick finds a member by case-insensitive nickname.
func (ch *Channel) MemberByNick(nick string) (*Client, bool) {
	for c := range ch.members {
		if strings.EqualFold(c.Nick(), nick) {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of members.
func (ch *Channel) Len() int { return len(ch.members) }

// Empty returns true if no clients are in the channel.
func (ch *Channel) Empty() bool { return len(ch.members) == 0 }

// Peak returns the largest member count seen.
func (ch *Channel) Peak() int { return ch.peak }

// namesList renders members for RPL_NAMREPLY, operators first, sorted by nick.
func (ch *Channel) namesList() string {
	names := make([]string, 0, len(ch.members))
	for c := range ch.members {
		if ch.IsOperator(c) {
			names = append(names, "@"+c.Nick())
		} else {
			names = append(names, c.Nick())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := strings.HasPrefix(names[i], "@"), strings.HasPrefix(names[j], "@")
		if oi != oj {
			return oi
		}
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return strings.Join(names, " ")
}

func sortFold(names []string) {
	sort.Slice(names, func(i, j int) bool { return strings.ToLower(names[i]) < strings.ToLower(names[j]) })
}
