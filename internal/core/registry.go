package core

import (
	"sort"
	"strings"
)

// Registry maps channel names to channels and owns their lifecycle.
// Keys are ASCII case-folded. Callers serialize access through the Dispatcher.
type Registry struct {
	channels map[string]*Channel
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]*Channel)}
}

func foldName(name string) string {
	return strings.ToLower(name)
}

// Find looks a channel up without creating it.
func (r *Registry) Find(name string) (*Channel, bool) {
	ch, ok := r.channels[foldName(name)]
	return ch, ok
}

// GetOrCreate returns the named channel, creating an empty one if absent.
// The bool is true when the channel was created by this call.
func (r *Registry) GetOrCreate(name string) (*Channel, bool) {
	key := foldName(name)
	if ch, ok := r.channels[key]; ok {
		return ch, false
	}
	ch := NewChannel(name)
	r.channels[key] = ch
	return ch, true
}

// Remove deletes the entry. Only called in the step that emptied the channel.
func (r *Registry) Remove(name string) {
	delete(r.channels, foldName(name))
}

// ChannelsOf returns every channel c belongs to, sorted by name.
func (r *Registry) ChannelsOf(c *Client) []*Channel {
	var out []*Channel
	for _, ch := range r.channels {
		if ch.HasMember(c) {
			out = append(out, ch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return foldName(out[i].name) < foldName(out[j].name) })
	return out
}

// Names returns all channel names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.channels))
	for _, ch := range r.channels {
		out = append(out, ch.name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of live channels.
func (r *Registry) Len() int { return len(r.channels) }
