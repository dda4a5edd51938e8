package core

import (
	"strings"
	"sync"
)

const maxNickLen = 30

// Directory indexes registered clients by case-folded nickname.
// It is safe for concurrent use.
type Directory struct {
	mu    sync.RWMutex
	nicks map[string]*Client
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{nicks: make(map[string]*Client)}
}

// ValidNick reports whether nick is acceptable on the wire.
func ValidNick(nick string) bool {
	if nick == "" || len(nick) > maxNickLen {
		return false
	}
	for i, r := range nick {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case strings.ContainsRune("[]\\`_^{|}", r):
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// Claim reserves nick for c and records it on the client.
// Re-claiming a nick c already holds succeeds; a previous nick held by c is released.
func (d *Directory) Claim(c *Client, nick string) error {
	if !ValidNick(nick) {
		return ErrNickInvalid
	}
	key := strings.ToLower(nick)

	d.mu.Lock()
	defer d.mu.Unlock()

	if owner, ok := d.nicks[key]; ok && owner != c {
		return ErrNickInUse
	}
	if old := c.Nick(); old != "" {
		if oldKey := strings.ToLower(old); oldKey != key && d.nicks[oldKey] == c {
			delete(d.nicks, oldKey)
		}
	}
	d.nicks[key] = c
	c.SetNick(nick)
	return nil
}

// Release frees whatever nick c holds.
func (d *Directory) Release(c *Client) {
	nick := c.Nick()
	if nick == "" {
		return
	}
	key := strings.ToLower(nick)

	d.mu.Lock()
	if d.nicks[key] == c {
		delete(d.nicks, key)
	}
	d.mu.Unlock()
}

// Lookup returns the client holding nick.
func (d *Directory) Lookup(nick string) (*Client, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.nicks[strings.ToLower(nick)]
	return c, ok
}

// Len returns the number of claimed nicks.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nicks)
}
