package core

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// DefaultHost is used in client prefixes when the transport does not supply one.
const DefaultHost = "localhost"

// Client is a connected user as seen by the core layer.
// Identity fields are set by the registration glue; membership lives in Channel.
type Client struct {
	id string

	mu         sync.RWMutex
	nick       string
	username   string
	host       string
	registered bool

	outbound chan string
	done     chan struct{}
	closed   atomic.Bool
	dropped  atomic.Int64
}

// NewClient constructs a client with a bounded outbound queue.
func NewClient(host string, queueSize int) *Client {
	if host == "" {
		host = DefaultHost
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Client{
		id:       uuid.NewString(),
		host:     host,
		outbound: make(chan string, queueSize),
		done:     make(chan struct{}),
	}
}

// ID returns the connection identifier.
func (c *Client) ID() string { return c.id }

// Nick returns the current nickname, empty before NICK.
func (c *Client) Nick() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nick
}

// Username returns the USER name.
func (c *Client) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

// Host returns the host shown in prefixes.
func (c *Client) Host() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.host
}

// IsRegistered reports whether registration completed.
func (c *Client) IsRegistered() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registered
}

// Prefix returns nick!user@host.
func (c *Client) Prefix() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nick + "!" + c.username + "@" + c.host
}

// SetNick records the nickname. Uniqueness is the Directory's job.
func (c *Client) SetNick(nick string) {
	c.mu.Lock()
	c.nick = nick
	c.mu.Unlock()
}

// SetUsername records the USER name.
func (c *Client) SetUsername(username string) {
	c.mu.Lock()
	c.username = username
	c.mu.Unlock()
}

// MarkRegistered flips the registration flag.
func (c *Client) MarkRegistered() {
	c.mu.Lock()
	c.registered = true
	c.mu.Unlock()
}

// displayNick is the nick used in numerics; "*" until one is set.
func (c *Client) displayNick() string {
	if n := c.Nick(); n != "" {
		return n
	}
	return "*"
}

// Send enqueues one protocol line without blocking.
// Returns false if the client is closed or its queue is full.
func (c *Client) Send(line string) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.outbound <- line:
		return true
	case <-c.done:
		return false
	default:
		// Drop if slow consumer.
		c.dropped.Add(1)
		return false
	}
}

// Outbound is drained by the transport writer.
func (c *Client) Outbound() <-chan string { return c.outbound }

// Done is closed once the client is closed.
func (c *Client) Done() <-chan struct{} { return c.done }

// Dropped returns how many lines were lost to a full queue.
func (c *Client) Dropped() int64 { return c.dropped.Load() }

// Close stops delivery. Safe to call more than once.
func (c *Client) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.done)
	}
}

// Closed reports whether Close was called.
func (c *Client) Closed() bool { return c.closed.Load() }
