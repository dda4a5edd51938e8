package store

import (
	"context"
	"time"
)

// ChannelRecord is one lifetime of a channel name, from first join to last leave.
type ChannelRecord struct {
	ID          int64
	Name        string
	CreatedAt   time.Time
	DestroyedAt *time.Time
	Joins       int64
	PeakMembers int
}

// Transport identifies how a session connected.
type Transport string

const (
	TransportTCP       Transport = "tcp"
	TransportWebSocket Transport = "websocket"
)

// Session records one client connection.
type Session struct {
	ID             string // core client ID
	Nick           string
	Username       string
	RemoteAddr     string
	Transport      Transport
	ConnectedAt    time.Time
	DisconnectedAt *time.Time
	Reason         *string
}

// ChannelStore handles channel lifecycle persistence.
type ChannelStore interface {
	// RecordChannelCreated opens a new lifetime row for name.
	RecordChannelCreated(ctx context.Context, name string, at time.Time) error

	// RecordJoin bumps the join counter of the open lifetime of name.
	RecordJoin(ctx context.Context, name string) error

	// RecordChannelDestroyed closes the open lifetime of name.
	RecordChannelDestroyed(ctx context.Context, name string, at time.Time, peakMembers int) error

	// ListChannels returns the most recent lifetimes first.
	ListChannels(ctx context.Context, limit int) ([]*ChannelRecord, error)
}

// SessionStore handles connection persistence.
type SessionStore interface {
	// OpenSession inserts a new session.
	OpenSession(ctx context.Context, s *Session) error

	// IdentifySession stores the identity chosen at registration.
	IdentifySession(ctx context.Context, id, nick, username string) error

	// CloseSession marks a session as disconnected.
	CloseSession(ctx context.Context, id string, at time.Time, reason string) error

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, id string) (*Session, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	ChannelStore
	SessionStore

	// Close closes the underlying database connection.
	Close() error
}
