package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vovakirdan/wirechat-ircd/internal/store"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Schema creates every table the store needs. Safe to run repeatedly.
const Schema = `
CREATE TABLE IF NOT EXISTS channels (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	created_at   DATETIME NOT NULL,
	destroyed_at DATETIME,
	joins        INTEGER NOT NULL DEFAULT 0,
	peak_members INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_channels_open ON channels(name, destroyed_at);

CREATE TABLE IF NOT EXISTS sessions (
	id              TEXT PRIMARY KEY,
	nick            TEXT NOT NULL DEFAULT '',
	username        TEXT NOT NULL DEFAULT '',
	remote_addr     TEXT NOT NULL,
	transport       TEXT NOT NULL,
	connected_at    DATETIME NOT NULL,
	disconnected_at DATETIME,
	reason          TEXT
);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens dbPath and applies Schema.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(Schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply a custom schema.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection; :memory: requires it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== ChannelStore implementation ====

// RecordChannelCreated opens a new lifetime row for name.
func (s *SQLiteStore) RecordChannelCreated(ctx context.Context, name string, at time.Time) error {
	query := `INSERT INTO channels (name, created_at) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, query, name, at.UTC()); err != nil {
		return fmt.Errorf("insert channel: %w", err)
	}
	return nil
}

// RecordJoin bumps the join counter of the open lifetime of name.
func (s *SQLiteStore) RecordJoin(ctx context.Context, name string) error {
	query := `
		UPDATE channels SET joins = joins + 1
		WHERE id = (SELECT MAX(id) FROM channels WHERE name = ? AND destroyed_at IS NULL)
	`
	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("update channel joins: %w", err)
	}
	return nil
}

// RecordChannelDestroyed closes the open lifetime of name.
func (s *SQLiteStore) RecordChannelDestroyed(ctx context.Context, name string, at time.Time, peakMembers int) error {
	query := `
		UPDATE channels SET destroyed_at = ?, peak_members = ?
		WHERE id = (SELECT MAX(id) FROM channels WHERE name = ? AND destroyed_at IS NULL)
	`
	result, err := s.db.ExecContext(ctx, query, at.UTC(), peakMembers, name)
	if err != nil {
		return fmt.Errorf("close channel: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("close channel %s: %w", name, ErrNotFound)
	}
	return nil
}

// ListChannels returns the most recent lifetimes first.
func (s *SQLiteStore) ListChannels(ctx context.Context, limit int) ([]*store.ChannelRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, name, created_at, destroyed_at, joins, peak_members
		FROM channels
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query channels: %w", err)
	}
	defer rows.Close()

	var records []*store.ChannelRecord
	for rows.Next() {
		var rec store.ChannelRecord
		var destroyedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &destroyedAt, &rec.Joins, &rec.PeakMembers); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		if destroyedAt.Valid {
			rec.DestroyedAt = &destroyedAt.Time
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// ==== SessionStore implementation ====

// OpenSession inserts a new session.
func (s *SQLiteStore) OpenSession(ctx context.Context, sess *store.Session) error {
	query := `
		INSERT INTO sessions (id, nick, username, remote_addr, transport, connected_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	connectedAt := sess.ConnectedAt
	if connectedAt.IsZero() {
		connectedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, query,
		sess.ID, sess.Nick, sess.Username, sess.RemoteAddr, string(sess.Transport), connectedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// IdentifySession stores the identity chosen at registration.
func (s *SQLiteStore) IdentifySession(ctx context.Context, id, nick, username string) error {
	query := `UPDATE sessions SET nick = ?, username = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, nick, username, id); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// CloseSession marks a session as disconnected.
func (s *SQLiteStore) CloseSession(ctx context.Context, id string, at time.Time, reason string) error {
	query := `
		UPDATE sessions SET disconnected_at = ?, reason = ?
		WHERE id = ? AND disconnected_at IS NULL
	`
	if _, err := s.db.ExecContext(ctx, query, at.UTC(), reason, id); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*store.Session, error) {
	query := `
		SELECT id, nick, username, remote_addr, transport, connected_at, disconnected_at, reason
		FROM sessions
		WHERE id = ?
	`
	var sess store.Session
	var transport string
	var disconnectedAt sql.NullTime
	var reason sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sess.ID,
		&sess.Nick,
		&sess.Username,
		&sess.RemoteAddr,
		&transport,
		&sess.ConnectedAt,
		&disconnectedAt,
		&reason,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("query session: %w", err)
	}

	sess.Transport = store.Transport(transport)
	if disconnectedAt.Valid {
		sess.DisconnectedAt = &disconnectedAt.Time
	}
	if reason.Valid {
		sess.Reason = &reason.String
	}
	return &sess, nil
}
