package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-ircd/internal/core"
)

const drainTimeout = 5 * time.Second

type op struct {
	name string
	fn   func(ctx context.Context) error
}

// Recorder writes dispatcher events and session changes to a Store on a
// single worker goroutine. Enqueueing never blocks; when the buffer is full
// the write is dropped and counted.
type Recorder struct {
	st      Store
	log     *zerolog.Logger
	ops     chan op
	dropped atomic.Int64
}

// NewRecorder creates a recorder with the given buffer size.
func NewRecorder(st Store, logger *zerolog.Logger, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 1024
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Recorder{
		st:  st,
		log: logger,
		ops: make(chan op, buffer),
	}
}

// Run processes writes until ctx is cancelled, then drains what is queued.
// Writes already dequeued are not aborted by the cancellation.
func (r *Recorder) Run(ctx context.Context) {
	writeCtx := context.WithoutCancel(ctx)
	for {
		select {
		case o := <-r.ops:
			r.apply(writeCtx, o)
		case <-ctx.Done():
			r.drain()
			return
		}
	}
}

func (r *Recorder) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case o := <-r.ops:
			r.apply(ctx, o)
		default:
			return
		}
	}
}

func (r *Recorder) apply(ctx context.Context, o op) {
	if err := o.fn(ctx); err != nil {
		r.log.Warn().Err(err).Str("op", o.name).Msg("store write failed")
	}
}

func (r *Recorder) enqueue(name string, fn func(ctx context.Context) error) {
	select {
	case r.ops <- op{name: name, fn: fn}:
	default:
		r.dropped.Add(1)
		r.log.Warn().Str("op", name).Msg("recorder buffer full, write dropped")
	}
}

// Dropped returns how many writes were lost to a full buffer.
func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

// Record implements core.EventSink.
func (r *Recorder) Record(ev core.Event) {
	switch ev.Kind {
	case core.EventChannelCreated:
		r.enqueue("channel_created", func(ctx context.Context) error {
			return r.st.RecordChannelCreated(ctx, ev.Channel, ev.At)
		})
	case core.EventJoined:
		r.enqueue("channel_join", func(ctx context.Context) error {
			return r.st.RecordJoin(ctx, ev.Channel)
		})
	case core.EventChannelDestroyed:
		r.enqueue("channel_destroyed", func(ctx context.Context) error {
			return r.st.RecordChannelDestroyed(ctx, ev.Channel, ev.At, ev.Peak)
		})
	default:
		r.log.Debug().
			Str("event", ev.Kind.String()).
			Str("channel", ev.Channel).
			Str("nick", ev.Nick).
			Str("target", ev.Target).
			Msg("membership event")
	}
}

// SessionOpened records a new connection.
func (r *Recorder) SessionOpened(s Session) {
	r.enqueue("session_open", func(ctx context.Context) error {
		return r.st.OpenSession(ctx, &s)
	})
}

// SessionIdentified records the nick and username chosen at registration.
func (r *Recorder) SessionIdentified(id, nick, username string) {
	r.enqueue("session_identify", func(ctx context.Context) error {
		return r.st.IdentifySession(ctx, id, nick, username)
	})
}

// SessionClosed records a disconnect.
func (r *Recorder) SessionClosed(id, reason string) {
	at := time.Now()
	r.enqueue("session_close", func(ctx context.Context) error {
		return r.st.CloseSession(ctx, id, at, reason)
	})
}
