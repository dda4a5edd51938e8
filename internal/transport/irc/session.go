package irc

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-ircd/internal/auth"
	"github.com/vovakirdan/wirechat-ircd/internal/core"
	"github.com/vovakirdan/wirechat-ircd/internal/proto"
	"github.com/vovakirdan/wirechat-ircd/internal/store"
)

var errClientClosed = errors.New("client closed")

// SessionRecorder receives connection lifecycle updates. Calls must not block.
type SessionRecorder interface {
	SessionOpened(s store.Session)
	SessionIdentified(id, nick, username string)
	SessionClosed(id, reason string)
}

type nopRecorder struct{}

func (nopRecorder) SessionOpened(store.Session)      {}
func (nopRecorder) SessionIdentified(_, _, _ string) {}
func (nopRecorder) SessionClosed(_, _ string)        {}

// Options tunes per-connection behaviour.
type Options struct {
	ServerName          string
	ClientHost          string
	PasswordHash        string
	SendQueueSize       int
	MaxLineBytes        int
	RegistrationTimeout time.Duration
	// FloodLinesPerMinute disconnects a client sending more lines than this; 0 disables.
	FloodLinesPerMinute int
}

// Handler bridges line connections to the core dispatcher. It owns the
// registration handshake; everything after it goes to the dispatcher.
type Handler struct {
	dispatcher *core.Dispatcher
	recorder   SessionRecorder
	opts       Options
	log        *zerolog.Logger
}

// NewHandler builds a connection handler. recorder may be nil.
func NewHandler(d *core.Dispatcher, recorder SessionRecorder, opts Options, logger *zerolog.Logger) *Handler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if opts.ServerName == "" {
		opts.ServerName = "wirechat.local"
	}
	return &Handler{dispatcher: d, recorder: recorder, opts: opts, log: logger}
}

// Serve runs one connection until it closes or ctx is cancelled.
func (h *Handler) Serve(ctx context.Context, conn Conn, transport store.Transport) {
	client := core.NewClient(h.opts.ClientHost, h.opts.SendQueueSize)
	logger := h.log.With().
		Str("client_id", client.ID()).
		Str("remote_addr", conn.RemoteAddr()).
		Str("transport", string(transport)).
		Logger()
	logger.Debug().Msg("client connected")

	h.recorder.SessionOpened(store.Session{
		ID:          client.ID(),
		RemoteAddr:  conn.RemoteAddr(),
		Transport:   transport,
		ConnectedAt: time.Now(),
	})

	if h.opts.RegistrationTimeout > 0 {
		timer := time.AfterFunc(h.opts.RegistrationTimeout, func() {
			if !client.IsRegistered() {
				client.Send(proto.Server("", "ERROR", ":Closing Link: "+client.Host()+" (Registration timeout)"))
				client.Close()
			}
		})
		defer timer.Stop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := &session{
		h:      h,
		client: client,
		log:    &logger,
		flood:  newFloodLimiter(h.opts.FloodLinesPerMinute, time.Minute),
	}
	s.flood.startReset(ctx.Done())

	readCh := make(chan error, 1)
	writeCh := make(chan error, 1)
	go func() {
		readCh <- s.readLoop(ctx, conn)
	}()
	go func() {
		writeCh <- s.writeLoop(ctx, conn)
	}()

	var err error
	select {
	case err = <-readCh:
		if !errors.Is(err, errClientClosed) {
			cancel()
			_ = conn.Close()
		}
		// After QUIT the writer flushes the final lines and exits on its own.
		<-writeCh
	case err = <-writeCh:
		cancel()
		_ = conn.Close()
		<-readCh
	}
	cancel()
	_ = conn.Close()

	reason := "Connection closed"
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, errClientClosed), errors.Is(err, context.Canceled):
	default:
		logger.Warn().Err(err).Msg("connection closed with error")
		reason = "Read error"
	}

	h.dispatcher.Disconnect(client, reason)
	h.recorder.SessionClosed(client.ID(), reason)
	logger.Debug().Str("nick", client.Nick()).Msg("client disconnected")
}

type session struct {
	h      *Handler
	client *core.Client
	log    *zerolog.Logger
	flood  *floodLimiter

	password string
	username string
}

func (s *session) readLoop(ctx context.Context, conn Conn) error {
	for {
		raw, err := conn.ReadLine(ctx)
		if errors.Is(err, proto.ErrLineTooLong) {
			s.client.Send(proto.Server("", "417", s.nick(), ":Input line was too long"))
			continue
		}
		if err != nil {
			if s.client.Closed() {
				return errClientClosed
			}
			return err
		}
		if !s.flood.allow() {
			s.log.Warn().Str("nick", s.client.Nick()).Msg("excess flood, closing")
			s.client.Send(proto.Server("", "ERROR", ":Closing Link: "+s.client.Host()+" (Excess Flood)"))
			s.h.dispatcher.Disconnect(s.client, "Excess Flood")
			return errClientClosed
		}

		tokens, err := proto.Tokenize(raw)
		if err != nil {
			continue
		}
		s.handle(tokens)
		if s.client.Closed() {
			return errClientClosed
		}
	}
}

func (s *session) writeLoop(ctx context.Context, conn Conn) error {
	for {
		select {
		case line := <-s.client.Outbound():
			if err := conn.WriteLine(ctx, line); err != nil {
				return err
			}
		case <-s.client.Done():
			// Flush what was queued before the close, such as the ERROR line.
			for {
				select {
				case line := <-s.client.Outbound():
					if err := conn.WriteLine(ctx, line); err != nil {
						return err
					}
				default:
					return errClientClosed
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *session) nick() string {
	if n := s.client.Nick(); n != "" {
		return n
	}
	return "*"
}

func (s *session) numeric(code string, params ...string) {
	s.client.Send(proto.Server("", code, params...))
}

func (s *session) handle(tokens []string) {
	switch tokens[0] {
	case "PING":
		s.client.Send(proto.Server("", "PONG", s.h.opts.ServerName, ":"+proto.Trailing(tokens[1:])))
		return
	case "PONG":
		return
	}

	if s.client.IsRegistered() {
		switch tokens[0] {
		case "PASS", "USER":
			s.numeric(core.CodeAlreadyRegistered, s.nick(), ":You may not reregister")
			return
		}
		s.h.dispatcher.Dispatch(s.client, tokens)
		return
	}

	switch tokens[0] {
	case "PASS":
		if len(tokens) < 2 {
			s.numeric(core.CodeNeedMoreParams, s.nick(), "PASS", ":Not enough parameters")
			return
		}
		s.password = proto.Param(tokens, 1)
	case "NICK":
		s.handleNick(tokens)
	case "USER":
		if len(tokens) < 2 {
			s.numeric(core.CodeNeedMoreParams, s.nick(), "USER", ":Not enough parameters")
			return
		}
		s.username = proto.Param(tokens, 1)
	default:
		// QUIT and the 451 replies are the dispatcher's job.
		s.h.dispatcher.Dispatch(s.client, tokens)
		return
	}

	s.tryRegister()
}

func (s *session) handleNick(tokens []string) {
	if len(tokens) < 2 {
		s.numeric(core.CodeNoNicknameGiven, s.nick(), ":No nickname given")
		return
	}
	nick := proto.Param(tokens, 1)
	switch err := s.h.dispatcher.Directory().Claim(s.client, nick); {
	case errors.Is(err, core.ErrNickInvalid):
		s.numeric(core.CodeErroneousNickname, s.nick(), nick, ":Erroneous nickname")
	case errors.Is(err, core.ErrNickInUse):
		s.numeric(core.CodeNicknameInUse, s.nick(), nick, ":Nickname is already in use")
	}
}

func (s *session) tryRegister() {
	if s.client.Nick() == "" || s.username == "" {
		return
	}
	if err := auth.CheckServerPassword(s.h.opts.PasswordHash, s.password); err != nil {
		s.numeric(core.CodePasswdMismatch, "*", ":Password incorrect")
		s.log.Info().Str("nick", s.client.Nick()).Msg("registration rejected: bad password")
		s.client.Send(proto.Server("", "ERROR", ":Closing Link: "+s.client.Host()+" (Bad password)"))
		s.h.dispatcher.Disconnect(s.client, "Bad password")
		return
	}

	s.client.SetUsername(strings.TrimPrefix(s.username, "~"))
	s.client.MarkRegistered()
	s.h.recorder.SessionIdentified(s.client.ID(), s.client.Nick(), s.client.Username())
	s.log.Info().Str("nick", s.client.Nick()).Str("username", s.client.Username()).Msg("client registered")

	s.numeric(core.CodeWelcome, s.client.Nick(), ":Welcome to "+s.h.opts.ServerName+", "+s.client.Prefix())
}
