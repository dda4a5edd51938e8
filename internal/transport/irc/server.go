package irc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-ircd/internal/store"
)

// Server accepts plain TCP IRC connections.
type Server struct {
	addr    string
	handler *Handler
	log     *zerolog.Logger

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// NewServer builds a TCP server bound to addr on ListenAndServe.
func NewServer(addr string, handler *Handler, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Server{addr: addr, handler: handler, log: logger}
}

// ListenAndServe listens on the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is cancelled. It returns after
// every connection goroutine has finished.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("irc listener started")

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				s.log.Info().Msg("irc listener stopped")
				return nil
			}
			s.wg.Wait()
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handler.Serve(ctx, NewTCPConn(conn, s.handler.opts.MaxLineBytes), store.TransportTCP)
		}()
	}
}

// Addr returns the bound listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}
