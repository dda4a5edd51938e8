package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	stdhttp "net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-ircd/internal/config"
	"github.com/vovakirdan/wirechat-ircd/internal/core"
	"github.com/vovakirdan/wirechat-ircd/internal/store"
	"github.com/vovakirdan/wirechat-ircd/internal/store/sqlite"
	transporthttp "github.com/vovakirdan/wirechat-ircd/internal/transport/http"
	"github.com/vovakirdan/wirechat-ircd/internal/transport/irc"
)

const recorderBuffer = 1024

// App wires together core and transport layers.
type App struct {
	ircServer       *irc.Server
	httpServer      *stdhttp.Server
	shutdownTimeout time.Duration
	dispatcher      *core.Dispatcher
	store           store.Store
	recorder        *store.Recorder
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	a := &App{shutdownTimeout: cfg.ShutdownTimeout, log: logger}

	opts := []core.Option{
		core.WithLogger(logger),
		core.WithMaxChannels(cfg.MaxChannels),
	}
	var sessions irc.SessionRecorder
	if cfg.DatabasePath != "" {
		st, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")

		a.store = st
		a.recorder = store.NewRecorder(st, logger, recorderBuffer)
		opts = append(opts, core.WithEventSink(a.recorder))
		sessions = a.recorder
	}

	a.dispatcher = core.NewDispatcher(core.NewRegistry(), core.NewDirectory(), opts...)

	handler := irc.NewHandler(a.dispatcher, sessions, irc.Options{
		ServerName:          cfg.ServerName,
		ClientHost:          cfg.ClientHost,
		PasswordHash:        cfg.ServerPasswordHash,
		SendQueueSize:       cfg.SendQueueSize,
		MaxLineBytes:        cfg.MaxLineBytes,
		RegistrationTimeout: cfg.RegistrationTimeout,
		FloodLinesPerMinute: cfg.FloodLinesPerMinute,
	}, logger)
	a.ircServer = irc.NewServer(cfg.IRCAddr, handler, logger)

	if cfg.HTTPAddr != "" {
		deps := transporthttp.Deps{Dispatcher: a.dispatcher, IRC: handler}
		if a.store != nil {
			deps.History = a.store
		}
		a.httpServer = transporthttp.NewServer(deps, cfg, logger)
	}

	return a, nil
}

// Dispatcher exposes the command core.
func (a *App) Dispatcher() *core.Dispatcher { return a.dispatcher }

// IRCAddr returns the bound IRC listener address once Run has started it.
func (a *App) IRCAddr() net.Addr { return a.ircServer.Addr() }

// Run starts the listeners and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	// Sessions outlive ctx only until shutdown finishes.
	serveCtx, stopServing := context.WithCancel(context.WithoutCancel(ctx))
	defer stopServing()

	var recorderDone chan struct{}
	recorderCtx, stopRecorder := context.WithCancel(context.Background())
	defer stopRecorder()
	if a.recorder != nil {
		recorderDone = make(chan struct{})
		go func() {
			a.recorder.Run(recorderCtx)
			close(recorderDone)
		}()
	}

	serverErr := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.ircServer.ListenAndServe(serveCtx); err != nil {
			serverErr <- err
		}
	}()

	if a.httpServer != nil {
		a.httpServer.BaseContext = func(net.Listener) context.Context { return serveCtx }
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.log.Info().Str("addr", a.httpServer.Addr).Msg("http listener started")
			if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
				serverErr <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case runErr = <-serverErr:
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	stopServing()
	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("http shutdown: %w", err)
		}
		cancel()
	}
	wg.Wait()

	stopRecorder()
	if recorderDone != nil {
		<-recorderDone
	}
	a.cleanup()
	return runErr
}

// cleanup closes database and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
