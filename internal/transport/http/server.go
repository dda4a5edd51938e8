package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-ircd/internal/auth"
	"github.com/vovakirdan/wirechat-ircd/internal/config"
	"github.com/vovakirdan/wirechat-ircd/internal/core"
	"github.com/vovakirdan/wirechat-ircd/internal/store"
	"github.com/vovakirdan/wirechat-ircd/internal/transport/irc"
)

// Deps are the collaborators the HTTP surface needs. History may be nil when
// the store is disabled; IRC may be nil to disable /ws.
type Deps struct {
	Dispatcher *core.Dispatcher
	IRC        *irc.Handler
	History    store.ChannelStore
}

// NewServer builds the admin API and IRC-over-WebSocket server.
func NewServer(deps Deps, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(deps, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewHandler mounts /ws on a plain mux and everything else on gin.
// The WebSocket upgrade must hijack the raw ResponseWriter, which gin's writer refuses
// once the upgrade headers are written.
func NewHandler(deps Deps, cfg *config.Config, logger *zerolog.Logger) stdhttp.Handler {
	mux := stdhttp.NewServeMux()
	if cfg.WSEnabled && deps.IRC != nil {
		mux.Handle("/ws", NewWSHandler(deps.IRC, cfg.MaxLineBytes, logger))
	}
	mux.Handle("/", NewRouter(deps, cfg, logger))
	return mux
}

// NewRouter wires the health and admin routes onto a gin engine.
func NewRouter(deps Deps, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	jwtCfg := &auth.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	}
	api := NewAPIHandlers(deps.Dispatcher, deps.History, logger)
	admin := router.Group("/api", AuthMiddleware(jwtCfg, logger))
	admin.GET("/channels", api.ListChannels)
	admin.GET("/channels/:name", api.GetChannel)
	admin.GET("/history/channels", api.ChannelHistory)

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
