package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatrelay/internal/config"
)

// ChatPath is the websocket handshake endpoint.
const ChatPath = "/chat"

// NewServer builds an HTTP server with the chat endpoint and basic routes.
// The websocket endpoint sits on a plain mux in front of gin: gin's writer
// refuses to hijack once the 101 response has been written.
func NewServer(hub SessionHub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	mux := stdhttp.NewServeMux()
	mux.Handle(ChatPath, NewWSHandler(hub, cfg, logger))
	mux.Handle("/", NewRouter(hub, logger))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter builds the gin engine serving the REST routes.
func NewRouter(hub SessionHub, logger *zerolog.Logger) *gin.Engine {
	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	stats := NewStatsHandlers(hub, logger)
	router.GET("/health", healthHandler)
	router.GET("/api/usercount", stats.UserCount)

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
