package bootstrap

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GintasS/social-media-post-generator/internal/api"
	"github.com/GintasS/social-media-post-generator/internal/client"
	"github.com/GintasS/social-media-post-generator/internal/config"
	"github.com/GintasS/social-media-post-generator/internal/httpx"
	"github.com/GintasS/social-media-post-generator/internal/logger"
	"github.com/GintasS/social-media-post-generator/internal/server"
	"github.com/GintasS/social-media-post-generator/internal/session"
	"github.com/GintasS/social-media-post-generator/internal/telemetry"
)

// SetupBackend creates the generation backend client.
func SetupBackend(cfg *config.Config) *client.BackendClient {
	return client.NewBackendClient(cfg.Backend.BaseURL, httpx.NewClient(cfg.Backend.Timeout))
}

// SetupSessions creates the telemetry provider and the session registry.
func SetupSessions(cfg *config.Config, backend *client.BackendClient, log logger.Logger) (*session.Manager, *telemetry.Provider) {
	tel := telemetry.NewProvider()
	sessions := session.NewManager(session.Config{
		Backend:    backend,
		Logger:     log,
		Telemetry:  tel,
		HistoryCap: cfg.Generation.HistoryCap,
		CopiedTTL:  cfg.Generation.CopiedTTL,
	})
	return sessions, tel
}

// SetupHTTPServer wires the router and creates the HTTP server.
func SetupHTTPServer(cfg *config.Config, sessions *session.Manager, tel *telemetry.Provider, log logger.Logger) *http.Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(sessions, tel, log)
	return server.New(cfg.Server, cfg.Address(), router)
}

// RunHTTPServer serves until shutdown.
func RunHTTPServer(ctx context.Context, cfg *config.Config, srv *http.Server, log logger.Logger) error {
	return server.Run(ctx, srv, log, cfg.Server.ShutdownTimeout)
}
