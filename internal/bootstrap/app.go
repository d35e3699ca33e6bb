// Package bootstrap handles application initialization and lifecycle
// management for the post generator service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/GintasS/social-media-post-generator/internal/logger"
)

const version = "dev"

// Start initializes and runs the post generator service.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Backend client and session registry
	backend := SetupBackend(cfg)
	sessions, tel := SetupSessions(cfg, backend, log)

	// Phase 3: HTTP server
	srv := SetupHTTPServer(cfg, sessions, tel, log)

	log.Info("Starting post generator service",
		logger.String("address", cfg.Address()),
		logger.String("backend", cfg.Backend.BaseURL),
	)

	if runErr := RunHTTPServer(context.Background(), cfg, srv, log); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return runErr
	}

	log.Info("Server exited")
	return nil
}
