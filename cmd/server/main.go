package main

import (
	"fmt"
	"os"

	"github.com/tutera-org/tutera-frontend-sub001/internal/config"
	"github.com/tutera-org/tutera-frontend-sub001/internal/logger"
	"github.com/tutera-org/tutera-frontend-sub001/internal/server"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	// Create the gateway
	srv, err := server.New(cfg, log, version)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	log.Info().
		Str("version", version).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("Starting Tutera gateway...")

	// Start HTTP server (this blocks)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
