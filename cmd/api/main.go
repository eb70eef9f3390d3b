package main

import (
	"os"

	"github.com/yigit/bandroster/internal/pkg/logger"
	"github.com/yigit/bandroster/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
