package main

import (
	"os"

	"github.com/yigit/careerportal/internal/pkg/logger"
	"github.com/yigit/careerportal/internal/server"
)

// @title Career Portal API
// @version 1.0
// @description API for the career services portal: job postings, applications and profiles

// @contact.name Career Office

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
// @description Session cookie set by POST /auth/session

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
