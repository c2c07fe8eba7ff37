// DevCampr API server.
//
// @title DevCampr API
// @version 1.0
// @description Directory of coding bootcamps with courses, reviews and
// @description role-based publishing.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/devcampr/devcampr/internal/pkg/logger"
	"github.com/devcampr/devcampr/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	if err := server.Run(*configPath); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}
