// Seeder for the fixture data set. Run with -i to import, -d to destroy.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/devcampr/devcampr/internal/bootstrap"
	"github.com/devcampr/devcampr/internal/pkg/logger"
	"github.com/devcampr/devcampr/internal/seed"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	dataDir := flag.String("data", "_data", "directory holding the fixture JSON files")
	importData := flag.Bool("i", false, "import the fixture data")
	destroyData := flag.Bool("d", false, "destroy all data")
	flag.Parse()

	if *importData == *destroyData {
		logger.Error().Msg("pass exactly one of -i (import) or -d (destroy)")
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	ctx := context.Background()
	client, database, err := bootstrap.SetupDatabase(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	if *importData {
		err = seed.Import(ctx, database, *dataDir)
	} else {
		err = seed.Destroy(ctx, database)
	}
	if err != nil {
		logger.Error().Err(err).Msg("seeder failed")
		os.Exit(1)
	}
}
