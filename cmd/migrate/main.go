package main

import (
	"flag"
	"os"
	"strings"

	"github.com/kitabghor/storefront-api/internal/config"
	"github.com/kitabghor/storefront-api/internal/db/migrations"
	"github.com/kitabghor/storefront-api/internal/obs"
)

func main() {
	direction := flag.String("direction", "up", "up, down, steps or force")
	steps := flag.Int("n", 0, "step count for -direction=steps, version for -direction=force")
	flag.Parse()

	cfg := config.MustLoad()
	logger := obs.NewLogger(envOrDefault("OBS_LOG_FORMAT", "console"), envOrDefault("OBS_LOG_LEVEL", "info")).
		With().Str("component", "migrate").Logger()

	runner, err := migrations.NewRunner(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init migrations")
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Error().Err(err).Msg("close migrations")
		}
	}()

	switch strings.ToLower(*direction) {
	case "up":
		err = runner.Up()
	case "down":
		err = runner.Down()
	case "steps":
		err = runner.Steps(*steps)
	case "force":
		err = runner.Force(*steps)
	default:
		logger.Fatal().Str("direction", *direction).Msg("unknown direction")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}
}

func envOrDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
