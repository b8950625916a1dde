package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mherran/prodplan/pkg/infrastructure/config"
	"github.com/mherran/prodplan/pkg/infrastructure/logging"
	"github.com/mherran/prodplan/pkg/interfaces/cli/commands"
)

func main() {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogPretty)

	cmd := commands.NewRootCommand(cfg)
	if err := cmd.Execute(); err != nil {
		logger := logging.Logger()
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
