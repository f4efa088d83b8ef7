package main

import (
	"rental/config"
	"rental/di"
	"rental/helper"
	"rental/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Migrate(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations on startup")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
