package main

import (
	"os"
	"rental/config"
	"rental/helper"
	"rental/shared/logger"
	"strings"

	"github.com/rs/zerolog/log"
)

const argLength = 2

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msgf("migration action is required, one of: %s", strings.Join(helper.Actions(), ", "))
	}

	cfg := config.Get()
	logger.Configure(cfg)

	if err := helper.Migrate(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
