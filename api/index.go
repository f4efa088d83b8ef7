package handler

import (
	"net/http"
	"rental/config"
	"rental/di"
	"rental/helper"
	"rental/shared/logger"
	transport "rental/transport/http"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built once per warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.Configure(cfg)

		if cfg.DB.Postgres.AutoMigrate {
			if err := helper.Migrate(cfg, helper.ActionUp); err != nil {
				log.Error().Err(err).Msg("failed to apply migrations on cold start")
			}
		}

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
