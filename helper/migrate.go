package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"rental/config"
	"rental/infras/postgres"
	"sort"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

type action struct {
	run     func(mig *migrate.Migrate) error
	message string
}

var actions = map[string]action{
	ActionUp: {
		run:     func(mig *migrate.Migrate) error { return mig.Up() },
		message: "Database migrations applied",
	},
	ActionDown: {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		message: "Rolled back the latest migration",
	},
	ActionStepUp: {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(1) },
		message: "Applied the next migration",
	},
	ActionDrop: {
		run:     func(mig *migrate.Migrate) error { return mig.Down() },
		message: "Rolled back every migration",
	},
	ActionVersion: {
		run: func(mig *migrate.Migrate) error {
			version, dirty, err := mig.Version()
			if err != nil {
				return err //nolint:wrapcheck
			}

			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

			return nil
		},
	},
}

// Actions lists the accepted migration actions in a stable order.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func connectionString(cfg *config.Config) string {
	params := url.Values{"x-migrations-table": {cfg.DB.Postgres.MigrationTable}}

	return postgres.DSN(cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix, params)
}

// Migrate runs one of Actions against the write database.
func Migrate(cfg *config.Config, name string) error {
	act, ok := actions[name]
	if !ok {
		return fmt.Errorf("unknown migration action %q", name)
	}

	mig, err := migrate.New(migrationSource, connectionString(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := act.run(mig); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("action", name).Msg("Database schema already up to date")

			return nil
		}

		return fmt.Errorf("error running migration action %s: %w", name, err)
	}

	if act.message != "" {
		log.Info().Str("action", name).Msg(act.message)
	}

	return nil
}
