package logger

import (
	"io"
	"os"
	"rental/config"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level until the config is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Configure applies the configured level and tags every entry with the app and env.
// Production writes JSON lines, other environments keep the console writer.
func Configure(cfg *config.Config) {
	ConfigureOutput(cfg, os.Stdout)
}

func ConfigureOutput(cfg *config.Config, out io.Writer) {
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("env", cfg.Server.Env).
		Logger()

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		log.Trace().Str("loglevel", zerolog.TraceLevel.String()).Msg("Environment has no log level set up, using default.")

		return
	}

	zerolog.SetGlobalLevel(level)
	log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
}
