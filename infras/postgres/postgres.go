package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"rental/config"
	"rental/shared/constant"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads from writes. Read may point at a replica.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// DSN renders the URL form of a node's connection string. The configured prefix is prepended to the database name.
func DSN(node config.Postgres, prefix string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}

	params.Set("sslmode", node.SSLMode)

	if node.Timezone != constant.Empty {
		params.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + prefix + node.Name,
		RawQuery: params.Encode(),
	}

	return dsn.String()
}

// connect retries until the node answers, and exits the process when it never does.
func connect(cfg *config.Config, role string, node config.Postgres) *sqlx.DB {
	settings := cfg.DB.Postgres
	dsn := DSN(node, settings.Prefix, nil)

	logger := log.With().
		Str("role", role).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("database", settings.Prefix+node.Name).
		Logger()

	for attempt := 1; attempt <= settings.MaxRetry; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(settings.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Int("attempts", settings.MaxRetry).Msg("Could not connect to database, giving up")

	return nil
}

// WithTx runs fn inside a write transaction, committing on success and rolling back on any error.
func (c *Connection) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err carries a postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeUniqueViolation)
}

// IsInvalidText reports whether postgres refused a value for its column type, e.g. "abc" for a uuid.
func IsInvalidText(err error) bool {
	return hasCode(err, constant.PqErrorCodeInvalidTextRepresentation)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
