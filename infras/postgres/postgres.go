package postgres

import (
	"net"
	"net/url"
	"time"

	"litrato/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // driver
	"github.com/rs/zerolog/log"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
)

// Connection splits reads (calendar, listings) from writes. Conflict checks
// that guard a write always go through Write inside a transaction.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  connect("read", pg.Read, DSN(pg.Read, pg.Prefix, nil), pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", pg.Write, DSN(pg.Write, pg.Prefix, nil), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// DSN builds a lib/pq connection URL. prefix is prepended to the database
// name. extra carries driver or tool parameters such as x-migrations-table.
func DSN(endpoint config.PostgresEndpoint, prefix string, extra url.Values) string {
	query := url.Values{}

	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name string, endpoint config.PostgresEndpoint, dsn string, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Name).
		Logger()

	var err error

	for attempt := 1; attempt <= max(1, maxRetry); attempt++ {
		var db *sqlx.DB

		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxOpenConns(maxOpenConns)
			db.SetMaxIdleConns(maxIdleConns)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Warn().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Err(err).Msg("Giving up connecting to database")

	return nil
}
