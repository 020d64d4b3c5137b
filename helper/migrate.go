package helper

import (
	"errors"
	"fmt"
	"net/url"

	"litrato/config"
	"litrato/infras/postgres"
	"litrato/shared/constant"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // source
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type Direction string

const (
	Up      Direction = "up"
	Down    Direction = "down"
	StepUp  Direction = "step-up"
	Drop    Direction = "drop"
	Version Direction = "version"
)

var ErrUnknownDirection = errors.New("unknown migration direction")

// Migrate applies the schema in migrations/postgres to the write database.
// Drop is refused in production.
func Migrate(cfg *config.Config, direction Direction) (err error) {
	switch direction {
	case Up, Down, StepUp, Drop, Version:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDirection, direction)
	}

	if direction == Drop && cfg.Server.Env == constant.ServerEnvProduction {
		return errors.New("refusing to drop the schema in production")
	}

	pg := cfg.DB.Postgres

	var extra url.Values
	if pg.MigrationTable != "" {
		extra = url.Values{"x-migrations-table": {pg.MigrationTable}}
	}

	mig, err := migrate.New(migrationSource, postgres.DSN(pg.Write, pg.Prefix, extra))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	switch direction {
	case Up:
		err = mig.Up()
	case StepUp:
		err = mig.Steps(1)
	case Down:
		err = mig.Steps(-1)
	case Drop:
		err = mig.Down()
	case Version:
		return logVersion(mig)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", direction, err)
	}

	return logVersion(mig)
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("Database schema is empty")

		return nil
	}

	if err != nil {
		return fmt.Errorf("error reading schema version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database schema version")

	return nil
}
