package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./tx.go -destination=./mocks/tx_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"litrato/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var ErrWriteContention = errors.New("concurrent write on the same calendar slot")

const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// Transactor runs calendar writes. The callback must do all its reads and
// writes through tx so the conflict check and the insert commit together.
type Transactor interface {
	WithinSerializable(ctx context.Context, lockKey string, fn func(ctx context.Context, tx *sqlx.Tx) error) error
}

type transactor struct {
	db *Connection
}

func NewTransactor(db *Connection) Transactor {
	return &transactor{db: db}
}

// WithinSerializable opens a SERIALIZABLE transaction, takes a transaction
// scoped advisory lock on lockKey, and runs fn. Serialization failures and
// exclusion violations come back as ErrWriteContention.
func (t *transactor) WithinSerializable(ctx context.Context, lockKey string, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	tx, err := t.db.Write.BeginTxx(ctx, serializable)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	if lockKey != "" {
		if _, err = tx.ExecContext(ctx, advisoryLockQuery, lockKey); err != nil {
			log.Error().Err(err).Str("lock_key", lockKey).Msg("failed to acquire advisory lock")

			return mapWriteError(fmt.Errorf("failed to acquire advisory lock: %w", err))
		}
	}

	if err = fn(ctx, tx); err != nil {
		return mapWriteError(err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return mapWriteError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

func mapWriteError(err error) error {
	if IsWriteContention(err) {
		return fmt.Errorf("%w: %w", ErrWriteContention, err)
	}

	return err
}

// IsWriteContention reports whether err is postgres refusing a write because
// another transaction got to the same rows first.
func IsWriteContention(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeSerializationFailure, constant.PqErrorCodeExclusionViolation, constant.PqErrorCodeDeadlockDetected:
		return true
	default:
		return false
	}
}
