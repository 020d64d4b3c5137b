package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litrato/infras/postgres"
)

func TestIsWriteContention(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: true},
		{name: "exclusion violation", err: &pq.Error{Code: "23P01"}, want: true},
		{name: "deadlock", err: &pq.Error{Code: "40P01"}, want: true},
		{name: "wrapped", err: fmt.Errorf("insert: %w", &pq.Error{Code: "40001"}), want: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgres.IsWriteContention(tt.err))
		})
	}
}

func newTransactor(t *testing.T) (postgres.Transactor, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return postgres.NewTransactor(&postgres.Connection{Write: sqlx.NewDb(db, "postgres")}), mock
}

const insertBooking = "INSERT INTO bookings (id) VALUES ($1)"

func insert(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, insertBooking, "b1")

	return err
}

func TestWithinSerializable_Isolation(t *testing.T) {
	assert.Equal(t, sql.LevelSerializable, postgres.SerializableTxOptions.Isolation)
	assert.False(t, postgres.SerializableTxOptions.ReadOnly)
}

func TestWithinSerializable(t *testing.T) {
	const lockKey = "package:p1:2026-11-20"

	boom := errors.New("boom")

	tests := []struct {
		name         string
		lockKey      string
		expect       func(mock sqlmock.Sqlmock)
		fn           func(ctx context.Context, tx *sqlx.Tx) error
		wantErr      error
		wantContains string
		wantRan      bool
	}{
		{
			name:    "locks, runs and commits",
			lockKey: lockKey,
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(postgres.AdvisoryLockQuery).WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(insertBooking).WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn:      insert,
			wantRan: true,
		},
		{
			name: "no lock without a key",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(insertBooking).WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn:      insert,
			wantRan: true,
		},
		{
			name:    "callback failure rolls back",
			lockKey: lockKey,
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(postgres.AdvisoryLockQuery).WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectRollback()
			},
			fn:      func(context.Context, *sqlx.Tx) error { return boom },
			wantErr: boom,
			wantRan: true,
		},
		{
			name:    "exclusion violation in the callback is contention",
			lockKey: lockKey,
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(postgres.AdvisoryLockQuery).WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(insertBooking).WithArgs("b1").WillReturnError(&pq.Error{Code: "23P01"})
				mock.ExpectRollback()
			},
			fn:      insert,
			wantErr: postgres.ErrWriteContention,
			wantRan: true,
		},
		{
			name:    "serialization failure at commit is contention",
			lockKey: lockKey,
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(postgres.AdvisoryLockQuery).WithArgs(lockKey).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(insertBooking).WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})
			},
			fn:      insert,
			wantErr: postgres.ErrWriteContention,
			wantRan: true,
		},
		{
			name:    "deadlock on the lock skips the callback",
			lockKey: lockKey,
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(postgres.AdvisoryLockQuery).WithArgs(lockKey).WillReturnError(&pq.Error{Code: "40P01"})
				mock.ExpectRollback()
			},
			fn:      insert,
			wantErr: postgres.ErrWriteContention,
		},
		{
			name:    "begin failure",
			lockKey: lockKey,
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			fn:           insert,
			wantContains: "failed to begin transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactor, mock := newTransactor(t)
			tt.expect(mock)

			ran := false
			err := transactor.WithinSerializable(context.Background(), tt.lockKey, func(ctx context.Context, tx *sqlx.Tx) error {
				ran = true

				require.NotNil(t, tx)

				return tt.fn(ctx, tx)
			})

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantContains != "":
				assert.ErrorContains(t, err, tt.wantContains)
			default:
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantRan, ran)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
