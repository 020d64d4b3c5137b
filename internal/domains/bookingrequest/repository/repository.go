package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"litrato/infras/otel"
	"litrato/infras/postgres"
	"litrato/internal/domains/bookingrequest/model"
	gDto "litrato/shared/dto"
	gRepo "litrato/shared/repository"

	"github.com/jmoiron/sqlx"
)

type BookingRequest interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.BookingRequest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.BookingRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRequest, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BookingRequest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) BookingRequest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BookingRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
