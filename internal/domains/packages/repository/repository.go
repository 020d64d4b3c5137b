package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"litrato/infras/otel"
	"litrato/infras/postgres"
	"litrato/internal/domains/packages/model"
	gDto "litrato/shared/dto"
	gRepo "litrato/shared/repository"
)

type Package interface {
	Insert(ctx context.Context, model model.Package) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Package, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Package, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Package]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Package {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Package](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
