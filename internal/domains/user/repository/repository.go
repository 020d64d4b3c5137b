package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"litrato/infras/otel"
	"litrato/infras/postgres"
	"litrato/internal/domains/user/model"
	"litrato/shared"
	"litrato/shared/constant"
	gDto "litrato/shared/dto"
	gRepo "litrato/shared/repository"
)

// User has no Delete. Accounts are deactivated instead since booking rows
// reference them.
type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// GetByEmail matches case-insensitively. A zero User means no account.
func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (res model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByEmail")
	defer scope.End()
	defer scope.TraceIfError(&err)

	res, err = r.Get(ctx, shared.FilterByID(strings.ToLower(strings.TrimSpace(email)), model.FieldEmail, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get user by email: %w", err)
	}

	return res, nil
}
