package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litrato/infras/otel/mocks"
	"litrato/infras/postgres"
	"litrato/shared/dto"
	"litrato/shared/model"
)

type row struct {
	ID      string `db:"id"`
	Status  string `db:"status"`
	Scratch string `db:"-"`
	Label   string
	model.Metadata
}

type bare struct {
	Code string `db:"code"`
}

func newRow() Repository[row] {
	return NewRepository[row]("row", "rows", "id", &postgres.Connection{}, mocks.NewOtel())
}

func TestColumnsOf(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "status", "created_at", "modified_at", "created_by", "modified_by"},
		newRow().columns,
	)
}

func TestOrderBy(t *testing.T) {
	repo := newRow()

	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{"known column", dto.QueryParams{SortBy: "status", SortDir: dto.SortDirDesc}, "ORDER BY status DESC, id"},
		{"direction defaults to ascending", dto.QueryParams{SortBy: "status"}, "ORDER BY status ASC, id"},
		{"unknown column falls back", dto.QueryParams{SortBy: "status; DROP TABLE rows", SortDir: dto.SortDirAsc}, "ORDER BY created_at DESC, id"},
		{"nothing requested", dto.QueryParams{}, "ORDER BY created_at DESC, id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.orderBy(tt.params))
		})
	}

	t.Run("no created_at column", func(t *testing.T) {
		repo := NewRepository[bare]("bare", "bares", "code", &postgres.Connection{}, mocks.NewOtel())
		assert.Equal(t, "ORDER BY code", repo.orderBy(dto.QueryParams{}))
	})
}

func TestSelectList(t *testing.T) {
	repo := newRow()

	assert.Equal(t, "id, status", repo.selectList([]string{"status", "id", "password"}))
	assert.Contains(t, repo.selectList(nil), "modified_by")
}

func TestUpdate_RefusesBeforeTouchingTheDatabase(t *testing.T) {
	repo := newRow()
	byID := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: "r1"}},
	}

	err := repo.Update(context.Background(), map[string]any{}, byID)
	require.ErrorIs(t, err, errEmptyUpdate)

	err = repo.Update(context.Background(), map[string]any{"status": "done"}, dto.FilterGroup{})
	require.ErrorIs(t, err, errRequiredFilter)

	err = repo.Update(context.Background(), map[string]any{"label": "x"}, byID)
	require.ErrorIs(t, err, errUnknownColumn)
}
