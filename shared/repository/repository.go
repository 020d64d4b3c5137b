package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"litrato/infras/otel"
	"litrato/infras/postgres"
	"litrato/shared/constant"
	"litrato/shared/dto"
	"litrato/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errEmptyUpdate    = errors.New("nothing to update")
	errUnknownColumn  = errors.New("unknown column")
)

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type namedPreparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is the sqlx plumbing shared by every table. T must be a struct
// whose db tags name its columns.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columnsOf(reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

func (repo *Repository[T]) fail(scope otel.Scope, err error, action string) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.scope(ctx, "insert")
	defer scope.End()

	placeholders := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, err, "insert data")
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false
	if err := repo.queryRow(ctx, repo.db.Read, query, &exist, args); err != nil {
		return false, repo.fail(scope, err, "check exist data")
	}

	return exist, nil
}

func (repo *Repository[T]) get(ctx context.Context, preparer namedPreparer, filter dto.FilterGroup, lock bool, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "get")
	defer scope.End()

	where, args := whereClause(filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s", repo.selectList(columns), repo.table, where)
	if lock {
		query += " FOR UPDATE"
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	err := repo.queryRow(ctx, preparer, query, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, err, "get data")
	}

	return model, nil
}

// Get returns the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, filter, false, columns...)
}

// GetForUpdateTx reads one row inside sqltx and locks it until the
// transaction ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, filter, true, columns...)
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := whereClause(filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns), repo.table, where, repo.orderBy(params))

	if params.Limit > 0 {
		args["limit"] = params.Limit
		query += " LIMIT :limit"

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			query += " OFFSET :offset"
		}
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, err, "prepare statement")
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, err, "get all data")
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := whereClause(filter)

	query := fmt.Sprintf("SELECT COUNT(%s) FROM %s %s", repo.primaryColumn, repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int
	if err := repo.queryRow(ctx, repo.db.Read, query, &count, args); err != nil {
		return 0, repo.fail(scope, err, "count data")
	}

	return count, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, err, "delete data")
	}

	return nil
}

// update writes fields to every row the filter matches. Field names must be
// columns of T and the filter must not be empty.
func (repo *Repository[T]) update(ctx context.Context, exec execer, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "update")
	defer scope.End()

	if len(fields) == 0 {
		return errEmptyUpdate
	}

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if !slices.Contains(repo.columns, name) {
			return fmt.Errorf("%w: %s.%s", errUnknownColumn, repo.table, name)
		}

		names = append(names, name)
	}

	slices.Sort(names)

	set := make([]string, len(names))
	for i, name := range names {
		set[i] = name + " = :set_" + name
		args["set_"+name] = fields[name]
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(set, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, err, "update data")
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, fields, filter)
}

func (repo *Repository[T]) queryRow(ctx context.Context, preparer namedPreparer, query string, dest any, args map[string]any) error {
	prepare, err := preparer.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer prepare.Close()

	return prepare.GetContext(ctx, dest, args) //nolint:wrapcheck
}

// selectList keeps the requested columns that T actually has, or all of them.
func (repo *Repository[T]) selectList(requested []string) string {
	if len(requested) == 0 {
		return strings.Join(repo.columns, ", ")
	}

	picked := make([]string, 0, len(requested))
	for _, col := range repo.columns {
		if slices.Contains(requested, col) {
			picked = append(picked, col)
		}
	}

	return strings.Join(picked, ", ")
}

// orderBy only sorts by a column of T. Anything else falls back to
// created_at, newest first, when T has that column.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	if params.SortBy != "" && slices.Contains(repo.columns, params.SortBy) {
		dir := dto.SortDirAsc
		if params.SortDir == dto.SortDirDesc {
			dir = dto.SortDirDesc
		}

		return fmt.Sprintf("ORDER BY %s %s, %s", params.SortBy, dir, repo.primaryColumn)
	}

	if slices.Contains(repo.columns, constant.DefaultValueSortBy) {
		return fmt.Sprintf("ORDER BY %s %s, %s", constant.DefaultValueSortBy, dto.SortDirDesc, repo.primaryColumn)
	}

	return "ORDER BY " + repo.primaryColumn
}

func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

// columnsOf walks the db tags of t, descending into embedded structs such as
// the audit metadata.
func columnsOf(t reflect.Type) []string {
	var columns []string

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, columnsOf(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
