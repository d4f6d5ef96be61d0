// Package repository is a generic sqlx table gateway. Columns come from the
// model's db tags; a `table` tag marks a joined column and a `column` tag
// selects a differently named source column under the db alias. Models that
// need a JOIN expose it through a GetJoinQuery method.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/shared/constant"
	"cowork/shared/dto"
	"cowork/shared/logger"

	"github.com/jmoiron/sqlx"
)

const setArgPrefix = "set_"

var errRequiredFilter = errors.New("required filter")

// ErrNoRowsAffected is returned by the strict updates when the filter matched no row.
var ErrNoRowsAffected = errors.New("no rows affected")

type column struct {
	name  string
	table string
	alias string
}

func (c column) expr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	join          string
	insertSQL     string
	InsertColumns []string
}

type joiner interface {
	GetJoinQuery() string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	placeholders := make([]string, len(insertColumns))
	for i, col := range insertColumns {
		placeholders[i] = ":" + col
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		insertSQL:     fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, strings.Join(insertColumns, ", "), strings.Join(placeholders, ", ")),
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) span(ctx context.Context, op, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, op))
	if query != "" {
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	}

	return ctx, scope
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entitas, err)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, model)
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.span(ctx, "Insert", repo.insertSQL)
	defer scope.End()

	if _, err := exec.NamedExecContext(ctx, repo.insertSQL, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	return repo.insertBulk(ctx, repo.db.Write, models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	return repo.insertBulk(ctx, sqltx, models)
}

// insertBulk relies on sqlx expanding a slice argument into a multi-row VALUES list.
func (repo *Repository[T]) insertBulk(ctx context.Context, exec execer, models []T) error {
	if len(models) == 0 {
		return nil
	}

	ctx, scope := repo.span(ctx, "InsertBulk", repo.insertSQL)
	defer scope.End()

	if _, err := exec.NamedExecContext(ctx, repo.insertSQL, models); err != nil {
		return repo.fail(scope, "bulk insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	ctx, scope := repo.span(ctx, "Exist", query)
	defer scope.End()

	var exist bool
	if err := repo.readOne(ctx, query, args, &exist); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the zero model when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where)

	ctx, scope := repo.span(ctx, "Get", query)
	defer scope.End()

	var model T

	err := repo.readOne(ctx, query, args, &model)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.BuildWhereClause(ctx, filter)

	var ordering, pagination string

	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	switch {
	case params.Page > 0 && params.Limit > 0:
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit
		pagination = "LIMIT :limit OFFSET :offset"
	case params.Limit > 0:
		args["limit"] = params.Limit
		pagination = "LIMIT :limit"
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s", repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where, ordering, pagination)

	ctx, scope := repo.span(ctx, "GetAll", query)
	defer scope.End()

	var models []T

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	ctx, scope := repo.span(ctx, "Count", query)
	defer scope.End()

	var count int
	if err := repo.readOne(ctx, query, args, &count); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) readOne(ctx context.Context, query string, args map[string]any, dest any) error {
	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer prepare.Close()

	return prepare.GetContext(ctx, dest, args) //nolint:wrapcheck
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, filter)
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)

	ctx, scope := repo.span(ctx, "Delete", query)
	defer scope.End()

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, repo.db.Write, mod, filter)

	return err
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, sqltx, mod, filter)

	return err
}

// UpdateStrict is Update that fails with ErrNoRowsAffected when nothing matched. Filtering on
// the expected current status turns it into a compare-and-set.
func (repo *Repository[T]) UpdateStrict(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.updateStrict(ctx, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateStrictTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.updateStrict(ctx, sqltx, mod, filter)
}

func (repo *Repository[T]) updateStrict(ctx context.Context, exec execer, mod map[string]any, filter dto.FilterGroup) error {
	affected, err := repo.update(ctx, exec, mod, filter)
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("failed to update data (%s): %w", repo.entitas, ErrNoRowsAffected)
	}

	return nil
}

// update binds SET values under a prefix so they never collide with filter arguments.
func (repo *Repository[T]) update(ctx context.Context, exec execer, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	cols := make([]string, 0, len(mod))
	for col := range mod {
		cols = append(cols, col)
	}

	slices.Sort(cols)

	sets := make([]string, len(cols))
	for idx, col := range cols {
		sets[idx] = fmt.Sprintf("%s = :%s%s", col, setArgPrefix, col)
		args[setArgPrefix+col] = mod[col]
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where)

	ctx, scope := repo.span(ctx, "Update", query)
	defer scope.End()

	result, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return 0, repo.fail(scope, "update data", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "count updated rows", err)
	}

	return affected, nil
}

// GetTx reads a single row inside a transaction, optionally locking it with FOR UPDATE.
func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, forUpdate bool) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return model, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s", repo.getSelectQuery(ctx), repo.table, where)
	if forUpdate {
		query += " FOR UPDATE"
	}

	ctx, scope := repo.span(ctx, "GetTx", query)
	defer scope.End()

	bound, values, err := sqlx.Named(query, args)
	if err != nil {
		return model, fmt.Errorf("failed to bind query (%s): %w", repo.entitas, err)
	}

	err = sqltx.GetContext(ctx, &model, sqltx.Rebind(bound), values...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// GetAllTx lists rows inside a transaction so reads observe locks taken earlier in it.
func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) ([]T, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s", repo.getSelectQuery(ctx), repo.table, where)

	ctx, scope := repo.span(ctx, "GetAllTx", query)
	defer scope.End()

	bound, values, err := sqlx.Named(query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to bind query (%s): %w", repo.entitas, err)
	}

	var models []T
	if err = sqltx.SelectContext(ctx, &models, sqltx.Rebind(bound), values...); err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

// getSelectQuery lists every mapped column, or only the named ones when given.
func (repo *Repository[T]) getSelectQuery(_ context.Context, only ...string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.expr())
	}

	return strings.Join(exprs, ", ")
}

func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		source := field.Tag.Get("table")
		if source == "" {
			source = table
		}

		if source == table {
			insertColumns = append(insertColumns, name)
		}

		if alias := field.Tag.Get("column"); alias != "" {
			columns = append(columns, column{name: alias, table: source, alias: name})
		} else {
			columns = append(columns, column{name: name, table: source})
		}
	}

	return columns, insertColumns
}
