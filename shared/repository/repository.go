package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/shared/constant"
	"rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/logger"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter   = errors.New("required filter")
	errRequiredConflict = errors.New("required conflict columns")
	errRequiredFields   = errors.New("required update fields")
)

type column struct {
	name  string
	table string
	alias string
}

// expr renders the column for a SELECT list.
func (c column) expr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return c.table + "." + c.name + " AS " + c.alias
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// joiner is implemented by models whose reads need a JOIN, e.g. to pull the unit name.
type joiner interface {
	GetJoinQuery() string
}

// Repository is the table gateway embedded by every domain repository. Reads go to the
// read pool, writes to the write pool or to the caller's transaction for the *Tx variants.
// Columns come from `db` tags; `table` and `column` tags pull joined columns under an alias.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) trace(ctx context.Context, operation, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+operation)
	if query != "" {
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	}

	return ctx, scope
}

// unmatched reports read errors that only mean no row can match, such as a malformed uuid in the filter.
func unmatched(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || postgres.IsInvalidText(err)
}

func (repo *Repository[T]) fail(scope otel.Scope, operation string, err error) error {
	if postgres.IsInvalidText(err) {
		scope.TraceError(err)

		return failure.BadRequestFromString(fmt.Sprintf("invalid %s value", repo.entity))
	}

	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", operation, repo.entity, err)
}

// query binds named args and returns the driver-ready statement for the read pool.
func (repo *Repository[T]) query(query string, args map[string]any) (string, []any, error) {
	bound, values, err := sqlx.Named(query, args)
	if err != nil {
		return "", nil, fmt.Errorf("failed to bind query: %w", err)
	}

	return repo.db.Read.Rebind(bound), values, nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, "Insert", repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, "InsertTx", sqltx, model)
}

func (repo *Repository[T]) insert(ctx context.Context, operation string, exec execer, model T) error {
	query := repo.insertQuery()

	ctx, scope := repo.trace(ctx, operation, query)
	defer scope.End()

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

// Upsert inserts model or, when a row already holds the same conflict columns, rewrites
// the update columns plus the modification metadata.
func (repo *Repository[T]) Upsert(ctx context.Context, model T, conflict []string, update ...string) error {
	if len(conflict) == 0 {
		return fmt.Errorf("upsert %s: %w", repo.entity, errRequiredConflict)
	}

	query := repo.upsertQuery(conflict, update)

	ctx, scope := repo.trace(ctx, "Upsert", query)
	defer scope.End()

	if _, err := repo.db.Write.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "upsert data", err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	statement := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	ctx, scope := repo.trace(ctx, "Exist", statement)
	defer scope.End()

	query, values, err := repo.query(statement, args)
	if err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	exist := false
	if err = repo.db.Read.GetContext(ctx, &exist, query, values...); err != nil {
		if unmatched(err) {
			return false, nil
		}

		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the first matching row, or the zero value when nothing matches or the filter
// holds a value postgres cannot cast, so callers answer NotFound for a malformed id.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	statement := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where)

	ctx, scope := repo.trace(ctx, "Get", statement)
	defer scope.End()

	query, values, err := repo.query(statement, args)
	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	err = repo.db.Read.GetContext(ctx, &model, query, values...)
	if unmatched(err) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// GetAll pages with LIMIT/OFFSET when both page and limit are set, LIMIT only when just
// limit is set, and returns every row otherwise. SortBy must come from an allow-list.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.BuildWhereClause(ctx, filter)

	parts := []string{
		"SELECT " + repo.getSelectQuery(ctx, columns...),
		"FROM " + repo.table,
		repo.join,
		where,
	}

	if params.SortBy != "" && params.SortDir != "" {
		parts = append(parts, "ORDER BY "+params.SortBy+" "+params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		parts = append(parts, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			parts = append(parts, "OFFSET :offset")
		}
	}

	statement := strings.Join(parts, " ")

	ctx, scope := repo.trace(ctx, "GetAll", statement)
	defer scope.End()

	models := []T{}

	query, values, err := repo.query(statement, args)
	if err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	if err = repo.db.Read.SelectContext(ctx, &models, query, values...); err != nil {
		if unmatched(err) {
			return []T{}, nil
		}

		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	statement := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	ctx, scope := repo.trace(ctx, "Count", statement)
	defer scope.End()

	query, values, err := repo.query(statement, args)
	if err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	var count int
	if err = repo.db.Read.GetContext(ctx, &count, query, values...); err != nil {
		if unmatched(err) {
			return 0, nil
		}

		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, "Delete", repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, "DeleteTx", sqltx, filter)
}

func (repo *Repository[T]) delete(ctx context.Context, operation string, exec execer, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)

	ctx, scope := repo.trace(ctx, operation, query)
	defer scope.End()

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, "Update", repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, "UpdateTx", sqltx, mod, filter)
}

func (repo *Repository[T]) update(ctx context.Context, operation string, exec execer, mod map[string]any, filter dto.FilterGroup) error {
	if len(mod) == 0 {
		return fmt.Errorf("update %s: %w", repo.entity, errRequiredFields)
	}

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := repo.updateQuery(mod, where)

	ctx, scope := repo.trace(ctx, operation, query)
	defer scope.End()

	maps.Copy(args, mod)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

func (repo *Repository[T]) updateQuery(mod map[string]any, where string) string {
	sets := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		sets = append(sets, col+" = :"+col)
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where)
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, 0, len(repo.InsertColumns))
	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) upsertQuery(conflict, update []string) string {
	sets := make([]string, 0, len(update)+2)
	for _, col := range append(slices.Clone(update), constant.FieldModifiedAt, constant.FieldModifiedBy) {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s", repo.insertQuery(), strings.Join(conflict, ", "), strings.Join(sets, ", "))
}

// getSelectQuery lists every mapped column, or only those named in only.
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

	return "WHERE " + where, args
}

// getColumns walks db tags, descending into embedded structs such as the shared metadata.
// Only columns owned by table are inserted; joined columns are read only.
func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsert := getColumns(table, field.Type)
			columns = append(columns, nested...)
			insertColumns = append(insertColumns, nestedInsert...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertColumns
}
