package dto

import (
	"fmt"
	"maps"
	"net/http"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// comparisons maps the binary operators onto their SQL form.
var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one predicate on a column. Table qualifies the column for joined queries,
// ArgName disambiguates two predicates on the same column.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, name := f.column(), f.argName()

	if sign, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", column, sign, name), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[name] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), args
	case FilterOperatorIn:
		values := listOf(f.Value)
		if len(values) == 0 {
			return "FALSE", args
		}

		placeholders := make([]string, len(values))

		for idx, value := range values {
			key := fmt.Sprintf("%s_%d", name, idx)
			args[key] = value
			placeholders[idx] = ":" + key
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// listOf flattens a slice or array value; anything else is a single-element list.
func listOf(value any) []any {
	val := reflect.ValueOf(value)

	switch val.Kind() {
	case reflect.Array, reflect.Slice:
		items := make([]any, val.Len())
		for idx := range val.Len() {
			items[idx] = val.Index(idx).Interface()
		}

		return items
	case reflect.Invalid:
		return nil
	default:
		return []any{value}
	}
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		switch fill := filter.(type) {
		case Filter:
			where, arg := fill.GetWhereClause()
			whereClause = append(whereClause, where)

			maps.Copy(args, arg)
		case FilterGroup:
			where, arg := fill.GetWhereClause()
			whereClause = append(whereClause, where)

			maps.Copy(args, arg)
		}
	}

	if len(whereClause) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+operator+" ")), args
}

// FromQuery builds an AND group of equality filters from the request query, one per field
// that is present. Absent fields add nothing.
func FromQuery(r *http.Request, table string, fields ...string) FilterGroup {
	group := FilterGroup{Operator: FilterGroupOperatorAnd, Filters: []any{}}
	query := r.URL.Query()

	for _, field := range fields {
		value := strings.TrimSpace(query.Get(field))
		if value == "" {
			continue
		}

		group.Filters = append(group.Filters, Filter{Field: field, Value: value, Operator: FilterOperatorEq, Table: table})
	}

	return group
}
