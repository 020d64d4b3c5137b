package dto

import (
	"fmt"
	"maps"
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

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one predicate of a WHERE clause. Values always travel as named
// arguments. ArgName defaults to Field and must be set when two filters
// touch the same column.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	arg := f.ArgName
	if arg == "" {
		arg = f.Field
	}

	if op, ok := comparisons[f.Operator]; ok {
		args[arg] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, arg), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[arg] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, arg), args
	case FilterOperatorIn:
		values := reflect.ValueOf(f.Value)
		if values.Kind() != reflect.Slice && values.Kind() != reflect.Array {
			args[arg] = f.Value

			return fmt.Sprintf("%s IN (:%s)", column, arg), args
		}

		if values.Len() == 0 {
			return "FALSE", args
		}

		named := make([]string, values.Len())

		for i := range values.Len() {
			name := fmt.Sprintf("%s_%d", arg, i)
			args[name] = values.Index(i).Interface()
			named[i] = ":" + name
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// FilterGroup joins Filters, which may be Filter or nested FilterGroup
// values, with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := []string{}

	for _, item := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch filter := item.(type) {
		case Filter:
			where, arg = filter.GetWhereClause()
		case FilterGroup:
			where, arg = filter.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return "(" + strings.Join(clauses, " "+f.Operator+" ") + ")", args
}
