package shared

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"litrato/shared/cache"
	"litrato/shared/constant"
	"litrato/shared/dto"
	"litrato/shared/failure"
	"litrato/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) (int, error) {
	res, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to convert %q to int: %w", value, err)
	}

	return res, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields turns the non-zero db-tagged fields of a patch request into
// column values and stamps the modification audit columns.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// DateRangeFilters bounds a DATE column by the optional from and to query
// values, both inclusive and formatted as YYYY-MM-DD.
func DateRangeFilters(field, table, from, to string) ([]any, error) {
	bounds := []struct {
		value    string
		arg      string
		operator string
	}{
		{from, field + "_from", dto.FilterOperatorGreaterEq},
		{to, field + "_to", dto.FilterOperatorLessEq},
	}

	filters := []any{}

	for _, bound := range bounds {
		if bound.value == "" {
			continue
		}

		if _, err := timezone.Parse(constant.DayFormat, bound.value); err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("%s must be a date formatted as YYYY-MM-DD", bound.arg))
		}

		filters = append(filters, dto.Filter{
			ArgName:  bound.arg,
			Field:    field,
			Operator: bound.operator,
			Value:    bound.value,
			Table:    table,
		})
	}

	if len(filters) == 2 && from > to {
		return nil, failure.BadRequestFromString(field + "_from must not be after " + field + "_to")
	}

	return filters, nil
}

// BuildCacheKey joins a prefix and its parts into a redis key.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from list parameters. Filter
// arguments are sorted so equivalent filters share a key.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, fmt.Sprintf("%s=%v", key, args[key]))
	}

	return BuildCacheKey(
		prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		where,
		strings.Join(values, "&"),
	)
}

// InvalidateCaches drops every key under prefix. Failures are only logged.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
