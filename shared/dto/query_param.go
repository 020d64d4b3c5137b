package dto

import (
	"net/http"
	"strconv"
	"strings"

	"litrato/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries list paging and ordering. SortBy is only honoured by
// the repository when it names a column of the listed table.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Values that do not
// parse are ignored and limit is capped at constant.MaxValueLimit. With
// withDefaults, a missing page or limit falls back to the first page of
// constant.DefaultValueLimit rows.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	q.Page = positive(values.Get(constant.RequestParamPage), q.Page)
	q.Limit = min(positive(values.Get(constant.RequestParamLimit), q.Limit), constant.MaxValueLimit)

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = strings.ToLower(sortBy)
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
