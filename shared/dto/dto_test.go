package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"litrato/shared/constant"
	"litrato/shared/dto"
	"litrato/shared/model"
	"litrato/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  created,
		ModifiedAt: created.Add(time.Hour),
		CreatedBy:  "c1",
		ModifiedBy: "staff-1",
	})

	assert.Equal(t, dto.Metadata{
		CreatedAt:  timezone.Format(created, constant.DateFormat),
		ModifiedAt: timezone.Format(created.Add(time.Hour), constant.DateFormat),
		CreatedBy:  "c1",
		ModifiedBy: "staff-1",
	}, metadata)

	metadata.FromModel(model.Metadata{CreatedAt: created, CreatedBy: "c1"})
	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:         "everything given",
			query:        "page=2&limit=20&sort_by=event_date&sort_dir=asc",
			withDefaults: true,
			want:         dto.QueryParams{Page: 2, Limit: 20, SortBy: "event_date", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "no defaults",
			query: "sort_dir=desc",
			want:  dto.QueryParams{SortDir: dto.SortDirDesc},
		},
		{
			name:         "garbage falls back",
			query:        "page=-1&limit=ten&sort_dir=sideways",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "limit capped",
			query: "limit=5000",
			want:  dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:  "sort column normalised",
			query: "sort_by=%20Event_Date%20",
			want:  dto.QueryParams{SortBy: "event_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params dto.QueryParams
			params.FromRequest(httptest.NewRequest("GET", "/v1/bookings?"+tt.query, nil), tt.withDefaults)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "accepted"}, Table: "booking_requests"},
			dto.Filter{Field: "venue", Operator: dto.FilterOperatorLike, Value: "Ballroom", Table: "booking_requests"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "notes", Operator: dto.FilterIsNull},
					dto.Filter{ArgName: "other", Field: "package_id", Operator: dto.FilterOperatorNotEq, Value: "p1"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t,
		"(booking_requests.status IN (:status_0, :status_1) AND LOWER(booking_requests.venue) LIKE LOWER(:venue) AND (notes IS NULL OR package_id != :other))",
		where,
	)
	assert.Equal(t, map[string]any{
		"status_0": "pending",
		"status_1": "accepted",
		"venue":    "%Ballroom%",
		"other":    "p1",
	}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	where, args := (&dto.FilterGroup{}).GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
