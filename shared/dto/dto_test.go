package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"cowork/shared/constant"
	"cowork/shared/dto"
	"cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_FromModel(t *testing.T) {
	timezone.SetLocation(time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
		ModifiedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		CreatedBy:  "user-1",
		ModifiedBy: "admin-1",
	})

	assert.Equal(t, dto.Metadata{
		CreatedAt:  "2026-10-18T09:00:00Z",
		ModifiedAt: "2026-10-19T09:00:00Z",
		CreatedBy:  "user-1",
		ModifiedBy: "admin-1",
	}, metadata)

	metadata.FromModel(model.Metadata{CreatedBy: "system"})
	assert.Equal(t, dto.Metadata{CreatedBy: "system"}, metadata)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		paginate bool
		want     dto.QueryParams
	}{
		{
			name:  "all values",
			query: "page=2&limit=20&sort_by=start_date&sort_dir=asc",
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_date", SortDir: dto.SortDirAsc},
		},
		{
			name:     "defaults when paginating",
			paginate: true,
			want:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name: "nothing without pagination",
			want: dto.QueryParams{},
		},
		{
			name:     "invalid numbers fall back",
			query:    "page=-1&limit=ten",
			paginate: true,
			want:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			paginate: true,
			want:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:  "qualified column with default direction",
			query: "sort_by=Bookings.Created_At",
			want:  dto.QueryParams{SortBy: "bookings.created_at", SortDir: constant.DefaultValueSortDir},
		},
		{
			name:  "injected sort column is dropped",
			query: "sort_by=created_at%3BDROP%20TABLE%20users&sort_dir=DESC",
			want:  dto.QueryParams{SortDir: dto.SortDirDesc},
		},
		{
			name:  "unknown direction is dropped",
			query: "sort_dir=sideways",
			want:  dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings/?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.paginate)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq",
			filter:    dto.Filter{Field: "status", Value: "Pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "Pending"},
		},
		{
			name:      "not eq with arg name",
			filter:    dto.Filter{ArgName: "avail", Field: "availability", Value: "Available", Operator: dto.FilterOperatorNotEq},
			wantWhere: "availability != :avail",
			wantArgs:  map[string]any{"avail": "Available"},
		},
		{
			name:      "like",
			filter:    dto.Filter{Field: "space_name", Value: "Cabin", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(space_name) LIKE LOWER(:space_name)",
			wantArgs:  map[string]any{"space_name": "%Cabin%"},
		},
		{
			name:      "in",
			filter:    dto.Filter{Field: "status", Value: []string{"Pending", "Confirm"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "Pending", "status_1": "Confirm"},
		},
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with a single value",
			filter:    dto.Filter{Field: "status", Value: "Pending", Operator: dto.FilterOperatorIn, Table: "bookings"},
			wantWhere: "bookings.status IN (:status_0)",
			wantArgs:  map[string]any{"status_0": "Pending"},
		},
		{
			name:      "greater or equal",
			filter:    dto.Filter{Field: "booking_date", Value: "2030-03-01", Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "booking_date >= :booking_date",
			wantArgs:  map[string]any{"booking_date": "2030-03-01"},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "notice_submitted_date", Operator: dto.FilterIsNull, Table: "bookings"},
			wantWhere: "bookings.notice_submitted_date IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "space_id", Value: "space-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "pending", Field: "status", Value: "Pending", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "confirmed", Field: "status", Value: "Confirm", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(space_id = :space_id AND (status = :pending OR status = :confirmed))", where)
	assert.Equal(t, map[string]any{"space_id": "space-1", "pending": "Pending", "confirmed": "Confirm"}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestFromQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/bookings/?status=Pending&space_id=%20&ignored=x", nil)

	group := dto.FromQuery(req, "bookings", "status", "space_id")
	require.Len(t, group.Filters, 1)

	where, args := group.GetWhereClause()
	assert.Equal(t, "(bookings.status = :status)", where)
	assert.Equal(t, "Pending", args["status"])

	assert.Empty(t, dto.FromQuery(httptest.NewRequest("GET", "/", nil), "bookings", "status").Filters)
}
