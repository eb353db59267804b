package helpers

import (
	"net/http"
	"strconv"
	"time"

	"tickx/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePageSize reads pageSize from the query string and clamps it to
// [1, MaxPageSize]. Invalid or missing values fall back to the default.
func ParsePageSize(r *http.Request) int {
	pageSize := DefaultPageSize
	if s := r.URL.Query().Get("pageSize"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = v
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}
	return pageSize
}

// ParseRangeQuery reads dateFrom, dateTo, cursor, and pageSize from the query
// string. Malformed dates are dropped so the store applies its defaults
// (today through the far-future sentinel).
func ParseRangeQuery(r *http.Request) domain.RangeQuery {
	return domain.RangeQuery{
		DateFrom: parseISODate(r.URL.Query().Get("dateFrom")),
		DateTo:   parseISODate(r.URL.Query().Get("dateTo")),
		PageSize: ParsePageSize(r),
		Cursor:   r.URL.Query().Get("cursor"),
	}
}

func parseISODate(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}
