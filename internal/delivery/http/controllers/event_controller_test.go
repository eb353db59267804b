package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickx/internal/delivery/http/helpers"
	"tickx/internal/domain"
)

// fakeCatalog is a canned CatalogService recording which operation ran.
type fakeCatalog struct {
	page       *domain.EventPage
	venuePage  *domain.VenuePage
	event      *domain.Event
	venue      *domain.Venue
	err        error
	lastOp     string
	lastSearch domain.SearchQuery
	lastQuery  domain.RangeQuery
}

func (f *fakeCatalog) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	f.lastOp = "GetEvent"
	return f.event, f.err
}

func (f *fakeCatalog) ListEventsByCity(ctx context.Context, city string, q domain.RangeQuery) (*domain.EventPage, error) {
	f.lastOp, f.lastQuery = "ListEventsByCity", q
	return f.page, f.err
}

func (f *fakeCatalog) ListEventsByCategory(ctx context.Context, category string, q domain.RangeQuery) (*domain.EventPage, error) {
	f.lastOp, f.lastQuery = "ListEventsByCategory", q
	return f.page, f.err
}

func (f *fakeCatalog) ListEventsByVenue(ctx context.Context, venueID string, q domain.RangeQuery) (*domain.EventPage, error) {
	f.lastOp, f.lastQuery = "ListEventsByVenue", q
	return f.page, f.err
}

func (f *fakeCatalog) SearchEvents(ctx context.Context, q domain.SearchQuery) (*domain.EventPage, error) {
	f.lastOp, f.lastSearch = "SearchEvents", q
	return f.page, f.err
}

func (f *fakeCatalog) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	f.lastOp = "GetVenue"
	return f.venue, f.err
}

func (f *fakeCatalog) ListVenuesByCity(ctx context.Context, city string, pageSize int, cursor string) (*domain.VenuePage, error) {
	f.lastOp = "ListVenuesByCity"
	return f.venuePage, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeData(t *testing.T, body io.Reader) helpers.DataResponse {
	t.Helper()
	var resp helpers.DataResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, body io.Reader) helpers.ErrorResponse {
	t.Helper()
	var resp helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestListEvents_ByCity(t *testing.T) {
	catalog := &fakeCatalog{page: &domain.EventPage{
		Events:  []*domain.Event{{ID: "ev-1", Name: "Show"}},
		HasMore: true,
		Cursor:  "next-token",
	}}
	ctrl := NewEventController(testLogger(), catalog)

	req := httptest.NewRequest(http.MethodGet,
		"/events?city=Chicago&dateFrom=2025-07-01&pageSize=5", nil)
	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ListEventsByCity", catalog.lastOp)
	assert.Equal(t, "2025-07-01", catalog.lastQuery.DateFrom)
	assert.Equal(t, 5, catalog.lastQuery.PageSize)

	resp := decodeData(t, rec.Body)
	require.NotNil(t, resp.Pagination)
	assert.True(t, resp.Pagination.HasMore)
	assert.Equal(t, "next-token", resp.Pagination.Cursor)
}

func TestListEvents_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		target string
		wantOp string
	}{
		{"category", "/events?category=concert", "ListEventsByCategory"},
		{"venue", "/events?venueId=v-1", "ListEventsByVenue"},
		{"keyword", "/events?keyword=rock", "SearchEvents"},
		{"keyword wins over city", "/events?keyword=rock&city=Chicago", "SearchEvents"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{page: &domain.EventPage{}}
			ctrl := NewEventController(testLogger(), catalog)

			rec := httptest.NewRecorder()
			ctrl.ListEvents(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOp, catalog.lastOp)
		})
	}
}

func TestListEvents_KeywordCarriesFilters(t *testing.T) {
	catalog := &fakeCatalog{page: &domain.EventPage{}}
	ctrl := NewEventController(testLogger(), catalog)

	req := httptest.NewRequest(http.MethodGet,
		"/events?keyword=rock&city=Chicago&category=concert&pageSize=7", nil)
	ctrl.ListEvents(httptest.NewRecorder(), req)

	assert.Equal(t, domain.SearchQuery{
		Keyword:  "rock",
		City:     "Chicago",
		Category: "concert",
		PageSize: 7,
	}, catalog.lastSearch)
}

func TestListEvents_MissingFilter(t *testing.T) {
	ctrl := NewEventController(testLogger(), &fakeCatalog{})

	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, helpers.ErrCodeBadRequest, decodeError(t, rec.Body).Error)
}

func TestListEvents_StoreErrorReturnsEmptyPage(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("query failed")}
	ctrl := NewEventController(testLogger(), catalog)

	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, httptest.NewRequest(http.MethodGet, "/events?city=Chicago", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeData(t, rec.Body)
	assert.Empty(t, resp.Data)
	require.NotNil(t, resp.Pagination)
	assert.False(t, resp.Pagination.HasMore)
}

func TestGetEventByID(t *testing.T) {
	catalog := &fakeCatalog{event: &domain.Event{ID: "ev-1", Name: "Show"}}
	ctrl := NewEventController(testLogger(), catalog)

	req := httptest.NewRequest(http.MethodGet, "/events/ev-1", nil)
	req.SetPathValue("eventID", "ev-1")
	rec := httptest.NewRecorder()
	ctrl.GetEventByID(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body).Data.(map[string]any)
	assert.Equal(t, "ev-1", data["id"])
}

func TestGetEventByID_NotFound(t *testing.T) {
	catalog := &fakeCatalog{err: domain.ErrNotFound}
	ctrl := NewEventController(testLogger(), catalog)

	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	req.SetPathValue("eventID", "missing")
	rec := httptest.NewRecorder()
	ctrl.GetEventByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, helpers.ErrCodeNotFound, decodeError(t, rec.Body).Error)
}
