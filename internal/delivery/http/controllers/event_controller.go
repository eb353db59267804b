package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"tickx/internal/delivery/http/helpers"
	"tickx/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Catalog domain.CatalogService
}

func NewEventController(logger *slog.Logger, catalog domain.CatalogService) *EventController {
	return &EventController{
		Logger:  logger,
		Catalog: catalog,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Lists events by one of: city, category, venueId, or keyword. Date bounds default to today through the far future. Keyword search is an interim linear scan and does not return a cursor.
// @Tags events
// @Produce json
// @Param city query string false "City name (e.g. Chicago)"
// @Param category query string false "Category (concert|sports|theater|festival|comedy|other)"
// @Param venueId query string false "Venue ID"
// @Param keyword query string false "Keyword to search name, attractions, genre, and venue"
// @Param dateFrom query string false "Lower date bound (YYYY-MM-DD, default today)"
// @Param dateTo query string false "Upper date bound (YYYY-MM-DD)"
// @Param pageSize query int false "Page size (max 100, default 20)"
// @Param cursor query string false "Opaque cursor from the previous page"
// @Success 200 {object} helpers.DataResponse "data contains the event list"
// @Failure 400 {object} helpers.ErrorResponse "error: bad_request"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if keyword := query.Get("keyword"); keyword != "" {
		page, err := c.Catalog.SearchEvents(r.Context(), domain.SearchQuery{
			Keyword:  keyword,
			City:     query.Get("city"),
			Category: query.Get("category"),
			PageSize: helpers.ParsePageSize(r),
		})
		c.writeEventPage(w, r, page, err)
		return
	}

	q := helpers.ParseRangeQuery(r)
	switch {
	case query.Get("city") != "":
		page, err := c.Catalog.ListEventsByCity(r.Context(), query.Get("city"), q)
		c.writeEventPage(w, r, page, err)
	case query.Get("category") != "":
		page, err := c.Catalog.ListEventsByCategory(r.Context(), query.Get("category"), q)
		c.writeEventPage(w, r, page, err)
	case query.Get("venueId") != "":
		page, err := c.Catalog.ListEventsByVenue(r.Context(), query.Get("venueId"), q)
		c.writeEventPage(w, r, page, err)
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			"one of city, category, venueId, or keyword is required")
	}
}

// writeEventPage writes a paginated event response. Store errors collapse to
// an empty page rather than surfacing internals to clients.
func (c *EventController) writeEventPage(w http.ResponseWriter, r *http.Request, page *domain.EventPage, err error) {
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "event query failed", "path", r.URL.Path, "err", err)
		helpers.WriteJSONPage(w, http.StatusOK, []*domain.Event{}, false, "")
		return
	}
	helpers.WriteJSONPage(w, http.StatusOK, page.Events, page.HasMore, page.Cursor)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.DataResponse "data contains the event"
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Catalog.GetEvent(r.Context(), eventID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.Logger.ErrorContext(r.Context(), "get event failed", "event_id", eventID, "err", err)
		}
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
