package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"tickx/internal/delivery/http/helpers"
	"tickx/internal/domain"
)

type VenueController struct {
	Logger  *slog.Logger
	Catalog domain.CatalogService
}

func NewVenueController(logger *slog.Logger, catalog domain.CatalogService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Catalog: catalog,
	}
}

// ListVenues godoc
// @Summary List venues in a city
// @Tags venues
// @Produce json
// @Param city query string true "City name (e.g. Chicago)"
// @Param pageSize query int false "Page size (max 100, default 20)"
// @Param cursor query string false "Opaque cursor from the previous page"
// @Success 200 {object} helpers.DataResponse "data contains the venue list"
// @Failure 400 {object} helpers.ErrorResponse "error: bad_request"
// @Router /venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "city is required")
		return
	}
	page, err := c.Catalog.ListVenuesByCity(r.Context(), city,
		helpers.ParsePageSize(r), r.URL.Query().Get("cursor"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "venue query failed", "city", city, "err", err)
		helpers.WriteJSONPage(w, http.StatusOK, []*domain.Venue{}, false, "")
		return
	}
	helpers.WriteJSONPage(w, http.StatusOK, page.Venues, page.HasMore, page.Cursor)
}

// GetVenueByID godoc
// @Summary Get a venue by ID
// @Tags venues
// @Produce json
// @Param venueID path string true "Venue ID"
// @Success 200 {object} helpers.DataResponse "data contains the venue"
// @Failure 404 {object} helpers.ErrorResponse "error: not_found"
// @Router /venues/{venueID} [get]
func (c *VenueController) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if venueID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing venueID")
		return
	}
	venue, err := c.Catalog.GetVenue(r.Context(), venueID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.Logger.ErrorContext(r.Context(), "get venue failed", "venue_id", venueID, "err", err)
		}
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "venue not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}
