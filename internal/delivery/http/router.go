package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"tickx/internal/delivery/http/controllers"
	"tickx/internal/delivery/http/middleware"
	"tickx/internal/domain"
	"tickx/internal/metrics"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	venueController *controllers.VenueController,
	syncController *controllers.SyncController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Catalog read API
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("GET /venues", venueController.ListVenues)
	mux.HandleFunc("GET /venues/{venueID}", venueController.GetVenueByID)

	// Ingestion trigger
	requireAuth := middleware.RequireAuth(verifier)
	mux.HandleFunc("POST /sync", requireAuth(syncController.TriggerSync))

	// Operational endpoints
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
