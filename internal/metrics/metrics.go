// Package metrics registers the Prometheus instruments for the catalog
// service and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpstreamRequests counts Discovery API calls by response status
	// ("error" for transport failures).
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tickx",
		Name:      "upstream_requests_total",
		Help:      "Ticketmaster Discovery API requests by status",
	}, []string{"status"})

	// EventsSaved counts events persisted per city partition.
	EventsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tickx",
		Name:      "events_saved_total",
		Help:      "Catalog events persisted by sync runs",
	}, []string{"city"})

	// VenuesSaved counts venues persisted per city partition.
	VenuesSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tickx",
		Name:      "venues_saved_total",
		Help:      "Catalog venues persisted by sync runs",
	}, []string{"city"})

	// SyncRuns counts completed sync runs by outcome.
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tickx",
		Name:      "sync_runs_total",
		Help:      "Sync runs by outcome (success|failure)",
	}, []string{"outcome"})

	// SyncDuration observes end-to-end sync run duration.
	SyncDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Namespace: "tickx",
		Name:      "sync_duration_seconds",
		Help:      "End-to-end sync run duration",
	})
)

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
