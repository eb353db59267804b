package domain

import "context"

// Partition is one independent unit of ingestion work: a city plus its state
// code, fetched and persisted in isolation from the other partitions.
type Partition struct {
	City      string
	StateCode string
}

// Label returns the partition's display name used in sync results and logs.
func (p Partition) Label() string {
	return p.City + ", " + p.StateCode
}

// CityResult is the outcome of one sync partition. A failed partition still
// produces an entry with zero counts.
type CityResult struct {
	City          string `json:"city"`
	EventsFound   int    `json:"eventsFound"`
	EventsSaved   int    `json:"eventsSaved"`
	EventsSkipped int    `json:"eventsSkipped"`
	VenuesFound   int    `json:"venuesFound"`
	VenuesSaved   int    `json:"venuesSaved"`
}

// SyncResult aggregates one full sync run. Success stays true across
// per-partition failures; only a failure outside the partition loop
// (credential resolution) flips it to false.
type SyncResult struct {
	RunID            string       `json:"runId"`
	Success          bool         `json:"success"`
	Error            string       `json:"error,omitempty"`
	DurationMs       int64        `json:"durationMs"`
	TotalEventsSaved int          `json:"totalEventsSaved"`
	TotalVenuesSaved int          `json:"totalVenuesSaved"`
	CityResults      []CityResult `json:"cityResults"`
}

// SyncService drives one catalog ingestion run across all configured city
// partitions.
type SyncService interface {
	Run(ctx context.Context) *SyncResult
}

// APIKeyProvider resolves the upstream API key at the start of a sync run.
type APIKeyProvider interface {
	APIKey(ctx context.Context) (string, error)
}

// Mailer sends a rendered message. Implementations must not block a sync run
// on delivery guarantees.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
