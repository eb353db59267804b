package domain

import "context"

// SearchQuery bounds the interim keyword search. City and Category are
// optional narrowing filters.
type SearchQuery struct {
	Keyword  string
	City     string
	Category string
	PageSize int
}

// CatalogService is the read surface of the catalog.
type CatalogService interface {
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEventsByCity(ctx context.Context, city string, q RangeQuery) (*EventPage, error)
	ListEventsByCategory(ctx context.Context, category string, q RangeQuery) (*EventPage, error)
	ListEventsByVenue(ctx context.Context, venueID string, q RangeQuery) (*EventPage, error)
	SearchEvents(ctx context.Context, q SearchQuery) (*EventPage, error)
	GetVenue(ctx context.Context, id string) (*Venue, error)
	ListVenuesByCity(ctx context.Context, city string, pageSize int, cursor string) (*VenuePage, error)
}
