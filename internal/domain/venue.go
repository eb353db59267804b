package domain

import "context"

// Venue is the canonical catalog venue. ID is the upstream venue id and is
// stable across re-ingestion.
type Venue struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	StateCode     string   `json:"stateCode"`
	Country       string   `json:"country"`
	CountryCode   string   `json:"countryCode"`
	PostalCode    string   `json:"postalCode,omitempty"`
	Timezone      string   `json:"timezone"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	URL           string   `json:"url,omitempty"`
	ParkingInfo   string   `json:"parkingInfo,omitempty"`
	BoxOfficeInfo string   `json:"boxOfficeInfo,omitempty"`
	GeneralInfo   string   `json:"generalInfo,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
	Source        string   `json:"source"`
}

// VenuePage is one page of a venue city query.
type VenuePage struct {
	Venues  []*Venue
	HasMore bool
	Cursor  string
}

// VenueRepository defines the interface for venue storage
type VenueRepository interface {
	GetByID(ctx context.Context, id string) (*Venue, error)
	FindByCity(ctx context.Context, city string, pageSize int, cursor string) (*VenuePage, error)
	Save(ctx context.Context, venue *Venue) error
	SaveBatch(ctx context.Context, venues []*Venue) error
}
