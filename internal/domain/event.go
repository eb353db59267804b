package domain

import (
	"context"
	"strings"
)

// EventCategory is the closed set of catalog categories. Upstream segments
// outside the mapping collapse to CategoryOther.
type EventCategory string

const (
	CategoryConcert  EventCategory = "concert"
	CategorySports   EventCategory = "sports"
	CategoryTheater  EventCategory = "theater"
	CategoryFestival EventCategory = "festival"
	CategoryComedy   EventCategory = "comedy"
	CategoryOther    EventCategory = "other"
)

// CategoryFromSegment maps a Ticketmaster segment name to a catalog category.
func CategoryFromSegment(segment string) EventCategory {
	switch segment {
	case "Music":
		return CategoryConcert
	case "Sports":
		return CategorySports
	case "Arts & Theatre":
		return CategoryTheater
	case "Comedy":
		return CategoryComedy
	case "Festival":
		return CategoryFestival
	default:
		return CategoryOther
	}
}

// ParseCategory maps a client-supplied category string to the closed set.
// Unknown values collapse to CategoryOther.
func ParseCategory(value string) EventCategory {
	switch EventCategory(strings.ToLower(value)) {
	case CategoryConcert, CategorySports, CategoryTheater, CategoryFestival, CategoryComedy:
		return EventCategory(strings.ToLower(value))
	default:
		return CategoryOther
	}
}

// EventStatus is the closed set of event sale statuses. Unknown or missing
// upstream codes default to StatusScheduled.
type EventStatus string

const (
	StatusScheduled   EventStatus = "scheduled"
	StatusPostponed   EventStatus = "postponed"
	StatusCancelled   EventStatus = "cancelled"
	StatusRescheduled EventStatus = "rescheduled"
)

// StatusFromCode maps a Ticketmaster status code to a catalog status.
func StatusFromCode(code string) EventStatus {
	switch strings.ToLower(code) {
	case "cancelled":
		return StatusCancelled
	case "postponed":
		return StatusPostponed
	case "rescheduled":
		return StatusRescheduled
	default:
		return StatusScheduled
	}
}

// EventImage is one upstream image variant attached to an event.
type EventImage struct {
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Ratio    string `json:"ratio,omitempty"`
	Fallback bool   `json:"fallback"`
}

// Attraction is a performer or team embedded in an event. It has no identity
// outside its containing event.
type Attraction struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Event is the canonical catalog event. ID is the upstream event id and is the
// only durable identity; every index attribute is recomputed from these fields
// on each write.
type Event struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Category       EventCategory `json:"category"`
	Status         EventStatus   `json:"status"`
	EventDate      string        `json:"eventDate"`
	LocalDate      string        `json:"localDate"`
	LocalTime      string        `json:"localTime,omitempty"`
	Timezone       string        `json:"timezone,omitempty"`
	DoorTime       string        `json:"doorTime,omitempty"`
	EndDate        string        `json:"endDate,omitempty"`
	VenueID        string        `json:"venueId"`
	VenueName      string        `json:"venueName"`
	VenueCity      string        `json:"venueCity"`
	VenueState     string        `json:"venueState"`
	VenueStateCode string        `json:"venueStateCode"`
	ImageURL       string        `json:"imageUrl"`
	ThumbnailURL   string        `json:"thumbnailUrl,omitempty"`
	Images         []EventImage  `json:"images,omitempty"`
	MinPrice       *float64      `json:"minPrice,omitempty"`
	MaxPrice       *float64      `json:"maxPrice,omitempty"`
	Currency       string        `json:"currency"`
	Attractions    []Attraction  `json:"attractions,omitempty"`
	Segment        string        `json:"segment,omitempty"`
	Genre          string        `json:"genre,omitempty"`
	SubGenre       string        `json:"subGenre,omitempty"`
	URL            string        `json:"url,omitempty"`
	SeatmapURL     string        `json:"seatmapUrl,omitempty"`
	PleaseNote     string        `json:"pleaseNote,omitempty"`
	TicketLimit    *int          `json:"ticketLimit,omitempty"`
	IsFeatured     bool          `json:"isFeatured"`
	ListingCount   int           `json:"listingCount"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
	Source         string        `json:"source"`
}

// CityKey normalizes a city name into its index grouping key
// (lowercase, spaces replaced with underscores).
func CityKey(city string) string {
	return strings.ReplaceAll(strings.ToLower(city), " ", "_")
}

// RangeQuery bounds an indexed event query. Zero-value DateFrom means "today";
// zero-value DateTo means the far-future sentinel. Cursor is the opaque token
// returned by a previous page of the same query shape.
type RangeQuery struct {
	DateFrom string
	DateTo   string
	PageSize int
	Cursor   string
}

// EventPage is one page of an indexed event query. Cursor is set when more
// results exist.
type EventPage struct {
	Events  []*Event
	HasMore bool
	Cursor  string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*Event, error)
	FindByCity(ctx context.Context, city string, q RangeQuery) (*EventPage, error)
	FindByCategory(ctx context.Context, category EventCategory, q RangeQuery) (*EventPage, error)
	FindByVenue(ctx context.Context, venueID string, q RangeQuery) (*EventPage, error)
	// ScanAll walks the whole events table. It backs the interim keyword
	// search only and is O(n) over the entity type.
	ScanAll(ctx context.Context) ([]*Event, error)
	Save(ctx context.Context, event *Event) error
	SaveBatch(ctx context.Context, events []*Event) error
}
