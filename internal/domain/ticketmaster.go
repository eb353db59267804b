package domain

import "context"

// Raw Ticketmaster Discovery API shapes. Only the fields the transformer
// reads are declared; pointers mark the fields whose absence drives skip
// decisions.

// TMImage is one image variant on an event, venue, or attraction.
type TMImage struct {
	URL      string `json:"url"`
	Ratio    string `json:"ratio"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Fallback bool   `json:"fallback"`
}

// TMNamed is a named classification node (segment, genre, subGenre).
type TMNamed struct {
	Name string `json:"name"`
}

// TMClassification is one classification entry on an event.
type TMClassification struct {
	Primary  bool     `json:"primary"`
	Segment  *TMNamed `json:"segment"`
	Genre    *TMNamed `json:"genre"`
	SubGenre *TMNamed `json:"subGenre"`
}

// TMDateInfo is the start or end descriptor of an event.
type TMDateInfo struct {
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
	DateTime  string `json:"dateTime"`
}

// TMStatus is the sale status descriptor of an event.
type TMStatus struct {
	Code string `json:"code"`
}

// TMDates groups the date fields of an event.
type TMDates struct {
	Start    *TMDateInfo `json:"start"`
	End      *TMDateInfo `json:"end"`
	DoorTime *TMDateInfo `json:"doorTime"`
	Status   *TMStatus   `json:"status"`
	Timezone string      `json:"timezone"`
}

// TMPriceRange is one declared price tier.
type TMPriceRange struct {
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// TMSeatmap carries the static seatmap image URL.
type TMSeatmap struct {
	StaticURL string `json:"staticUrl"`
}

// TMTicketLimit carries the free-text ticket limit info.
type TMTicketLimit struct {
	Info string `json:"info"`
}

// TMAddress is the street address of a venue.
type TMAddress struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// TMState is the state descriptor of a venue.
type TMState struct {
	Name      string `json:"name"`
	StateCode string `json:"stateCode"`
}

// TMCountry is the country descriptor of a venue.
type TMCountry struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// TMLocation carries venue coordinates as decimal strings.
type TMLocation struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// TMBoxOffice carries the venue box office details.
type TMBoxOffice struct {
	PhoneNumberDetail string `json:"phoneNumberDetail"`
}

// TMGeneralInfo carries the venue general rules text.
type TMGeneralInfo struct {
	GeneralRule string `json:"generalRule"`
}

// TMVenue is a raw venue record embedded in an event or returned standalone.
type TMVenue struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	URL           string         `json:"url"`
	PostalCode    string         `json:"postalCode"`
	Timezone      string         `json:"timezone"`
	Address       *TMAddress     `json:"address"`
	City          *TMNamed       `json:"city"`
	State         *TMState       `json:"state"`
	Country       *TMCountry     `json:"country"`
	Location      *TMLocation    `json:"location"`
	Images        []TMImage      `json:"images"`
	ParkingDetail string         `json:"parkingDetail"`
	BoxOfficeInfo *TMBoxOffice   `json:"boxOfficeInfo"`
	GeneralInfo   *TMGeneralInfo `json:"generalInfo"`
}

// TMAttraction is a raw attraction record embedded in an event.
type TMAttraction struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	URL    string    `json:"url"`
	Images []TMImage `json:"images"`
}

// TMEventEmbedded holds the nested venue and attraction records of an event.
type TMEventEmbedded struct {
	Venues      []TMVenue      `json:"venues"`
	Attractions []TMAttraction `json:"attractions"`
}

// TMEvent is one raw event record from the Discovery API.
type TMEvent struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Info            string             `json:"info"`
	URL             string             `json:"url"`
	PleaseNote      string             `json:"pleaseNote"`
	Images          []TMImage          `json:"images"`
	Dates           *TMDates           `json:"dates"`
	Classifications []TMClassification `json:"classifications"`
	PriceRanges     []TMPriceRange     `json:"priceRanges"`
	Seatmap         *TMSeatmap         `json:"seatmap"`
	TicketLimit     *TMTicketLimit     `json:"ticketLimit"`
	Embedded        *TMEventEmbedded   `json:"_embedded"`
}

// FirstVenue returns the first embedded venue, or nil.
func (e *TMEvent) FirstVenue() *TMVenue {
	if e.Embedded == nil || len(e.Embedded.Venues) == 0 {
		return nil
	}
	return &e.Embedded.Venues[0]
}

// PrimaryClassification returns the classification marked primary, falling
// back to the first entry, or nil when there are none.
func (e *TMEvent) PrimaryClassification() *TMClassification {
	for i := range e.Classifications {
		if e.Classifications[i].Primary {
			return &e.Classifications[i]
		}
	}
	if len(e.Classifications) > 0 {
		return &e.Classifications[0]
	}
	return nil
}

// TMPage is the page descriptor returned alongside a result page.
type TMPage struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// TMEventsEmbedded holds the event list of a search response.
type TMEventsEmbedded struct {
	Events []TMEvent `json:"events"`
}

// TMEventsResponse is the Discovery API event search response envelope.
type TMEventsResponse struct {
	Embedded *TMEventsEmbedded `json:"_embedded"`
	Page     *TMPage           `json:"page"`
}

// EventFetcher fetches all raw events for one city partition over the sync
// horizon, deduplicated by upstream event id.
type EventFetcher interface {
	FetchCityEvents(ctx context.Context, city, stateCode, apiKey string) ([]TMEvent, error)
}

// EventTransformer maps raw upstream records into canonical entities. A nil
// result means the record lacked a required field and is skipped.
type EventTransformer interface {
	ToEvent(tm TMEvent) *Event
	ToVenue(tm TMVenue) *Venue
}
