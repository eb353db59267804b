package ticketmaster

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"tickx/internal/domain"
)

// Transformer maps raw Discovery API records into canonical catalog entities.
// A nil return means the record is missing a required field and is skipped.
type Transformer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewTransformer returns a transformer stamping entities with the current time.
func NewTransformer(logger *slog.Logger) domain.EventTransformer {
	return &Transformer{logger: logger, now: time.Now}
}

// ToEvent transforms one raw event. Records without an id, name, embedded
// venue, or start date are dropped.
func (t *Transformer) ToEvent(tm domain.TMEvent) *domain.Event {
	if tm.ID == "" || tm.Name == "" {
		return nil
	}

	venue := tm.FirstVenue()
	if venue == nil {
		t.logger.Warn("skipping event: no venue", "event_id", tm.ID)
		return nil
	}

	if tm.Dates == nil || tm.Dates.Start == nil || tm.Dates.Start.LocalDate == "" {
		t.logger.Warn("skipping event: no date", "event_id", tm.ID)
		return nil
	}
	start := tm.Dates.Start

	eventDate := start.LocalDate
	if start.LocalTime != "" {
		eventDate = start.LocalDate + "T" + start.LocalTime
	} else if start.DateTime != "" {
		eventDate = start.DateTime
	}

	segment := "Miscellaneous"
	var genre, subGenre string
	if cl := tm.PrimaryClassification(); cl != nil {
		if cl.Segment != nil {
			segment = cl.Segment.Name
		}
		if cl.Genre != nil {
			genre = cl.Genre.Name
		}
		if cl.SubGenre != nil {
			subGenre = cl.SubGenre.Name
		}
	}

	statusCode := "onsale"
	if tm.Dates.Status != nil && tm.Dates.Status.Code != "" {
		statusCode = tm.Dates.Status.Code
	}

	var minPrice, maxPrice *float64
	currency := "USD"
	for _, tier := range tm.PriceRanges {
		if minPrice == nil || tier.Min < *minPrice {
			v := tier.Min
			minPrice = &v
		}
		if maxPrice == nil || tier.Max > *maxPrice {
			v := tier.Max
			maxPrice = &v
		}
		if tier.Currency != "" {
			currency = tier.Currency
		}
	}

	imageURL, thumbnailURL := selectImages(tm.Images)

	var doorTime string
	if tm.Dates.DoorTime != nil {
		doorTime = tm.Dates.DoorTime.LocalTime
	}
	var endDate string
	if tm.Dates.End != nil {
		endDate = tm.Dates.End.DateTime
	}
	var seatmapURL string
	if tm.Seatmap != nil {
		seatmapURL = tm.Seatmap.StaticURL
	}
	var ticketLimit *int
	if tm.TicketLimit != nil {
		ticketLimit = parseDigits(tm.TicketLimit.Info)
	}

	description := tm.Description
	if description == "" {
		description = tm.Info
	}

	now := t.now().UTC().Format(time.RFC3339)

	return &domain.Event{
		ID:             tm.ID,
		Name:           tm.Name,
		Description:    description,
		Category:       domain.CategoryFromSegment(segment),
		Status:         domain.StatusFromCode(statusCode),
		EventDate:      eventDate,
		LocalDate:      start.LocalDate,
		LocalTime:      start.LocalTime,
		Timezone:       tm.Dates.Timezone,
		DoorTime:       doorTime,
		EndDate:        endDate,
		VenueID:        venue.ID,
		VenueName:      venue.Name,
		VenueCity:      namedOrEmpty(venue.City),
		VenueState:     stateName(venue.State),
		VenueStateCode: stateCode(venue.State),
		ImageURL:       imageURL,
		ThumbnailURL:   thumbnailURL,
		Images:         toEventImages(tm.Images),
		MinPrice:       minPrice,
		MaxPrice:       maxPrice,
		Currency:       currency,
		Attractions:    toAttractions(tm.Embedded),
		Segment:        segment,
		Genre:          genre,
		SubGenre:       subGenre,
		URL:            tm.URL,
		SeatmapURL:     seatmapURL,
		PleaseNote:     tm.PleaseNote,
		TicketLimit:    ticketLimit,
		IsFeatured:     false,
		ListingCount:   0,
		CreatedAt:      now,
		UpdatedAt:      now,
		Source:         "ticketmaster",
	}
}

// ToVenue transforms one raw venue. Records without an id or name are dropped.
func (t *Transformer) ToVenue(tm domain.TMVenue) *domain.Venue {
	if tm.ID == "" || tm.Name == "" {
		return nil
	}

	var imageURL string
	for _, img := range tm.Images {
		if img.Ratio == "16_9" {
			imageURL = img.URL
			break
		}
	}
	if imageURL == "" && len(tm.Images) > 0 {
		imageURL = tm.Images[0].URL
	}

	var address string
	if tm.Address != nil {
		address = tm.Address.Line1
		if tm.Address.Line2 != "" {
			if address != "" {
				address += ", "
			}
			address += tm.Address.Line2
		}
	}

	country, countryCode := "United States", "US"
	if tm.Country != nil {
		if tm.Country.Name != "" {
			country = tm.Country.Name
		}
		if tm.Country.CountryCode != "" {
			countryCode = tm.Country.CountryCode
		}
	}

	timezone := tm.Timezone
	if timezone == "" {
		timezone = "America/New_York"
	}

	var latitude, longitude *float64
	if tm.Location != nil {
		latitude = parseFloat(tm.Location.Latitude)
		longitude = parseFloat(tm.Location.Longitude)
	}

	var parkingInfo, boxOfficeInfo, generalInfo string
	parkingInfo = tm.ParkingDetail
	if tm.BoxOfficeInfo != nil {
		boxOfficeInfo = tm.BoxOfficeInfo.PhoneNumberDetail
	}
	if tm.GeneralInfo != nil {
		generalInfo = tm.GeneralInfo.GeneralRule
	}

	now := t.now().UTC().Format(time.RFC3339)

	return &domain.Venue{
		ID:            tm.ID,
		Name:          tm.Name,
		Address:       address,
		City:          namedOrEmpty(tm.City),
		State:         stateName(tm.State),
		StateCode:     stateCode(tm.State),
		Country:       country,
		CountryCode:   countryCode,
		PostalCode:    tm.PostalCode,
		Timezone:      timezone,
		Latitude:      latitude,
		Longitude:     longitude,
		ImageURL:      imageURL,
		URL:           tm.URL,
		ParkingInfo:   parkingInfo,
		BoxOfficeInfo: boxOfficeInfo,
		GeneralInfo:   generalInfo,
		CreatedAt:     now,
		UpdatedAt:     now,
		Source:        "ticketmaster",
	}
}

// selectImages picks the primary listing image and a thumbnail. Rank order:
// non-fallback first, then 16_9 ratio, then widest. The thumbnail is the
// first ranked image 300-500px wide, else the last ranked image.
func selectImages(images []domain.TMImage) (imageURL, thumbnailURL string) {
	if len(images) == 0 {
		return "", ""
	}

	ranked := make([]domain.TMImage, len(images))
	copy(ranked, images)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Fallback != b.Fallback {
			return !a.Fallback
		}
		aWide, bWide := a.Ratio == "16_9", b.Ratio == "16_9"
		if aWide != bWide {
			return aWide
		}
		return a.Width > b.Width
	})

	imageURL = ranked[0].URL
	thumbnailURL = ranked[len(ranked)-1].URL
	for _, img := range ranked {
		if img.Width >= 300 && img.Width <= 500 {
			thumbnailURL = img.URL
			break
		}
	}
	return imageURL, thumbnailURL
}

func toEventImages(images []domain.TMImage) []domain.EventImage {
	if len(images) == 0 {
		return nil
	}
	out := make([]domain.EventImage, 0, len(images))
	for _, img := range images {
		out = append(out, domain.EventImage{
			URL:      img.URL,
			Width:    img.Width,
			Height:   img.Height,
			Ratio:    img.Ratio,
			Fallback: img.Fallback,
		})
	}
	return out
}

func toAttractions(embedded *domain.TMEventEmbedded) []domain.Attraction {
	if embedded == nil || len(embedded.Attractions) == 0 {
		return nil
	}
	out := make([]domain.Attraction, 0, len(embedded.Attractions))
	for _, att := range embedded.Attractions {
		var imageURL string
		if len(att.Images) > 0 {
			imageURL = att.Images[0].URL
		}
		out = append(out, domain.Attraction{
			ID:       att.ID,
			Name:     att.Name,
			Type:     att.Type,
			ImageURL: imageURL,
			URL:      att.URL,
		})
	}
	return out
}

func namedOrEmpty(n *domain.TMNamed) string {
	if n == nil {
		return ""
	}
	return n.Name
}

func stateName(s *domain.TMState) string {
	if s == nil {
		return ""
	}
	return s.Name
}

func stateCode(s *domain.TMState) string {
	if s == nil {
		return ""
	}
	return s.StateCode
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDigits(s string) *int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return nil
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &v
}
