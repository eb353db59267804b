package ticketmaster

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickx/internal/domain"
)

func testTransformer() *Transformer {
	return &Transformer{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time {
			return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		},
	}
}

// fullEvent returns a raw event with every field the transformer reads.
func fullEvent() domain.TMEvent {
	return domain.TMEvent{
		ID:         "ev-1",
		Name:       "The Midnight",
		Info:       "Synthwave night",
		URL:        "https://tm.example/ev-1",
		PleaseNote: "No cameras",
		Images: []domain.TMImage{
			{URL: "https://img/large.jpg", Ratio: "16_9", Width: 1024, Height: 576},
			{URL: "https://img/thumb.jpg", Ratio: "4_3", Width: 305, Height: 225},
		},
		Dates: &domain.TMDates{
			Start:    &domain.TMDateInfo{LocalDate: "2025-07-04", LocalTime: "20:00:00"},
			End:      &domain.TMDateInfo{DateTime: "2025-07-05T02:00:00Z"},
			DoorTime: &domain.TMDateInfo{LocalTime: "19:00:00"},
			Status:   &domain.TMStatus{Code: "onsale"},
			Timezone: "America/Chicago",
		},
		Classifications: []domain.TMClassification{
			{
				Primary:  true,
				Segment:  &domain.TMNamed{Name: "Music"},
				Genre:    &domain.TMNamed{Name: "Rock"},
				SubGenre: &domain.TMNamed{Name: "Synth-pop"},
			},
		},
		PriceRanges: []domain.TMPriceRange{
			{Currency: "USD", Min: 45, Max: 120},
		},
		Seatmap:     &domain.TMSeatmap{StaticURL: "https://tm.example/seatmap.png"},
		TicketLimit: &domain.TMTicketLimit{Info: "There is an overall 8 ticket limit"},
		Embedded: &domain.TMEventEmbedded{
			Venues: []domain.TMVenue{
				{
					ID:    "v-1",
					Name:  "Aragon Ballroom",
					City:  &domain.TMNamed{Name: "Chicago"},
					State: &domain.TMState{Name: "Illinois", StateCode: "IL"},
				},
			},
			Attractions: []domain.TMAttraction{
				{
					ID:     "att-1",
					Name:   "The Midnight",
					Type:   "attraction",
					Images: []domain.TMImage{{URL: "https://img/att.jpg"}},
				},
			},
		},
	}
}

func TestToEvent(t *testing.T) {
	event := testTransformer().ToEvent(fullEvent())
	require.NotNil(t, event)

	assert.Equal(t, "ev-1", event.ID)
	assert.Equal(t, "The Midnight", event.Name)
	assert.Equal(t, "Synthwave night", event.Description) // falls back to info
	assert.Equal(t, domain.CategoryConcert, event.Category)
	assert.Equal(t, domain.StatusScheduled, event.Status)
	assert.Equal(t, "2025-07-04T20:00:00", event.EventDate)
	assert.Equal(t, "2025-07-04", event.LocalDate)
	assert.Equal(t, "America/Chicago", event.Timezone)
	assert.Equal(t, "19:00:00", event.DoorTime)
	assert.Equal(t, "2025-07-05T02:00:00Z", event.EndDate)

	assert.Equal(t, "v-1", event.VenueID)
	assert.Equal(t, "Aragon Ballroom", event.VenueName)
	assert.Equal(t, "Chicago", event.VenueCity)
	assert.Equal(t, "Illinois", event.VenueState)
	assert.Equal(t, "IL", event.VenueStateCode)

	require.NotNil(t, event.MinPrice)
	require.NotNil(t, event.MaxPrice)
	assert.Equal(t, 45.0, *event.MinPrice)
	assert.Equal(t, 120.0, *event.MaxPrice)
	assert.Equal(t, "USD", event.Currency)

	assert.Equal(t, "https://img/large.jpg", event.ImageURL)
	assert.Equal(t, "https://img/thumb.jpg", event.ThumbnailURL)
	assert.Len(t, event.Images, 2)

	require.Len(t, event.Attractions, 1)
	assert.Equal(t, "att-1", event.Attractions[0].ID)
	assert.Equal(t, "https://img/att.jpg", event.Attractions[0].ImageURL)

	assert.Equal(t, "Music", event.Segment)
	assert.Equal(t, "Rock", event.Genre)
	assert.Equal(t, "Synth-pop", event.SubGenre)
	assert.Equal(t, "https://tm.example/seatmap.png", event.SeatmapURL)

	require.NotNil(t, event.TicketLimit)
	assert.Equal(t, 8, *event.TicketLimit)

	assert.Equal(t, "2025-06-15T12:00:00Z", event.CreatedAt)
	assert.Equal(t, event.CreatedAt, event.UpdatedAt)
	assert.Equal(t, "ticketmaster", event.Source)
}

func TestToEvent_SkipsIncompleteRecords(t *testing.T) {
	tr := testTransformer()

	tests := []struct {
		name   string
		mutate func(*domain.TMEvent)
	}{
		{"missing id", func(e *domain.TMEvent) { e.ID = "" }},
		{"missing name", func(e *domain.TMEvent) { e.Name = "" }},
		{"no embedded venues", func(e *domain.TMEvent) { e.Embedded = nil }},
		{"empty venue list", func(e *domain.TMEvent) { e.Embedded.Venues = nil }},
		{"no dates", func(e *domain.TMEvent) { e.Dates = nil }},
		{"no start", func(e *domain.TMEvent) { e.Dates.Start = nil }},
		{"no local date", func(e *domain.TMEvent) { e.Dates.Start.LocalDate = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := fullEvent()
			tt.mutate(&raw)
			assert.Nil(t, tr.ToEvent(raw))
		})
	}
}

func TestToEvent_Defaults(t *testing.T) {
	raw := fullEvent()
	raw.Classifications = nil
	raw.Dates.Status = nil
	raw.PriceRanges = nil
	raw.Dates.Start.LocalTime = ""
	raw.Dates.Start.DateTime = "2025-07-04T01:00:00Z"

	event := testTransformer().ToEvent(raw)
	require.NotNil(t, event)

	assert.Equal(t, "Miscellaneous", event.Segment)
	assert.Equal(t, domain.CategoryOther, event.Category)
	assert.Equal(t, domain.StatusScheduled, event.Status)
	assert.Equal(t, "USD", event.Currency)
	assert.Nil(t, event.MinPrice)
	assert.Nil(t, event.MaxPrice)
	// No local time, so the UTC datetime stands in.
	assert.Equal(t, "2025-07-04T01:00:00Z", event.EventDate)
}

func TestToEvent_CategoryAndStatusMapping(t *testing.T) {
	tr := testTransformer()

	categories := map[string]domain.EventCategory{
		"Music":          domain.CategoryConcert,
		"Sports":         domain.CategorySports,
		"Arts & Theatre": domain.CategoryTheater,
		"Comedy":         domain.CategoryComedy,
		"Festival":       domain.CategoryFestival,
		"Film":           domain.CategoryOther,
	}
	for segment, want := range categories {
		raw := fullEvent()
		raw.Classifications[0].Segment = &domain.TMNamed{Name: segment}
		event := tr.ToEvent(raw)
		require.NotNil(t, event, segment)
		assert.Equal(t, want, event.Category, segment)
	}

	statuses := map[string]domain.EventStatus{
		"onsale":      domain.StatusScheduled,
		"offsale":     domain.StatusScheduled,
		"cancelled":   domain.StatusCancelled,
		"postponed":   domain.StatusPostponed,
		"rescheduled": domain.StatusRescheduled,
	}
	for code, want := range statuses {
		raw := fullEvent()
		raw.Dates.Status = &domain.TMStatus{Code: code}
		event := tr.ToEvent(raw)
		require.NotNil(t, event, code)
		assert.Equal(t, want, event.Status, code)
	}
}

func TestToEvent_PriceFold(t *testing.T) {
	raw := fullEvent()
	raw.PriceRanges = []domain.TMPriceRange{
		{Currency: "USD", Min: 60, Max: 90},
		{Currency: "", Min: 25, Max: 40},
		{Currency: "CAD", Min: 80, Max: 200},
	}

	event := testTransformer().ToEvent(raw)
	require.NotNil(t, event)
	assert.Equal(t, 25.0, *event.MinPrice)
	assert.Equal(t, 200.0, *event.MaxPrice)
	// Last tier with a currency wins.
	assert.Equal(t, "CAD", event.Currency)
}

func TestSelectImages(t *testing.T) {
	t.Run("non-fallback beats larger fallback", func(t *testing.T) {
		imageURL, _ := selectImages([]domain.TMImage{
			{URL: "https://img/fallback.jpg", Ratio: "16_9", Width: 1024, Fallback: true},
			{URL: "https://img/real.jpg", Ratio: "3_2", Width: 640},
		})
		assert.Equal(t, "https://img/real.jpg", imageURL)
	})

	t.Run("16_9 beats wider other ratio", func(t *testing.T) {
		imageURL, _ := selectImages([]domain.TMImage{
			{URL: "https://img/wide43.jpg", Ratio: "4_3", Width: 2048},
			{URL: "https://img/169.jpg", Ratio: "16_9", Width: 640},
		})
		assert.Equal(t, "https://img/169.jpg", imageURL)
	})

	t.Run("thumbnail prefers 300-500px width", func(t *testing.T) {
		_, thumb := selectImages([]domain.TMImage{
			{URL: "https://img/huge.jpg", Ratio: "16_9", Width: 2048},
			{URL: "https://img/mid.jpg", Ratio: "16_9", Width: 400},
			{URL: "https://img/tiny.jpg", Ratio: "16_9", Width: 100},
		})
		assert.Equal(t, "https://img/mid.jpg", thumb)
	})

	t.Run("thumbnail falls back to last ranked", func(t *testing.T) {
		_, thumb := selectImages([]domain.TMImage{
			{URL: "https://img/huge.jpg", Ratio: "16_9", Width: 2048},
			{URL: "https://img/tiny.jpg", Ratio: "16_9", Width: 100},
		})
		assert.Equal(t, "https://img/tiny.jpg", thumb)
	})

	t.Run("empty input", func(t *testing.T) {
		imageURL, thumb := selectImages(nil)
		assert.Empty(t, imageURL)
		assert.Empty(t, thumb)
	})
}

func TestToVenue(t *testing.T) {
	raw := domain.TMVenue{
		ID:         "v-1",
		Name:       "Aragon Ballroom",
		PostalCode: "60640",
		Timezone:   "America/Chicago",
		Address:    &domain.TMAddress{Line1: "1106 W Lawrence Ave", Line2: "Floor 2"},
		City:       &domain.TMNamed{Name: "Chicago"},
		State:      &domain.TMState{Name: "Illinois", StateCode: "IL"},
		Country:    &domain.TMCountry{Name: "United States Of America", CountryCode: "US"},
		Location:   &domain.TMLocation{Latitude: "41.9693", Longitude: "-87.6581"},
		Images: []domain.TMImage{
			{URL: "https://img/43.jpg", Ratio: "4_3"},
			{URL: "https://img/169.jpg", Ratio: "16_9"},
		},
		ParkingDetail: "Street parking only",
		BoxOfficeInfo: &domain.TMBoxOffice{PhoneNumberDetail: "(773) 561-9500"},
		GeneralInfo:   &domain.TMGeneralInfo{GeneralRule: "No re-entry"},
	}

	venue := testTransformer().ToVenue(raw)
	require.NotNil(t, venue)

	assert.Equal(t, "v-1", venue.ID)
	assert.Equal(t, "1106 W Lawrence Ave, Floor 2", venue.Address)
	assert.Equal(t, "Chicago", venue.City)
	assert.Equal(t, "IL", venue.StateCode)
	assert.Equal(t, "United States Of America", venue.Country)
	assert.Equal(t, "https://img/169.jpg", venue.ImageURL)
	require.NotNil(t, venue.Latitude)
	assert.InDelta(t, 41.9693, *venue.Latitude, 0.0001)
	require.NotNil(t, venue.Longitude)
	assert.InDelta(t, -87.6581, *venue.Longitude, 0.0001)
	assert.Equal(t, "Street parking only", venue.ParkingInfo)
	assert.Equal(t, "(773) 561-9500", venue.BoxOfficeInfo)
	assert.Equal(t, "No re-entry", venue.GeneralInfo)
	assert.Equal(t, "ticketmaster", venue.Source)
}

func TestToVenue_Defaults(t *testing.T) {
	venue := testTransformer().ToVenue(domain.TMVenue{ID: "v-2", Name: "Bare Venue"})
	require.NotNil(t, venue)

	assert.Equal(t, "United States", venue.Country)
	assert.Equal(t, "US", venue.CountryCode)
	assert.Equal(t, "America/New_York", venue.Timezone)
	assert.Nil(t, venue.Latitude)
	assert.Nil(t, venue.Longitude)
	assert.Empty(t, venue.ImageURL)
}

func TestToVenue_SkipsIncompleteRecords(t *testing.T) {
	tr := testTransformer()
	assert.Nil(t, tr.ToVenue(domain.TMVenue{Name: "No ID"}))
	assert.Nil(t, tr.ToVenue(domain.TMVenue{ID: "v-3"}))
}

func TestParseDigits(t *testing.T) {
	assert.Equal(t, 8, *parseDigits("There is an overall 8 ticket limit"))
	assert.Equal(t, 12, *parseDigits("12"))
	assert.Nil(t, parseDigits("no limit stated"))
	assert.Nil(t, parseDigits(""))
}
