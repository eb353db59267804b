package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"tickx/internal/domain"
)

type catalogService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewCatalogService returns the read-path service over the catalog store.
func NewCatalogService(eventRepo domain.EventRepository, venueRepo domain.VenueRepository, logger *slog.Logger, timeout time.Duration) domain.CatalogService {
	return &catalogService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *catalogService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		// An unparsable stored record reads as absent.
		if errors.Is(err, domain.ErrUnparsable) {
			s.logger.Warn("stored event unparsable, treating as absent", "event_id", id)
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *catalogService) ListEventsByCity(ctx context.Context, city string, q domain.RangeQuery) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.FindByCity(ctx, city, q)
}

func (s *catalogService) ListEventsByCategory(ctx context.Context, category string, q domain.RangeQuery) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.FindByCategory(ctx, domain.ParseCategory(category), q)
}

func (s *catalogService) ListEventsByVenue(ctx context.Context, venueID string, q domain.RangeQuery) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.FindByVenue(ctx, venueID, q)
}

// SearchEvents is the interim keyword search: a full scan of the events table
// filtered in memory. O(n) over the entity type until a search index replaces
// it; the store interface isolates callers from that swap.
func (s *catalogService) SearchEvents(ctx context.Context, q domain.SearchQuery) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	all, err := s.eventRepo.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}

	keyword := strings.ToLower(q.Keyword)
	today := s.now().Format("2006-01-02")
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var matched []*domain.Event
	for _, event := range all {
		if event.LocalDate == "" || event.LocalDate < today {
			continue
		}
		if q.City != "" && domain.CityKey(event.VenueCity) != domain.CityKey(q.City) {
			continue
		}
		if q.Category != "" && string(event.Category) != strings.ToLower(q.Category) {
			continue
		}
		if !matchesKeyword(event, keyword) {
			continue
		}
		matched = append(matched, event)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].LocalDate < matched[j].LocalDate
	})
	hasMore := len(matched) > pageSize
	if hasMore {
		matched = matched[:pageSize]
	}

	return &domain.EventPage{Events: matched, HasMore: hasMore}, nil
}

// matchesKeyword checks the keyword against the event name, attraction names,
// genre, sub-genre, and venue name.
func matchesKeyword(event *domain.Event, keyword string) bool {
	if keyword == "" {
		return true
	}
	if strings.Contains(strings.ToLower(event.Name), keyword) {
		return true
	}
	for _, att := range event.Attractions {
		if strings.Contains(strings.ToLower(att.Name), keyword) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(event.Genre), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(event.SubGenre), keyword) {
		return true
	}
	return strings.Contains(strings.ToLower(event.VenueName), keyword)
}

func (s *catalogService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUnparsable) {
			s.logger.Warn("stored venue unparsable, treating as absent", "venue_id", id)
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *catalogService) ListVenuesByCity(ctx context.Context, city string, pageSize int, cursor string) (*domain.VenuePage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.venueRepo.FindByCity(ctx, city, pageSize, cursor)
}
