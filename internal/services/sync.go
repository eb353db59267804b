package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tickx/internal/domain"
	"tickx/internal/metrics"
)

type syncService struct {
	fetcher     domain.EventFetcher
	transformer domain.EventTransformer
	eventRepo   domain.EventRepository
	venueRepo   domain.VenueRepository
	keys        domain.APIKeyProvider
	mailer      domain.Mailer
	reportTo    string
	partitions  []domain.Partition
	logger      *slog.Logger
	now         func() time.Time
}

// NewSyncService wires the ingestion pipeline. mailer may be nil or reportTo
// empty to disable sync report notifications.
func NewSyncService(
	fetcher domain.EventFetcher,
	transformer domain.EventTransformer,
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	keys domain.APIKeyProvider,
	mailer domain.Mailer,
	reportTo string,
	partitions []domain.Partition,
	logger *slog.Logger,
) domain.SyncService {
	return &syncService{
		fetcher:     fetcher,
		transformer: transformer,
		eventRepo:   eventRepo,
		venueRepo:   venueRepo,
		keys:        keys,
		mailer:      mailer,
		reportTo:    reportTo,
		partitions:  partitions,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes one full ingestion cycle. Partition failures are recorded as
// zero-count results and never fail the run; only API key resolution failure
// does.
func (s *syncService) Run(ctx context.Context) *domain.SyncResult {
	start := s.now()
	result := &domain.SyncResult{RunID: uuid.NewString()}
	logger := s.logger.With("run_id", result.RunID)

	logger.Info("starting catalog sync", "partitions", len(s.partitions))

	apiKey, err := s.keys.APIKey(ctx)
	if err != nil {
		logger.Error("sync failed: could not resolve api key", "err", err)
		result.Success = false
		result.Error = fmt.Sprintf("resolve api key: %v", err)
		result.DurationMs = s.now().Sub(start).Milliseconds()
		metrics.SyncRuns.WithLabelValues("failure").Inc()
		s.notify(result)
		return result
	}

	for _, p := range s.partitions {
		cityResult, err := s.syncPartition(ctx, p, apiKey)
		if err != nil {
			logger.Error("partition sync failed", "city", p.Label(), "err", err)
			result.CityResults = append(result.CityResults, domain.CityResult{City: p.Label()})
			continue
		}
		result.CityResults = append(result.CityResults, *cityResult)
		result.TotalEventsSaved += cityResult.EventsSaved
		result.TotalVenuesSaved += cityResult.VenuesSaved
		metrics.EventsSaved.WithLabelValues(p.Label()).Add(float64(cityResult.EventsSaved))
		metrics.VenuesSaved.WithLabelValues(p.Label()).Add(float64(cityResult.VenuesSaved))
	}

	result.Success = true
	result.DurationMs = s.now().Sub(start).Milliseconds()
	metrics.SyncRuns.WithLabelValues("success").Inc()
	metrics.SyncDuration.Observe(float64(result.DurationMs) / 1000)

	logger.Info("sync completed",
		"duration_ms", result.DurationMs,
		"events_saved", result.TotalEventsSaved,
		"venues_saved", result.TotalVenuesSaved)

	s.notify(result)
	return result
}

// syncPartition runs fetch → transform → persist for one city. Venues are
// deduplicated by id within the partition and written before events, since
// events denormalize venue fields.
func (s *syncService) syncPartition(ctx context.Context, p domain.Partition, apiKey string) (*domain.CityResult, error) {
	raw, err := s.fetcher.FetchCityEvents(ctx, p.City, p.StateCode, apiKey)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.Label(), err)
	}

	var events []*domain.Event
	venuesByID := make(map[string]*domain.Venue)
	for _, tm := range raw {
		if event := s.transformer.ToEvent(tm); event != nil {
			events = append(events, event)
		}
		if tmVenue := tm.FirstVenue(); tmVenue != nil {
			if _, ok := venuesByID[tmVenue.ID]; !ok {
				if venue := s.transformer.ToVenue(*tmVenue); venue != nil {
					venuesByID[venue.ID] = venue
				}
			}
		}
	}

	venues := make([]*domain.Venue, 0, len(venuesByID))
	for _, v := range venuesByID {
		venues = append(venues, v)
	}

	s.logger.Info("transformed partition",
		"city", p.Label(), "events", len(events), "venues", len(venues))

	if len(venues) > 0 {
		if err := s.venueRepo.SaveBatch(ctx, venues); err != nil {
			return nil, fmt.Errorf("save venues for %s: %w", p.Label(), err)
		}
	}
	if len(events) > 0 {
		if err := s.eventRepo.SaveBatch(ctx, events); err != nil {
			return nil, fmt.Errorf("save events for %s: %w", p.Label(), err)
		}
	}

	return &domain.CityResult{
		City:          p.Label(),
		EventsFound:   len(raw),
		EventsSaved:   len(events),
		EventsSkipped: len(raw) - len(events),
		VenuesFound:   len(venues),
		VenuesSaved:   len(venues),
	}, nil
}

// notify emails the run summary when a mailer and recipient are configured.
// Notification failures are logged and never affect the result.
func (s *syncService) notify(result *domain.SyncResult) {
	if s.mailer == nil || s.reportTo == "" {
		return
	}
	subject := fmt.Sprintf("TickX catalog sync %s", outcome(result))
	text := fmt.Sprintf(
		"Run %s: success=%t events=%d venues=%d duration=%dms",
		result.RunID, result.Success, result.TotalEventsSaved,
		result.TotalVenuesSaved, result.DurationMs)
	if result.Error != "" {
		text += "\nerror: " + result.Error
	}
	for _, cr := range result.CityResults {
		text += fmt.Sprintf("\n%s: %d/%d events saved, %d venues",
			cr.City, cr.EventsSaved, cr.EventsFound, cr.VenuesSaved)
	}
	if err := s.mailer.Send(s.reportTo, subject, "", text); err != nil {
		s.logger.Error("sync report notification failed", "err", err)
	}
}

func outcome(result *domain.SyncResult) string {
	if result.Success {
		return "succeeded"
	}
	return "failed"
}
