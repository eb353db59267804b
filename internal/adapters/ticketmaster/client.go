package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tickx/internal/domain"
	"tickx/internal/metrics"
)

const defaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

const (
	syncHorizonMonths = 6
	pageSize          = 200
	// Deep paging limit: the Discovery API rejects size*page >= 1000, so a
	// window never fetches more than 5 pages regardless of totalPages.
	maxPagesPerWindow = 5
	requestTimeout    = 30 * time.Second
)

type client struct {
	http    *http.Client
	limiter *RateLimiter
	logger  *slog.Logger
	baseURL string
	now     func() time.Time
}

// NewClient returns a fetcher that calls the Ticketmaster Discovery API
// through the given rate limiter.
func NewClient(httpClient *http.Client, limiter *RateLimiter, logger *slog.Logger) domain.EventFetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if limiter == nil {
		limiter = NewRateLimiter(DefaultMinInterval)
	}
	return &client{
		http:    httpClient,
		limiter: limiter,
		logger:  logger,
		baseURL: defaultBaseURL,
		now:     time.Now,
	}
}

func (c *client) request(ctx context.Context, endpoint, apiKey string, params url.Values) (*domain.TMEventsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params.Set("apikey", apiKey)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch from ticketmaster: %w", err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var data domain.TMEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	return &data, nil
}

// FetchCityEvents fetches the full sync horizon for one city in one-month
// windows, paging each window and deduplicating by event id across windows.
// A page error abandons the rest of its window but not the remaining windows,
// so the call degrades to partial data instead of failing the partition.
func (c *client) FetchCityEvents(ctx context.Context, city, stateCode, apiKey string) ([]domain.TMEvent, error) {
	var all []domain.TMEvent
	seen := make(map[string]struct{})

	today := c.now().UTC()
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	for offset := 0; offset < syncHorizonMonths; offset++ {
		windowStart := firstOfMonth.AddDate(0, offset, 0)
		windowEnd := windowStart.AddDate(0, 1, -1)

		startDateTime := windowStart.Format("2006-01-02") + "T00:00:00Z"
		endDateTime := windowEnd.Format("2006-01-02") + "T23:59:59Z"

		c.logger.Info("fetching window",
			"city", city, "state", stateCode,
			"start", windowStart.Format("2006-01-02"), "end", windowEnd.Format("2006-01-02"))

		for page := 0; page < maxPagesPerWindow; page++ {
			params := url.Values{}
			params.Set("city", city)
			params.Set("stateCode", stateCode)
			params.Set("countryCode", "US")
			params.Set("startDateTime", startDateTime)
			params.Set("endDateTime", endDateTime)
			params.Set("size", strconv.Itoa(pageSize))
			params.Set("page", strconv.Itoa(page))
			params.Set("sort", "date,asc")

			resp, err := c.request(ctx, "/events.json", apiKey, params)
			if err != nil {
				c.logger.Error("page fetch failed, skipping rest of window",
					"city", city, "page", page, "err", err)
				break
			}

			var got int
			if resp.Embedded != nil {
				got = len(resp.Embedded.Events)
				for _, ev := range resp.Embedded.Events {
					if _, ok := seen[ev.ID]; ok {
						continue
					}
					seen[ev.ID] = struct{}{}
					all = append(all, ev)
				}
			}

			totalPages := 0
			if resp.Page != nil {
				totalPages = resp.Page.TotalPages
			}
			c.logger.Debug("fetched page",
				"city", city, "page", page, "total_pages", totalPages,
				"events_on_page", got, "total", len(all))

			if page+1 >= totalPages {
				break
			}
		}
	}

	c.logger.Info("city fetch complete", "city", city, "state", stateCode, "events", len(all))
	return all, nil
}
