package ticketmaster

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval keeps request spacing under Ticketmaster's 5 req/s
// ceiling (~4.5 req/s).
const DefaultMinInterval = 220 * time.Millisecond

// RateLimiter spaces outbound API calls by a minimum interval. The last-grant
// timestamp is mutex-guarded so concurrent partition fetches can share one
// limiter; waiters are released in lock-acquisition order.
type RateLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	last        time.Time
	sleep       func(time.Duration) // overridable in tests
}

// NewRateLimiter returns a limiter enforcing the given spacing. A
// non-positive interval falls back to DefaultMinInterval.
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &RateLimiter{minInterval: minInterval, sleep: time.Sleep}
}

// Wait blocks until minInterval has elapsed since the previous grant, then
// records the new grant time. It returns early with the context's error if
// the context is already done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if since := time.Since(r.last); since < r.minInterval {
		r.sleep(r.minInterval - since)
	}
	r.last = time.Now()
	return nil
}
