package ticketmaster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_SpacesCalls(t *testing.T) {
	var slept []time.Duration
	limiter := NewRateLimiter(200 * time.Millisecond)
	limiter.sleep = func(d time.Duration) { slept = append(slept, d) }

	ctx := context.Background()

	// First grant never sleeps.
	require.NoError(t, limiter.Wait(ctx))
	assert.Empty(t, slept)

	// Immediate second grant sleeps out the remainder of the interval.
	require.NoError(t, limiter.Wait(ctx))
	require.Len(t, slept, 1)
	assert.Greater(t, slept[0], time.Duration(0))
	assert.LessOrEqual(t, slept[0], 200*time.Millisecond)
}

func TestRateLimiter_ElapsedIntervalSkipsSleep(t *testing.T) {
	var slept []time.Duration
	limiter := NewRateLimiter(time.Millisecond)
	limiter.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, limiter.Wait(context.Background()))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, limiter.Wait(context.Background()))
	assert.Empty(t, slept)
}

func TestRateLimiter_CancelledContext(t *testing.T) {
	limiter := NewRateLimiter(DefaultMinInterval)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRateLimiter_DefaultsInterval(t *testing.T) {
	limiter := NewRateLimiter(0)
	assert.Equal(t, DefaultMinInterval, limiter.minInterval)
}
