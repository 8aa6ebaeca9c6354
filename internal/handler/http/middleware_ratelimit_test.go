package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClockLimiter builds a limiter whose clock the test controls.
func fixedClockLimiter(t *testing.T, max int, win time.Duration, start time.Time) (*slidingWindowLimiter, *time.Time) {
	t.Helper()

	now := start
	l := newSlidingWindowLimiter(max, win)
	t.Cleanup(l.Stop)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestSlidingWindowLimiter_DeniesOverBudget(t *testing.T) {
	l, _ := fixedClockLimiter(t, 5, time.Minute, time.Unix(1_000_000, 0))

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1")
		require.True(t, allowed, "attempt %d is within budget", i+1)
	}

	allowed, retryAfter := l.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retryAfter)
}

func TestSlidingWindowLimiter_BurstAcrossBoundaryDenied(t *testing.T) {
	start := time.Unix(1_000_000, 0)
	l, now := fixedClockLimiter(t, 5, time.Minute, start)

	// exhaust the budget just before the first minute ends
	*now = start.Add(55 * time.Second)
	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1")
		require.True(t, allowed)
	}

	// ten seconds later a fixed window would have reset; the sliding one
	// still counts the burst
	*now = start.Add(65 * time.Second)
	allowed, retryAfter := l.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 50*time.Second, retryAfter)

	// once the burst ages out the key is allowed again
	*now = start.Add(116 * time.Second)
	allowed, _ = l.Allow("10.0.0.1")
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := fixedClockLimiter(t, 2, time.Minute, time.Unix(1_000_000, 0))

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("10.0.0.1")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.1")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2")
	assert.True(t, allowed, "a throttled neighbour must not affect other clients")
}

func TestSlidingWindowLimiter_CleanupDropsStaleKeys(t *testing.T) {
	start := time.Unix(1_000_000, 0)
	l, now := fixedClockLimiter(t, 5, time.Minute, start)

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")

	*now = start.Add(2 * time.Minute)
	l.cleanup()

	for _, shard := range l.shards {
		shard.mu.Lock()
		assert.Empty(t, shard.attempts)
		shard.mu.Unlock()
	}
}
