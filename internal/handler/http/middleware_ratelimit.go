package http

import (
	"hash/fnv"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/logger"
)

// limiterShardCount bounds lock contention: keys hash onto independent
// shards so one client's update never blocks the rest of the map.
const limiterShardCount = 16

// limiterShard holds the attempt history for the keys hashed onto it.
// Each key maps to the timestamps of its attempts inside the current
// window, oldest first; entries older than the window are pruned lazily
// on touch.
type limiterShard struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

// slidingWindowLimiter throttles requests per client key over a true
// sliding window: a key is allowed at most max attempts within any
// win-sized interval, so a burst straddling a boundary cannot double the
// budget. Stale keys are also swept wholesale by a background loop so an
// abandoned key does not pin memory.
type slidingWindowLimiter struct {
	win    time.Duration
	max    int
	shards [limiterShardCount]*limiterShard
	stopCh chan struct{}

	// now is swappable so tests can drive the clock without sleeping.
	now func() time.Time
}

func newSlidingWindowLimiter(max int, win time.Duration) *slidingWindowLimiter {
	l := &slidingWindowLimiter{
		win:    win,
		max:    max,
		stopCh: make(chan struct{}),
		now:    time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &limiterShard{attempts: make(map[string][]time.Time)}
	}
	go l.cleanupLoop()
	return l
}

func (l *slidingWindowLimiter) shardFor(key string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return l.shards[h.Sum32()%limiterShardCount]
}

// Allow reports whether the key may proceed, and if not, how long until
// the oldest attempt inside the window ages out.
func (l *slidingWindowLimiter) Allow(key string) (bool, time.Duration) {
	now := l.now()
	cutoff := now.Add(-l.win)

	shard := l.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	history := shard.attempts[key]
	for len(history) > 0 && !history[0].After(cutoff) {
		history = history[1:]
	}

	if len(history) >= l.max {
		shard.attempts[key] = history
		return false, history[0].Add(l.win).Sub(now)
	}

	shard.attempts[key] = append(history, now)
	return true, 0
}

func (l *slidingWindowLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

// cleanup drops keys whose every attempt has aged out of the window.
func (l *slidingWindowLimiter) cleanup() {
	cutoff := l.now().Add(-l.win)
	for _, shard := range l.shards {
		shard.mu.Lock()
		for key, history := range shard.attempts {
			if len(history) == 0 || !history[len(history)-1].After(cutoff) {
				delete(shard.attempts, key)
			}
		}
		shard.mu.Unlock()
	}
}

func (l *slidingWindowLimiter) Stop() {
	close(l.stopCh)
}

// rateLimitLogin throttles the password step per client IP. The check runs
// BEFORE any credential work, so a flood of attempts never reaches bcrypt
// or the database.
func (h *Handler) rateLimitLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		if allowed, retryAfter := h.loginLimiter.Allow(key); !allowed {
			logger.FromRequest(r).Warn().
				Str("ip", key).
				Dur("retry_after", retryAfter).
				Msg("login rate limit exceeded")

			w.Header().Set("Retry-After", retryAfter.Round(time.Second).String())
			writeError(w, errTooManyLoginAttempts)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr; the raw value is used when the
// split fails.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
