package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const maxTrackedLimiterKeys = 4096

// attemptLimiter keeps a sliding window of failure times per key.
type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.pruneLocked(key, now, window)) >= limit
}

func (limiter *attemptLimiter) addFailure(key string, now time.Time, window time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if _, tracked := limiter.attempts[key]; !tracked && len(limiter.attempts) >= maxTrackedLimiterKeys {
		limiter.sweepLocked(now, window)
		if len(limiter.attempts) >= maxTrackedLimiterKeys {
			limiter.evictStalestLocked()
		}
	}
	limiter.attempts[key] = append(limiter.pruneLocked(key, now, window), now)
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
}

func (limiter *attemptLimiter) trackedKeys() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.attempts)
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return nil
	}

	threshold := now.Add(-window)
	pruned := values[:0:0]
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return nil
	}
	limiter.attempts[key] = pruned
	return pruned
}

// sweepLocked drops every key whose attempts have all left the window.
func (limiter *attemptLimiter) sweepLocked(now time.Time, window time.Duration) {
	for key := range limiter.attempts {
		limiter.pruneLocked(key, now, window)
	}
}

// evictStalestLocked drops the key whose most recent failure is the oldest.
func (limiter *attemptLimiter) evictStalestLocked() {
	var (
		stalest string
		latest  time.Time
	)
	for key, values := range limiter.attempts {
		last := values[len(values)-1]
		if stalest == "" || last.Before(latest) {
			stalest, latest = key, last
		}
	}
	delete(limiter.attempts, stalest)
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
