package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter implements sliding-window request admission keyed by logical
// endpoint name. Each provider call asks for admission before the HTTP
// request is issued; a denial is not an error, it just tells the caller to
// move on to the next provider or the synthetic fallback.
type RateLimiter struct {
	requests map[string][]time.Time
	mutex    sync.Mutex
	now      func() time.Time
}

// New creates a new RateLimiter with empty windows.
func New() *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// NewWithClock creates a RateLimiter with an injectable clock for tests.
func NewWithClock(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		now:      now,
	}
}

// Allow checks whether a request for the given endpoint key is admitted
// under maxRequests per window. Timestamps older than the window are pruned
// before the check; an admitted request is recorded under the same lock so
// the check and the append are a single atomic step per key.
func (rl *RateLimiter) Allow(endpoint string, maxRequests int, window time.Duration) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	timestamps := rl.requests[endpoint]

	valid := timestamps[:0]
	for _, ts := range timestamps {
		if now.Sub(ts) < window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= maxRequests {
		rl.requests[endpoint] = valid
		return false
	}

	rl.requests[endpoint] = append(valid, now)
	return true
}

// Remaining reports how many requests are still admissible for the endpoint
// within the current window. Used for rate-limit response headers.
func (rl *RateLimiter) Remaining(endpoint string, maxRequests int, window time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	count := 0
	for _, ts := range rl.requests[endpoint] {
		if now.Sub(ts) < window {
			count++
		}
	}

	remaining := maxRequests - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Reset clears the window for a single endpoint key.
func (rl *RateLimiter) Reset(endpoint string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	delete(rl.requests, endpoint)
}

// Cleanup removes windows whose entries have all expired, to keep the map
// from growing unboundedly over the process lifetime.
func (rl *RateLimiter) Cleanup(window time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for endpoint, timestamps := range rl.requests {
		alive := false
		for _, ts := range timestamps {
			if now.Sub(ts) < window {
				alive = true
				break
			}
		}
		if !alive {
			delete(rl.requests, endpoint)
		}
	}
}
