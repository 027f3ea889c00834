package services

import (
	"context"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/logger"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/metrics"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/ratelimiter"

	"go.uber.org/zap"
)

// providerAttempt describes one provider in a fallback chain: whether it may
// be tried at all, the quota it must respect, and the call itself.
type providerAttempt[T any] struct {
	name    string
	enabled bool
	limit   int
	window  time.Duration
	call    func(ctx context.Context) (T, error)
}

// fallbackDriver is the shared attempt-in-order engine behind every public
// operation. All ten operations funnel through it so their failure handling
// cannot drift apart.
type fallbackDriver struct {
	limiter   *ratelimiter.RateLimiter
	collector *metrics.Collector
	log       *logger.Logger
}

func newFallbackDriver(limiter *ratelimiter.RateLimiter, collector *metrics.Collector, log *logger.Logger) *fallbackDriver {
	return &fallbackDriver{
		limiter:   limiter,
		collector: collector,
		log:       log,
	}
}

// attemptInOrder tries each provider in priority order. A missing credential
// or rate-limit denial skips the provider; a call failure is logged and
// swallowed. Exhaustion terminates in the synthetic generator, which cannot
// fail, so the returned value is always a valid domain shape.
func attemptInOrder[T any](ctx context.Context, d *fallbackDriver, attempts []providerAttempt[T], synthetic func() T) T {
	for _, attempt := range attempts {
		if !attempt.enabled {
			continue
		}

		if !d.limiter.Allow(attempt.name, attempt.limit, attempt.window) {
			d.collector.RecordRateLimitDenial()
			d.log.Debug("Provider skipped by rate limiter",
				zap.String("provider", attempt.name),
			)
			continue
		}

		start := time.Now()
		result, err := attempt.call(ctx)
		d.collector.RecordProviderCall(time.Since(start), err == nil)

		if err != nil {
			d.log.Warn("Provider attempt failed, falling through",
				zap.String("provider", attempt.name),
				zap.Error(err),
			)
			continue
		}

		return result
	}

	d.collector.RecordSyntheticFallback()
	return synthetic()
}
