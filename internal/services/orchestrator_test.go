package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/config"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/logger"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/metrics"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/ratelimiter"

	"github.com/stretchr/testify/assert"
)

func newTestDriver() *fallbackDriver {
	return newFallbackDriver(ratelimiter.New(), metrics.NewCollector(), logger.NewNop())
}

func newTestRegistry(cfg config.ProvidersConfig) *CredentialRegistry {
	return NewCredentialRegistry(&cfg)
}

func TestAttemptInOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstSuccessWins", func(t *testing.T) {
		driver := newTestDriver()

		result := attemptInOrder(ctx, driver, []providerAttempt[string]{
			{name: "primary", enabled: true, limit: 10, window: time.Minute, call: func(ctx context.Context) (string, error) {
				return "primary", nil
			}},
			{name: "secondary", enabled: true, limit: 10, window: time.Minute, call: func(ctx context.Context) (string, error) {
				t.Fatal("secondary should not be called")
				return "", nil
			}},
		}, func() string { return "synthetic" })

		assert.Equal(t, "primary", result)
	})

	t.Run("FailureFallsThrough", func(t *testing.T) {
		driver := newTestDriver()

		result := attemptInOrder(ctx, driver, []providerAttempt[string]{
			{name: "primary", enabled: true, limit: 10, window: time.Minute, call: func(ctx context.Context) (string, error) {
				return "", errors.New("boom")
			}},
			{name: "secondary", enabled: true, limit: 10, window: time.Minute, call: func(ctx context.Context) (string, error) {
				return "secondary", nil
			}},
		}, func() string { return "synthetic" })

		assert.Equal(t, "secondary", result)
	})

	t.Run("DisabledProviderSkipped", func(t *testing.T) {
		driver := newTestDriver()

		result := attemptInOrder(ctx, driver, []providerAttempt[string]{
			{name: "primary", enabled: false, limit: 10, window: time.Minute, call: func(ctx context.Context) (string, error) {
				t.Fatal("disabled provider should not be called")
				return "", nil
			}},
		}, func() string { return "synthetic" })

		assert.Equal(t, "synthetic", result)
	})

	t.Run("RateLimitedProviderSkipped", func(t *testing.T) {
		driver := newTestDriver()

		// Zero-request quota denies every call.
		result := attemptInOrder(ctx, driver, []providerAttempt[string]{
			{name: "primary", enabled: true, limit: 0, window: time.Minute, call: func(ctx context.Context) (string, error) {
				t.Fatal("rate-limited provider should not be called")
				return "", nil
			}},
		}, func() string { return "synthetic" })

		assert.Equal(t, "synthetic", result)

		snapshot := driver.collector.GetMetrics()
		assert.Equal(t, int64(1), snapshot.RateLimitDenials)
		assert.Equal(t, int64(1), snapshot.SyntheticFallbacks)
	})

	t.Run("ExhaustionReachesSynthetic", func(t *testing.T) {
		driver := newTestDriver()

		result := attemptInOrder(ctx, driver, []providerAttempt[string]{
			{name: "primary", enabled: true, limit: 10, window: time.Minute, call: func(ctx context.Context) (string, error) {
				return "", errors.New("boom")
			}},
			{name: "secondary", enabled: true, limit: 10, window: time.Minute, call: func(ctx context.Context) (string, error) {
				return "", errors.New("boom again")
			}},
		}, func() string { return "synthetic" })

		assert.Equal(t, "synthetic", result)

		snapshot := driver.collector.GetMetrics()
		assert.Equal(t, int64(2), snapshot.ProviderCalls)
		assert.Equal(t, int64(2), snapshot.ProviderFailures)
		assert.Equal(t, int64(1), snapshot.SyntheticFallbacks)
	})
}
