package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	collector := NewCollector()

	t.Run("InitialState", func(t *testing.T) {
		m := collector.GetMetrics()
		assert.Equal(t, int64(0), m.TotalOperations)
		assert.Equal(t, int64(0), m.SuccessfulOperations)
		assert.Equal(t, int64(0), m.FailedOperations)
		assert.Equal(t, int64(0), m.CacheHits)
		assert.Equal(t, int64(0), m.SyntheticFallbacks)
	})

	t.Run("RecordOperation", func(t *testing.T) {
		collector.RecordOperation()
		m := collector.GetMetrics()
		assert.Equal(t, int64(1), m.TotalOperations)
		assert.Equal(t, int64(1), m.ActiveOperations)
	})

	t.Run("RecordOperationComplete", func(t *testing.T) {
		duration := 100 * time.Millisecond
		collector.RecordOperationComplete(duration, true)

		m := collector.GetMetrics()
		assert.Equal(t, int64(1), m.SuccessfulOperations)
		assert.Equal(t, int64(0), m.ActiveOperations)
		assert.Equal(t, duration, m.AverageResponseTime)
		assert.Equal(t, duration, m.MinResponseTime)
		assert.Equal(t, duration, m.MaxResponseTime)
	})

	t.Run("CacheMetrics", func(t *testing.T) {
		collector.RecordCacheHit()
		collector.RecordCacheHit()
		collector.RecordCacheMiss()

		m := collector.GetMetrics()
		assert.Equal(t, int64(2), m.CacheHits)
		assert.Equal(t, int64(1), m.CacheMisses)

		assert.InDelta(t, 66.67, collector.GetCacheHitRatio(), 0.1)
	})

	t.Run("ProviderMetrics", func(t *testing.T) {
		duration := 50 * time.Millisecond
		collector.RecordProviderCall(duration, true)
		collector.RecordProviderCall(duration*2, false)

		m := collector.GetMetrics()
		assert.Equal(t, int64(2), m.ProviderCalls)
		assert.Equal(t, int64(1), m.ProviderFailures)
		assert.Equal(t, duration*3/2, m.AverageProviderTime)
	})

	t.Run("FallbackMetrics", func(t *testing.T) {
		collector.RecordSyntheticFallback()
		collector.RecordRateLimitDenial()

		m := collector.GetMetrics()
		assert.Equal(t, int64(1), m.SyntheticFallbacks)
		assert.Equal(t, int64(1), m.RateLimitDenials)
	})

	t.Run("RequestMetrics", func(t *testing.T) {
		collector.RecordRequest()
		collector.RecordRequestComplete(40*time.Millisecond, true)
		collector.RecordRequest()
		collector.RecordRequestComplete(80*time.Millisecond, false)

		m := collector.GetMetrics()
		assert.Equal(t, int64(2), m.TotalRequests)
		assert.Equal(t, int64(1), m.SuccessfulRequests)
		assert.Equal(t, int64(1), m.FailedRequests)
		assert.Equal(t, 60*time.Millisecond, m.AverageRequestTime)
	})

	t.Run("SuccessRate", func(t *testing.T) {
		collector.Reset()

		collector.RecordOperation()
		collector.RecordOperationComplete(10*time.Millisecond, true)

		collector.RecordOperation()
		collector.RecordOperationComplete(20*time.Millisecond, true)

		collector.RecordOperation()
		collector.RecordOperationComplete(30*time.Millisecond, false)

		assert.InDelta(t, 66.67, collector.GetSuccessRate(), 0.1)
	})

	t.Run("Reset", func(t *testing.T) {
		collector.Reset()

		m := collector.GetMetrics()
		assert.Equal(t, int64(0), m.TotalOperations)
		assert.Equal(t, int64(0), m.ProviderCalls)
		assert.Equal(t, int64(0), m.SyntheticFallbacks)
	})
}
