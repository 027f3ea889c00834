package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds performance counters for the aggregation layer.
type Metrics struct {
	// Operation metrics
	TotalOperations      int64 `json:"total_operations"`
	SuccessfulOperations int64 `json:"successful_operations"`
	FailedOperations     int64 `json:"failed_operations"`

	// Response time metrics
	AverageResponseTime time.Duration `json:"average_response_time"`
	MinResponseTime     time.Duration `json:"min_response_time"`
	MaxResponseTime     time.Duration `json:"max_response_time"`

	// Cache metrics
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`

	// Provider metrics
	ProviderCalls       int64         `json:"provider_calls"`
	ProviderFailures    int64         `json:"provider_failures"`
	AverageProviderTime time.Duration `json:"average_provider_time"`

	// Fallback metrics: operations answered by the synthetic generator,
	// whether through mock mode or provider exhaustion.
	SyntheticFallbacks int64 `json:"synthetic_fallbacks"`
	RateLimitDenials   int64 `json:"rate_limit_denials"`

	// HTTP request metrics, recorded by the gin middleware. Kept separate
	// from operation counters so a single request that fans out into several
	// operations is not double-counted.
	TotalRequests      int64         `json:"total_requests"`
	SuccessfulRequests int64         `json:"successful_requests"`
	FailedRequests     int64         `json:"failed_requests"`
	AverageRequestTime time.Duration `json:"average_request_time"`

	ActiveOperations int64 `json:"active_operations"`

	totalResponseTime time.Duration
	totalProviderTime time.Duration
	totalRequestTime  time.Duration
	mutex             sync.RWMutex
}

// Collector provides thread-safe metrics collection.
type Collector struct {
	metrics   *Metrics
	startTime time.Time
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		metrics: &Metrics{
			MinResponseTime: time.Duration(^uint64(0) >> 1),
		},
		startTime: time.Now(),
	}
}

// RecordOperation records the start of a public operation.
func (c *Collector) RecordOperation() {
	atomic.AddInt64(&c.metrics.TotalOperations, 1)
	atomic.AddInt64(&c.metrics.ActiveOperations, 1)
}

// RecordOperationComplete records operation completion.
func (c *Collector) RecordOperationComplete(duration time.Duration, success bool) {
	atomic.AddInt64(&c.metrics.ActiveOperations, -1)

	if success {
		atomic.AddInt64(&c.metrics.SuccessfulOperations, 1)
	} else {
		atomic.AddInt64(&c.metrics.FailedOperations, 1)
	}

	c.metrics.mutex.Lock()
	defer c.metrics.mutex.Unlock()

	c.metrics.totalResponseTime += duration

	if duration < c.metrics.MinResponseTime {
		c.metrics.MinResponseTime = duration
	}
	if duration > c.metrics.MaxResponseTime {
		c.metrics.MaxResponseTime = duration
	}

	completed := atomic.LoadInt64(&c.metrics.SuccessfulOperations) + atomic.LoadInt64(&c.metrics.FailedOperations)
	if completed > 0 {
		c.metrics.AverageResponseTime = c.metrics.totalResponseTime / time.Duration(completed)
	}
}

// RecordRequest records the start of an HTTP request.
func (c *Collector) RecordRequest() {
	atomic.AddInt64(&c.metrics.TotalRequests, 1)
}

// RecordRequestComplete records HTTP request completion.
func (c *Collector) RecordRequestComplete(duration time.Duration, success bool) {
	if success {
		atomic.AddInt64(&c.metrics.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&c.metrics.FailedRequests, 1)
	}

	c.metrics.mutex.Lock()
	defer c.metrics.mutex.Unlock()

	c.metrics.totalRequestTime += duration

	completed := atomic.LoadInt64(&c.metrics.SuccessfulRequests) + atomic.LoadInt64(&c.metrics.FailedRequests)
	if completed > 0 {
		c.metrics.AverageRequestTime = c.metrics.totalRequestTime / time.Duration(completed)
	}
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit() {
	atomic.AddInt64(&c.metrics.CacheHits, 1)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss() {
	atomic.AddInt64(&c.metrics.CacheMisses, 1)
}

// RecordProviderCall records an outbound provider attempt and its outcome.
func (c *Collector) RecordProviderCall(duration time.Duration, success bool) {
	atomic.AddInt64(&c.metrics.ProviderCalls, 1)
	if !success {
		atomic.AddInt64(&c.metrics.ProviderFailures, 1)
	}

	c.metrics.mutex.Lock()
	defer c.metrics.mutex.Unlock()

	c.metrics.totalProviderTime += duration

	calls := atomic.LoadInt64(&c.metrics.ProviderCalls)
	if calls > 0 {
		c.metrics.AverageProviderTime = c.metrics.totalProviderTime / time.Duration(calls)
	}
}

// RecordSyntheticFallback records an operation answered by the synthetic
// generator.
func (c *Collector) RecordSyntheticFallback() {
	atomic.AddInt64(&c.metrics.SyntheticFallbacks, 1)
}

// RecordRateLimitDenial records a provider attempt skipped by the limiter.
func (c *Collector) RecordRateLimitDenial() {
	atomic.AddInt64(&c.metrics.RateLimitDenials, 1)
}

// GetMetrics returns a snapshot of current metrics.
func (c *Collector) GetMetrics() *Metrics {
	c.metrics.mutex.RLock()
	defer c.metrics.mutex.RUnlock()

	return &Metrics{
		TotalOperations:      atomic.LoadInt64(&c.metrics.TotalOperations),
		SuccessfulOperations: atomic.LoadInt64(&c.metrics.SuccessfulOperations),
		FailedOperations:     atomic.LoadInt64(&c.metrics.FailedOperations),
		AverageResponseTime:  c.metrics.AverageResponseTime,
		MinResponseTime:      c.metrics.MinResponseTime,
		MaxResponseTime:      c.metrics.MaxResponseTime,
		CacheHits:            atomic.LoadInt64(&c.metrics.CacheHits),
		CacheMisses:          atomic.LoadInt64(&c.metrics.CacheMisses),
		ProviderCalls:        atomic.LoadInt64(&c.metrics.ProviderCalls),
		ProviderFailures:     atomic.LoadInt64(&c.metrics.ProviderFailures),
		AverageProviderTime:  c.metrics.AverageProviderTime,
		SyntheticFallbacks:   atomic.LoadInt64(&c.metrics.SyntheticFallbacks),
		RateLimitDenials:     atomic.LoadInt64(&c.metrics.RateLimitDenials),
		TotalRequests:        atomic.LoadInt64(&c.metrics.TotalRequests),
		SuccessfulRequests:   atomic.LoadInt64(&c.metrics.SuccessfulRequests),
		FailedRequests:       atomic.LoadInt64(&c.metrics.FailedRequests),
		AverageRequestTime:   c.metrics.AverageRequestTime,
		ActiveOperations:     atomic.LoadInt64(&c.metrics.ActiveOperations),
	}
}

// GetUptime returns time elapsed since collector creation.
func (c *Collector) GetUptime() time.Duration {
	return time.Since(c.startTime)
}

// GetSuccessRate returns the percentage of successful operations.
func (c *Collector) GetSuccessRate() float64 {
	total := atomic.LoadInt64(&c.metrics.SuccessfulOperations) + atomic.LoadInt64(&c.metrics.FailedOperations)
	if total == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&c.metrics.SuccessfulOperations)) / float64(total) * 100
}

// GetCacheHitRatio returns the percentage of cache hits.
func (c *Collector) GetCacheHitRatio() float64 {
	hits := atomic.LoadInt64(&c.metrics.CacheHits)
	total := hits + atomic.LoadInt64(&c.metrics.CacheMisses)
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Reset clears all counters. Intended for tests.
func (c *Collector) Reset() {
	c.metrics.mutex.Lock()
	defer c.metrics.mutex.Unlock()

	c.metrics.TotalOperations = 0
	c.metrics.SuccessfulOperations = 0
	c.metrics.FailedOperations = 0
	c.metrics.AverageResponseTime = 0
	c.metrics.MinResponseTime = time.Duration(^uint64(0) >> 1)
	c.metrics.MaxResponseTime = 0
	c.metrics.CacheHits = 0
	c.metrics.CacheMisses = 0
	c.metrics.ProviderCalls = 0
	c.metrics.ProviderFailures = 0
	c.metrics.AverageProviderTime = 0
	c.metrics.SyntheticFallbacks = 0
	c.metrics.RateLimitDenials = 0
	c.metrics.TotalRequests = 0
	c.metrics.SuccessfulRequests = 0
	c.metrics.FailedRequests = 0
	c.metrics.AverageRequestTime = 0
	c.metrics.ActiveOperations = 0
	c.metrics.totalResponseTime = 0
	c.metrics.totalProviderTime = 0
	c.metrics.totalRequestTime = 0
	c.startTime = time.Now()
}
