package handlers

import (
	"net/http"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/services"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// StatusHandler exposes service health and provider configuration status.
type StatusHandler struct {
	registry  *services.CredentialRegistry
	collector *metrics.Collector
	version   string
}

// NewStatusHandler creates a new StatusHandler instance.
func NewStatusHandler(registry *services.CredentialRegistry, collector *metrics.Collector, version string) *StatusHandler {
	return &StatusHandler{
		registry:  registry,
		collector: collector,
		version:   version,
	}
}

// GetHealth handles GET /health requests.
func (h *StatusHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    h.collector.GetUptime().String(),
		"version":   h.version,
	})
}

// GetLiveness handles GET /health/live requests.
func (h *StatusHandler) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// GetReadiness handles GET /health/ready requests. The layer degrades to
// synthetic results rather than failing, so readiness only reflects that the
// process is serving.
func (h *StatusHandler) GetReadiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

// GetStatus handles GET /api/status requests: which providers are
// configured, which domains run in mock mode, and the current counters.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mock_mode":            h.registry.MockMode(),
		"configured_providers": h.registry.ConfiguredProviders(),
		"metrics":              h.collector.GetMetrics(),
		"success_rate":         h.collector.GetSuccessRate(),
		"cache_hit_ratio":      h.collector.GetCacheHitRatio(),
		"uptime":               h.collector.GetUptime().String(),
		"timestamp":            time.Now(),
	})
}
