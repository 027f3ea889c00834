package handlers

import (
	"net/http"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/services"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IntelHandler handles web-intelligence HTTP requests.
type IntelHandler struct {
	intel services.WebIntelServiceInterface
}

// NewIntelHandler creates a new IntelHandler instance.
func NewIntelHandler(intel services.WebIntelServiceInterface) *IntelHandler {
	return &IntelHandler{intel: intel}
}

// ThreatSearchRequest is the body of POST /api/intel/search.
type ThreatSearchRequest struct {
	Query string `json:"query"`
}

// SearchThreats handles POST /api/intel/search requests.
func (h *IntelHandler) SearchThreats(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req ThreatSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid JSON in threat search request", zap.Error(err))
		models.HandleError(c, models.NewAppErrorWithDetails(
			models.ErrorCodeMalformedJSON, "Invalid JSON format", err.Error()))
		return
	}

	log.Info("Processing intelligence search",
		zap.Int("query_length", len(req.Query)),
	)

	result, err := h.intel.SearchThreats(c.Request.Context(), req.Query)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LiveThreatFeed handles GET /api/intel/feed requests.
func (h *IntelHandler) LiveThreatFeed(c *gin.Context) {
	feed, err := h.intel.LiveThreatFeed(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feed": feed})
}
