package handlers

import (
	"net/http"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/services"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ThreatHandler handles threat-intelligence HTTP requests.
type ThreatHandler struct {
	threats services.ThreatServiceInterface
}

// NewThreatHandler creates a new ThreatHandler instance.
func NewThreatHandler(threats services.ThreatServiceInterface) *ThreatHandler {
	return &ThreatHandler{threats: threats}
}

// URLAnalysisRequest is the body of POST /api/threats/url.
type URLAnalysisRequest struct {
	URL string `json:"url"`
}

// IPAnalysisRequest is the body of POST /api/threats/ip.
type IPAnalysisRequest struct {
	IP string `json:"ip"`
}

// EmailAnalysisRequest is the body of POST /api/threats/email.
type EmailAnalysisRequest struct {
	Email string `json:"email"`
}

// FileAnalysisRequest is the body of POST /api/threats/file. Only metadata
// travels; file contents never reach this API.
type FileAnalysisRequest struct {
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}

// AnalyzeURL handles POST /api/threats/url requests.
func (h *ThreatHandler) AnalyzeURL(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req URLAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid JSON in URL analysis request", zap.Error(err))
		models.HandleError(c, models.NewAppErrorWithDetails(
			models.ErrorCodeMalformedJSON, "Invalid JSON format", err.Error()))
		return
	}

	analysis, err := h.threats.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// AnalyzeIP handles POST /api/threats/ip requests.
func (h *ThreatHandler) AnalyzeIP(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req IPAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid JSON in IP analysis request", zap.Error(err))
		models.HandleError(c, models.NewAppErrorWithDetails(
			models.ErrorCodeMalformedJSON, "Invalid JSON format", err.Error()))
		return
	}

	analysis, err := h.threats.AnalyzeIP(c.Request.Context(), req.IP)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// AnalyzeEmail handles POST /api/threats/email requests.
func (h *ThreatHandler) AnalyzeEmail(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req EmailAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid JSON in email analysis request", zap.Error(err))
		models.HandleError(c, models.NewAppErrorWithDetails(
			models.ErrorCodeMalformedJSON, "Invalid JSON format", err.Error()))
		return
	}

	analysis, err := h.threats.AnalyzeEmail(c.Request.Context(), req.Email)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// AnalyzeFile handles POST /api/threats/file requests.
func (h *ThreatHandler) AnalyzeFile(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req FileAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid JSON in file analysis request", zap.Error(err))
		models.HandleError(c, models.NewAppErrorWithDetails(
			models.ErrorCodeMalformedJSON, "Invalid JSON format", err.Error()))
		return
	}

	log.Info("Processing file analysis",
		zap.String("file_name", req.FileName),
		zap.Int64("file_size", req.Size),
	)

	analysis, err := h.threats.AnalyzeFile(c.Request.Context(), req.FileName, req.Size)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// LiveThreatData handles GET /api/threats/live requests.
func (h *ThreatHandler) LiveThreatData(c *gin.Context) {
	data, err := h.threats.LiveThreatData(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}
