package handlers

import (
	"net/http"
	"strings"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/services"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler handles AI assistant HTTP requests.
type AssistantHandler struct {
	assistant services.AssistantServiceInterface
}

// NewAssistantHandler creates a new AssistantHandler instance.
func NewAssistantHandler(assistant services.AssistantServiceInterface) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// ChatRequest is the body of POST /api/ai/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/ai/chat requests.
func (h *AssistantHandler) Chat(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid JSON in chat request", zap.Error(err))

		models.HandleError(c, models.NewAppErrorWithDetails(
			models.ErrorCodeMalformedJSON,
			"Invalid JSON format",
			err.Error(),
		))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		log.Warn("Empty message in chat request")
		models.HandleError(c, models.NewInputError("message is required"))
		return
	}

	log.Info("Processing chat message",
		zap.Int("message_length", len(req.Message)),
	)

	response, err := h.assistant.SendMessage(c.Request.Context(), req.Message)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// History handles GET /api/ai/history requests.
func (h *AssistantHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"messages": h.assistant.ConversationHistory(),
	})
}

// ClearHistory handles DELETE /api/ai/history requests.
func (h *AssistantHandler) ClearHistory(c *gin.Context) {
	h.assistant.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
