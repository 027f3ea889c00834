package handlers

import (
	"net/http"
	"strconv"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/services"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BlockchainHandler handles blockchain verification HTTP requests.
type BlockchainHandler struct {
	blockchain services.BlockchainServiceInterface
}

// NewBlockchainHandler creates a new BlockchainHandler instance.
func NewBlockchainHandler(blockchain services.BlockchainServiceInterface) *BlockchainHandler {
	return &BlockchainHandler{blockchain: blockchain}
}

// WalletAnalysisRequest is the body of POST /api/blockchain/wallet.
type WalletAnalysisRequest struct {
	Address string `json:"address"`
	Network string `json:"network"`
}

// NetworkData handles GET /api/blockchain/network/:network requests.
func (h *BlockchainHandler) NetworkData(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	network := c.Param("network")
	log.Debug("Fetching network data", zap.String("network", network))

	data, err := h.blockchain.NetworkData(c.Request.Context(), network)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// VerifyIdentity handles POST /api/blockchain/verify requests.
func (h *BlockchainHandler) VerifyIdentity(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req models.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid JSON in verification request", zap.Error(err))
		models.HandleError(c, models.NewAppErrorWithDetails(
			models.ErrorCodeMalformedJSON, "Invalid JSON format", err.Error()))
		return
	}

	log.Info("Processing identity verification",
		zap.String("type", req.Type),
		zap.String("network", req.Network),
	)

	result, err := h.blockchain.VerifyIdentity(c.Request.Context(), &req)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeWallet handles POST /api/blockchain/wallet requests.
func (h *BlockchainHandler) AnalyzeWallet(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var req WalletAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid JSON in wallet analysis request", zap.Error(err))
		models.HandleError(c, models.NewAppErrorWithDetails(
			models.ErrorCodeMalformedJSON, "Invalid JSON format", err.Error()))
		return
	}

	log.Info("Processing wallet analysis",
		zap.String("network", req.Network),
	)

	analysis, err := h.blockchain.AnalyzeWallet(c.Request.Context(), req.Address, req.Network)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// RecentTransactions handles GET /api/blockchain/transactions requests.
// Network and limit arrive as query parameters.
func (h *BlockchainHandler) RecentTransactions(c *gin.Context) {
	network := c.DefaultQuery("network", "ethereum")

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			models.HandleError(c, models.NewInputError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	transactions, err := h.blockchain.RecentTransactions(c.Request.Context(), network, limit)
	if err != nil {
		models.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"network":      network,
		"transactions": transactions,
	})
}
