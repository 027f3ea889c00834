package handlers

import (
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

// Router handles HTTP routing setup.
type Router struct {
	assistantHandler  *AssistantHandler
	threatHandler     *ThreatHandler
	blockchainHandler *BlockchainHandler
	intelHandler      *IntelHandler
	statusHandler     *StatusHandler
}

// NewRouter creates a new Router instance with all handlers.
func NewRouter(
	assistant services.AssistantServiceInterface,
	threats services.ThreatServiceInterface,
	blockchain services.BlockchainServiceInterface,
	intel services.WebIntelServiceInterface,
	statusHandler *StatusHandler,
) *Router {
	return &Router{
		assistantHandler:  NewAssistantHandler(assistant),
		threatHandler:     NewThreatHandler(threats),
		blockchainHandler: NewBlockchainHandler(blockchain),
		intelHandler:      NewIntelHandler(intel),
		statusHandler:     statusHandler,
	}
}

// SetupRoutes configures all API routes.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	api := engine.Group("/api")
	{
		ai := api.Group("/ai")
		{
			ai.POST("/chat", r.assistantHandler.Chat)
			ai.GET("/history", r.assistantHandler.History)
			ai.DELETE("/history", r.assistantHandler.ClearHistory)
		}

		threats := api.Group("/threats")
		{
			threats.POST("/url", r.threatHandler.AnalyzeURL)
			threats.POST("/ip", r.threatHandler.AnalyzeIP)
			threats.POST("/email", r.threatHandler.AnalyzeEmail)
			threats.POST("/file", r.threatHandler.AnalyzeFile)
			threats.GET("/live", r.threatHandler.LiveThreatData)
		}

		blockchain := api.Group("/blockchain")
		{
			blockchain.GET("/network/:network", r.blockchainHandler.NetworkData)
			blockchain.POST("/verify", r.blockchainHandler.VerifyIdentity)
			blockchain.POST("/wallet", r.blockchainHandler.AnalyzeWallet)
			blockchain.GET("/transactions", r.blockchainHandler.RecentTransactions)
		}

		intel := api.Group("/intel")
		{
			intel.POST("/search", r.intelHandler.SearchThreats)
			intel.GET("/feed", r.intelHandler.LiveThreatFeed)
		}

		api.GET("/status", r.statusHandler.GetStatus)
	}
}

// SetupHealthRoutes configures health check routes.
func (r *Router) SetupHealthRoutes(engine *gin.Engine) {
	health := engine.Group("/health")
	{
		health.GET("", r.statusHandler.GetHealth)
		health.GET("/live", r.statusHandler.GetLiveness)
		health.GET("/ready", r.statusHandler.GetReadiness)
	}
}
