package services

import (
	"context"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
)

// AssistantServiceInterface defines the AI assistant operations.
type AssistantServiceInterface interface {
	SendMessage(ctx context.Context, message string) (*models.AIResponse, error)
	ConversationHistory() []models.ChatMessage
	ClearHistory()
}

// ThreatServiceInterface defines the threat-intelligence operations.
type ThreatServiceInterface interface {
	AnalyzeURL(ctx context.Context, url string) (*models.ThreatAnalysis, error)
	AnalyzeIP(ctx context.Context, ip string) (*models.ThreatAnalysis, error)
	AnalyzeEmail(ctx context.Context, email string) (*models.ThreatAnalysis, error)
	AnalyzeFile(ctx context.Context, fileName string, size int64) (*models.ThreatAnalysis, error)
	LiveThreatData(ctx context.Context) (*models.LiveThreatData, error)
}

// BlockchainServiceInterface defines the blockchain verification operations.
type BlockchainServiceInterface interface {
	NetworkData(ctx context.Context, network string) (*models.BlockchainData, error)
	VerifyIdentity(ctx context.Context, req *models.VerificationRequest) (*models.VerificationResult, error)
	AnalyzeWallet(ctx context.Context, address, network string) (*models.WalletAnalysis, error)
	RecentTransactions(ctx context.Context, network string, limit int) ([]models.Transaction, error)
}

// WebIntelServiceInterface defines the web-intelligence operations.
type WebIntelServiceInterface interface {
	SearchThreats(ctx context.Context, query string) (*models.WebIntelResult, error)
	LiveThreatFeed(ctx context.Context) ([]models.FeedItem, error)
}
