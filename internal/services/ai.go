package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/providers"

	"github.com/google/uuid"
)

// historyWindow bounds how many past turns travel upstream with each chat
// completion request.
const historyWindow = 10

// AssistantService answers user messages with a chat-completion provider,
// falling back from OpenAI to Gemini to a canned knowledge base. Every reply
// carries a keyword-based threat signal and follow-up suggestions.
type AssistantService struct {
	registry *CredentialRegistry
	driver   *fallbackDriver
	openai   *providers.OpenAIClient
	gemini   *providers.GeminiClient

	historyMu sync.Mutex
	history   []models.ChatMessage
}

// NewAssistantService creates the AI assistant orchestrator.
func NewAssistantService(registry *CredentialRegistry, driver *fallbackDriver, openai *providers.OpenAIClient, gemini *providers.GeminiClient) *AssistantService {
	return &AssistantService{
		registry: registry,
		driver:   driver,
		openai:   openai,
		gemini:   gemini,
	}
}

// SendMessage produces an assistant reply for the user's message. It always
// resolves: provider trouble of any kind lands on the synthetic response.
func (s *AssistantService) SendMessage(ctx context.Context, message string) (*models.AIResponse, error) {
	start := time.Now()
	s.driver.collector.RecordOperation()

	s.appendHistory(models.ChatRoleUser, message)

	var response *models.AIResponse
	if s.registry.MockMode().AIAssistant {
		s.driver.collector.RecordSyntheticFallback()
		response = s.syntheticResponse(message)
	} else {
		history := s.recentTurns()
		response = attemptInOrder(ctx, s.driver, []providerAttempt[*models.AIResponse]{
			{
				name:    "openai",
				enabled: s.registry.HasCredential(ProviderOpenAI),
				limit:   60,
				window:  time.Minute,
				call: func(ctx context.Context) (*models.AIResponse, error) {
					reply, err := s.openai.Chat(ctx, history, message)
					if err != nil {
						return nil, err
					}
					return s.liveResponse(reply, message), nil
				},
			},
			{
				name:    "gemini",
				enabled: s.registry.HasCredential(ProviderGemini),
				limit:   60,
				window:  time.Minute,
				call: func(ctx context.Context) (*models.AIResponse, error) {
					reply, err := s.gemini.Generate(ctx, message)
					if err != nil {
						return nil, err
					}
					return s.liveResponse(reply, message), nil
				},
			},
		}, func() *models.AIResponse {
			return s.syntheticResponse(message)
		})
	}

	s.appendHistory(models.ChatRoleAssistant, response.Message)
	s.driver.collector.RecordOperationComplete(time.Since(start), true)

	return response, nil
}

// ConversationHistory returns a copy of the conversation so far.
func (s *AssistantService) ConversationHistory() []models.ChatMessage {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	history := make([]models.ChatMessage, len(s.history))
	copy(history, s.history)
	return history
}

// ClearHistory drops the conversation.
func (s *AssistantService) ClearHistory() {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = nil
}

func (s *AssistantService) appendHistory(role models.ChatRole, content string) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = append(s.history, models.ChatMessage{
		ID:        uuid.New().String(),
		Content:   content,
		Role:      role,
		Timestamp: time.Now(),
	})
}

// recentTurns converts the most recent history window into provider turns,
// excluding the user message just appended (the adapter re-adds it last).
func (s *AssistantService) recentTurns() []providers.ChatTurn {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	if len(s.history) == 0 {
		return nil
	}

	past := s.history[:len(s.history)-1]
	if len(past) > historyWindow {
		past = past[len(past)-historyWindow:]
	}

	turns := make([]providers.ChatTurn, len(past))
	for i, msg := range past {
		turns[i] = providers.ChatTurn{Role: string(msg.Role), Content: msg.Content}
	}
	return turns
}

func (s *AssistantService) liveResponse(reply, userMessage string) *models.AIResponse {
	return &models.AIResponse{
		Message:     reply,
		Analysis:    AnalyzeMessageForThreats(userMessage),
		Suggestions: generateSuggestions(userMessage),
	}
}

// syntheticResponse answers from a canned knowledge base keyed on topic
// keywords. It is the terminal fallback and cannot fail.
func (s *AssistantService) syntheticResponse(message string) *models.AIResponse {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "dating") || strings.Contains(lower, "romance") || strings.Contains(lower, "scam") {
		return &models.AIResponse{
			Message: "Dating Safety Analysis\n\n" +
				"Key red flags to watch for:\n" +
				"- Profile inconsistencies or professional-looking photos that don't match\n" +
				"- Profiles that seem too good to be true with minimal information\n" +
				"- Professing love very quickly\n" +
				"- Always having excuses to avoid video calls\n" +
				"- Any request for money, gifts, or financial information\n\n" +
				"Recommended actions: verify identity through video calls, run reverse " +
				"image searches on profile photos, check social media presence across " +
				"platforms, meet in public places, and trust your instincts.",
			Analysis: &models.ThreatSignal{
				ThreatLevel: models.ThreatLevelMedium,
				Confidence:  85,
				Indicators:  []string{"Dating safety inquiry", "Potential scam awareness needed"},
			},
			Suggestions: []string{
				"Upload a profile photo for reverse image analysis",
				"Share conversation screenshots for analysis",
				"Learn about our blockchain verification tools",
			},
		}
	}

	if strings.Contains(lower, "blockchain") || strings.Contains(lower, "crypto") || strings.Contains(lower, "verification") {
		return &models.AIResponse{
			Message: "Blockchain Verification Insights\n\n" +
				"Our verification system provides cryptographic proof of identity " +
				"authenticity, immutable records on a distributed ledger, real-time " +
				"status updates, and multi-network support (Ethereum, Bitcoin, Polygon).\n\n" +
				"Trust scores weigh historical transaction patterns, wallet age and " +
				"activity, cross-platform verification, and community reputation.",
			Analysis: &models.ThreatSignal{
				ThreatLevel: models.ThreatLevelLow,
				Confidence:  95,
				Indicators:  []string{"Blockchain verification inquiry", "Educational request"},
			},
			Suggestions: []string{
				"Start a new blockchain verification",
				"Check live network status",
				"View recent verification history",
			},
		}
	}

	if strings.Contains(lower, "threat") || strings.Contains(lower, "malware") || strings.Contains(lower, "phishing") {
		return &models.AIResponse{
			Message: "Threat Intelligence Analysis\n\n" +
				"High-priority threats right now include sophisticated phishing " +
				"campaigns targeting crypto wallets, AI-generated deepfake romance " +
				"scams, and social engineering via fake tech support.\n\n" +
				"Protection strategies: enable 2FA on all critical accounts, use " +
				"hardware security keys where possible, verify sender identity before " +
				"clicking links, and keep software updated. Scan suspicious URLs " +
				"before clicking and monitor financial accounts for unauthorized " +
				"activity.",
			Analysis: &models.ThreatSignal{
				ThreatLevel: models.ThreatLevelHigh,
				Confidence:  92,
				Indicators:  []string{"Threat intelligence inquiry", "Active threat awareness needed"},
			},
			Suggestions: []string{
				"Submit a URL for threat analysis",
				"Upload a suspicious file for scanning",
				"Check the latest threat intelligence feeds",
			},
		}
	}

	return &models.AIResponse{
		Message: "Welcome to OSINT Café AI Assistant!\n\n" +
			"I can help with investigation and analysis (dating profile " +
			"verification, threat intelligence, digital forensics guidance), " +
			"blockchain and crypto (identity verification, wallet security " +
			"analysis, transaction monitoring), and security education " +
			"(phishing detection, privacy protection, OSINT techniques).\n\n" +
			"What specific area would you like to explore?",
		Analysis: &models.ThreatSignal{
			ThreatLevel: models.ThreatLevelLow,
			Confidence:  100,
			Indicators:  []string{"General inquiry", "Information seeking"},
		},
		Suggestions: []string{
			"Ask about dating safety verification",
			"Learn about blockchain verification",
			"Explore threat intelligence features",
		},
	}
}

// generateSuggestions proposes up to three follow-up actions based on what
// the user asked about.
func generateSuggestions(message string) []string {
	lower := strings.ToLower(message)
	suggestions := []string{}

	if strings.Contains(lower, "dating") || strings.Contains(lower, "profile") {
		suggestions = append(suggestions, "Upload profile image for reverse search", "Run dating safety verification")
	}
	if strings.Contains(lower, "email") || strings.Contains(lower, "phone") {
		suggestions = append(suggestions, "Verify contact information", "Check social media presence")
	}
	if strings.Contains(lower, "url") || strings.Contains(lower, "link") {
		suggestions = append(suggestions, "Analyze URL for threats", "Check domain reputation")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"Ask about specific security concerns",
			"Explore our verification tools",
			"Learn about threat prevention",
		)
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}
