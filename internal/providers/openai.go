package providers

import (
	"context"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
)

const openAIBaseURL = "https://api.openai.com/v1"

const openAISystemPrompt = `You are OSINT Café's AI assistant, specializing in cybersecurity, digital investigation, and online safety. You help users with:

1. Threat analysis and risk assessment
2. Dating safety and romance scam detection
3. Blockchain verification and crypto security
4. Digital identity verification
5. OSINT (Open Source Intelligence) techniques
6. Cybersecurity best practices

Always provide:
- Clear, actionable advice
- Specific threat level assessments when relevant
- Confidence scores for your analysis
- Practical next steps for users

Keep responses concise but informative. Focus on helping users stay safe online.`

// ChatTurn is one turn of conversation history sent upstream.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIClient adapts the OpenAI chat completion API.
type OpenAIClient struct {
	client  *Client
	apiKey  string
	BaseURL string
}

// NewOpenAIClient creates an OpenAI adapter.
func NewOpenAIClient(client *Client, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client:  client,
		apiKey:  apiKey,
		BaseURL: openAIBaseURL,
	}
}

type openAIChatRequest struct {
	Model       string     `json:"model"`
	Messages    []ChatTurn `json:"messages"`
	MaxTokens   int        `json:"max_tokens"`
	Temperature float64    `json:"temperature"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends the system prompt, recent history and the new user message, and
// returns the assistant's reply text.
func (o *OpenAIClient) Chat(ctx context.Context, history []ChatTurn, message string) (string, error) {
	messages := make([]ChatTurn, 0, len(history)+2)
	messages = append(messages, ChatTurn{Role: "system", Content: openAISystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatTurn{Role: "user", Content: message})

	request := openAIChatRequest{
		Model:       "gpt-4o-mini",
		Messages:    messages,
		MaxTokens:   1000,
		Temperature: 0.7,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	}

	var response openAIChatResponse
	if err := o.client.postJSON(ctx, "openai", o.BaseURL+"/chat/completions", headers, request, &response); err != nil {
		return "", err
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", &models.ProviderPayloadError{Provider: "openai", Cause: errEmptyCompletion}
	}

	return response.Choices[0].Message.Content, nil
}
