package providers

import (
	"context"
	"errors"
	"net/url"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const geminiSystemPrompt = `You are OSINT Café's cybersecurity AI assistant. Provide expert guidance on digital safety, threat analysis, and online investigation techniques. Keep responses focused and actionable.`

var errEmptyCompletion = errors.New("empty completion")

// GeminiClient adapts the Gemini generateContent API.
type GeminiClient struct {
	client  *Client
	apiKey  string
	BaseURL string
}

// NewGeminiClient creates a Gemini adapter.
func NewGeminiClient(client *Client, apiKey string) *GeminiClient {
	return &GeminiClient{
		client:  client,
		apiKey:  apiKey,
		BaseURL: geminiBaseURL,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the user message prefixed with the system prompt and returns
// the model's reply text. The API key travels as a query parameter, which is
// how this provider authenticates.
func (g *GeminiClient) Generate(ctx context.Context, message string) (string, error) {
	request := geminiGenerateRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: geminiSystemPrompt + "\n\nUser: " + message}}},
		},
	}
	request.GenerationConfig.Temperature = 0.7
	request.GenerationConfig.MaxOutputTokens = 1000

	endpoint := g.BaseURL + "/models/gemini-pro:generateContent?key=" + url.QueryEscape(g.apiKey)

	var response geminiGenerateResponse
	if err := g.client.postJSON(ctx, "gemini", endpoint, nil, request, &response); err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 || response.Candidates[0].Content.Parts[0].Text == "" {
		return "", &models.ProviderPayloadError{Provider: "gemini", Cause: errEmptyCompletion}
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}
