package providers

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"strings"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
)

const virusTotalBaseURL = "https://www.virustotal.com/api/v3"

// DetectionStats are the engine-vote counts VirusTotal reports for a sample.
type DetectionStats struct {
	Harmless   int `json:"harmless"`
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
	Undetected int `json:"undetected"`
}

// URLReport is the typed subset of a VirusTotal URL analysis this layer
// consumes.
type URLReport struct {
	Stats            DetectionStats
	Categories       []string
	PhishingDetected bool
}

// VirusTotalClient adapts the VirusTotal v3 API.
type VirusTotalClient struct {
	client  *Client
	apiKey  string
	BaseURL string
}

// NewVirusTotalClient creates a VirusTotal adapter.
func NewVirusTotalClient(client *Client, apiKey string) *VirusTotalClient {
	return &VirusTotalClient{
		client:  client,
		apiKey:  apiKey,
		BaseURL: virusTotalBaseURL,
	}
}

type vtURLResponse struct {
	Data struct {
		Attributes struct {
			LastAnalysisStats   DetectionStats    `json:"last_analysis_stats"`
			Categories          map[string]string `json:"categories"`
			LastAnalysisResults map[string]struct {
				Category string `json:"category"`
			} `json:"last_analysis_results"`
		} `json:"attributes"`
	} `json:"data"`
}

// URLReport fetches the existing analysis for a URL. When VirusTotal has
// never seen the URL (404) it is submitted for analysis and the 404 is
// returned, letting the orchestrator fall through to the synthetic result
// while the scan runs.
func (v *VirusTotalClient) URLReport(ctx context.Context, rawURL string) (*URLReport, error) {
	urlID := strings.TrimRight(base64.URLEncoding.EncodeToString([]byte(rawURL)), "=")

	headers := map[string]string{"x-apikey": v.apiKey}

	var response vtURLResponse
	err := v.client.getJSON(ctx, "virustotal", v.BaseURL+"/urls/"+urlID, headers, &response)
	if err != nil {
		var httpErr *models.ProviderHTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == 404 {
			v.submitURL(ctx, rawURL)
		}
		return nil, err
	}

	attrs := response.Data.Attributes

	categories := make([]string, 0, len(attrs.Categories))
	for category := range attrs.Categories {
		categories = append(categories, category)
	}

	phishing := false
	for _, result := range attrs.LastAnalysisResults {
		if result.Category == "phishing" {
			phishing = true
			break
		}
	}

	return &URLReport{
		Stats:            attrs.LastAnalysisStats,
		Categories:       categories,
		PhishingDetected: phishing,
	}, nil
}

// submitURL queues a URL for analysis. Failures are deliberately dropped;
// the caller already has a 404 to act on.
func (v *VirusTotalClient) submitURL(ctx context.Context, rawURL string) {
	headers := map[string]string{"x-apikey": v.apiKey}
	form := "url=" + url.QueryEscape(rawURL)
	_ = v.client.postForm(ctx, "virustotal", v.BaseURL+"/urls", headers, form)
}
