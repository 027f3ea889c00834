package providers

import (
	"context"
	"net/url"
	"strconv"
)

const abuseIPDBBaseURL = "https://api.abuseipdb.com/api/v2"

// IPReport is the typed subset of an AbuseIPDB check this layer consumes.
type IPReport struct {
	AbuseConfidence int
	CountryCode     string
	ISP             string
	Categories      []string
}

// AbuseIPDBClient adapts the AbuseIPDB v2 API.
type AbuseIPDBClient struct {
	client  *Client
	apiKey  string
	BaseURL string
}

// NewAbuseIPDBClient creates an AbuseIPDB adapter.
func NewAbuseIPDBClient(client *Client, apiKey string) *AbuseIPDBClient {
	return &AbuseIPDBClient{
		client:  client,
		apiKey:  apiKey,
		BaseURL: abuseIPDBBaseURL,
	}
}

type abuseIPDBResponse struct {
	Data struct {
		AbuseConfidencePercentage int    `json:"abuseConfidencePercentage"`
		CountryCode               string `json:"countryCode"`
		ISP                       string `json:"isp"`
		Reports                   []struct {
			Categories []int `json:"categories"`
		} `json:"reports"`
	} `json:"data"`
}

// CheckIP fetches abuse reports for an address over the last 90 days.
func (a *AbuseIPDBClient) CheckIP(ctx context.Context, ip string) (*IPReport, error) {
	endpoint := a.BaseURL + "/check?ipAddress=" + url.QueryEscape(ip) + "&maxAgeInDays=90&verbose"

	headers := map[string]string{
		"Key":    a.apiKey,
		"Accept": "application/json",
	}

	var response abuseIPDBResponse
	if err := a.client.getJSON(ctx, "abuseipdb", endpoint, headers, &response); err != nil {
		return nil, err
	}

	categories := []string{}
	seen := make(map[int]bool)
	for _, report := range response.Data.Reports {
		for _, category := range report.Categories {
			if !seen[category] {
				seen[category] = true
				categories = append(categories, abuseCategoryName(category))
			}
		}
	}

	return &IPReport{
		AbuseConfidence: response.Data.AbuseConfidencePercentage,
		CountryCode:     response.Data.CountryCode,
		ISP:             response.Data.ISP,
		Categories:      categories,
	}, nil
}

// abuseCategoryName maps the numeric AbuseIPDB report categories this layer
// cares about to readable names; unknown codes pass through numerically.
func abuseCategoryName(code int) string {
	switch code {
	case 10:
		return "spam"
	case 14:
		return "scanning"
	case 15:
		return "hacking"
	case 18:
		return "brute-force"
	case 19:
		return "botnet"
	case 20:
		return "exploit"
	case 21:
		return "web-attack"
	default:
		return strconv.Itoa(code)
	}
}
