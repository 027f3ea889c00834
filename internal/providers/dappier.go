package providers

import "context"

const dappierBaseURL = "https://api.dappier.com/app/dataapi/v1"

// SearchResult is one web-intelligence hit.
type SearchResult struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// FeedEntry is one item from the live intelligence feed.
type FeedEntry struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// DappierClient adapts the Dappier web-intelligence data API.
type DappierClient struct {
	client  *Client
	apiKey  string
	BaseURL string
}

// NewDappierClient creates a Dappier adapter.
func NewDappierClient(client *Client, apiKey string) *DappierClient {
	return &DappierClient{
		client:  client,
		apiKey:  apiKey,
		BaseURL: dappierBaseURL,
	}
}

type dappierSearchRequest struct {
	Query     string   `json:"query"`
	Limit     int      `json:"limit"`
	Sources   []string `json:"sources"`
	Timeframe string   `json:"timeframe"`
}

type dappierSearchResponse struct {
	Results []SearchResult `json:"results"`
}

type dappierFeedResponse struct {
	Feed []FeedEntry `json:"feed"`
}

// Search queries the intelligence network for threat mentions. The query is
// expanded with scam-related terms so generic profile names still surface
// fraud reports.
func (d *DappierClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	request := dappierSearchRequest{
		Query:     query + " scam fraud dating romance threat",
		Limit:     10,
		Sources:   []string{"news", "forums", "social", "security_reports"},
		Timeframe: "30d",
	}

	headers := map[string]string{
		"Authorization": "Bearer " + d.apiKey,
	}

	var response dappierSearchResponse
	if err := d.client.postJSON(ctx, "dappier", d.BaseURL+"/search", headers, request, &response); err != nil {
		return nil, err
	}

	return response.Results, nil
}

// Feed fetches the live intelligence feed.
func (d *DappierClient) Feed(ctx context.Context) ([]FeedEntry, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + d.apiKey,
	}

	var response dappierFeedResponse
	if err := d.client.getJSON(ctx, "dappier", d.BaseURL+"/feed", headers, &response); err != nil {
		return nil, err
	}

	return response.Feed, nil
}
