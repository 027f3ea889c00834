package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
)

// Client is the shared HTTP transport for all provider adapters. The fixed
// timeout is the only cancellation mechanism an adapter call has; nothing
// retries at this layer.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a provider HTTP client with the given timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// getJSON issues a GET and decodes the response into out. Transport failures
// and non-2xx statuses become ProviderHTTPError; undecodable bodies become
// ProviderPayloadError.
func (c *Client) getJSON(ctx context.Context, provider, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &models.ProviderHTTPError{Provider: provider, Message: err.Error()}
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(provider, req, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, provider, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &models.ProviderPayloadError{Provider: provider, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &models.ProviderHTTPError{Provider: provider, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(provider, req, out)
}

// postForm issues a POST with a form-encoded body, ignoring the response
// beyond its status.
func (c *Client) postForm(ctx context.Context, provider, url string, headers map[string]string, form string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form))
	if err != nil {
		return &models.ProviderHTTPError{Provider: provider, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(provider, req, nil)
}

func (c *Client) do(provider string, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.ProviderHTTPError{Provider: provider, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return &models.ProviderHTTPError{Provider: provider, StatusCode: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.ProviderPayloadError{Provider: provider, Cause: err}
	}

	return nil
}
