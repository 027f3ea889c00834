package providers

import (
	"context"
	"fmt"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
)

const coinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// MarketData is the typed subset of a CoinGecko simple-price lookup this
// layer consumes. Missing optional fields decode to zero, matching the
// "explicit default" rule for normalizers.
type MarketData struct {
	PriceUSD     float64
	Change24h    float64
	Volume24h    float64
	MarketCapUSD float64
}

// CoinGeckoClient adapts the CoinGecko simple-price API.
type CoinGeckoClient struct {
	client  *Client
	apiKey  string
	BaseURL string
}

// NewCoinGeckoClient creates a CoinGecko adapter.
func NewCoinGeckoClient(client *Client, apiKey string) *CoinGeckoClient {
	return &CoinGeckoClient{
		client:  client,
		apiKey:  apiKey,
		BaseURL: coinGeckoBaseURL,
	}
}

type coinGeckoPrice struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
	USD24hVol    float64 `json:"usd_24h_vol"`
	USDMarketCap float64 `json:"usd_market_cap"`
}

// SimplePrice fetches spot price, 24h change, volume and market cap for one
// coin ID.
func (cg *CoinGeckoClient) SimplePrice(ctx context.Context, coinID string) (*MarketData, error) {
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true&include_24hr_vol=true&include_market_cap=true", cg.BaseURL, coinID)

	headers := map[string]string{}
	if cg.apiKey != "" {
		headers["x-cg-demo-api-key"] = cg.apiKey
	}

	var response map[string]coinGeckoPrice
	if err := cg.client.getJSON(ctx, "coingecko", endpoint, headers, &response); err != nil {
		return nil, err
	}

	price, ok := response[coinID]
	if !ok {
		return nil, &models.ProviderPayloadError{Provider: "coingecko", Cause: fmt.Errorf("coin %q missing from response", coinID)}
	}

	return &MarketData{
		PriceUSD:     price.USD,
		Change24h:    price.USD24hChange,
		Volume24h:    price.USD24hVol,
		MarketCapUSD: price.USDMarketCap,
	}, nil
}
