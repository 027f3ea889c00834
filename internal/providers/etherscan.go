package providers

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
)

const etherscanBaseURL = "https://api.etherscan.io/api"

// EtherscanTx is one transaction from an account transaction list.
type EtherscanTx struct {
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
}

// EtherscanClient adapts the Etherscan account and proxy APIs.
type EtherscanClient struct {
	client  *Client
	apiKey  string
	BaseURL string
}

// NewEtherscanClient creates an Etherscan adapter.
func NewEtherscanClient(client *Client, apiKey string) *EtherscanClient {
	return &EtherscanClient{
		client:  client,
		apiKey:  apiKey,
		BaseURL: etherscanBaseURL,
	}
}

type etherscanStringResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

type etherscanTxListResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Result  []EtherscanTx `json:"result"`
}

type etherscanProxyResponse struct {
	Result string `json:"result"`
}

type etherscanGasOracleResponse struct {
	Result struct {
		ProposeGasPrice string `json:"ProposeGasPrice"`
	} `json:"result"`
}

// Balance returns the account balance in ETH, converted from wei.
func (e *EtherscanClient) Balance(ctx context.Context, address string) (float64, error) {
	endpoint := fmt.Sprintf("%s?module=account&action=balance&address=%s&tag=latest&apikey=%s", e.BaseURL, address, e.apiKey)

	var response etherscanStringResponse
	if err := e.client.getJSON(ctx, "etherscan", endpoint, nil, &response); err != nil {
		return 0, err
	}

	wei, ok := new(big.Float).SetString(response.Result)
	if !ok {
		return 0, &models.ProviderPayloadError{Provider: "etherscan", Cause: fmt.Errorf("non-numeric balance %q", response.Result)}
	}

	eth, _ := new(big.Float).Quo(wei, big.NewFloat(1e18)).Float64()
	return eth, nil
}

// TransactionCount returns the account nonce, decoded from the proxy's hex
// quantity.
func (e *EtherscanClient) TransactionCount(ctx context.Context, address string) (int, error) {
	endpoint := fmt.Sprintf("%s?module=proxy&action=eth_getTransactionCount&address=%s&tag=latest&apikey=%s", e.BaseURL, address, e.apiKey)

	var response etherscanProxyResponse
	if err := e.client.getJSON(ctx, "etherscan", endpoint, nil, &response); err != nil {
		return 0, err
	}

	count, err := parseHexQuantity(response.Result)
	if err != nil {
		return 0, &models.ProviderPayloadError{Provider: "etherscan", Cause: err}
	}
	return int(count), nil
}

// Transactions returns the most recent transactions for an account, newest
// first, capped at 100.
func (e *EtherscanClient) Transactions(ctx context.Context, address string) ([]EtherscanTx, error) {
	endpoint := fmt.Sprintf("%s?module=account&action=txlist&address=%s&startblock=0&endblock=99999999&page=1&offset=100&sort=desc&apikey=%s", e.BaseURL, address, e.apiKey)

	var response etherscanTxListResponse
	if err := e.client.getJSON(ctx, "etherscan", endpoint, nil, &response); err != nil {
		return nil, err
	}

	return response.Result, nil
}

// BlockNumber returns the current chain head height.
func (e *EtherscanClient) BlockNumber(ctx context.Context) (int64, error) {
	endpoint := fmt.Sprintf("%s?module=proxy&action=eth_blockNumber&apikey=%s", e.BaseURL, e.apiKey)

	var response etherscanProxyResponse
	if err := e.client.getJSON(ctx, "etherscan", endpoint, nil, &response); err != nil {
		return 0, err
	}

	height, err := parseHexQuantity(response.Result)
	if err != nil {
		return 0, &models.ProviderPayloadError{Provider: "etherscan", Cause: err}
	}
	return height, nil
}

// GasPrice returns the proposed gas price in gwei from the gas oracle.
func (e *EtherscanClient) GasPrice(ctx context.Context) (int64, error) {
	endpoint := fmt.Sprintf("%s?module=gastracker&action=gasoracle&apikey=%s", e.BaseURL, e.apiKey)

	var response etherscanGasOracleResponse
	if err := e.client.getJSON(ctx, "etherscan", endpoint, nil, &response); err != nil {
		return 0, err
	}

	price, err := strconv.ParseInt(response.Result.ProposeGasPrice, 10, 64)
	if err != nil {
		return 0, &models.ProviderPayloadError{Provider: "etherscan", Cause: err}
	}
	return price, nil
}

// IsContract reports whether the address has deployed code.
func (e *EtherscanClient) IsContract(ctx context.Context, address string) (bool, error) {
	endpoint := fmt.Sprintf("%s?module=proxy&action=eth_getCode&address=%s&tag=latest&apikey=%s", e.BaseURL, address, e.apiKey)

	var response etherscanProxyResponse
	if err := e.client.getJSON(ctx, "etherscan", endpoint, nil, &response); err != nil {
		return false, err
	}

	return response.Result != "0x", nil
}

func parseHexQuantity(value string) (int64, error) {
	trimmed := strings.TrimPrefix(value, "0x")
	if trimmed == "" {
		return 0, fmt.Errorf("empty hex quantity")
	}
	return strconv.ParseInt(trimmed, 16, 64)
}
