package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/config"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/providers"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/cache"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/mutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockBlockchainService(t *testing.T) *BlockchainService {
	t.Helper()

	dataCache := cache.New(time.Minute)
	t.Cleanup(dataCache.Stop)
	locks := mutex.New(time.Minute)
	t.Cleanup(locks.Stop)

	httpClient := providers.NewClient(time.Second)
	return NewBlockchainService(newTestRegistry(config.ProvidersConfig{}), newTestDriver(),
		providers.NewEtherscanClient(httpClient, ""),
		providers.NewCoinGeckoClient(httpClient, ""),
		nil, dataCache, locks)
}

func TestNetworkData(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyNetworkRejected", func(t *testing.T) {
		service := newMockBlockchainService(t)

		_, err := service.NetworkData(ctx, "")
		assert.Error(t, err)
	})

	t.Run("MockEthereumHasGasPrice", func(t *testing.T) {
		service := newMockBlockchainService(t)

		data, err := service.NetworkData(ctx, "ethereum")
		require.NoError(t, err)

		assert.Equal(t, "ethereum", data.Network)
		assert.InDelta(t, 2800, data.Price, 2800*0.05)
		assert.GreaterOrEqual(t, data.BlockHeight, int64(18500000))
		require.NotNil(t, data.GasPrice)
		assert.GreaterOrEqual(t, *data.GasPrice, int64(20))
		assert.Less(t, *data.GasPrice, int64(70))
	})

	t.Run("MockBitcoinHasNoGasPrice", func(t *testing.T) {
		service := newMockBlockchainService(t)

		data, err := service.NetworkData(ctx, "bitcoin")
		require.NoError(t, err)

		assert.InDelta(t, 45000, data.Price, 45000*0.05)
		assert.Nil(t, data.GasPrice)
	})

	t.Run("SnapshotCachedPerNetwork", func(t *testing.T) {
		service := newMockBlockchainService(t)

		first, err := service.NetworkData(ctx, "ethereum")
		require.NoError(t, err)
		second, err := service.NetworkData(ctx, "ethereum")
		require.NoError(t, err)

		assert.Same(t, first, second)

		snapshot := service.driver.collector.GetMetrics()
		assert.Equal(t, int64(1), snapshot.CacheHits)
		assert.Equal(t, int64(1), snapshot.CacheMisses)
	})

	t.Run("LiveMarketData", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if strings.Contains(r.URL.Path, "simple/price") {
				w.Write([]byte(`{"bitcoin":{"usd":61250.5,"usd_24h_change":-2.3,"usd_24h_vol":28000000000,"usd_market_cap":1200000000000}}`))
				return
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		dataCache := cache.New(time.Minute)
		defer dataCache.Stop()
		locks := mutex.New(time.Minute)
		defer locks.Stop()

		httpClient := providers.NewClient(time.Second)
		coingecko := providers.NewCoinGeckoClient(httpClient, "cg")
		coingecko.BaseURL = server.URL
		service := NewBlockchainService(newTestRegistry(config.ProvidersConfig{CoinGeckoKey: "cg"}), newTestDriver(),
			providers.NewEtherscanClient(httpClient, ""), coingecko, nil, dataCache, locks)

		data, err := service.NetworkData(ctx, "bitcoin")
		require.NoError(t, err)

		assert.Equal(t, 61250.5, data.Price)
		assert.Equal(t, -2.3, data.Change)
		assert.Equal(t, "28.0B", data.Volume)
		assert.Equal(t, "1200.0B", data.MarketCap)
	})
}

func TestVerifyIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingTypeRejected", func(t *testing.T) {
		service := newMockBlockchainService(t)

		_, err := service.VerifyIdentity(ctx, &models.VerificationRequest{Value: "alice@example.com"})
		assert.Error(t, err)
	})

	t.Run("UnknownTypeRejected", func(t *testing.T) {
		service := newMockBlockchainService(t)

		_, err := service.VerifyIdentity(ctx, &models.VerificationRequest{Type: "passport", Value: "x"})
		assert.Error(t, err)
	})

	t.Run("MissingValueRejected", func(t *testing.T) {
		service := newMockBlockchainService(t)

		_, err := service.VerifyIdentity(ctx, &models.VerificationRequest{Type: "email"})
		assert.Error(t, err)
	})

	t.Run("EmailVerification", func(t *testing.T) {
		service := newMockBlockchainService(t)

		result, err := service.VerifyIdentity(ctx, &models.VerificationRequest{
			Type:  "email",
			Value: "alice@example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "al***@example.com", result.Value)
		assert.Equal(t, "ethereum", result.Network)
		assert.GreaterOrEqual(t, result.TrustScore, 70)
		assert.LessOrEqual(t, result.TrustScore, 99)
		assert.GreaterOrEqual(t, result.Confidence, 80)
		assert.LessOrEqual(t, result.Confidence, 99)
		assert.Len(t, result.BlockchainHash, 66)
		assert.True(t, strings.HasPrefix(result.BlockchainHash, "0x"))
		assert.GreaterOrEqual(t, result.BlockHeight, int64(18500000))
		assert.Contains(t, []models.VerificationStatus{models.VerificationVerified, models.VerificationPending}, result.Status)

		_, err = time.Parse(time.RFC3339, result.Timestamp)
		assert.NoError(t, err)
	})

	t.Run("WalletVerificationOnNamedNetwork", func(t *testing.T) {
		service := newMockBlockchainService(t)

		result, err := service.VerifyIdentity(ctx, &models.VerificationRequest{
			Type:    "wallet",
			Value:   "0x1234567890abcdef",
			Network: "polygon",
		})
		require.NoError(t, err)

		assert.Equal(t, "polygon", result.Network)
		assert.Equal(t, "0x1234...cdef", result.Value)
	})
}

func TestAnalyzeWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingInputRejected", func(t *testing.T) {
		service := newMockBlockchainService(t)

		_, err := service.AnalyzeWallet(ctx, "", "ethereum")
		assert.Error(t, err)

		_, err = service.AnalyzeWallet(ctx, "0xabc", "")
		assert.Error(t, err)
	})

	t.Run("MockProfileShape", func(t *testing.T) {
		service := newMockBlockchainService(t)

		analysis, err := service.AnalyzeWallet(ctx, "0xabc", "ethereum")
		require.NoError(t, err)

		assert.Equal(t, "0xabc", analysis.Address)
		assert.Contains(t, analysis.Balance, "ETH")
		assert.Less(t, analysis.RiskScore, 40)
		assert.NotEmpty(t, analysis.Labels)
		assert.False(t, analysis.FirstSeen.After(time.Now()))
		assert.False(t, analysis.LastActivity.Before(analysis.FirstSeen.AddDate(-3, 0, 0)))
	})

	t.Run("MockBitcoinBalanceUnit", func(t *testing.T) {
		service := newMockBlockchainService(t)

		analysis, err := service.AnalyzeWallet(ctx, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", "bitcoin")
		require.NoError(t, err)

		assert.Contains(t, analysis.Balance, "BTC")
	})

	t.Run("SyntheticActivityWindowOrdered", func(t *testing.T) {
		for i := 0; i < 2000; i++ {
			analysis := syntheticWalletAnalysis("0x1234567890abcdef", "ethereum")
			require.False(t, analysis.FirstSeen.After(analysis.LastActivity),
				"firstSeen %v after lastActivity %v", analysis.FirstSeen, analysis.LastActivity)
		}
	})

	t.Run("ProfileCachedPerAddress", func(t *testing.T) {
		service := newMockBlockchainService(t)

		first, err := service.AnalyzeWallet(ctx, "0x1234567890abcdef", "ethereum")
		require.NoError(t, err)

		second, err := service.AnalyzeWallet(ctx, "0x1234567890abcdef", "ethereum")
		require.NoError(t, err)
		assert.Same(t, first, second)

		metrics := service.driver.collector.GetMetrics()
		assert.Equal(t, int64(1), metrics.CacheMisses)
		assert.Equal(t, int64(1), metrics.CacheHits)
	})

	t.Run("MalformedBitcoinAddressRejected", func(t *testing.T) {
		service := newMockBlockchainService(t)

		_, err := service.AnalyzeWallet(ctx, "not-a-btc-address", "bitcoin")
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrorCodeInvalidInput, appErr.Code)
	})

	t.Run("LiveEthereumProfile", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			query := r.URL.Query()
			switch {
			case query.Get("action") == "balance":
				// 2.5 ETH in wei.
				w.Write([]byte(`{"status":"1","message":"OK","result":"2500000000000000000"}`))
			case query.Get("action") == "eth_getTransactionCount":
				w.Write([]byte(`{"result":"0x2a"}`))
			case query.Get("action") == "txlist":
				w.Write([]byte(`{"status":"1","message":"OK","result":[
					{"blockNumber":"18600000","timeStamp":"1700000000","hash":"0xaaa","from":"0x1","to":"0x2","value":"1"},
					{"blockNumber":"18500000","timeStamp":"1690000000","hash":"0xbbb","from":"0x2","to":"0x1","value":"2"}
				]}`))
			case query.Get("action") == "eth_getCode":
				w.Write([]byte(`{"result":"0x"}`))
			default:
				w.Write([]byte(`{}`))
			}
		}))
		defer server.Close()

		dataCache := cache.New(time.Minute)
		defer dataCache.Stop()
		locks := mutex.New(time.Minute)
		defer locks.Stop()

		httpClient := providers.NewClient(time.Second)
		etherscan := providers.NewEtherscanClient(httpClient, "es")
		etherscan.BaseURL = server.URL
		service := NewBlockchainService(newTestRegistry(config.ProvidersConfig{EtherscanKey: "es"}), newTestDriver(),
			etherscan, providers.NewCoinGeckoClient(httpClient, ""), nil, dataCache, locks)

		analysis, err := service.AnalyzeWallet(ctx, "0xabc", "ethereum")
		require.NoError(t, err)

		assert.Equal(t, "2.5000 ETH", analysis.Balance)
		assert.Equal(t, 42, analysis.TransactionCount)
		assert.Equal(t, time.Unix(1690000000, 0).Unix(), analysis.FirstSeen.Unix())
		assert.Equal(t, time.Unix(1700000000, 0).Unix(), analysis.LastActivity.Unix())
		assert.False(t, analysis.IsContract)
		// 2 transactions and 2.5 ETH trip the low-activity heuristic only.
		assert.Equal(t, 15, analysis.RiskScore)
		assert.Equal(t, []string{"Low Activity"}, analysis.Labels)
	})
}

func TestRecentTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultLimit", func(t *testing.T) {
		service := newMockBlockchainService(t)

		transactions, err := service.RecentTransactions(ctx, "ethereum", 0)
		require.NoError(t, err)
		assert.Len(t, transactions, 10)
	})

	t.Run("ExcessiveLimitRejected", func(t *testing.T) {
		service := newMockBlockchainService(t)

		_, err := service.RecentTransactions(ctx, "ethereum", 500)
		assert.Error(t, err)
	})

	t.Run("MinuteSpacing", func(t *testing.T) {
		service := newMockBlockchainService(t)

		transactions, err := service.RecentTransactions(ctx, "ethereum", 5)
		require.NoError(t, err)
		require.Len(t, transactions, 5)

		for i := 1; i < len(transactions); i++ {
			gap := transactions[i-1].Timestamp.Sub(transactions[i].Timestamp)
			assert.Equal(t, time.Minute, gap)
		}

		for _, tx := range transactions {
			assert.Len(t, tx.Hash, 66)
			assert.Len(t, tx.From, 42)
			assert.Len(t, tx.To, 42)
		}
	})
}
