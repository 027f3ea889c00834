package services

import (
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/config"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/providers"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/cache"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/logger"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/metrics"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/mutex"
	"github.com/Styner2026/OSINTCafe-main-sub001/pkg/ratelimiter"
)

// Services bundles the capability-domain orchestrators and their shared
// infrastructure. One instance serves the whole process.
type Services struct {
	Registry   *CredentialRegistry
	Assistant  *AssistantService
	Threats    *ThreatService
	Blockchain *BlockchainService
	Intel      *WebIntelService
	Collector  *metrics.Collector

	dataCache *cache.Cache
	locks     *mutex.KeyedMutex
}

// New wires provider adapters, the shared fallback driver, and the four
// orchestrators from configuration.
func New(cfg *config.Config, log *logger.Logger) *Services {
	registry := NewCredentialRegistry(&cfg.Providers)
	collector := metrics.NewCollector()
	driver := newFallbackDriver(ratelimiter.New(), collector, log)

	httpClient := providers.NewClient(cfg.Providers.HTTPTimeout)

	openai := providers.NewOpenAIClient(httpClient, cfg.Providers.OpenAIKey)
	gemini := providers.NewGeminiClient(httpClient, cfg.Providers.GeminiKey)
	virustotal := providers.NewVirusTotalClient(httpClient, cfg.Providers.VirusTotalKey)
	abuseipdb := providers.NewAbuseIPDBClient(httpClient, cfg.Providers.AbuseIPDBKey)
	etherscan := providers.NewEtherscanClient(httpClient, cfg.Providers.EtherscanKey)
	coingecko := providers.NewCoinGeckoClient(httpClient, cfg.Providers.CoinGeckoKey)
	dappier := providers.NewDappierClient(httpClient, cfg.Providers.DappierKey)
	solana := providers.NewSolanaClient(&cfg.Solana)

	dataCache := cache.New(cfg.Cache.TTL)
	locks := mutex.New(10 * time.Minute)

	return &Services{
		Registry:   registry,
		Assistant:  NewAssistantService(registry, driver, openai, gemini),
		Threats:    NewThreatService(registry, driver, virustotal, abuseipdb),
		Blockchain: NewBlockchainService(registry, driver, etherscan, coingecko, solana, dataCache, locks),
		Intel:      NewWebIntelService(registry, driver, dappier),
		Collector:  collector,
		dataCache:  dataCache,
		locks:      locks,
	}
}

// Close stops the background cleanup goroutines.
func (s *Services) Close() {
	s.dataCache.Stop()
	s.locks.Stop()
}
