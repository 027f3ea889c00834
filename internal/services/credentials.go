package services

import "github.com/Styner2026/OSINTCafe-main-sub001/internal/config"

// Provider names the third-party services this layer can call.
type Provider string

const (
	ProviderOpenAI       Provider = "openai"
	ProviderGemini       Provider = "gemini"
	ProviderVirusTotal   Provider = "virustotal"
	ProviderAbuseIPDB    Provider = "abuseipdb"
	ProviderEtherscan    Provider = "etherscan"
	ProviderCoinGecko    Provider = "coingecko"
	ProviderGoogleVision Provider = "google_vision"
	ProviderHunter       Provider = "hunter_io"
	ProviderClearbit     Provider = "clearbit"
	ProviderDappier      Provider = "dappier"
)

// MockMode holds the per-capability-domain flags that short-circuit live
// provider calls. A flag is true only when no provider in that domain has a
// credential; nothing else gates mock mode.
type MockMode struct {
	AIAssistant   bool `json:"ai_assistant"`
	ThreatIntel   bool `json:"threat_intel"`
	Blockchain    bool `json:"blockchain"`
	ImageAnalysis bool `json:"image_analysis"`
	Verification  bool `json:"verification"`
}

// CredentialRegistry resolves which providers are configured. It is built
// once at startup and read-only afterwards, so concurrent operations can
// consult it without locking.
type CredentialRegistry struct {
	credentials map[Provider]bool
	mockMode    MockMode
}

// NewCredentialRegistry derives credential presence and mock-mode flags from
// the provider configuration.
func NewCredentialRegistry(cfg *config.ProvidersConfig) *CredentialRegistry {
	credentials := map[Provider]bool{
		ProviderOpenAI:       cfg.OpenAIKey != "",
		ProviderGemini:       cfg.GeminiKey != "",
		ProviderVirusTotal:   cfg.VirusTotalKey != "",
		ProviderAbuseIPDB:    cfg.AbuseIPDBKey != "",
		ProviderEtherscan:    cfg.EtherscanKey != "",
		ProviderCoinGecko:    cfg.CoinGeckoKey != "",
		ProviderGoogleVision: cfg.GoogleVisionKey != "",
		ProviderHunter:       cfg.HunterKey != "",
		ProviderClearbit:     cfg.ClearbitKey != "",
		ProviderDappier:      cfg.DappierKey != "",
	}

	return &CredentialRegistry{
		credentials: credentials,
		mockMode: MockMode{
			AIAssistant:   !credentials[ProviderOpenAI] && !credentials[ProviderGemini],
			ThreatIntel:   !credentials[ProviderVirusTotal] && !credentials[ProviderAbuseIPDB],
			Blockchain:    !credentials[ProviderEtherscan] && !credentials[ProviderCoinGecko],
			ImageAnalysis: !credentials[ProviderGoogleVision],
			Verification:  !credentials[ProviderHunter] && !credentials[ProviderClearbit],
		},
	}
}

// HasCredential reports whether the provider has a configured credential.
func (r *CredentialRegistry) HasCredential(provider Provider) bool {
	return r.credentials[provider]
}

// MockMode returns the per-domain mock flags.
func (r *CredentialRegistry) MockMode() MockMode {
	return r.mockMode
}

// ConfiguredProviders lists every provider with a credential present.
func (r *CredentialRegistry) ConfiguredProviders() []Provider {
	configured := []Provider{}
	for provider, present := range r.credentials {
		if present {
			configured = append(configured, provider)
		}
	}
	return configured
}
