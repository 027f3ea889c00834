package services

import (
	"testing"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestCredentialRegistry(t *testing.T) {
	t.Run("NoCredentialsEverythingMocked", func(t *testing.T) {
		registry := newTestRegistry(config.ProvidersConfig{})

		mock := registry.MockMode()
		assert.True(t, mock.AIAssistant)
		assert.True(t, mock.ThreatIntel)
		assert.True(t, mock.Blockchain)
		assert.True(t, mock.ImageAnalysis)
		assert.True(t, mock.Verification)
		assert.Empty(t, registry.ConfiguredProviders())
	})

	t.Run("OneCredentialUnlocksItsDomain", func(t *testing.T) {
		registry := newTestRegistry(config.ProvidersConfig{GeminiKey: "key"})

		mock := registry.MockMode()
		assert.False(t, mock.AIAssistant)
		assert.True(t, mock.ThreatIntel)
		assert.True(t, mock.Blockchain)

		assert.True(t, registry.HasCredential(ProviderGemini))
		assert.False(t, registry.HasCredential(ProviderOpenAI))
	})

	t.Run("DomainsAreIndependent", func(t *testing.T) {
		registry := newTestRegistry(config.ProvidersConfig{
			VirusTotalKey: "vt",
			EtherscanKey:  "es",
		})

		mock := registry.MockMode()
		assert.True(t, mock.AIAssistant)
		assert.False(t, mock.ThreatIntel)
		assert.False(t, mock.Blockchain)
		assert.True(t, mock.ImageAnalysis)
		assert.True(t, mock.Verification)
	})

	t.Run("ConfiguredProvidersListsPresentKeys", func(t *testing.T) {
		registry := newTestRegistry(config.ProvidersConfig{
			OpenAIKey:  "a",
			DappierKey: "b",
		})

		assert.ElementsMatch(t, []Provider{ProviderOpenAI, ProviderDappier}, registry.ConfiguredProviders())
	})
}
