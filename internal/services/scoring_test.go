package services

import (
	"testing"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/providers"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeMessageForThreats(t *testing.T) {
	t.Run("NoKeywords", func(t *testing.T) {
		signal := AnalyzeMessageForThreats("hello, how does verification work?")

		assert.Equal(t, models.ThreatLevelLow, signal.ThreatLevel)
		assert.Equal(t, 70, signal.Confidence)
		assert.Empty(t, signal.Indicators)
	})

	t.Run("TwoKeywordsIsMedium", func(t *testing.T) {
		signal := AnalyzeMessageForThreats("this looks like a scam asking for money")

		assert.Equal(t, models.ThreatLevelMedium, signal.ThreatLevel)
		assert.Equal(t, 80, signal.Confidence)
		assert.ElementsMatch(t, []string{"Keyword detected: scam", "Keyword detected: money"}, signal.Indicators)
	})

	t.Run("ThreeKeywordsIsHigh", func(t *testing.T) {
		signal := AnalyzeMessageForThreats("help, an emergency, they want to steal my money")

		assert.Equal(t, models.ThreatLevelHigh, signal.ThreatLevel)
		assert.Equal(t, 90, signal.Confidence)
		assert.Len(t, signal.Indicators, 4)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		signal := AnalyzeMessageForThreats("SCAM and FRAUD")

		assert.Equal(t, models.ThreatLevelMedium, signal.ThreatLevel)
	})
}

func TestCalculateReputation(t *testing.T) {
	t.Run("NoDataIsNeutral", func(t *testing.T) {
		assert.Equal(t, 50, CalculateReputation(providers.DetectionStats{}))
	})

	t.Run("AllHarmless", func(t *testing.T) {
		assert.Equal(t, 100, CalculateReputation(providers.DetectionStats{Harmless: 10}))
	})

	t.Run("AllMaliciousClampsToZero", func(t *testing.T) {
		assert.Equal(t, 0, CalculateReputation(providers.DetectionStats{Malicious: 10}))
	})

	t.Run("MixedVotes", func(t *testing.T) {
		// 8 harmless, 1 malicious, 1 undetected: (0.8 - 0.1) * 100 = 70.
		stats := providers.DetectionStats{Harmless: 8, Malicious: 1, Undetected: 1}
		assert.Equal(t, 70, CalculateReputation(stats))
	})
}

func TestCalculateWalletRiskScore(t *testing.T) {
	t.Run("QuietWallet", func(t *testing.T) {
		assert.Equal(t, 0, CalculateWalletRiskScore(50, 10))
	})

	t.Run("HighVolumeAndBalance", func(t *testing.T) {
		assert.Equal(t, 30, CalculateWalletRiskScore(1500, 150))
	})

	t.Run("NearlyInactive", func(t *testing.T) {
		assert.Equal(t, 15, CalculateWalletRiskScore(5, 1))
	})

	t.Run("InactiveWithLargeBalance", func(t *testing.T) {
		assert.Equal(t, 25, CalculateWalletRiskScore(3, 500))
	})
}

func TestWalletLabels(t *testing.T) {
	assert.Equal(t, []string{"High Activity", "High Value"}, WalletLabels(2000, 5000))
	assert.Equal(t, []string{"Low Activity", "Low Balance"}, WalletLabels(2, 0.001))
	assert.Empty(t, WalletLabels(100, 50))
}

func TestAssessThreatSeverity(t *testing.T) {
	assert.Equal(t, models.SeverityHigh, AssessThreatSeverity("confirmed phishing campaign"))
	assert.Equal(t, models.SeverityMedium, AssessThreatSeverity("users report suspicious behavior"))
	assert.Equal(t, models.SeverityLow, AssessThreatSeverity("routine network update"))

	// High-risk keywords win even when medium-risk ones are present.
	assert.Equal(t, models.SeverityHigh, AssessThreatSeverity("warning: fraud detected"))
}

func TestCategorizeThreat(t *testing.T) {
	assert.Equal(t, "Romance Scam", CategorizeThreat("dating profile flagged"))
	assert.Equal(t, "Financial Fraud", CategorizeThreat("requests for money transfers"))
	assert.Equal(t, "Identity Theft", CategorizeThreat("personal data exposed"))
	assert.Equal(t, "Phishing Attack", CategorizeThreat("email credential harvesting"))
	assert.Equal(t, "General Threat", CategorizeThreat("malware observed"))

	// Romance outranks financial when both match.
	assert.Equal(t, "Romance Scam", CategorizeThreat("romance scheme asking for money"))
}

func TestIsEmailSafe(t *testing.T) {
	assert.True(t, IsEmailSafe("alice@example.com"))
	assert.False(t, IsEmailSafe("not-an-email"))
	assert.False(t, IsEmailSafe("user12345678@example.com"))
	assert.False(t, IsEmailSafe("abcdefghijklmnopqrstuvwx@example.com"))
	assert.False(t, IsEmailSafe("a...b@example.com"))
}

func TestCalculateEmailReputation(t *testing.T) {
	assert.Equal(t, 100, CalculateEmailReputation("alice@example.com"))
	assert.Equal(t, 80, CalculateEmailReputation("noreply@example.com"))
	assert.Equal(t, 85, CalculateEmailReputation("user123456@example.com"))
	assert.Equal(t, 90, CalculateEmailReputation("averyveryverylongusername@example.com"))
}

func TestIsDisposableDomain(t *testing.T) {
	assert.True(t, IsDisposableDomain("mailinator.com"))
	assert.True(t, IsDisposableDomain("MAILINATOR.COM"))
	assert.False(t, IsDisposableDomain("gmail.com"))
}
