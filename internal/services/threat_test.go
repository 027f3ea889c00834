package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Styner2026/OSINTCafe-main-sub001/internal/config"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/models"
	"github.com/Styner2026/OSINTCafe-main-sub001/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockThreatService() *ThreatService {
	registry := newTestRegistry(config.ProvidersConfig{})
	httpClient := providers.NewClient(time.Second)
	return NewThreatService(registry, newTestDriver(),
		providers.NewVirusTotalClient(httpClient, ""),
		providers.NewAbuseIPDBClient(httpClient, ""))
}

func newLiveThreatService(t *testing.T, handler http.HandlerFunc, cfg config.ProvidersConfig) *ThreatService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := providers.NewClient(time.Second)
	virustotal := providers.NewVirusTotalClient(httpClient, cfg.VirusTotalKey)
	virustotal.BaseURL = server.URL
	abuseipdb := providers.NewAbuseIPDBClient(httpClient, cfg.AbuseIPDBKey)
	abuseipdb.BaseURL = server.URL

	return NewThreatService(newTestRegistry(cfg), newTestDriver(), virustotal, abuseipdb)
}

func TestAnalyzeURL(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyInputRejected", func(t *testing.T) {
		service := newMockThreatService()

		_, err := service.AnalyzeURL(ctx, "  ")

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.ErrorCodeInvalidInput, appErr.Code)
	})

	t.Run("MockModeShape", func(t *testing.T) {
		service := newMockThreatService()

		analysis, err := service.AnalyzeURL(ctx, "https://example.com")
		require.NoError(t, err)

		require.NotNil(t, analysis.URL)
		assert.Nil(t, analysis.IP)
		assert.Nil(t, analysis.Email)
		assert.Nil(t, analysis.File)
		assert.NotEmpty(t, analysis.URL.Categories)
		assert.GreaterOrEqual(t, analysis.URL.Reputation, 0)
		assert.LessOrEqual(t, analysis.URL.Reputation, 100)
	})

	t.Run("MockModeSuspiciousKeyword", func(t *testing.T) {
		service := newMockThreatService()

		analysis, err := service.AnalyzeURL(ctx, "https://suspicious-site.example.com")
		require.NoError(t, err)

		require.NotNil(t, analysis.URL)
		assert.False(t, analysis.URL.Safe)
		assert.Equal(t, []string{"phishing", "malware"}, analysis.URL.Categories)
		assert.Less(t, analysis.URL.Reputation, 30)
	})

	t.Run("LiveCleanVerdict", func(t *testing.T) {
		service := newLiveThreatService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"attributes":{
				"last_analysis_stats":{"harmless":70,"malicious":0,"suspicious":0,"undetected":0},
				"categories":{"benign":"category"},
				"last_analysis_results":{}
			}}}`))
		}, config.ProvidersConfig{VirusTotalKey: "vt"})

		analysis, err := service.AnalyzeURL(ctx, "https://example.com")
		require.NoError(t, err)

		require.NotNil(t, analysis.URL)
		assert.True(t, analysis.URL.Safe)
		assert.Equal(t, 100, analysis.URL.Reputation)
		assert.False(t, analysis.URL.MalwareDetected)
	})

	t.Run("LiveMaliciousVerdict", func(t *testing.T) {
		service := newLiveThreatService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"attributes":{
				"last_analysis_stats":{"harmless":10,"malicious":50,"suspicious":10,"undetected":0},
				"categories":{"malicious":"category"},
				"last_analysis_results":{"engine":{"category":"phishing"}}
			}}}`))
		}, config.ProvidersConfig{VirusTotalKey: "vt"})

		analysis, err := service.AnalyzeURL(ctx, "https://evil.example.com")
		require.NoError(t, err)

		require.NotNil(t, analysis.URL)
		assert.False(t, analysis.URL.Safe)
		assert.True(t, analysis.URL.MalwareDetected)
		assert.True(t, analysis.URL.PhishingDetected)
		assert.Equal(t, 0, analysis.URL.Reputation)
	})

	t.Run("ProviderErrorFallsBackWithoutError", func(t *testing.T) {
		service := newLiveThreatService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, config.ProvidersConfig{VirusTotalKey: "vt"})

		analysis, err := service.AnalyzeURL(ctx, "https://example.com")
		require.NoError(t, err)
		require.NotNil(t, analysis.URL)
	})
}

func TestAnalyzeIP(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyInputRejected", func(t *testing.T) {
		service := newMockThreatService()

		_, err := service.AnalyzeIP(ctx, "")
		assert.Error(t, err)
	})

	t.Run("MockModeShape", func(t *testing.T) {
		service := newMockThreatService()

		analysis, err := service.AnalyzeIP(ctx, "8.8.8.8")
		require.NoError(t, err)

		require.NotNil(t, analysis.IP)
		assert.NotEmpty(t, analysis.IP.Country)
		assert.NotEmpty(t, analysis.IP.ISP)
	})

	t.Run("LiveAbusiveAddress", func(t *testing.T) {
		service := newLiveThreatService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "abuse", r.Header.Get("Key"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{
				"abuseConfidencePercentage":90,
				"countryCode":"RU",
				"isp":"Example ISP",
				"reports":[{"categories":[18,18,14]}]
			}}`))
		}, config.ProvidersConfig{AbuseIPDBKey: "abuse"})

		analysis, err := service.AnalyzeIP(ctx, "203.0.113.9")
		require.NoError(t, err)

		require.NotNil(t, analysis.IP)
		assert.Equal(t, 10, analysis.IP.Reputation)
		assert.True(t, analysis.IP.Blacklisted)
		assert.Equal(t, "RU", analysis.IP.Country)
		assert.Equal(t, []string{"brute-force", "scanning"}, analysis.IP.ThreatTypes)
	})
}

func TestAnalyzeEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("HeuristicsWithLiveCredentials", func(t *testing.T) {
		// Any threat-intel credential switches the email path from mock to
		// local heuristics.
		registry := newTestRegistry(config.ProvidersConfig{VirusTotalKey: "vt"})
		httpClient := providers.NewClient(time.Second)
		service := NewThreatService(registry, newTestDriver(),
			providers.NewVirusTotalClient(httpClient, "vt"),
			providers.NewAbuseIPDBClient(httpClient, ""))

		analysis, err := service.AnalyzeEmail(ctx, "alice@example.com")
		require.NoError(t, err)

		require.NotNil(t, analysis.Email)
		assert.True(t, analysis.Email.Safe)
		assert.False(t, analysis.Email.Disposable)
		assert.Equal(t, 100, analysis.Email.Reputation)
		assert.Equal(t, "example.com", analysis.Email.Domain)
	})

	t.Run("DisposableDomainFlagged", func(t *testing.T) {
		registry := newTestRegistry(config.ProvidersConfig{VirusTotalKey: "vt"})
		httpClient := providers.NewClient(time.Second)
		service := NewThreatService(registry, newTestDriver(),
			providers.NewVirusTotalClient(httpClient, "vt"),
			providers.NewAbuseIPDBClient(httpClient, ""))

		analysis, err := service.AnalyzeEmail(ctx, "bob@mailinator.com")
		require.NoError(t, err)

		require.NotNil(t, analysis.Email)
		assert.True(t, analysis.Email.Disposable)
	})

	t.Run("MockModeShape", func(t *testing.T) {
		service := newMockThreatService()

		analysis, err := service.AnalyzeEmail(ctx, "carol@gmail.com")
		require.NoError(t, err)

		require.NotNil(t, analysis.Email)
		assert.True(t, analysis.Email.Safe)
		assert.Equal(t, "gmail.com", analysis.Email.Domain)
		assert.GreaterOrEqual(t, analysis.Email.Reputation, 80)
	})
}

func TestAnalyzeFile(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidInputRejected", func(t *testing.T) {
		service := newMockThreatService()

		_, err := service.AnalyzeFile(ctx, "", 100)
		assert.Error(t, err)

		_, err = service.AnalyzeFile(ctx, "document.pdf", -1)
		assert.Error(t, err)
	})

	t.Run("MockModeCleanFile", func(t *testing.T) {
		service := newMockThreatService()

		// Retry to absorb the 10% synthetic threat probability on clean names.
		sawSafe := false
		for i := 0; i < 20 && !sawSafe; i++ {
			analysis, err := service.AnalyzeFile(ctx, "report.pdf", 2048)
			require.NoError(t, err)
			require.NotNil(t, analysis.File)
			if analysis.File.Safe {
				sawSafe = true
				assert.Equal(t, "0/70", analysis.File.DetectionRatio)
				assert.Empty(t, analysis.File.ThreatTypes)
			}
		}
		assert.True(t, sawSafe)
	})

	t.Run("MockModeVirusName", func(t *testing.T) {
		service := newMockThreatService()

		analysis, err := service.AnalyzeFile(ctx, "virus.exe", 2048)
		require.NoError(t, err)

		require.NotNil(t, analysis.File)
		assert.False(t, analysis.File.Safe)
		assert.NotEqual(t, "0/70", analysis.File.DetectionRatio)
		assert.False(t, analysis.File.ScanDate.IsZero())
	})
}

func TestLiveThreatData(t *testing.T) {
	service := newMockThreatService()

	data, err := service.LiveThreatData(context.Background())
	require.NoError(t, err)

	assert.Len(t, data.RecentThreats, 10)
	for _, threat := range data.RecentThreats {
		assert.NotEmpty(t, threat.ID)
		assert.NotEmpty(t, threat.Title)
		assert.NotEmpty(t, threat.Source)
	}

	assert.GreaterOrEqual(t, data.Statistics.TotalThreats, 1247)
	assert.InDelta(t, 99.9, data.Statistics.GlobalCoverage, 0.001)
	assert.Len(t, data.ThreatsByCategory, 4)
	assert.Len(t, data.TopCountries, 5)
}
