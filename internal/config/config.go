package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `json:"server"`
	Providers ProvidersConfig `json:"providers"`
	Solana    SolanaConfig    `json:"solana"`
	Cache     CacheConfig     `json:"cache"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Logging   LoggingConfig   `json:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `json:"port"`
	Host         string        `json:"host"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// ProvidersConfig holds one credential per third-party provider. An empty
// value means the provider is not configured; that alone decides whether the
// capability domain runs in mock mode.
type ProvidersConfig struct {
	OpenAIKey       string        `json:"-"`
	GeminiKey       string        `json:"-"`
	VirusTotalKey   string        `json:"-"`
	AbuseIPDBKey    string        `json:"-"`
	EtherscanKey    string        `json:"-"`
	CoinGeckoKey    string        `json:"-"`
	GoogleVisionKey string        `json:"-"`
	HunterKey       string        `json:"-"`
	ClearbitKey     string        `json:"-"`
	DappierKey      string        `json:"-"`
	HTTPTimeout     time.Duration `json:"http_timeout"`
}

// SolanaConfig holds Solana RPC configuration
type SolanaConfig struct {
	Endpoint   string        `json:"endpoint"`
	Timeout    time.Duration `json:"timeout"`
	MaxRetries int           `json:"max_retries"`
	RetryDelay time.Duration `json:"retry_delay"`
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	TTL             time.Duration `json:"ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// RateLimitConfig holds inbound HTTP rate limiting configuration. Outbound
// per-provider quotas are fixed by each provider's contract and live with the
// service that calls it.
type RateLimitConfig struct {
	RequestsPerMinute int           `json:"requests_per_minute"`
	WindowSize        time.Duration `json:"window_size"`
	CleanupInterval   time.Duration `json:"cleanup_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string   `json:"level"`
	Environment string   `json:"environment"`
	OutputPaths []string `json:"output_paths"`
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Providers: ProvidersConfig{
			OpenAIKey: getEnv("OPENAI_API_KEY", ""),
			// GOOGLE_API_KEY is the legacy name; both are accepted.
			GeminiKey:       getFirstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
			VirusTotalKey:   getEnv("VIRUSTOTAL_API_KEY", ""),
			AbuseIPDBKey:    getEnv("ABUSEIPDB_API_KEY", ""),
			EtherscanKey:    getEnv("ETHERSCAN_API_KEY", ""),
			CoinGeckoKey:    getEnv("COINGECKO_API_KEY", ""),
			GoogleVisionKey: getEnv("GOOGLE_VISION_API_KEY", ""),
			HunterKey:       getEnv("HUNTER_IO_API_KEY", ""),
			ClearbitKey:     getEnv("CLEARBIT_API_KEY", ""),
			DappierKey:      getEnv("DAPPIER_API_KEY", ""),
			HTTPTimeout:     getDurationEnv("PROVIDER_HTTP_TIMEOUT", 10*time.Second),
		},
		Solana: SolanaConfig{
			Endpoint:   getEnv("SOLANA_RPC_ENDPOINT", ""),
			Timeout:    getDurationEnv("SOLANA_RPC_TIMEOUT", 30*time.Second),
			MaxRetries: getIntEnv("SOLANA_RPC_MAX_RETRIES", 3),
			RetryDelay: getDurationEnv("SOLANA_RPC_RETRY_DELAY", 1*time.Second),
		},
		Cache: CacheConfig{
			TTL:             getDurationEnv("CACHE_TTL", 30*time.Second),
			CleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", 60*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getIntEnv("RATE_LIMIT_REQUESTS_PER_MINUTE", 60),
			WindowSize:        getDurationEnv("RATE_LIMIT_WINDOW_SIZE", time.Minute),
			CleanupInterval:   getDurationEnv("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("LOG_ENVIRONMENT", "development"),
			OutputPaths: getStringSliceEnv("LOG_OUTPUT_PATHS", []string{"stdout"}),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFirstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return []string{value}
	}
	return defaultValue
}
