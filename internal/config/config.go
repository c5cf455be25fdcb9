package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	API         APIConfig
	Payment     PaymentConfig
	Diagnostics DiagnosticsConfig
}

type AppConfig struct {
	Env      string
	LogLevel string
}

type APIConfig struct {
	BaseURL    string
	AuthToken  string
	Timeout    time.Duration
	MaxRetries uint64
}

type PaymentConfig struct {
	// DialogTimeout bounds the wait on the host payment dialog. The host
	// itself imposes no deadline, so the client must.
	DialogTimeout time.Duration
	// CertificateMinAmount is the lowest purchasable denomination, in minor units.
	CertificateMinAmount int64
	Currency             string
}

type DiagnosticsConfig struct {
	AttemptCap int
	EventCap   int
	// SinkPath, when set, appends attempt records as JSON lines. Advisory
	// only; nothing reads it back.
	SinkPath string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		App: AppConfig{
			Env:      getEnv("APP_ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:    strings.TrimRight(getEnv("SURF_API_BASE_URL", "https://api.surfpass.app"), "/"),
			AuthToken:  getEnv("SURF_API_TOKEN", ""),
			Timeout:    getEnvAsDuration("SURF_API_TIMEOUT", 30*time.Second),
			MaxRetries: uint64(getEnvAsInt("SURF_API_MAX_RETRIES", 3)),
		},
		Payment: PaymentConfig{
			DialogTimeout:        getEnvAsDuration("PAYMENT_DIALOG_TIMEOUT", 5*time.Minute),
			CertificateMinAmount: int64(getEnvAsInt("CERTIFICATE_MIN_AMOUNT", 300000)),
			Currency:             getEnv("PAYMENT_CURRENCY", "RUB"),
		},
		Diagnostics: DiagnosticsConfig{
			AttemptCap: getEnvAsInt("DIAG_ATTEMPT_CAP", 20),
			EventCap:   getEnvAsInt("DIAG_EVENT_CAP", 50),
			SinkPath:   getEnv("DIAG_SINK_PATH", ""),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
