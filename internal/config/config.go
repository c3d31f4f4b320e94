package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string

	LLMBaseURL         string
	LLMAPIKey          string
	LLMModel           string
	LLMMaxTokens       int
	LLMTemperature     float32
	LLMRequestTimeout  time.Duration
	RetryMaxAttempts   int
	RetryDefaultWait   time.Duration
	RetryAfterUnit     time.Duration
	AnalyzeConcurrency int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             normalizeEnv(getEnv("ENV", "dev")),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),

		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		LLMModel:           getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMMaxTokens:       getEnvInt("LLM_MAX_TOKENS", 200),
		LLMTemperature:     getEnvFloat32("LLM_TEMPERATURE", 0.2),
		LLMRequestTimeout:  getEnvDuration("LLM_REQUEST_TIMEOUT", 60*time.Second),
		RetryMaxAttempts:   getEnvInt("LLM_RETRY_MAX_ATTEMPTS", 3),
		RetryDefaultWait:   getEnvDuration("LLM_RETRY_DEFAULT_WAIT", time.Second),
		RetryAfterUnit:     retryAfterUnit(getEnv("LLM_RETRY_AFTER_UNIT", "seconds")),
		AnalyzeConcurrency: getEnvInt("ANALYZE_CONCURRENCY", 3),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvFloat32(key string, def float32) float32 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 32)
	if err != nil || parsed < 0 {
		return def
	}
	return float32(parsed)
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// retryAfterUnit makes the Retry-After interpretation explicit. The header is
// seconds per RFC 7231; "milliseconds" is accepted for services that hint in ms.
func retryAfterUnit(raw string) time.Duration {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "milliseconds", "ms":
		return time.Millisecond
	default:
		return time.Second
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
