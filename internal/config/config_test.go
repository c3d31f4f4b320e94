package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.LLMMaxTokens != 200 {
		t.Fatalf("expected default max tokens 200, got %d", cfg.LLMMaxTokens)
	}
	if cfg.AnalyzeConcurrency != 3 {
		t.Fatalf("expected default concurrency 3, got %d", cfg.AnalyzeConcurrency)
	}
	if cfg.RetryAfterUnit != time.Second {
		t.Fatalf("expected default retry-after unit of seconds, got %v", cfg.RetryAfterUnit)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected default store local, got %s", cfg.ObjectStoreType)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_RETRY_AFTER_UNIT", "ms")
	t.Setenv("LLM_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("LLM_REQUEST_TIMEOUT", "10s")
	t.Setenv("OBJECT_STORE", "S3")

	cfg := Load()

	if cfg.RetryAfterUnit != time.Millisecond {
		t.Fatalf("expected millisecond retry-after unit, got %v", cfg.RetryAfterUnit)
	}
	if cfg.RetryMaxAttempts != 5 {
		t.Fatalf("expected 5 retry attempts, got %d", cfg.RetryMaxAttempts)
	}
	if cfg.LLMRequestTimeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", cfg.LLMRequestTimeout)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("expected s3 store, got %s", cfg.ObjectStoreType)
	}
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")
	if got := getEnvInt("LLM_MAX_TOKENS", 200); got != 200 {
		t.Fatalf("expected fallback 200, got %d", got)
	}

	t.Setenv("LLM_MAX_TOKENS", "-5")
	if got := getEnvInt("LLM_MAX_TOKENS", 200); got != 200 {
		t.Fatalf("expected fallback for negative value, got %d", got)
	}
}
