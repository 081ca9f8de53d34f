package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://api.firetruck.io" || cfg.APIVersion != "v1" {
		t.Fatalf("api defaults = %s %s", cfg.BaseURL, cfg.APIVersion)
	}
	if !cfg.VerifyTLS {
		t.Fatalf("verify_tls should default to true")
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if cfg.JournalType != "bbolt" || cfg.JournalTTL != 7*24*time.Hour {
		t.Fatalf("journal defaults = %s %s", cfg.JournalType, cfg.JournalTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FIRETRUCK_API_KEY", "env-key")
	t.Setenv("FIRETRUCK_VERIFY_TLS", "false")
	t.Setenv("FIRETRUCK_TIMEOUT_SECONDS", "3")
	t.Setenv("FIRETRUCK_JOURNAL_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("api key = %q", cfg.APIKey)
	}
	if cfg.VerifyTLS {
		t.Fatalf("verify_tls should be false")
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if cfg.JournalType != "none" {
		t.Fatalf("journal type = %s", cfg.JournalType)
	}
	if cfg.Redacted().APIKey != "***" || cfg.APIKey != "env-key" {
		t.Fatalf("Redacted must mask a copy only")
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("FIRETRUCK_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestLoadHeaders(t *testing.T) {
	t.Setenv("FIRETRUCK_HEADERS", "X-Tenant=acme, accept = application/json ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Headers) != 2 || cfg.Headers["X-Tenant"] != "acme" || cfg.Headers["accept"] != "application/json" {
		t.Fatalf("headers = %#v", cfg.Headers)
	}

	if r := cfg.Redacted(); r.Headers["X-Tenant"] != "***" || r.HeadersRaw != "" || cfg.Headers["X-Tenant"] != "acme" {
		t.Fatalf("Redacted must mask header values on a copy: %#v", r.Headers)
	}

	t.Setenv("FIRETRUCK_HEADERS", "NoEquals")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed headers")
	}
}
