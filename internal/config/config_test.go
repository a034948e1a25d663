package config

import (
	"testing"
	"time"
)

// TestLoad_Defaults checks defaults when no env is set.
// PASS: 100-line cap, memory cache, metrics on.
// FAIL: any default differs or Load errors.
func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAX_LINES", "CACHE_BACKEND", "CACHE_TTL", "LOG_OUTPUT", "RATE_PER_SEC", "RATE_BURST"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Port != "8080" || c.MaxLines != 100 || c.CacheBackend != "memory" || c.CacheTTL != 10*time.Minute {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if !c.MetricsEnabled {
		t.Fatalf("metrics should default to enabled")
	}
}

// TestLoad_Overrides checks env parsing and clamping.
// PASS: values read from env; burst raised to rate; negative cap clamped to 0.
// FAIL: env ignored or bad values kept.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "NONE")
	t.Setenv("MAX_LINES", "-5")
	t.Setenv("RATE_PER_SEC", "50")
	t.Setenv("RATE_BURST", "3")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("METRICS_ENABLED", "no")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.CacheBackend != "none" || c.MaxLines != 0 || c.RateBurst != 50 || c.CacheTTL != 30*time.Second || c.MetricsEnabled {
		t.Fatalf("unexpected config: %+v", c)
	}
}

// TestLoad_InvalidBackend rejects unknown cache backends.
// PASS: error returned.
// FAIL: nil error.
func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "file")
	if _, err := Load(); err == nil {
		t.Fatalf("want error for unknown backend")
	}
}
