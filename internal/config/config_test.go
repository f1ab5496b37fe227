package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL == "" {
		t.Error("expected a default base URL")
	}
	if cfg.API.ListLimit != 1008 {
		t.Errorf("expected list limit 1008, got %d", cfg.API.ListLimit)
	}
	if cfg.API.MaxConcurrentFetches <= 0 {
		t.Error("expected a positive concurrency cap")
	}
	if cfg.Vision.Enabled {
		t.Error("vision should be disabled by default")
	}
}

func TestFetchTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.FetchTimeout(); got != 30*time.Second {
		t.Errorf("expected 30s default, got %v", got)
	}

	cfg.API.FetchTimeoutSeconds = 5
	if got := cfg.FetchTimeout(); got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}

	cfg.API.FetchTimeoutSeconds = -1
	if got := cfg.FetchTimeout(); got != 30*time.Second {
		t.Errorf("negative timeout should fall back to 30s, got %v", got)
	}
}

func TestFillZeroFields(t *testing.T) {
	cfg := &Config{}
	cfg.fillZeroFields()

	def := DefaultConfig()
	if cfg.API.BaseURL != def.API.BaseURL {
		t.Errorf("expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.ListLimit != def.API.ListLimit {
		t.Errorf("expected default list limit, got %d", cfg.API.ListLimit)
	}
	if cfg.UI.Theme != def.UI.Theme {
		t.Errorf("expected default theme, got %q", cfg.UI.Theme)
	}

	// A hand-set value survives
	cfg2 := &Config{API: APIConfig{ListLimit: 151}}
	cfg2.fillZeroFields()
	if cfg2.API.ListLimit != 151 {
		t.Errorf("fillZeroFields clobbered a set value: %d", cfg2.API.ListLimit)
	}
}

func TestAutoPopulateFromEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-key")

	cfg := DefaultConfig()
	cfg.AutoPopulateFromEnv()

	if cfg.Vision.APIKey != "sk-test-key" {
		t.Errorf("expected key from environment, got %q", cfg.Vision.APIKey)
	}
	if !cfg.Vision.Enabled {
		t.Error("setting the key should enable vision")
	}
}

func TestAutoPopulateFromEnvUnset(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := DefaultConfig()
	cfg.AutoPopulateFromEnv()

	if cfg.Vision.Enabled {
		t.Error("vision should stay disabled without a key")
	}
}
