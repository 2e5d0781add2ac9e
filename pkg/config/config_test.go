package config

import (
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Profile != "balanced" {
		t.Errorf("expected balanced profile, got %q", cfg.Profile)
	}
	if cfg.SpamThreshold != 5.0 {
		t.Errorf("expected spam threshold 5.0, got %g", cfg.SpamThreshold)
	}
	if !cfg.EnableCaching || cfg.CacheBackend != CacheMemory {
		t.Errorf("expected memory caching on by default, got %v/%q", cfg.EnableCaching, cfg.CacheBackend)
	}
	if cfg.EnableEnsemble {
		t.Error("expected ensemble off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RAMPART_PROFILE", "turbo")
	t.Setenv("RAMPART_SPAM_THRESHOLD", "7.5")
	t.Setenv("RAMPART_PARALLEL_MODULES", "true")
	t.Setenv("RAMPART_CACHE_TTL", "30s")
	t.Setenv("RAMPART_MODULES", "obscenity, harassment")

	cfg := NewDefaultConfig()
	if cfg.Profile != "turbo" {
		t.Errorf("expected turbo, got %q", cfg.Profile)
	}
	if cfg.SpamThreshold != 7.5 {
		t.Errorf("expected 7.5, got %g", cfg.SpamThreshold)
	}
	if !cfg.ParallelModules {
		t.Error("expected parallel modules enabled")
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected 30s TTL, got %v", cfg.CacheTTL)
	}
	if len(cfg.Modules) != 2 || cfg.Modules[0] != "obscenity" || cfg.Modules[1] != "harassment" {
		t.Errorf("expected trimmed module list, got %v", cfg.Modules)
	}
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("RAMPART_SPAM_THRESHOLD", "not-a-number")
	t.Setenv("RAMPART_CACHE_SIZE", "many")
	t.Setenv("RAMPART_CACHE_TTL", "soon")

	cfg := NewDefaultConfig()
	if cfg.SpamThreshold != 5.0 {
		t.Errorf("garbage float should keep default, got %g", cfg.SpamThreshold)
	}
	if cfg.CacheSize != 4096 {
		t.Errorf("garbage int should keep default, got %d", cfg.CacheSize)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("garbage duration should keep default, got %v", cfg.CacheTTL)
	}
}

func TestProfileConfig(t *testing.T) {
	tests := []struct {
		name     string
		wantErr  bool
		parallel bool
	}{
		{name: "turbo", parallel: true},
		{name: "fast", parallel: true},
		{name: "balanced"},
		{name: "large"},
		{name: ""},
		{name: "warp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("profile_"+tt.name, func(t *testing.T) {
			cfg, err := ProfileConfig(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for profile %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.ParallelModules != tt.parallel {
				t.Errorf("profile %q: expected parallel=%v, got %v", tt.name, tt.parallel, cfg.ParallelModules)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %q must validate: %v", tt.name, err)
			}
		})
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad profile", func(c *Config) { c.Profile = "ludicrous" }},
		{"zero spam threshold", func(c *Config) { c.SpamThreshold = 0 }},
		{"negative spam threshold", func(c *Config) { c.SpamThreshold = -1 }},
		{"unknown cache backend", func(c *Config) { c.CacheBackend = "disk" }},
		{"redis without addr", func(c *Config) {
			c.CacheBackend = CacheRedis
			c.RedisAddr = ""
		}},
		{"redis without ttl", func(c *Config) {
			c.CacheBackend = CacheRedis
			c.CacheTTL = 0
		}},
		{"malformed model endpoint", func(c *Config) {
			c.ModelEndpoints = []string{"toxic-only-two:parts"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestParseModelEndpoint(t *testing.T) {
	id, kind, url, err := ParseModelEndpoint("toxic:toxicity:https://api.example.com/models/toxic:8443/classify")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "toxic" || kind != "toxicity" {
		t.Errorf("expected toxic/toxicity, got %s/%s", id, kind)
	}
	// Colons inside the URL must survive the split.
	if url != "https://api.example.com/models/toxic:8443/classify" {
		t.Errorf("URL mangled: %q", url)
	}

	for _, bad := range []string{"", "one", "one:two", "::", "a::c"} {
		if _, _, _, err := ParseModelEndpoint(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := clampInt(5, 1, 10); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := clampInt(-3, 1, 10); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := clampInt(99, 1, 10); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
}
