// Package config is the outer configuration surface: everything an
// operator can set through RAMPART_* environment variables or the preset
// constructors. The core packages never read the environment themselves;
// they take values from here.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// CacheBackend selects where analysis results are cached.
type CacheBackend string

const (
	CacheNone   CacheBackend = "none"   // No result caching
	CacheMemory CacheBackend = "memory" // In-process LRU (default)
	CacheRedis  CacheBackend = "redis"  // Shared Redis cache
)

// ModuleConfig carries per-scoring-module settings.
type ModuleConfig struct {
	Weight       float64 // Multiplier on the module's points (default 1.0)
	ContextAware bool    // Let the module soften itself on professional input
}

// Config holds global settings for a rampart analyzer.
// All settings can be configured via environment variables or programmatically.
type Config struct {
	// === Core scoring ===
	Profile         string   // Hyperparameter profile: "turbo", "fast", "balanced", "large"
	HyperFile       string   // Optional YAML tuning file layered over the profile
	SpamThreshold   float64  // Score at or above which IsSpam is set (default: 5.0)
	ParallelModules bool     // Fan scoring modules out over goroutines
	Modules         []string // Module names to run; empty runs every registered module

	// Per-module overrides keyed by module name.
	ModuleConfigs map[string]ModuleConfig

	// === Result caching ===
	EnableCaching bool          // Cache results keyed by a content hash
	CacheBackend  CacheBackend  // "none", "memory", "redis"
	CacheSize     int           // Max entries for the memory backend (default: 4096)
	CacheTTL      time.Duration // Entry lifetime for the Redis backend (default: 10m)
	RedisAddr     string        // host:port for the Redis backend
	RedisPassword string
	RedisDB       int

	// === Ensemble ===
	EnableEnsemble bool // Master switch for the external-model voting phase
	EnableHugot    bool // Load the local ONNX classifiers (toxicity/emotion/social)

	// ModelEndpoints lists remote classifiers as "id:kind:url" entries
	// (kind is one of toxicity, sentiment, emotion, social).
	ModelEndpoints []string
	ModelToken     string // Bearer token sent to every remote classifier

	// Embedding endpoint for the similarity model; empty disables it.
	EmbedBaseURL string
	EmbedAPIKey  string
	EmbedModel   string
	SeedFile     string // Optional YAML seed-phrase file for the similarity index

	// MaxModelCalls bounds concurrent in-flight model calls across all
	// analyses (0 uses the limiter default).
	MaxModelCalls int
}

// NewDefaultConfig creates a Config with balanced defaults.
// All settings can be overridden via environment variables.
func NewDefaultConfig() *Config {
	return &Config{
		// Core scoring
		Profile:         GetEnv("RAMPART_PROFILE", "balanced"),
		HyperFile:       GetEnv("RAMPART_HYPER_FILE", ""),
		SpamThreshold:   GetEnvFloat("RAMPART_SPAM_THRESHOLD", 5.0),
		ParallelModules: GetEnvBool("RAMPART_PARALLEL_MODULES", false),
		Modules:         GetEnvSlice("RAMPART_MODULES", nil),

		// Caching
		EnableCaching: GetEnvBool("RAMPART_ENABLE_CACHE", true),
		CacheBackend:  CacheBackend(GetEnv("RAMPART_CACHE_BACKEND", string(CacheMemory))),
		CacheSize:     clampInt(GetEnvInt("RAMPART_CACHE_SIZE", 4096), 16, 1_000_000),
		CacheTTL:      GetEnvDuration("RAMPART_CACHE_TTL", 10*time.Minute),
		RedisAddr:     GetEnv("RAMPART_REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnv("RAMPART_REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("RAMPART_REDIS_DB", 0),

		// Ensemble - disabled by default so the zero-dependency path works
		// out of the box; enabling it degrades gracefully per backend.
		EnableEnsemble: GetEnvBool("RAMPART_ENABLE_ENSEMBLE", false),
		EnableHugot:    GetEnvBool("RAMPART_ENABLE_HUGOT", true),
		ModelEndpoints: GetEnvSlice("RAMPART_MODEL_ENDPOINTS", nil),
		ModelToken:     GetEnv("RAMPART_MODEL_TOKEN", ""),
		EmbedBaseURL:   GetEnv("RAMPART_EMBED_BASE_URL", ""),
		EmbedAPIKey:    GetEnv("RAMPART_EMBED_API_KEY", ""),
		EmbedModel:     GetEnv("RAMPART_EMBED_MODEL", ""),
		SeedFile:       GetEnv("RAMPART_SEED_FILE", ""),
		MaxModelCalls:  GetEnvInt("RAMPART_MAX_MODEL_CALLS", 0),
	}
}

// NewTurboConfig trades detection depth for latency: tight match caps,
// short ensemble timeouts, no similarity model.
func NewTurboConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Profile = "turbo"
	cfg.ParallelModules = true
	cfg.EmbedBaseURL = ""
	return cfg
}

// NewFastConfig is the low-latency preset that keeps the full module set.
func NewFastConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Profile = "fast"
	cfg.ParallelModules = true
	return cfg
}

// NewBalancedConfig is NewDefaultConfig under its profile name.
func NewBalancedConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Profile = "balanced"
	return cfg
}

// NewLargeConfig maximizes detection depth: generous match caps and
// timeouts, ensemble on.
func NewLargeConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Profile = "large"
	cfg.EnableEnsemble = true
	return cfg
}

// ProfileConfig returns the preset for a profile name.
func ProfileConfig(profile string) (*Config, error) {
	switch strings.ToLower(strings.TrimSpace(profile)) {
	case "turbo":
		return NewTurboConfig(), nil
	case "fast":
		return NewFastConfig(), nil
	case "", "balanced", "default":
		return NewBalancedConfig(), nil
	case "large":
		return NewLargeConfig(), nil
	}
	return nil, fmt.Errorf("unknown profile %q (have turbo, fast, balanced, large)", profile)
}

// ParseModelEndpoint splits an "id:kind:url" entry. The URL keeps its own
// colons because only the first two separators split.
func ParseModelEndpoint(entry string) (id, kind, url string, err error) {
	parts := strings.SplitN(entry, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("model endpoint %q is not id:kind:url", entry)
	}
	return parts[0], parts[1], parts[2], nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Profile) {
	case "turbo", "fast", "balanced", "large", "":
	default:
		return fmt.Errorf("unknown profile %q", c.Profile)
	}

	if c.SpamThreshold <= 0 {
		return fmt.Errorf("spam threshold must be positive, got %g", c.SpamThreshold)
	}

	if c.EnableCaching {
		switch c.CacheBackend {
		case CacheMemory:
			if c.CacheSize <= 0 {
				return fmt.Errorf("memory cache requires a positive size, got %d", c.CacheSize)
			}
		case CacheRedis:
			if c.RedisAddr == "" {
				return fmt.Errorf("redis cache requires RAMPART_REDIS_ADDR")
			}
			if c.CacheTTL <= 0 {
				return fmt.Errorf("redis cache requires a positive TTL, got %v", c.CacheTTL)
			}
		case CacheNone:
		default:
			return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
		}
	}

	for _, entry := range c.ModelEndpoints {
		if _, _, _, err := ParseModelEndpoint(entry); err != nil {
			return err
		}
	}
	return nil
}

// MustValidate calls Validate and fatally exits if validation fails.
// Call this at startup before building an analyzer.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Fatalf("[STARTUP] FATAL: Configuration validation failed: %v", err)
	}
}

// clampInt ensures a value is within bounds.
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Helper functions for environment variable parsing.
// Exported for use by external collaborators (optimizers, benchmarks).

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvDuration returns the duration value ("10m", "1500ms") of an
// environment variable or a default value.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
