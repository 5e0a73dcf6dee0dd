// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"aiprintly/internal/models"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). An empty host selects the in-memory cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible object storage
	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3BucketPublic  string
	S3BucketPrivate string
	S3PublicURL     string

	// Mockup composition. MockupPreviewURL is the storefront route that
	// renders previews client-side; this service does not serve it.
	MockupPreviewURL      string
	MockupProvider        models.MockupProvider
	MockupCacheTTL        time.Duration
	MockupCacheMaxEntries int // in-memory cache only

	// Watermarking
	WatermarkText      string
	WatermarkRateLimit int // requests per minute per client
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or malformed in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "aiprintly"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "aiprintly"),

		ValkeyHost:     envOrUnset("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        envOrDefault("S3_REGION", "eu-west-2"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3BucketPublic:  envOrDefault("S3_BUCKET_PUBLIC", "aiprintly-public"),
		S3BucketPrivate: envOrDefault("S3_BUCKET_PRIVATE", "aiprintly-private"),
		S3PublicURL:     os.Getenv("S3_PUBLIC_URL"),

		MockupPreviewURL:      envOrDefault("MOCKUP_PREVIEW_URL", "/api/mockups/preview"),
		MockupProvider:        models.MockupProvider(envOrDefault("MOCKUP_PROVIDER", string(models.MockupProviderClient))),
		MockupCacheTTL:        24 * time.Hour,
		MockupCacheMaxEntries: 10_000,

		WatermarkText:      os.Getenv("WATERMARK_TEXT"),
		WatermarkRateLimit: 30,
	}

	var problems []error

	if raw := os.Getenv("MOCKUP_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			problems = append(problems, fmt.Errorf("MOCKUP_CACHE_TTL must be a positive duration, got %q", raw))
		} else {
			cfg.MockupCacheTTL = ttl
		}
	}

	if raw := os.Getenv("MOCKUP_CACHE_MAX_ENTRIES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			problems = append(problems, fmt.Errorf("MOCKUP_CACHE_MAX_ENTRIES must be a positive integer, got %q", raw))
		} else {
			cfg.MockupCacheMaxEntries = n
		}
	}

	if raw := os.Getenv("TRUST_PROXY_HEADERS"); raw != "" {
		trust, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("TRUST_PROXY_HEADERS must be a boolean, got %q", raw))
		} else {
			cfg.TrustProxyHeaders = trust
		}
	}

	if raw := os.Getenv("WATERMARK_RATE_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			problems = append(problems, fmt.Errorf("WATERMARK_RATE_LIMIT must be a positive integer, got %q", raw))
		} else {
			cfg.WatermarkRateLimit = n
		}
	}

	if !cfg.MockupProvider.Valid() {
		problems = append(problems, fmt.Errorf("MOCKUP_PROVIDER must be %q or %q, got %q",
			models.MockupProviderClient, models.MockupProviderRemote, cfg.MockupProvider))
		cfg.MockupProvider = models.MockupProviderClient
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if os.Getenv("MOCKUP_PREVIEW_URL") == "" {
			return nil, fmt.Errorf("MOCKUP_PREVIEW_URL must be set in production")
		}
		if len(problems) > 0 {
			return nil, problems[0]
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UseValkey reports whether the mockup cache should be backed by Valkey.
func (c *Config) UseValkey() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrUnset returns the fallback only when the variable is absent, so an
// explicit empty value switches the feature off.
func envOrUnset(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
