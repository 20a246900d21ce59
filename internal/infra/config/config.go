package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// maxOutfitItems is the largest outfit the scorer produces.
const maxOutfitItems = 3

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Outfit   OutfitConfig   `yaml:"outfit"`
	Storage  StorageConfig  `yaml:"storage"`
	Sentry   SentryConfig   `yaml:"sentry"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address            string          `yaml:"address"`
	ReadTimeout        time.Duration   `yaml:"readTimeout"`
	WriteTimeout       time.Duration   `yaml:"writeTimeout"`
	MaxBodyBytes       int64           `yaml:"maxBodyBytes"`
	ExposeErrorDetails bool            `yaml:"exposeErrorDetails"`
	AllowedOrigins     []string        `yaml:"allowedOrigins"`
	RateLimit          RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AnalyzerConfig controls page fetching, photo decoding and result caching.
type AnalyzerConfig struct {
	FetchTimeout  time.Duration `yaml:"fetchTimeout"`
	MaxRedirects  int           `yaml:"maxRedirects"`
	UserAgent     string        `yaml:"userAgent"`
	MaxPageBytes  int64         `yaml:"maxPageBytes"`
	MaxImageBytes int           `yaml:"maxImageBytes"`
	StorePhotos   bool          `yaml:"storePhotos"`
	Cache         CacheConfig   `yaml:"cache"`
}

// CacheConfig sizes the in-process product analysis cache.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	TTL      time.Duration `yaml:"ttl"`
	MaxItems int64         `yaml:"maxItems"`
}

// OutfitConfig controls outfit generation and question sessions.
type OutfitConfig struct {
	MaxItems   int           `yaml:"maxItems"`
	SessionTTL time.Duration `yaml:"sessionTtl"`
}

// StorageConfig selects persistence backends. Memory is used when none is set.
type StorageConfig struct {
	KeyPrefix     string              `yaml:"keyPrefix"`
	Valkey        ValkeyConfig        `yaml:"valkey"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	ObjectStorage ObjectStorageConfig `yaml:"objectStorage"`
}

// ValkeyConfig contains connection information for key/value storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ObjectStorageConfig points at an S3 compatible bucket for photos.
type ObjectStorageConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Endpoint      string        `yaml:"endpoint"`
	AccessKey     string        `yaml:"accessKey"`
	SecretKey     string        `yaml:"secretKey"`
	Bucket        string        `yaml:"bucket"`
	Region        string        `yaml:"region"`
	UseSSL        bool          `yaml:"useSsl"`
	PublicBaseURL string        `yaml:"publicBaseUrl"`
	PresignTTL    time.Duration `yaml:"presignTtl"`
	KeyPrefix     string        `yaml:"keyPrefix"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN              string  `yaml:"dsn"`
	Environment      string  `yaml:"environment"`
	TracesSampleRate float64 `yaml:"tracesSampleRate"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	envString("HTTP_ADDRESS", &cfg.HTTP.Address)
	envBool("HTTP_EXPOSE_ERROR_DETAILS", &cfg.HTTP.ExposeErrorDetails)
	envInt64("HTTP_MAX_BODY_BYTES", &cfg.HTTP.MaxBodyBytes)
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	envBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	envInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	envInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)

	envDuration("ANALYZER_FETCH_TIMEOUT", &cfg.Analyzer.FetchTimeout)
	envString("ANALYZER_USER_AGENT", &cfg.Analyzer.UserAgent)
	envBool("ANALYZER_STORE_PHOTOS", &cfg.Analyzer.StorePhotos)
	envBool("ANALYZER_CACHE_ENABLED", &cfg.Analyzer.Cache.Enabled)
	envDuration("ANALYZER_CACHE_TTL", &cfg.Analyzer.Cache.TTL)

	envInt("OUTFIT_MAX_ITEMS", &cfg.Outfit.MaxItems)
	envDuration("OUTFIT_SESSION_TTL", &cfg.Outfit.SessionTTL)

	envString("STORAGE_KEY_PREFIX", &cfg.Storage.KeyPrefix)
	envBool("VALKEY_ENABLED", &cfg.Storage.Valkey.Enabled)
	envString("VALKEY_ADDR", &cfg.Storage.Valkey.Addr)
	envString("POSTGRES_DSN", &cfg.Storage.Postgres.DSN)
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	envBool("OBJECT_STORAGE_ENABLED", &cfg.Storage.ObjectStorage.Enabled)
	envString("OBJECT_STORAGE_ENDPOINT", &cfg.Storage.ObjectStorage.Endpoint)
	envString("OBJECT_STORAGE_ACCESS_KEY", &cfg.Storage.ObjectStorage.AccessKey)
	envString("OBJECT_STORAGE_SECRET_KEY", &cfg.Storage.ObjectStorage.SecretKey)
	envString("OBJECT_STORAGE_BUCKET", &cfg.Storage.ObjectStorage.Bucket)
	envString("OBJECT_STORAGE_PUBLIC_BASE_URL", &cfg.Storage.ObjectStorage.PublicBaseURL)

	envString("SENTRY_DSN", &cfg.Sentry.DSN)
	envString("SENTRY_ENVIRONMENT", &cfg.Sentry.Environment)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func envInt64(key string, dst *int64) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = parsed
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 10 << 20,
			AllowedOrigins: []string{
				"*",
			},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Analyzer: AnalyzerConfig{
			FetchTimeout:  10 * time.Second,
			MaxRedirects:  5,
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			MaxPageBytes:  5 << 20,
			MaxImageBytes: 8 << 20,
			Cache: CacheConfig{
				Enabled:  true,
				TTL:      30 * time.Minute,
				MaxItems: 1000,
			},
		},
		Outfit: OutfitConfig{
			MaxItems:   3,
			SessionTTL: 24 * time.Hour,
		},
		Storage: StorageConfig{
			KeyPrefix: "outfit",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			ObjectStorage: ObjectStorageConfig{
				Region:     "auto",
				UseSSL:     true,
				PresignTTL: time.Hour,
				KeyPrefix:  "photos/",
			},
		},
		Sentry: SentryConfig{
			Environment:      "development",
			TracesSampleRate: 0,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.New("http.maxBodyBytes must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Analyzer.FetchTimeout <= 0 {
		return errors.New("analyzer.fetchTimeout must be positive")
	}
	if c.Analyzer.MaxRedirects < 0 {
		return errors.New("analyzer.maxRedirects cannot be negative")
	}
	if c.Analyzer.MaxPageBytes <= 0 {
		return errors.New("analyzer.maxPageBytes must be positive")
	}
	if c.Analyzer.MaxImageBytes <= 0 {
		return errors.New("analyzer.maxImageBytes must be positive")
	}
	if c.Analyzer.Cache.Enabled {
		if c.Analyzer.Cache.TTL <= 0 {
			return errors.New("analyzer.cache.ttl must be positive when the cache is enabled")
		}
		if c.Analyzer.Cache.MaxItems <= 0 {
			return errors.New("analyzer.cache.maxItems must be positive when the cache is enabled")
		}
	}
	if c.Outfit.MaxItems <= 0 || c.Outfit.MaxItems > maxOutfitItems {
		return fmt.Errorf("outfit.maxItems must be between 1 and %d", maxOutfitItems)
	}
	if c.Outfit.SessionTTL < 0 {
		return errors.New("outfit.sessionTtl cannot be negative")
	}
	if strings.TrimSpace(c.Storage.KeyPrefix) == "" {
		return errors.New("storage.keyPrefix cannot be empty")
	}
	if c.Storage.Valkey.Enabled && strings.TrimSpace(c.Storage.Valkey.Addr) == "" {
		return errors.New("storage.valkey.addr cannot be empty when valkey is enabled")
	}
	if store := c.Storage.ObjectStorage; store.Enabled {
		if strings.TrimSpace(store.Endpoint) == "" || strings.TrimSpace(store.Bucket) == "" {
			return errors.New("storage.objectStorage endpoint and bucket are required when enabled")
		}
		if store.AccessKey == "" || store.SecretKey == "" {
			return errors.New("storage.objectStorage credentials are required when enabled")
		}
	}
	if c.Sentry.TracesSampleRate < 0 || c.Sentry.TracesSampleRate > 1 {
		return errors.New("sentry.tracesSampleRate must be between 0 and 1")
	}
	return nil
}
