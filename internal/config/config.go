package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT"         envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT"   envDefault:"text"`
	LogDir      string `env:"LOG_DIR"      envDefault:"logs"`
	Version     string `env:"VERSION"      envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"word-stone"`

	VocabularyPath       string `env:"VOCABULARY_PATH"        envDefault:"configs/vocabulary.json"`
	VocabularySchemaPath string `env:"VOCABULARY_SCHEMA_PATH" envDefault:"configs/schemas/vocabulary.schema.json"`
	PackBatchSize        int    `env:"PACK_BATCH_SIZE"        envDefault:"5"`
	DefaultPackType      string `env:"DEFAULT_PACK_TYPE"      envDefault:"normal"`
	ClaimPackCount       int    `env:"CLAIM_PACK_COUNT"       envDefault:"5"`

	// LedgerBaseURL empty means sessions run local-only
	LedgerBaseURL    string        `env:"LEDGER_BASE_URL"`
	LedgerTimeout    time.Duration `env:"LEDGER_TIMEOUT"     envDefault:"10s"`
	LedgerMaxRetries int           `env:"LEDGER_MAX_RETRIES" envDefault:"0"`

	// RelayURL empty means every session chats in offline mode
	RelayURL string `env:"RELAY_URL"`

	SessionCacheSize int           `env:"SESSION_CACHE_SIZE" envDefault:"1000"`
	SessionTTL       time.Duration `env:"SESSION_TTL"        envDefault:"12h"`

	CredentialsBackend string `env:"CREDENTIALS_BACKEND" envDefault:"file"`
	CredentialsDir     string `env:"CREDENTIALS_DIR"     envDefault:"data/credentials"`
	RedisAddr          string `env:"REDIS_ADDR"          envDefault:"localhost:6379"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB"            envDefault:"0"`

	// ResyncInterval of zero disables the periodic resync
	ResyncInterval  time.Duration `env:"RESYNC_INTERVAL"   envDefault:"5m"`
	WorkerCount     int           `env:"WORKER_COUNT"      envDefault:"4"`
	WorkerQueueSize int           `env:"WORKER_QUEUE_SIZE" envDefault:"256"`

	EnableCheats          bool          `env:"ENABLE_CHEATS"           envDefault:"false"`
	InventoryPushDebounce time.Duration `env:"INVENTORY_PUSH_DEBOUNCE" envDefault:"100ms"`
	AutocompleteLimit     int           `env:"AUTOCOMPLETE_LIMIT"      envDefault:"10"`
	ChatTailLimit         int           `env:"CHAT_TAIL_LIMIT"         envDefault:"50"`

	// TrustedProxies may set X-Forwarded-For for rate limiting
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field rules and value ranges
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Port > 0 && c.Port <= 65535, "invalid PORT %d: must be between 1 and 65535", c.Port)
	check(c.LogFormat == LogFormatText || c.LogFormat == LogFormatJSON, "invalid LOG_FORMAT %q: must be %q or %q", c.LogFormat, LogFormatText, LogFormatJSON)
	check(c.VocabularyPath != "", "VOCABULARY_PATH must be set")
	check(c.PackBatchSize > 0, "invalid PACK_BATCH_SIZE %d: must be positive", c.PackBatchSize)
	check(c.DefaultPackType != "", "DEFAULT_PACK_TYPE must be set")
	check(c.ClaimPackCount > 0, "invalid CLAIM_PACK_COUNT %d: must be positive", c.ClaimPackCount)
	check(c.LedgerTimeout > 0, "invalid LEDGER_TIMEOUT %s: must be positive", c.LedgerTimeout)
	check(c.LedgerMaxRetries >= 0, "invalid LEDGER_MAX_RETRIES %d: must not be negative", c.LedgerMaxRetries)
	check(c.SessionCacheSize > 0, "invalid SESSION_CACHE_SIZE %d: must be positive", c.SessionCacheSize)
	check(c.SessionTTL >= 0, "invalid SESSION_TTL %s: must not be negative", c.SessionTTL)
	check(c.CredentialsBackend == CredentialsBackendFile || c.CredentialsBackend == CredentialsBackendRedis,
		"invalid CREDENTIALS_BACKEND %q: must be %q or %q", c.CredentialsBackend, CredentialsBackendFile, CredentialsBackendRedis)
	check(c.CredentialsBackend != CredentialsBackendFile || c.CredentialsDir != "", "CREDENTIALS_DIR must be set for the file backend")
	check(c.CredentialsBackend != CredentialsBackendRedis || c.RedisAddr != "", "REDIS_ADDR must be set for the redis backend")
	check(c.ResyncInterval >= 0, "invalid RESYNC_INTERVAL %s: must not be negative", c.ResyncInterval)
	check(c.WorkerCount > 0, "invalid WORKER_COUNT %d: must be positive", c.WorkerCount)
	check(c.WorkerQueueSize >= 0, "invalid WORKER_QUEUE_SIZE %d: must not be negative", c.WorkerQueueSize)
	check(c.InventoryPushDebounce >= 0, "invalid INVENTORY_PUSH_DEBOUNCE %s: must not be negative", c.InventoryPushDebounce)
	check(c.AutocompleteLimit > 0, "invalid AUTOCOMPLETE_LIMIT %d: must be positive", c.AutocompleteLimit)
	check(c.ChatTailLimit > 0, "invalid CHAT_TAIL_LIMIT %d: must be positive", c.ChatTailLimit)

	if c.LedgerBaseURL != "" {
		u, err := url.Parse(c.LedgerBaseURL)
		check(err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "",
			"invalid LEDGER_BASE_URL %q: must be an http(s) URL", c.LedgerBaseURL)
	}
	if c.RelayURL != "" {
		u, err := url.Parse(c.RelayURL)
		check(err == nil && (u.Scheme == "ws" || u.Scheme == "wss") && u.Host != "",
			"invalid RELAY_URL %q: must be a ws(s) URL", c.RelayURL)
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}
