package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"PORT", "ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR", "VERSION", "SERVICE_NAME",
	"VOCABULARY_PATH", "VOCABULARY_SCHEMA_PATH", "PACK_BATCH_SIZE", "DEFAULT_PACK_TYPE", "CLAIM_PACK_COUNT",
	"LEDGER_BASE_URL", "LEDGER_TIMEOUT", "LEDGER_MAX_RETRIES", "RELAY_URL",
	"SESSION_CACHE_SIZE", "SESSION_TTL", "CREDENTIALS_BACKEND", "CREDENTIALS_DIR",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "RESYNC_INTERVAL", "WORKER_COUNT", "WORKER_QUEUE_SIZE",
	"ENABLE_CHEATS", "INVENTORY_PUSH_DEBOUNCE", "AUTOCOMPLETE_LIMIT", "CHAT_TAIL_LIMIT",
	"TRUSTED_PROXIES",
}

// clearEnvVars blanks every key so host settings do not leak into tests
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func validConfig() *Config {
	return &Config{
		Port:                  8080,
		Environment:           "dev",
		LogLevel:              "info",
		LogFormat:             LogFormatText,
		VocabularyPath:        "configs/vocabulary.json",
		PackBatchSize:         5,
		DefaultPackType:       "normal",
		ClaimPackCount:        5,
		LedgerBaseURL:         "http://ledger.local",
		LedgerTimeout:         10 * time.Second,
		RelayURL:              "ws://relay.local/ws",
		SessionCacheSize:      10,
		SessionTTL:            time.Hour,
		CredentialsBackend:    CredentialsBackendFile,
		CredentialsDir:        "data/credentials",
		RedisAddr:             "localhost:6379",
		ResyncInterval:        5 * time.Minute,
		WorkerCount:           1,
		WorkerQueueSize:       1,
		InventoryPushDebounce: 100 * time.Millisecond,
		AutocompleteLimit:     10,
		ChatTailLimit:         50,
	}
}

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "word-stone", cfg.ServiceName)
		assert.Equal(t, 5, cfg.PackBatchSize)
		assert.Equal(t, "normal", cfg.DefaultPackType)
		assert.Equal(t, 5, cfg.ClaimPackCount)
		assert.Empty(t, cfg.LedgerBaseURL)
		assert.Equal(t, 10*time.Second, cfg.LedgerTimeout)
		assert.Zero(t, cfg.LedgerMaxRetries)
		assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
		assert.Equal(t, CredentialsBackendFile, cfg.CredentialsBackend)
		assert.Equal(t, 5*time.Minute, cfg.ResyncInterval)
		assert.Equal(t, 100*time.Millisecond, cfg.InventoryPushDebounce)
		assert.False(t, cfg.EnableCheats)
		assert.Equal(t, 10, cfg.AutocompleteLimit)
		assert.Equal(t, 50, cfg.ChatTailLimit)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv("PORT", "3000")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("LEDGER_BASE_URL", "https://ledger.example.com/api")
		t.Setenv("LEDGER_TIMEOUT", "3s")
		t.Setenv("RELAY_URL", "wss://relay.example.com/ws")
		t.Setenv("CREDENTIALS_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "cache:6380")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("RESYNC_INTERVAL", "0")
		t.Setenv("ENABLE_CHEATS", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "https://ledger.example.com/api", cfg.LedgerBaseURL)
		assert.Equal(t, 3*time.Second, cfg.LedgerTimeout)
		assert.Equal(t, "wss://relay.example.com/ws", cfg.RelayURL)
		assert.Equal(t, CredentialsBackendRedis, cfg.CredentialsBackend)
		assert.Equal(t, "cache:6380", cfg.RedisAddr)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Zero(t, cfg.ResyncInterval)
		assert.True(t, cfg.EnableCheats)
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("returns error for invalid duration", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("LEDGER_TIMEOUT", "soon")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("handles PORT edge cases", func(t *testing.T) {
		testCases := []struct {
			name        string
			portValue   string
			shouldError bool
		}{
			{"zero port", "0", true},
			{"negative port", "-1", true},
			{"max valid port", "65535", false},
			{"above max port", "65536", true},
			{"float port", "8080.5", true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv("PORT", tc.portValue)

				_, err := Load()

				if tc.shouldError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"zero batch size", func(c *Config) { c.PackBatchSize = 0 }, "PACK_BATCH_SIZE"},
		{"zero claim count", func(c *Config) { c.ClaimPackCount = 0 }, "CLAIM_PACK_COUNT"},
		{"negative retries", func(c *Config) { c.LedgerMaxRetries = -1 }, "LEDGER_MAX_RETRIES"},
		{"unknown backend", func(c *Config) { c.CredentialsBackend = "s3" }, "CREDENTIALS_BACKEND"},
		{"redis without addr", func(c *Config) {
			c.CredentialsBackend = CredentialsBackendRedis
			c.RedisAddr = ""
		}, "REDIS_ADDR"},
		{"ledger url without scheme", func(c *Config) { c.LedgerBaseURL = "ledger.local" }, "LEDGER_BASE_URL"},
		{"relay url over http", func(c *Config) { c.RelayURL = "http://relay.local" }, "RELAY_URL"},
		{"negative resync", func(c *Config) { c.ResyncInterval = -time.Second }, "RESYNC_INTERVAL"},
		{"zero workers", func(c *Config) { c.WorkerCount = 0 }, "WORKER_COUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	cfg.ChatTailLimit = 0

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "CHAT_TAIL_LIMIT")
}
