package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarnings(t *testing.T) {
	t.Run("fully wired dev config has no warnings", func(t *testing.T) {
		cfg := validConfig()
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("missing collaborators", func(t *testing.T) {
		cfg := validConfig()
		cfg.LedgerBaseURL = ""
		cfg.RelayURL = ""

		warnings := cfg.Warnings()
		assert.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "LEDGER_BASE_URL")
		assert.Contains(t, warnings[1], "RELAY_URL")
	})

	t.Run("cheats in production", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = EnvironmentProduction
		cfg.EnableCheats = true

		warnings := cfg.Warnings()
		assert.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "ENABLE_CHEATS")
	})

	t.Run("redis without password in production", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = EnvironmentProduction
		cfg.CredentialsBackend = CredentialsBackendRedis

		assert.Equal(t, []string{"REDIS_PASSWORD is empty in production"}, cfg.Warnings())
	})
}
