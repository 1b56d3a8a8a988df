package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/zhaomaota/word-stone/internal/config"
	"github.com/zhaomaota/word-stone/internal/credentials"
	"github.com/zhaomaota/word-stone/internal/handler"
)

// NewCredentialStore builds the configured credential backend. Backends with
// a remote dependency also return their readiness checks.
func NewCredentialStore(cfg *config.Config) (credentials.Store, map[string]handler.HealthChecker, error) {
	checks := make(map[string]handler.HealthChecker)

	switch cfg.CredentialsBackend {
	case config.CredentialsBackendRedis:
		store := credentials.NewRedisStore(credentials.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
		checks[CheckNameRedis] = handler.HealthCheckFunc(store.Ping)
		slog.Info(LogMsgCredentialsReady, "backend", cfg.CredentialsBackend, "addr", cfg.RedisAddr)
		return store, checks, nil

	default:
		store, err := credentials.NewFileStore(cfg.CredentialsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCredentialStore, err)
		}
		slog.Info(LogMsgCredentialsReady, "backend", cfg.CredentialsBackend, "dir", cfg.CredentialsDir)
		return store, checks, nil
	}
}
