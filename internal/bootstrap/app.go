package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zhaomaota/word-stone/internal/config"
	"github.com/zhaomaota/word-stone/internal/credentials"
	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/relay"
	"github.com/zhaomaota/word-stone/internal/scheduler"
	"github.com/zhaomaota/word-stone/internal/server"
	"github.com/zhaomaota/word-stone/internal/session"
	"github.com/zhaomaota/word-stone/internal/sse"
	"github.com/zhaomaota/word-stone/internal/worker"
)

// App holds every long-lived component of the service
type App struct {
	Server      *server.Server
	Scheduler   *scheduler.Scheduler
	Sessions    *session.Manager
	Pool        *worker.Pool
	Hub         *sse.Hub
	Credentials credentials.Store
}

// Build wires the service from configuration. Background components are
// started; the HTTP server is not.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	state := LoadCatalog(ctx, cfg)

	creds, checks, err := NewCredentialStore(cfg)
	if err != nil {
		return nil, err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize, cfg.LedgerTimeout)
	pool.Start()

	hub := sse.NewHub()
	hub.Start()
	bus := InitializeEventSystem(hub)

	deps := session.Deps{
		Catalog: state,
		Pool:    pool,
		Bus:     bus,
		Options: sessionOptions(cfg),
	}
	if cfg.LedgerBaseURL != "" {
		deps.Ledger = ledger.NewClient(ledger.Config{
			BaseURL:    cfg.LedgerBaseURL,
			Timeout:    cfg.LedgerTimeout,
			MaxRetries: cfg.LedgerMaxRetries,
		})
		slog.Info(LogMsgLedgerConfigured, "url", cfg.LedgerBaseURL)
	} else {
		slog.Info(LogMsgLedgerDisabled)
	}
	if cfg.RelayURL != "" {
		deps.Relay = relayFactory(cfg.RelayURL)
		slog.Info(LogMsgRelayConfigured, "url", cfg.RelayURL)
	} else {
		slog.Info(LogMsgRelayDisabled)
	}

	sessions := session.NewManager(deps, creds, cfg.SessionCacheSize, cfg.SessionTTL)

	sched := scheduler.New(pool)
	if cfg.ResyncInterval > 0 {
		if err := sched.Schedule(JobNameResync, cfg.ResyncInterval, worker.JobFunc(sessions.ResyncAll)); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedScheduleResync, err)
		}
	} else {
		slog.Info(LogMsgResyncDisabled)
	}
	sched.Start()

	srv := server.NewServer(
		server.Config{Port: cfg.Port, Version: cfg.Version, TrustedProxies: cfg.TrustedProxies},
		server.Deps{Sessions: sessions, Catalog: state, Hub: hub, Checks: checks},
	)

	return &App{
		Server:      srv,
		Scheduler:   sched,
		Sessions:    sessions,
		Pool:        pool,
		Hub:         hub,
		Credentials: creds,
	}, nil
}

func sessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		BatchSize:         cfg.PackBatchSize,
		DefaultPackType:   cfg.DefaultPackType,
		ClaimPackCount:    cfg.ClaimPackCount,
		EnableCheats:      cfg.EnableCheats,
		PushDebounce:      cfg.InventoryPushDebounce,
		AutocompleteLimit: cfg.AutocompleteLimit,
		ChatTailLimit:     cfg.ChatTailLimit,
	}
}

// relayFactory dials url for every session, filling in the per-session callbacks
func relayFactory(url string) session.RelayFactory {
	return func(rc relay.Config) relay.Client {
		rc.URL = url
		return relay.NewWSClient(rc)
	}
}
