package bootstrap

import (
	"context"
	"log/slog"
)

// GracefulShutdown stops the application in dependency order:
//  1. HTTP server (stop accepting new requests)
//  2. Scheduler (no new resync jobs)
//  3. Sessions (relay connections close, debounced pushes flush)
//  4. Worker pool (drain in-flight confirm jobs)
//  5. SSE hub (disconnect streaming clients)
//  6. Credential store
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, app *App) {
	slog.Info(LogMsgShuttingDownServer)
	if err := app.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgStoppingScheduler)
	app.Scheduler.Stop()

	slog.Info(LogMsgClosingSessions, "active", app.Sessions.Len())
	app.Sessions.Close()

	slog.Info(LogMsgStoppingWorkerPool)
	app.Pool.Stop()

	slog.Info(LogMsgStoppingSSEHub)
	app.Hub.Stop()

	slog.Info(LogMsgClosingCredentialStore)
	if err := app.Credentials.Close(); err != nil {
		slog.Error(LogMsgCredentialCloseFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
