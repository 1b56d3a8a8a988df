package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept, including the new one
	LogFileRetentionCount = 10
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting word-stone"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Component Wiring
// =============================================================================

const (
	LogMsgCatalogDegraded      = "Vocabulary unavailable, serving the built-in seed catalog"
	LogMsgCredentialsReady     = "Credential store ready"
	LogMsgLedgerConfigured     = "Ledger configured"
	LogMsgLedgerDisabled       = "No ledger configured, sessions run local-only"
	LogMsgRelayConfigured      = "Relay configured"
	LogMsgRelayDisabled        = "No relay configured, chat runs offline"
	LogMsgResyncDisabled       = "Periodic resync disabled"
	LogMsgEventSystemReady     = "Event system initialized"
	LogMsgMetricsCollectorRegd = "Metrics collector registered"
	LogMsgSSESubscriberRegd    = "SSE subscriber registered"

	ErrMsgFailedCredentialStore = "failed to create credential store"
	ErrMsgFailedScheduleResync  = "failed to schedule resync"

	// JobNameResync tags the periodic session resync
	JobNameResync = "resync-sessions"

	// CheckNameRedis names the redis readiness check
	CheckNameRedis = "redis"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer     = "Shutting down server..."
	LogMsgStoppingScheduler      = "Stopping scheduler..."
	LogMsgClosingSessions        = "Closing sessions..."
	LogMsgStoppingWorkerPool     = "Stopping worker pool..."
	LogMsgStoppingSSEHub         = "Stopping SSE hub..."
	LogMsgClosingCredentialStore = "Closing credential store..."
	LogMsgServerStopped          = "Server stopped"
	LogMsgServerForcedShutdown   = "Server forced to shutdown"
	LogMsgCredentialCloseFailed  = "Credential store close failed"
)
