package relay

import "time"

// Connection tuning
const (
	// DefaultReconnectDelay is the initial delay before attempting to reconnect
	DefaultReconnectDelay = 1 * time.Second

	// MaxReconnectDelay is the maximum delay between reconnection attempts
	MaxReconnectDelay = 30 * time.Second

	// ReconnectMultiplier is the multiplier for exponential backoff
	ReconnectMultiplier = 2.0

	// MaxConsecutiveFailures is how many dial failures put the client to sleep until the next Send
	MaxConsecutiveFailures = 10

	// WriteTimeout is the timeout for writing messages
	WriteTimeout = 10 * time.Second

	// ReadBufferSize is the WebSocket read buffer size
	ReadBufferSize = 4096

	// WriteBufferSize is the WebSocket write buffer size
	WriteBufferSize = 4096
)

// Log messages
const (
	LogMsgConnecting    = "Connecting to relay"
	LogMsgConnected     = "Connected to relay"
	LogMsgRestored      = "Relay connection restored"
	LogMsgReconnecting  = "Relay connection failed, reconnecting"
	LogMsgGivingUp      = "Relay unreachable, waiting for activity before retrying"
	LogMsgWaking        = "Relay client waking from dormant mode"
	LogMsgClientStopped = "Relay client stopped"
	LogMsgReadError     = "Relay read error"
	LogMsgInvalidEvent  = "Dropping invalid relay event"
	LogMsgJoinFailed    = "Failed to send join to relay"
	LogMsgSendFailed    = "Failed to send relay event"
	LogMsgDormantRetry  = "Relay dormant, triggering reconnect"
	LogMsgSendingEvent  = "Sending relay event"
)
