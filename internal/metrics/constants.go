package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNamePacksOpened    = "packs_opened_total"
	MetricNameCardsDrawn     = "cards_drawn_total"
	MetricNameMessagesSent   = "messages_sent_total"
	MetricNameUnknownTokens  = "unknown_tokens_total"
	MetricNameActiveSessions = "active_sessions"
)

// Collaborator metric names
const (
	MetricNameLedgerCallsTotal   = "ledger_calls_total"
	MetricNameLedgerCallDuration = "ledger_call_duration_seconds"
	MetricNameRelayConnected     = "relay_connected"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextPacksOpened    = "Total number of packs opened"
	HelpTextCardsDrawn     = "Total number of cards drawn"
	HelpTextMessagesSent   = "Total number of chat messages sent"
	HelpTextUnknownTokens  = "Total number of tokens rejected as not owned"
	HelpTextActiveSessions = "Current number of live sessions"
)

// Collaborator metric help text
const (
	HelpTextLedgerCallsTotal   = "Total number of remote ledger calls"
	HelpTextLedgerCallDuration = "Remote ledger call latency in seconds"
	HelpTextRelayConnected     = "Number of sessions with a connected relay"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelPackType  = "pack_type"
	LabelRarity    = "rarity"
	LabelMode      = "mode"
	LabelOperation = "operation"
)

// Ledger call status label values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
