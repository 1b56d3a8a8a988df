package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	PacksOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePacksOpened,
			Help: HelpTextPacksOpened,
		},
		[]string{LabelPackType},
	)

	CardsDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsDrawn,
			Help: HelpTextCardsDrawn,
		},
		[]string{LabelRarity},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMessagesSent,
			Help: HelpTextMessagesSent,
		},
		[]string{LabelMode},
	)

	UnknownTokens = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUnknownTokens,
			Help: HelpTextUnknownTokens,
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)
)

// Collaborator Metrics
var (
	LedgerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerCallsTotal,
			Help: HelpTextLedgerCallsTotal,
		},
		[]string{LabelOperation, LabelStatus},
	)

	LedgerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameLedgerCallDuration,
			Help:    HelpTextLedgerCallDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	RelayConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameRelayConnected,
			Help: HelpTextRelayConnected,
		},
	)
)

// ObserveLedgerCall records the outcome and latency of one remote ledger call
func ObserveLedgerCall(operation string, d time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	LedgerCallsTotal.WithLabelValues(operation, status).Inc()
	LedgerCallDuration.WithLabelValues(operation).Observe(d.Seconds())
}
