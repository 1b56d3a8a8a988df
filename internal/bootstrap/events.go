package bootstrap

import (
	"log/slog"

	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/metrics"
	"github.com/zhaomaota/word-stone/internal/sse"
)

// InitializeEventSystem creates the in-process event bus and attaches its
// consumers: the metrics collector and the SSE forwarder.
func InitializeEventSystem(hub *sse.Hub) event.Bus {
	bus := event.NewMemoryBus()

	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegd)

	sse.NewSubscriber(hub, bus).Subscribe()
	slog.Info(LogMsgSSESubscriberRegd)

	slog.Info(LogMsgEventSystemReady)
	return bus
}
