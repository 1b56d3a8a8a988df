package metrics

import (
	"context"

	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/logger"
)

// EventMetricsCollector subscribes to session events and records game metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every session event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range event.SessionTypes {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.PackOpened:
		p, err := event.DecodePayload[event.PackOpenedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		PacksOpened.WithLabelValues(p.PackType).Inc()
		for _, c := range p.Cards {
			CardsDrawn.WithLabelValues(string(c.Rarity)).Inc()
		}

	case event.MessageSent:
		p, err := event.DecodePayload[event.MessageSentPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		MessagesSent.WithLabelValues(p.Mode).Inc()
		UnknownTokens.Add(float64(p.UnknownCount))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
