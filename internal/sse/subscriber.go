package sse

import (
	"context"
	"log/slog"

	"github.com/zhaomaota/word-stone/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarder for every session event type
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.SessionTypes))
	for _, t := range event.SessionTypes {
		s.bus.Subscribe(t, s.forward)
		types = append(types, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", types)
}

// forward rebroadcasts a bus event to the clients watching its user
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	topic := event.ScopeOf(evt)
	s.hub.Broadcast(topic, string(evt.Type), evt.Payload)

	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "topic", topic)
	return nil
}
