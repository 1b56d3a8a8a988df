package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaomaota/word-stone/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got Event

	bus.Subscribe(ChatAppended, func(ctx context.Context, e Event) error {
		got = e
		return nil
	})

	entry := domain.ChatLogEntry{ID: "1", Type: domain.EntryUser, Content: "hi"}
	require.NoError(t, bus.Publish(context.Background(), NewChatAppendedEvent("ana", entry)))

	assert.Equal(t, ChatAppended, got.Type)
	assert.Equal(t, EventSchemaVersion, got.Version)
	payload, err := DecodePayload[ChatAppendedPayloadV1](got.Payload)
	require.NoError(t, err)
	assert.Equal(t, entry, payload.Entry)
	assert.Equal(t, "ana", ScopeOf(got))
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0

	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}
	bus.Subscribe(PacksChanged, handler)
	bus.Subscribe(PacksChanged, handler)

	require.NoError(t, bus.Publish(context.Background(), NewPacksChangedEvent("ana", ReasonClaim, map[string]int{"normal": 5})))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), NewSessionClosedEvent("ana", ReasonLogout)))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(UsersUpdated, func(ctx context.Context, e Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), NewUsersUpdatedEvent("ana", nil))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), string(UsersUpdated))
}

func TestScopeOf(t *testing.T) {
	for _, e := range []Event{
		NewChatRosesUpdatedEvent("bo", "7", 3),
		NewInventoryChangedEvent("bo", ReasonDraw, 4, []string{"data"}),
		NewPackOpenedEvent("bo", domain.DefaultPackType, nil),
		NewMessageSentEvent("bo", "offline", 1, 2),
		NewProfileUpdatedEvent("bo", domain.Profile{Username: "bo"}),
	} {
		assert.Equal(t, "bo", ScopeOf(e), string(e.Type))
	}
	assert.Empty(t, ScopeOf(Event{Type: "global", Payload: "x"}))
}
