package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// Session event types
const (
	ChatAppended     Type = "chat.appended"
	ChatRosesUpdated Type = "chat.roses_updated"
	InventoryChanged Type = "inventory.changed"
	PacksChanged     Type = "packs.changed"
	PackOpened       Type = "packs.opened"
	MessageSent      Type = "message.sent"
	UsersUpdated     Type = "users.updated"
	SessionClosed    Type = "session.closed"
	ProfileUpdated   Type = "profile.updated"
)

// SessionTypes lists every event type scoped to a user session
var SessionTypes = []Type{
	ChatAppended,
	ChatRosesUpdated,
	InventoryChanged,
	PacksChanged,
	PackOpened,
	MessageSent,
	UsersUpdated,
	SessionClosed,
	ProfileUpdated,
}

// Scoped is implemented by payloads that belong to one user's session
type Scoped interface {
	ScopeUser() string
}

// Scope names the session a payload belongs to
type Scope struct {
	Username string `json:"username"`
}

// ScopeUser returns the owning username
func (s Scope) ScopeUser() string {
	return s.Username
}

// ScopeOf returns the username an event is scoped to, or "" for global events
func ScopeOf(e Event) string {
	if s, ok := e.Payload.(Scoped); ok {
		return s.ScopeUser()
	}
	return ""
}

// ChatAppendedPayloadV1 carries a new chat log entry
type ChatAppendedPayloadV1 struct {
	Scope
	Entry domain.ChatLogEntry `json:"entry"`
}

// ChatRosesUpdatedPayloadV1 carries an authoritative rose count
type ChatRosesUpdatedPayloadV1 struct {
	Scope
	MessageID string `json:"messageId"`
	Roses     int    `json:"roses"`
}

// InventoryChangedPayloadV1 describes an inventory transition
type InventoryChangedPayloadV1 struct {
	Scope
	Reason   string   `json:"reason"`
	Size     int      `json:"size"`
	NewWords []string `json:"newWords,omitempty"`
}

// PacksChangedPayloadV1 carries the pack counts after a transition
type PacksChangedPayloadV1 struct {
	Scope
	Reason string         `json:"reason"`
	Packs  map[string]int `json:"packs"`
}

// PackOpenedPayloadV1 carries the cards of one opened pack
type PackOpenedPayloadV1 struct {
	Scope
	PackType string             `json:"packType"`
	Cards    []domain.DrawnCard `json:"cards"`
}

// MessageSentPayloadV1 summarises an outgoing chat line
type MessageSentPayloadV1 struct {
	Scope
	Mode         string `json:"mode"`
	OwnedCount   int    `json:"ownedCount"`
	UnknownCount int    `json:"unknownCount"`
}

// UsersUpdatedPayloadV1 carries the relay presence list
type UsersUpdatedPayloadV1 struct {
	Scope
	Users []domain.OnlineUser `json:"users"`
}

// SessionClosedPayloadV1 is published when a session is torn down
type SessionClosedPayloadV1 struct {
	Scope
	Reason string `json:"reason"`
}

// ProfileUpdatedPayloadV1 carries the profile after an edit
type ProfileUpdatedPayloadV1 struct {
	Scope
	Profile domain.Profile `json:"profile"`
}

func newEvent(t Type, payload interface{}) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: map[string]interface{}{"timestamp": time.Now().UnixMilli()},
	}
}

// NewChatAppendedEvent creates a chat append event
func NewChatAppendedEvent(username string, entry domain.ChatLogEntry) Event {
	return newEvent(ChatAppended, ChatAppendedPayloadV1{Scope: Scope{username}, Entry: entry})
}

// NewChatRosesUpdatedEvent creates a rose count event
func NewChatRosesUpdatedEvent(username, messageID string, roses int) Event {
	return newEvent(ChatRosesUpdated, ChatRosesUpdatedPayloadV1{Scope: Scope{username}, MessageID: messageID, Roses: roses})
}

// NewInventoryChangedEvent creates an inventory change event
func NewInventoryChangedEvent(username, reason string, size int, newWords []string) Event {
	return newEvent(InventoryChanged, InventoryChangedPayloadV1{Scope: Scope{username}, Reason: reason, Size: size, NewWords: newWords})
}

// NewPacksChangedEvent creates a pack count event
func NewPacksChangedEvent(username, reason string, packs map[string]int) Event {
	return newEvent(PacksChanged, PacksChangedPayloadV1{Scope: Scope{username}, Reason: reason, Packs: packs})
}

// NewPackOpenedEvent creates a pack opened event
func NewPackOpenedEvent(username, packType string, cards []domain.DrawnCard) Event {
	return newEvent(PackOpened, PackOpenedPayloadV1{Scope: Scope{username}, PackType: packType, Cards: cards})
}

// NewMessageSentEvent creates a message sent event
func NewMessageSentEvent(username, mode string, owned, unknown int) Event {
	return newEvent(MessageSent, MessageSentPayloadV1{Scope: Scope{username}, Mode: mode, OwnedCount: owned, UnknownCount: unknown})
}

// NewUsersUpdatedEvent creates a presence event
func NewUsersUpdatedEvent(username string, users []domain.OnlineUser) Event {
	return newEvent(UsersUpdated, UsersUpdatedPayloadV1{Scope: Scope{username}, Users: users})
}

// NewSessionClosedEvent creates a session closed event
func NewSessionClosedEvent(username, reason string) Event {
	return newEvent(SessionClosed, SessionClosedPayloadV1{Scope: Scope{username}, Reason: reason})
}

// NewProfileUpdatedEvent creates a profile updated event
func NewProfileUpdatedEvent(username string, profile domain.Profile) Event {
	return newEvent(ProfileUpdated, ProfileUpdatedPayloadV1{Scope: Scope{username}, Profile: profile})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
