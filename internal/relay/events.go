package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/inventory"
)

// Wire event names
const (
	EventJoin            = "join"
	EventSendMessage     = "send-message"
	EventSendRose        = "send-rose"
	EventUpdateInventory = "update-inventory"

	EventUsersUpdate = "users-update"
	EventMessage     = "message"
	EventRoseUpdate  = "rose-update"
)

// Frame is the envelope of every relay message
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is an event this service sends to the relay
type Outbound interface {
	EventName() string
}

// Inbound is an event received from the relay
type Inbound interface {
	EventName() string
}

// InventoryItem is how one owned word is announced to the relay
type InventoryItem struct {
	Rarity     domain.Rarity `json:"rarity"`
	Definition string        `json:"definition"`
}

// InventoryPayload converts an inventory to its relay form
func InventoryPayload(inv inventory.Inventory) map[string]InventoryItem {
	out := make(map[string]InventoryItem, inv.Len())
	for _, e := range inv.Entries() {
		out[e.Word] = InventoryItem{Rarity: e.Rarity, Definition: e.Definition}
	}
	return out
}

// Join announces the user and their inventory after connecting
type Join struct {
	Username  string                   `json:"username"`
	Inventory map[string]InventoryItem `json:"inventory"`
}

// SendMessage broadcasts a tokenized chat line
type SendMessage struct {
	HTML   string   `json:"html"`
	Tokens []string `json:"tokens"`
}

// SendRose endorses another user's message
type SendRose struct {
	TargetUsername string `json:"targetUsername"`
	MessageID      string `json:"messageId"`
}

// UpdateInventory republishes the inventory after it changes
type UpdateInventory struct {
	Inventory map[string]InventoryItem `json:"inventory"`
}

// EventName implements Outbound
func (Join) EventName() string { return EventJoin }

// EventName implements Outbound
func (SendMessage) EventName() string { return EventSendMessage }

// EventName implements Outbound
func (SendRose) EventName() string { return EventSendRose }

// EventName implements Outbound
func (UpdateInventory) EventName() string { return EventUpdateInventory }

// UsersUpdate is the relay's presence list
type UsersUpdate struct {
	Users []domain.OnlineUser `validate:"dive"`
}

// Message is a chat line or system notice broadcast by the relay
type Message struct {
	Type     domain.EntryType `json:"type" validate:"required,oneof=sys user"`
	Username string           `json:"username" validate:"required_if=Type user"`
	Nickname string           `json:"nickname"`
	Content  string           `json:"content"`
	ID       domain.FlexID    `json:"id" validate:"required_if=Type user"`
	Roses    int              `json:"roses" validate:"gte=0"`
	IsError  bool             `json:"isError"`
}

// RoseUpdate carries the authoritative rose count of a message
type RoseUpdate struct {
	MessageID  domain.FlexID `json:"messageId" validate:"required"`
	Roses      int           `json:"roses" validate:"gte=0"`
	Sender     string        `json:"sender,omitempty"`
	Receiver   string        `json:"receiver,omitempty"`
	TotalRoses *int          `json:"totalRoses,omitempty" validate:"omitempty,gte=0"`
}

// EventName implements Inbound
func (UsersUpdate) EventName() string { return EventUsersUpdate }

// EventName implements Inbound
func (Message) EventName() string { return EventMessage }

// EventName implements Inbound
func (RoseUpdate) EventName() string { return EventRoseUpdate }

// roseUpdateWire accepts the alternative field names relays use
type roseUpdateWire struct {
	MessageID        domain.FlexID `json:"messageId"`
	Roses            *int          `json:"roses"`
	Sender           string        `json:"sender"`
	SenderUsername   string        `json:"senderUsername"`
	Receiver         string        `json:"receiver"`
	ReceiverUsername string        `json:"receiverUsername"`
	ReceiverName     string        `json:"receiverName"`
	TotalRoses       *int          `json:"totalRoses"`
}

func (w roseUpdateWire) normalize() RoseUpdate {
	out := RoseUpdate{
		MessageID:  w.MessageID,
		Sender:     firstNonEmpty(w.Sender, w.SenderUsername),
		Receiver:   firstNonEmpty(w.Receiver, w.ReceiverUsername, w.ReceiverName),
		TotalRoses: w.TotalRoses,
	}
	if w.Roses != nil {
		out.Roses = *w.Roses
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Encode wraps an outbound event in a frame
func Encode(ev Outbound) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", ev.EventName(), err)
	}
	return json.Marshal(Frame{Event: ev.EventName(), Data: data})
}

// Decode parses and validates an inbound frame. Unknown event names and
// payloads that fail validation yield domain.ErrInvalidEvent.
func Decode(raw []byte) (Inbound, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}

	data := bytes.TrimSpace(f.Data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s: missing data", domain.ErrInvalidEvent, f.Event)
	}

	var ev Inbound
	switch f.Event {
	case EventUsersUpdate:
		var users []domain.OnlineUser
		if err := json.Unmarshal(data, &users); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidEvent, f.Event, err)
		}
		if users == nil {
			users = []domain.OnlineUser{}
		}
		ev = UsersUpdate{Users: users}

	case EventMessage:
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidEvent, f.Event, err)
		}
		ev = m

	case EventRoseUpdate:
		var w roseUpdateWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidEvent, f.Event, err)
		}
		ev = w.normalize()

	default:
		return nil, fmt.Errorf("%w: unknown event %q", domain.ErrInvalidEvent, f.Event)
	}

	if err := getValidator().Struct(ev); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidEvent, f.Event, err)
	}
	return ev, nil
}
