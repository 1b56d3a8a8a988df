package session

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/zhaomaota/word-stone/internal/chatlog"
	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/logger"
	"github.com/zhaomaota/word-stone/internal/message"
	"github.com/zhaomaota/word-stone/internal/relay"
)

// SendResult is the outcome of sending one chat line
type SendResult struct {
	Mode        string               `json:"mode"`
	Result      message.Result       `json:"result"`
	Suggestions []message.Suggestion `json:"suggestions,omitempty"`
	// Entry is the locally appended line in offline mode. Online lines
	// arrive later as the relay's echo.
	Entry *domain.ChatLogEntry `json:"entry,omitempty"`
}

// SendMessage tokenizes text against the inventory. Online it is handed to
// the relay, which decides whether to broadcast it. Offline it is appended
// locally, followed by an access denied notice when it has unknown words.
func (s *Session) SendMessage(ctx context.Context, text string) (SendResult, error) {
	clean := message.Sanitize(text)
	if strings.TrimSpace(clean) == "" {
		return SendResult{}, fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}
	if s.Closed() {
		return SendResult{}, domain.ErrSessionNotFound
	}

	inv := s.Inventory()
	res := message.TokenizeAndValidate(clean, inv)
	out := SendResult{Result: res}

	if s.Mode() == ModeOnline {
		out.Mode = ModeOnline
		err := s.relay.Send(ctx, relay.SendMessage{HTML: res.Markup, Tokens: res.OwnedTokens})
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgRelaySendFailed, "username", s.username, "error", err)
			s.appendSystem(ctx, NoticeRelayFailed, true)
			return out, err
		}
	} else {
		out.Mode = ModeOffline
		profile := s.Profile()
		entry := s.appendEntry(ctx, domain.ChatLogEntry{
			Type:     domain.EntryUser,
			Content:  res.Markup,
			Username: s.username,
			Nickname: profile.Nickname,
		})
		out.Entry = &entry

		if res.HasUnknown() {
			out.Suggestions = message.Suggest(res.UnknownTokens, inv)
			s.appendSystem(ctx, message.DeniedNotice(res.UnknownTokens, out.Suggestions), true)
		}
	}

	s.publish(ctx, event.NewMessageSentEvent(s.username, out.Mode, len(res.OwnedTokens), len(res.UnknownTokens)))
	return out, nil
}

// SendRose endorses a relay-confirmed message of another user
func (s *Session) SendRose(ctx context.Context, targetUsername, messageID string) error {
	targetUsername = strings.TrimSpace(targetUsername)
	messageID = strings.TrimSpace(messageID)
	if targetUsername == "" || messageID == "" {
		return fmt.Errorf("%w: target username and message id are required", domain.ErrInvalidInput)
	}
	if chatlog.IsLocalID(messageID) {
		return fmt.Errorf("%w: message %s has not been confirmed by the relay", domain.ErrInvalidInput, messageID)
	}
	if s.Mode() != ModeOnline {
		return domain.ErrRelayOffline
	}
	return s.relay.Send(ctx, relay.SendRose{TargetUsername: targetUsername, MessageID: messageID})
}

// HandleInbound applies one validated relay event
func (s *Session) HandleInbound(ctx context.Context, ev relay.Inbound) {
	if s.Closed() {
		return
	}

	switch e := ev.(type) {
	case relay.Message:
		entry := domain.ChatLogEntry{
			Type:    e.Type,
			Content: e.Content,
			IsError: e.IsError,
		}
		if e.Type == domain.EntryUser {
			entry.ID = e.ID.String()
			entry.Username = e.Username
			entry.Nickname = e.Nickname
			entry.Roses = e.Roses
		}
		s.appendEntry(ctx, entry)

	case relay.RoseUpdate:
		s.applyRoseUpdate(ctx, e)

	case relay.UsersUpdate:
		s.mu.Lock()
		s.online = append([]domain.OnlineUser(nil), e.Users...)
		s.mu.Unlock()
		s.publish(ctx, event.NewUsersUpdatedEvent(s.username, e.Users))
	}
}

func (s *Session) applyRoseUpdate(ctx context.Context, e relay.RoseUpdate) {
	s.mu.Lock()
	s.chat = s.chat.UpdateRoses(e.MessageID, e.Roses)
	forMe := e.Receiver != "" && sameUser(e.Receiver, s.username) && e.TotalRoses != nil
	if forMe {
		s.profile.TotalRoses = *e.TotalRoses
	}
	s.mu.Unlock()

	s.publish(ctx, event.NewChatRosesUpdatedEvent(s.username, e.MessageID.String(), e.Roses))

	if forMe {
		sender := e.Sender
		if sender == "" {
			sender = NoticeRoseAnonSender
		}
		s.appendSystem(ctx, fmt.Sprintf(NoticeRoseReceived, html.EscapeString(sender)), false)
	}
}
