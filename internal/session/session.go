package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/zhaomaota/word-stone/internal/catalog"
	"github.com/zhaomaota/word-stone/internal/chatlog"
	"github.com/zhaomaota/word-stone/internal/debounce"
	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/inventory"
	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/logger"
	"github.com/zhaomaota/word-stone/internal/metrics"
	"github.com/zhaomaota/word-stone/internal/pack"
	"github.com/zhaomaota/word-stone/internal/relay"
	"github.com/zhaomaota/word-stone/internal/worker"
)

// Session owns one logged-in user's inventory, packs, chat log and relay
// connection. State transitions go through the pure packages; the session
// only serialises them and runs the confirm phase against the ledger.
type Session struct {
	username string
	token    string
	deps     Deps
	log      *slog.Logger

	mu      sync.RWMutex
	profile domain.Profile
	inv     inventory.Inventory
	packs   pack.Ledger
	chat    chatlog.Log
	online  []domain.OnlineUser
	closed  bool

	relay   relay.Client
	pusher  *debounce.Debouncer
	pending sync.WaitGroup
}

// Snapshot is a read-only summary of a session
type Snapshot struct {
	Username      string                `json:"username"`
	Profile       domain.Profile        `json:"profile"`
	Packs         map[string]int        `json:"packs"`
	TotalPacks    int                   `json:"totalPacks"`
	InventorySize int                   `json:"inventorySize"`
	RarityCounts  map[domain.Rarity]int `json:"rarityCounts"`
	Online        []domain.OnlineUser   `json:"online"`
	Mode          string                `json:"mode"`
	ChatSize      int                   `json:"chatSize"`
}

// New creates a session. Call Init before using it.
func New(deps Deps, username, token string, profile domain.Profile) *Session {
	deps = deps.withDefaults()
	if profile.Username == "" {
		profile.Username = username
	}
	return &Session{
		username: username,
		token:    token,
		deps:     deps,
		log:      slog.Default().With("username", username, "component", "session"),
		profile:  profile,
		inv:      inventory.New(),
		packs:    pack.Ledger{},
		chat:     chatlog.New(),
		online:   []domain.OnlineUser{},
		pusher:   debounce.New(deps.Options.PushDebounce),
	}
}

// Username returns the owner of the session
func (s *Session) Username() string {
	return s.username
}

// Token returns the bearer token the session was opened with
func (s *Session) Token() string {
	return s.token
}

// Authorize reports whether token matches the session token
func (s *Session) Authorize(token string) bool {
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) == 1
}

// Init posts the catalog notice, loads authoritative packs and words and
// connects the relay. A failed ledger sync is reported in the chat log but
// does not fail the session.
func (s *Session) Init(ctx context.Context) {
	s.appendSystem(ctx, catalog.LoadNotice(s.deps.Catalog.Stats, s.deps.Catalog.LoadErr), s.deps.Catalog.LoadErr != nil)

	if s.deps.Ledger != nil {
		if err := s.reconcileAll(ctx, event.ReasonLogin); err != nil {
			logger.FromContext(ctx).Warn(LogMsgInitSyncFailed, "username", s.username, "error", err)
			s.appendSystem(ctx, NoticeInitFailed, true)
		}
	}

	if s.deps.Relay != nil {
		s.relay = s.deps.Relay(relay.Config{
			Username: s.username,
			Handler:  s.HandleInbound,
			Join:     s.joinPayload,
			OnState:  s.onRelayState,
		})
		s.relay.Start(context.WithoutCancel(ctx))
	}

	logger.FromContext(ctx).Info(LogMsgSessionStarted,
		"username", s.username,
		"local_only", s.deps.Ledger == nil,
		"relay", s.deps.Relay != nil)
}

// Close stops the relay and pending pushes. It is safe to call more than once.
func (s *Session) Close(ctx context.Context, reason string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.pusher.Cancel()
	if s.relay != nil {
		s.relay.Stop()
	}
	s.publish(ctx, event.NewSessionClosedEvent(s.username, reason))
	s.log.Info(LogMsgSessionClosed, "reason", reason)
}

// Closed reports whether Close has run
func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Wait blocks until every confirm job enqueued so far has finished
func (s *Session) Wait() {
	s.pending.Wait()
}

// Mode reports whether chat goes through the relay or stays local
func (s *Session) Mode() string {
	if s.relay != nil && s.relay.Connected() {
		return ModeOnline
	}
	return ModeOffline
}

// Snapshot summarises the session
func (s *Session) Snapshot() Snapshot {
	mode := s.Mode()

	s.mu.RLock()
	defer s.mu.RUnlock()
	packs := make(map[string]int, len(s.packs))
	for _, t := range s.packs.Types() {
		packs[t] = s.packs.Count(t)
	}
	return Snapshot{
		Username:      s.username,
		Profile:       s.profile,
		Packs:         packs,
		TotalPacks:    s.packs.Total(),
		InventorySize: s.inv.Len(),
		RarityCounts:  inventory.CountByRarity(s.inv),
		Online:        append([]domain.OnlineUser(nil), s.online...),
		Mode:          mode,
		ChatSize:      s.chat.Len(),
	}
}

// Inventory returns the current inventory value
func (s *Session) Inventory() inventory.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inv
}

// Packs returns the current pack counts
func (s *Session) Packs() pack.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.packs
}

// Chat returns the last n chat entries; n <= 0 uses the configured tail limit
func (s *Session) Chat(n int) []domain.ChatLogEntry {
	if n <= 0 {
		n = s.deps.Options.ChatTailLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chat.Tail(n)
}

// Profile returns the user profile
func (s *Session) Profile() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// appendSystem adds a system notice to the chat log
func (s *Session) appendSystem(ctx context.Context, content string, isError bool) domain.ChatLogEntry {
	return s.appendEntry(ctx, domain.ChatLogEntry{Type: domain.EntrySystem, Content: content, IsError: isError})
}

func (s *Session) appendEntry(ctx context.Context, entry domain.ChatLogEntry) domain.ChatLogEntry {
	s.mu.Lock()
	s.chat = s.chat.Append(entry)
	entries := s.chat.Entries()
	added := entries[len(entries)-1]
	s.mu.Unlock()

	s.publish(ctx, event.NewChatAppendedEvent(s.username, added))
	return added
}

func (s *Session) publish(ctx context.Context, evt event.Event) {
	if err := s.deps.Bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "username", s.username, "type", evt.Type, "error", err)
	}
}

// confirm runs fn against the ledger in the background. Failures keep the
// optimistic state and leave an error notice in the chat log.
func (s *Session) confirm(ctx context.Context, op string, fn func(ctx context.Context) error) {
	if s.deps.Ledger == nil {
		return
	}

	s.pending.Add(1)
	job := worker.JobFunc(func(jobCtx context.Context) error {
		defer s.pending.Done()
		if s.Closed() {
			s.log.Debug(LogMsgConfirmSkipped, "op", op)
			return nil
		}
		if err := fn(jobCtx); err != nil {
			s.log.Warn(LogMsgConfirmFailed, "op", op, "error", err)
			s.appendSystem(jobCtx, fmt.Sprintf(NoticeSyncFailed, op), true)
			return fmt.Errorf("%s for %s: %w", op, s.username, err)
		}
		return nil
	})

	if s.deps.Pool == nil {
		_ = job.Process(context.WithoutCancel(ctx))
		return
	}

	enqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()
	if err := s.deps.Pool.Enqueue(enqCtx, job); err != nil {
		s.pending.Done()
		logger.FromContext(ctx).Error(LogMsgEnqueueFailed, "username", s.username, "op", op, "error", err)
		s.appendSystem(ctx, fmt.Sprintf(NoticeSyncFailed, op), true)
	}
}

// reconcileAll fetches words and packs and, only when both succeed,
// overwrites local state with them
func (s *Session) reconcileAll(ctx context.Context, reason string) error {
	words, err := s.deps.Ledger.GetWords(ctx, s.token, nil)
	if err != nil {
		return err
	}
	packs, err := s.deps.Ledger.GetPacks(ctx, s.token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.inv = inventory.ReconcileFromRemote(words)
	s.packs = s.packs.Reconcile(packs)
	size := s.inv.Len()
	counts := s.packCountsLocked()
	s.mu.Unlock()

	s.publish(ctx, event.NewInventoryChangedEvent(s.username, reason, size, nil))
	s.publish(ctx, event.NewPacksChangedEvent(s.username, reason, counts))
	s.scheduleInventoryPush()
	return nil
}

// reconcileWords overwrites the inventory with the ledger's word list
func (s *Session) reconcileWords(ctx context.Context, reason string) error {
	words, err := s.deps.Ledger.GetWords(ctx, s.token, nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.inv = inventory.ReconcileFromRemote(words)
	size := s.inv.Len()
	s.mu.Unlock()

	s.publish(ctx, event.NewInventoryChangedEvent(s.username, reason, size, nil))
	s.scheduleInventoryPush()
	return nil
}

// reconcilePacks overwrites pack counts with the ledger's
func (s *Session) reconcilePacks(ctx context.Context, reason string) error {
	packs, err := s.deps.Ledger.GetPacks(ctx, s.token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.packs = s.packs.Reconcile(packs)
	counts := s.packCountsLocked()
	s.mu.Unlock()

	s.publish(ctx, event.NewPacksChangedEvent(s.username, reason, counts))
	return nil
}

func (s *Session) packCountsLocked() map[string]int {
	counts := make(map[string]int, len(s.packs))
	for _, t := range s.packs.Types() {
		counts[t] = s.packs.Count(t)
	}
	return counts
}

// Resync reconciles packs and words with the ledger. Local-only sessions
// have nothing to resync.
func (s *Session) Resync(ctx context.Context) error {
	if s.deps.Ledger == nil || s.Closed() {
		return nil
	}
	if err := s.reconcileAll(ctx, event.ReasonReconcile); err != nil {
		return fmt.Errorf("%s: %w", OpResync, err)
	}
	return nil
}

// RefreshProfile reloads the profile from the ledger
func (s *Session) RefreshProfile(ctx context.Context) error {
	if s.deps.Ledger == nil {
		return nil
	}
	u, err := s.deps.Ledger.CurrentUser(ctx, s.token)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = mergeProfile(s.profile, u)
	s.mu.Unlock()
	return nil
}

// UpdateProfile edits the nickname or avatar. With a ledger the edit is
// applied only after the ledger accepts it. An empty update changes nothing.
func (s *Session) UpdateProfile(ctx context.Context, update ledger.ProfileUpdate) (domain.Profile, error) {
	if update.Nickname != nil {
		nickname := strings.TrimSpace(*update.Nickname)
		if nickname == "" {
			return domain.Profile{}, fmt.Errorf("%w: nickname cannot be empty", domain.ErrInvalidInput)
		}
		update.Nickname = &nickname
	}
	if update.Empty() {
		return s.Profile(), nil
	}

	var stored ledger.User
	if s.deps.Ledger != nil {
		u, err := s.deps.Ledger.UpdateCurrentUser(ctx, s.token, update)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("%s: %w", OpUpdateProfile, err)
		}
		stored = u
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.Profile{}, domain.ErrSessionNotFound
	}
	s.profile = update.Apply(s.profile)
	// the ledger echoes the stored user; an empty echo keeps the applied edit
	if stored.Username != "" {
		s.profile = mergeProfile(s.profile, stored)
	}
	profile := s.profile
	s.mu.Unlock()

	s.publish(ctx, event.NewProfileUpdatedEvent(s.username, profile))
	logger.FromContext(ctx).Info(LogMsgProfileUpdated, "username", s.username, "local_only", s.deps.Ledger == nil)
	return profile, nil
}

func mergeProfile(p domain.Profile, u ledger.User) domain.Profile {
	remote := u.Profile()
	if remote.Username == "" {
		remote.Username = p.Username
	}
	if remote.Nickname == "" {
		remote.Nickname = p.Nickname
	}
	return remote
}

// IsUnauthorized reports whether err means the ledger rejected the token
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

func sameUser(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (s *Session) onRelayState(connected bool) {
	if connected {
		metrics.RelayConnected.Inc()
	} else {
		metrics.RelayConnected.Dec()
	}
	s.log.Info(LogMsgRelayState, "connected", connected)
}
