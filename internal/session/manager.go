package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/zhaomaota/word-stone/internal/concurrency"
	"github.com/zhaomaota/word-stone/internal/credentials"
	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/logger"
	"github.com/zhaomaota/word-stone/internal/metrics"
)

// LoginRequest opens a session
type LoginRequest struct {
	Username string
	Token    string
	Nickname string
}

// Manager is the registry of live sessions. Sessions beyond the size limit
// or idle past the TTL are evicted and torn down.
type Manager struct {
	deps    Deps
	creds   credentials.Store
	cache   *expirable.LRU[string, *Session]
	locks   *concurrency.LockManager
	now     func() time.Time
	closing atomic.Bool
}

// NewManager creates a session registry. creds may be nil.
func NewManager(deps Deps, creds credentials.Store, size int, ttl time.Duration) *Manager {
	m := &Manager{
		deps:  deps.withDefaults(),
		creds: creds,
		locks: concurrency.NewLockManager(),
		now:   time.Now,
	}
	m.cache = expirable.NewLRU[string, *Session](size, m.onEvict, ttl)
	return m
}

func key(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// onEvict runs for removals, expiries and purges alike. Close is idempotent,
// so sessions already closed by Logout or replacement are untouched.
func (m *Manager) onEvict(username string, s *Session) {
	reason := event.ReasonEvicted
	if m.closing.Load() {
		reason = event.ReasonShutdown
	}
	if !s.Closed() {
		slog.Default().Info(LogMsgSessionEvicted, "username", username, "reason", reason)
	}
	s.Close(context.Background(), reason)
	metrics.ActiveSessions.Dec()
}

// Login verifies the token with the ledger, opens a session and stores the
// credentials. Without a ledger any token is accepted and one is generated
// when missing. An existing session of the same user is replaced.
func (m *Manager) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	unlock := m.locks.Lock(key(username))
	defer unlock()

	s, err := m.open(ctx, username, strings.TrimSpace(req.Token), domain.Profile{Nickname: req.Nickname})
	if err != nil {
		return nil, err
	}
	m.remember(ctx, username, s)
	return s, nil
}

// remember stores the session's token and profile so it can be restored later
func (m *Manager) remember(ctx context.Context, username string, s *Session) {
	if m.creds == nil {
		return
	}
	creds := credentials.Credentials{Token: s.Token(), Profile: s.Profile()}
	if err := m.creds.Put(ctx, username, creds); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCredentialsFailed, "username", username, "op", "put", "error", err)
	}
}

// open builds, initialises and registers a session. Callers hold the user lock.
// base seeds the profile; the ledger's copy wins when one is configured.
func (m *Manager) open(ctx context.Context, username, token string, base domain.Profile) (*Session, error) {
	profile := base
	profile.Username = username
	profile.Nickname = strings.TrimSpace(base.Nickname)

	if m.deps.Ledger != nil {
		if token == "" {
			return nil, fmt.Errorf("%w: token is required", domain.ErrUnauthorized)
		}
		u, err := m.deps.Ledger.Verify(ctx, token)
		if err != nil {
			return nil, err
		}
		if u.Username != "" && !sameUser(u.Username, username) {
			return nil, fmt.Errorf("%w: token belongs to another user", domain.ErrUnauthorized)
		}
		if current, err := m.deps.Ledger.CurrentUser(ctx, token); err == nil {
			u = current
		}
		profile = mergeProfile(profile, u)
	} else if token == "" {
		token = uuid.NewString()
	}

	k := key(username)
	if old, ok := m.cache.Peek(k); ok {
		old.Close(ctx, event.ReasonReplaced)
		m.cache.Remove(k)
	}

	s := New(m.deps, username, token, profile)
	s.Init(ctx)
	m.cache.Add(k, s)
	metrics.ActiveSessions.Inc()
	return s, nil
}

// Get returns the live session of username. A session that was evicted is
// restored from the credential store unless its token has expired.
func (m *Manager) Get(ctx context.Context, username string) (*Session, error) {
	k := key(username)
	if s, ok := m.cache.Get(k); ok {
		return s, nil
	}
	if m.creds == nil || m.closing.Load() {
		return nil, domain.ErrSessionNotFound
	}

	unlock := m.locks.Lock(k)
	defer unlock()

	// another request may have restored it while we waited
	if s, ok := m.cache.Get(k); ok {
		return s, nil
	}

	creds, err := m.creds.Get(ctx, username)
	if errors.Is(err, credentials.ErrNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionNotFound, err)
	}
	if credentials.Expired(creds.Token, m.now()) {
		m.forget(ctx, username)
		return nil, domain.ErrTokenExpired
	}

	s, err := m.open(ctx, username, creds.Token, creds.Profile)
	if err != nil {
		if IsUnauthorized(err) {
			m.forget(ctx, username)
		}
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgSessionRestored, "username", username)
	return s, nil
}

// Logout closes the session and clears its stored credentials
func (m *Manager) Logout(ctx context.Context, username string) error {
	k := key(username)
	unlock := m.locks.Lock(k)
	defer unlock()

	s, ok := m.cache.Peek(k)
	if ok {
		s.Close(ctx, event.ReasonLogout)
		m.cache.Remove(k)
	}
	m.forget(ctx, username)

	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// UpdateProfile edits the session's profile and stores the result with its
// credentials
func (m *Manager) UpdateProfile(ctx context.Context, username string, update ledger.ProfileUpdate) (domain.Profile, error) {
	s, err := m.Get(ctx, username)
	if err != nil {
		return domain.Profile{}, err
	}

	unlock := m.locks.Lock(key(username))
	defer unlock()

	profile, err := s.UpdateProfile(ctx, update)
	if err != nil {
		return domain.Profile{}, err
	}
	m.remember(ctx, username, s)
	return profile, nil
}

func (m *Manager) forget(ctx context.Context, username string) {
	if m.creds == nil {
		return
	}
	if err := m.creds.Delete(ctx, username); err != nil {
		logger.FromContext(ctx).Warn(LogMsgCredentialsFailed, "username", username, "op", "delete", "error", err)
	}
}

// ResyncAll reconciles every live session with the ledger
func (m *Manager) ResyncAll(ctx context.Context) error {
	sessions := m.cache.Values()

	var errs []error
	for _, s := range sessions {
		if err := s.Resync(ctx); err != nil {
			logger.FromContext(ctx).Warn(LogMsgResyncFailed, "username", s.Username(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Username(), err))
		}
	}
	logger.FromContext(ctx).Debug(LogMsgResyncAll, "sessions", len(sessions), "failed", len(errs))
	return errors.Join(errs...)
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	return m.cache.Len()
}

// Close tears down every session. Stored credentials are kept so sessions
// can be restored after a restart.
func (m *Manager) Close() {
	m.closing.Store(true)
	m.cache.Purge()
}
