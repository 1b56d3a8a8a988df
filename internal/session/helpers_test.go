package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhaomaota/word-stone/internal/catalog"
	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/ledger/ledgertest"
	"github.com/zhaomaota/word-stone/internal/relay"
)

const testToken = "tok-ana"

var testWords = []string{"apple", "apricot", "avocado", "banana", "berry", "cherry", "date", "fig", "grape", "lemon"}

// tenWordCatalog holds testWords, all common
func tenWordCatalog() CatalogState {
	raw := make([]domain.RawEntry, len(testWords))
	for i, w := range testWords {
		raw[i] = domain.RawEntry{Word: w, Definition: fmt.Sprintf("def %d", i)}
	}
	c, stats := catalog.Load(raw)
	return CatalogState{Catalog: c, Stats: stats}
}

func newLedger(t *testing.T) *ledgertest.Server {
	t.Helper()
	srv := ledgertest.New()
	t.Cleanup(srv.Close)
	srv.AddUser(testToken, ledger.User{ID: "1", Username: "ana", Nickname: "Ana", TotalRoses: 2})
	return srv
}

func ledgerClient(srv *ledgertest.Server) Ledger {
	return ledger.NewClient(ledger.Config{BaseURL: srv.URL})
}

// recordingBus captures every published event
type recordingBus struct {
	*event.MemoryBus
	mu     sync.Mutex
	events []event.Event
}

func newRecordingBus() *recordingBus {
	return &recordingBus{MemoryBus: event.NewMemoryBus()}
}

func (b *recordingBus) Publish(ctx context.Context, evt event.Event) error {
	b.mu.Lock()
	b.events = append(b.events, evt)
	b.mu.Unlock()
	return b.MemoryBus.Publish(ctx, evt)
}

func (b *recordingBus) count(t event.Type) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// fakeRelay is an in-process relay.Client
type fakeRelay struct {
	cfg relay.Config

	mu        sync.Mutex
	connected bool
	started   bool
	stopped   bool
	sent      []relay.Outbound
	sendErr   error
}

func (f *fakeRelay) Start(context.Context) {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
}

func (f *fakeRelay) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.connected = false
	f.mu.Unlock()
}

func (f *fakeRelay) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeRelay) Send(_ context.Context, ev relay.Outbound) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return domain.ErrRelayOffline
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, ev)
	return nil
}

func (f *fakeRelay) setConnected(v bool) {
	f.mu.Lock()
	f.connected = v
	f.mu.Unlock()
}

func (f *fakeRelay) outbound() []relay.Outbound {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]relay.Outbound(nil), f.sent...)
}

// relayFactory returns a factory handing out fr
func relayFactory(fr *fakeRelay) RelayFactory {
	return func(cfg relay.Config) relay.Client {
		fr.cfg = cfg
		return fr
	}
}

func newSession(t *testing.T, deps Deps) *Session {
	t.Helper()
	if deps.Catalog.Catalog == nil {
		deps.Catalog = tenWordCatalog()
	}
	s := New(deps, "ana", testToken, domain.Profile{Username: "ana", Nickname: "Ana"})
	s.Init(context.Background())
	t.Cleanup(func() { s.Close(context.Background(), event.ReasonShutdown) })
	return s
}

func lastEntry(t *testing.T, s *Session) domain.ChatLogEntry {
	t.Helper()
	entries := s.Chat(1)
	require.Len(t, entries, 1)
	return entries[0]
}

func distinct(cards []domain.DrawnCard) int {
	seen := map[string]bool{}
	for _, c := range cards {
		seen[c.Word] = true
	}
	return len(seen)
}
