package session

import (
	"context"
	"time"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/draw"
	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/relay"
	"github.com/zhaomaota/word-stone/internal/worker"
)

// Ledger is the remote word and pack ledger. *ledger.Client implements it.
type Ledger interface {
	Verify(ctx context.Context, token string) (ledger.User, error)
	CurrentUser(ctx context.Context, token string) (ledger.User, error)
	UpdateCurrentUser(ctx context.Context, token string, update ledger.ProfileUpdate) (ledger.User, error)
	GetPacks(ctx context.Context, token string) (map[string]int, error)
	AddPacks(ctx context.Context, token, packType string, count int) error
	UsePack(ctx context.Context, token, packType string) error
	GetWords(ctx context.Context, token string, favoritesOnly *bool) ([]domain.RemoteWord, error)
	SaveWords(ctx context.Context, token string, words []ledger.NewWord) error
	SetFavorite(ctx context.Context, token, wordID string, isFavorited bool) error
}

// Enqueuer runs confirm jobs in the background. *worker.Pool implements it.
type Enqueuer interface {
	Enqueue(ctx context.Context, job worker.Job) error
}

// RelayFactory builds the relay connection of one session
type RelayFactory func(cfg relay.Config) relay.Client

// CatalogState is the loaded vocabulary shared by every session
type CatalogState struct {
	Catalog domain.Catalog
	Stats   domain.LoadStats
	LoadErr error
}

// Options tunes session behaviour
type Options struct {
	BatchSize         int
	DefaultPackType   string
	ClaimPackCount    int
	EnableCheats      bool
	PushDebounce      time.Duration
	AutocompleteLimit int
	ChatTailLimit     int
}

// DefaultOptions returns the stock tuning
func DefaultOptions() Options {
	return Options{
		BatchSize:         draw.DefaultBatchSize,
		DefaultPackType:   domain.DefaultPackType,
		ClaimPackCount:    5,
		PushDebounce:      100 * time.Millisecond,
		AutocompleteLimit: 10,
		ChatTailLimit:     50,
	}
}

// Deps are the collaborators shared by every session.
// A nil Ledger runs sessions local-only; a nil Relay keeps chat offline.
type Deps struct {
	Catalog CatalogState
	Ledger  Ledger
	Relay   RelayFactory
	Pool    Enqueuer
	Bus     event.Bus
	Random  draw.RandomFunc
	Options Options
}

func (d Deps) withDefaults() Deps {
	def := DefaultOptions()
	if d.Options.BatchSize <= 0 {
		d.Options.BatchSize = def.BatchSize
	}
	if d.Options.DefaultPackType == "" {
		d.Options.DefaultPackType = def.DefaultPackType
	}
	if d.Options.ClaimPackCount <= 0 {
		d.Options.ClaimPackCount = def.ClaimPackCount
	}
	if d.Options.AutocompleteLimit <= 0 {
		d.Options.AutocompleteLimit = def.AutocompleteLimit
	}
	if d.Options.ChatTailLimit <= 0 {
		d.Options.ChatTailLimit = def.ChatTailLimit
	}
	if d.Random == nil {
		d.Random = draw.DefaultRandom
	}
	if d.Bus == nil {
		d.Bus = event.NewMemoryBus()
	}
	return d
}
