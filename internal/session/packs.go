package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/draw"
	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/inventory"
	"github.com/zhaomaota/word-stone/internal/ledger"
)

// OpenResult is the outcome of opening one pack
type OpenResult struct {
	PackType  string             `json:"packType"`
	Cards     []domain.DrawnCard `json:"cards"`
	NewWords  []string           `json:"newWords"`
	Remaining int                `json:"remaining"`
}

func (s *Session) packType(raw string) string {
	if t := strings.TrimSpace(raw); t != "" {
		return t
	}
	return s.deps.Options.DefaultPackType
}

// OpenPack consumes one pack, draws a batch and merges it into the
// inventory. The ledger is told afterwards; its word and pack lists then
// replace the local ones.
func (s *Session) OpenPack(ctx context.Context, packType string) (OpenResult, error) {
	packType = s.packType(packType)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return OpenResult{}, domain.ErrSessionNotFound
	}
	packs, ok := s.packs.Consume(packType)
	if !ok {
		s.mu.Unlock()
		return OpenResult{}, fmt.Errorf("%w: %s", domain.ErrNoPacks, packType)
	}
	cards := draw.DrawBatch(s.deps.Catalog.Catalog, s.deps.Options.BatchSize, s.deps.Random)
	newWords := inventory.NewWords(s.inv, cards)
	s.packs = packs
	s.inv = inventory.MergeDraw(s.inv, cards)
	size := s.inv.Len()
	counts := s.packCountsLocked()
	s.mu.Unlock()

	s.publish(ctx, event.NewPackOpenedEvent(s.username, packType, cards))
	s.publish(ctx, event.NewPacksChangedEvent(s.username, event.ReasonDraw, counts))
	s.publish(ctx, event.NewInventoryChangedEvent(s.username, event.ReasonDraw, size, newWords))
	s.scheduleInventoryPush()

	s.confirm(ctx, OpOpenPack, func(ctx context.Context) error {
		if err := s.deps.Ledger.UsePack(ctx, s.token, packType); err != nil {
			return err
		}
		if err := s.deps.Ledger.SaveWords(ctx, s.token, ledger.NewWordsFromCards(cards)); err != nil {
			return err
		}
		return s.reconcileAll(ctx, event.ReasonReconcile)
	})

	return OpenResult{
		PackType:  packType,
		Cards:     cards,
		NewWords:  newWords,
		Remaining: counts[packType],
	}, nil
}

// ClaimPacks grants the configured number of packs of one type
func (s *Session) ClaimPacks(ctx context.Context, packType string) (map[string]int, error) {
	packType = s.packType(packType)
	count := s.deps.Options.ClaimPackCount

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	s.packs = s.packs.Grant(packType, count)
	counts := s.packCountsLocked()
	s.mu.Unlock()

	s.publish(ctx, event.NewPacksChangedEvent(s.username, event.ReasonClaim, counts))
	s.appendSystem(ctx, fmt.Sprintf(NoticeClaimed, count), false)

	s.confirm(ctx, OpClaim, func(ctx context.Context) error {
		if err := s.deps.Ledger.AddPacks(ctx, s.token, packType, count); err != nil {
			return err
		}
		return s.reconcilePacks(ctx, event.ReasonReconcile)
	})

	return counts, nil
}
