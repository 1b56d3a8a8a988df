package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/event"
	"github.com/zhaomaota/word-stone/internal/inventory"
	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/message"
	"github.com/zhaomaota/word-stone/internal/relay"
)

// ToggleFavorite stars or unstars an owned word. Words the ledger has not
// confirmed yet fail with domain.ErrNotPersisted and change nothing.
func (s *Session) ToggleFavorite(ctx context.Context, word string, isFavorited bool) (domain.InventoryEntry, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.InventoryEntry{}, domain.ErrSessionNotFound
	}
	inv, err := inventory.SetFavorite(s.inv, word, isFavorited)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, domain.ErrNotPersisted) {
			s.appendSystem(ctx, fmt.Sprintf(NoticeNotPersisted, word), true)
		}
		return domain.InventoryEntry{}, err
	}
	s.inv = inv
	entry, _ := inv.Lookup(word)
	size := inv.Len()
	s.mu.Unlock()

	s.publish(ctx, event.NewInventoryChangedEvent(s.username, event.ReasonFavorite, size, nil))

	s.confirm(ctx, OpFavorite, func(ctx context.Context) error {
		if err := s.deps.Ledger.SetFavorite(ctx, s.token, entry.RemoteID, isFavorited); err != nil {
			return err
		}
		return s.reconcileWords(ctx, event.ReasonReconcile)
	})

	return entry, nil
}

// UnlockAll grants every catalog word. Only available when cheats are enabled.
func (s *Session) UnlockAll(ctx context.Context) (int, error) {
	if !s.deps.Options.EnableCheats {
		return 0, domain.ErrCheatsDisabled
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, domain.ErrSessionNotFound
	}
	before := s.inv
	inv, added := inventory.GrantAll(s.inv, s.deps.Catalog.Catalog)
	s.inv = inv
	size := inv.Len()
	s.mu.Unlock()

	var words []ledger.NewWord
	for _, e := range inv.Entries() {
		if !before.Has(e.Word) {
			words = append(words, ledger.NewWord{Word: e.Word, Definition: e.Definition, Rarity: string(e.Rarity)})
		}
	}

	if added > 0 {
		s.publish(ctx, event.NewInventoryChangedEvent(s.username, event.ReasonUnlockAll, size, nil))
		s.scheduleInventoryPush()
	}
	s.appendSystem(ctx, fmt.Sprintf(NoticeUnlockAll, added), false)

	if len(words) > 0 {
		s.confirm(ctx, OpUnlockAll, func(ctx context.Context) error {
			if err := s.deps.Ledger.SaveWords(ctx, s.token, words); err != nil {
				return err
			}
			return s.reconcileWords(ctx, event.ReasonReconcile)
		})
	}
	return added, nil
}

// QueryInventory filters and sorts the inventory
func (s *Session) QueryInventory(f inventory.Filter) []domain.InventoryEntry {
	return inventory.Query(s.Inventory(), f)
}

// Autocomplete suggests owned words completing the last token of input
func (s *Session) Autocomplete(input string) []domain.InventoryEntry {
	return message.Autocomplete(input, s.Inventory(), s.deps.Options.AutocompleteLimit)
}

// scheduleInventoryPush republishes the inventory to the relay after
// changes settle
func (s *Session) scheduleInventoryPush() {
	if s.relay == nil {
		return
	}
	s.pusher.Trigger(func() {
		if s.Closed() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), relaySendTimeout)
		defer cancel()

		inv := s.Inventory()
		s.log.Debug(LogMsgInventoryPush, "size", inv.Len())
		if err := s.relay.Send(ctx, relay.UpdateInventory{Inventory: relay.InventoryPayload(inv)}); err != nil {
			s.log.Debug(LogMsgInventoryPushFail, "error", err)
		}
	})
}

func (s *Session) joinPayload() relay.Join {
	return relay.Join{Username: s.username, Inventory: relay.InventoryPayload(s.Inventory())}
}
