package inventory

import (
	"fmt"
	"strings"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// MergeDraw adds every drawn word not already owned, matching keys exactly.
// Owned words are never overwritten, so re-applying a batch changes nothing.
func MergeDraw(inv Inventory, cards []domain.DrawnCard) Inventory {
	var out *Inventory
	for _, card := range cards {
		if inv.Has(card.Word) || (out != nil && out.Has(card.Word)) {
			continue
		}
		if out == nil {
			c := inv.clone()
			out = &c
		}
		out.insert(domain.InventoryEntry{
			Word:       card.Word,
			Rarity:     card.Rarity,
			Definition: card.Definition,
		})
	}
	if out == nil {
		return inv
	}
	return *out
}

// NewWords returns the distinct drawn words not yet owned, in draw order
func NewWords(inv Inventory, cards []domain.DrawnCard) []string {
	seen := make(map[string]struct{}, len(cards))
	var fresh []string
	for _, card := range cards {
		if inv.Has(card.Word) {
			continue
		}
		if _, dup := seen[card.Word]; dup {
			continue
		}
		seen[card.Word] = struct{}{}
		fresh = append(fresh, card.Word)
	}
	return fresh
}

// ReconcileFromRemote replaces the inventory with the remote ledger's word list.
// The result depends only on the input, so applying it twice is a no-op.
func ReconcileFromRemote(remote []domain.RemoteWord) Inventory {
	entries := make([]domain.InventoryEntry, 0, len(remote))
	for _, w := range remote {
		word := strings.TrimSpace(w.Word)
		if word == "" {
			continue
		}
		rarity, _ := domain.ParseRarity(w.Rarity)
		entries = append(entries, domain.InventoryEntry{
			Word:        word,
			RemoteID:    w.WordID.String(),
			Rarity:      rarity,
			Definition:  w.Definition,
			IsFavorited: w.IsFavorited,
		})
	}
	return New(entries...)
}

// SetFavorite marks a word as favorited or not. Words without a remote id
// cannot be favorited and yield domain.ErrNotPersisted with inv unchanged.
func SetFavorite(inv Inventory, word string, isFavorited bool) (Inventory, error) {
	entry, ok := inv.Lookup(word)
	if !ok {
		return inv, fmt.Errorf("%w: %s", domain.ErrWordNotOwned, word)
	}
	if !entry.Persisted() {
		return inv, fmt.Errorf("%w: %s", domain.ErrNotPersisted, entry.Word)
	}
	if entry.IsFavorited == isFavorited {
		return inv, nil
	}

	out := inv.clone()
	entry.IsFavorited = isFavorited
	out.entries[entry.Word] = entry
	return out, nil
}

// GrantAll adds every catalog word not yet owned, rarest tiers first.
// It returns the new inventory and how many words were added.
func GrantAll(inv Inventory, c domain.Catalog) (Inventory, int) {
	out := inv.clone()
	added := 0
	for _, r := range domain.RarityOrder {
		for _, item := range c[r] {
			if out.insert(domain.InventoryEntry{Word: item.Word, Rarity: r, Definition: item.Definition}) {
				added++
			}
		}
	}
	if added == 0 {
		return inv, 0
	}
	return out, added
}
