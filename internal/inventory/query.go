package inventory

import (
	"sort"
	"strings"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// Filter narrows an inventory listing
type Filter struct {
	Search        string
	Rarity        domain.Rarity
	FavoritesOnly bool
}

// Query lists entries matching f, sorted by case-folded word.
// Search matches a case-insensitive substring of the word or definition.
func Query(inv Inventory, f Filter) []domain.InventoryEntry {
	needle := Fold(strings.TrimSpace(f.Search))

	out := make([]domain.InventoryEntry, 0, inv.Len())
	for _, e := range inv.Entries() {
		if f.Rarity != "" && e.Rarity != f.Rarity {
			continue
		}
		if f.FavoritesOnly && !e.IsFavorited {
			continue
		}
		if needle != "" && !strings.Contains(Fold(e.Word), needle) && !strings.Contains(Fold(e.Definition), needle) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Fold(out[i].Word) < Fold(out[j].Word)
	})
	return out
}

// CountByRarity tallies owned words per rarity
func CountByRarity(inv Inventory) map[domain.Rarity]int {
	counts := make(map[domain.Rarity]int, len(domain.RarityOrder))
	for _, r := range domain.RarityOrder {
		counts[r] = 0
	}
	for _, e := range inv.Entries() {
		counts[e.Rarity]++
	}
	return counts
}
