package inventory

import (
	"golang.org/x/text/cases"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// Inventory is an immutable, insertion-ordered set of owned words.
// Keys are the display words; a case-folded index serves case-insensitive lookups.
type Inventory struct {
	order   []string
	entries map[string]domain.InventoryEntry
	folded  map[string]string
}

// Fold returns the case-folded form used for case-insensitive comparison
func Fold(s string) string {
	return cases.Fold().String(s)
}

// New builds an inventory from entries. When two entries share a key the first wins.
func New(entries ...domain.InventoryEntry) Inventory {
	inv := Inventory{
		order:   make([]string, 0, len(entries)),
		entries: make(map[string]domain.InventoryEntry, len(entries)),
		folded:  make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		inv.insert(e)
	}
	return inv
}

// insert adds e unless its key is already owned. Callers must own the maps.
func (inv *Inventory) insert(e domain.InventoryEntry) bool {
	if _, exists := inv.entries[e.Word]; exists {
		return false
	}
	inv.order = append(inv.order, e.Word)
	inv.entries[e.Word] = e
	if f := Fold(e.Word); f != "" {
		if _, taken := inv.folded[f]; !taken {
			inv.folded[f] = e.Word
		}
	}
	return true
}

// clone returns a copy whose maps may be mutated without affecting inv
func (inv Inventory) clone() Inventory {
	out := Inventory{
		order:   make([]string, len(inv.order), len(inv.order)+8),
		entries: make(map[string]domain.InventoryEntry, len(inv.entries)+8),
		folded:  make(map[string]string, len(inv.folded)+8),
	}
	copy(out.order, inv.order)
	for k, v := range inv.entries {
		out.entries[k] = v
	}
	for k, v := range inv.folded {
		out.folded[k] = v
	}
	return out
}

// Len returns the number of owned words
func (inv Inventory) Len() int {
	return len(inv.order)
}

// Get looks a word up by exact key
func (inv Inventory) Get(word string) (domain.InventoryEntry, bool) {
	e, ok := inv.entries[word]
	return e, ok
}

// Has reports whether word is an exact key
func (inv Inventory) Has(word string) bool {
	_, ok := inv.entries[word]
	return ok
}

// Lookup finds a word ignoring case. The returned entry keeps its original casing.
func (inv Inventory) Lookup(word string) (domain.InventoryEntry, bool) {
	if e, ok := inv.entries[word]; ok {
		return e, true
	}
	key, ok := inv.folded[Fold(word)]
	if !ok {
		return domain.InventoryEntry{}, false
	}
	return inv.entries[key], true
}

// Words returns the owned words in insertion order
func (inv Inventory) Words() []string {
	out := make([]string, len(inv.order))
	copy(out, inv.order)
	return out
}

// Entries returns the owned entries in insertion order
func (inv Inventory) Entries() []domain.InventoryEntry {
	out := make([]domain.InventoryEntry, 0, len(inv.order))
	for _, w := range inv.order {
		out = append(out, inv.entries[w])
	}
	return out
}
