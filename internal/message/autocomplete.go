package message

import (
	"strings"
	"unicode"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/inventory"
)

// Autocomplete returns up to limit owned words starting with the last token
// of input, ignoring case, in inventory order
func Autocomplete(input string, inv inventory.Inventory, limit int) []domain.InventoryEntry {
	if limit <= 0 {
		limit = DefaultAutocompleteLimit
	}
	if input == "" || strings.TrimRightFunc(input, unicode.IsSpace) != input {
		return []domain.InventoryEntry{}
	}

	fields := strings.Fields(input)
	if len(fields) == 0 {
		return []domain.InventoryEntry{}
	}
	prefix := inventory.Fold(fields[len(fields)-1])

	out := make([]domain.InventoryEntry, 0, limit)
	for _, e := range inv.Entries() {
		if strings.HasPrefix(inventory.Fold(e.Word), prefix) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
