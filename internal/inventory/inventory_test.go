package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaomaota/word-stone/internal/domain"
)

func card(word string, r domain.Rarity) domain.DrawnCard {
	return domain.DrawnCard{Word: word, Definition: "def " + word, Rarity: r}
}

func TestMergeDraw_AddsNewWords(t *testing.T) {
	batch := []domain.DrawnCard{
		card("data", domain.RarityEpic),
		card("have", domain.RarityCommon),
		card("data", domain.RarityEpic),
	}

	inv := MergeDraw(New(), batch)

	assert.Equal(t, 2, inv.Len())
	assert.Equal(t, []string{"data", "have"}, inv.Words())
	entry, ok := inv.Get("data")
	require.True(t, ok)
	assert.Equal(t, domain.InventoryEntry{Word: "data", Rarity: domain.RarityEpic, Definition: "def data"}, entry)
	assert.False(t, entry.Persisted())
}

func TestMergeDraw_FirstOwnedWins(t *testing.T) {
	owned := New(domain.InventoryEntry{Word: "data", RemoteID: "42", Rarity: domain.RarityEpic, Definition: "original", IsFavorited: true})

	inv := MergeDraw(owned, []domain.DrawnCard{{Word: "data", Definition: "other", Rarity: domain.RarityCommon}})

	entry, _ := inv.Get("data")
	assert.Equal(t, "42", entry.RemoteID)
	assert.Equal(t, "original", entry.Definition)
	assert.True(t, entry.IsFavorited)
}

func TestMergeDraw_ExactKeyMatch(t *testing.T) {
	owned := New(domain.InventoryEntry{Word: "Data", Rarity: domain.RarityEpic})

	inv := MergeDraw(owned, []domain.DrawnCard{card("data", domain.RarityEpic)})

	assert.Equal(t, 2, inv.Len())
}

func TestMergeDraw_Idempotent(t *testing.T) {
	batch := []domain.DrawnCard{card("network", domain.RarityRare), card("I", domain.RarityCommon)}
	start := New(domain.InventoryEntry{Word: "have", Rarity: domain.RarityCommon})

	once := MergeDraw(start, batch)
	twice := MergeDraw(once, batch)

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, start.Len(), "input inventory is not mutated")
}

func TestNewWords(t *testing.T) {
	inv := New(domain.InventoryEntry{Word: "have"})
	batch := []domain.DrawnCard{card("have", ""), card("data", ""), card("data", ""), card("I", "")}

	assert.Equal(t, []string{"data", "I"}, NewWords(inv, batch))
	assert.Empty(t, NewWords(MergeDraw(inv, batch), batch))
}

func TestLookup_CaseInsensitive(t *testing.T) {
	inv := New(
		domain.InventoryEntry{Word: "Data", Rarity: domain.RarityEpic},
		domain.InventoryEntry{Word: "well-known", Rarity: domain.RarityRare},
	)

	for _, q := range []string{"data", "DATA", "Data"} {
		entry, ok := inv.Lookup(q)
		require.True(t, ok, q)
		assert.Equal(t, "Data", entry.Word)
	}

	entry, ok := inv.Lookup("Well-Known")
	require.True(t, ok)
	assert.Equal(t, "well-known", entry.Word)

	_, ok = inv.Lookup("dat")
	assert.False(t, ok)

	_, ok = inv.Get("data")
	assert.False(t, ok, "Get is exact")
}

func TestReconcileFromRemote(t *testing.T) {
	remote := []domain.RemoteWord{
		{Word: "data", WordID: "7", Rarity: "epic", Definition: "n. facts", IsFavorited: true},
		{Word: "have", WordID: "8", Rarity: "", Definition: "v. own"},
		{Word: "data", WordID: "9", Rarity: "common", Definition: "dup"},
		{Word: "  ", WordID: "10"},
	}
	inv := ReconcileFromRemote(remote)

	assert.Equal(t, []string{"data", "have"}, inv.Words())
	data, _ := inv.Get("data")
	assert.Equal(t, domain.InventoryEntry{Word: "data", RemoteID: "7", Rarity: domain.RarityEpic, Definition: "n. facts", IsFavorited: true}, data)
	have, _ := inv.Get("have")
	assert.Equal(t, domain.RarityCommon, have.Rarity)
	assert.False(t, inv.Has("orphan"), "remote list replaces local state wholesale")

	assert.Equal(t, inv, ReconcileFromRemote(remote), "reconciliation is idempotent")
}

func TestSetFavorite(t *testing.T) {
	inv := New(
		domain.InventoryEntry{Word: "data", RemoteID: "7", Rarity: domain.RarityEpic},
		domain.InventoryEntry{Word: "fresh", Rarity: domain.RarityCommon},
	)

	t.Run("persisted word", func(t *testing.T) {
		out, err := SetFavorite(inv, "DATA", true)
		require.NoError(t, err)
		entry, _ := out.Get("data")
		assert.True(t, entry.IsFavorited)

		original, _ := inv.Get("data")
		assert.False(t, original.IsFavorited, "input inventory is not mutated")
	})

	t.Run("not persisted", func(t *testing.T) {
		out, err := SetFavorite(inv, "fresh", true)
		assert.ErrorIs(t, err, domain.ErrNotPersisted)
		assert.Equal(t, inv, out)
	})

	t.Run("not owned", func(t *testing.T) {
		out, err := SetFavorite(inv, "ghost", true)
		assert.ErrorIs(t, err, domain.ErrWordNotOwned)
		assert.Equal(t, inv, out)
	})
}

func TestGrantAll(t *testing.T) {
	c := domain.NewCatalog()
	c[domain.RarityLegendary] = []domain.CatalogItem{{Word: "ephemeral"}}
	c[domain.RarityCommon] = []domain.CatalogItem{{Word: "have"}, {Word: "I"}}
	inv := New(domain.InventoryEntry{Word: "have", RemoteID: "1"})

	out, added := GrantAll(inv, c)

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"have", "ephemeral", "I"}, out.Words())
	have, _ := out.Get("have")
	assert.Equal(t, "1", have.RemoteID)

	again, added := GrantAll(out, c)
	assert.Zero(t, added)
	assert.Equal(t, out, again)
}

func TestQuery(t *testing.T) {
	inv := New(
		domain.InventoryEntry{Word: "economy", Rarity: domain.RarityEpic, Definition: "n. trade", IsFavorited: true},
		domain.InventoryEntry{Word: "Data", Rarity: domain.RarityEpic, Definition: "n. facts"},
		domain.InventoryEntry{Word: "abandon", Rarity: domain.RarityCommon, Definition: "v. give up"},
	)

	words := func(entries []domain.InventoryEntry) []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Word)
		}
		return out
	}

	assert.Equal(t, []string{"abandon", "Data", "economy"}, words(Query(inv, Filter{})))
	assert.Equal(t, []string{"Data", "economy"}, words(Query(inv, Filter{Rarity: domain.RarityEpic})))
	assert.Equal(t, []string{"economy"}, words(Query(inv, Filter{FavoritesOnly: true})))
	assert.Equal(t, []string{"Data"}, words(Query(inv, Filter{Search: "DA"})))
	assert.Equal(t, []string{"abandon"}, words(Query(inv, Filter{Search: "give"})))
}

func TestCountByRarity(t *testing.T) {
	inv := New(
		domain.InventoryEntry{Word: "economy", Rarity: domain.RarityEpic},
		domain.InventoryEntry{Word: "data", Rarity: domain.RarityEpic},
	)
	counts := CountByRarity(inv)
	assert.Equal(t, 2, counts[domain.RarityEpic])
	assert.Equal(t, 0, counts[domain.RarityLegendary])
}
