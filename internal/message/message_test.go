package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/inventory"
)

func TestTokenizeAndValidate_OwnedAndUnknown(t *testing.T) {
	inv := inventory.New(domain.InventoryEntry{Word: "data", Rarity: domain.RarityEpic, Definition: "n.数据"})

	res := TokenizeAndValidate("I have data", inv)

	assert.Equal(t, []string{"data"}, res.OwnedTokens)
	assert.Equal(t, []string{"I", "have"}, res.UnknownTokens)
	assert.True(t, res.HasUnknown())
	assert.Equal(t,
		`<span class="token rejected">I</span> <span class="token rejected">have</span> <span class="token c-epic" data-t="n.数据">data</span>`,
		res.Markup)
}

func TestTokenizeAndValidate_CaseInsensitiveKeepsCleanCase(t *testing.T) {
	inv := inventory.New(domain.InventoryEntry{Word: "data", Rarity: domain.RarityEpic, Definition: "n."})

	res := TokenizeAndValidate("DATA!", inv)

	assert.Equal(t, []string{"DATA"}, res.OwnedTokens)
	assert.Empty(t, res.UnknownTokens)
	assert.Equal(t, `<span class="token c-epic" data-t="n.">DATA!</span>`, res.Markup)
}

func TestTokenizeAndValidate_Punctuation(t *testing.T) {
	inv := inventory.New(domain.InventoryEntry{Word: "well-known", Rarity: domain.RarityRare, Definition: "adj."})

	res := TokenizeAndValidate("  well-known   ...  42 ", inv)

	assert.Equal(t, []string{"well-known"}, res.OwnedTokens)
	assert.Empty(t, res.UnknownTokens)
	assert.Equal(t, `<span class="token c-rare" data-t="adj.">well-known</span> ... 42`, res.Markup)
}

func TestTokenizeAndValidate_EscapesMarkup(t *testing.T) {
	inv := inventory.New(domain.InventoryEntry{Word: "data", Rarity: domain.RarityEpic, Definition: `"facts" & <figures>`})

	res := TokenizeAndValidate("<b>data</b>", inv)

	assert.Equal(t, []string{"bdatab"}, res.UnknownTokens)
	assert.NotContains(t, res.Markup, "<b>")

	res = TokenizeAndValidate("data", inv)
	assert.Contains(t, res.Markup, `data-t="&#34;facts&#34; &amp; &lt;figures&gt;"`)
}

func TestTokenizeAndValidate_Empty(t *testing.T) {
	res := TokenizeAndValidate("   ", inventory.New())
	assert.Empty(t, res.Markup)
	assert.NotNil(t, res.OwnedTokens)
	assert.NotNil(t, res.UnknownTokens)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "I have data!", Sanitize("I have data!"))
	assert.Equal(t, "hello world", Sanitize("hello <>world"))
	assert.Equal(t, "(well-known) \"x\"; y: z?", Sanitize("(well-known) \"x\"; y: z?"))
	assert.Equal(t, " ", Sanitize("你好 🌹"))
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1}, {3, 1}, {4, 2}, {6, 2}, {7, 3}, {12, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Threshold(tt.n), "length %d", tt.n)
	}
}

func TestSuggest(t *testing.T) {
	inv := inventory.New(
		domain.InventoryEntry{Word: "calculate", Rarity: domain.RarityRare},
		domain.InventoryEntry{Word: "date", Rarity: domain.RarityCommon},
		domain.InventoryEntry{Word: "Data", Rarity: domain.RarityEpic},
	)

	t.Run("long token within threshold", func(t *testing.T) {
		got := Suggest([]string{"calculat"}, inv)
		require.Len(t, got, 1)
		assert.Equal(t, Suggestion{Token: "calculat", Word: "calculate", Rarity: domain.RarityRare}, got[0])
	})

	t.Run("tie keeps first found", func(t *testing.T) {
		got := Suggest([]string{"dat"}, inv)
		require.Len(t, got, 1)
		assert.Equal(t, "date", got[0].Word)
	})

	t.Run("case-insensitive distance", func(t *testing.T) {
		got := Suggest([]string{"DATAS"}, inv)
		require.Len(t, got, 1)
		assert.Equal(t, "Data", got[0].Word)
	})

	t.Run("nothing within threshold", func(t *testing.T) {
		assert.Empty(t, Suggest([]string{"xyz", "elephant"}, inv))
	})
}

func TestDeniedNotice(t *testing.T) {
	withSuggestion := DeniedNotice([]string{"calculat", "zzz"}, []Suggestion{{Token: "calculat", Word: "calculate", Rarity: domain.RarityRare}})
	assert.Contains(t, withSuggestion, "ACCESS DENIED: unrecognized data blocks [calculat, zzz]")
	assert.Contains(t, withSuggestion, NoticeSuggestion)
	assert.Contains(t, withSuggestion, `"calculat" &rarr; <span class="c-rare">calculate</span>`)
	assert.NotContains(t, withSuggestion, NoticeOpenPacks)

	noSuggestion := DeniedNotice([]string{"zzz"}, nil)
	assert.Contains(t, noSuggestion, NoticeOpenPacks)
}

func TestAutocomplete(t *testing.T) {
	inv := inventory.New(
		domain.InventoryEntry{Word: "Data"},
		domain.InventoryEntry{Word: "date"},
		domain.InventoryEntry{Word: "abandon"},
	)

	words := func(entries []domain.InventoryEntry) []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Word)
		}
		return out
	}

	assert.Equal(t, []string{"Data", "date"}, words(Autocomplete("I have DA", inv, 10)))
	assert.Equal(t, []string{"Data"}, words(Autocomplete("da", inv, 1)))
	assert.Empty(t, Autocomplete("data ", inv, 10), "trailing space starts a new word")
	assert.Empty(t, Autocomplete("", inv, 10))
	assert.Empty(t, Autocomplete("zz", inv, 10))
}
