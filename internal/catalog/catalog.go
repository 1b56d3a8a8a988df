package catalog

import (
	"fmt"
	"strings"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// Load partitions raw entries by rarity and removes duplicate words.
// Words are compared after trimming surrounding whitespace, case-sensitively;
// the first occurrence wins. Missing or unrecognised rarities become common.
func Load(raw []domain.RawEntry) (domain.Catalog, domain.LoadStats) {
	catalog := domain.NewCatalog()
	seen := make(map[string]struct{}, len(raw))
	stats := domain.LoadStats{TotalInput: len(raw)}

	for _, entry := range raw {
		word := strings.TrimSpace(entry.Word)
		if _, dup := seen[word]; dup {
			stats.DuplicateCount++
			continue
		}
		seen[word] = struct{}{}

		rarity, _ := domain.ParseRarity(entry.Rarity)
		catalog[rarity] = append(catalog[rarity], domain.CatalogItem{
			Word:       word,
			Definition: strings.TrimSpace(entry.Definition),
		})
	}

	stats.UniqueCount = len(seen)
	return catalog, stats
}

// SeedEntries returns the built-in fallback vocabulary. It covers every rarity.
func SeedEntries() []domain.RawEntry {
	return []domain.RawEntry{
		{Word: "abandon", Definition: "v. to give up completely", Rarity: string(domain.RarityCommon)},
		{Word: "ability", Definition: "n. the power to do something", Rarity: string(domain.RarityCommon)},
		{Word: "background", Definition: "n. the circumstances behind an event", Rarity: string(domain.RarityRare)},
		{Word: "calculate", Definition: "v. to work out with numbers", Rarity: string(domain.RarityRare)},
		{Word: "data", Definition: "n. facts and statistics", Rarity: string(domain.RarityEpic)},
		{Word: "economy", Definition: "n. the system of trade and money", Rarity: string(domain.RarityEpic)},
		{Word: "ubiquitous", Definition: "adj. present everywhere", Rarity: string(domain.RarityLegendary)},
	}
}

// Lookup finds a catalog word by exact match
func Lookup(c domain.Catalog, word string) (domain.VocabularyEntry, bool) {
	for _, r := range domain.RarityOrder {
		for _, item := range c[r] {
			if item.Word == word {
				return domain.VocabularyEntry{Word: item.Word, Definition: item.Definition, Rarity: r}, true
			}
		}
	}
	return domain.VocabularyEntry{}, false
}

// LoadNotice renders the system message announcing a catalog load.
// A non-nil loadErr produces the fallback warning instead.
func LoadNotice(stats domain.LoadStats, loadErr error) string {
	if loadErr != nil {
		return NoticeFallback
	}

	var b strings.Builder
	fmt.Fprintf(&b, NoticeLoaded, stats.TotalInput)
	if stats.DuplicateCount > 0 {
		b.WriteString("<br>")
		fmt.Fprintf(&b, NoticeDuplicates, stats.DuplicateCount)
	}
	b.WriteString("<br>")
	fmt.Fprintf(&b, NoticeUnique, stats.UniqueCount)
	return b.String()
}
