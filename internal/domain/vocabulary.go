package domain

import "strings"

// Rarity is the tier of a vocabulary word. It decides draw weight and display colour.
type Rarity string

// Rarity levels
const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RarityOrder lists rarities from rarest to most common.
// Draw bucketing and bulk unlocks walk rarities in this order.
var RarityOrder = []Rarity{RarityLegendary, RarityEpic, RarityRare, RarityCommon}

// ParseRarity normalises a raw rarity string. Empty input maps to common.
// The second return value is false when the input was not a known rarity.
func ParseRarity(raw string) (Rarity, bool) {
	switch Rarity(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RarityCommon:
		return RarityCommon, true
	case RarityRare:
		return RarityRare, true
	case RarityEpic:
		return RarityEpic, true
	case RarityLegendary:
		return RarityLegendary, true
	default:
		return RarityCommon, false
	}
}

// Valid reports whether r is one of the four known rarities
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// RawEntry is one record as read from a vocabulary source, before deduplication
type RawEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Rarity     string `json:"rarity,omitempty"`
}

// VocabularyEntry is a loaded, immutable catalog word
type VocabularyEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Rarity     Rarity `json:"rarity"`
}

// CatalogItem is a word/definition pair stored under a rarity bucket
type CatalogItem struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Catalog maps each rarity to its ordered list of words.
// No word appears in more than one bucket or twice within a bucket.
type Catalog map[Rarity][]CatalogItem

// NewCatalog returns a catalog with an empty bucket for every rarity
func NewCatalog() Catalog {
	c := make(Catalog, len(RarityOrder))
	for _, r := range RarityOrder {
		c[r] = []CatalogItem{}
	}
	return c
}

// TotalWords returns the number of words across all buckets
func (c Catalog) TotalWords() int {
	total := 0
	for _, items := range c {
		total += len(items)
	}
	return total
}

// Entries flattens the catalog into vocabulary entries, rarest first
func (c Catalog) Entries() []VocabularyEntry {
	out := make([]VocabularyEntry, 0, c.TotalWords())
	for _, r := range RarityOrder {
		for _, item := range c[r] {
			out = append(out, VocabularyEntry{Word: item.Word, Definition: item.Definition, Rarity: r})
		}
	}
	return out
}

// LoadStats summarises a catalog load.
// UniqueCount + DuplicateCount always equals TotalInput.
type LoadStats struct {
	TotalInput     int `json:"totalInput"`
	UniqueCount    int `json:"uniqueCount"`
	DuplicateCount int `json:"duplicateCount"`
}

// DrawnCard is a single result of a pack draw
type DrawnCard struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Rarity     Rarity `json:"rarity"`
}

// DefaultPackType is the pack type used when a caller does not name one
const DefaultPackType = "normal"
