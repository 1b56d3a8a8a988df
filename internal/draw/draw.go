package draw

import (
	"math/rand"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// RandomFunc returns a uniform value in [0, 1)
type RandomFunc func() float64

// DefaultRandom is the production randomness source
func DefaultRandom() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// rarityThreshold pairs a rarity with the upper bound of its slice of [0, 1)
type rarityThreshold struct {
	threshold float64
	rarity    domain.Rarity
}

// thresholds builds cumulative weights from catalog composition.
// The order is critical: rarer tiers receive the first slice of the interval.
func thresholds(c domain.Catalog, total int) []rarityThreshold {
	out := make([]rarityThreshold, 0, len(domain.RarityOrder))
	cumulative := 0.0
	for _, r := range domain.RarityOrder {
		cumulative += float64(len(c[r])) / float64(total)
		out = append(out, rarityThreshold{threshold: cumulative, rarity: r})
	}
	return out
}

// Weights returns each rarity's draw probability for the catalog.
// Probability is proportional to the number of words in the bucket.
func Weights(c domain.Catalog) map[domain.Rarity]float64 {
	weights := make(map[domain.Rarity]float64, len(domain.RarityOrder))
	total := c.TotalWords()
	for _, r := range domain.RarityOrder {
		if total == 0 {
			weights[r] = 0
			continue
		}
		weights[r] = float64(len(c[r])) / float64(total)
	}
	return weights
}

// selectRarity maps a roll to a rarity. Rolls past every rarer threshold are common.
func selectRarity(ts []rarityThreshold, roll float64) domain.Rarity {
	for _, t := range ts[:len(ts)-1] {
		if roll < t.threshold {
			return t.rarity
		}
	}
	return domain.RarityCommon
}

// DrawOne draws a single card. It returns false when the catalog is empty or
// the selected rarity has no words; the draw is skipped, not retried.
func DrawOne(c domain.Catalog, rnd RandomFunc) (domain.DrawnCard, bool) {
	total := c.TotalWords()
	if total == 0 {
		return domain.DrawnCard{}, false
	}
	if rnd == nil {
		rnd = DefaultRandom
	}
	return drawFrom(c, thresholds(c, total), rnd)
}

func drawFrom(c domain.Catalog, ts []rarityThreshold, rnd RandomFunc) (domain.DrawnCard, bool) {
	rarity := selectRarity(ts, rnd())

	items := c[rarity]
	if len(items) == 0 {
		return domain.DrawnCard{}, false
	}

	idx := int(rnd() * float64(len(items)))
	if idx >= len(items) {
		idx = len(items) - 1
	}
	item := items[idx]
	return domain.DrawnCard{Word: item.Word, Definition: item.Definition, Rarity: rarity}, true
}

// DrawBatch draws batchSize independent cards with replacement.
// An empty catalog yields an empty batch.
func DrawBatch(c domain.Catalog, batchSize int, rnd RandomFunc) []domain.DrawnCard {
	total := c.TotalWords()
	if total == 0 || batchSize <= 0 {
		return []domain.DrawnCard{}
	}
	if rnd == nil {
		rnd = DefaultRandom
	}

	ts := thresholds(c, total)
	cards := make([]domain.DrawnCard, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		if card, ok := drawFrom(c, ts, rnd); ok {
			cards = append(cards, card)
		}
	}
	return cards
}
